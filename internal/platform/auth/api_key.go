package auth

import (
	"crypto/sha256"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ServiceRole is the role assigned to callers authenticated by API key.
const ServiceRole = "service"

// bcrypt only looks at the first 72 bytes, so keys are pre-hashed.
func keyDigest(key string) []byte {
	sum := sha256.Sum256([]byte(key))
	return sum[:]
}

// HashAPIKey returns the bcrypt hash to store in auth.api_key_hashes.
func HashAPIKey(key string) (string, error) {
	if key == "" {
		return "", errors.New("api key must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword(keyDigest(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// APIKeyVerifier checks presented keys against a fixed set of bcrypt hashes.
type APIKeyVerifier struct {
	hashes [][]byte
}

func NewAPIKeyVerifier(hashes []string) *APIKeyVerifier {
	v := &APIKeyVerifier{}
	for _, h := range hashes {
		if h != "" {
			v.hashes = append(v.hashes, []byte(h))
		}
	}
	return v
}

func (v *APIKeyVerifier) Verify(key string) bool {
	if key == "" {
		return false
	}
	digest := keyDigest(key)
	for _, h := range v.hashes {
		if bcrypt.CompareHashAndPassword(h, digest) == nil {
			return true
		}
	}
	return false
}
