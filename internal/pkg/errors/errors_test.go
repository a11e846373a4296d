package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rr.Body.String(), err)
	}
	return body
}

func TestWriteSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteSuccess(rr, map[string]int{"total": 3})

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	body := decode(t, rr)
	if body["success"] != true {
		t.Errorf("Expected success true, got %v", body["success"])
	}
	if _, ok := body["message"]; ok {
		t.Error("message should be omitted on success")
	}
	if _, ok := body["error"]; ok {
		t.Error("error should be omitted on success")
	}
}

func TestWriteSuccess_EmptyList(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteSuccess(rr, []string{})

	body := decode(t, rr)
	data, ok := body["data"].([]interface{})
	if !ok {
		t.Fatalf("Expected empty array data, got %v", body["data"])
	}
	if len(data) != 0 {
		t.Errorf("Expected empty array, got %v", data)
	}
}

func TestWriteFailure(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteFailure(rr, &LookupFailure{Message: "Failed to fetch SSO statistics", Err: stderrors.New("disk I/O error")})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rr.Code)
	}

	body := decode(t, rr)
	if body["success"] != false {
		t.Errorf("Expected success false, got %v", body["success"])
	}
	if body["message"] != "Failed to fetch SSO statistics" {
		t.Errorf("Unexpected message %v", body["message"])
	}
	if body["error"] != "disk I/O error" {
		t.Errorf("Unexpected error %v", body["error"])
	}
	if _, ok := body["data"]; ok {
		t.Error("data should be omitted on failure")
	}
}

func TestLookupFailure_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	var err error = &LookupFailure{Message: "Failed", Err: cause}

	if !stderrors.Is(err, cause) {
		t.Error("Expected LookupFailure to unwrap to its cause")
	}

	var lf *LookupFailure
	if !stderrors.As(err, &lf) || lf.Message != "Failed" {
		t.Error("Expected errors.As to find LookupFailure")
	}

	if (&LookupFailure{Message: "only message"}).Error() != "only message" {
		t.Error("Expected message as error text when there is no cause")
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, http.StatusForbidden, ErrCodeForbidden, "Insufficient permissions")

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rr.Code)
	}
	body := decode(t, rr)
	if body["success"] != false || body["error"] != ErrCodeForbidden || body["message"] != "Insufficient permissions" {
		t.Errorf("Unexpected body %v", body)
	}
}
