package cli

import (
	"fmt"
	"time"

	"entdash/internal/platform/auth"

	"github.com/spf13/cobra"
)

var (
	tokenUser  string
	tokenOrg   string
	tokenRole  string
	tokenEmail string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for the dashboard API",
	Long: `Mint an HS256 access token signed with auth.jwt.secret.

Examples:
  dashctl token --user u1 --org o1 --role admin
  dashctl token --user ops --org o1 --role owner --ttl 24h`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User ID")
	tokenCmd.Flags().StringVar(&tokenOrg, "org", "", "Organization ID")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "admin", "Role claim")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to auth.jwt.access_token_ttl)")
	tokenCmd.MarkFlagRequired("user")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, err := auth.NewTokenService(cfg.Auth.JWT).GenerateAccessToken(tokenUser, tokenOrg, tokenRole, tokenEmail, tokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
