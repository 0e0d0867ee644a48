package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"foodgram-service/internal/infrastructure"
)

var (
	tokenUsername string
	tokenRole     string
	tokenTTL      time.Duration
)

// tokenCmd issues a bearer token for an existing user. Accounts and login
// live with the identity provider; this is for local use and tests.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for a seeded user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if tokenUsername == "" {
			return errors.New("--username is required")
		}
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		a, err := openApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.close()

		user, err := a.repos.users.FindByUsername(cmd.Context(), tokenUsername)
		if err != nil {
			return err
		}
		token, err := infrastructure.NewJWTService(jwtSecret(cfg, log)).GenerateToken(user.Id, tokenRole, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUsername, "username", "", "Username to issue the token for")
	tokenCmd.Flags().StringVar(&tokenRole, "role", infrastructure.RoleUser, "Role claim (user or admin)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
}
