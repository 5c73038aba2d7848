package cmd

import (
	"coursebuilder/config"
	"coursebuilder/session"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var tokenFlags struct {
	user  string
	name  string
	email string
	ttl   time.Duration
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the jwt session provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		ttl := tokenFlags.ttl
		if ttl == 0 {
			ttl = time.Duration(cfg.JWTTTLHours) * time.Hour
		}

		token, err := session.NewJWTProvider(cfg.JWTKey, ttl).GenerateJWT(tokenFlags.user, tokenFlags.name, tokenFlags.email)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.user, "user", "", "user id to put in the token")
	tokenCmd.Flags().StringVar(&tokenFlags.name, "name", "", "display name claim")
	tokenCmd.Flags().StringVar(&tokenFlags.email, "email", "", "email claim")
	tokenCmd.Flags().DurationVar(&tokenFlags.ttl, "ttl", 0, "token lifetime (defaults to JWT_TTL_HOURS)")
	_ = tokenCmd.MarkFlagRequired("user")
}
