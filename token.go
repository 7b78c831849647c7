package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cupidwave/config"
	"cupidwave/middleware"
	"cupidwave/models"
)

func newTokenCmd() *cobra.Command {
	var (
		admin bool
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token <userId>",
		Short: "Sign a bearer token for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			role := ""
			if admin {
				role = models.RoleAdmin
			}
			auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, nil, zap.NewNop().Sugar())
			token, err := auth.GenerateToken(args[0], role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
