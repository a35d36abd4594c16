package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

func newSeedAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the initial admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			if password == "" {
				return errors.New("--password or ADMIN_PASSWORD is required")
			}

			ctx := cmd.Context()
			cfg, log, err := bootstrap(ctx)
			if err != nil {
				return err
			}

			a, err := wire(ctx, cfg, log, false)
			if err != nil {
				return err
			}
			defer func() { _ = a.close(context.Background()) }()

			user, err := a.users.Create(ctx, domain.SystemPrincipal(), ports.CreateUserInput{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     domain.RoleAdmin,
			})
			if errors.Is(err, domain.ErrUserExists) {
				log.Info().Str("email", email).Msg("admin already exists")
				return nil
			}
			if err != nil {
				return err
			}
			log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("admin created")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&email, "email", "admin@example.com", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password (defaults to $ADMIN_PASSWORD)")
	return cmd
}
