package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
)

// newSweepCmd expires every issued pass whose window has closed. It is the
// cron entry point; the API exposes the same operation at
// POST /api/passes/expire-old.
func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Mark lapsed passes as expired",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			n, err := a.passes.SweepExpired(ctx, domain.SystemPrincipal())
			if err != nil {
				log.Error().Err(err).Msg("sweep failed")
				return err
			}
			log.Info().Int64("expired", n).Msg("sweep finished")
			return nil
		},
	}
}
