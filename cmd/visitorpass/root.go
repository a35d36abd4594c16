package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/frontdesk/visitor-pass/internal/infrastructure/config"
	"github.com/frontdesk/visitor-pass/pkg/logger"
)

const serviceName = "visitorpass"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Visitor registration, passes and checkpoint logging",
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newSweepCmd(),
		newSeedAdminCmd(),
		newVersionCmd(),
	)
	return root
}

// bootstrap loads and validates configuration and initialises the logger.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
		Version: version,
	})
	if err := cfg.Validate(); err != nil {
		return nil, log, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, log, nil
}
