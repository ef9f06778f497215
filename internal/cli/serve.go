package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"project-tracker/backend/internal/app"
	"project-tracker/backend/internal/config"
	"project-tracker/backend/internal/logging"
	"project-tracker/backend/internal/seed"
	"project-tracker/backend/internal/server"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func bootstrap(ctx context.Context) (*app.App, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.New(cfg.Log.Level, cfg.IsProduction())

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return nil, log, err
	}
	return a, log, nil
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, log, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					log.Error().Err(err).Msg("failed to release resources")
				}
			}()

			log.Info().
				Str("addr", a.Config.GetServerAddr()).
				Str("environment", a.Config.Server.Environment).
				Str("driver", a.Config.Database.Driver).
				Msg("starting server")

			return server.New(a.Config.Server, a.Router, log).Run(ctx)
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the demo user, projects and tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, log, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := seed.Run(cmd.Context(), a.Repositories, a.Hasher, log); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded demo data. Log in as %s / %s\n", seed.DemoEmail, seed.DemoPassword)
			return nil
		},
	}
}
