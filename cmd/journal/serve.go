package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/justestif/wellness-journal/internal/auth"
	"github.com/justestif/wellness-journal/internal/config"
	"github.com/justestif/wellness-journal/internal/logging"
	"github.com/justestif/wellness-journal/internal/metrics"
	"github.com/justestif/wellness-journal/internal/moods"
	"github.com/justestif/wellness-journal/internal/notes"
	"github.com/justestif/wellness-journal/internal/store"
	"github.com/justestif/wellness-journal/internal/web"
)

func serveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), g)
		},
	}
}

func migrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadServerConfig(g)
			if err != nil {
				return err
			}
			backend, err := openStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer backend.Close()

			log.Info("migrations applied")
			return nil
		},
	}
}

func loadServerConfig(g *globals) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(g.configPath, g.envFile)
	if err != nil {
		return nil, nil, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// openStore connects to the configured backend and migrates it.
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (store.Backend, error) {
	backend, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := backend.Migrate(ctx); err != nil {
		backend.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	log.Debug("database ready")
	return backend, nil
}

func serve(ctx context.Context, g *globals) error {
	cfg, log, err := loadServerConfig(g)
	if err != nil {
		return err
	}

	backend, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close()

	authSvc, err := auth.New(backend.Users(), []byte(cfg.JWTSecret), auth.WithTokenTTL(cfg.TokenTTL))
	if err != nil {
		return fmt.Errorf("creating auth service: %w", err)
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:           cfg.Addr,
		Auth:           authSvc,
		Notes:          notes.New(backend.Notes()),
		Moods:          moods.New(backend.Moods()),
		Logger:         log,
		Metrics:        metrics.New(),
		AllowedOrigins: cfg.AllowedOrigins,
		LoginRateLimit: rate.Limit(cfg.LoginRateLimit),
		LoginBurst:     cfg.LoginBurst,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	log.WithField("addr", cfg.Addr).Info("server listening")
	return server.Run()
}
