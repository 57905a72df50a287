package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"alphaback/internal/config"
	"alphaback/internal/provider"
	"alphaback/internal/repository"
	"alphaback/internal/server"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rf)
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	prov, cleanup, err := buildProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	timeout, err := cfg.Simulation.ParseDecideTimeout()
	if err != nil {
		return err
	}

	srv := server.New(
		prov,
		newRegistry(cfg.Simulation.PluginDir),
		decimal.NewFromFloat(cfg.Simulation.StartingCapital),
		timeout,
	)

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildProvider assembles the price feed chain: the HTTP provider, wrapped
// by the pgx cache when a database URL is configured.
func buildProvider(ctx context.Context, cfg *config.Config) (provider.Provider, func(), error) {
	var prov provider.Provider = provider.NewAlphaVantage(cfg.Provider.BaseURL, cfg.Provider.APIKey, nil)
	cleanup := func() {}

	if cfg.Database.URL == "" {
		return prov, cleanup, nil
	}

	db, err := repository.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return provider.NewCached(prov, db), db.Close, nil
}

func setupLogging(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
