package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"solo-sparks/internal/api"
	"solo-sparks/internal/config"
	"solo-sparks/internal/db"
	"solo-sparks/internal/logging"
	"solo-sparks/internal/quest"
	redisdb "solo-sparks/internal/redis"
	"solo-sparks/internal/rewards"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "sparks",
		Short:         "Solo Sparks quest service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "path to the JSON config file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Load the embedded quest and reward catalog into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(configPath)
		},
	})
	return rootCmd
}

// bootstrap loads config, builds the logger and connects the database.
func bootstrap(configPath string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	log := logging.New(cfg)
	if err := db.Init(cfg, log); err != nil {
		return nil, nil, fmt.Errorf("db init: %w", err)
	}
	return cfg, log, nil
}

func serve(configPath string) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	rdb := redisdb.NewClient(cfg)
	defer rdb.Close()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.SetupRouter(cfg, rdb, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr+cfg.Server.Subpath).Info("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func seed(configPath string) error {
	_, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	cat, err := quest.LoadCatalog()
	if err != nil {
		return err
	}
	if err := quest.SeedQuests(db.DB, cat.Quests); err != nil {
		return fmt.Errorf("seed quests: %w", err)
	}
	if err := rewards.SeedRewards(db.DB, cat.Rewards); err != nil {
		return fmt.Errorf("seed rewards: %w", err)
	}
	log.WithFields(logrus.Fields{
		"quests":  len(cat.Quests),
		"rewards": len(cat.Rewards),
	}).Info("Catalog seeded")
	return nil
}
