package main

import (
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"orderflow/internal/catalog"
	"orderflow/internal/logging"
	"orderflow/internal/orders"
	"orderflow/internal/server"
	"orderflow/internal/workflow"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the order API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			// A file lock keeps a second serve instance from writing to
			// the same database.
			lockPath := filepath.Join(cfg.Paths.DataDir, "orderflow.lock")
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another orderflow serve instance is already running")
			}
			defer func() {
				_ = lock.Unlock()
			}()

			store, err := orders.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			manager := workflow.NewManager(store, catalog.Default(), logger,
				workflow.WithDefaultActor(cfg.Workflow.DefaultActor),
				workflow.WithPreSuppliedCap(cfg.Workflow.MaxPreSuppliedStages))

			srv := server.New(cfg, manager, store, logger)
			if srv == nil {
				return errors.New("api_bind is empty; nothing to serve")
			}
			srv.SetLockPath(lockPath)

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if err := srv.Start(signalCtx); err != nil {
				return err
			}
			<-signalCtx.Done()
			srv.Stop()
			logger.Info("server stopped")
			return nil
		},
	}
}
