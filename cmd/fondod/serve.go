package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getfondo/fondod/internal/seed"
	"github.com/getfondo/fondod/pkg/api"
	"github.com/getfondo/fondod/pkg/config"
	"github.com/getfondo/fondod/pkg/logging"
	"github.com/getfondo/fondod/pkg/notify"
	"github.com/getfondo/fondod/pkg/service"
	"github.com/getfondo/fondod/pkg/store"
	storefile "github.com/getfondo/fondod/pkg/store/file"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the fund data engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default "+defaultConfigFile+" if present)")
	return cmd
}

func runServe(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: logging.ParseFormat(cfg.Log.Format),
	})

	var slot store.Slot
	if cfg.DataFile != "" {
		slot = storefile.New(cfg.DataFile)
		log.Info("persisting document to file", "path", cfg.DataFile)
	} else {
		slot = store.NewMemorySlot()
		log.Warn("no data file configured, document is in-memory only")
	}

	svcOpts := []service.Option{service.WithLogger(log)}
	if cfg.SeedFile != "" {
		svcOpts = append(svcOpts, service.WithSeed(seed.FromFile(cfg.SeedFile)))
		log.Info("using external seed dataset", "path", cfg.SeedFile)
	}
	svc := service.New(slot, svcOpts...)

	notifier := notify.Nop()
	if cfg.Notifier.Enabled {
		notifier = notify.NewClient(notify.Config{
			Endpoint:   cfg.Notifier.Endpoint,
			ServiceID:  cfg.Notifier.ServiceID,
			TemplateID: cfg.Notifier.TemplateID,
			UserID:     cfg.Notifier.UserID,
			Timeout:    cfg.Notifier.Timeout.Std(),
		})
		log.Info("notification dispatch enabled")
	}

	server := api.New(cfg.Listen, svc, api.WithLogger(log), api.WithNotifier(notifier))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loadConfig resolves the effective configuration: an explicit --config
// must exist; without one, fondod.yaml is used when present and the
// defaults otherwise.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load(defaultConfigFile)
	if errors.Is(err, config.ErrFileNotFound) {
		return config.Default(), nil
	}
	return cfg, err
}

func newInitCmd() *cobra.Command {
	var (
		force    bool
		seedPath string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(defaultConfigFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
			}
			if err := os.WriteFile(defaultConfigFile, []byte(config.Starter), 0600); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", defaultConfigFile)

			if seedPath != "" {
				if _, err := os.Stat(seedPath); err == nil && !force {
					return fmt.Errorf("%s already exists (use --force to overwrite)", seedPath)
				}
				if err := os.WriteFile(seedPath, seed.Raw(), 0600); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", seedPath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	cmd.Flags().StringVar(&seedPath, "seed", "", "also write a starter seed dataset to this path")
	return cmd
}
