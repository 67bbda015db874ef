// cmd/harvestx/scan.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"harvestx/internal/adapters/output"
	"harvestx/internal/adapters/storage/sqlite"
	"harvestx/internal/core/domain"
	"harvestx/internal/core/ports"
	"harvestx/internal/core/usecases"
	"harvestx/internal/platform/config"
	"harvestx/internal/platform/logx"
	"harvestx/internal/platform/registry"
)

func newScanCmd() *cobra.Command {
	flags := &config.Flags{}

	cmd := &cobra.Command{
		Use:     "scan",
		Short:   "Run a scan against a target domain",
		Example: config.ScanExamples,
		Long:    "Run a scan against a target domain.\n\n" + config.EnvHelp,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags(), flags, os.Environ())
			if err != nil {
				return fmt.Errorf("configuration: %w", err)
			}
			return runScan(cmd, cfg, logx.NewWithLevel(cfg.Level()))
		},
	}

	flags.Register(cmd.Flags())
	return cmd
}

func runScan(cmd *cobra.Command, cfg config.Config, logger logx.Logger) error {
	if cfg.Core.Target == "" {
		return errors.New("target domain is required (use -t <domain>)")
	}

	target := domain.NewTarget(cfg.Core.Target)
	if err := target.Validate(); err != nil {
		return err
	}

	logger.Info("harvestx starting",
		"version", version,
		"target", target.Root,
		"modules", cfg.Core.Enabled,
		"workers", cfg.Core.Workers,
	)

	modules, err := registry.Global().Build(cfg.Core.Enabled, cfg.AllModuleOptions(), logger)
	if err != nil {
		return fmt.Errorf("failed to build modules: %w", err)
	}

	ctx, cancel := rootContextWithSignals(cmd.Context(), cfg.Timeout())
	defer cancel()

	scanID := uuid.NewString()
	sinks, closeSinks, err := buildSinks(cfg, scanID, target.Root, logger)
	if err != nil {
		return err
	}
	defer closeSinks()

	host := usecases.NewHost(usecases.HostOptions{
		Modules:    modules,
		Sinks:      sinks,
		Logger:     logger,
		MaxWorkers: cfg.Core.Workers,
		ScanID:     scanID,
	})

	result, runErr := host.Run(ctx, *target)
	if result == nil {
		return runErr
	}
	if runErr != nil {
		logger.Err(runErr, "phase", "run")
	}

	if err := writeOutputs(cmd, cfg, result, logger); err != nil {
		return err
	}

	logger.Info("harvestx finished",
		"scan_id", result.ID,
		"elapsed_ms", result.Duration.Milliseconds(),
		"events", result.TotalEvents(),
		"warnings", len(result.Warnings),
		"errors", len(result.Errors),
	)
	return runErr
}

// buildSinks abre los sinks opcionales (NDJSON, SQLite). La función retornada los cierra.
func buildSinks(cfg config.Config, scanID, target string, logger logx.Logger) ([]ports.EventSink, func(), error) {
	var (
		sinks   []ports.EventSink
		closers []func() error
	)
	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("failed to close sink", "error", err.Error())
			}
		}
	}

	if cfg.Output.Stream {
		s, path, err := output.NewNDJSONFileSink(cfg.Output.Dir, target)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("streaming events", "file", path)
		sinks = append(sinks, s)
		closers = append(closers, s.Close)
	}

	if cfg.Output.DBPath != "" {
		store, err := sqlite.Open(cfg.Output.DBPath)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("event store: %w", err)
		}
		logger.Info("storing events", "db", cfg.Output.DBPath, "scan_id", scanID)
		sinks = append(sinks, store.Sink(scanID))
		closers = append(closers, store.Close)
	}

	return sinks, closeAll, nil
}

func writeOutputs(cmd *cobra.Command, cfg config.Config, result *domain.ScanResult, logger logx.Logger) error {
	if cfg.Output.JSON {
		path, err := output.OutputJSON(cfg.Output.Dir, result)
		if err != nil {
			return fmt.Errorf("json output: %w", err)
		}
		logger.Info("report written", "file", path)
	}

	if !cfg.Output.TableDisabled {
		if err := output.OutputTable(cmd.OutOrStdout(), result); err != nil {
			return fmt.Errorf("table output: %w", err)
		}
	}
	return nil
}

// rootContextWithSignals cancela con SIGINT/SIGTERM y, si timeout > 0, al vencer.
func rootContextWithSignals(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	return tctx, func() {
		cancel()
		stop()
	}
}
