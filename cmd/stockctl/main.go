// Command stockctl reconciles warehouse stock with CSV exports.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	inventoryapp "github.com/circtek/backend/internal/application/inventory"
	"github.com/circtek/backend/internal/infrastructure/config"
	"github.com/circtek/backend/internal/infrastructure/logger"
	"github.com/circtek/backend/internal/infrastructure/persistence"
	"github.com/circtek/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	logLevel string
	output   string
	log      *zap.Logger
}

// runtime is the wiring shared by every subcommand
type runtime struct {
	reconciler *inventoryapp.StockReconciler
	files      *storage.FileSource
	close      func()
}

func main() {
	if err := newRootCmd(openRuntime).Execute(); err != nil {
		os.Exit(1)
	}
}

type runtimeFactory func(ctx context.Context, opts *options) (*runtime, error)

func newRootCmd(open runtimeFactory) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "stockctl",
		Short:        "Check and reset warehouse stock from CSV files",
		Long:         "CSV files are read from a local path or s3://bucket/key. Columns: sku, quantity and an optional description.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(&logger.Config{
				Level:      opts.logLevel,
				Format:     "console",
				Output:     "stderr",
				TimeFormat: "2006-01-02 15:04:05",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "also write the JSON report to this path or s3:// location")

	root.AddCommand(newCheckCmd(opts, open), newResetCmd(opts, open))
	return root
}

func newCheckCmd(opts *options, open runtimeFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "check-repair-parts-stock <csv> <tenant-id> [warehouse-id]",
		Short: "Report whether stock covers the parts listed in a CSV",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := parseID("tenant id", args[1])
			if err != nil {
				return err
			}
			var warehouseID *uuid.UUID
			if len(args) == 3 {
				id, err := parseID("warehouse id", args[2])
				if err != nil {
					return err
				}
				warehouseID = &id
			}

			ctx := cmd.Context()
			rt, err := open(ctx, opts)
			if err != nil {
				return err
			}
			defer rt.close()

			lines, err := rt.reconciler.LoadLines(ctx, args[0])
			if err != nil {
				return err
			}
			report, err := rt.reconciler.CheckRepairParts(ctx, lines, tenantID, warehouseID)
			if err != nil {
				return err
			}
			if err := printPartsReport(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			return writeReport(ctx, rt.files, opts.output, report)
		},
	}
}

func newResetCmd(opts *options, open runtimeFactory) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "reset-stock-from-csv <csv> <warehouse-id> <tenant-id>",
		Short: "Set warehouse stock to the quantities in a CSV",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			warehouseID, err := parseID("warehouse id", args[1])
			if err != nil {
				return err
			}
			tenantID, err := parseID("tenant id", args[2])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			rt, err := open(ctx, opts)
			if err != nil {
				return err
			}
			defer rt.close()

			lines, err := rt.reconciler.LoadLines(ctx, args[0])
			if err != nil {
				return err
			}
			report, err := rt.reconciler.ResetStock(ctx, lines, warehouseID, tenantID, dryRun)
			if err != nil {
				return err
			}
			if err := printResetReport(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			return writeReport(ctx, rt.files, opts.output, report)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the changes without writing them")
	return cmd
}

// openRuntime connects to the configured database and object store
func openRuntime(ctx context.Context, opts *options) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	gormLog := logger.NewGormLogger(opts.log, logger.MapGormLogLevel(cfg.Database.LogLevel), cfg.Database.SlowThreshold)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		return nil, err
	}

	objects, err := storage.NewS3ObjectStorage(ctx, cfg.Storage, storage.WithLogger(opts.log))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	files := storage.NewFileSource(objects)

	reconciler := inventoryapp.NewStockReconciler(
		persistence.NewGormStockRepository(db.DB),
		persistence.NewGormWarehouseRepository(db.DB),
		files,
		opts.log,
	)
	return &runtime{
		reconciler: reconciler,
		files:      files,
		close: func() {
			if err := db.Close(); err != nil {
				opts.log.Warn("Error closing database", zap.Error(err))
			}
		},
	}, nil
}

func parseID(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q", name, value)
	}
	return id, nil
}

// reportWriter is the part of storage.FileSource used for --output
type reportWriter interface {
	Write(ctx context.Context, ref string, data []byte, contentType string) error
}

func writeReport(ctx context.Context, w reportWriter, ref string, report any) error {
	if ref == "" {
		return nil
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return w.Write(ctx, ref, data, "application/json")
}
