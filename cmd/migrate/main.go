// Command migrate manages the database schema.
package main

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/circtek/backend/internal/infrastructure/config"
	"github.com/circtek/backend/internal/infrastructure/logger"
	"github.com/circtek/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	dir      string
	logLevel string
	log      *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the circtek database schema",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(&logger.Config{
				Level:      opts.logLevel,
				Format:     "console",
				Output:     "stdout",
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
	root.PersistentFlags().StringVar(&opts.dir, "path", "", "read migrations from this directory instead of the embedded set")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		withMigrator(opts, &cobra.Command{Use: "up", Short: "Apply all pending migrations", Args: cobra.NoArgs},
			func(m *migration.Migrator, _ []string) error { return m.Up() }),
		withMigrator(opts, &cobra.Command{Use: "down", Short: "Roll back every migration", Args: cobra.NoArgs},
			func(m *migration.Migrator, _ []string) error { return m.Down() }),
		withMigrator(opts, &cobra.Command{Use: "step <n>", Short: "Apply n migrations, negative to roll back", Args: cobra.ExactArgs(1)},
			func(m *migration.Migrator, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return m.Steps(n)
			}),
		withMigrator(opts, &cobra.Command{Use: "force <version>", Short: "Mark a version as applied after a failed run", Args: cobra.ExactArgs(1)},
			func(m *migration.Migrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.Force(v)
			}),
		withMigrator(opts, &cobra.Command{Use: "status", Short: "Show the applied schema version", Args: cobra.NoArgs},
			func(m *migration.Migrator, _ []string) error {
				s, err := m.Status()
				if err != nil {
					return err
				}
				opts.log.Info("Schema status",
					zap.Uint("version", s.Version),
					zap.Uint("latest", s.Latest),
					zap.Bool("dirty", s.Dirty),
					zap.Bool("pending", s.Pending()),
				)
				return nil
			}),
		newCreateCmd(opts),
	)
	return root
}

// withMigrator opens the configured database for the duration of run
func withMigrator(opts *options, cmd *cobra.Command, run func(*migration.Migrator, []string) error) *cobra.Command {
	cmd.RunE = func(_ *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		m, err := migration.New(db, opts.dir, opts.log)
		if err != nil {
			return err
		}
		defer m.Close()
		return run(m, args)
	}
	return cmd
}

func newCreateCmd(opts *options) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty up/down migration pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := opts.dir
			if dir == "" {
				dir = "migrations"
			}
			f, err := migration.CreateMigration(dir, args[0], description)
			if err != nil {
				return err
			}
			opts.log.Info("Migration created",
				zap.Uint("version", f.Version),
				zap.String("up", f.UpPath),
				zap.String("down", f.DownPath),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "one-line description written into the files")
	return cmd
}
