package main

// Manage the database schema:
//   go run ./cmd/migrate            # apply pending migrations
//   go run ./cmd/migrate down       # revert the latest migration
//   go run ./cmd/migrate version    # print the applied version

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
)

type connectFunc func(ctx context.Context) (*sql.DB, error)

func main() {
	telemetry.SetService("migrate")
	if err := newRootCmd(connectFromConfig).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func connectFromConfig(ctx context.Context) (*sql.DB, error) {
	cfg := config.Load()
	return db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
}

func newRootCmd(connect connectFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply embedded goose migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: withDB(connect, func(cmd *cobra.Command, database *sql.DB) error {
			return db.RunMigrations(cmd.Context(), database)
		}),
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "down",
			Short: "Revert the most recent migration",
			Args:  cobra.NoArgs,
			RunE: withDB(connect, func(cmd *cobra.Command, database *sql.DB) error {
				return db.RollbackMigration(cmd.Context(), database)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: withDB(connect, func(cmd *cobra.Command, database *sql.DB) error {
				v, err := db.MigrationVersion(cmd.Context(), database)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			}),
		},
	)
	return root
}

func withDB(connect connectFunc, run func(*cobra.Command, *sql.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
			cmd.SetContext(ctx)
		}
		database, err := connect(ctx)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer database.Close()
		return run(cmd, database)
	}
}
