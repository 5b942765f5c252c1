package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/dialect"
	"sheet2ddl/internal/engine"
	"sheet2ddl/internal/schema"
)

var cleanCmd = &cobra.Command{
	Use:   "clean FILE...",
	Short: "Drop the tables described by spreadsheets from the target database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scripts, err := scriptsFromFiles(args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		db, d, err := openDB(ctx, RoleTarget)
		if err != nil {
			return err
		}
		defer db.Close()

		return dropTables(ctx, db, d, scripts)
	},
}

func init() {
	RootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVar(&dsnFlag, "dsn", "", "Target DSN (overrides config)")
	cleanCmd.Flags().StringVar(&driverFlag, "driver", "", "Driver for --dsn (default oracle)")
}

// dropTables drops every existing table in reverse order. Missing tables
// are skipped.
func dropTables(ctx context.Context, db *sql.DB, d dialect.Dialect, scripts []ddl.Script) error {
	total := len(scripts)
	dropped := 0

	for i := len(scripts) - 1; i >= 0; i-- {
		s := scripts[i]
		exists, err := schema.TableExists(ctx, db, d, s.Schema, s.TableName)
		if err != nil {
			return err
		}
		if !exists {
			slog.Info("table not found, skipping", "table", s.QualifiedName())
			continue
		}
		if _, err := db.ExecContext(ctx, d.DropTableQuery(s.QualifiedName())); err != nil {
			return fmt.Errorf("failed to drop %s: %w", s.QualifiedName(), err)
		}
		dropped++
		slog.Info("dropped table", "table", s.QualifiedName())
	}

	slog.Info("clean finished", "dropped", dropped, "tables", total)
	return nil
}

// ensureTables creates any table that does not exist yet.
func ensureTables(ctx context.Context, db *sql.DB, d dialect.Dialect, scripts []ddl.Script) error {
	for _, s := range scripts {
		exists, err := schema.TableExists(ctx, db, d, s.Schema, s.TableName)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := engine.Apply(ctx, db, d, s, engine.ApplyOptions{}); err != nil {
			return err
		}
	}
	return nil
}
