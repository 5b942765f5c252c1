package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/dialect"
	"sheet2ddl/internal/schema"
)

var ErrTableExists = errors.New("table already exists")

// ApplyOptions controls Apply.
type ApplyOptions struct {
	// Replace drops an existing table before creating it.
	Replace bool
}

// Apply executes script against db and returns the created table's columns
// as read back from the catalog.
func Apply(ctx context.Context, db *sql.DB, d dialect.Dialect, script ddl.Script, opts ApplyOptions) ([]schema.Column, error) {
	table := script.QualifiedName()

	exists, err := schema.TableExists(ctx, db, d, script.Schema, script.TableName)
	if err != nil {
		return nil, err
	}
	if exists {
		if !opts.Replace {
			return nil, fmt.Errorf("%w: %s", ErrTableExists, table)
		}
		if _, err := db.ExecContext(ctx, d.DropTableQuery(table)); err != nil {
			return nil, fmt.Errorf("failed to drop %s: %w", table, err)
		}
		slog.Info("dropped existing table", "table", table)
	}

	if _, err := db.ExecContext(ctx, script.Statement()); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", table, err)
	}

	created, err := schema.Describe(ctx, db, d, script.Schema, script.TableName)
	if err != nil {
		return nil, err
	}
	want := len(script.Columns) + len(ddl.AuditColumnNames)
	if len(created) != want {
		return created, fmt.Errorf("table %s has %d columns after create, want %d", table, len(created), want)
	}

	slog.Info("table created", "table", table, "columns", len(created))
	return created, nil
}
