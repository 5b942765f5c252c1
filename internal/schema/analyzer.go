package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sheet2ddl/internal/dialect"
)

// Describe reads the column catalog of one table from a live database, in
// ordinal order. SourceType holds the database's own type name.
func Describe(ctx context.Context, db *sql.DB, d dialect.Dialect, schemaName, table string) ([]Column, error) {
	// [Interface-First]: Delegate schema resolution to the dialect
	target := d.GetSchemaName(schemaName)

	rows, err := db.QueryContext(ctx, d.GetColumnsQuery(), target, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var tName, cName, dType, cLen, cKey sql.NullString
		if err := rows.Scan(&tName, &cName, &dType, &cLen, &cKey); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", table, err)
		}
		if !tName.Valid || !cName.Valid {
			continue // Skip invalid rows
		}

		cols = append(cols, Column{
			TableName:  tName.String,
			Name:       cName.String,
			SourceType: dType.String,
			Length:     catalogLength(cLen),
			IsPK:       strings.Contains(cKey.String, "PRI"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s.%s not found or has no columns", target, table)
	}
	return cols, nil
}

// TableExists reports whether schemaName.table exists.
func TableExists(ctx context.Context, db *sql.DB, d dialect.Dialect, schemaName, table string) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, d.GetTableExistsQuery(), d.GetSchemaName(schemaName), table).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check table %s.%s: %w", schemaName, table, err)
	}
	return n > 0, nil
}

// catalogLength turns a catalog length into a declared length. (max)
// columns report -1 and have no usable width.
func catalogLength(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	s := strings.TrimSpace(v.String)
	if s == "-1" || s == "0" {
		return ""
	}
	return s
}
