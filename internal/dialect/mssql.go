package dialect

import (
	"fmt"
	"strings"

	_ "github.com/microsoft/go-mssqldb" // SQL Server Driver
)

// MSSQLDialect is the source side: column catalogs are read from here.
type MSSQLDialect struct{}

// Helper: MSSQL Driver (go-mssqldb) prefers @p1, @p2 named parameters over ?

func (d *MSSQLDialect) GetColumnsQuery() string {
	// Length is the character length for string types, "precision,scale"
	// for decimal/numeric and the numeric precision otherwise; -1 means (max).
	return `
		SELECT
			c.TABLE_NAME,
			c.COLUMN_NAME,
			c.DATA_TYPE,
			CASE
				WHEN c.DATA_TYPE IN ('decimal', 'numeric')
					THEN CAST(c.NUMERIC_PRECISION AS VARCHAR(20)) + ',' + CAST(c.NUMERIC_SCALE AS VARCHAR(20))
				ELSE COALESCE(CAST(c.CHARACTER_MAXIMUM_LENGTH AS VARCHAR(20)), CAST(c.NUMERIC_PRECISION AS VARCHAR(20)))
			END,
			CASE WHEN pk.COLUMN_NAME IS NOT NULL THEN 'PRIMARY' ELSE '' END AS COLUMN_KEY
		FROM INFORMATION_SCHEMA.COLUMNS c
		LEFT JOIN (
			SELECT kcu.TABLE_SCHEMA, kcu.TABLE_NAME, kcu.COLUMN_NAME
			FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
			JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
				ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME AND tc.TABLE_SCHEMA = kcu.TABLE_SCHEMA
			WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
		) pk ON c.TABLE_SCHEMA = pk.TABLE_SCHEMA AND c.TABLE_NAME = pk.TABLE_NAME AND c.COLUMN_NAME = pk.COLUMN_NAME
		WHERE c.TABLE_SCHEMA = @p1 AND c.TABLE_NAME = @p2
		ORDER BY c.ORDINAL_POSITION
	`
}

func (d *MSSQLDialect) GetTableExistsQuery() string {
	return `SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MSSQLDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *MSSQLDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE %s", table)
}

func (d *MSSQLDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) NormalizeType(sqlType string) string {
	t := BaseType(sqlType)
	switch t {
	case "varchar", "nvarchar", "char", "nchar", "text", "ntext", "uniqueidentifier":
		return "string"
	case "bit", "tinyint", "smallint", "int", "bigint":
		return "integer"
	case "decimal", "numeric", "money", "smallmoney", "float", "real":
		return "decimal"
	case "datetime", "datetime2", "smalldatetime", "date", "time":
		return "datetime"
	case "image", "binary", "varbinary", "timestamp", "rowversion":
		return "binary"
	default:
		return t
	}
}

func (d *MSSQLDialect) GetSchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}
