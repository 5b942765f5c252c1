package dialect

import (
	"fmt"
	"strings"

	_ "github.com/sijms/go-ora/v2" // Oracle Driver
)

// OracleDialect is the target side: generated scripts are applied here.
type OracleDialect struct{}

func (d *OracleDialect) GetColumnsQuery() string {
	// Oracle stores unquoted identifiers in upper case.
	// PK membership comes from ALL_CONSTRAINTS (type 'P').
	return `
SELECT
    t.TABLE_NAME,
    t.COLUMN_NAME,
    t.DATA_TYPE,
    COALESCE(TO_CHAR(t.DATA_PRECISION), TO_CHAR(t.CHAR_LENGTH)),
    CASE WHEN p.COLUMN_NAME IS NOT NULL THEN 'PRI' ELSE '' END
FROM ALL_TAB_COLUMNS t
LEFT JOIN (
    SELECT cc.OWNER, cc.TABLE_NAME, cc.COLUMN_NAME
    FROM ALL_CONS_COLUMNS cc
    JOIN ALL_CONSTRAINTS uc ON cc.OWNER = uc.OWNER AND cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
    WHERE uc.CONSTRAINT_TYPE = 'P'
) p ON t.OWNER = p.OWNER AND t.TABLE_NAME = p.TABLE_NAME AND t.COLUMN_NAME = p.COLUMN_NAME
WHERE t.OWNER = UPPER(:1) AND t.TABLE_NAME = UPPER(:2)
ORDER BY t.COLUMN_ID`
}

func (d *OracleDialect) GetTableExistsQuery() string {
	return `SELECT COUNT(*) FROM ALL_TABLES WHERE OWNER = UPPER(:1) AND TABLE_NAME = UPPER(:2)`
}

func (d *OracleDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(cols, ", "),
		vals)
}

func (d *OracleDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE %s PURGE", table)
}

func (d *OracleDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}

func (d *OracleDialect) Placeholder(index int) string {
	// Oracle uses :1, :2, etc. (1-based index)
	return fmt.Sprintf(":%d", index+1)
}

// NormalizeType folds Oracle types into the kinds the seeder generates:
// string, integer, decimal, datetime, binary.
func (d *OracleDialect) NormalizeType(sqlType string) string {
	s := BaseType(sqlType)
	switch {
	case strings.Contains(s, "char") || strings.Contains(s, "clob") || s == "long":
		return "string"
	case s == "number":
		if _, scale, ok := TypePrecision(sqlType); ok && scale == 0 {
			return "integer"
		}
		return "decimal"
	case strings.Contains(s, "int"):
		return "integer"
	case strings.Contains(s, "float") || strings.Contains(s, "double"):
		return "decimal"
	case strings.Contains(s, "date") || strings.Contains(s, "time"):
		return "datetime"
	case s == "raw" || strings.Contains(s, "blob"):
		return "binary"
	default:
		return s
	}
}

func (d *OracleDialect) GetSchemaName(input string) string {
	return strings.ToUpper(input)
}
