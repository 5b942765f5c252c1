// Package ddl renders Oracle CREATE TABLE scripts from mapped column records.
//
// The generated script has the form:
//
//	CREATE TABLE schema.table (
//		COL1 Number(10),
//		COL2 Varchar2(50),
//		VA_AKTAR_TAR DATE DEFAULT trunc(sysdate),
//		VA_AKTAR_ZMN VARCHAR2(15 BYTE) DEFAULT to_CHAR(sysdate, 'HH24:MI:SS'),
//		CONSTRAINT PK_table PRIMARY KEY (COL1)
//		) TABLESPACE TBS_SCHEMA;
//
// Column types are taken from Column.TargetType as set by the typemap
// package.
package ddl

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"sheet2ddl/internal/schema"
	"sheet2ddl/internal/typemap"
)

// Audit columns appended to every table.
const (
	AuditDateColumn = "VA_AKTAR_TAR DATE DEFAULT trunc(sysdate)"
	AuditTimeColumn = "VA_AKTAR_ZMN VARCHAR2(15 BYTE) DEFAULT to_CHAR(sysdate, 'HH24:MI:SS')"
)

// AuditColumnNames are the names of the audit columns, in output order.
var AuditColumnNames = []string{"VA_AKTAR_TAR", "VA_AKTAR_ZMN"}

var (
	ErrNoColumns        = errors.New("no columns to render")
	ErrEmptySchema      = errors.New("schema name must not be empty")
	ErrEmptyTable       = errors.New("table name must not be empty")
	ErrInvalidTableName = errors.New("invalid table name")
)

// Unquoted identifier characters. Letters include non-ASCII ones (MÜŞTERİ).
var tableNameRe = regexp.MustCompile(`^[\p{L}\p{N}_$#]+$`)

// ValidTableName reports whether name can be used unquoted in a script and
// as a download file name.
func ValidTableName(name string) bool {
	return tableNameRe.MatchString(name)
}

// TablespaceMode selects how the TABLESPACE clause is named.
type TablespaceMode string

const (
	// TablespaceFromSchema names the tablespace TBS_<UPPER(schema)>.
	TablespaceFromSchema TablespaceMode = "schema"
	// TablespaceFixed uses Options.Tablespace verbatim.
	TablespaceFixed TablespaceMode = "fixed"
)

// DefaultTablespace is the literal used by the fixed convention when none is
// configured.
const DefaultTablespace = "TBS_WODS5"

// Options controls rendering.
type Options struct {
	Schema         string
	TablespaceMode TablespaceMode
	Tablespace     string
}

// ParseTablespaceMode accepts "schema" or "fixed"; empty means schema.
func ParseTablespaceMode(s string) (TablespaceMode, error) {
	switch TablespaceMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", TablespaceFromSchema:
		return TablespaceFromSchema, nil
	case TablespaceFixed:
		return TablespaceFixed, nil
	default:
		return "", fmt.Errorf("unknown tablespace mode %q (want schema or fixed)", s)
	}
}

// TablespaceName resolves the tablespace for o.
func (o Options) TablespaceName() string {
	if o.TablespaceMode == TablespaceFixed {
		if ts := strings.TrimSpace(o.Tablespace); ts != "" {
			return ts
		}
		return DefaultTablespace
	}
	return "TBS_" + strings.ToUpper(strings.TrimSpace(o.Schema))
}

// Script is a generated DDL statement.
type Script struct {
	Schema    string
	TableName string
	SQL       string
	Columns   []schema.Column
	Unmapped  []string
}

// FileName is the download name for the script.
func (s Script) FileName() string {
	return s.TableName + ".sql"
}

// Statement returns the SQL without its terminating semicolon, as database
// drivers expect for a single statement.
func (s Script) Statement() string {
	return strings.TrimSuffix(strings.TrimSpace(s.SQL), ";")
}

// QualifiedName returns schema.table.
func (s Script) QualifiedName() string {
	return s.Schema + "." + s.TableName
}

// FormatType appends the declared length to a target type unless the type
// already carries its width or no length was declared.
func FormatType(targetType, length string) string {
	length = strings.TrimSpace(length)
	if typemap.LengthEmbedded(targetType) || length == "" {
		return targetType
	}
	return fmt.Sprintf("%s(%s)", targetType, length)
}

// Build renders the CREATE TABLE script for cols. All columns are expected to
// share one table name; the first column's name is used.
func Build(cols []schema.Column, opts Options) (Script, error) {
	if len(cols) == 0 {
		return Script{}, ErrNoColumns
	}
	schemaName := strings.TrimSpace(opts.Schema)
	if schemaName == "" {
		return Script{}, ErrEmptySchema
	}

	table, _ := schema.NewTable(cols)
	switch {
	case table.Name == "":
		return Script{}, ErrEmptyTable
	case !ValidTableName(table.Name):
		return Script{}, fmt.Errorf("%w: %q", ErrInvalidTableName, table.Name)
	}

	lines := make([]string, 0, len(cols)+3)
	for _, c := range table.Columns {
		lines = append(lines, fmt.Sprintf("\t%s %s", c.Name, FormatType(c.TargetType, c.Length)))
	}
	lines = append(lines, "\t"+AuditDateColumn, "\t"+AuditTimeColumn)

	if pks := table.PrimaryKeys(); len(pks) > 0 {
		lines = append(lines, fmt.Sprintf("\tCONSTRAINT PK_%s PRIMARY KEY (%s)", table.Name, strings.Join(pks, ", ")))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("CREATE TABLE %s.%s (\n", schemaName, table.Name))
	// Joining keeps the last body line free of a trailing comma.
	sb.WriteString(strings.Join(lines, ",\n"))
	sb.WriteString(fmt.Sprintf("\n\t) TABLESPACE %s;", opts.TablespaceName()))

	return Script{
		Schema:    schemaName,
		TableName: table.Name,
		SQL:       sb.String(),
		Columns:   table.Columns,
	}, nil
}
