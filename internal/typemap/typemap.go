// Package typemap rewrites source column types into Oracle target types.
package typemap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"sheet2ddl/internal/schema"
)

// Dialect is the source database flavour a spreadsheet was exported from.
type Dialect string

const (
	Mssql Dialect = "Mssql"
	DB2   Dialect = "DB2"
)

// Dialects lists the supported dialects in display order.
var Dialects = []Dialect{Mssql, DB2}

var ErrUnknownDialect = errors.New("unknown dialect")

// ParseDialect matches s case-insensitively against the supported dialects.
func ParseDialect(s string) (Dialect, error) {
	for _, d := range Dialects {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %s, %s)", ErrUnknownDialect, s, Mssql, DB2)
}

var db2Types = map[string]string{
	"char":     "Varchar2",
	"varchar":  "Varchar2",
	"time":     "Varchar2(15)",
	"smallint": "Number(5)",
	"integer":  "Number(10)",
	"bigint":   "Number(19)",
	"timestmp": "Timestamp(6)",
	"date":     "Date",
	"boolean":  "Number(1)",
	"decimal":  "Number",
	"numeric":  "Number",
	"double":   "Binary_Double",
	"float":    "Binary_Double",
	"real":     "Binary_Double",
	"int":      "Number(10)",
	"nvarchar": "Varchar2",
}

var mssqlTypes = map[string]string{
	"char":             "Varchar2",
	"varchar":          "Varchar2",
	"smallint":         "Number(5)",
	"integer":          "Number(10)",
	"bigint":           "Number(20)",
	"datetime":         "Date",
	"date":             "Date",
	"decimal":          "Number",
	"numeric":          "Number",
	"float":            "Float(53)",
	"real":             "Float(24)",
	"bit":              "Number(3)",
	"money":            "Number(19,4)",
	"tinyint":          "Number(3)",
	"text":             "Long",
	"timestamp":        "Raw",
	"timestmp":         "Raw",
	"uniqueidentifier": "Varchar2(36)",
	"int":              "Number(10)",
	"nvarchar":         "Varchar2",
}

// Target types that already carry their precision.
var lengthEmbedded = map[string]bool{}

func init() {
	for _, m := range []map[string]string{db2Types, mssqlTypes} {
		for _, target := range m {
			if strings.Contains(target, "(") {
				lengthEmbedded[target] = true
			}
		}
	}
}

func table(d Dialect) map[string]string {
	switch d {
	case DB2:
		return db2Types
	case Mssql:
		return mssqlTypes
	default:
		return nil
	}
}

// Map returns the target type for sourceType under d. On a miss the original
// string comes back unchanged and ok is false.
func Map(d Dialect, sourceType string) (target string, ok bool) {
	target, ok = table(d)[strings.ToLower(sourceType)]
	if !ok {
		return sourceType, false
	}
	return target, true
}

// MapColumns returns copies of cols with TargetType set. The distinct source
// types that had no mapping are returned in first-seen order.
func MapColumns(d Dialect, cols []schema.Column) ([]schema.Column, []string) {
	out := make([]schema.Column, len(cols))
	var unmapped []string
	seen := make(map[string]bool)

	for i, c := range cols {
		target, ok := Map(d, c.SourceType)
		if !ok && !seen[c.SourceType] {
			seen[c.SourceType] = true
			unmapped = append(unmapped, c.SourceType)
		}
		c.TargetType = target
		out[i] = c
	}
	return out, unmapped
}

// LengthEmbedded reports whether target is a type whose width is fixed by
// the mapping itself.
func LengthEmbedded(target string) bool {
	return lengthEmbedded[target]
}

// SourceTypes lists the mapped source types of d, sorted.
func SourceTypes(d Dialect) []string {
	m := table(d)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
