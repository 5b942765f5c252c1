package dialect

// Dialect abstracts database-specific SQL used by describe and apply.
type Dialect interface {
	// Catalog Queries (args: schema, table)
	GetColumnsQuery() string
	GetTableExistsQuery() string

	// Query Generation
	InsertQuery(table string, cols []string) string
	DropTableQuery(table string) string
	CountQuery(table string) string
	Placeholder(index int) string // Returns :1, @p1, etc.

	// Helpers
	NormalizeType(sqlType string) string
	GetSchemaName(input string) string
}
