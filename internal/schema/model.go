package schema

// Column is one row of a column-definition spreadsheet.
type Column struct {
	TableName  string
	Name       string
	SourceType string
	Length     string // 비어 있을 수 있음 (date 등)
	IsPK       bool
	TargetType string // Type Mapper가 채움
}

// Table groups the columns of a single spreadsheet.
type Table struct {
	Name    string
	Columns []Column
}

// NewTable builds a Table from loaded columns. The first column's table
// name wins; mismatching names are reported back to the caller.
func NewTable(cols []Column) (Table, []string) {
	if len(cols) == 0 {
		return Table{}, nil
	}
	t := Table{Name: cols[0].TableName, Columns: cols}

	seen := map[string]bool{t.Name: true}
	var others []string
	for _, c := range cols[1:] {
		if !seen[c.TableName] {
			seen[c.TableName] = true
			others = append(others, c.TableName)
		}
	}
	return t, others
}

// PrimaryKeys returns the flagged column names in row order.
func (t Table) PrimaryKeys() []string {
	var pks []string
	for _, c := range t.Columns {
		if c.IsPK {
			pks = append(pks, c.Name)
		}
	}
	return pks
}

// 리포트용 구조체
type SeedResult struct {
	TableName string
	Target    int
	Actual    int
	Status    string
	ErrorMsg  string
}
