package typemap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheet2ddl/internal/schema"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{in: "Mssql", want: Mssql},
		{in: "mssql", want: Mssql},
		{in: " DB2 ", want: DB2},
		{in: "db2", want: DB2},
		{in: "oracle", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDialect(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownDialect)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapEveryEntryCaseInsensitive(t *testing.T) {
	for _, d := range Dialects {
		for src, want := range table(d) {
			for _, in := range []string{src, strings.ToUpper(src), strings.ToUpper(src[:1]) + src[1:]} {
				got, ok := Map(d, in)
				assert.True(t, ok, "%s %q", d, in)
				assert.Equal(t, want, got, "%s %q", d, in)
			}
		}
	}
}

func TestMapFallsBackToOriginal(t *testing.T) {
	for _, d := range Dialects {
		for _, in := range []string{"GEOGRAPHY", "xml", "Interval Day", ""} {
			got, ok := Map(d, in)
			assert.False(t, ok)
			assert.Equal(t, in, got)
		}
	}
}

func TestDialectAsymmetries(t *testing.T) {
	got, ok := Map(DB2, "TIMESTMP")
	require.True(t, ok)
	assert.Equal(t, "Timestamp(6)", got)

	got, ok = Map(DB2, "timestamp")
	assert.False(t, ok)
	assert.Equal(t, "timestamp", got)

	got, _ = Map(Mssql, "timestamp")
	assert.Equal(t, "Raw", got)
	got, _ = Map(Mssql, "timestmp")
	assert.Equal(t, "Raw", got)

	got, _ = Map(DB2, "bigint")
	assert.Equal(t, "Number(19)", got)
	got, _ = Map(Mssql, "bigint")
	assert.Equal(t, "Number(20)", got)
}

func TestMapColumnsDoesNotMutateInput(t *testing.T) {
	in := []schema.Column{
		{TableName: "T", Name: "ID", SourceType: "INT", Length: "10"},
		{TableName: "T", Name: "GEO", SourceType: "geography"},
		{TableName: "T", Name: "GEO2", SourceType: "geography"},
		{TableName: "T", Name: "X", SourceType: "Xml"},
	}

	out, unmapped := MapColumns(Mssql, in)

	require.Len(t, out, len(in))
	assert.Equal(t, "Number(10)", out[0].TargetType)
	assert.Equal(t, "geography", out[1].TargetType)
	assert.Equal(t, "Xml", out[3].TargetType)
	assert.Equal(t, []string{"geography", "Xml"}, unmapped)

	for _, c := range in {
		assert.Empty(t, c.TargetType)
	}
}

func TestLengthEmbeddedMatchesKnownList(t *testing.T) {
	known := []string{
		"Varchar2(15)", "Number(5)", "Number(10)", "Number(19)", "Timestamp(6)",
		"Number(1)", "Number(20)", "Float(53)", "Float(24)", "Number(3)",
		"Number(19,4)", "Varchar2(36)",
	}
	for _, k := range known {
		assert.True(t, LengthEmbedded(k), k)
	}
	assert.Len(t, lengthEmbedded, len(known))

	for _, k := range []string{"Varchar2", "Number", "Date", "Long", "Raw", "Binary_Double"} {
		assert.False(t, LengthEmbedded(k), k)
	}
}

func TestSourceTypesSorted(t *testing.T) {
	types := SourceTypes(DB2)
	assert.Len(t, types, len(db2Types))
	assert.IsIncreasing(t, types)
}
