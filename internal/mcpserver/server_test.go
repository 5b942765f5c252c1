package mcpserver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/engine"
	"sheet2ddl/internal/schema"
	"sheet2ddl/internal/sheet"
	"sheet2ddl/internal/typemap"
)

func testTools() *tools {
	return &tools{
		pipeline: engine.NewPipeline(nil),
		defaults: Defaults{
			Dialect: typemap.Mssql,
			Layout:  sheet.DefaultLayout(),
			Options: ddl.Options{Schema: "wods5"},
		},
	}
}

func writeSheet(t *testing.T, dir string, cols []schema.Column) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, sheet.Write(&buf, cols, sheet.DefaultLayout()))
	path := filepath.Join(dir, cols[0].TableName+".xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestNewRegistersTools(t *testing.T) {
	s := New(engine.NewPipeline(nil), testTools().defaults, "test")
	require.NotNil(t, s)
}

func TestGenerateCore(t *testing.T) {
	path := writeSheet(t, t.TempDir(), []schema.Column{
		{TableName: "SIPARIS", Name: "SIPARIS_NO", SourceType: "integer", IsPK: true},
		{TableName: "SIPARIS", Name: "KAYIT_ZAMAN", SourceType: "timestmp"},
	})

	t.Run("defaults", func(t *testing.T) {
		script, err := testTools().generateCore(path, "", "")
		require.NoError(t, err)
		assert.Contains(t, script.SQL, "CREATE TABLE wods5.SIPARIS (")
		assert.Contains(t, script.SQL, "KAYIT_ZAMAN Raw")
		assert.Contains(t, script.SQL, "TABLESPACE TBS_WODS5;")
	})

	t.Run("db2_and_schema_override", func(t *testing.T) {
		script, err := testTools().generateCore(path, "db2", "stage")
		require.NoError(t, err)
		assert.Contains(t, script.SQL, "CREATE TABLE stage.SIPARIS (")
		assert.Contains(t, script.SQL, "KAYIT_ZAMAN Timestamp(6)")
		assert.Contains(t, script.SQL, "TABLESPACE TBS_STAGE;")
	})

	t.Run("unknown_dialect", func(t *testing.T) {
		_, err := testTools().generateCore(path, "oracle", "")
		assert.ErrorIs(t, err, typemap.ErrUnknownDialect)
	})

	t.Run("unsupported_file", func(t *testing.T) {
		_, err := testTools().generateCore(filepath.Join(t.TempDir(), "cols.csv"), "", "")
		assert.ErrorIs(t, err, sheet.ErrUnsupportedFormat)
	})
}

func TestHandleGenerateDDL(t *testing.T) {
	path := writeSheet(t, t.TempDir(), []schema.Column{
		{TableName: "KISI", Name: "TCKN", SourceType: "char", Length: "11", IsPK: true},
	})

	res, err := testTools().handleGenerateDDL(context.Background(), toolRequest(map[string]any{"file_path": path}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "CONSTRAINT PK_KISI PRIMARY KEY (TCKN)")

	res, err = testTools().handleGenerateDDL(context.Background(), toolRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "file_path parameter is required")
}

func TestMapTypeCore(t *testing.T) {
	out, err := mapTypeCore("BIGINT", "mssql")
	require.NoError(t, err)
	assert.JSONEq(t, `{"source_type":"BIGINT","dialect":"Mssql","target_type":"Number(20)","mapped":true}`, out)

	out, err = mapTypeCore("xml", "DB2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"source_type":"xml","dialect":"DB2","target_type":"xml","mapped":false}`, out)

	_, err = mapTypeCore("int", "postgres")
	assert.ErrorIs(t, err, typemap.ErrUnknownDialect)
}

func TestHandleMapType(t *testing.T) {
	res, err := handleMapType(context.Background(), toolRequest(map[string]any{"source_type": "money", "dialect": "Mssql"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"target_type": "Number(19,4)"`)

	res, err = handleMapType(context.Background(), toolRequest(map[string]any{"source_type": "money"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
