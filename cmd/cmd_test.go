package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/schema"
	"sheet2ddl/internal/sheet"
)

// setViper overrides key for the duration of the test.
func setViper(t *testing.T, key string, value interface{}) {
	t.Helper()
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, nil) })
}

func writeCustomerSheet(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, sheet.Write(&buf, []schema.Column{
		{TableName: "CUSTOMER", Name: "ID", SourceType: "int", Length: "10", IsPK: true},
		{TableName: "CUSTOMER", Name: "NAME", SourceType: "varchar", Length: "50"},
		{TableName: "CUSTOMER", Name: "CREATED", SourceType: "date"},
	}, sheet.DefaultLayout()))

	path := filepath.Join(dir, "customer.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})
	err := RootCmd.Execute()
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger(&buf, "debug", "json")
	require.NoError(t, err)
	logger.Debug("hello", "table", "CUSTOMER")
	assert.Contains(t, buf.String(), `"table":"CUSTOMER"`)

	buf.Reset()
	logger, err = newLogger(&buf, "WARN", "text")
	require.NoError(t, err)
	logger.Info("dropped")
	assert.Empty(t, buf.String())

	_, err = newLogger(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = newLogger(&buf, "info", "xml")
	assert.Error(t, err)
}

func TestGetActiveDBConfig(t *testing.T) {
	setViper(t, "databases", []map[string]interface{}{
		{"name": "src", "role": "source", "driver": "sqlserver", "dsn": "sqlserver://u:p@h?database=x", "active": true},
		{"name": "dwh", "role": "target", "driver": "oracle", "dsn": "oracle://u:p@h/ORCL", "active": true},
		{"name": "old", "role": "target", "driver": "oracle", "dsn": "oracle://u:p@h/OLD", "active": false},
	})

	cfg, err := GetActiveDBConfig(RoleTarget)
	require.NoError(t, err)
	assert.Equal(t, "dwh", cfg.Name)
	assert.Equal(t, "oracle", cfg.Driver)

	cfg, err = GetActiveDBConfig(RoleSource)
	require.NoError(t, err)
	assert.Equal(t, "src", cfg.Name)
}

func TestGetActiveDBConfigErrors(t *testing.T) {
	setViper(t, "databases", []map[string]interface{}{
		{"name": "a", "role": "target", "driver": "oracle", "active": true},
		{"name": "b", "role": "target", "driver": "oracle", "active": true},
	})

	_, err := GetActiveDBConfig(RoleTarget)
	assert.ErrorContains(t, err, "multiple active target databases")

	_, err = GetActiveDBConfig(RoleSource)
	assert.ErrorContains(t, err, "no active source database")
}

func TestResolveDBConfigPrefersDSNFlag(t *testing.T) {
	dsnFlag = "oracle://u:p@localhost:1521/XE"
	t.Cleanup(func() { dsnFlag = "" })

	cfg, err := resolveDBConfig(RoleTarget)
	require.NoError(t, err)
	assert.Equal(t, "oracle", cfg.Driver)

	cfg, err = resolveDBConfig(RoleSource)
	require.NoError(t, err)
	assert.Equal(t, "sqlserver", cfg.Driver)
}

func TestLoadLayoutFromConfig(t *testing.T) {
	setViper(t, "sheet", map[string]interface{}{
		"table":     "TABLE_NAME",
		"pk_marker": "Y",
	})

	layout, err := loadLayout()
	require.NoError(t, err)
	assert.Equal(t, "TABLE_NAME", layout.TableColumn)
	assert.Equal(t, "Y", layout.PKMarker)
	assert.Equal(t, "KolonAd", layout.NameColumn)
}

func TestLoadOptions(t *testing.T) {
	setViper(t, "generate.schema", "stage")
	setViper(t, "ddl.tablespace_mode", "fixed")
	setViper(t, "ddl.tablespace", "TBS_STAGE_DATA")

	opts, err := loadOptions()
	require.NoError(t, err)
	assert.Equal(t, ddl.Options{Schema: "stage", TablespaceMode: ddl.TablespaceFixed, Tablespace: "TBS_STAGE_DATA"}, opts)

	setViper(t, "ddl.tablespace_mode", "both")
	_, err = loadOptions()
	assert.Error(t, err)
}

func TestGenerateCommandWritesScript(t *testing.T) {
	dir := t.TempDir()
	path := writeCustomerSheet(t, dir)
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "generate", path, "--out-dir", outDir, "--schema", "wods5", "--dialect", "Mssql")
	require.NoError(t, err)
	assert.Contains(t, out, "Summary Report")
	assert.Contains(t, out, "CUSTOMER.sql")

	sql, err := os.ReadFile(filepath.Join(outDir, "CUSTOMER.sql"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(sql), "CREATE TABLE wods5.CUSTOMER (\n\tID Number(10),"))
	assert.Contains(t, string(sql), "CONSTRAINT PK_CUSTOMER PRIMARY KEY (ID)")
}

func TestGenerateCommandReportsFailures(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "generate", filepath.Join(dir, "columns.csv"), "--out-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 files failed")
	assert.Contains(t, out, "unsupported file format")
}

func TestApplyDryRunPrintsScripts(t *testing.T) {
	path := writeCustomerSheet(t, t.TempDir())

	out, err := execute(t, "apply", path, "--dry-run", "--schema", "wods5")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE wods5.CUSTOMER (")
	assert.Contains(t, out, ") TABLESPACE TBS_WODS5;")
}

func TestGenerateCommandRejectsPathInTableName(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	var buf bytes.Buffer
	require.NoError(t, sheet.Write(&buf, []schema.Column{
		{TableName: "../escaped", Name: "ID", SourceType: "int", IsPK: true},
	}, sheet.DefaultLayout()))
	path := filepath.Join(dir, "escaped.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	out, err := execute(t, "generate", path, "--out-dir", outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 files failed")
	assert.Contains(t, out, "invalid table name")
	assert.NoFileExists(t, filepath.Join(dir, "escaped.sql"))
}
