// Package mcpserver exposes the generator as Model Context Protocol tools
// over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/engine"
	"sheet2ddl/internal/sheet"
	"sheet2ddl/internal/typemap"
)

// Defaults fill tool arguments the caller leaves out.
type Defaults struct {
	Dialect typemap.Dialect
	Layout  sheet.Layout
	Options ddl.Options
}

type tools struct {
	pipeline *engine.Pipeline
	defaults Defaults
}

// New builds the MCP server with the generate_ddl and map_type tools.
func New(p *engine.Pipeline, defaults Defaults, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"sheet2ddl",
		version,
		server.WithToolCapabilities(false),
	)
	t := &tools{pipeline: p, defaults: defaults}

	generateTool := mcp.NewTool("generate_ddl",
		mcp.WithDescription("Generate an Oracle CREATE TABLE script from a column-definition spreadsheet (.xlsx or .xls)"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the spreadsheet"),
		),
		mcp.WithString("dialect",
			mcp.Description(fmt.Sprintf("Source database dialect (default: %s)", defaults.Dialect)),
			mcp.Enum(string(typemap.Mssql), string(typemap.DB2)),
		),
		mcp.WithString("schema",
			mcp.Description(fmt.Sprintf("Target schema name (default: %s)", defaults.Options.Schema)),
		),
	)
	s.AddTool(generateTool, t.handleGenerateDDL)

	mapTypeTool := mcp.NewTool("map_type",
		mcp.WithDescription("Look up the Oracle type a source column type maps to"),
		mcp.WithString("source_type",
			mcp.Required(),
			mcp.Description("Source column type, e.g. nvarchar or timestmp"),
		),
		mcp.WithString("dialect",
			mcp.Required(),
			mcp.Description("Source database dialect"),
			mcp.Enum(string(typemap.Mssql), string(typemap.DB2)),
		),
	)
	s.AddTool(mapTypeTool, handleMapType)

	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func Serve(p *engine.Pipeline, defaults Defaults, version string) error {
	slog.Info("starting sheet2ddl mcp server")
	return server.ServeStdio(New(p, defaults, version))
}

func (t *tools) handleGenerateDDL(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError("file_path parameter is required"), nil
	}

	script, err := t.generateCore(path, request.GetString("dialect", ""), request.GetString("schema", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(script.SQL), nil
}

func (t *tools) generateCore(path, dialectName, schemaName string) (ddl.Script, error) {
	d := t.defaults.Dialect
	if dialectName != "" {
		parsed, err := typemap.ParseDialect(dialectName)
		if err != nil {
			return ddl.Script{}, err
		}
		d = parsed
	}

	opts := t.defaults.Options
	if schemaName != "" {
		opts.Schema = schemaName
	}

	return t.pipeline.GenerateFile(path, engine.Request{
		Dialect: d,
		Layout:  t.defaults.Layout,
		Options: opts,
	})
}

func handleMapType(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sourceType, err := request.RequireString("source_type")
	if err != nil {
		return mcp.NewToolResultError("source_type parameter is required"), nil
	}
	dialectName, err := request.RequireString("dialect")
	if err != nil {
		return mcp.NewToolResultError("dialect parameter is required"), nil
	}

	out, err := mapTypeCore(sourceType, dialectName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

type mapTypeResult struct {
	SourceType string `json:"source_type"`
	Dialect    string `json:"dialect"`
	TargetType string `json:"target_type"`
	Mapped     bool   `json:"mapped"`
}

func mapTypeCore(sourceType, dialectName string) (string, error) {
	d, err := typemap.ParseDialect(dialectName)
	if err != nil {
		return "", err
	}

	target, ok := typemap.Map(d, sourceType)
	out, err := json.MarshalIndent(mapTypeResult{
		SourceType: sourceType,
		Dialect:    string(d),
		TargetType: target,
		Mapped:     ok,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(out), nil
}
