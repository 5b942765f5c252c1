package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/metrics"
	"sheet2ddl/internal/schema"
	"sheet2ddl/internal/sheet"
	"sheet2ddl/internal/typemap"
)

var ErrEmptyUpload = errors.New("empty upload")

// Request is one conversion: a spreadsheet plus the choices made for it.
type Request struct {
	Reader   io.ReadSeeker
	FileName string
	Dialect  typemap.Dialect
	Layout   sheet.Layout
	Options  ddl.Options
}

// Pipeline runs Loader -> Type Mapper -> Script Generator.
type Pipeline struct {
	rec metrics.Recorder
}

// NewPipeline returns a Pipeline reporting to rec; nil discards metrics.
func NewPipeline(rec metrics.Recorder) *Pipeline {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Pipeline{rec: rec}
}

// Generate converts req into a DDL script.
func (p *Pipeline) Generate(req Request) (ddl.Script, error) {
	if d, err := typemap.ParseDialect(string(req.Dialect)); err == nil {
		req.Dialect = d
	}
	script, err := p.generate(req)

	status := "ok"
	if err != nil {
		status = "error"
	}
	p.rec.Script(dialectLabel(req.Dialect), status, len(script.Columns))
	return script, err
}

// GenerateFile opens path and converts it.
func (p *Pipeline) GenerateFile(path string, req Request) (ddl.Script, error) {
	// Reject by extension before touching the file.
	if _, err := sheet.DetectFormat(path); err != nil {
		p.rec.Script(dialectLabel(req.Dialect), "error", 0)
		return ddl.Script{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		p.rec.Script(dialectLabel(req.Dialect), "error", 0)
		return ddl.Script{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	req.Reader = f
	if req.FileName == "" {
		req.FileName = path
	}
	return p.Generate(req)
}

// dialectLabel keeps free-form user input out of metric labels.
func dialectLabel(d typemap.Dialect) string {
	if parsed, err := typemap.ParseDialect(string(d)); err == nil {
		return string(parsed)
	}
	return "unknown"
}

func (p *Pipeline) generate(req Request) (ddl.Script, error) {
	if _, err := typemap.ParseDialect(string(req.Dialect)); err != nil {
		return ddl.Script{}, err
	}
	if _, err := sheet.DetectFormat(req.FileName); err != nil {
		return ddl.Script{}, err
	}

	size, err := req.Reader.Seek(0, io.SeekEnd)
	if err != nil {
		return ddl.Script{}, fmt.Errorf("failed to size upload: %w", err)
	}
	if size == 0 {
		return ddl.Script{}, ErrEmptyUpload
	}
	if _, err := req.Reader.Seek(0, io.SeekStart); err != nil {
		return ddl.Script{}, fmt.Errorf("failed to rewind upload: %w", err)
	}

	// 1. Load
	cols, err := sheet.Load(req.Reader, req.FileName, req.Layout)
	if err != nil {
		return ddl.Script{}, err
	}
	table, others := schema.NewTable(cols)
	if len(others) > 0 {
		slog.Warn("spreadsheet mixes table names, using the first", "table", table.Name, "others", others)
	}

	// 2. Map
	mapped, unmapped := typemap.MapColumns(req.Dialect, cols)
	if len(unmapped) > 0 {
		slog.Warn("source types passed through without mapping", "table", table.Name, "dialect", req.Dialect, "types", unmapped)
		p.rec.Unmapped(string(req.Dialect), len(unmapped))
	}

	// 3. Render
	script, err := ddl.Build(mapped, req.Options)
	if err != nil {
		return ddl.Script{}, fmt.Errorf("failed to build script for %s: %w", table.Name, err)
	}
	script.Unmapped = unmapped

	slog.Info("script generated",
		"file", req.FileName,
		"table", script.TableName,
		"dialect", req.Dialect,
		"columns", len(script.Columns),
		"primary_keys", len(table.PrimaryKeys()))
	return script, nil
}
