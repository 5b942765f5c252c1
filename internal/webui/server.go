// Package webui serves the upload form and a small HTTP API around the
// generation pipeline.
//
// Routes:
//
//	GET  /              → form
//	POST /generate      → runs the pipeline on the upload; renders highlighted SQL
//	POST /download      → returns a rendered script as <table>.sql
//	POST /api/generate  → machine-friendly, returns the script as an attachment
//	GET  /metrics       → Prometheus
//	GET  /healthz
package webui

import (
	"context"
	_ "embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/engine"
	"sheet2ddl/internal/sheet"
	"sheet2ddl/internal/typemap"
)

const defaultMaxUpload = 32 << 20

// Config controls server startup and the form defaults.
type Config struct {
	Addr           string
	MaxUploadBytes int64
	Dialect        typemap.Dialect
	Layout         sheet.Layout
	Options        ddl.Options
}

// Server wraps http.Server for convenience.
type Server struct {
	cfg      Config
	mux      *http.ServeMux
	tmpl     *template.Template
	pipeline *engine.Pipeline
	metrics  http.Handler
}

// NewServer constructs a Server with routes and embedded template.
// metricsHandler may be nil, in which case /metrics is not served.
func NewServer(cfg Config, p *engine.Pipeline, metricsHandler http.Handler) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUpload
	}
	if cfg.Dialect == "" {
		cfg.Dialect = typemap.Mssql
	}
	s := &Server{
		cfg:      cfg,
		mux:      http.NewServeMux(),
		tmpl:     template.Must(template.New("index").Parse(indexHTML)),
		pipeline: p,
		metrics:  metricsHandler,
	}
	s.routes()
	return s
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return withRequestID(s.mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("web ui listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /generate", s.handleGenerate)
	s.mux.HandleFunc("POST /download", s.handleDownload)
	s.mux.HandleFunc("POST /api/generate", s.handleAPIGenerate)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok\n")
	})
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics)
	}
}

type pageData struct {
	Schema      string
	Dialect     string
	Dialects    []typemap.Dialect
	Error       string
	TableName   string
	SQL         string
	Highlighted template.HTML
	Unmapped    []string
}

func (s *Server) page() pageData {
	return pageData{
		Schema:   s.cfg.Options.Schema,
		Dialect:  string(s.cfg.Dialect),
		Dialects: typemap.Dialects,
	}
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.Execute(w, data); err != nil {
		slog.Error("template error", "error", err)
	}
}

// handleIndex renders the input form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, s.page())
}

// handleGenerate processes the form and renders the result inline. An empty
// upload renders the bare form.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	data := s.page()

	script, err := s.generate(w, r, &data)
	switch {
	case errors.Is(err, engine.ErrEmptyUpload):
		s.render(w, http.StatusOK, data)
		return
	case err != nil:
		data.Error = err.Error()
		s.render(w, statusFor(err), data)
		return
	}

	highlighted, err := highlightSQL(script.SQL)
	if err != nil {
		slog.Warn("highlight failed, showing plain text", "error", err)
		highlighted = template.HTML("<pre>" + template.HTMLEscapeString(script.SQL) + "</pre>")
	}
	data.TableName = script.TableName
	data.SQL = script.SQL
	data.Highlighted = highlighted
	data.Unmapped = script.Unmapped
	s.render(w, http.StatusOK, data)
}

// handleDownload returns a script rendered earlier by /generate.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form: "+err.Error(), http.StatusBadRequest)
		return
	}
	table := strings.TrimSpace(r.FormValue("table"))
	if !ddl.ValidTableName(table) {
		http.Error(w, "invalid table name", http.StatusBadRequest)
		return
	}
	// Browsers submit form newlines as CRLF.
	sql := strings.ReplaceAll(r.FormValue("sql"), "\r\n", "\n")
	writeScript(w, ddl.Script{TableName: table, SQL: sql})
}

// handleAPIGenerate returns the script directly so scripts can curl it.
func (s *Server) handleAPIGenerate(w http.ResponseWriter, r *http.Request) {
	data := s.page()
	script, err := s.generate(w, r, &data)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeScript(w, script)
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, data *pageData) (ddl.Script, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return ddl.Script{}, &formError{err: err}
	}

	if v := strings.TrimSpace(r.FormValue("schema")); v != "" {
		data.Schema = v
	}
	if v := strings.TrimSpace(r.FormValue("dialect")); v != "" {
		data.Dialect = v
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return ddl.Script{}, engine.ErrEmptyUpload
	}
	if err != nil {
		return ddl.Script{}, &formError{err: err}
	}
	defer file.Close()

	opts := s.cfg.Options
	opts.Schema = data.Schema
	return s.pipeline.Generate(engine.Request{
		Reader:   file,
		FileName: header.Filename,
		Dialect:  typemap.Dialect(data.Dialect),
		Layout:   s.cfg.Layout,
		Options:  opts,
	})
}

type formError struct{ err error }

func (e *formError) Error() string { return "bad form: " + e.err.Error() }
func (e *formError) Unwrap() error { return e.err }

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func writeScript(w http.ResponseWriter, script ddl.Script) {
	w.Header().Set("Content-Type", "text/sql; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": script.FileName()}))
	io.WriteString(w, script.SQL)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// withRequestID tags every request with an id, echoed in X-Request-Id.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		slog.Info("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start))
	})
}

// indexHTML is the embedded page.
//
//go:embed index.tmpl.html
var indexHTML string
