package webui

import (
	"bytes"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var sqlFormatter = html.New(html.WithClasses(false), html.TabWidth(4))

// highlightSQL renders sql as a self-contained <pre> block with inline styles.
func highlightSQL(sql string) (template.HTML, error) {
	lexer := lexers.Get("sql")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, sql)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := sqlFormatter.Format(&buf, style, it); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
