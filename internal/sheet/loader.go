// Package sheet reads column-definition spreadsheets into schema.Column
// records and writes them back in the same layout.
//
// Two formats are accepted:
//
//   - .xlsx workbooks, read from the first worksheet.
//   - .xls files, either genuine BIFF workbooks or the HTML-table exports
//     many reporting tools save under that extension.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"sheet2ddl/internal/schema"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrNoRows            = errors.New("spreadsheet has no column rows")
)

// MissingColumnError names a required header that was not found.
type MissingColumnError struct {
	Column string
	Found  []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s %q (header has: %s)", ErrMissingColumn, e.Column, strings.Join(e.Found, ", "))
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// Format is a recognised spreadsheet kind.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// DetectFormat maps a file name to its Format by extension.
func DetectFormat(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	default:
		return "", fmt.Errorf("%w: %q (want .xlsx or .xls)", ErrUnsupportedFormat, filepath.Base(fileName))
	}
}

// Load parses the spreadsheet in r. fileName only decides the format.
func Load(r io.ReadSeeker, fileName string, layout Layout) ([]schema.Column, error) {
	format, err := DetectFormat(fileName)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	var (
		rows      [][]string
		headerRow int
	)
	switch format {
	case FormatXLSX:
		rows, err = readXLSX(r)
		headerRow = layout.HeaderRowXLSX
	case FormatXLS:
		rows, err = readLegacy(r)
		headerRow = layout.HeaderRowXLS
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(fileName), err)
	}

	slog.Debug("spreadsheet read", "file", fileName, "format", format, "rows", len(rows))
	return records(rows, headerRow, layout)
}

// ole2Magic prefixes every compound-document (BIFF) workbook.
var ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

func readLegacy(r io.Reader) ([][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(b, ole2Magic) {
		return readBIFF(bytes.NewReader(b))
	}
	return readHTMLTable(bytes.NewReader(b))
}

// records promotes rows[headerRow] to the header and converts every later
// row into a Column.
func records(rows [][]string, headerRow int, layout Layout) ([]schema.Column, error) {
	var header []string
	if headerRow < len(rows) {
		header = rows[headerRow]
	}

	index := make(map[string]int, len(header))
	found := make([]string, 0, len(header))
	for i, h := range header {
		h = cleanCell(h)
		if h == "" {
			continue
		}
		found = append(found, h)
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	required := layout.required()
	pos := make([]int, len(required))
	for i, name := range required {
		p, ok := index[name]
		if !ok {
			return nil, &MissingColumnError{Column: name, Found: found}
		}
		pos[i] = p
	}

	var cols []schema.Column
	if headerRow+1 < len(rows) {
		for _, row := range rows[headerRow+1:] {
			cell := func(i int) string {
				if pos[i] < len(row) {
					return cleanCell(row[pos[i]])
				}
				return ""
			}

			tableName, name, typ, length, pk := cell(0), cell(1), cell(2), cell(3), cell(4)
			if tableName == "" && name == "" && typ == "" && length == "" && pk == "" {
				continue
			}

			cols = append(cols, schema.Column{
				TableName:  tableName,
				Name:       name,
				SourceType: typ,
				Length:     normalizeLength(length),
				IsPK:       pk == layout.PKMarker,
			})
		}
	}

	if len(cols) == 0 {
		return nil, ErrNoRows
	}
	return cols, nil
}

func cleanCell(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// normalizeLength renders integral numbers without a fraction ("10.0" ->
// "10") and drops placeholder values for missing cells.
func normalizeLength(s string) string {
	switch strings.ToLower(s) {
	case "", "nan", "none", "null":
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}
