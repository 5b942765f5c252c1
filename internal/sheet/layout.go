package sheet

import (
	"errors"
	"fmt"
	"strings"
)

// Layout names the header cells the loader looks for and where the header
// row sits in each format. Header names are matched case-sensitively.
type Layout struct {
	TableColumn  string `mapstructure:"table"`
	NameColumn   string `mapstructure:"column"`
	TypeColumn   string `mapstructure:"type"`
	LengthColumn string `mapstructure:"length"`
	PKColumn     string `mapstructure:"pk"`

	// PKMarker is the cell value that flags a primary-key column.
	PKMarker string `mapstructure:"pk_marker"`

	// Raw sheet rows (0-based). The warehouse .xlsx exports carry two
	// title rows above the header.
	HeaderRowXLSX int `mapstructure:"header_row_xlsx"`
	HeaderRowXLS  int `mapstructure:"header_row_xls"`
}

// DefaultLayout matches the column-definition workbooks exported by the
// data warehouse team.
func DefaultLayout() Layout {
	return Layout{
		TableColumn:   "TabloAd",
		NameColumn:    "KolonAd",
		TypeColumn:    "VeriTipi",
		LengthColumn:  "VeriUzunluk",
		PKColumn:      "PK",
		PKMarker:      "EVET",
		HeaderRowXLSX: 2,
		HeaderRowXLS:  0,
	}
}

// required returns the header names in record order.
func (l Layout) required() []string {
	return []string{l.TableColumn, l.NameColumn, l.TypeColumn, l.LengthColumn, l.PKColumn}
}

// Validate reports an unusable layout.
func (l Layout) Validate() error {
	for _, name := range l.required() {
		if strings.TrimSpace(name) == "" {
			return errors.New("sheet layout: header names must not be empty")
		}
	}
	if l.PKMarker == "" {
		return errors.New("sheet layout: pk marker must not be empty")
	}
	if l.HeaderRowXLSX < 0 || l.HeaderRowXLS < 0 {
		return fmt.Errorf("sheet layout: header rows must not be negative (xlsx=%d, xls=%d)", l.HeaderRowXLSX, l.HeaderRowXLS)
	}
	return nil
}
