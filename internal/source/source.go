// Package source retrieves raw spreadsheet rows.
//
// A Source knows where a sheet lives and returns its first worksheet as
// [][]string. Header translation and typing happen in package sheet.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/sheets/v4"
)

// ErrUnsupportedFormat is returned for local files that are neither .xlsx nor .csv.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Source returns the rows of a spreadsheet's first worksheet.
type Source interface {
	// Rows fetches and returns all rows. Cells are formatted text except
	// date cells, which come through as Excel serial numbers.
	Rows(ctx context.Context) ([][]string, error)

	// Name identifies the source in logs and archives.
	Name() string
}

// Resolve picks a Source for a user-supplied location:
//
//   - "sheets:ID" reads through the Sheets API (requires opts.Sheets)
//   - a Google Sheets URL or a bare sheet ID is fetched as an xlsx export
//   - anything else is a local path
func Resolve(location string, opts Options) (Source, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, fmt.Errorf("empty sheet location")
	case strings.HasPrefix(location, "sheets:"):
		if opts.Sheets == nil {
			return nil, fmt.Errorf("sheets api source %q: no sheets service configured", location)
		}
		return NewSheetsAPI(opts.Sheets, strings.TrimPrefix(location, "sheets:"), opts.SheetRange), nil
	case strings.Contains(location, "docs.google.com/spreadsheets"):
		return NewExport(opts.HTTPClient, location, opts.ExportBaseURL), nil
	case looksLikeSheetID(location):
		return NewExport(opts.HTTPClient, location, opts.ExportBaseURL), nil
	default:
		return NewFile(location), nil
	}
}

// looksLikeSheetID reports whether s is a bare Google Sheets ID rather than a
// path: long, and made of URL-safe base64 characters only.
func looksLikeSheetID(s string) bool {
	if len(s) < 40 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// readWorkbook returns the rows of the first worksheet of an xlsx stream.
// Raw cell values are requested so date cells keep their serial numbers.
func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// Options configures Resolve.
type Options struct {
	// HTTPClient is used for export downloads. Nil means http.DefaultClient.
	HTTPClient *http.Client

	// ExportBaseURL overrides DefaultExportBaseURL (used by tests).
	ExportBaseURL string

	// Sheets enables "sheets:ID" locations.
	Sheets *sheets.Service

	// SheetRange is the A1 range read through the Sheets API.
	SheetRange string
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
