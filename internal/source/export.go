package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cobby8/allowance-manager-web/internal/sheet"
)

// DefaultExportBaseURL is where public Google Sheets are exported from.
const DefaultExportBaseURL = "https://docs.google.com/spreadsheets/d/"

// Export downloads a shared Google Sheet as xlsx through the public export
// endpoint. The sheet must be readable by anyone with the link.
type Export struct {
	client  *http.Client
	sheetID string
	baseURL string
}

// NewExport returns a Source for a Google Sheets URL or sheet ID.
// A nil client means http.DefaultClient; an empty baseURL means
// DefaultExportBaseURL.
func NewExport(client *http.Client, location, baseURL string) *Export {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultExportBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Export{
		client:  client,
		sheetID: sheet.ExtractSheetID(location),
		baseURL: baseURL,
	}
}

// Name returns the sheet ID.
func (e *Export) Name() string {
	return e.sheetID
}

// URL returns the export URL for the sheet.
func (e *Export) URL() string {
	return e.baseURL + e.sheetID + "/export?format=xlsx"
}

// Rows downloads the workbook and returns its first worksheet.
func (e *Export) Rows(ctx context.Context) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet %s: %w", e.sheetID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch sheet %s: %s", e.sheetID, resp.Status)
	}

	rows, err := readWorkbook(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", e.sheetID, err)
	}
	return rows, nil
}
