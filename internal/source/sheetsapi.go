package source

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsAPI reads a spreadsheet through the Google Sheets API v4.
// Unlike Export it works for private sheets the credentials can read.
type SheetsAPI struct {
	srv     *sheets.Service
	sheetID string
	rng     string
}

// NewSheetsAPI returns a Source for a sheet ID. An empty rng reads the whole
// first worksheet.
func NewSheetsAPI(srv *sheets.Service, sheetID, rng string) *SheetsAPI {
	return &SheetsAPI{srv: srv, sheetID: sheetID, rng: rng}
}

// NewSheetsService creates a read-only Sheets service. With an API key the
// sheet must be shared publicly; otherwise Application Default Credentials
// are used.
func NewSheetsService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*sheets.Service, error) {
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else {
		client, err := google.DefaultClient(ctx, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("failed to load default google credentials: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(client))
	}

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}
	return srv, nil
}

// Name returns the sheet ID.
func (s *SheetsAPI) Name() string {
	return "sheets:" + s.sheetID
}

// Rows fetches the configured range, or the first worksheet when no range is set.
func (s *SheetsAPI) Rows(ctx context.Context) ([][]string, error) {
	rng := s.rng
	if rng == "" {
		meta, err := s.srv.Spreadsheets.Get(s.sheetID).Fields("sheets.properties.title").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("unable to read spreadsheet %s: %w", s.sheetID, err)
		}
		if len(meta.Sheets) == 0 || meta.Sheets[0].Properties == nil {
			return nil, fmt.Errorf("spreadsheet %s has no sheets", s.sheetID)
		}
		rng = meta.Sheets[0].Properties.Title
	}

	resp, err := s.srv.Spreadsheets.Values.Get(s.sheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read values of %s: %w", s.sheetID, err)
	}
	return toRows(resp.Values), nil
}

// toRows converts API values to strings. Numbers keep their shortest
// decimal form so amounts and serial dates parse downstream.
func toRows(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		out := make([]string, len(row))
		for j, v := range row {
			switch tv := v.(type) {
			case nil:
			case string:
				out[j] = tv
			case float64:
				out[j] = formatNumber(tv)
			default:
				out[j] = fmt.Sprint(tv)
			}
		}
		rows[i] = out
	}
	return rows
}
