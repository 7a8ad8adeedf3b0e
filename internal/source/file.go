package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File reads a local .xlsx or .csv file.
type File struct {
	path string
}

// NewFile returns a Source for a local spreadsheet file.
func NewFile(path string) *File {
	return &File{path: path}
}

// Name returns the file path.
func (f *File) Name() string {
	return f.path
}

// Rows reads the file. CSV rows may have differing lengths.
func (f *File) Rows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(f.path))
	if ext != ".xlsx" && ext != ".csv" {
		return nil, fmt.Errorf("%s: %w", f.path, ErrUnsupportedFormat)
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.path, err)
	}
	defer file.Close()

	if ext == ".xlsx" {
		rows, err := readWorkbook(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.path, err)
		}
		return rows, nil
	}

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv %s: %w", f.path, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}
