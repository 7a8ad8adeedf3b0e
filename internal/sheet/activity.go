package sheet

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cobby8/allowance-manager-web/internal/models"
)

// ParseActivityLog walks an activity-log sheet and returns its data rows.
//
// The log is grouped by day: a row whose first cell is a date ("10월 11일"
// or an Excel serial number) opens a new date context, and every data row
// below it carries that date. Header rows may repeat under each date and may
// move columns around, so the header map is rebuilt whenever a row contains
// recognised headers.
//
// A data row needs a name cell. Rows without one, and rows whose name cell is
// the header text itself, are skipped.
func ParseActivityLog(rows [][]string, columns Columns) []models.ActivityRecord {
	var (
		records []models.ActivityRecord
		index   map[Field]int
		date    string
	)

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}

		if d, ok := ParseDateCell(row[0]); ok {
			date = d
			if next := columns.headerIndex(row); len(next) > 0 {
				index = next
			}
			continue
		}

		if next := columns.headerIndex(row); isHeaderRow(next) {
			index = next
			continue
		}

		if index == nil {
			continue
		}
		_, hasName := index[FieldName]
		_, hasGross := index[FieldGrossAmount]
		if !hasName && !hasGross {
			continue
		}

		name := cell(row, index, FieldName)
		if name == "" || isHeaderText(columns, name) {
			continue
		}

		records = append(records, models.ActivityRecord{
			Date:          date,
			Category:      cell(row, index, FieldCategory),
			Name:          name,
			ResidentID:    cell(row, index, FieldResidentID),
			PhoneNumber:   cell(row, index, FieldPhoneNumber),
			BankName:      cell(row, index, FieldBankName),
			AccountNumber: cell(row, index, FieldAccountNumber),
			GrossAmount:   ParseAmount(cell(row, index, FieldGrossAmount)),
			BusinessTax:   ParseAmount(cell(row, index, FieldBusinessTax)),
			LocalTax:      ParseAmount(cell(row, index, FieldLocalTax)),
			NetAmount:     ParseAmount(cell(row, index, FieldNetAmount)),
		})
	}
	return records
}

// isHeaderRow reports whether a row's recognised headers look like a header
// line rather than a data row that happens to contain a header word (such as
// a category value). Two or more recognised columns are required.
func isHeaderRow(index map[Field]int) bool {
	return len(index) >= 2
}

func isHeaderText(columns Columns, s string) bool {
	f, ok := columns.Lookup(s)
	return ok && f == FieldName
}

// ParseAmount parses a money cell. Thousands separators, currency marks and
// surrounding spaces are ignored. Unparsable or empty cells are zero.
func ParseAmount(s string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
