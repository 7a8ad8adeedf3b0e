package sheet

import (
	"strings"

	"github.com/cobby8/allowance-manager-web/internal/models"
)

// DefaultName is used for roster rows with an empty name cell.
const DefaultName = "Unknown"

// ParseRoster maps roster rows to PersonRecords.
//
// The first row that contains at least one recognised header is the header
// row; every later row with any non-blank cell becomes one record. newKey
// supplies the opaque record key, so two people with the same name stay
// distinct.
func ParseRoster(rows [][]string, columns Columns, newKey func() string) []models.PersonRecord {
	start, index := findHeader(rows, columns)
	if index == nil {
		return nil
	}

	var people []models.PersonRecord
	for _, row := range rows[start+1:] {
		if blank(row) {
			continue
		}
		get := func(f Field) string {
			return cell(row, index, f)
		}
		name := get(FieldName)
		if name == "" {
			name = DefaultName
		}
		people = append(people, models.PersonRecord{
			Key:           newKey(),
			Name:          name,
			ResidentID:    get(FieldResidentID),
			Address:       get(FieldAddress),
			PhoneNumber:   FormatPhone(get(FieldPhoneNumber)),
			BankName:      get(FieldBankName),
			AccountNumber: get(FieldAccountNumber),
			WorkDate:      get(FieldWorkDate),
			WorkPlace:     get(FieldWorkPlace),
			DailyRate:     get(FieldDailyRate),
			IDCardImage:   get(FieldIDCardImage),
			BankBookImage: get(FieldBankBookImage),
			LicenseImage:  get(FieldLicenseImage),
		})
	}
	return people
}

func findHeader(rows [][]string, columns Columns) (int, map[Field]int) {
	for i, row := range rows {
		if index := columns.headerIndex(row); len(index) > 0 {
			return i, index
		}
	}
	return 0, nil
}

// cell returns the trimmed value of field f, or "" when the column is
// missing or the row is short.
func cell(row []string, index map[Field]int, f Field) string {
	i, ok := index[f]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
