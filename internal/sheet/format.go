package sheet

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FormatPhone formats a phone number with 10 or 11 digits as 3-4-rest
// ("010-1234-5678", "021-2345-678"). Anything else is returned unchanged.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) != 10 && len(digits) != 11 {
		return phone
	}
	return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
}

// excelEpochOffset is the Excel serial number of 1970-01-01.
const excelEpochOffset = 25569

// minSerialDate is the smallest serial number treated as a date (2009-07-06).
// Smaller numbers in the first column are row counters or amounts.
const minSerialDate = 40000

var koreanDate = regexp.MustCompile(`(\d+)\s*월\s*(\d+)\s*일`)

// ParseDateCell reports whether the first cell of a row opens a new date
// context and returns the date as "M/D".
//
// Recognised forms are Korean month/day text ("10월 11일", possibly with a
// weekday suffix) and Excel serial numbers above 40000.
func ParseDateCell(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if strings.Contains(s, "월") && strings.Contains(s, "일") {
		return FormatDate(s), true
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > minSerialDate {
		return SerialDate(serial).Format("1/2"), true
	}
	return "", false
}

// SerialDate converts an Excel serial day number to a UTC date.
func SerialDate(serial float64) time.Time {
	days := int(math.Floor(serial - excelEpochOffset))
	return time.Unix(int64(days)*86400, 0).UTC()
}

// FormatDate renders a date string as "M/D" for documents.
// Strings already containing "/" are kept, Korean "N월 N일" is converted, and
// ISO dates are parsed. Anything else is returned unchanged.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, "/") {
		return s
	}
	if m := koreanDate.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%d/%d", month, day)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006.01.02", "2006. 1. 2"} {
		if t, err := time.Parse(layout, s); err == nil {
			return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
		}
	}
	return s
}

var sheetURL = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// ExtractSheetID returns the spreadsheet ID from a Google Sheets URL, or the
// trimmed input when it is not such a URL.
func ExtractSheetID(input string) string {
	trimmed := strings.TrimSpace(input)
	if strings.Contains(trimmed, "docs.google.com/spreadsheets") {
		if m := sheetURL.FindStringSubmatch(trimmed); m != nil {
			return m[1]
		}
	}
	return trimmed
}
