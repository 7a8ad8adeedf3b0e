// Package sheet maps raw spreadsheet rows to typed roster and activity records.
//
// Rows arrive as [][]string with human-entered headers in Korean or English.
// Header cells are translated to canonical field names through the tables in
// this file; unknown headers are ignored.
package sheet

import (
	"strings"
	"unicode"
)

// Field is a canonical field name that a header cell maps to.
type Field string

// Roster fields.
const (
	FieldName          Field = "name"
	FieldResidentID    Field = "residentId"
	FieldAddress       Field = "address"
	FieldPhoneNumber   Field = "phoneNumber"
	FieldBankName      Field = "bankName"
	FieldAccountNumber Field = "accountNumber"
	FieldWorkDate      Field = "workDate"
	FieldWorkPlace     Field = "workPlace"
	FieldDailyRate     Field = "dailyRate"
	FieldIDCardImage   Field = "idCardImage"
	FieldBankBookImage Field = "bankBookImage"
	FieldLicenseImage  Field = "licenseImage"
)

// Activity-log-only fields.
const (
	FieldCategory    Field = "category"
	FieldGrossAmount Field = "grossAmount"
	FieldBusinessTax Field = "businessTax"
	FieldLocalTax    Field = "localTax"
	FieldNetAmount   Field = "netAmount"
)

// Columns maps header text to a canonical field.
type Columns map[string]Field

// RosterColumns are the header aliases recognised in a roster sheet.
var RosterColumns = Columns{
	"성명": FieldName,
	"이름": FieldName,
	"Name": FieldName,

	"주민등록번호":      FieldResidentID,
	"Resident ID": FieldResidentID,

	"주소":      FieldAddress,
	"Address": FieldAddress,

	"연락처":          FieldPhoneNumber,
	"전화번호":         FieldPhoneNumber,
	"Phone":        FieldPhoneNumber,
	"Phone Number": FieldPhoneNumber,

	"은행명":       FieldBankName,
	"은행":        FieldBankName,
	"Bank Name": FieldBankName,
	"Bank":      FieldBankName,

	"계좌번호":           FieldAccountNumber,
	"Account Number": FieldAccountNumber,

	"날짜":        FieldWorkDate,
	"근무일자":      FieldWorkDate,
	"타임스탬프":     FieldWorkDate,
	"Work Date": FieldWorkDate,
	"Date":      FieldWorkDate,

	"장소":         FieldWorkPlace,
	"근무지":        FieldWorkPlace,
	"소속":         FieldWorkPlace,
	"Work Place": FieldWorkPlace,
	"Place":      FieldWorkPlace,

	"수당":         FieldDailyRate,
	"금액":         FieldDailyRate,
	"정산유형":       FieldDailyRate,
	"Daily Rate": FieldDailyRate,
	"Amount":     FieldDailyRate,

	"신분증":           FieldIDCardImage,
	"신분증 사본":        FieldIDCardImage,
	"ID Card":       FieldIDCardImage,
	"ID Card Image": FieldIDCardImage,

	"통장사본":            FieldBankBookImage,
	"통장":              FieldBankBookImage,
	"Bank Book":       FieldBankBookImage,
	"Bank Book Image": FieldBankBookImage,

	"자격증":           FieldLicenseImage,
	"자격증 사본":        FieldLicenseImage,
	"License":       FieldLicenseImage,
	"License Image": FieldLicenseImage,
}

// ActivityColumns are the header aliases recognised in an activity log.
var ActivityColumns = Columns{
	"구분":          FieldCategory,
	"이름":          FieldName,
	"성명":          FieldName,
	"주민등록번호":      FieldResidentID,
	"연락처":         FieldPhoneNumber,
	"전화번호":        FieldPhoneNumber,
	"은행명":         FieldBankName,
	"은행":          FieldBankName,
	"계좌번호":        FieldAccountNumber,
	"지급액(A)":      FieldGrossAmount,
	"지급액":         FieldGrossAmount,
	"사업/기타소득세(B)": FieldBusinessTax,
	"지방소득세(C)":    FieldLocalTax,
	"차인지급액(A-B-C)": FieldNetAmount,
	"실수령액":        FieldNetAmount,
}

// Lookup resolves a header cell. It tries the trimmed text first, then the
// text with all whitespace removed (so "연 락 처" and "통장 사본" resolve).
func (c Columns) Lookup(header string) (Field, bool) {
	trimmed := strings.TrimSpace(header)
	if f, ok := c[trimmed]; ok {
		return f, true
	}
	compact := stripSpace(trimmed)
	if compact == "" {
		return "", false
	}
	for alias, f := range c {
		if stripSpace(alias) == compact {
			return f, true
		}
	}
	return "", false
}

// Merge returns a copy of c with extra aliases added. Extra entries win.
func (c Columns) Merge(extra map[string]string) Columns {
	out := make(Columns, len(c)+len(extra))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = Field(v)
	}
	return out
}

// headerIndex maps each recognised field to its column index.
// The first column wins when a field appears twice.
func (c Columns) headerIndex(row []string) map[Field]int {
	index := make(map[Field]int)
	for i, cell := range row {
		f, ok := c.Lookup(cell)
		if !ok {
			continue
		}
		if _, seen := index[f]; !seen {
			index[f] = i
		}
	}
	return index
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
