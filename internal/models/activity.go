package models

import "github.com/shopspring/decimal"

// ActivityRecord represents one dated line of the work-activity log.
type ActivityRecord struct {
	// Date is the date context the row was found under, as "M/D" or the
	// original text when it could not be parsed.
	Date string

	// Category is the free-form classification column (구분).
	Category string

	Name        string
	ResidentID  string
	PhoneNumber string

	BankName      string
	AccountNumber string

	// GrossAmount is the payment before deductions (지급액).
	GrossAmount decimal.Decimal

	// BusinessTax is the business/other income tax deduction.
	BusinessTax decimal.Decimal

	// LocalTax is the local income tax deduction.
	LocalTax decimal.Decimal

	// NetAmount is the amount paid out as entered in the sheet.
	// It is not guaranteed to equal GrossAmount - BusinessTax - LocalTax.
	NetAmount decimal.Decimal
}

// TaxTotal returns the sum of the deduction columns.
func (a ActivityRecord) TaxTotal() decimal.Decimal {
	return a.BusinessTax.Add(a.LocalTax)
}

// NetMismatch reports whether the supplied net amount differs from
// gross minus both tax columns.
func (a ActivityRecord) NetMismatch() bool {
	return !a.GrossAmount.Sub(a.TaxTotal()).Equal(a.NetAmount)
}
