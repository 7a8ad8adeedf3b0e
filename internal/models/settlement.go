package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MatchStatus classifies how strongly a person's activity was attributed.
type MatchStatus string

const (
	// StatusMatched means every attributed record is confirmed by resident ID or phone.
	StatusMatched MatchStatus = "matched"

	// StatusPartial means at least one attributed record was linked by name
	// alone and needs a human to verify it.
	StatusPartial MatchStatus = "partial"

	// StatusUnmatched means no activity was attributed.
	StatusUnmatched MatchStatus = "unmatched"
)

// Statuses lists every status in display order.
var Statuses = []MatchStatus{StatusMatched, StatusPartial, StatusUnmatched}

func (s MatchStatus) String() string {
	return string(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s MatchStatus) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *MatchStatus) UnmarshalText(text []byte) error {
	switch MatchStatus(text) {
	case StatusMatched, StatusPartial, StatusUnmatched:
		*s = MatchStatus(text)
		return nil
	default:
		return fmt.Errorf("unknown match status %q", string(text))
	}
}

// SettlementRecord is a PersonRecord extended with the activity attributed
// to that person. This is the output of the reconciliation pass.
type SettlementRecord struct {
	PersonRecord

	// Activities are the attributed records in activity-log order.
	// Always a subset of the activity log the record was derived from.
	Activities []ActivityRecord

	// TotalGross is the sum of GrossAmount over Activities.
	TotalGross decimal.Decimal

	// TotalNet is the sum of NetAmount over Activities.
	TotalNet decimal.Decimal

	Status MatchStatus
}

// TotalDeduction returns TotalGross - TotalNet, the figure shown on the
// total row of a payslip.
func (s SettlementRecord) TotalDeduction() decimal.Decimal {
	return s.TotalGross.Sub(s.TotalNet)
}
