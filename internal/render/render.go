// Package render writes reconciliation results for people: a terminal table,
// JSON, CSV, or an HTML document with one payslip and evidence page per person.
//
// Resident IDs and account numbers are masked unless Options.Reveal is set.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/cobby8/allowance-manager-web/internal/mask"
	"github.com/cobby8/allowance-manager-web/internal/models"
	"github.com/cobby8/allowance-manager-web/internal/reconcile"
)

// Format selects an output renderer.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatHTML  Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatCSV, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Report is everything one reconciliation pass produced.
type Report struct {
	Settlements []models.SettlementRecord
	Orphans     []models.ActivityRecord
	Summary     reconcile.Summary
}

// Options controls what a renderer shows.
type Options struct {
	// Reveal shows resident IDs and account numbers unmasked.
	Reveal bool

	// Orphans includes activity rows no roster entry claims.
	Orphans bool

	// IssuedAt is the issue date printed on payslips. Zero means now.
	IssuedAt time.Time
}

// Write renders r in format f.
func Write(w io.Writer, f Format, r Report, opts Options) error {
	switch f {
	case FormatTable:
		return Table(w, r, opts)
	case FormatJSON:
		return JSON(w, r, opts)
	case FormatCSV:
		return CSV(w, r, opts)
	case FormatHTML:
		return HTML(w, r.Settlements, opts)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// person returns p with sensitive fields masked unless revealed.
func (o Options) person(p models.PersonRecord) models.PersonRecord {
	if o.Reveal {
		return p
	}
	p.ResidentID = mask.ResidentID(p.ResidentID)
	p.AccountNumber = mask.AccountNumber(p.AccountNumber)
	return p
}

// activity returns a with sensitive fields masked unless revealed.
func (o Options) activity(a models.ActivityRecord) models.ActivityRecord {
	if o.Reveal {
		return a
	}
	a.ResidentID = mask.ResidentID(a.ResidentID)
	a.AccountNumber = mask.AccountNumber(a.AccountNumber)
	return a
}

func (o Options) issuedAt() time.Time {
	if o.IssuedAt.IsZero() {
		return time.Now()
	}
	return o.IssuedAt
}

// Amount formats a money amount with thousands separators ("1,234,500").
func Amount(d decimal.Decimal) string {
	if d.IsInteger() {
		return humanize.BigComma(d.BigInt())
	}
	return humanize.Commaf(d.InexactFloat64())
}

// contact is the phone number, falling back to the address, then "-".
func contact(p models.PersonRecord) string {
	switch {
	case p.PhoneNumber != "":
		return p.PhoneNumber
	case p.Address != "":
		return p.Address
	default:
		return "-"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
