// Package storage defines the run archive: a write-only audit export of
// reconciliation results. Archived runs are never read back into a session.
package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cobby8/allowance-manager-web/internal/models"
)

// Archive records finished reconciliation runs.
// This abstraction allows swapping backends without changing the command.
type Archive interface {
	// SaveRun persists a run with its settlements and orphans.
	// run.ID and run.CreatedAt are filled in when empty.
	SaveRun(ctx context.Context, run *Run) error

	// ListRuns returns archived runs, newest first, without their rows.
	ListRuns(ctx context.Context) ([]RunInfo, error)

	// Close releases any resources held by the archive.
	Close() error
}

// Input identifies one spreadsheet that went into a run.
type Input struct {
	// Source is the location the rows were read from.
	Source string

	// Fingerprint is Fingerprint(rows) of the rows as read.
	Fingerprint string

	Rows int
}

// Run is one reconciliation pass as exported to the archive.
type Run struct {
	ID        string
	CreatedAt int64

	Roster   Input
	Activity Input

	Settlements []models.SettlementRecord
	Orphans     []models.ActivityRecord
}

// RunInfo is the archived header of a run.
type RunInfo struct {
	ID        string
	CreatedAt int64

	Roster   Input
	Activity Input

	People     int
	Orphans    int
	TotalGross decimal.Decimal
	TotalNet   decimal.Decimal
}
