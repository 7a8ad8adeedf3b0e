// Package service holds the reconciliation session: the latest roster and
// activity log, and the settlement records derived from them.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cobby8/allowance-manager-web/internal/models"
	"github.com/cobby8/allowance-manager-web/internal/reconcile"
	"github.com/cobby8/allowance-manager-web/internal/sheet"
	"github.com/cobby8/allowance-manager-web/internal/source"
)

// Session is the in-memory state of one reconciliation run.
//
// Every load fully replaces the corresponding input set, and the derived
// settlements and orphans are recomputed from scratch. A failed load leaves
// the previous state untouched. Session is not safe for concurrent use.
type Session struct {
	logger          *slog.Logger
	rosterColumns   sheet.Columns
	activityColumns sheet.Columns
	newKey          func() string

	people     []models.PersonRecord
	activities []models.ActivityRecord
	hasRoster  bool
	hasLog     bool

	rosterInput   Input
	activityInput Input

	settlements []models.SettlementRecord
	orphans     []models.ActivityRecord
}

// Input is the sheet an input set was last loaded from.
type Input struct {
	// Source is the source name, empty for rows set directly.
	Source string
	Rows   [][]string
}

// Config configures a Session. Zero values select the defaults.
type Config struct {
	Logger          *slog.Logger
	RosterColumns   sheet.Columns
	ActivityColumns sheet.Columns

	// NewKey generates PersonRecord keys. Defaults to random UUIDs.
	NewKey func() string
}

// NewSession creates an empty session.
func NewSession(cfg Config) *Session {
	s := &Session{
		logger:          cfg.Logger,
		rosterColumns:   cfg.RosterColumns,
		activityColumns: cfg.ActivityColumns,
		newKey:          cfg.NewKey,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.rosterColumns == nil {
		s.rosterColumns = sheet.RosterColumns
	}
	if s.activityColumns == nil {
		s.activityColumns = sheet.ActivityColumns
	}
	if s.newKey == nil {
		s.newKey = func() string { return uuid.New().String() }
	}
	return s
}

// LoadRoster fetches the roster sheet and replaces the current roster.
func (s *Session) LoadRoster(ctx context.Context, src source.Source) error {
	rows, err := src.Rows(ctx)
	if err != nil {
		return fmt.Errorf("roster load failed: %w", err)
	}
	if err := s.SetRosterRows(rows); err != nil {
		return err
	}
	s.rosterInput.Source = src.Name()
	return nil
}

// LoadActivity fetches the activity-log sheet and replaces the current log.
func (s *Session) LoadActivity(ctx context.Context, src source.Source) error {
	rows, err := src.Rows(ctx)
	if err != nil {
		return fmt.Errorf("activity log load failed: %w", err)
	}
	if err := s.SetActivityRows(rows); err != nil {
		return err
	}
	s.activityInput.Source = src.Name()
	return nil
}

// SetRosterRows replaces the roster with already-fetched rows.
func (s *Session) SetRosterRows(rows [][]string) error {
	people := sheet.ParseRoster(rows, s.rosterColumns, s.newKey)
	if len(people) == 0 {
		return fmt.Errorf("roster load failed: no roster rows found under a recognised header")
	}
	s.people = people
	s.hasRoster = true
	s.rosterInput = Input{Rows: rows}
	s.logger.Info("Roster loaded", "people", len(people))
	s.derive()
	return nil
}

// SetActivityRows replaces the activity log with already-fetched rows.
// An activity log without data rows is accepted; every person is then unmatched.
func (s *Session) SetActivityRows(rows [][]string) error {
	s.activities = sheet.ParseActivityLog(rows, s.activityColumns)
	s.hasLog = true
	s.activityInput = Input{Rows: rows}
	s.logger.Info("Activity log loaded", "records", len(s.activities))
	s.derive()
	return nil
}

// derive recomputes settlements and orphans from the current inputs.
func (s *Session) derive() {
	if !s.hasRoster || !s.hasLog {
		s.settlements, s.orphans = nil, nil
		return
	}
	s.settlements = reconcile.MatchAll(s.people, s.activities)
	s.orphans = reconcile.Orphans(s.people, s.activities)

	sum := reconcile.Summarize(s.settlements, s.orphans)
	s.logger.Info("Settlements derived",
		"people", sum.People,
		"matched", sum.ByStatus[models.StatusMatched],
		"partial", sum.ByStatus[models.StatusPartial],
		"unmatched", sum.ByStatus[models.StatusUnmatched],
		"orphans", sum.Orphans,
	)
	if sum.NetMismatches > 0 {
		s.logger.Warn("Net amounts differ from gross minus taxes; supplied net is used",
			"rows", sum.NetMismatches,
		)
	}
}

// Reset clears every input and derived set.
func (s *Session) Reset() {
	s.people, s.activities = nil, nil
	s.hasRoster, s.hasLog = false, false
	s.settlements, s.orphans = nil, nil
	s.rosterInput, s.activityInput = Input{}, Input{}
}

// HasRoster reports whether a roster has been loaded.
func (s *Session) HasRoster() bool { return s.hasRoster }

// HasActivity reports whether an activity log has been loaded.
func (s *Session) HasActivity() bool { return s.hasLog }

// RosterInput returns the rows and source of the current roster.
func (s *Session) RosterInput() Input { return s.rosterInput }

// ActivityInput returns the rows and source of the current activity log.
func (s *Session) ActivityInput() Input { return s.activityInput }

// People returns the loaded roster.
func (s *Session) People() []models.PersonRecord { return s.people }

// Activities returns the loaded activity log.
func (s *Session) Activities() []models.ActivityRecord { return s.activities }

// Settlements returns the derived settlement records, or nil until both
// inputs are loaded.
func (s *Session) Settlements() []models.SettlementRecord { return s.settlements }

// Orphans returns activity rows no roster entry claims.
func (s *Session) Orphans() []models.ActivityRecord { return s.orphans }

// Summary returns batch figures for the current derived set.
func (s *Session) Summary() reconcile.Summary {
	return reconcile.Summarize(s.settlements, s.orphans)
}
