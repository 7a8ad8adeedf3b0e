// Package sqlite provides a SQLite-backed implementation of the storage.Archive interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/cobby8/allowance-manager-web/internal/reconcile"
	"github.com/cobby8/allowance-manager-web/internal/storage"
)

// Ensure Archive implements storage.Archive
var _ storage.Archive = (*Archive)(nil)

// Archive implements storage.Archive using SQLite.
type Archive struct {
	db *sql.DB
}

// New opens the archive at dbPath.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*Archive, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveRun writes a run, its settlements and its orphans in one transaction.
func (a *Archive) SaveRun(ctx context.Context, run *storage.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().Unix()
	}

	sum := reconcile.Summarize(run.Settlements, run.Orphans)

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at,
		    roster_source, roster_fingerprint, roster_rows,
		    activity_source, activity_fingerprint, activity_rows,
		    people, orphans, total_gross, total_net)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt,
		run.Roster.Source, run.Roster.Fingerprint, run.Roster.Rows,
		run.Activity.Source, run.Activity.Fingerprint, run.Activity.Rows,
		sum.People, sum.Orphans, sum.TotalGross.String(), sum.TotalNet.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if err := insertSettlements(ctx, tx, run.ID, run.Settlements); err != nil {
		return err
	}
	if err := insertActivities(ctx, tx, run.ID, nil, run.Orphans); err != nil {
		return fmt.Errorf("failed to insert orphans: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListRuns returns every archived run header, newest first.
func (a *Archive) ListRuns(ctx context.Context) ([]storage.RunInfo, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, created_at,
		    roster_source, roster_fingerprint, roster_rows,
		    activity_source, activity_fingerprint, activity_rows,
		    people, orphans, total_gross, total_net
		 FROM runs ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []storage.RunInfo
	for rows.Next() {
		var info storage.RunInfo
		var gross, net string
		if err := rows.Scan(&info.ID, &info.CreatedAt,
			&info.Roster.Source, &info.Roster.Fingerprint, &info.Roster.Rows,
			&info.Activity.Source, &info.Activity.Fingerprint, &info.Activity.Rows,
			&info.People, &info.Orphans, &gross, &net); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if info.TotalGross, err = decimal.NewFromString(gross); err != nil {
			return nil, fmt.Errorf("run %s: bad total_gross %q: %w", info.ID, gross, err)
		}
		if info.TotalNet, err = decimal.NewFromString(net); err != nil {
			return nil, fmt.Errorf("run %s: bad total_net %q: %w", info.ID, net, err)
		}
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

