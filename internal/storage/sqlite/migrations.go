package sqlite

import "database/sql"

// schema sets up the archive tables. It runs on open to ensure tables exist.
// Amounts are stored as decimal TEXT so no precision is lost.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL,
    roster_source TEXT NOT NULL,
    roster_fingerprint TEXT NOT NULL,
    roster_rows INTEGER NOT NULL,
    activity_source TEXT NOT NULL,
    activity_fingerprint TEXT NOT NULL,
    activity_rows INTEGER NOT NULL,
    people INTEGER NOT NULL,
    orphans INTEGER NOT NULL,
    total_gross TEXT NOT NULL,
    total_net TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settlements (
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    person_key TEXT NOT NULL,
    name TEXT NOT NULL,
    resident_id TEXT NOT NULL,
    phone_number TEXT NOT NULL,
    bank_name TEXT NOT NULL,
    account_number TEXT NOT NULL,
    status TEXT NOT NULL,
    total_gross TEXT NOT NULL,
    total_net TEXT NOT NULL,
    PRIMARY KEY (run_id, position),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS activities (
    run_id TEXT NOT NULL,
    settlement_position INTEGER,
    date TEXT NOT NULL,
    category TEXT NOT NULL,
    name TEXT NOT NULL,
    resident_id TEXT NOT NULL,
    phone_number TEXT NOT NULL,
    bank_name TEXT NOT NULL,
    account_number TEXT NOT NULL,
    gross_amount TEXT NOT NULL,
    business_tax TEXT NOT NULL,
    local_tax TEXT NOT NULL,
    net_amount TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_settlements_run_id ON settlements(run_id);
CREATE INDEX IF NOT EXISTS idx_activities_run_id ON activities(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
