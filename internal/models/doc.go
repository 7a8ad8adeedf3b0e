// Package models defines the core domain models for the settlement reconciler.
//
// # Models
//
//   - PersonRecord: one roster entry (a person's baseline profile)
//   - ActivityRecord: one dated work/payment line from the activity log
//   - SettlementRecord: a person plus the activity attributed to them and totals
//
// Records are created fresh on every spreadsheet load and are never merged with
// a previous load. SettlementRecords are derived and replaced as a whole set
// whenever either input set changes.
//
// # Design Principles
//
// 1. **Positional identity**: a PersonRecord is identified by its Key, never by
// its content. Two people with identical names are distinct records.
// 2. **Typed rows only**: spreadsheet rows are mapped to these structs before
// they reach reconciliation. Missing cells are empty strings or zero amounts.
// 3. **Supplied amounts are authoritative**: NetAmount is taken as entered and
// never recomputed from GrossAmount and the tax fields.
package models
