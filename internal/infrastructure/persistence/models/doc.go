// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Two kinds of tables live here:
//
//  1. Managed read-side tables (customers, ledger_entries, batches). These are owned
//     by the upstream bookkeeping schema; the app only reads them, so their models
//     convert one way, row to domain snapshot. Writes to the ledger go through
//     stored procedures, never through these models.
//  2. App-owned tables (report_runs, reminder_logs). These follow the usual shape:
//     BaseModel embedding, ToDomain/FromDomain mappers, and repositories that save
//     through the model.
//
// Loosely typed extras from older exports ride along in jsonb attrs columns and map
// to the domain's Attrs maps.
package models
