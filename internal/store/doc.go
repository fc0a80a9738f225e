// Package store provides a SQLite-backed ledger of emitted sequences.
//
// Each run of the program that passes --db appends:
//   - Runs: one row per run (ID, output path, digest, record count)
//   - Records: one row per emitted element, keyed by (run_id, idx)
//
// # Ordering
//
// Runs are ordered by seq, an INTEGER PRIMARY KEY assigned on insert.
// Records are ordered by idx, their position in the emitted sequence.
// Wall-clock time is never stored or used for ordering.
//
// # Idempotency
//
// WriteRun is keyed by run ID. Writing the same ID twice leaves the first
// run untouched and reports inserted=false.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
