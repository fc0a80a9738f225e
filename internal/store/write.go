package store

import (
	"context"
	"fmt"
)

// WriteRun inserts a run and its records in one transaction.
// Returns the run's seq and whether a new run was inserted.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency. If the run already
// exists, its records are left untouched and the existing seq is returned
// with inserted=false.
func (s *Store) WriteRun(ctx context.Context, run Run) (seq int64, inserted bool, err error) {
	if run.ID == "" {
		return 0, false, fmt.Errorf("write run: empty run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, output_path, digest, record_count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.OutputPath,
		run.Digest,
		len(run.Records),
	)
	if err != nil {
		return 0, false, fmt.Errorf("write run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("write run: rows affected: %w", err)
	}

	if err := tx.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, run.ID).Scan(&seq); err != nil {
		return 0, false, fmt.Errorf("write run: read seq: %w", err)
	}

	if affected == 0 {
		return seq, false, nil
	}

	for i, rec := range run.Records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO records
			(run_id, idx, x, y, z, line)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			i,
			rec.X,
			rec.Y,
			rec.Z,
			rec.Line,
		)
		if err != nil {
			return 0, false, fmt.Errorf("write run: record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("write run: commit: %w", err)
	}

	return seq, true, nil
}
