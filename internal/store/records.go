package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"apptrack-engine/internal/domain"
)

// Migrate brings the schema to the current version, tracked via
// PRAGMA user_version.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company TEXT NOT NULL DEFAULT '',
  industry TEXT NOT NULL DEFAULT '',
  job_type TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  status_changed_at TEXT,
  application_deadline TEXT,
  source_id TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_records_created_at
ON records(created_at);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_records_source_id
ON records(source_id)
WHERE source_id != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// ListRecords returns the full collection, oldest first, as the analytics
// engine's input contract expects.
func ListRecords(ctx context.Context, db *sql.DB) ([]domain.Record, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, company, industry, job_type, status, created_at, status_changed_at, application_deadline, source_id
FROM records
ORDER BY created_at ASC, id ASC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		var r domain.Record
		var createdStr string
		var changedStr, deadlineStr sql.NullString
		if err := rows.Scan(
			&r.ID,
			&r.Company,
			&r.Industry,
			&r.JobType,
			&r.Status,
			&createdStr,
			&changedStr,
			&deadlineStr,
			&r.SourceID,
		); err != nil {
			return nil, err
		}
		created, err := time.Parse(time.RFC3339, createdStr)
		if err != nil {
			// A zero CreatedAt would corrupt the earliest time bucket;
			// skip the row and say so rather than guessing.
			log.Warn().Int64("id", r.ID).Str("created_at", createdStr).
				Msg("skipping record with malformed created_at")
			continue
		}
		r.CreatedAt = created
		r.StatusChangedAt = parseNullTime(changedStr)
		r.ApplicationDeadline = parseNullTime(deadlineStr)
		out = append(out, r)
	}
	return out, rows.Err()
}

// InsertRecord inserts r and returns it with the assigned ID. Records with a
// SourceID already present are skipped (added=false), which makes file
// imports re-runnable.
func InsertRecord(ctx context.Context, db *sql.DB, r domain.Record) (id int64, added bool, err error) {
	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO records (company, industry, job_type, status, created_at, status_changed_at, application_deadline, source_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		r.Company, r.Industry, r.JobType, r.Status,
		r.CreatedAt.UTC().Format(time.RFC3339),
		formatNullTime(r.StatusChangedAt),
		formatNullTime(r.ApplicationDeadline),
		r.SourceID,
	)
	if err != nil {
		return 0, false, fmt.Errorf("insert record: %w", err)
	}
	// RowsAffected is not reliable with INSERT OR IGNORE across sqlite
	// drivers; SELECT changes() is.
	var changes int
	if err := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); err == nil && changes == 0 {
		return 0, false, nil
	}
	id, _ = res.LastInsertId()
	return id, true, nil
}

// UpdateStatus moves a record to a new status and stamps the transition.
func UpdateStatus(ctx context.Context, db *sql.DB, id int64, status string, changedAt time.Time) error {
	res, err := db.ExecContext(ctx, `
UPDATE records SET status = ?, status_changed_at = ? WHERE id = ?;`,
		status, changedAt.UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteRecord removes a record by ID.
func DeleteRecord(ctx context.Context, db *sql.DB, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM records WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
