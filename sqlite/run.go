package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/commpost"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ commpost.RunService = (*RunService)(nil)

// RunService implements commpost.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun creates a new run.
func (s *RunService) CreateRun(ctx context.Context, run *commpost.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()
	run.FinishedAt = nil

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source_dir, started_at)
		VALUES (?, ?, ?)
	`, run.ID, run.SourceDir, run.StartedAt.Format(timeFormat))

	return err
}

// FinishRun stores the final counters of a run and marks it finished.
func (s *RunService) FinishRun(ctx context.Context, id string, upd commpost.RunUpdate) (*commpost.Run, error) {
	finishedAt := time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET processed = ?, failed = ?, warnings = ?, bytes = ?, finished_at = ?
		WHERE id = ?
	`, upd.Processed, upd.Failed, upd.Warnings, upd.Bytes, finishedAt.Format(timeFormat), id)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, commpost.Errorf(commpost.ENOTFOUND, "run not found")
	}

	runs, err := s.FindRuns(ctx, commpost.RunFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, commpost.Errorf(commpost.ENOTFOUND, "run not found")
	}
	return runs[0], nil
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter commpost.RunFilter) ([]*commpost.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_dir, processed, failed, warnings, bytes, started_at, finished_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*commpost.Run
	for rows.Next() {
		var run commpost.Run
		var startedAt string
		var finishedAt sql.NullString

		if err := rows.Scan(&run.ID, &run.SourceDir, &run.Processed, &run.Failed, &run.Warnings, &run.Bytes,
			&startedAt, &finishedAt); err != nil {
			return nil, err
		}

		if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseNullTime(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
