package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/wikidoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wikidoc.IndexRunService = (*IndexRunService)(nil)

// IndexRunService implements wikidoc.IndexRunService using SQLite.
type IndexRunService struct {
	db *DB
}

// NewIndexRunService creates a new IndexRunService.
func NewIndexRunService(db *DB) *IndexRunService {
	return &IndexRunService{db: db}
}

// CreateRun stores a new run with a generated ID and the current start time.
func (s *IndexRunService) CreateRun(ctx context.Context, run *wikidoc.IndexRun) error {
	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO index_runs (id, started_at)
		VALUES (?, ?)
	`, run.ID, run.StartedAt.Format(timeFormat))

	return err
}

// FinishRun stores the run's counts and sets its finish time.
func (s *IndexRunService) FinishRun(ctx context.Context, run *wikidoc.IndexRun) error {
	run.FinishedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE index_runs
		SET finished_at = ?, indexed = ?, unchanged = ?, removed = ?, failed = ?
		WHERE id = ?
	`, run.FinishedAt.Format(timeFormat), run.Indexed, run.Unchanged, run.Removed, run.Failed, run.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return wikidoc.Errorf(wikidoc.ENOTFOUND, "index run not found")
	}

	return nil
}

// FindLatestRun returns the most recently started run.
func (s *IndexRunService) FindLatestRun(ctx context.Context) (*wikidoc.IndexRun, error) {
	var run wikidoc.IndexRun
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, indexed, unchanged, removed, failed
		FROM index_runs
		ORDER BY started_at DESC
		LIMIT 1
	`).Scan(&run.ID, &startedAt, &finishedAt, &run.Indexed, &run.Unchanged, &run.Removed, &run.Failed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wikidoc.Errorf(wikidoc.ENOTFOUND, "no index run recorded")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if finishedAt != "" {
		if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
	}

	return &run, nil
}
