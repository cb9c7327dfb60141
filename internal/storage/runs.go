package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/pocketcube/internal/solver"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("storage: not found")

// Run represents a solving run in the database.
type Run struct {
	RunID           string
	StartedAt       time.Time
	EndedAt         *time.Time
	Seed            uint64
	Scorer          string
	Turns           int
	RestrictedTurns int
	Population      int
	MutationRate    float64
	Solved          bool
	AppVersion      *string
	AttemptCount    int
}

// RunRepository provides CRUD operations for runs.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create stores a new run started now and returns its ID.
func (r *RunRepository) Create(cfg solver.Config, appVersion string) (string, error) {
	id := uuid.New().String()

	var appVersionPtr *string
	if appVersion != "" {
		appVersionPtr = &appVersion
	}

	_, err := r.db.Exec(`
		INSERT INTO runs (run_id, started_at, seed, scorer, turns, restricted_turns, population, mutation_rate, app_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, formatTime(time.Now()), int64(cfg.Seed), cfg.Scorer, cfg.Turns, cfg.RestrictedTurns,
		cfg.PopulationSize, cfg.MutationRate, appVersionPtr)

	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}

	return id, nil
}

// End marks a run as finished.
func (r *RunRepository) End(runID string, solved bool) error {
	res, err := r.db.Exec(`
		UPDATE runs
		SET ended_at = ?, solved = ?
		WHERE run_id = ?
	`, formatTime(time.Now()), solved, runID)
	if err != nil {
		return fmt.Errorf("failed to end run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to end run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: run %s", ErrNotFound, runID)
	}
	return nil
}

const runColumns = `
	r.run_id, r.started_at, r.ended_at, r.seed, r.scorer, r.turns, r.restricted_turns,
	r.population, r.mutation_rate, r.solved, r.app_version,
	(SELECT COUNT(*) FROM attempts a WHERE a.run_id = r.run_id)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var startedAt string
	var endedAt sql.NullString
	var seed int64

	err := row.Scan(
		&run.RunID, &startedAt, &endedAt, &seed, &run.Scorer, &run.Turns, &run.RestrictedTurns,
		&run.Population, &run.MutationRate, &run.Solved, &run.AppVersion, &run.AttemptCount,
	)
	if err != nil {
		return nil, err
	}

	run.Seed = uint64(seed)
	if run.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, fmt.Errorf("run %s started_at: %w", run.RunID, err)
	}
	if endedAt.Valid {
		t, err := parseTime(endedAt.String)
		if err != nil {
			return nil, fmt.Errorf("run %s ended_at: %w", run.RunID, err)
		}
		run.EndedAt = &t
	}
	return &run, nil
}

// Get retrieves a run by ID.
func (r *RunRepository) Get(runID string) (*Run, error) {
	row := r.db.QueryRow(`SELECT `+runColumns+` FROM runs r WHERE r.run_id = ?`, runID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s", ErrNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// GetLast retrieves the most recent run.
func (r *RunRepository) GetLast() (*Run, error) {
	runs, err := r.List(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: no runs recorded", ErrNotFound)
	}
	return &runs[0], nil
}

// List retrieves recent runs, newest first.
func (r *RunRepository) List(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT `+runColumns+`
		FROM runs r
		ORDER BY r.started_at DESC, r.rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// Delete deletes a run and its attempts.
func (r *RunRepository) Delete(runID string) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM attempts WHERE run_id = ?", runID); err != nil {
			return fmt.Errorf("failed to delete attempts: %w", err)
		}

		res, err := tx.Exec("DELETE FROM runs WHERE run_id = ?", runID)
		if err != nil {
			return fmt.Errorf("failed to delete run: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to delete run: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: run %s", ErrNotFound, runID)
		}
		return nil
	})
}
