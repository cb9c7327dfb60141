package storage

import (
	"fmt"
	"time"

	"github.com/SeamusWaldron/pocketcube"
	"github.com/SeamusWaldron/pocketcube/internal/solver"
)

// AttemptRepository provides operations for the attempts of a run.
type AttemptRepository struct {
	db *DB
}

// NewAttemptRepository creates a new attempt repository.
func NewAttemptRepository(db *DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Create stores one attempt result. Scramble and solution are stored one
// byte per action.
func (r *AttemptRepository) Create(runID string, res solver.AttemptResult) error {
	_, err := r.db.Exec(`
		INSERT INTO attempts (run_id, attempt, scramble, turns, restricted_turns, restarts,
			highest_fitness, perfect_score, generations, duration_ms, solved, solution)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, res.Attempt, pocketcube.EncodeActions(res.Scramble), res.Turns, res.RestrictedTurns, res.Restarts,
		res.HighestFitness, res.PerfectScore, res.Generations, res.Duration.Milliseconds(), res.Solved,
		pocketcube.EncodeActions(res.Solution))

	if err != nil {
		return fmt.Errorf("failed to create attempt %d: %w", res.Attempt, err)
	}
	return nil
}

// GetByRun retrieves all attempts of a run in order.
func (r *AttemptRepository) GetByRun(runID string) ([]solver.AttemptResult, error) {
	rows, err := r.db.Query(`
		SELECT attempt, scramble, turns, restricted_turns, restarts, highest_fitness,
			perfect_score, generations, duration_ms, solved, solution
		FROM attempts
		WHERE run_id = ?
		ORDER BY attempt
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts: %w", err)
	}
	defer rows.Close()

	var results []solver.AttemptResult
	for rows.Next() {
		var res solver.AttemptResult
		var scramble, solution []byte
		var durationMs int64

		err := rows.Scan(
			&res.Attempt, &scramble, &res.Turns, &res.RestrictedTurns, &res.Restarts, &res.HighestFitness,
			&res.PerfectScore, &res.Generations, &durationMs, &res.Solved, &solution,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}

		if res.Scramble, err = pocketcube.DecodeActions(scramble); err != nil {
			return nil, fmt.Errorf("attempt %d scramble: %w", res.Attempt, err)
		}
		if res.Solution, err = pocketcube.DecodeActions(solution); err != nil {
			return nil, fmt.Errorf("attempt %d solution: %w", res.Attempt, err)
		}
		res.Duration = time.Duration(durationMs) * time.Millisecond

		results = append(results, res)
	}

	return results, rows.Err()
}

// Recorder stores attempt results under one run. It implements
// solver.Recorder.
type Recorder struct {
	runID    string
	attempts *AttemptRepository
}

var _ solver.Recorder = (*Recorder)(nil)

// NewRecorder creates a recorder for runID.
func NewRecorder(db *DB, runID string) *Recorder {
	return &Recorder{runID: runID, attempts: NewAttemptRepository(db)}
}

// RunID returns the run the recorder writes to.
func (r *Recorder) RunID() string { return r.runID }

// Record implements solver.Recorder.
func (r *Recorder) Record(res solver.AttemptResult) error {
	return r.attempts.Create(r.runID, res)
}
