package solver

import (
	"context"
	"errors"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/pocketcube"
)

type memoryRecorder struct {
	results []AttemptResult
	err     error
}

func (m *memoryRecorder) Record(r AttemptResult) error {
	if m.err != nil {
		return m.err
	}
	m.results = append(m.results, r)
	return nil
}

func quietLogger() Option {
	logger, _ := logtest.NewNullLogger()
	return WithLogger(logger)
}

// unreachableTarget can never be matched, so attempts only end on the cap.
func unreachableTarget() *pocketcube.CubeState {
	target := pocketcube.NewCubeState()
	target.SetPiece(0, pocketcube.Piece{})
	return target
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Turns = 6
	cfg.RestrictedTurns = 5
	cfg.PopulationSize = 50
	cfg.GenerationCap = 300
	cfg.RetryTurns = 3
	cfg.RetryRestrictedTurns = 1
	cfg.MaxAttempts = 1
	cfg.Seed = 7
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero turns", func(c *Config) { c.Turns = 0 }},
		{"restricted above turns", func(c *Config) { c.RestrictedTurns = c.Turns + 1 }},
		{"negative restricted", func(c *Config) { c.RestrictedTurns = -1 }},
		{"tiny population", func(c *Config) { c.PopulationSize = 1 }},
		{"mutation above one", func(c *Config) { c.MutationRate = 1.5 }},
		{"negative mutation", func(c *Config) { c.MutationRate = -0.1 }},
		{"zero stagnation", func(c *Config) { c.StagnationLimit = 0 }},
		{"zero cap", func(c *Config) { c.GenerationCap = 0 }},
		{"zero retry turns", func(c *Config) { c.RetryTurns = 0 }},
		{"retry restricted above retry turns", func(c *Config) { c.RetryRestrictedTurns = c.RetryTurns + 1 }},
		{"negative attempts", func(c *Config) { c.MaxAttempts = -1 }},
		{"negative scramble length", func(c *Config) { c.ScrambleLength = -1 }},
		{"unknown scorer", func(c *Config) { c.Scorer = "quadratic" }},
	}

	require.NoError(t, DefaultConfig().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

			_, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestRunSolvesOneMoveScramble(t *testing.T) {
	cfg := smallConfig()
	cfg.Scramble = []pocketcube.Action{pocketcube.RPrime}

	rec := &memoryRecorder{}
	var progress []Progress
	s, err := New(cfg, quietLogger(), WithRecorder(rec), WithObserver(func(p Progress) {
		progress = append(progress, p)
	}))
	require.NoError(t, err)

	results, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.True(t, res.Solved)
	assert.Equal(t, 1, res.Attempt)
	assert.Equal(t, []pocketcube.Action{pocketcube.R}, res.Solution)
	assert.Equal(t, res.PerfectScore, res.HighestFitness)
	assert.True(t, s.Verify(res.Scramble, res.Solution))

	assert.Equal(t, results, rec.results)
	require.Len(t, progress, res.Generations+1)
	last := progress[len(progress)-1]
	assert.Equal(t, last.PerfectScore, last.BestFitness)
	assert.True(t, last.LayerOne && last.LayerTwo)
	assert.Equal(t, pocketcube.PhaseSolved, last.Phase)
	assert.Equal(t, pocketcube.PhaseSolved, last.HighestPhase)
}

func TestRunStepsCurriculumOnStagnation(t *testing.T) {
	cfg := smallConfig()
	cfg.Turns = 4
	cfg.RestrictedTurns = 2
	cfg.PopulationSize = 2
	cfg.MutationRate = 0
	cfg.StagnationLimit = 1
	cfg.GenerationCap = 30
	cfg.Scramble = []pocketcube.Action{pocketcube.R, pocketcube.U, pocketcube.F}

	seenRestricted := map[int]bool{}
	seenTurns := map[int]bool{}
	s, err := New(cfg, quietLogger(), WithTarget(unreachableTarget()), WithObserver(func(p Progress) {
		if p.Turns == cfg.Turns {
			seenRestricted[p.RestrictedTurns] = true
		}
		seenTurns[p.Turns] = true
	}))
	require.NoError(t, err)

	results, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.False(t, res.Solved)
	assert.Empty(t, res.Solution)
	assert.Equal(t, cfg.GenerationCap, res.Generations)
	assert.GreaterOrEqual(t, res.Restarts, 1)
	assert.Equal(t, cfg.RetryTurns, res.Turns)

	assert.True(t, seenRestricted[2] && seenRestricted[1] && seenRestricted[0],
		"restricted turns should step down to zero, saw %v", seenRestricted)
	assert.True(t, seenTurns[cfg.RetryTurns], "engine should restart with the retry genome")
}

func TestRunStopsAfterMaxAttempts(t *testing.T) {
	cfg := smallConfig()
	cfg.MaxAttempts = 3
	cfg.GenerationCap = 2
	cfg.PopulationSize = 4
	cfg.ScrambleLength = 5

	rec := &memoryRecorder{}
	s, err := New(cfg, quietLogger(), WithTarget(unreachableTarget()), WithRecorder(rec))
	require.NoError(t, err)

	results, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, res := range results {
		assert.Equal(t, i+1, res.Attempt)
		assert.False(t, res.Solved)
		assert.Len(t, res.Scramble, 5)
		assert.Equal(t, 2, res.Generations)
	}
	assert.Len(t, rec.results, 3)
}

func TestRunHonoursCancellation(t *testing.T) {
	cfg := smallConfig()
	cfg.MaxAttempts = 0

	s, err := New(cfg, quietLogger(), WithTarget(unreachableTarget()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestRunPropagatesRecorderError(t *testing.T) {
	cfg := smallConfig()
	cfg.GenerationCap = 1
	cfg.PopulationSize = 4

	boom := errors.New("disk full")
	s, err := New(cfg, quietLogger(), WithTarget(unreachableTarget()), WithRecorder(&memoryRecorder{err: boom}))
	require.NoError(t, err)

	results, err := s.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, results, 1)
}

func TestVerify(t *testing.T) {
	s, err := New(smallConfig(), quietLogger())
	require.NoError(t, err)

	scramble := []pocketcube.Action{pocketcube.R, pocketcube.U}
	assert.True(t, s.Verify(scramble, []pocketcube.Action{pocketcube.UPrime, pocketcube.RPrime}))
	assert.False(t, s.Verify(scramble, []pocketcube.Action{pocketcube.RPrime, pocketcube.UPrime}))
}
