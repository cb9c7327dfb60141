package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/pocketcube"
	"github.com/SeamusWaldron/pocketcube/internal/results"
	"github.com/SeamusWaldron/pocketcube/internal/solver"
	"github.com/SeamusWaldron/pocketcube/internal/storage"
)

var (
	solveTurns           int
	solveRestricted      int
	solvePopulation      int
	solveMutation        float64
	solveStagnation      int
	solveGenerationCap   int
	solveRetryTurns      int
	solveRetryRestricted int
	solveAttempts        int
	solveScramble        string
	solveScrambleLength  int
	solveSeed            uint64
	solveScorer          string
	solveWorkers         int
	solveCSV             string
	solveDelimiter       string
	solveNoDB            bool
	solveTUI             bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Search for a solution to a scrambled cube",
	Long: `Run the genetic algorithm against a scramble until it finds a sequence that
restores the cube.

Only the first turns-restricted genes of each chromosome are played. When the
best cube stops changing for --stagnation generations one more gene is
unlocked; with nothing left to unlock the search restarts with a shorter
genome. An attempt gives up after --generations generations and the next
attempt starts on a new scramble unless --scramble is fixed.

Examples:
  pocketcube solve
  pocketcube solve --scramble "R U R' F" --turns 20 --restricted 14
  pocketcube solve --tui --csv results.csv`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	f := solveCmd.Flags()
	f.IntVar(&solveTurns, "turns", 0, "Genome length")
	f.IntVar(&solveRestricted, "restricted", 0, "Initial restricted turns")
	f.IntVar(&solvePopulation, "population", 0, "Population size")
	f.Float64Var(&solveMutation, "mutation", 0, "Mutation rate (0-1)")
	f.IntVar(&solveStagnation, "stagnation", 0, "Generations without change before unlocking a gene")
	f.IntVar(&solveGenerationCap, "generations", 0, "Generation cap per attempt")
	f.IntVar(&solveRetryTurns, "retry-turns", 0, "Genome length after a restart")
	f.IntVar(&solveRetryRestricted, "retry-restricted", 0, "Restricted turns after a restart")
	f.IntVar(&solveAttempts, "attempts", 0, "Maximum attempts (0 = until solved)")
	f.StringVar(&solveScramble, "scramble", "", "Scramble to solve, e.g. \"R U F'\"")
	f.IntVar(&solveScrambleLength, "scramble-length", 0, "Length of generated scrambles (default: turns)")
	f.Uint64Var(&solveSeed, "seed", 0, "Random seed (0 = time based)")
	f.StringVar(&solveScorer, "scorer", "", "Fitness curve (layered-cubic, doubled-cubic, linear)")
	f.IntVar(&solveWorkers, "workers", 0, "Goroutines used for fitness scoring")
	f.StringVar(&solveCSV, "csv", "", "Write one row per attempt to this file")
	f.StringVar(&solveDelimiter, "delimiter", "", "Results file delimiter (single character or \"tab\")")
	f.BoolVar(&solveNoDB, "no-db", false, "Do not record the run in the database")
	f.BoolVar(&solveTUI, "tui", false, "Show live progress in a terminal UI")
}

// solveParams merges changed flags over the configuration.
func solveParams(cmd *cobra.Command) (solver.Config, error) {
	s := &cfg.Solver
	f := cmd.Flags()

	overrides := []struct {
		flag  string
		apply func()
	}{
		{"turns", func() { s.Turns = solveTurns }},
		{"restricted", func() { s.RestrictedTurns = solveRestricted }},
		{"population", func() { s.Population = solvePopulation }},
		{"mutation", func() { s.MutationRate = solveMutation }},
		{"stagnation", func() { s.StagnationLimit = solveStagnation }},
		{"generations", func() { s.GenerationCap = solveGenerationCap }},
		{"retry-turns", func() { s.RetryTurns = solveRetryTurns }},
		{"retry-restricted", func() { s.RetryRestrictedTurns = solveRetryRestricted }},
		{"attempts", func() { s.MaxAttempts = solveAttempts }},
		{"scramble", func() { s.Scramble = solveScramble }},
		{"scramble-length", func() { s.ScrambleLength = solveScrambleLength }},
		{"seed", func() { cfg.Seed = solveSeed }},
		{"scorer", func() { s.Scorer = solveScorer }},
		{"workers", func() { s.Workers = solveWorkers }},
		{"csv", func() { cfg.Results.Path = solveCSV }},
		{"delimiter", func() { cfg.Results.Delimiter = solveDelimiter }},
		{"no-db", func() { cfg.Storage.Disable = solveNoDB }},
	}
	for _, o := range overrides {
		if f.Changed(o.flag) {
			o.apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return solver.Config{}, err
	}
	return cfg.SolverParams()
}

func runSolve(cmd *cobra.Command, args []string) error {
	params, err := solveParams(cmd)
	if err != nil {
		return err
	}

	opts := []solver.Option{solver.WithLogger(logger)}

	var (
		runs  *storage.RunRepository
		runID string
	)
	if !cfg.Storage.Disable {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		runs = storage.NewRunRepository(db)
		runID, err = runs.Create(params, version)
		if err != nil {
			return err
		}
		opts = append(opts, solver.WithRecorder(storage.NewRecorder(db, runID)))
	}

	if cfg.Results.Path != "" {
		delimiter, err := cfg.Delimiter()
		if err != nil {
			return err
		}
		w, err := results.NewWriter(cfg.Results.Path, delimiter)
		if err != nil {
			return err
		}
		defer w.Close()
		opts = append(opts, solver.WithRecorder(w))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var attempts []solver.AttemptResult
	if solveTUI {
		attempts, err = runSolveTUI(ctx, params, opts)
	} else {
		attempts, err = runSolvePlain(ctx, params, opts)
	}

	solved := len(attempts) > 0 && attempts[len(attempts)-1].Solved
	if runs != nil {
		if endErr := runs.End(runID, solved); endErr != nil {
			logger.WithError(endErr).Warn("failed to close run")
		}
	}

	printSummary(runID, attempts)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runSolvePlain(ctx context.Context, params solver.Config, opts []solver.Option) ([]solver.AttemptResult, error) {
	var (
		lastAttempt    int
		lastBest       int
		lastRestricted int
		lastTurns      int
	)
	progress := func(p solver.Progress) {
		if p.Attempt != lastAttempt {
			lastAttempt, lastBest = p.Attempt, -1
			fmt.Printf("Attempt %d: solving %s (fitness goal %d)\n",
				p.Attempt, pocketcube.FormatActions(p.Scramble), p.PerfectScore)
		}
		if p.BestFitness == lastBest && p.RestrictedTurns == lastRestricted && p.Turns == lastTurns {
			return
		}
		lastBest, lastRestricted, lastTurns = p.BestFitness, p.RestrictedTurns, p.Turns
		fmt.Printf("  gen %5d  best %6d  avg %9.1f  turns %d/%d  %s\n",
			p.Generation, p.BestFitness, p.AverageFitness,
			p.Turns-p.RestrictedTurns, p.Turns, pocketcube.FormatActions(p.Best))
	}

	s, err := solver.New(params, append(opts, solver.WithObserver(progress))...)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

func runSolveTUI(ctx context.Context, params solver.Config, opts []solver.Option) ([]solver.AttemptResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Log lines would tear the alternate screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	model := newSolveModel(cancel)
	p := tea.NewProgram(model, tea.WithAltScreen())

	s, err := solver.New(params, append(opts,
		solver.WithObserver(func(pr solver.Progress) { p.Send(progressMsg(pr)) }),
		solver.WithRecorder(attemptSender{p}),
	)...)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	var (
		attempts []solver.AttemptResult
		runErr   error
	)
	go func() {
		defer close(done)
		attempts, runErr = s.Run(ctx)
		p.Send(doneMsg{err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return attempts, fmt.Errorf("TUI error: %w", err)
	}

	cancel()
	<-done
	return attempts, runErr
}

// attemptSender forwards finished attempts to the TUI.
type attemptSender struct {
	p *tea.Program
}

func (a attemptSender) Record(r solver.AttemptResult) error {
	a.p.Send(attemptMsg(r))
	return nil
}

func printSummary(runID string, attempts []solver.AttemptResult) {
	fmt.Println()
	if runID != "" {
		fmt.Printf("Run:      %s\n", runID)
	}
	fmt.Printf("Attempts: %d\n", len(attempts))
	if len(attempts) == 0 {
		return
	}

	last := attempts[len(attempts)-1]
	if !last.Solved {
		fmt.Println("Result:   not solved")
		return
	}

	fmt.Printf("Scramble: %s\n", pocketcube.FormatActions(last.Scramble))
	fmt.Printf("Solution: %s (%d moves)\n", pocketcube.FormatActions(last.Solution), len(last.Solution))
	fmt.Printf("Found in: %d generations, %s\n", last.Generations, formatDuration(last.Duration))
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}
