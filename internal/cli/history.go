package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/pocketcube"
	"github.com/SeamusWaldron/pocketcube/internal/storage"
)

var (
	historyLimit int
	historyLast  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Review recorded runs",
	Long:  `Commands for listing and inspecting runs recorded by the solve command.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show the attempts of a run",
	Long: `Display a run's parameters and every attempt it made.

Use --last to show the most recent run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run and its attempts",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to display")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&historyLast, "last", false, "Show the most recent run")

	historyCmd.AddCommand(historyDeleteCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := storage.NewRunRepository(db).List(historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("%-36s  %-19s  %-8s  %-13s  %s\n", "RUN", "STARTED", "ATTEMPTS", "SCORER", "RESULT")
	for _, r := range runs {
		result := "unsolved"
		switch {
		case r.Solved:
			result = "solved"
		case r.EndedAt == nil:
			result = "running"
		}
		fmt.Printf("%-36s  %-19s  %-8d  %-13s  %s\n",
			r.RunID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.AttemptCount, r.Scorer, result)
	}

	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !historyLast {
		return fmt.Errorf("specify a run ID or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runs := storage.NewRunRepository(db)

	var run *storage.Run
	if historyLast {
		run, err = runs.GetLast()
	} else {
		run, err = runs.Get(args[0])
	}
	if err != nil {
		return err
	}

	attempts, err := storage.NewAttemptRepository(db).GetByRun(run.RunID)
	if err != nil {
		return err
	}

	fmt.Printf("Run:        %s\n", run.RunID)
	fmt.Printf("Started:    %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if run.EndedAt != nil {
		fmt.Printf("Ended:      %s\n", run.EndedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Seed:       %d\n", run.Seed)
	fmt.Printf("Scorer:     %s\n", run.Scorer)
	fmt.Printf("Genome:     %d turns, %d restricted\n", run.Turns, run.RestrictedTurns)
	fmt.Printf("Population: %d (mutation %.2f)\n", run.Population, run.MutationRate)
	fmt.Println()

	if len(attempts) == 0 {
		fmt.Println("No attempts recorded.")
		return nil
	}

	fmt.Println("Attempts")
	fmt.Println("--------")
	for _, a := range attempts {
		fmt.Printf("\n#%d  %s  highest %d/%d  %d generations  %d restarts  %s\n",
			a.Attempt, solvedLabel(a.Solved), a.HighestFitness, a.PerfectScore,
			a.Generations, a.Restarts, formatDuration(a.Duration))
		fmt.Printf("  Scramble: %s\n", pocketcube.FormatActions(a.Scramble))
		if a.Solved {
			fmt.Printf("  Solution: %s\n", pocketcube.FormatActions(a.Solution))
		}
	}

	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runs := storage.NewRunRepository(db)
	if _, err := runs.Get(args[0]); err != nil {
		return err
	}
	if err := runs.Delete(args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted run %s\n", args[0])
	return nil
}

func solvedLabel(solved bool) string {
	if solved {
		return "solved"
	}
	return "failed"
}
