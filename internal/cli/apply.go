package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/pocketcube"
)

var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Apply moves to a solved cube and print the result",
	Long: `Apply a move sequence to a solved cube and print every slot.

Moves use standard notation (F B U D L R, with ' for counter-clockwise and
2 for a half turn). Spaces are optional.

Examples:
  pocketcube apply "R U R' U'"
  pocketcube apply R2 F2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	actions, err := pocketcube.ParseActions(strings.Join(args, " "))
	if err != nil {
		return err
	}

	cube := pocketcube.NewCubeState()
	cube.Scramble(actions)

	fmt.Printf("Moves: %s\n\n", pocketcube.FormatActions(actions))
	fmt.Print(cube.String())
	fmt.Println()

	solved := "no"
	if cube.IsSolved(pocketcube.NewCubeState()) {
		solved = "yes"
	}
	fmt.Printf("Solved: %s\n", solved)
	return nil
}
