package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/pocketcube"
)

var (
	scrambleLength int
	scrambleSeed   uint64
	scrambleShow   bool
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Generate a random scramble",
	Long: `Generate a random scramble that follows the sequence rules: no leading
prime, no move followed by its inverse, no three identical moves in a row and
no two prime moves in a row.

Examples:
  pocketcube scramble
  pocketcube scramble --length 12 --seed 7 --show`,
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVarP(&scrambleLength, "length", "n", 10, "Number of moves")
	scrambleCmd.Flags().Uint64Var(&scrambleSeed, "seed", 0, "Random seed (0 = time based)")
	scrambleCmd.Flags().BoolVar(&scrambleShow, "show", false, "Print the scrambled cube")
}

func runScramble(cmd *cobra.Command, args []string) error {
	if scrambleLength < 0 {
		return fmt.Errorf("length must not be negative")
	}

	seed := scrambleSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	scramble := pocketcube.GenerateScramble(scrambleLength, rng)
	fmt.Println(pocketcube.FormatActions(scramble))

	if scrambleShow {
		cube := pocketcube.NewCubeState()
		cube.Scramble(scramble)
		fmt.Println()
		fmt.Print(cube.String())
	}
	return nil
}
