package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	shuffleCount int
	shuffleSeed  uint64
)

var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Print a random scramble and the cube it produces",
	Long: `Generate a scramble of random quarter turns and print its notation,
its inverse and the resulting net. The same seed always produces the same
scramble.`,
	Args: cobra.NoArgs,
	RunE: runShuffle,
}

func init() {
	shuffleCmd.Flags().IntVarP(&shuffleCount, "count", "n", 0, "Number of turns (default: engine.shuffle_length)")
	shuffleCmd.Flags().Uint64Var(&shuffleSeed, "seed", 0, "Random seed (default: from config or random)")
	rootCmd.AddCommand(shuffleCmd)
}

func runShuffle(cmd *cobra.Command, args []string) error {
	db, session, err := openSession()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	sim := newSimulator(shuffleSeed)
	if session != nil {
		if _, err := session.Start(storage.SourceShuffle, sim.Seed()); err != nil {
			return err
		}
		session.Attach(sim)
		defer endSession(session, sim)
	}

	shuffle := sim.ShuffleDefault
	if cmd.Flags().Changed("count") {
		shuffle = func() ([]cubesim.Move, error) { return sim.Shuffle(shuffleCount) }
	}
	moves, err := shuffle()
	if err != nil {
		return err
	}

	fmt.Printf("Seed:     %d\n", sim.Seed())
	fmt.Printf("Scramble: %s\n", cubesim.FormatMoves(moves))
	fmt.Printf("Undo:     %s\n\n", cubesim.FormatMoves(cubesim.InvertMoves(moves)))
	fmt.Print(sim.Facelets())
	return nil
}
