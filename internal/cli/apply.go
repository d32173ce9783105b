package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Apply move notation to a solved cube and print the result",
	Long: `Apply a sequence of turns instantly and print the unfolded net.

Notation uses R L U D F B for outer layers and M E S for slices. A
trailing ' (or ` + "`" + `) turns the other way and a trailing 2 turns twice.
Letters are upper case only; lower case wide turns are skipped.

Example:
  cubesim apply "R U R' U'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	moves, err := cubesim.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}

	db, session, err := openSession()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	sim := newSimulator(0)
	if session != nil {
		if _, err := session.Start(storage.SourceApply, sim.Seed()); err != nil {
			return err
		}
		session.Attach(sim)
		defer endSession(session, sim)
	}

	if err := sim.Apply(moves...); err != nil {
		return fmt.Errorf("failed to apply moves: %w", err)
	}

	fmt.Printf("Applied: %s (%d moves)\n\n", cubesim.FormatMoves(moves), len(moves))
	fmt.Print(sim.Facelets())
	fmt.Println()
	if sim.IsSolved() {
		fmt.Println("Cube is solved")
	}
	return nil
}
