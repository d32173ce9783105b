package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	historyLimit int
	historyShow  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List logged sessions",
	Long:  `List recent sessions from the session database, newest first. Use --show to print the moves of one session.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of sessions to show")
	historyCmd.Flags().StringVar(&historyShow, "show", "", "Print the moves of the session with this ID")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	// Open database
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if historyShow != "" {
		return showSession(db, historyShow)
	}

	sessions, err := storage.NewSessionRepository(db).List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet")
		fmt.Println("Start one with: cubesim play")
		return nil
	}

	fmt.Printf("Recent sessions (showing %d):\n", len(sessions))
	fmt.Println()
	fmt.Printf("%-36s  %-20s  %-8s  %-10s  %-6s  %s\n", "ID", "Started", "Source", "Duration", "Moves", "Solved")
	fmt.Println("------------------------------------  --------------------  --------  ----------  ------  ------")

	for _, s := range sessions {
		duration := "-"
		if s.DurationMs != nil {
			duration = formatDuration(time.Duration(*s.DurationMs) * time.Millisecond)
		}

		solved := "no"
		if s.Solved {
			solved = "yes"
		}
		if s.EndedAt == nil {
			solved = "(active)"
		}

		fmt.Printf("%-36s  %-20s  %-8s  %-10s  %-6d  %s\n",
			s.SessionID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			s.Source,
			duration,
			s.MoveCount,
			solved,
		)
	}

	return nil
}

func showSession(db *storage.DB, sessionID string) error {
	s, err := storage.NewSessionRepository(db).Get(sessionID)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	records, err := storage.NewMoveRepository(db).ListBySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to list moves: %w", err)
	}

	var shuffle, turns []string
	for _, r := range records {
		if r.Kind == storage.KindShuffle {
			shuffle = append(shuffle, r.Notation)
		} else {
			turns = append(turns, r.Notation)
		}
	}

	fmt.Printf("Session: %s\n", s.SessionID)
	fmt.Printf("Source:  %s\n", s.Source)
	fmt.Printf("Seed:    %d\n", s.Seed)
	fmt.Printf("Started: %s\n", s.StartedAt.Local().Format(time.RFC3339))
	if s.DurationMs != nil {
		fmt.Printf("Duration: %s\n", formatDuration(time.Duration(*s.DurationMs)*time.Millisecond))
	}
	fmt.Printf("Solved:  %v\n", s.Solved)
	if len(shuffle) > 0 {
		fmt.Printf("Shuffle: %s\n", joinMoves(shuffle))
	}
	fmt.Printf("Moves (%d): %s\n", len(turns), joinMoves(turns))
	return nil
}

func joinMoves(notations []string) string {
	if len(notations) == 0 {
		return "-"
	}
	return strings.Join(notations, " ")
}

// formatDuration formats a duration as m:ss.ss or s.ss.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}
