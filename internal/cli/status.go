package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/ble"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var statusScan bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session log and device information",
	Long:  `Display the session database, any interrupted session, the last connected GoCube and, with --scan, nearby GoCube devices.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusScan, "scan", false, "Scan for nearby GoCube devices")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	// Load state file
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	state := stateFile.State()

	fmt.Println("cubesim status")
	fmt.Println("==============")
	fmt.Println()

	// Database info
	path := getDBPath()
	if path == "" {
		path, _ = storage.DefaultDBPath()
	}
	fmt.Printf("Database: %s", path)
	if !cfg.Storage.Enabled {
		fmt.Print(" (logging disabled)")
	}
	fmt.Println()

	if db, err := openDB(); err == nil {
		defer db.Close()
		sessions, _ := storage.NewSessionRepository(db).List(1)
		if len(sessions) > 0 {
			fmt.Printf("Last session: %s (%s)\n", sessions[0].StartedAt.Local().Format(time.RFC3339), sessions[0].Source)
		} else {
			fmt.Println("No sessions recorded")
		}
	} else {
		fmt.Printf("Database unavailable: %v\n", err)
	}

	fmt.Println()

	// Interrupted session
	if state.ActiveSessionID != "" {
		fmt.Printf("Interrupted session: %s\n", state.ActiveSessionID)
		fmt.Println("  (It is closed the next time play, apply, shuffle or mirror runs)")
	} else {
		fmt.Println("No interrupted session")
	}

	// Last device
	if state.LastDeviceID != "" {
		fmt.Printf("Last device: %s (%s)\n", state.LastDeviceName, state.LastDeviceID)
	} else {
		fmt.Println("No device history")
	}

	if !statusScan {
		return nil
	}
	fmt.Println()

	timeout, err := cfg.Mirror.ScanTimeoutDuration()
	if err != nil {
		return err
	}
	client, err := ble.NewClient()
	if err != nil {
		fmt.Printf("BLE not available: %v\n", err)
		return nil
	}
	results, err := scanForGoCube(client, timeout)
	if err != nil {
		fmt.Printf("Scan error: %v\n", err)
		return nil
	}
	if len(results) == 0 {
		fmt.Println("No GoCube devices found")
		fmt.Println()
		fmt.Println("Tips:")
		fmt.Println("  - Ensure your GoCube is powered on")
		fmt.Println("  - Move the cube to wake it up")
		fmt.Println("  - Check that Bluetooth is enabled")
	}
	return nil
}
