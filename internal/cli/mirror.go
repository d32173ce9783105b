package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/ble"
	"github.com/SeamusWaldron/cubesim/internal/bridge"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror a GoCube smart cube in the animated renderer",
	Long: `Scan for a GoCube over Bluetooth, connect, and animate every turn of the
physical cube. The cube is marked solved on connect, so start from a solved
cube. The view follows whichever side of the cube faces you.

Keyboard shortcuts:
  ←/→     - Walk around the cube to another side
  Esc     - Quit`,
	Annotations: map[string]string{annotationTUI: "true"},
	Args:        cobra.NoArgs,
	RunE:        runMirror,
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
}

// scanForGoCube scans for GoCube devices and prints what it found.
func scanForGoCube(client *ble.Client, timeout time.Duration) ([]ble.ScanResult, error) {
	fmt.Println("Scanning for GoCube devices...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	for _, r := range results {
		fmt.Printf("Found: %s (UUID: %s, RSSI: %d)\n", r.Name, r.UUID, r.RSSI)
	}
	return results, nil
}

// pickDevice returns the device connected last time if it is advertising,
// otherwise the first found, or nil.
func pickDevice(results []ble.ScanResult, lastDeviceID string) *ble.ScanResult {
	if len(results) == 0 {
		return nil
	}
	for i := range results {
		if results[i].UUID == lastDeviceID {
			return &results[i]
		}
	}
	return &results[0]
}

func runMirror(cmd *cobra.Command, args []string) error {
	timeout, err := cfg.Mirror.ScanTimeoutDuration()
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

	client, err := ble.NewClient()
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}

	lastDevice := ""
	if session != nil && session.StateFile() != nil {
		lastDevice = session.StateFile().LastDeviceID()
	}
	results, err := scanForGoCube(client, timeout)
	if err != nil {
		return err
	}
	result := pickDevice(results, lastDevice)
	if result == nil {
		fmt.Println("No GoCube devices found.")
		fmt.Println()
		fmt.Println("To fix this:")
		fmt.Println("  1. Rotate your cube to wake it up")
		fmt.Println("  2. Make sure it's not connected to your phone")
		fmt.Println("  3. Run this command again")
		return nil
	}

	sim := newSimulator(0)
	br := bridge.New(cfg.Mirror.Buffer, log)
	if session != nil {
		if _, err := session.Start(storage.SourceMirror, sim.Seed()); err != nil {
			return err
		}
		session.Attach(sim)
		br.SetEventSink(session)
		defer endSession(session, sim)
	}

	client.SetMessageCallback(br.Handle)
	client.SetErrorCallback(func(err error) {
		log.Warn().Err(err).Msg("bad frame from cube")
	})

	if err := client.ConnectToResult(*result); err != nil {
		return err
	}
	defer client.Disconnect()
	log.Info().Str("device", result.Name).Str("address", result.UUID).Msg("connected")

	if session != nil && session.StateFile() != nil {
		if err := session.StateFile().SetLastDevice(result.UUID, result.Name); err != nil {
			log.Warn().Err(err).Msg("failed to update state file")
		}
	}

	commands := []struct {
		name string
		send func() error
	}{
		{"enable orientation", client.EnableOrientation},
		{"reset solved", client.ResetSolved},
		{"flash backlight", client.FlashBacklight},
	}
	for _, c := range commands {
		if err := c.send(); err != nil {
			log.Warn().Err(err).Str("command", c.name).Msg("cube command failed")
		}
	}

	return runModel(newMirrorModel(sim, cfg.FrameInterval(), br, client.DeviceName()))
}
