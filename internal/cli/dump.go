package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/ble"
	"github.com/SeamusWaldron/cubesim/internal/bridge"
	"github.com/SeamusWaldron/cubesim/internal/protocol"
)

var dumpDuration time.Duration

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print raw and decoded frames from a GoCube",
	Long: `Connect to a GoCube and print every notification it sends: the raw
bytes, the decoded payload and, for rotations, the simulator move it maps
to. Useful when a mirrored cube does not follow the physical one.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().DurationVar(&dumpDuration, "duration", 2*time.Minute, "Stop after this long")
	rootCmd.AddCommand(dumpCmd)
}

// formatFrame renders one message for the dump output.
func formatFrame(msg *protocol.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[RAW] %s\n", hex.EncodeToString(msg.Raw))

	eventType, payload, err := protocol.DecodeMessage(msg)
	if err != nil {
		fmt.Fprintf(&b, "      %s: decode error: %v\n", eventType, err)
		return b.String()
	}
	fmt.Fprintf(&b, "      %s %s\n", eventType, payload)

	if msg.Type == protocol.MsgTypeRotation {
		rotations, _ := protocol.DecodeRotation(msg.Payload)
		for _, ev := range rotations {
			if m, err := bridge.MoveForRotation(ev); err == nil {
				fmt.Fprintf(&b, "      -> %s\n", m.Notation())
			}
		}
	}
	return b.String()
}

func runDump(cmd *cobra.Command, args []string) error {
	timeout, err := cfg.Mirror.ScanTimeoutDuration()
	if err != nil {
		return err
	}

	client, err := ble.NewClient()
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}

	results, err := scanForGoCube(client, timeout)
	if err != nil {
		return err
	}
	result := pickDevice(results, "")
	if result == nil {
		fmt.Println("GoCube not found")
		return nil
	}

	client.SetMessageCallback(func(msg *protocol.Message) {
		fmt.Print(formatFrame(msg))
	})
	client.SetErrorCallback(func(err error) {
		fmt.Printf("[BAD] %v\n", err)
	})

	fmt.Println("Connecting...")
	if err := client.ConnectToResult(*result); err != nil {
		return err
	}
	defer client.Disconnect()
	fmt.Println("Connected!")
	fmt.Println()
	fmt.Println("Rotate the cube to see data...")
	fmt.Println("Press Ctrl+C to exit")
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, dumpDuration)
	defer cancel()

	<-ctx.Done()
	fmt.Println("\nDisconnecting...")
	return nil
}
