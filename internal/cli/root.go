// Package cli implements the command-line interface for cubesim.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/config"
	"github.com/SeamusWaldron/cubesim/internal/logging"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

const version = "0.1.0"

// annotationTUI marks commands that own the terminal. Their logs go to a
// file so they do not corrupt the screen.
const annotationTUI = "tui"

var (
	// Global flags
	cfgPath string
	dbPath  string
	verbose bool

	cfg       = config.Default()
	log       = zerolog.Nop()
	logCloser io.Closer
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubesim",
	Short: "Terminal 3x3x3 cube simulator",
	Long: `cubesim - An animated 3x3x3 puzzle cube in your terminal.

Turn layers from the keyboard, shuffle with a reproducible seed, apply
move notation, or mirror a GoCube smart cube over Bluetooth. Sessions
are logged to a local SQLite database.`,
	Version:            version,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file path (default: ~/.cubesim/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubesim/cubesim.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// setup loads the config file and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if verbose {
		cfg.Log.Level = "debug"
	}
	if cmd.Annotations[annotationTUI] == "true" && cfg.Log.File == "" {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		cfg.Log.File = filepath.Join(dir, "cubesim.log")
	}

	logger, closer, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	log = logger
	logCloser = closer
	log.Debug().Str("command", cmd.Name()).Msg("starting")
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// getDBPath returns the database path from flag, config or default.
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.Storage.Path // empty uses the default
}

// openDB opens and migrates the session database.
func openDB() (*storage.DB, error) {
	path := getDBPath()
	var db *storage.DB
	var err error

	if path == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// openSession opens the database and a recorder bound to the state file.
// It returns a nil session when storage is disabled. A session left open
// by an earlier run is closed first.
func openSession() (*storage.DB, *recorder.Session, error) {
	if !cfg.Storage.Enabled {
		return nil, nil, nil
	}

	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}

	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to load state: %w", err)
	}

	session := recorder.NewSession(db, stateFile, log)
	if id, err := session.Recover(); err != nil {
		log.Warn().Err(err).Msg("failed to recover session")
	} else if id != "" {
		fmt.Printf("Closed interrupted session: %s\n", id)
	}
	return db, session, nil
}

// newSimulator builds a simulator from the loaded config. A non-zero seed
// overrides the configured one.
func newSimulator(seed uint64) *cubesim.Simulator {
	opts := []cubesim.Option{
		cubesim.WithRate(cfg.Engine.Rate),
		cubesim.WithShuffleLength(cfg.Engine.ShuffleLength),
		cubesim.WithLogger(log),
	}
	if seed == 0 {
		seed = cfg.Engine.Seed
	}
	if seed != 0 {
		opts = append(opts, cubesim.WithSeed(seed))
	}
	return cubesim.New(opts...)
}
