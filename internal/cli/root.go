// Package cli implements the command-line interface for pocketcube.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/pocketcube/internal/config"
	"github.com/SeamusWaldron/pocketcube/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath     string
	configPath string
	verbose    bool

	cfg    = config.Default()
	logger = logrus.New()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "pocketcube",
	Short: "Genetic algorithm solver for the 2x2x2 cube",
	Long: `pocketcube searches for move sequences that solve a scrambled 2x2x2 cube
using a genetic algorithm.

Runs and attempts are stored in a local SQLite database so they can be
reviewed later with the history command.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.pocketcube/pocketcube.db)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadConfig reads --config and sets up logging before any command runs.
func loadConfig(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if verbose {
		level = logrus.DebugLevel
	}

	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// getDBPath returns the database path from flag, config or default.
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.Storage.Path
}

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

	return db, nil
}
