// tapcricket is a terminal arcade built around a timing-based cricket
// batting game.
//
// Usage:
//
//	tapcricket list              - List available games
//	tapcricket play <game>       - Play a game
//	tapcricket menu              - Pick games interactively
//	tapcricket serve             - Start the SSH server
//	tapcricket scores <game>     - Show high scores
//	tapcricket sim               - Run headless matches with a bot batter
//
// Global flags:
//
//	--fps <rate>       - Tick rate (default: 60)
//	--seed <value>     - RNG seed for reproducible matches
//	--db <path>        - Database path (default: ~/.tapcricket/scores.db)
//	--log-file <path>  - Write diagnostics to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tapcricket/internal/core"
	_ "github.com/vovakirdan/tapcricket/internal/games/cricket"
	_ "github.com/vovakirdan/tapcricket/internal/games/penalty"
	"github.com/vovakirdan/tapcricket/internal/platform/logging"
	"github.com/vovakirdan/tapcricket/internal/storage"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tapcricket",
	Short: "Tap Cricket - time your swing in the terminal",
	Long: `Tap Cricket is a terminal arcade. Balls are bowled at three paces;
press Space as the ball reaches the batting crease to score runs.
A match is five deliveries; every ball bowled uses one up, hit or miss.

Examples:
  tapcricket play cricket
  tapcricket play cricket --difficulty hard
  tapcricket play penalty
  tapcricket menu
  tapcricket serve --ssh :2222
  tapcricket sim --runs 50 --error-ms 60`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write diagnostics to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// fileLogger returns the --log-file logger, or a discarding one. Interactive
// commands cannot log to stderr while the alt screen is up.
func fileLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return logging.Discard(), func() {}
	}
	logger, closer, err := logging.OpenFile(flagLogFile, "tapcricket", logging.ParseLevel(flagLogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return logging.Discard(), func() {}
	}
	return logger, func() { closer.Close() }
}

// openStore opens the score database. A failure is reported and the caller
// continues with in-memory scores.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
