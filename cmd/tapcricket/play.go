package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapcricket/internal/config"
	"github.com/vovakirdan/tapcricket/internal/games/cricket"
	"github.com/vovakirdan/tapcricket/internal/games/penalty"
	"github.com/vovakirdan/tapcricket/internal/platform/tui"
	"github.com/vovakirdan/tapcricket/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space/Enter  - Swing (cricket), charge and shoot (penalty)
  Arrows/WASD  - Aim (penalty)
  P            - Pause
  R            - Restart after game over
  B/Esc        - Leave after game over or while paused
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Wider timing window and seven balls
  normal - Pace builds as more balls are bowled
  hard   - Strict judging, three balls, pace builds with the score
  fixed  - No progression

Examples:
  tapcricket play cricket
  tapcricket play cricket --difficulty hard
  tapcricket play cricket --config ./my-cricket.yaml
  tapcricket play penalty --difficulty easy`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd, serveCmd, simCmd} {
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom cricket config YAML")
}

// applyGameFlags hands --config and --difficulty to the games. --config only
// applies to the game being launched.
func applyGameFlags(gameID string) error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	cricket.SetDifficultyPreset(flagDifficulty)
	penalty.SetDifficultyPreset(flagDifficulty)

	switch gameID {
	case "cricket":
		cricket.SetConfigPath(flagConfig)
	case "penalty":
		penalty.SetConfigPath(flagConfig)
	}
	return nil
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tapcricket list' to see available games.")
		os.Exit(1)
	}
	if err := applyGameFlags(gameID); err != nil {
		if errors.Is(err, config.ErrUnknownPreset) {
			fmt.Fprintln(os.Stderr, "Error: --difficulty must be one of easy, normal, hard, fixed")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	store := openStore()
	game, err := tui.NewGame(gameID, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var scores tui.ScoreSaver
	if store != nil {
		scores = store
	}
	runErr := tui.Run(game, scores, runtimeConfig(), logger)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
