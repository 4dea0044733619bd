package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapcricket/internal/config"
	"github.com/vovakirdan/tapcricket/internal/core"
	"github.com/vovakirdan/tapcricket/internal/games/cricket/sim"
	"github.com/vovakirdan/tapcricket/internal/platform/logging"
	"github.com/vovakirdan/tapcricket/internal/storage"
)

var (
	flagSimRuns    int
	flagSimErrorMs float64
	flagSimPersist bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless cricket matches with a bot batter",
	Long: `Play full cricket matches without a terminal. The bot swings at every
ball with a normally distributed timing error, and simulated time jumps
straight from one event to the next.

Examples:
  tapcricket sim
  tapcricket sim --runs 100 --error-ms 40 --seed 7
  tapcricket sim --difficulty hard --persist`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Number of matches")
	simCmd.Flags().Float64Var(&flagSimErrorMs, "error-ms", 60, "Standard deviation of the bot's timing error in ms")
	simCmd.Flags().BoolVar(&flagSimPersist, "persist", false, "Use the scores database for the high score and record results")
}

func runSim(_ *cobra.Command, _ []string) {
	if flagSimRuns <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --runs must be > 0")
		os.Exit(1)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadCricket(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.ApplyCricketPreset(&cfg, preset)
	cfg = cfg.Validate()

	logger := logging.New(os.Stderr, "sim", logging.ParseLevel(flagLogLevel))

	var kv core.KVStore = sim.NewMemoryKV()
	var store *storage.Store
	if flagSimPersist {
		store = openStore()
	}
	if store != nil {
		defer store.Close()
		kv = store
	}

	seedBase := flagSeed
	if seedBase == 0 {
		seedBase = 42
	}

	fmt.Println("=== Tap Cricket Headless Report ===")
	fmt.Printf("runs=%d seed_base=%d error_ms=%.0f attempts=%d difficulty=%q\n\n",
		flagSimRuns, seedBase, flagSimErrorMs, cfg.Match.Attempts, preset)

	reports := make([]sim.MatchReport, 0, flagSimRuns)
	for i := range flagSimRuns {
		seed := seedBase + int64(i)
		rep := sim.RunMatch(cfg, seed, flagSimErrorMs, kv, logger)
		reports = append(reports, rep)
		printMatch(i+1, seed, rep)

		if store != nil && rep.Summary.FinalScore > 0 {
			if _, err := store.SaveMatchScore("cricket", rep.MatchID, rep.Summary.FinalScore); err != nil {
				logger.Error("cannot save score", "match", rep.MatchID, "err", err)
			}
		}
	}

	agg := sim.Summarize(reports)
	fmt.Println()
	fmt.Println("=== Aggregate ===")
	fmt.Printf("matches=%d deliveries=%d hits=%d hit_rate=%.1f%%\n",
		agg.Matches, agg.Deliveries, agg.Hits, agg.HitRate()*100)
	fmt.Printf("runs: total=%d mean=%.2f best=%d new_highs=%d\n", agg.TotalRuns, agg.Mean, agg.Best, agg.NewHighs)
	fmt.Printf("tiers: perfect=%d good=%d ok=%d miss=%d\n",
		agg.ByTier[sim.TierPerfect], agg.ByTier[sim.TierGood], agg.ByTier[sim.TierOk], agg.ByTier[sim.TierMiss])
}

func printMatch(n int, seed int64, rep sim.MatchReport) {
	mark := ""
	if rep.Summary.IsNewHighScore {
		mark = " NEW HIGH"
	}
	fmt.Printf("match %2d seed=%d score=%d best=%d sim_time=%s%s\n",
		n, seed, rep.Summary.FinalScore, rep.Summary.HighScore, rep.Duration.Round(time.Millisecond), mark)
	for _, d := range rep.Deliveries {
		fmt.Printf("    #%d %-6s %-12s acc=%.2f runs=%d\n",
			d.Delivery.Seq, d.Delivery.Archetype.Label, d.Outcome, d.Accuracy, d.Runs)
	}
}
