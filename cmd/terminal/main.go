package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zappabad/fruitcraft/internal/config"
	"github.com/zappabad/fruitcraft/internal/fruit"
	"github.com/zappabad/fruitcraft/internal/metrics"
	"github.com/zappabad/fruitcraft/internal/session"
	"github.com/zappabad/fruitcraft/internal/util"
	"github.com/zappabad/fruitcraft/tui"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	seed := flag.Int64("seed", 0, "session seed (0 = clock)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	log := util.NewLogger(cfg.App.LogLevel)

	if cfg.App.MetricsAddr != "" {
		metrics.Serve(cfg.App.MetricsAddr)
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics listening")
	}

	rollSeed := cfg.Game.Seed
	if rollSeed == 0 {
		rollSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rollSeed))

	// One probability set for the whole process: the preview and the live
	// game must be statistically identical.
	probs, err := cfg.Rates().Roll(cfg.Game.HorizonSeconds, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("rolling probabilities")
	}

	preview := fruit.SimulatePreview(probs, cfg.Game.HorizonSeconds, cfg.Game.PreviewRuns,
		rand.New(rand.NewSource(rollSeed+1)))

	sess := session.New(session.Config{
		Horizon:       cfg.Game.HorizonSeconds,
		Probabilities: probs,
		Pricing:       cfg.PricingParams(),
		Seed:          cfg.Game.Seed,
	}, log)
	defer sess.Close()

	model := tui.NewModel(sess, preview)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
