package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/zappabad/fruitcraft/internal/config"
	"github.com/zappabad/fruitcraft/internal/fruit"
	"github.com/zappabad/fruitcraft/internal/util"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	runs := flag.Int("runs", 10, "number of full-horizon runs")
	seed := flag.Int64("seed", 0, "seed (0 = clock)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := util.NewLogger(cfg.App.LogLevel)

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	probs, err := cfg.Rates().Roll(cfg.Game.HorizonSeconds, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("rolling probabilities")
	}

	preview := fruit.SimulatePreview(probs, cfg.Game.HorizonSeconds, *runs, rng)

	fmt.Printf("%-6s %15s %15s %15s %15s\n", "Run", "team 1 oranges", "team 1 lemons", "team 2 oranges", "team 2 lemons")
	for i, run := range preview.Runs {
		fmt.Printf("%-6d %15d %15d %15d %15d\n",
			i+1, run.Team1Oranges, run.Team1Lemons, run.Team2Oranges, run.Team2Lemons)
	}
	fmt.Printf("%-6s %15d %15d %15d %15d\n", "Total",
		preview.Total.Team1Oranges, preview.Total.Team1Lemons,
		preview.Total.Team2Oranges, preview.Total.Team2Lemons)

	log.Info().
		Int("runs", *runs).
		Int("horizon", cfg.Game.HorizonSeconds).
		Int64("seed", s).
		Msg("simulation complete")
}
