// Package config exposes strongly typed game configuration loadable from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zappabad/fruitcraft/internal/fruit"
	"github.com/zappabad/fruitcraft/internal/pricing"
)

// App captures process-wide runtime settings.
type App struct {
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Game captures the session parameters.
type Game struct {
	// HorizonSeconds is the game length; one tick per second.
	HorizonSeconds int `yaml:"horizon_seconds"`
	// Seed fixes the session randomness; 0 derives from the clock.
	Seed int64 `yaml:"seed"`
	// PreviewRuns is how many headless runs are shown before trading.
	PreviewRuns int `yaml:"preview_runs"`

	// Expected event totals over a full game, per counter. Team 2
	// totals are drawn from their ranges once per session.
	Team1Oranges    float64 `yaml:"team1_oranges"`
	Team1Lemons     float64 `yaml:"team1_lemons"`
	Team2OrangesMin int     `yaml:"team2_oranges_min"`
	Team2OrangesMax int     `yaml:"team2_oranges_max"`
	Team2LemonsMin  float64 `yaml:"team2_lemons_min"`
	Team2LemonsMax  float64 `yaml:"team2_lemons_max"`
	ProbJitter      float64 `yaml:"prob_jitter"`
}

// Pricing tunes the quote process.
type Pricing struct {
	Revert     float64 `yaml:"revert"`
	SigmaBase  float64 `yaml:"sigma_base"`
	SigmaFloor float64 `yaml:"sigma_floor"`
}

// Config is the root configuration document.
type Config struct {
	App     App     `yaml:"app"`
	Game    Game    `yaml:"game"`
	Pricing Pricing `yaml:"pricing"`
}

// Default returns the standard configuration.
func Default() Config {
	rates := fruit.DefaultRates()
	params := pricing.DefaultParams()
	return Config{
		App: App{LogLevel: "info"},
		Game: Game{
			HorizonSeconds:  900,
			PreviewRuns:     10,
			Team1Oranges:    rates.Team1Oranges,
			Team1Lemons:     rates.Team1Lemons,
			Team2OrangesMin: rates.Team2OrangesMin,
			Team2OrangesMax: rates.Team2OrangesMax,
			Team2LemonsMin:  rates.Team2LemonsMin,
			Team2LemonsMax:  rates.Team2LemonsMax,
			ProbJitter:      rates.Jitter,
		},
		Pricing: Pricing{
			Revert:     params.Revert,
			SigmaBase:  params.SigmaBase,
			SigmaFloor: params.SigmaFloor,
		},
	}
}

// Load reads a YAML file over the defaults. A missing path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Rates converts the game section into the generator's rate config.
func (c Config) Rates() fruit.Rates {
	return fruit.Rates{
		Team1Oranges:    c.Game.Team1Oranges,
		Team1Lemons:     c.Game.Team1Lemons,
		Team2OrangesMin: c.Game.Team2OrangesMin,
		Team2OrangesMax: c.Game.Team2OrangesMax,
		Team2LemonsMin:  c.Game.Team2LemonsMin,
		Team2LemonsMax:  c.Game.Team2LemonsMax,
		Jitter:          c.Game.ProbJitter,
	}
}

// PricingParams converts the pricing section into quote parameters.
func (c Config) PricingParams() pricing.Params {
	return pricing.Params{
		Revert:     c.Pricing.Revert,
		SigmaBase:  c.Pricing.SigmaBase,
		SigmaFloor: c.Pricing.SigmaFloor,
	}
}
