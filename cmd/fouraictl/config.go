package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/ini.v1"

	"fourai/internal/pool"
	"fourai/internal/storage"
)

// trainConfig collects every knob of a training run. Values are layered:
// built-in defaults, then an optional ini profile, then environment
// variables, then explicit flags.
type trainConfig struct {
	Store    string `env:"FOURAI_STORE"`
	DBPath   string `env:"FOURAI_DB_PATH"`
	SavePath string `env:"FOURAI_SAVE_PATH"`
	Workers  int    `env:"FOURAI_WORKERS"`

	Population          int
	Survivors           int
	Crossovers          int
	MutationProbability float64
	MutationMagnitude   float64
	WinScore            int
	Structure           []int
	Activations         []string
	Generations         int
	SaveInterval        int
	CompareInterval     int
	Seed                int64
}

func defaultTrainConfig() trainConfig {
	return trainConfig{
		Store:               storage.DefaultStoreKind(),
		DBPath:              "fourai.db",
		SavePath:            "saves/gen",
		Workers:             0,
		Population:          50,
		Survivors:           10,
		Crossovers:          10,
		MutationProbability: 0.05,
		MutationMagnitude:   0.25,
		WinScore:            25,
		Structure:           []int{42, 25, 7},
		Activations:         []string{"sigmoid", "sigmoid"},
		Generations:         100,
		SaveInterval:        25,
		CompareInterval:     25,
		Seed:                1,
	}
}

// applyProfile overlays the named section of an ini profile file onto c.
// Absent keys keep their current values.
func (c *trainConfig) applyProfile(path, section string) error {
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("load profile %s: %w", path, err)
	}
	sec, err := file.GetSection(section)
	if err != nil {
		return fmt.Errorf("profile %s: %w", path, err)
	}

	c.Store = sec.Key("store").MustString(c.Store)
	c.DBPath = sec.Key("db_path").MustString(c.DBPath)
	c.SavePath = sec.Key("save_path").MustString(c.SavePath)
	c.Workers = sec.Key("workers").MustInt(c.Workers)
	c.Population = sec.Key("population").MustInt(c.Population)
	c.Survivors = sec.Key("survivors").MustInt(c.Survivors)
	c.Crossovers = sec.Key("crossovers").MustInt(c.Crossovers)
	c.MutationProbability = sec.Key("mutation_probability").MustFloat64(c.MutationProbability)
	c.MutationMagnitude = sec.Key("mutation_magnitude").MustFloat64(c.MutationMagnitude)
	c.WinScore = sec.Key("win_score").MustInt(c.WinScore)
	c.Generations = sec.Key("generations").MustInt(c.Generations)
	c.SaveInterval = sec.Key("save_interval").MustInt(c.SaveInterval)
	c.CompareInterval = sec.Key("compare_interval").MustInt(c.CompareInterval)
	c.Seed = sec.Key("seed").MustInt64(c.Seed)

	if raw := sec.Key("structure").String(); raw != "" {
		structure, err := parseStructure(raw)
		if err != nil {
			return fmt.Errorf("profile %s: %w", path, err)
		}
		c.Structure = structure
	}
	if raw := sec.Key("activations").String(); raw != "" {
		c.Activations = parseList(raw)
	}
	return nil
}

// applyEnv overlays FOURAI_* environment variables onto c.
func (c *trainConfig) applyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

func (c trainConfig) properties() pool.Properties {
	return pool.Properties{
		PopulationSize:      c.Population,
		SurvivorCount:       c.Survivors,
		CrossoverCount:      c.Crossovers,
		MutationProbability: c.MutationProbability,
		MutationMagnitude:   c.MutationMagnitude,
		WinScore:            c.WinScore,
		Structure:           c.Structure,
		Activations:         c.Activations,
		Generations:         c.Generations,
		SaveInterval:        c.SaveInterval,
		CompareInterval:     c.CompareInterval,
		Workers:             c.Workers,
		Seed:                c.Seed,
	}
}

// parseStructure turns a comma-separated width list like "42,25,7" into
// layer widths.
func parseStructure(raw string) ([]int, error) {
	parts := parseList(raw)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty structure %q", raw)
	}
	widths := make([]int, 0, len(parts))
	for _, part := range parts {
		width, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("structure width %q: %w", part, err)
		}
		widths = append(widths, width)
	}
	return widths, nil
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
