// Package config loads planner settings from a YAML file with environment
// overrides. Absent files fall back to defaults so the library works with
// zero configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kestrelworks/symbolic-planner/internal/heuristic"
	"github.com/kestrelworks/symbolic-planner/internal/planner"
)

// #region file-shape

// File is the YAML document shape.
type File struct {
	Planner   PlannerSection   `yaml:"planner"`
	Heuristic HeuristicSection `yaml:"heuristic"`
	Journal   JournalSection   `yaml:"journal"`
	Log       LogSection       `yaml:"log"`
}

// PlannerSection holds search budgets.
type PlannerSection struct {
	Algorithm          string `yaml:"algorithm"`
	MaxDepth           int    `yaml:"max_depth"`
	TimeoutMs          int    `yaml:"timeout_ms"`
	SamplingIterations int    `yaml:"sampling_iterations"`
	RolloutMax         int    `yaml:"rollout_max"`
	Seed               int64  `yaml:"seed"`
}

// HeuristicSection selects the scoring strategy and blend weights.
type HeuristicSection struct {
	Strategy       string  `yaml:"strategy"`
	DistanceWeight float64 `yaml:"distance_weight"`
	CostWeight     float64 `yaml:"cost_weight"`
}

// JournalSection points at the optional sqlite journal.
type JournalSection struct {
	Path string `yaml:"path"`
}

// LogSection sets the global log level.
type LogSection struct {
	Level string `yaml:"level"`
}

// #endregion file-shape

// #region config

// Config is the resolved configuration.
type Config struct {
	Planner     planner.Config
	JournalPath string
}

// Load reads path (if it exists), applies env overrides, and resolves
// defaults. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	// .env is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg := Config{Planner: planner.DefaultConfig()}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			var f File
			if err := yaml.Unmarshal(data, &f); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
			applyFile(&cfg, f)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, f File) {
	if f.Planner.Algorithm != "" {
		cfg.Planner.Algorithm = planner.Algorithm(f.Planner.Algorithm)
	}
	if f.Planner.MaxDepth > 0 {
		cfg.Planner.MaxDepth = f.Planner.MaxDepth
	}
	if f.Planner.TimeoutMs > 0 {
		cfg.Planner.Timeout = time.Duration(f.Planner.TimeoutMs) * time.Millisecond
	}
	if f.Planner.SamplingIterations > 0 {
		cfg.Planner.SamplingIterations = f.Planner.SamplingIterations
	}
	if f.Planner.RolloutMax > 0 {
		cfg.Planner.RolloutMax = f.Planner.RolloutMax
	}
	if f.Planner.Seed != 0 {
		cfg.Planner.Seed = f.Planner.Seed
	}
	if f.Heuristic.Strategy != "" {
		cfg.Planner.Heuristic.Strategy = heuristic.Strategy(f.Heuristic.Strategy)
	}
	if f.Heuristic.DistanceWeight > 0 {
		cfg.Planner.Heuristic.DistanceWeight = f.Heuristic.DistanceWeight
	}
	if f.Heuristic.CostWeight > 0 {
		cfg.Planner.Heuristic.CostWeight = f.Heuristic.CostWeight
	}
	cfg.JournalPath = f.Journal.Path
	applyLogLevel(f.Log.Level)
}

// applyLogLevel sets the global level; unknown names are ignored.
func applyLogLevel(name string) {
	if name == "" {
		return
	}
	if lvl, err := log.ParseLevel(name); err == nil {
		log.SetLevel(lvl)
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PLANNER_ALGORITHM"); v != "" {
		cfg.Planner.Algorithm = planner.Algorithm(v)
	}
	if v := os.Getenv("PLANNER_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Planner.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("PLANNER_MAX_DEPTH"); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d > 0 {
			cfg.Planner.MaxDepth = d
		}
	}
	if v := os.Getenv("PLANNER_JOURNAL_PATH"); v != "" {
		cfg.JournalPath = v
	}
	applyLogLevel(os.Getenv("PLANNER_LOG_LEVEL"))
}

// #endregion config
