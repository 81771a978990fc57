package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelworks/symbolic-planner/internal/heuristic"
	"github.com/kestrelworks/symbolic-planner/internal/planner"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	def := planner.DefaultConfig()
	assert.Equal(t, def.Algorithm, cfg.Planner.Algorithm)
	assert.Equal(t, def.MaxDepth, cfg.Planner.MaxDepth)
	assert.Equal(t, def.Timeout, cfg.Planner.Timeout)
	assert.Empty(t, cfg.JournalPath)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, planner.DefaultConfig().Algorithm, cfg.Planner.Algorithm)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
planner:
  algorithm: greedy
  max_depth: 25
  timeout_ms: 1500
  sampling_iterations: 40
  rollout_max: 8
  seed: 7
heuristic:
  strategy: combined
  distance_weight: 0.6
  cost_weight: 0.4
journal:
  path: /tmp/planner.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, planner.AlgorithmGreedy, cfg.Planner.Algorithm)
	assert.Equal(t, 25, cfg.Planner.MaxDepth)
	assert.Equal(t, 1500*time.Millisecond, cfg.Planner.Timeout)
	assert.Equal(t, 40, cfg.Planner.SamplingIterations)
	assert.Equal(t, 8, cfg.Planner.RolloutMax)
	assert.Equal(t, int64(7), cfg.Planner.Seed)
	assert.Equal(t, heuristic.StrategyCombined, cfg.Planner.Heuristic.Strategy)
	assert.Equal(t, 0.6, cfg.Planner.Heuristic.DistanceWeight)
	assert.Equal(t, 0.4, cfg.Planner.Heuristic.CostWeight)
	assert.Equal(t, "/tmp/planner.db", cfg.JournalPath)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
planner:
  algorithm: dfs
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	def := planner.DefaultConfig()
	assert.Equal(t, planner.AlgorithmDFS, cfg.Planner.Algorithm)
	assert.Equal(t, def.MaxDepth, cfg.Planner.MaxDepth)
	assert.Equal(t, def.Timeout, cfg.Planner.Timeout)
	assert.Equal(t, def.Heuristic.Strategy, cfg.Planner.Heuristic.Strategy)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "planner: [not: a: mapping")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
planner:
  algorithm: bfs
  max_depth: 4
`)
	t.Setenv("PLANNER_ALGORITHM", "astar")
	t.Setenv("PLANNER_MAX_DEPTH", "12")
	t.Setenv("PLANNER_TIMEOUT_MS", "250")
	t.Setenv("PLANNER_JOURNAL_PATH", "/tmp/env.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, planner.AlgorithmAStar, cfg.Planner.Algorithm)
	assert.Equal(t, 12, cfg.Planner.MaxDepth)
	assert.Equal(t, 250*time.Millisecond, cfg.Planner.Timeout)
	assert.Equal(t, "/tmp/env.db", cfg.JournalPath)
}

func TestLoad_LogLevel(t *testing.T) {
	prev := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(prev) })

	path := writeConfig(t, `
log:
  level: debug
`)
	_, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestLoad_IgnoresInvalidEnvNumbers(t *testing.T) {
	t.Setenv("PLANNER_MAX_DEPTH", "not-a-number")
	t.Setenv("PLANNER_TIMEOUT_MS", "-5")

	cfg, err := Load("")
	require.NoError(t, err)

	def := planner.DefaultConfig()
	assert.Equal(t, def.MaxDepth, cfg.Planner.MaxDepth)
	assert.Equal(t, def.Timeout, cfg.Planner.Timeout)
}
