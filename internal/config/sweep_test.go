package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSweepConfigDefaults(t *testing.T) {
	cfg := EmptySweepConfig()

	if cfg.GetGridSize() != 20 {
		t.Errorf("GetGridSize() = %d, want 20", cfg.GetGridSize())
	}
	if cfg.GetMinWalls() != 0 || cfg.GetMaxWalls() != 50 {
		t.Errorf("wall range = %d..%d, want 0..50", cfg.GetMinWalls(), cfg.GetMaxWalls())
	}
	if cfg.GetMinObstacles() != 0 || cfg.GetMaxObstacles() != 10 {
		t.Errorf("obstacle range = %d..%d, want 0..10", cfg.GetMinObstacles(), cfg.GetMaxObstacles())
	}
	if cfg.GetNumSimulations() != 10 {
		t.Errorf("GetNumSimulations() = %d, want 10", cfg.GetNumSimulations())
	}
	if cfg.GetTimeout() != 5*time.Minute {
		t.Errorf("GetTimeout() = %v, want 5m", cfg.GetTimeout())
	}
	if cfg.GetOutputFile() != "simulation_results.csv" {
		t.Errorf("GetOutputFile() = %q", cfg.GetOutputFile())
	}

	algos := cfg.GetAlgorithms()
	if len(algos) != 2 || algos[0] != "a_star" || algos[1] != "d_star_lite" {
		t.Errorf("GetAlgorithms() = %v, want both planners", algos)
	}
}

func TestLoadSweepConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sweep.json")

	testJSON := `{
  "grid_size": 30,
  "min_walls": 5,
  "max_walls": 15,
  "num_simulations": 3,
  "algorithms": ["a_star"],
  "timeout": "90s",
  "seed": 42
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadSweepConfig(configPath)
	if err != nil {
		t.Fatalf("LoadSweepConfig: %v", err)
	}

	if cfg.GetGridSize() != 30 {
		t.Errorf("GetGridSize() = %d, want 30", cfg.GetGridSize())
	}
	if cfg.GetMinWalls() != 5 || cfg.GetMaxWalls() != 15 {
		t.Errorf("wall range = %d..%d, want 5..15", cfg.GetMinWalls(), cfg.GetMaxWalls())
	}
	if cfg.GetNumSimulations() != 3 {
		t.Errorf("GetNumSimulations() = %d, want 3", cfg.GetNumSimulations())
	}
	if got := cfg.GetAlgorithms(); len(got) != 1 || got[0] != "a_star" {
		t.Errorf("GetAlgorithms() = %v, want [a_star]", got)
	}
	if cfg.GetTimeout() != 90*time.Second {
		t.Errorf("GetTimeout() = %v, want 90s", cfg.GetTimeout())
	}
	if cfg.GetSeed() != 42 {
		t.Errorf("GetSeed() = %d, want 42", cfg.GetSeed())
	}

	// Fields omitted from the file keep their defaults.
	if cfg.GetMaxObstacles() != 10 {
		t.Errorf("GetMaxObstacles() = %d, want default 10", cfg.GetMaxObstacles())
	}
}

func TestLoadSweepConfigRejectsBadInput(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"wrong extension", "sweep.yaml", `{}`},
		{"malformed json", "bad.json", `{"grid_size": `},
		{"tiny grid", "tiny.json", `{"grid_size": 1}`},
		{"inverted wall range", "walls.json", `{"min_walls": 10, "max_walls": 2}`},
		{"negative obstacles", "obs.json", `{"min_obstacles": -1}`},
		{"zero simulations", "sims.json", `{"num_simulations": 0}`},
		{"bad timeout", "timeout.json", `{"timeout": "fast"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if _, err := LoadSweepConfig(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if _, err := LoadSweepConfig(filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
