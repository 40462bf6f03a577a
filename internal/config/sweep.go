// Package config loads sweep tuning from JSON files. Fields are
// pointers so partial configs are safe: anything omitted falls back to
// the Get* defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SweepConfig is the JSON schema for a batch sweep. All fields are
// optional.
type SweepConfig struct {
	GridSize       *int     `json:"grid_size,omitempty"`
	MinWalls       *int     `json:"min_walls,omitempty"`
	MaxWalls       *int     `json:"max_walls,omitempty"`
	MinObstacles   *int     `json:"min_obstacles,omitempty"`
	MaxObstacles   *int     `json:"max_obstacles,omitempty"`
	NumSimulations *int     `json:"num_simulations,omitempty"`
	Algorithms     []string `json:"algorithms,omitempty"`
	Timeout        *string  `json:"timeout,omitempty"` // duration string like "5m"
	Seed           *int64   `json:"seed,omitempty"`
	OutputFile     *string  `json:"output_file,omitempty"`
}

// EmptySweepConfig returns a SweepConfig with all fields set to nil.
func EmptySweepConfig() *SweepConfig {
	return &SweepConfig{}
}

// LoadSweepConfig loads a SweepConfig from a JSON file. Fields omitted
// from the file retain their defaults.
func LoadSweepConfig(path string) (*SweepConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptySweepConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *SweepConfig) Validate() error {
	if c.GridSize != nil && *c.GridSize < 2 {
		return fmt.Errorf("grid_size must be at least 2, got %d", *c.GridSize)
	}
	if c.MinWalls != nil && *c.MinWalls < 0 {
		return fmt.Errorf("min_walls must be non-negative, got %d", *c.MinWalls)
	}
	if c.MinObstacles != nil && *c.MinObstacles < 0 {
		return fmt.Errorf("min_obstacles must be non-negative, got %d", *c.MinObstacles)
	}
	if c.MinWalls != nil && c.MaxWalls != nil && *c.MaxWalls < *c.MinWalls {
		return fmt.Errorf("max_walls %d below min_walls %d", *c.MaxWalls, *c.MinWalls)
	}
	if c.MinObstacles != nil && c.MaxObstacles != nil && *c.MaxObstacles < *c.MinObstacles {
		return fmt.Errorf("max_obstacles %d below min_obstacles %d", *c.MaxObstacles, *c.MinObstacles)
	}
	if c.NumSimulations != nil && *c.NumSimulations < 1 {
		return fmt.Errorf("num_simulations must be positive, got %d", *c.NumSimulations)
	}
	if c.Timeout != nil && *c.Timeout != "" {
		if _, err := time.ParseDuration(*c.Timeout); err != nil {
			return fmt.Errorf("invalid timeout '%s': %w", *c.Timeout, err)
		}
	}
	return nil
}

// GetGridSize returns the grid_size value or the default.
func (c *SweepConfig) GetGridSize() int {
	if c.GridSize == nil {
		return 20 // default
	}
	return *c.GridSize
}

// GetMinWalls returns the min_walls value or the default.
func (c *SweepConfig) GetMinWalls() int {
	if c.MinWalls == nil {
		return 0
	}
	return *c.MinWalls
}

// GetMaxWalls returns the max_walls value or the default.
func (c *SweepConfig) GetMaxWalls() int {
	if c.MaxWalls == nil {
		return 50
	}
	return *c.MaxWalls
}

// GetMinObstacles returns the min_obstacles value or the default.
func (c *SweepConfig) GetMinObstacles() int {
	if c.MinObstacles == nil {
		return 0
	}
	return *c.MinObstacles
}

// GetMaxObstacles returns the max_obstacles value or the default.
func (c *SweepConfig) GetMaxObstacles() int {
	if c.MaxObstacles == nil {
		return 10
	}
	return *c.MaxObstacles
}

// GetNumSimulations returns the num_simulations value or the default.
func (c *SweepConfig) GetNumSimulations() int {
	if c.NumSimulations == nil {
		return 10
	}
	return *c.NumSimulations
}

// GetAlgorithms returns the algorithms list or the default pair.
func (c *SweepConfig) GetAlgorithms() []string {
	if len(c.Algorithms) == 0 {
		return []string{"a_star", "d_star_lite"}
	}
	return c.Algorithms
}

// GetTimeout parses and returns the Timeout as a time.Duration.
func (c *SweepConfig) GetTimeout() time.Duration {
	if c.Timeout == nil || *c.Timeout == "" {
		return 5 * time.Minute // default
	}
	d, err := time.ParseDuration(*c.Timeout)
	if err != nil {
		return 5 * time.Minute // default on parse error
	}
	return d
}

// GetSeed returns the seed value, or the current time when unset so
// unseeded sweeps differ run to run.
func (c *SweepConfig) GetSeed() int64 {
	if c.Seed == nil {
		return time.Now().UnixNano()
	}
	return *c.Seed
}

// GetOutputFile returns the output_file value or the default.
func (c *SweepConfig) GetOutputFile() string {
	if c.OutputFile == nil || *c.OutputFile == "" {
		return "simulation_results.csv"
	}
	return *c.OutputFile
}
