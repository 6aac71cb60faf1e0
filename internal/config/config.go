// Package config loads the twentyfour command's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/twentyfour"
	"github.com/zephyrtronium/twentyfour/game"
)

// Config holds all twentyfour configuration.
type Config struct {
	// Target is the value every answer must make.
	Target int64 `yaml:"target"`
	// RoundTimeout is how long a round waits for an answer, e.g. "5m".
	RoundTimeout string `yaml:"round_timeout"`
	// CorpusPath is the file puzzles are drawn from.
	CorpusPath string `yaml:"corpus_path"`
	// WatchCorpus reloads the corpus when its file changes.
	WatchCorpus bool `yaml:"watch_corpus"`
	// QuitWords end a game.
	QuitWords []string `yaml:"quit_words"`
	// MaxDepth limits bracket nesting and prefix recursion in answers.
	MaxDepth int `yaml:"max_depth"`

	// Solver settings for corpus generation
	Solver SolverConfig `yaml:"solver"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SolverConfig configures corpus generation.
type SolverConfig struct {
	Min     int64 `yaml:"min"`
	Max     int64 `yaml:"max"`
	Size    int   `yaml:"size"`
	Workers int   `yaml:"workers"` // 0 = GOMAXPROCS
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`   // empty = stderr
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Target:       24,
		RoundTimeout: "5m",
		CorpusPath:   filepath.Join("data", "game24", "4d12.txt"),
		QuitWords:    append([]string(nil), game.DefaultQuitWords...),
		MaxDepth:     twentyfour.MaxDepth,
		Solver: SolverConfig{
			Min:  1,
			Max:  13,
			Size: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in either case.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		data = nil
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if lvl := os.Getenv("LOGGING_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if path := os.Getenv("TWENTYFOUR_CORPUS"); path != "" {
		c.CorpusPath = path
	}
	if d := os.Getenv("TWENTYFOUR_TIMEOUT"); d != "" {
		c.RoundTimeout = d
	}
}

// GetRoundTimeout returns the round timeout as a duration.
func (c *Config) GetRoundTimeout() time.Duration {
	d, err := time.ParseDuration(c.RoundTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.CorpusPath == "" {
		return fmt.Errorf("corpus_path must be set")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Solver.Size <= 0 {
		return fmt.Errorf("solver.size must be positive, got %d", c.Solver.Size)
	}
	if c.Solver.Min < 0 || c.Solver.Max < c.Solver.Min {
		return fmt.Errorf("solver bounds must satisfy 0 <= min <= max, got [%d, %d]", c.Solver.Min, c.Solver.Max)
	}
	if c.RoundTimeout != "" {
		if _, err := time.ParseDuration(c.RoundTimeout); err != nil {
			return fmt.Errorf("invalid round_timeout: %w", err)
		}
	}
	return nil
}

// Game returns the game settings described by the configuration.
func (c *Config) Game() game.Config {
	return game.Config{
		Target:    c.Target,
		Timeout:   c.GetRoundTimeout(),
		QuitWords: c.QuitWords,
		Depth:     c.MaxDepth,
	}
}

// Generate returns the corpus generation settings described by the
// configuration.
func (c *Config) Generate() game.GenerateOptions {
	return game.GenerateOptions{
		Min:     c.Solver.Min,
		Max:     c.Solver.Max,
		Size:    c.Solver.Size,
		Target:  c.Target,
		Workers: c.Solver.Workers,
	}
}
