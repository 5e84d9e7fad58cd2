// Package config provides TOML configuration for TermTacToe.
//
// The configuration file lives at ~/.termtactoe/config.toml and holds the
// engine knobs, the arena series settings and display options. Loading
// falls back to defaults when the file is missing.
//
// Config directory permissions: 0755 (rwxr-xr-x)
// Config file permissions: 0644 (rw-r--r--)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Engine kind names accepted in the configuration and on the command line.
const (
	EngineNegamax = "negamax"
	EngineMinimax = "minimax"
	EngineMCTS    = "mcts"
)

// Config is the full configuration file layout.
type Config struct {
	Arena   ArenaConfig   `toml:"arena"`
	Negamax NegamaxConfig `toml:"negamax"`
	Minimax MinimaxConfig `toml:"minimax"`
	MCTS    MCTSConfig    `toml:"mcts"`
	Display DisplayConfig `toml:"display"`
}

// ArenaConfig controls the series the arena plays.
type ArenaConfig struct {
	// Rounds is the number of games per series.
	Rounds int `toml:"rounds"`
	// Alternate swaps the starting side between rounds.
	Alternate bool `toml:"alternate"`
	// StartingSide is "x" or "o".
	StartingSide string `toml:"starting_side"`
}

// NegamaxConfig controls the fixed-depth alpha-beta engine.
type NegamaxConfig struct {
	// Depth is the search depth in plies, 1..15.
	Depth int `toml:"depth"`
	// Reorder is "shuffle" or "score".
	Reorder string `toml:"reorder"`
}

// MinimaxConfig controls the recorded minimax engine.
type MinimaxConfig struct {
	// Recursion is "max_depth" or "max_vertices".
	Recursion string `toml:"recursion"`
	// MaxDepth is the ply bound used by the max_depth policy, 1..15.
	MaxDepth int `toml:"max_depth"`
	// MaxVertices is the recorded-tree bound used by the max_vertices
	// policy, 1..1000000.
	MaxVertices int `toml:"max_vertices"`
	// Chooser is "first" or "epsilon_bucket".
	Chooser string `toml:"chooser"`
	// BucketWidth is the epsilon bucket width, >= 0.
	BucketWidth float64 `toml:"bucket_width"`
}

// MCTSConfig controls the Monte-Carlo engine.
type MCTSConfig struct {
	// Simulations is the playout budget per move, 1..1000000.
	Simulations int `toml:"simulations"`
	// Exploration is the UCB1 exploration constant, >= 0.
	Exploration float64 `toml:"exploration"`
}

// DisplayConfig holds display options for the TUI.
type DisplayConfig struct {
	// UseColors determines whether the TUI colors its output.
	UseColors bool `toml:"use_colors"`
}

// DefaultConfig returns the documented default for every knob.
func DefaultConfig() Config {
	return Config{
		Arena: ArenaConfig{
			Rounds:       10,
			Alternate:    true,
			StartingSide: "x",
		},
		Negamax: NegamaxConfig{
			Depth:   7,
			Reorder: "shuffle",
		},
		Minimax: MinimaxConfig{
			Recursion:   "max_vertices",
			MaxDepth:    7,
			MaxVertices: 280000,
			Chooser:     "first",
			BucketWidth: 1.00,
		},
		MCTS: MCTSConfig{
			Simulations: 100,
			Exploration: 0.40,
		},
		Display: DisplayConfig{
			UseColors: true,
		},
	}
}

// Validate checks every knob against its documented range.
func (c Config) Validate() error {
	if c.Arena.Rounds < 1 {
		return fmt.Errorf("arena rounds must be positive, got %d", c.Arena.Rounds)
	}
	if s := c.Arena.StartingSide; s != "x" && s != "o" {
		return fmt.Errorf("starting side must be %q or %q, got %q", "x", "o", s)
	}
	if c.Negamax.Depth < 1 || c.Negamax.Depth > 15 {
		return fmt.Errorf("negamax depth must be 1-15, got %d", c.Negamax.Depth)
	}
	if r := c.Negamax.Reorder; r != "shuffle" && r != "score" {
		return fmt.Errorf("negamax reorder must be %q or %q, got %q", "shuffle", "score", r)
	}
	if r := c.Minimax.Recursion; r != "max_depth" && r != "max_vertices" {
		return fmt.Errorf("minimax recursion must be %q or %q, got %q", "max_depth", "max_vertices", r)
	}
	if c.Minimax.MaxDepth < 1 || c.Minimax.MaxDepth > 15 {
		return fmt.Errorf("minimax max depth must be 1-15, got %d", c.Minimax.MaxDepth)
	}
	if c.Minimax.MaxVertices < 1 || c.Minimax.MaxVertices > 1000000 {
		return fmt.Errorf("minimax max vertices must be 1-1000000, got %d", c.Minimax.MaxVertices)
	}
	if ch := c.Minimax.Chooser; ch != "first" && ch != "epsilon_bucket" {
		return fmt.Errorf("minimax chooser must be %q or %q, got %q", "first", "epsilon_bucket", ch)
	}
	if c.Minimax.BucketWidth < 0 {
		return fmt.Errorf("bucket width must be >= 0, got %v", c.Minimax.BucketWidth)
	}
	if c.MCTS.Simulations < 1 || c.MCTS.Simulations > 1000000 {
		return fmt.Errorf("mcts simulations must be 1-1000000, got %d", c.MCTS.Simulations)
	}
	if c.MCTS.Exploration < 0 {
		return fmt.Errorf("mcts exploration must be >= 0, got %v", c.MCTS.Exploration)
	}
	return nil
}

// Load reads the configuration at path, falling back to DefaultConfig when
// the file does not exist. Unknown keys are rejected so typos surface.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return DefaultConfig(), fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// LoadDefault reads the configuration from the default path.
func LoadDefault() (Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return Load(path)
}

// Save writes the configuration to path, creating the directory if needed.
func Save(cfg Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
