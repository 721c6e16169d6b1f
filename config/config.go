// Package config loads the TOML runtime configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"waymark/entity"
)

// Reachability holds throttling parameters for the reachability filter
type Reachability struct {
	// Enabled turns the filter on at startup
	Enabled bool `toml:"enabled"`
	// MinTicks is the minimum number of rebuilds between Dijkstra floods
	MinTicks int `toml:"min_ticks"`
	// DirtyDistance is how many cells the player must move to force a flood
	DirtyDistance int `toml:"dirty_distance"`
}

// Config is the runtime configuration
type Config struct {
	// TickMillis is the update tick interval
	TickMillis int `toml:"tick_millis"`
	// RescanTicks is the periodic rescan interval in ticks, 0 disables
	RescanTicks int `toml:"rescan_ticks"`
	// QuantizeStep is the position quantization for stable entity IDs
	QuantizeStep float64 `toml:"quantize_step"`
	// Audio enables announcement earcons
	Audio bool `toml:"audio"`
	// Categories is the category rotation order; "none" means all
	Categories []string `toml:"categories"`
	// Filters maps filter names to their startup enabled state
	Filters map[string]bool `toml:"filters"`
	// KeymapPath points at a sparse TOML keymap override, empty for defaults
	KeymapPath string `toml:"keymap"`
	// PhrasesPath points at a JSON phrase dictionary, empty for identity
	PhrasesPath string `toml:"phrases"`

	Reachability Reachability `toml:"reachability"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		TickMillis:   50,
		RescanTicks:  20,
		QuantizeStep: entity.DefaultQuantizeStep,
		Audio:        true,
		Categories:   []string{"none", "item", "chest", "npc", "enemy", "door", "stairs", "gateway"},
		Filters:      map[string]bool{},
		Reachability: Reachability{
			MinTicks:      4,
			DirtyDistance: 2,
		},
	}
}

// Load reads TOML configuration over the defaults
// A missing file yields the defaults without error
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
		return cfg, fmt.Errorf("config read: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the loop cannot run with
func (c Config) Validate() error {
	if c.TickMillis <= 0 {
		return fmt.Errorf("config: tick_millis must be positive, got %d", c.TickMillis)
	}
	if c.RescanTicks < 0 {
		return fmt.Errorf("config: rescan_ticks must not be negative, got %d", c.RescanTicks)
	}
	if c.QuantizeStep <= 0 {
		return fmt.Errorf("config: quantize_step must be positive, got %g", c.QuantizeStep)
	}
	for _, name := range c.Categories {
		if _, ok := entity.CategoryByName(name); !ok {
			return fmt.Errorf("config: unknown category: %q", name)
		}
	}
	return nil
}

// TickInterval returns the tick interval as a duration
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// CategoryOrder resolves the configured rotation order
func (c Config) CategoryOrder() []entity.Category {
	out := make([]entity.Category, 0, len(c.Categories))
	for _, name := range c.Categories {
		if cat, ok := entity.CategoryByName(name); ok {
			out = append(out, cat)
		}
	}
	return out
}
