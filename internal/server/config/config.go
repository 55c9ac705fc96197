package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration.
type Config struct {
	Seed             int64         `yaml:"seed"`
	GeneratorType    string        `yaml:"generator"`    // "default" or "flat"
	WorldRadius      int           `yaml:"world_radius"` // chunks pre-generated around spawn
	DataDir          string        `yaml:"data_dir"`
	AssetsDir        string        `yaml:"assets_dir"` // empty = embedded assets only
	MetricsAddr      string        `yaml:"metrics_addr"`
	AutosaveInterval time.Duration `yaml:"autosave_interval"` // 0 disables autosave

	Treasure Treasure `yaml:"treasure"`
}

// Treasure configures the treasure chest mod.
type Treasure struct {
	// Chance is the probability that a generated chunk column gets a chest.
	Chance float64 `yaml:"chance"`
	// MinItems and MaxItems bound the number of loot draws per chest;
	// the count is drawn from [MinItems, MaxItems).
	MinItems     int         `yaml:"min_items"`
	MaxItems     int         `yaml:"max_items"`
	ChestBlock   string      `yaml:"chest_block"`
	WoodProperty string      `yaml:"wood_property"`
	Loot         []LootEntry `yaml:"loot"`
	Ledger       string      `yaml:"ledger"` // sqlite path; empty disables the ledger
}

// LootEntry weights one item in the loot table.
type LootEntry struct {
	Item   string `yaml:"item"`
	Weight int    `yaml:"weight"`
}

// DefaultLoot is the stock ingot table: iron twice as likely as the rest.
func DefaultLoot() []LootEntry {
	return []LootEntry{
		{Item: "ingot-iron", Weight: 10},
		{Item: "ingot-bismuth", Weight: 5},
		{Item: "ingot-silver", Weight: 5},
		{Item: "ingot-zinc", Weight: 5},
		{Item: "ingot-titanium", Weight: 5},
		{Item: "ingot-platinum", Weight: 5},
		{Item: "ingot-chromium", Weight: 5},
		{Item: "ingot-tin", Weight: 5},
		{Item: "ingot-lead", Weight: 5},
		{Item: "ingot-gold", Weight: 5},
	}
}

// DefaultTreasure returns the stock treasure settings.
func DefaultTreasure() Treasure {
	return Treasure{
		Chance:       0.05,
		MinItems:     3,
		MaxItems:     10,
		ChestBlock:   "chest-south",
		WoodProperty: "worldproperties/block/wood.json",
		Loot:         DefaultLoot(),
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		GeneratorType:    "default",
		WorldRadius:      4,
		DataDir:          "data",
		AutosaveInterval: 5 * time.Minute,
		Treasure:         DefaultTreasure(),
	}
}

// Load reads a YAML config file on top of the defaults. Unknown fields are
// rejected so typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func decode(raw []byte) (*Config, error) {
	cfg := DefaultConfig()
	d := yaml.NewDecoder(bytes.NewReader(raw))
	d.KnownFields(true)
	if err := d.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["radius"] {
		cfg.WorldRadius = fromFile.WorldRadius
	}
	if !explicitFlags["data"] {
		cfg.DataDir = fromFile.DataDir
	}
	if !explicitFlags["assets"] {
		cfg.AssetsDir = fromFile.AssetsDir
	}
	if !explicitFlags["metrics-addr"] {
		cfg.MetricsAddr = fromFile.MetricsAddr
	}
	cfg.AutosaveInterval = fromFile.AutosaveInterval
	cfg.Treasure = fromFile.Treasure
}

// Validate checks the config for values the server cannot run with.
func (c *Config) Validate() error {
	switch c.GeneratorType {
	case "default", "flat":
	default:
		return fmt.Errorf("config: unknown generator %q", c.GeneratorType)
	}
	if c.WorldRadius < 0 {
		return fmt.Errorf("config: world_radius must be >= 0, got %d", c.WorldRadius)
	}
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	if c.AutosaveInterval < 0 {
		return fmt.Errorf("config: autosave_interval must be >= 0, got %s", c.AutosaveInterval)
	}
	return c.Treasure.Validate()
}

// Validate checks the treasure settings.
func (t Treasure) Validate() error {
	if t.Chance < 0 || t.Chance > 1 {
		return fmt.Errorf("treasure: chance must be in [0, 1], got %g", t.Chance)
	}
	if t.MinItems < 1 {
		return fmt.Errorf("treasure: min_items must be >= 1, got %d", t.MinItems)
	}
	if t.MaxItems <= t.MinItems {
		return fmt.Errorf("treasure: max_items (%d) must be > min_items (%d)", t.MaxItems, t.MinItems)
	}
	if t.ChestBlock == "" {
		return fmt.Errorf("treasure: chest_block is required")
	}
	if t.WoodProperty == "" {
		return fmt.Errorf("treasure: wood_property is required")
	}
	if len(t.Loot) == 0 {
		return fmt.Errorf("treasure: loot table is empty")
	}
	for i, e := range t.Loot {
		if e.Item == "" {
			return fmt.Errorf("treasure: loot[%d] must have an item", i)
		}
		if e.Weight < 1 {
			return fmt.Errorf("treasure: loot[%d] (%s) weight must be >= 1, got %d", i, e.Item, e.Weight)
		}
	}
	return nil
}
