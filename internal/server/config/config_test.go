package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	testCases := []struct {
		name     string
		yaml     string
		check    func(t *testing.T, c *Config)
		expError bool
	}{
		{
			name: "empty keeps defaults",
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultConfig(), c)
			},
		},
		{
			name: "overrides",
			yaml: `
seed: 1337
generator: flat
autosave_interval: 30s
treasure:
  chance: 0.5
  max_items: 6
  loot:
    - item: ingot-gold
      weight: 3
`,
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, int64(1337), c.Seed)
				assert.Equal(t, "flat", c.GeneratorType)
				assert.Equal(t, 30*time.Second, c.AutosaveInterval)
				assert.Equal(t, 0.5, c.Treasure.Chance)
				assert.Equal(t, 3, c.Treasure.MinItems)
				assert.Equal(t, 6, c.Treasure.MaxItems)
				assert.Equal(t, []LootEntry{{Item: "ingot-gold", Weight: 3}}, c.Treasure.Loot)
			},
		},
		{
			name:     "unknown field",
			yaml:     "sead: 3\n",
			expError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := decode([]byte(tc.yaml))
			require.Equal(t, tc.expError, err != nil, "err = %v", err)
			if tc.check != nil {
				tc.check(t, c)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world_radius: 2\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.WorldRadius)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.GeneratorType = "flat"

	fromFile := DefaultConfig()
	fromFile.Seed = 1
	fromFile.GeneratorType = "default"
	fromFile.WorldRadius = 7
	fromFile.Treasure.Chance = 1

	Merge(cfg, fromFile, map[string]bool{"seed": true})

	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, "default", cfg.GeneratorType)
	assert.Equal(t, 7, cfg.WorldRadius)
	assert.Equal(t, 1.0, cfg.Treasure.Chance)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(*Config) {}, ok: true},
		{name: "unknown generator", mutate: func(c *Config) { c.GeneratorType = "amplified" }},
		{name: "negative radius", mutate: func(c *Config) { c.WorldRadius = -1 }},
		{name: "no data dir", mutate: func(c *Config) { c.DataDir = "" }},
		{name: "chance above one", mutate: func(c *Config) { c.Treasure.Chance = 1.5 }},
		{name: "zero min items", mutate: func(c *Config) { c.Treasure.MinItems = 0 }},
		{name: "max not above min", mutate: func(c *Config) { c.Treasure.MaxItems = c.Treasure.MinItems }},
		{name: "no chest block", mutate: func(c *Config) { c.Treasure.ChestBlock = "" }},
		{name: "empty loot", mutate: func(c *Config) { c.Treasure.Loot = nil }},
		{name: "zero weight", mutate: func(c *Config) { c.Treasure.Loot[0].Weight = 0 }},
		{name: "blank item", mutate: func(c *Config) { c.Treasure.Loot[1].Item = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mutate(c)
			err := c.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
