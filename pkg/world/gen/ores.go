package gen

import "math/rand/v2"

// OreGenerator places ore veins in rock using seeded per-chunk RNG.
type OreGenerator struct {
	seed    int64
	palette *Palette
}

// NewOreGenerator creates an OreGenerator from a seed.
func NewOreGenerator(seed int64, palette *Palette) *OreGenerator {
	return &OreGenerator{seed: seed, palette: palette}
}

type oreConfig struct {
	minY     int
	maxY     int
	veinSize int // max blocks per vein
	attempts int // veins per chunk
}

// Rarer metals sit deeper and in fewer, smaller veins.
var oreConfigs = map[string]oreConfig{
	"iron":    {0, 64, 8, 12},
	"tin":     {0, 72, 8, 8},
	"zinc":    {0, 56, 6, 6},
	"bismuth": {0, 48, 6, 4},
	"lead":    {0, 48, 6, 4},
	"silver":  {0, 32, 5, 2},
	"gold":    {0, 24, 5, 1},
}

// Place scatters ore veins within the chunk.
func (og *OreGenerator) Place(c *ChunkData, chunkX, chunkZ int, heights *[ChunkSize][ChunkSize]int) {
	rng := NewChunkRand(og.seed, chunkX, chunkZ, 500)

	for _, ore := range og.palette.Ores {
		cfg, ok := oreConfigs[ore.Metal]
		if !ok {
			continue
		}
		for range cfg.attempts {
			x := rng.IntN(ChunkSize)
			y := cfg.minY + rng.IntN(cfg.maxY-cfg.minY)
			z := rng.IntN(ChunkSize)
			if y >= heights[x][z] {
				continue
			}

			og.placeVein(c, x, y, z, ore.Block, cfg.veinSize, heights, rng)
		}
	}
}

func (og *OreGenerator) placeVein(c *ChunkData, x, y, z int, block uint16, size int, heights *[ChunkSize][ChunkSize]int, rng *rand.Rand) {
	for range size {
		if x >= 0 && x < ChunkSize && z >= 0 && z < ChunkSize && y >= 1 && y < heights[x][z] {
			// Only replace rock.
			if c.GetBlock(x, y, z) == og.palette.Rock {
				c.SetBlock(x, y, z, block)
			}
		}

		// Random walk.
		switch rng.IntN(6) {
		case 0:
			x++
		case 1:
			x--
		case 2:
			y++
		case 3:
			y--
		case 4:
			z++
		case 5:
			z--
		}
	}
}
