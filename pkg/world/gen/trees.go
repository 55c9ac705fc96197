package gen

import "math/rand/v2"

// conifers grow as narrow cones; every other wood grows a round crown.
var conifers = map[string]bool{
	"pine":    true,
	"larch":   true,
	"redwood": true,
}

// TreeGenerator places trees and ground cover per chunk.
type TreeGenerator struct {
	seed    int64
	palette *Palette
	forest  *Noise
}

// NewTreeGenerator creates a TreeGenerator from a seed.
func NewTreeGenerator(seed int64, palette *Palette) *TreeGenerator {
	return &TreeGenerator{
		seed:    seed,
		palette: palette,
		forest:  NewNoise(seed + 600),
	}
}

// Decorate places trees and tall grass in the chunk.
func (tg *TreeGenerator) Decorate(c *ChunkData, chunkX, chunkZ int, heights *[ChunkSize][ChunkSize]int) {
	if len(tg.palette.Woods) == 0 {
		return
	}
	rng := NewChunkRand(tg.seed, chunkX, chunkZ, 600)

	// Each chunk is dominated by one species; forests are denser.
	wood := tg.palette.Woods[rng.IntN(len(tg.palette.Woods))]
	cx, cz := float64(chunkX*ChunkSize+8), float64(chunkZ*ChunkSize+8)
	density := tg.forest.Octaves(cx/256, cz/256, 3, 0.5)
	attempts := 1 + int(max(density, 0)*16)

	for range attempts {
		x := 2 + rng.IntN(ChunkSize-4)
		z := 2 + rng.IntN(ChunkSize-4)
		y := heights[x][z]

		if y <= seaLevel+1 || y >= WorldHeight-16 {
			continue
		}
		if c.GetBlock(x, y, z) != tg.palette.Grass || c.GetBlock(x, y+1, z) != 0 {
			continue
		}

		if conifers[wood.Name] {
			tg.placeConifer(c, x, y+1, z, wood, rng)
		} else {
			tg.placeBroadleaf(c, x, y+1, z, wood, rng)
		}
	}

	tg.placeGrass(c, heights, rng)
}

// placeBroadleaf grows a trunk with a two-tier rounded crown.
func (tg *TreeGenerator) placeBroadleaf(c *ChunkData, x, baseY, z int, wood Wood, rng *rand.Rand) {
	trunk := 4 + rng.IntN(3) // 4-6

	for y := baseY; y < baseY+trunk; y++ {
		c.SetBlock(x, y, z, wood.Log)
	}

	crownBase := baseY + trunk - 2
	for dy := range 4 {
		radius := 2
		if dy >= 2 {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				// Trim wide-layer corners at random for a rounder look.
				if radius == 2 && abs(dx) == 2 && abs(dz) == 2 && rng.IntN(2) == 0 {
					continue
				}
				tg.leaf(c, x+dx, crownBase+dy, z+dz, wood)
			}
		}
	}
}

// placeConifer grows a tall trunk with a crown that narrows towards the top.
func (tg *TreeGenerator) placeConifer(c *ChunkData, x, baseY, z int, wood Wood, rng *rand.Rand) {
	trunk := 6 + rng.IntN(4) // 6-9

	for y := baseY; y < baseY+trunk; y++ {
		c.SetBlock(x, y, z, wood.Log)
	}

	for dy := 2; dy <= trunk; dy++ {
		radius := min((trunk-dy)/2, 2)
		if radius >= 2 && dy%2 == 0 {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				tg.leaf(c, x+dx, baseY+dy, z+dz, wood)
			}
		}
	}
	tg.leaf(c, x, baseY+trunk, z, wood)
}

// leaf fills an air block with leaves; logs and terrain are never replaced.
func (tg *TreeGenerator) leaf(c *ChunkData, x, y, z int, wood Wood) {
	if InBounds(x, y, z) && c.GetBlock(x, y, z) == 0 {
		c.SetBlock(x, y, z, wood.Leaves)
	}
}

func (tg *TreeGenerator) placeGrass(c *ChunkData, heights *[ChunkSize][ChunkSize]int, rng *rand.Rand) {
	for range 20 {
		x, z := rng.IntN(ChunkSize), rng.IntN(ChunkSize)
		y := heights[x][z]
		if y >= WorldHeight-1 || c.GetBlock(x, y, z) != tg.palette.Grass {
			continue
		}
		if c.GetBlock(x, y+1, z) == 0 && rng.IntN(3) == 0 {
			c.SetBlock(x, y+1, z, tg.palette.TallGrass)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
