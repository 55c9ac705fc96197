package gen

const seaLevel = 62

// DefaultGenerator produces rolling terrain with lakes, beaches and forests.
type DefaultGenerator struct {
	palette *Palette
	terrain *Noise
	detail  *Noise
	ores    *OreGenerator
	trees   *TreeGenerator
}

// NewDefaultGenerator creates a DefaultGenerator from a seed.
func NewDefaultGenerator(seed int64, palette *Palette) *DefaultGenerator {
	return &DefaultGenerator{
		palette: palette,
		terrain: NewNoise(seed),
		detail:  NewNoise(seed + 1),
		ores:    NewOreGenerator(seed, palette),
		trees:   NewTreeGenerator(seed, palette),
	}
}

func (g *DefaultGenerator) Generate(chunkX, chunkZ int) *ChunkData {
	c := &ChunkData{}

	var heights [ChunkSize][ChunkSize]int
	for x := range ChunkSize {
		for z := range ChunkSize {
			h := g.HeightAt(chunkX*ChunkSize+x, chunkZ*ChunkSize+z)
			heights[x][z] = h
			g.fillColumn(c, x, z, h)
		}
	}

	g.ores.Place(c, chunkX, chunkZ, &heights)
	g.trees.Decorate(c, chunkX, chunkZ, &heights)
	return c
}

// HeightAt returns the Y of the top solid block at world block coordinates.
func (g *DefaultGenerator) HeightAt(blockX, blockZ int) int {
	base := g.terrain.Octaves(float64(blockX)/128, float64(blockZ)/128, 6, 0.5)
	detail := g.detail.Octaves(float64(blockX)/32, float64(blockZ)/32, 3, 0.5)

	h := int(float64(seaLevel) + 4 + base*18 + detail*4)
	return min(max(h, 5), 250)
}

// fillColumn lays bedrock, rock, a soil or sand cap and water up to sea level.
func (g *DefaultGenerator) fillColumn(c *ChunkData, x, z, height int) {
	p := g.palette
	c.SetBlock(x, 0, z, p.Bedrock)

	for y := 1; y <= height-4; y++ {
		c.SetBlock(x, y, z, p.Rock)
	}

	top, below := p.Grass, p.Soil
	if height <= seaLevel+1 {
		top, below = p.Sand, p.Sand
	}
	for y := max(height-3, 1); y < height; y++ {
		c.SetBlock(x, y, z, below)
	}
	c.SetBlock(x, height, z, top)

	for y := height + 1; y <= seaLevel; y++ {
		c.SetBlock(x, y, z, p.Water)
	}
}
