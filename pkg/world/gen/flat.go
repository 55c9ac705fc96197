package gen

// FlatHeight is the Y of the grass layer in flat worlds.
const FlatHeight = 4

// FlatGenerator generates a superflat world:
// bedrock at y=0, rock y=1..2, soil y=3, grass y=4.
type FlatGenerator struct {
	palette *Palette
}

// NewFlatGenerator creates a FlatGenerator.
func NewFlatGenerator(palette *Palette) *FlatGenerator {
	return &FlatGenerator{palette: palette}
}

func (g *FlatGenerator) Generate(_, _ int) *ChunkData {
	c := &ChunkData{}
	p := g.palette

	for x := range ChunkSize {
		for z := range ChunkSize {
			c.SetBlock(x, 0, z, p.Bedrock)
			c.SetBlock(x, 1, z, p.Rock)
			c.SetBlock(x, 2, z, p.Rock)
			c.SetBlock(x, 3, z, p.Soil)
			c.SetBlock(x, FlatHeight, z, p.Grass)
		}
	}
	return c
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return FlatHeight
}
