package gen

// Chunk column dimensions.
const (
	ChunkSize   = 16
	WorldHeight = 256
	sectionSize = ChunkSize * ChunkSize * ChunkSize
)

// ChunkPos identifies a chunk column by its X and Z coordinates.
type ChunkPos struct{ X, Z int }

// Section holds block IDs for a 16×16×16 vertical slice of a chunk.
// Index = y*256 + z*16 + x.
type Section struct {
	Blocks [sectionSize]uint16
}

// ChunkData holds the generated blocks for one chunk column.
type ChunkData struct {
	Sections [WorldHeight / ChunkSize]*Section // nil = all air
}

// Generator produces chunk data deterministically from a seed.
type Generator interface {
	Generate(chunkX, chunkZ int) *ChunkData
	HeightAt(blockX, blockZ int) int
}

// Pass orders the stages a freshly generated column goes through before it
// becomes visible. Handlers registered on later passes see the results of
// earlier ones.
type Pass int

const (
	PassTerrain Pass = iota
	PassVegetation
	passCount
)

// Passes returns all passes in execution order.
func Passes() []Pass {
	out := make([]Pass, 0, passCount)
	for p := PassTerrain; p < passCount; p++ {
		out = append(out, p)
	}
	return out
}

func (p Pass) String() string {
	switch p {
	case PassTerrain:
		return "terrain"
	case PassVegetation:
		return "vegetation"
	default:
		return "unknown"
	}
}

// InBounds reports whether local coordinates fall inside a chunk column.
func InBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && z >= 0 && z < ChunkSize && y >= 0 && y < WorldHeight
}

// SetBlock sets a block at local coordinates. Out-of-bounds writes are ignored.
func (c *ChunkData) SetBlock(x, y, z int, id uint16) {
	if !InBounds(x, y, z) {
		return
	}
	sec := y >> 4
	if c.Sections[sec] == nil {
		if id == 0 {
			return
		}
		c.Sections[sec] = &Section{}
	}
	c.Sections[sec].Blocks[(y&0xF)*256+z*16+x] = id
}

// GetBlock returns the block at local coordinates; air when out of bounds.
func (c *ChunkData) GetBlock(x, y, z int) uint16 {
	if !InBounds(x, y, z) {
		return 0
	}
	sec := c.Sections[y>>4]
	if sec == nil {
		return 0
	}
	return sec.Blocks[(y&0xF)*256+z*16+x]
}

// HeightAt returns the Y of the highest non-air block in a local column, or -1.
func (c *ChunkData) HeightAt(x, z int) int {
	for y := WorldHeight - 1; y >= 0; y-- {
		if c.GetBlock(x, y, z) != 0 {
			return y
		}
	}
	return -1
}
