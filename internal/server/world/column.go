package world

import (
	"fmt"

	"github.com/OCharnyshevich/treasure-chest/pkg/gamedata"
	"github.com/OCharnyshevich/treasure-chest/pkg/world/gen"
)

// Column is the BlockAccessor handed to generation handlers. It reads and
// writes the freshly generated column before the world publishes it, and
// refuses positions outside that column.
type Column struct {
	pos      gen.ChunkPos
	data     *gen.ChunkData
	registry *gamedata.BlockRegistry
	entities map[BlockPos]*Container
}

func newColumn(pos gen.ChunkPos, data *gen.ChunkData, registry *gamedata.BlockRegistry) *Column {
	return &Column{
		pos:      pos,
		data:     data,
		registry: registry,
		entities: make(map[BlockPos]*Container),
	}
}

// Pos returns the chunk coordinates of the column.
func (c *Column) Pos() gen.ChunkPos {
	return c.pos
}

// Origin returns the world position of the column's local (0, 0, 0).
func (c *Column) Origin() BlockPos {
	return BlockPos{X: c.pos.X * gen.ChunkSize, Z: c.pos.Z * gen.ChunkSize}
}

// Contains reports whether pos lies inside the column and the world height.
func (c *Column) Contains(pos BlockPos) bool {
	return pos.Chunk() == c.pos && pos.Y >= 0 && pos.Y < gen.WorldHeight
}

// GetBlock returns the block at pos; air outside the column.
func (c *Column) GetBlock(pos BlockPos) gamedata.Block {
	if !c.Contains(pos) {
		return c.registry.Air()
	}
	return c.registry.Lookup(c.data.GetBlock(pos.X&0xF, pos.Y, pos.Z&0xF))
}

// SetBlock writes a block into the column, creating or discarding the
// container of the previous block as needed.
func (c *Column) SetBlock(id uint16, pos BlockPos) error {
	if !c.Contains(pos) {
		return fmt.Errorf("set block at %v in column %v: %w", pos, c.pos, ErrOutOfColumn)
	}
	b, ok := c.registry.ByID(id)
	if !ok {
		return fmt.Errorf("set block %d at %v: %w", id, pos, ErrUnknownBlock)
	}
	c.data.SetBlock(pos.X&0xF, pos.Y, pos.Z&0xF, id)
	if b.HasContainer() {
		c.entities[pos] = NewContainer(b.EntityClass, b.Slots)
	} else {
		delete(c.entities, pos)
	}
	return nil
}

// GetBlockEntity returns the container placed at pos during generation.
func (c *Column) GetBlockEntity(pos BlockPos) *Container {
	return c.entities[pos]
}

// HeightAt returns the Y of the highest non-air block at local x, z, or -1.
func (c *Column) HeightAt(x, z int) int {
	return c.data.HeightAt(x, z)
}
