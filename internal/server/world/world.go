package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/OCharnyshevich/treasure-chest/pkg/gamedata"
	"github.com/OCharnyshevich/treasure-chest/pkg/world/gen"
)

var (
	// ErrUnknownBlock is returned when setting a block ID the registry does not know.
	ErrUnknownBlock = errors.New("unknown block")
	// ErrOutOfWorld is returned for positions above or below the world.
	ErrOutOfWorld = errors.New("position outside the world")
	// ErrOutOfColumn is returned when a column accessor is asked to write
	// outside its own column.
	ErrOutOfColumn = errors.New("position outside the column")
)

// BlockPos represents a block position in the world.
type BlockPos struct {
	X, Y, Z int
}

// Chunk returns the chunk column containing the position.
func (p BlockPos) Chunk() gen.ChunkPos {
	return gen.ChunkPos{X: p.X >> 4, Z: p.Z >> 4}
}

// Offset returns the position moved by dx, dy, dz.
func (p BlockPos) Offset(dx, dy, dz int) BlockPos {
	return BlockPos{p.X + dx, p.Y + dy, p.Z + dz}
}

// Down returns the position directly below.
func (p BlockPos) Down() BlockPos {
	return p.Offset(0, -1, 0)
}

func (p BlockPos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// BlockAccessor reads and writes blocks and their block entities.
type BlockAccessor interface {
	GetBlock(pos BlockPos) gamedata.Block
	SetBlock(id uint16, pos BlockPos) error
	GetBlockEntity(pos BlockPos) *Container
}

// ColumnHandler runs on every newly generated column during one pass.
type ColumnHandler func(col *Column) error

// State is the persistent part of a world: block overrides and containers.
type State struct {
	Overrides  map[BlockPos]uint16
	Containers map[BlockPos]*Container
}

// World tracks block state with a generator for base terrain and overrides for
// later modifications. Columns are generated lazily and published only after
// every registered handler has run on them.
type World struct {
	mu        sync.RWMutex
	registry  *gamedata.BlockRegistry
	generator gen.Generator
	log       *slog.Logger

	chunks    map[gen.ChunkPos]*gen.ChunkData
	pending   map[gen.ChunkPos]chan struct{}
	overrides map[BlockPos]uint16
	entities  map[BlockPos]*Container
	handlers  [][]ColumnHandler // indexed by gen.Pass
}

// NewWorld creates a new World with the given registry and generator.
func NewWorld(registry *gamedata.BlockRegistry, generator gen.Generator, log *slog.Logger) *World {
	return &World{
		registry:  registry,
		generator: generator,
		log:       log,
		chunks:    make(map[gen.ChunkPos]*gen.ChunkData),
		pending:   make(map[gen.ChunkPos]chan struct{}),
		overrides: make(map[BlockPos]uint16),
		entities:  make(map[BlockPos]*Container),
		handlers:  make([][]ColumnHandler, len(gen.Passes())),
	}
}

// Registry returns the block registry the world resolves IDs against.
func (w *World) Registry() *gamedata.BlockRegistry {
	return w.registry
}

// OnChunkColumnGeneration registers a handler that runs once for every column
// generated from now on, after the generator and after handlers of earlier
// passes.
func (w *World) OnChunkColumnGeneration(pass gen.Pass, h ColumnHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[pass] = append(w.handlers[pass], h)
}

// GetOrGenerateChunk returns the ChunkData for the given chunk coordinates,
// generating and caching it if needed. Concurrent callers asking for the same
// column wait for a single generation.
func (w *World) GetOrGenerateChunk(cx, cz int) *gen.ChunkData {
	pos := gen.ChunkPos{X: cx, Z: cz}

	w.mu.RLock()
	if c, ok := w.chunks[pos]; ok {
		w.mu.RUnlock()
		return c
	}
	w.mu.RUnlock()

	w.mu.Lock()
	if c, ok := w.chunks[pos]; ok {
		w.mu.Unlock()
		return c
	}
	if wait, ok := w.pending[pos]; ok {
		w.mu.Unlock()
		<-wait
		w.mu.RLock()
		defer w.mu.RUnlock()
		return w.chunks[pos]
	}
	done := make(chan struct{})
	w.pending[pos] = done
	handlers := make([][]ColumnHandler, len(w.handlers))
	for i, hs := range w.handlers {
		handlers[i] = append([]ColumnHandler(nil), hs...)
	}
	w.mu.Unlock()

	col := newColumn(pos, w.generator.Generate(cx, cz), w.registry)
	for _, pass := range gen.Passes() {
		for _, h := range handlers[pass] {
			if err := h(col); err != nil {
				handlerErrors.WithLabelValues(pass.String()).Inc()
				w.log.Error("column handler", "pass", pass, "chunk_x", cx, "chunk_z", cz, "error", err)
			}
		}
	}

	w.mu.Lock()
	w.chunks[pos] = col.data
	for p, c := range col.entities {
		// Persisted state wins over regenerated containers.
		if _, ok := w.entities[p]; ok {
			continue
		}
		if _, ok := w.overrides[p]; ok {
			continue
		}
		w.entities[p] = c
	}
	delete(w.pending, pos)
	w.mu.Unlock()
	close(done)

	chunksGenerated.Inc()
	return col.data
}

// GetBlock returns the block at the given position.
// Checks overrides first, then falls back to the generated chunk.
func (w *World) GetBlock(pos BlockPos) gamedata.Block {
	return w.registry.Lookup(w.blockID(pos))
}

func (w *World) blockID(pos BlockPos) uint16 {
	if pos.Y < 0 || pos.Y >= gen.WorldHeight {
		return 0
	}

	w.mu.RLock()
	id, ok := w.overrides[pos]
	w.mu.RUnlock()
	if ok {
		return id
	}

	// Generated chunks are never mutated once published.
	c := w.GetOrGenerateChunk(pos.X>>4, pos.Z>>4)
	return c.GetBlock(pos.X&0xF, pos.Y, pos.Z&0xF)
}

// SetBlock stores a block override. Placing a block with a container creates
// a fresh, empty container; replacing it drops the old one.
func (w *World) SetBlock(id uint16, pos BlockPos) error {
	if pos.Y < 0 || pos.Y >= gen.WorldHeight {
		return fmt.Errorf("set block at %v: %w", pos, ErrOutOfWorld)
	}
	b, ok := w.registry.ByID(id)
	if !ok {
		return fmt.Errorf("set block %d at %v: %w", id, pos, ErrUnknownBlock)
	}

	// Ensure the chunk is generated so we know the base state.
	c := w.GetOrGenerateChunk(pos.X>>4, pos.Z>>4)
	base := c.GetBlock(pos.X&0xF, pos.Y, pos.Z&0xF)

	w.mu.Lock()
	defer w.mu.Unlock()

	if id == base {
		delete(w.overrides, pos)
	} else {
		w.overrides[pos] = id
	}
	if b.HasContainer() {
		w.entities[pos] = NewContainer(b.EntityClass, b.Slots)
	} else {
		delete(w.entities, pos)
	}
	return nil
}

// GetBlockEntity returns the container at pos, or nil.
func (w *World) GetBlockEntity(pos BlockPos) *Container {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.entities[pos]
}

// ForEachOverride calls fn for every block override under a read lock.
func (w *World) ForEachOverride(fn func(pos BlockPos, id uint16)) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for pos, id := range w.overrides {
		fn(pos, id)
	}
}

// ForEachContainer calls fn for every container under a read lock.
func (w *World) ForEachContainer(fn func(pos BlockPos, c *Container)) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for pos, c := range w.entities {
		fn(pos, c)
	}
}

// LoadState merges persisted overrides and containers into the world. Loaded
// containers take precedence over ones created by generation.
func (w *World) LoadState(s State) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for pos, id := range s.Overrides {
		w.overrides[pos] = id
	}
	for pos, c := range s.Containers {
		w.entities[pos] = c
	}
}

// PreGenerateRadius generates all chunks within radius of spawn (0, 0) and
// returns how many columns were visited. It stops early when ctx is done.
func (w *World) PreGenerateRadius(ctx context.Context, radius int) (int, error) {
	count := 0
	for cx := -radius; cx <= radius; cx++ {
		for cz := -radius; cz <= radius; cz++ {
			if err := ctx.Err(); err != nil {
				return count, err
			}
			w.GetOrGenerateChunk(cx, cz)
			count++
		}
	}
	return count, nil
}

// SpawnHeight returns the terrain height at spawn (0, 0) + 1 for a player to stand on.
func (w *World) SpawnHeight() int {
	return w.generator.HeightAt(0, 0) + 1
}
