package gamedata

import "fmt"

// Block describes a placeable block type.
type Block struct {
	ID          uint16
	Code        string
	Solid       bool
	EntityClass string // non-empty if the block carries a block entity
	Slots       int    // inventory size for container entities
}

// HasContainer reports whether placing the block creates a container entity.
func (b Block) HasContainer() bool {
	return b.EntityClass != "" && b.Slots > 0
}

// Item describes an inventory item type.
type Item struct {
	ID           int
	Code         string
	MaxStackSize int
}

// BlockRegistry maps block IDs and codes to block types. ID 0 is always air.
type BlockRegistry struct {
	byID   []Block
	byCode map[string]uint16
}

// NewBlockRegistry returns a registry containing only air.
func NewBlockRegistry() *BlockRegistry {
	r := &BlockRegistry{byCode: make(map[string]uint16)}
	r.byID = append(r.byID, Block{ID: 0, Code: BlockAir})
	r.byCode[BlockAir] = 0
	return r
}

// Register adds a block type, assigning the next free ID.
func (r *BlockRegistry) Register(b Block) (Block, error) {
	if b.Code == "" {
		return Block{}, fmt.Errorf("register block: empty code")
	}
	if _, ok := r.byCode[b.Code]; ok {
		return Block{}, fmt.Errorf("register block %q: duplicate code", b.Code)
	}
	if len(r.byID) > 0xFFFF {
		return Block{}, fmt.Errorf("register block %q: id space exhausted", b.Code)
	}
	b.ID = uint16(len(r.byID))
	r.byID = append(r.byID, b)
	r.byCode[b.Code] = b.ID
	return b, nil
}

// ByID returns the block with the given ID.
func (r *BlockRegistry) ByID(id uint16) (Block, bool) {
	if int(id) >= len(r.byID) {
		return Block{}, false
	}
	return r.byID[id], true
}

// Lookup returns the block with the given ID, or air for unknown IDs.
func (r *BlockRegistry) Lookup(id uint16) Block {
	if b, ok := r.ByID(id); ok {
		return b
	}
	return r.byID[0]
}

// Air returns the air block.
func (r *BlockRegistry) Air() Block {
	return r.byID[0]
}

// ByCode returns the block with the given code.
func (r *BlockRegistry) ByCode(code string) (Block, bool) {
	id, ok := r.byCode[code]
	if !ok {
		return Block{}, false
	}
	return r.byID[id], true
}

// MustID returns the ID for code and panics if it is unknown. Intended for
// wiring built-in blocks that DefaultBlocks always registers.
func (r *BlockRegistry) MustID(code string) uint16 {
	id, ok := r.byCode[code]
	if !ok {
		panic(fmt.Sprintf("gamedata: unknown block %q", code))
	}
	return id
}

// All returns every registered block in ID order.
func (r *BlockRegistry) All() []Block {
	out := make([]Block, len(r.byID))
	copy(out, r.byID)
	return out
}

// ItemRegistry maps item IDs and codes to item types.
type ItemRegistry struct {
	byID   []Item
	byCode map[string]int
}

// NewItemRegistry returns an empty item registry.
func NewItemRegistry() *ItemRegistry {
	return &ItemRegistry{byCode: make(map[string]int)}
}

// Register adds an item type, assigning the next free ID.
func (r *ItemRegistry) Register(it Item) (Item, error) {
	if it.Code == "" {
		return Item{}, fmt.Errorf("register item: empty code")
	}
	if _, ok := r.byCode[it.Code]; ok {
		return Item{}, fmt.Errorf("register item %q: duplicate code", it.Code)
	}
	if it.MaxStackSize <= 0 {
		it.MaxStackSize = 1
	}
	it.ID = len(r.byID) + 1
	r.byID = append(r.byID, it)
	r.byCode[it.Code] = it.ID
	return it, nil
}

// ByID returns the item with the given ID.
func (r *ItemRegistry) ByID(id int) (Item, bool) {
	if id < 1 || id > len(r.byID) {
		return Item{}, false
	}
	return r.byID[id-1], true
}

// ByCode returns the item with the given code.
func (r *ItemRegistry) ByCode(code string) (Item, bool) {
	id, ok := r.byCode[code]
	if !ok {
		return Item{}, false
	}
	return r.byID[id-1], true
}

// All returns every registered item in ID order.
func (r *ItemRegistry) All() []Item {
	out := make([]Item, len(r.byID))
	copy(out, r.byID)
	return out
}
