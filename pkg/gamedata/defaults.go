package gamedata

import "fmt"

// Built-in block codes.
const (
	BlockAir       = "air"
	BlockBedrock   = "rock-bedrock"
	BlockRock      = "rock-granite"
	BlockSoil      = "soil-medium-none"
	BlockGrass     = "soil-medium-normal"
	BlockSand      = "sand-granite"
	BlockWater     = "water-still-7"
	BlockTallGrass = "tallgrass-medium"
)

// ChestSlots is the inventory size of every chest variant.
const ChestSlots = 16

// ChestFacings lists the chest block variants, one per horizontal facing.
var ChestFacings = []string{"north", "east", "south", "west"}

// Metals lists the ingot metals registered by DefaultItems.
var Metals = []string{
	"iron", "bismuth", "silver", "zinc", "titanium",
	"platinum", "chromium", "tin", "lead", "gold", "copper",
}

// OreMetals lists the metals that occur as ore in granite.
var OreMetals = []string{"iron", "tin", "zinc", "bismuth", "lead", "silver", "gold"}

// LogCode returns the upright log block code for a wood variant.
func LogCode(wood string) string {
	return "log-" + wood + "-ud"
}

// LeavesCode returns the leaves block code for a wood variant.
func LeavesCode(wood string) string {
	return "leaves-" + wood
}

// ChestCode returns the chest block code for a facing.
func ChestCode(facing string) string {
	return "chest-" + facing
}

// OreCode returns the granite-hosted ore block code for a metal.
func OreCode(metal string) string {
	return "ore-" + metal + "-granite"
}

// IngotCode returns the ingot item code for a metal.
func IngotCode(metal string) string {
	return "ingot-" + metal
}

// DefaultBlocks builds the block registry: terrain, ores, a log and leaves
// block per wood variant, and the chest variants.
func DefaultBlocks(woods []string) (*BlockRegistry, error) {
	r := NewBlockRegistry()

	blocks := []Block{
		{Code: BlockBedrock, Solid: true},
		{Code: BlockRock, Solid: true},
		{Code: BlockSoil, Solid: true},
		{Code: BlockGrass, Solid: true},
		{Code: BlockSand, Solid: true},
		{Code: BlockWater},
		{Code: BlockTallGrass},
	}
	for _, m := range OreMetals {
		blocks = append(blocks, Block{Code: OreCode(m), Solid: true})
	}
	for _, w := range woods {
		blocks = append(blocks,
			Block{Code: LogCode(w), Solid: true},
			Block{Code: LeavesCode(w), Solid: true},
		)
	}
	for _, f := range ChestFacings {
		blocks = append(blocks, Block{Code: ChestCode(f), Solid: true, EntityClass: "chest", Slots: ChestSlots})
	}

	for _, b := range blocks {
		if _, err := r.Register(b); err != nil {
			return nil, fmt.Errorf("default blocks: %w", err)
		}
	}
	return r, nil
}

// DefaultItems builds the item registry with one ingot per metal.
func DefaultItems() *ItemRegistry {
	r := NewItemRegistry()
	for _, m := range Metals {
		// Codes are unique by construction.
		_, _ = r.Register(Item{Code: IngotCode(m), MaxStackSize: 64})
	}
	return r
}
