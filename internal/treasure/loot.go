package treasure

import (
	"fmt"

	"github.com/OCharnyshevich/treasure-chest/internal/server/config"
	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
	"github.com/OCharnyshevich/treasure-chest/pkg/gamedata"
	"github.com/OCharnyshevich/treasure-chest/pkg/shufflebag"
)

// LootTable rolls chest contents from weighted item codes.
type LootTable struct {
	entries  []config.LootEntry
	maxStack map[string]int
	total    int
	min, max int
}

// NewLootTable checks every loot item against the registry.
func NewLootTable(cfg config.Treasure, items *gamedata.ItemRegistry) (*LootTable, error) {
	t := &LootTable{
		entries:  cfg.Loot,
		maxStack: make(map[string]int, len(cfg.Loot)),
		min:      cfg.MinItems,
		max:      cfg.MaxItems,
	}
	for _, e := range cfg.Loot {
		it, ok := items.ByCode(e.Item)
		if !ok {
			return nil, fmt.Errorf("loot table: unknown item %q", e.Item)
		}
		t.maxStack[e.Item] = it.MaxStackSize
		t.total += e.Weight
	}
	return t, nil
}

// Roll draws between min (inclusive) and max (exclusive) items from a fresh
// bag and folds repeats into stacks, in order of first draw.
func (t *LootTable) Roll(rng shufflebag.Source) []world.ItemStack {
	bag := shufflebag.New[string](t.total, rng)
	for _, e := range t.entries {
		bag.Add(e.Item, e.Weight)
	}

	count := t.min + rng.IntN(t.max-t.min)
	var stacks []world.ItemStack
	index := make(map[string]int)
	for range count {
		code := bag.MustNext()
		i, ok := index[code]
		if !ok {
			index[code] = len(stacks)
			stacks = append(stacks, world.ItemStack{Item: code, StackSize: 1})
			continue
		}
		if stacks[i].StackSize < t.maxStack[code] {
			stacks[i].StackSize++
		}
	}
	return stacks
}

// Fill puts stacks into the empty slots of c in order and returns what did
// not fit.
func Fill(c *world.Container, stacks []world.ItemStack) []world.ItemStack {
	slot := 0
	for i, st := range stacks {
		for slot < c.Len() && !c.Slot(slot).IsEmpty() {
			slot++
		}
		if slot >= c.Len() {
			return stacks[i:]
		}
		// Slot is in range and empty.
		_ = c.SetSlot(slot, st)
		slot++
	}
	return nil
}
