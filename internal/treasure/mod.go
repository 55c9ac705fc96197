// Package treasure hides chests full of ingots at the foot of generated trees
// and lets operators spawn one on demand.
package treasure

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/OCharnyshevich/treasure-chest/internal/server"
	"github.com/OCharnyshevich/treasure-chest/internal/server/config"
	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
	"github.com/OCharnyshevich/treasure-chest/pkg/gamedata"
	"github.com/OCharnyshevich/treasure-chest/pkg/shufflebag"
	"github.com/OCharnyshevich/treasure-chest/pkg/world/gen"
)

// chestSalt separates the chest stream from other per-column features.
const chestSalt = 0x7ea5c4e5

// Mod is the treasure chest server mod.
type Mod struct {
	cfg    config.Treasure
	api    *server.API
	log    *slog.Logger
	chest  gamedata.Block
	logs   map[uint16]struct{}
	loot   *LootTable
	ledger *Ledger // nil when disabled
}

// New creates the mod; nothing is resolved until StartServerSide.
func New(cfg config.Treasure) *Mod {
	return &Mod{cfg: cfg}
}

func (m *Mod) Name() string {
	return "treasurechest"
}

// StartServerSide resolves the chest and tree log blocks, registers the
// /treasure command and hooks the vegetation pass.
func (m *Mod) StartServerSide(api *server.API) error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}
	m.api = api
	m.log = api.Log

	chest, ok := api.Blocks.ByCode(m.cfg.ChestBlock)
	if !ok {
		return fmt.Errorf("treasure: unknown chest block %q", m.cfg.ChestBlock)
	}
	if !chest.HasContainer() {
		return fmt.Errorf("treasure: block %q has no container", m.cfg.ChestBlock)
	}
	m.chest = chest

	woods, err := api.Assets.WorldProperty(m.cfg.WoodProperty)
	if err != nil {
		return fmt.Errorf("treasure: %w", err)
	}
	m.logs = make(map[uint16]struct{}, len(woods.Variants))
	for _, code := range woods.Codes() {
		b, ok := api.Blocks.ByCode(gamedata.LogCode(code))
		if !ok {
			m.log.Warn("wood variant has no log block", "wood", code)
			continue
		}
		m.logs[b.ID] = struct{}{}
	}

	if m.loot, err = NewLootTable(m.cfg, api.Items); err != nil {
		return fmt.Errorf("treasure: %w", err)
	}

	if m.cfg.Ledger != "" {
		if m.ledger, err = OpenLedger(m.cfg.Ledger); err != nil {
			return fmt.Errorf("treasure: %w", err)
		}
	}

	if err := api.Commands.Register(m.command()); err != nil {
		_ = m.Stop()
		return err
	}
	api.World.OnChunkColumnGeneration(gen.PassVegetation, m.onVegetation)

	m.log.Info("treasure chests enabled",
		"chance", m.cfg.Chance,
		"chest", m.chest.Code,
		"tree_types", len(m.logs),
		"ledger", m.cfg.Ledger != "",
	)
	return nil
}

// Stop closes the ledger.
func (m *Mod) Stop() error {
	if m.ledger == nil {
		return nil
	}
	err := m.ledger.Close()
	m.ledger = nil
	return err
}

func (m *Mod) onVegetation(col *world.Column) error {
	pos := col.Pos()
	rng := gen.NewChunkRand(m.api.Seed, pos.X, pos.Z, chestSalt)
	if rng.Float64() >= m.cfg.Chance {
		columnsRolled.WithLabelValues("skipped").Inc()
		return nil
	}

	spot, ok := m.findChestSpot(col)
	if !ok {
		columnsRolled.WithLabelValues("no_tree").Inc()
		return nil
	}
	columnsRolled.WithLabelValues("placed").Inc()
	_, err := m.PlaceChest(col, spot, rng, SourceWorldGen)
	return err
}

// PlaceChest sets the chest block at pos through acc and fills it with a
// fresh loot roll. It returns the stacks that went into the chest.
func (m *Mod) PlaceChest(acc world.BlockAccessor, pos world.BlockPos, rng shufflebag.Source, source string) ([]world.ItemStack, error) {
	if err := acc.SetBlock(m.chest.ID, pos); err != nil {
		return nil, fmt.Errorf("place chest: %w", err)
	}
	c := acc.GetBlockEntity(pos)
	if c == nil {
		return nil, fmt.Errorf("place chest: no container at %v", pos)
	}

	stacks := m.loot.Roll(rng)
	if overflow := Fill(c, stacks); len(overflow) > 0 {
		m.log.Warn("chest full, dropping items", "pos", pos, "dropped", len(overflow))
		stacks = stacks[:len(stacks)-len(overflow)]
	}

	chestsPlaced.WithLabelValues(source).Inc()
	for _, st := range stacks {
		itemsGenerated.WithLabelValues(st.Item).Add(float64(st.StackSize))
	}
	m.log.Debug("treasure chest placed", "pos", pos, "source", source, "stacks", len(stacks))

	if m.ledger != nil {
		if err := m.ledger.Record(context.Background(), pos, source, stacks); err != nil {
			m.log.Error("record placement", "pos", pos, "error", err)
		}
	}
	return stacks, nil
}

func newCommandRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
