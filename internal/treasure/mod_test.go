package treasure

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/treasure-chest/internal/assets"
	"github.com/OCharnyshevich/treasure-chest/internal/server"
	"github.com/OCharnyshevich/treasure-chest/internal/server/command"
	"github.com/OCharnyshevich/treasure-chest/internal/server/command/commandtest"
	"github.com/OCharnyshevich/treasure-chest/internal/server/config"
	"github.com/OCharnyshevich/treasure-chest/internal/server/player"
	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
	"github.com/OCharnyshevich/treasure-chest/pkg/gamedata"
	"github.com/OCharnyshevich/treasure-chest/pkg/world/gen"
)

// grove is a flat world with one oak trunk in column (0, 0) at local x=5,
// z=5, y=5..8. Rock blocks the trunk's south side.
type grove struct {
	flat      *gen.FlatGenerator
	log, rock uint16
}

func (g grove) Generate(cx, cz int) *gen.ChunkData {
	c := g.flat.Generate(cx, cz)
	if cx == 0 && cz == 0 {
		for y := 5; y <= 8; y++ {
			c.SetBlock(5, y, 5, g.log)
		}
		c.SetBlock(5, 5, 6, g.rock)
	}
	return c
}

func (g grove) HeightAt(x, z int) int {
	return g.flat.HeightAt(x, z)
}

func newAPI(t *testing.T, seed int64) *server.API {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := assets.New("", log)
	require.NoError(t, err)
	woods, err := store.WorldProperty(assets.WoodProperty)
	require.NoError(t, err)

	blocks, err := gamedata.DefaultBlocks(woods.Codes())
	require.NoError(t, err)
	palette, err := gen.NewPalette(blocks, woods.Codes())
	require.NoError(t, err)
	g := grove{
		flat: gen.NewFlatGenerator(palette),
		log:  blocks.MustID(gamedata.LogCode("oak")),
		rock: blocks.MustID(gamedata.BlockRock),
	}

	return &server.API{
		Seed:     seed,
		World:    world.NewWorld(blocks, g, log),
		Blocks:   blocks,
		Items:    gamedata.DefaultItems(),
		Commands: command.NewRegistry(),
		Players:  player.NewManager(),
		Assets:   store,
		Log:      log,
	}
}

func startMod(t *testing.T, api *server.API, mutate func(*config.Treasure)) *Mod {
	t.Helper()
	cfg := config.DefaultTreasure()
	cfg.Chance = 1
	if mutate != nil {
		mutate(&cfg)
	}
	m := New(cfg)
	require.NoError(t, m.StartServerSide(api))
	t.Cleanup(func() { _ = m.Stop() })
	return m
}

func TestWorldGenPlacesChestBesideTrunk(t *testing.T) {
	api := newAPI(t, 99)
	startMod(t, api, nil)

	// South is blocked by rock, so the chest goes east of the trunk base.
	spot := world.BlockPos{X: 6, Y: 5, Z: 5}
	assert.Equal(t, "chest-south", api.World.GetBlock(spot).Code)

	c := api.World.GetBlockEntity(spot)
	require.NotNil(t, c)
	n := totalItems(c.Stacks())
	assert.GreaterOrEqual(t, n, 3)
	assert.Less(t, n, 10)

	// Columns without trees stay untouched.
	api.World.GetOrGenerateChunk(1, 0)
	count := 0
	api.World.ForEachContainer(func(world.BlockPos, *world.Container) { count++ })
	assert.Equal(t, 1, count)
}

func TestWorldGenIsDeterministic(t *testing.T) {
	spot := world.BlockPos{X: 6, Y: 5, Z: 5}
	contents := func(seed int64) []world.ItemStack {
		api := newAPI(t, seed)
		startMod(t, api, nil)
		api.World.GetOrGenerateChunk(0, 0)
		c := api.World.GetBlockEntity(spot)
		require.NotNil(t, c)
		return c.Stacks()
	}
	assert.Equal(t, contents(5), contents(5))
}

func TestWorldGenChanceZero(t *testing.T) {
	api := newAPI(t, 99)
	startMod(t, api, func(c *config.Treasure) { c.Chance = 0 })

	api.World.GetOrGenerateChunk(0, 0)
	assert.Nil(t, api.World.GetBlockEntity(world.BlockPos{X: 6, Y: 5, Z: 5}))
}

func TestStartServerSideErrors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*config.Treasure)
	}{
		{name: "unknown chest", mutate: func(c *config.Treasure) { c.ChestBlock = "chest-up" }},
		{name: "chest without container", mutate: func(c *config.Treasure) { c.ChestBlock = gamedata.BlockRock }},
		{name: "unknown item", mutate: func(c *config.Treasure) { c.Loot[0].Item = "ingot-mithril" }},
		{name: "missing wood property", mutate: func(c *config.Treasure) { c.WoodProperty = "worldproperties/block/nope.json" }},
		{name: "invalid config", mutate: func(c *config.Treasure) { c.MaxItems = 1 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultTreasure()
			tc.mutate(&cfg)
			require.Error(t, New(cfg).StartServerSide(newAPI(t, 1)))
		})
	}
}

func TestTreasureCommand(t *testing.T) {
	api := newAPI(t, 3)
	ledger := filepath.Join(t.TempDir(), "treasure.db")
	startMod(t, api, func(c *config.Treasure) { c.Ledger = ledger })

	op := player.NewPlayer("op", player.Position{X: 0.5, Y: 5, Z: 0.5}, player.PrivilegeControlServer)
	rec := commandtest.NewRecorder(op)

	require.NoError(t, api.Commands.Dispatch(rec, "/treasure"))
	spot := world.BlockPos{X: 0, Y: 5, Z: 2}
	assert.Equal(t, "chest-south", api.World.GetBlock(spot).Code)
	require.NotNil(t, api.World.GetBlockEntity(spot))
	assert.False(t, api.World.GetBlockEntity(spot).IsEmpty())
	assert.Equal(t, "success", rec.Last().Kind)
	assert.Contains(t, rec.Last().Text, "(0, 5, 2)")

	rec.Reset()
	require.NoError(t, api.Commands.Dispatch(rec, "/treasure recent 10"))
	msgs := rec.Messages()
	require.Len(t, msgs, 2, "worldgen chest and command chest")
	assert.Contains(t, msgs[0].Text, SourceCommand)
	assert.Contains(t, msgs[1].Text, SourceWorldGen)

	require.ErrorIs(t, api.Commands.Dispatch(rec, "/treasure recent 0"), command.ErrUsage)
	require.ErrorIs(t, api.Commands.Dispatch(rec, "/treasure dig"), command.ErrUsage)

	guest := commandtest.NewRecorder(player.NewPlayer("guest", player.Position{}))
	require.ErrorIs(t, api.Commands.Dispatch(guest, "/treasure"), command.ErrNoPrivilege)
}

func TestRecentWithoutLedger(t *testing.T) {
	api := newAPI(t, 3)
	startMod(t, api, nil)

	rec := commandtest.NewRecorder(player.NewPlayer("op", player.Position{}, player.PrivilegeControlServer))
	require.Error(t, api.Commands.Dispatch(rec, "/treasure recent"))
	assert.Equal(t, "error", rec.Last().Kind)
}
