package treasure

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
)

func TestLedgerRecordAndRecent(t *testing.T) {
	l, err := OpenLedger(filepath.Join(t.TempDir(), "sub", "ledger.db"))
	require.NoError(t, err)
	defer l.Close()

	clock := time.UnixMilli(1_700_000_000_000)
	l.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	ctx := context.Background()
	iron := []world.ItemStack{{Item: "ingot-iron", StackSize: 3}}
	gold := []world.ItemStack{{Item: "ingot-gold", StackSize: 1}}

	require.NoError(t, l.Record(ctx, world.BlockPos{X: 1, Y: 2, Z: 3}, SourceWorldGen, iron))
	require.NoError(t, l.Record(ctx, world.BlockPos{X: 4, Y: 5, Z: 6}, SourceCommand, gold))
	// Same chest regenerated: replaces, not duplicates.
	require.NoError(t, l.Record(ctx, world.BlockPos{X: 1, Y: 2, Z: 3}, SourceWorldGen, iron))

	all, err := l.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, world.BlockPos{X: 1, Y: 2, Z: 3}, all[0].Pos)
	assert.Equal(t, iron, all[0].Items)
	assert.Equal(t, SourceCommand, all[1].Source)
	assert.Equal(t, gold, all[1].Items)
	assert.True(t, all[0].PlacedAt.After(all[1].PlacedAt))

	one, err := l.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestOpenLedgerEmptyPath(t *testing.T) {
	_, err := OpenLedger("")
	require.Error(t, err)
}
