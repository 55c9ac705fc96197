package treasure

import (
	"strings"

	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
	"github.com/OCharnyshevich/treasure-chest/pkg/gamedata"
	"github.com/OCharnyshevich/treasure-chest/pkg/world/gen"
)

// Neighbour order tried around a trunk: south, east, north, west.
var sides = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

func (m *Mod) isLog(b gamedata.Block) bool {
	_, ok := m.logs[b.ID]
	return ok
}

func replaceable(b gamedata.Block) bool {
	return b.Code == gamedata.BlockAir || strings.HasPrefix(b.Code, "tallgrass-")
}

// findChestSpot scans the column for tree trunks, x-major, and returns the
// first free spot beside a trunk base that stands on solid, non-log ground.
func (m *Mod) findChestSpot(col *world.Column) (world.BlockPos, bool) {
	origin := col.Origin()
	for x := range gen.ChunkSize {
		for z := range gen.ChunkSize {
			top := col.HeightAt(x, z)
			for y := top; y > 0; y-- {
				pos := origin.Offset(x, y, z)
				if !m.isLog(col.GetBlock(pos)) {
					continue
				}
				for y > 1 && m.isLog(col.GetBlock(pos.Down())) {
					pos = pos.Down()
					y--
				}
				if spot, ok := m.besideTrunk(col, pos); ok {
					return spot, true
				}
				// One trunk per x,z.
				break
			}
		}
	}
	return world.BlockPos{}, false
}

func (m *Mod) besideTrunk(col *world.Column, base world.BlockPos) (world.BlockPos, bool) {
	for _, d := range sides {
		spot := base.Offset(d[0], 0, d[1])
		if !col.Contains(spot) || !replaceable(col.GetBlock(spot)) {
			continue
		}
		ground := col.GetBlock(spot.Down())
		if ground.Solid && !m.isLog(ground) {
			return spot, true
		}
	}
	return world.BlockPos{}, false
}
