package storage

import (
	"github.com/OCharnyshevich/treasure-chest/internal/server/player"
	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
)

// worldFormatVersion is bumped whenever WorldData changes incompatibly.
const worldFormatVersion = 1

// PlayerData is the serializable representation of a player's state.
type PlayerData struct {
	Name     string       `json:"name"`
	Position PositionData `json:"position"`
}

// PositionData holds a player's world position and orientation.
type PositionData struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

// WorldData is the saved world: everything that differs from what the
// generator produces for the same seed.
type WorldData struct {
	Version    int             `json:"version"`
	Seed       int64           `json:"seed"`
	Overrides  []BlockOverride `json:"overrides"`
	Containers []ContainerData `json:"containers"`
}

// BlockOverride is a single block override. Blocks are stored by code so
// saves survive registry reordering.
type BlockOverride struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Z     int    `json:"z"`
	Block string `json:"block"`
}

func (o BlockOverride) pos() world.BlockPos {
	return world.BlockPos{X: o.X, Y: o.Y, Z: o.Z}
}

// ContainerData is a block entity inventory.
type ContainerData struct {
	X      int        `json:"x"`
	Y      int        `json:"y"`
	Z      int        `json:"z"`
	Class  string     `json:"class"`
	Size   int        `json:"size"`
	Stacks []SlotData `json:"stacks,omitempty"` // non-empty slots only
}

func (cd ContainerData) pos() world.BlockPos {
	return world.BlockPos{X: cd.X, Y: cd.Y, Z: cd.Z}
}

// SlotData is one occupied container slot.
type SlotData struct {
	Slot      int    `json:"slot"`
	Item      string `json:"item"`
	StackSize int    `json:"stack_size"`
}

// PlayerDataFromPlayer extracts serializable data from a runtime Player.
func PlayerDataFromPlayer(p *player.Player) *PlayerData {
	pos := p.GetPosition()
	return &PlayerData{
		Name: p.Name,
		Position: PositionData{
			X:     pos.X,
			Y:     pos.Y,
			Z:     pos.Z,
			Yaw:   pos.Yaw,
			Pitch: pos.Pitch,
		},
	}
}

// Apply restores the saved position onto p.
func (pd *PlayerData) Apply(p *player.Player) {
	p.SetPosition(player.Position{
		X:     pd.Position.X,
		Y:     pd.Position.Y,
		Z:     pd.Position.Z,
		Yaw:   pd.Position.Yaw,
		Pitch: pd.Position.Pitch,
	})
}
