package player

import (
	"math"
	"sync"

	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
)

// Privilege codes checked by commands.
const (
	PrivilegeChat          = "chat"
	PrivilegeTeleport      = "tp"
	PrivilegeControlServer = "controlserver"
)

// AllPrivileges lists every privilege the server knows.
var AllPrivileges = []string{PrivilegeChat, PrivilegeTeleport, PrivilegeControlServer}

// Position holds a player's world position and orientation.
// Yaw 0 faces +Z and grows clockwise seen from above, so 90 faces -X.
type Position struct {
	X, Y, Z    float64
	Yaw, Pitch float32
}

// BlockPos returns the block the position is inside.
func (p Position) BlockPos() world.BlockPos {
	return world.BlockPos{
		X: int(math.Floor(p.X)),
		Y: int(math.Floor(p.Y)),
		Z: int(math.Floor(p.Z)),
	}
}

// Player is a named actor that issues commands and has a position.
type Player struct {
	mu         sync.RWMutex
	Name       string
	privileges map[string]struct{}
	pos        Position
}

// NewPlayer creates a player standing at pos with the given privileges.
func NewPlayer(name string, pos Position, privileges ...string) *Player {
	p := &Player{
		Name:       name,
		privileges: make(map[string]struct{}, len(privileges)),
		pos:        pos,
	}
	for _, priv := range privileges {
		p.privileges[priv] = struct{}{}
	}
	return p
}

// HasPrivilege reports whether the player holds priv. An empty privilege is
// held by everyone.
func (p *Player) HasPrivilege(priv string) bool {
	if priv == "" {
		return true
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.privileges[priv]
	return ok
}

// Grant adds a privilege.
func (p *Player) Grant(priv string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.privileges[priv] = struct{}{}
}

// GetPosition returns a copy of the player's current position.
func (p *Player) GetPosition() Position {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pos
}

// SetPosition moves the player and sets its orientation.
func (p *Player) SetPosition(pos Position) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = pos
}

// UpdateLook updates only the player's look direction.
func (p *Player) UpdateLook(yaw, pitch float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos.Yaw = yaw
	p.pos.Pitch = pitch
}

// AheadBlockPos returns the block distance blocks in front of the player at
// foot level, following yaw only.
func (p *Player) AheadBlockPos(distance float64) world.BlockPos {
	pos := p.GetPosition()
	rad := float64(pos.Yaw) * math.Pi / 180
	ahead := Position{
		X: pos.X - math.Sin(rad)*distance,
		Y: pos.Y,
		Z: pos.Z + math.Cos(rad)*distance,
	}
	return ahead.BlockPos()
}

// ChunkX returns the chunk X coordinate for the player's current position.
func (p *Player) ChunkX() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return int(math.Floor(p.pos.X)) >> 4
}

// ChunkZ returns the chunk Z coordinate for the player's current position.
func (p *Player) ChunkZ() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return int(math.Floor(p.pos.Z)) >> 4
}
