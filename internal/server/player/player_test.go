package player

import (
	"testing"

	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
)

func TestAheadBlockPos(t *testing.T) {
	tests := []struct {
		name string
		yaw  float32
		want world.BlockPos
	}{
		{"south", 0, world.BlockPos{X: 0, Y: 64, Z: 2}},
		{"west", 90, world.BlockPos{X: -2, Y: 64, Z: 0}},
		{"north", 180, world.BlockPos{X: 0, Y: 64, Z: -2}},
		{"east", -90, world.BlockPos{X: 2, Y: 64, Z: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("op", Position{X: 0.5, Y: 64, Z: 0.5, Yaw: tt.yaw})
			if got := p.AheadBlockPos(2); got != tt.want {
				t.Errorf("AheadBlockPos(2) at yaw %v = %v, want %v", tt.yaw, got, tt.want)
			}
		})
	}
}

func TestHasPrivilege(t *testing.T) {
	p := NewPlayer("alice", Position{}, PrivilegeChat)

	if !p.HasPrivilege(PrivilegeChat) {
		t.Error("expected chat privilege")
	}
	if p.HasPrivilege(PrivilegeControlServer) {
		t.Error("unexpected controlserver privilege")
	}
	if !p.HasPrivilege("") {
		t.Error("empty privilege should always be held")
	}

	p.Grant(PrivilegeControlServer)
	if !p.HasPrivilege(PrivilegeControlServer) {
		t.Error("Grant did not add the privilege")
	}
}

func TestPositionAndChunk(t *testing.T) {
	p := NewPlayer("bob", Position{X: 0.5, Y: 5, Z: 0.5})
	p.SetPosition(Position{X: -0.5, Y: 70, Z: 33.2, Yaw: 45})

	if got := p.GetPosition().BlockPos(); got != (world.BlockPos{X: -1, Y: 70, Z: 33}) {
		t.Errorf("BlockPos = %v", got)
	}
	if p.ChunkX() != -1 || p.ChunkZ() != 2 {
		t.Errorf("chunk = (%d, %d), want (-1, 2)", p.ChunkX(), p.ChunkZ())
	}

	p.UpdateLook(180, 10)
	pos := p.GetPosition()
	if pos.Yaw != 180 || pos.Pitch != 10 || pos.Y != 70 {
		t.Errorf("UpdateLook changed position: %+v", pos)
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	alice := NewPlayer("Alice", Position{})
	bob := NewPlayer("bob", Position{})
	m.Add(bob)
	m.Add(alice)

	if m.PlayerCount() != 2 {
		t.Fatalf("PlayerCount = %d, want 2", m.PlayerCount())
	}
	if m.GetByName("ALICE") != alice {
		t.Error("lookup should be case-insensitive")
	}

	var names []string
	m.ForEach(func(p *Player) { names = append(names, p.Name) })
	if len(names) != 2 || names[0] != "Alice" || names[1] != "bob" {
		t.Errorf("ForEach order = %v", names)
	}

	m.Remove(alice)
	if m.GetByName("alice") != nil || m.PlayerCount() != 1 {
		t.Error("Remove did not drop the player")
	}
}
