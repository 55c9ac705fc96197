package player

import (
	"sort"
	"strings"
	"sync"
)

// Manager tracks online players by case-insensitive name.
type Manager struct {
	mu      sync.RWMutex
	players map[string]*Player
}

// NewManager creates an empty player manager.
func NewManager() *Manager {
	return &Manager{players: make(map[string]*Player)}
}

// Add registers a player, replacing any player with the same name.
func (m *Manager) Add(p *Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[strings.ToLower(p.Name)] = p
}

// Remove unregisters a player.
func (m *Manager) Remove(p *Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(p.Name)
	if m.players[key] == p {
		delete(m.players, key)
	}
}

// GetByName looks up a player by name, case-insensitively.
func (m *Manager) GetByName(name string) *Player {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.players[strings.ToLower(name)]
}

// PlayerCount returns the number of online players.
func (m *Manager) PlayerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.players)
}

// ForEach calls fn for every player in name order.
func (m *Manager) ForEach(fn func(*Player)) {
	m.mu.RLock()
	players := make([]*Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p)
	}
	m.mu.RUnlock()

	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	for _, p := range players {
		fn(p)
	}
}
