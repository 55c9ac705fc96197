package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/OCharnyshevich/treasure-chest/internal/assets"
	"github.com/OCharnyshevich/treasure-chest/internal/server/command"
	"github.com/OCharnyshevich/treasure-chest/internal/server/config"
	"github.com/OCharnyshevich/treasure-chest/internal/server/player"
	"github.com/OCharnyshevich/treasure-chest/internal/server/storage"
	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
	"github.com/OCharnyshevich/treasure-chest/pkg/gamedata"
	"github.com/OCharnyshevich/treasure-chest/pkg/world/gen"
)

// Server owns the world, the registries and the command pipeline, and runs
// mods against them.
type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	assets   *assets.Store
	blocks   *gamedata.BlockRegistry
	items    *gamedata.ItemRegistry
	world    *world.World
	players  *player.Manager
	commands *command.Registry
	storage  *storage.Storage

	mods  []Mod
	ready chan struct{}

	saveMu sync.Mutex
}

// New creates a Server with the given config, logger and asset store.
func New(cfg *config.Config, log *slog.Logger, store *assets.Store) (*Server, error) {
	woods, err := store.WorldProperty(assets.WoodProperty)
	if err != nil {
		return nil, fmt.Errorf("load wood variants: %w", err)
	}
	blocks, err := gamedata.DefaultBlocks(woods.Codes())
	if err != nil {
		return nil, err
	}
	palette, err := gen.NewPalette(blocks, woods.Codes())
	if err != nil {
		return nil, err
	}

	var generator gen.Generator
	switch cfg.GeneratorType {
	case "flat":
		generator = gen.NewFlatGenerator(palette)
	default:
		generator = gen.NewDefaultGenerator(cfg.Seed, palette)
	}

	st, err := storage.New(cfg.DataDir, log)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		log:      log,
		assets:   store,
		blocks:   blocks,
		items:    gamedata.DefaultItems(),
		world:    world.NewWorld(blocks, generator, log.With("component", "world")),
		players:  player.NewManager(),
		commands: command.NewRegistry(),
		storage:  st,
		ready:    make(chan struct{}),
	}
	if err := s.registerBuiltins(); err != nil {
		return nil, err
	}
	return s, nil
}

// AddMod queues a mod to be started by Start.
func (s *Server) AddMod(m Mod) {
	s.mods = append(s.mods, m)
}

// World returns the server's world.
func (s *Server) World() *world.World {
	return s.world
}

// Commands returns the command registry.
func (s *Server) Commands() *command.Registry {
	return s.commands
}

// Ready is closed once mods are started and the spawn area is generated.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

func (s *Server) api(m Mod) *API {
	return &API{
		Seed:     s.cfg.Seed,
		World:    s.world,
		Blocks:   s.blocks,
		Items:    s.items,
		Commands: s.commands,
		Players:  s.players,
		Assets:   s.assets,
		Log:      s.log.With("mod", m.Name()),
	}
}

// Start starts the mods, loads the saved world, pre-generates the spawn area
// and then blocks, autosaving, until ctx is cancelled. The world is saved on
// the way out.
func (s *Server) Start(ctx context.Context) error {
	for _, m := range s.mods {
		if err := m.StartServerSide(s.api(m)); err != nil {
			return fmt.Errorf("start mod %s: %w", m.Name(), err)
		}
		s.log.Info("mod started", "mod", m.Name())
	}
	defer s.stopMods()

	if err := s.storage.LoadWorld(s.world, s.cfg.Seed); err != nil {
		return err
	}

	started := time.Now()
	count, err := s.world.PreGenerateRadius(ctx, s.cfg.WorldRadius)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	s.log.Info("server started",
		"generator", s.cfg.GeneratorType,
		"seed", s.cfg.Seed,
		"chunks", count,
		"took", time.Since(started).Round(time.Millisecond),
		"spawn_y", s.world.SpawnHeight(),
	)
	close(s.ready)

	var tick <-chan time.Time
	if s.cfg.AutosaveInterval > 0 {
		t := time.NewTicker(s.cfg.AutosaveInterval)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			s.log.Info("server shutting down")
			return s.SaveAll()
		case <-tick:
			if err := s.SaveAll(); err != nil {
				s.log.Error("autosave", "error", err)
			}
		}
	}
}

func (s *Server) stopMods() {
	for i := len(s.mods) - 1; i >= 0; i-- {
		st, ok := s.mods[i].(Stopper)
		if !ok {
			continue
		}
		if err := st.Stop(); err != nil {
			s.log.Error("stop mod", "mod", s.mods[i].Name(), "error", err)
		}
	}
}

// Join creates a player at spawn, restores its saved position and adds it to
// the online players.
func (s *Server) Join(name string, privileges ...string) (*player.Player, error) {
	p := player.NewPlayer(name, player.Position{X: 0.5, Y: float64(s.world.SpawnHeight()), Z: 0.5}, privileges...)
	pd, err := s.storage.LoadPlayer(name)
	if err != nil {
		return nil, err
	}
	if pd != nil {
		pd.Apply(p)
	}
	s.players.Add(p)
	s.log.Info("player joined", "name", name)
	return p, nil
}

// Leave saves the player and removes it from the online players.
func (s *Server) Leave(p *player.Player) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.players.Remove(p)
	s.log.Info("player left", "name", p.Name)
	return s.storage.SavePlayer(p)
}

// Execute runs a command line on behalf of caller.
func (s *Server) Execute(caller command.Caller, line string) error {
	err := s.commands.Dispatch(caller, line)
	if err != nil {
		s.log.Debug("command failed", "player", caller.Player().Name, "line", line, "error", err)
	}
	return err
}

// SaveAll persists the world and every online player.
func (s *Server) SaveAll() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	var errs []error
	if err := s.storage.SaveWorld(s.world, s.cfg.Seed); err != nil {
		errs = append(errs, err)
	}
	s.players.ForEach(func(p *player.Player) {
		if err := s.storage.SavePlayer(p); err != nil {
			errs = append(errs, err)
		}
	})
	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.log.Info("saved world and players", "players", s.players.PlayerCount())
	return nil
}
