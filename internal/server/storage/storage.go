package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/OCharnyshevich/treasure-chest/internal/server/player"
	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
)

// ErrInvalidName is returned for player names that cannot be used as file names.
var ErrInvalidName = errors.New("invalid player name")

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// Storage handles file-based persistence for world and player data.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	dirs := []string{
		dir,
		filepath.Join(dir, "world"),
		filepath.Join(dir, "players"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return &Storage{dir: dir, log: log}, nil
}

func (s *Storage) worldPath() string {
	return filepath.Join(s.dir, "world", "world.json.zst")
}

// LoadWorld reads the world save and loads overrides and containers into w.
// A missing save is not an error. Blocks whose codes the registry no longer
// knows are skipped with a warning.
func (s *Storage) LoadWorld(w *world.World, seed int64) error {
	f, err := os.Open(s.worldPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open world save: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("open world save: %w", err)
	}
	defer dec.Close()

	var wd WorldData
	if err := json.NewDecoder(bufio.NewReader(dec)).Decode(&wd); err != nil {
		return fmt.Errorf("parse world save: %w", err)
	}
	if wd.Version != worldFormatVersion {
		return fmt.Errorf("world save version %d, want %d", wd.Version, worldFormatVersion)
	}
	if wd.Seed != seed {
		s.log.Warn("world save was made with a different seed", "saved", wd.Seed, "seed", seed)
	}

	reg := w.Registry()
	state := world.State{
		Overrides:  make(map[world.BlockPos]uint16, len(wd.Overrides)),
		Containers: make(map[world.BlockPos]*world.Container, len(wd.Containers)),
	}
	for _, o := range wd.Overrides {
		b, ok := reg.ByCode(o.Block)
		if !ok {
			s.log.Warn("skipping override of unknown block", "block", o.Block, "x", o.X, "y", o.Y, "z", o.Z)
			continue
		}
		state.Overrides[o.pos()] = b.ID
	}
	for _, cd := range wd.Containers {
		c := world.NewContainer(cd.Class, cd.Size)
		for _, sd := range cd.Stacks {
			if err := c.SetSlot(sd.Slot, world.ItemStack{Item: sd.Item, StackSize: sd.StackSize}); err != nil {
				s.log.Warn("skipping container slot", "x", cd.X, "y", cd.Y, "z", cd.Z, "error", err)
			}
		}
		state.Containers[cd.pos()] = c
	}

	w.LoadState(state)
	s.log.Info("loaded world", "overrides", len(state.Overrides), "containers", len(state.Containers))
	return nil
}

// SaveWorld writes all overrides and containers atomically.
func (s *Storage) SaveWorld(w *world.World, seed int64) error {
	reg := w.Registry()
	wd := WorldData{Version: worldFormatVersion, Seed: seed}

	w.ForEachOverride(func(pos world.BlockPos, id uint16) {
		wd.Overrides = append(wd.Overrides, BlockOverride{
			X: pos.X, Y: pos.Y, Z: pos.Z, Block: reg.Lookup(id).Code,
		})
	})
	w.ForEachContainer(func(pos world.BlockPos, c *world.Container) {
		cd := ContainerData{X: pos.X, Y: pos.Y, Z: pos.Z, Class: c.Class(), Size: c.Len()}
		for i, st := range c.Stacks() {
			if !st.IsEmpty() {
				cd.Stacks = append(cd.Stacks, SlotData{Slot: i, Item: st.Item, StackSize: st.StackSize})
			}
		}
		wd.Containers = append(wd.Containers, cd)
	})

	// Stable output keeps saves diffable.
	sort.Slice(wd.Overrides, func(i, j int) bool {
		return posLess(wd.Overrides[i].pos(), wd.Overrides[j].pos())
	})
	sort.Slice(wd.Containers, func(i, j int) bool {
		return posLess(wd.Containers[i].pos(), wd.Containers[j].pos())
	})

	err := atomicWrite(s.worldPath(), func(out io.Writer) error {
		enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		if err := json.NewEncoder(enc).Encode(&wd); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	})
	if err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	return nil
}

func posLess(a, b world.BlockPos) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

func (s *Storage) playerPath(name string) (string, error) {
	if !validName.MatchString(name) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return filepath.Join(s.dir, "players", strings.ToLower(name)+".json"), nil
}

// LoadPlayer reads players/<name>.json and returns the data, or nil if not found.
func (s *Storage) LoadPlayer(name string) (*PlayerData, error) {
	path, err := s.playerPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read player %s: %w", name, err)
	}

	var pd PlayerData
	if err := json.Unmarshal(data, &pd); err != nil {
		return nil, fmt.Errorf("parse player %s: %w", name, err)
	}
	return &pd, nil
}

// SavePlayer persists the current state of a player to disk.
func (s *Storage) SavePlayer(p *player.Player) error {
	path, err := s.playerPath(p.Name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(PlayerDataFromPlayer(p), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal player %s: %w", p.Name, err)
	}
	data = append(data, '\n')
	return atomicWrite(path, func(out io.Writer) error {
		_, err := out.Write(data)
		return err
	})
}

// atomicWrite streams into a temp file next to path, then renames it into place.
func atomicWrite(path string, write func(io.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
