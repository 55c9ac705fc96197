package server

import (
	"log/slog"

	"github.com/OCharnyshevich/treasure-chest/internal/assets"
	"github.com/OCharnyshevich/treasure-chest/internal/server/command"
	"github.com/OCharnyshevich/treasure-chest/internal/server/player"
	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
	"github.com/OCharnyshevich/treasure-chest/pkg/gamedata"
)

// API is what the server exposes to mods.
type API struct {
	Seed     int64
	World    *world.World
	Blocks   *gamedata.BlockRegistry
	Items    *gamedata.ItemRegistry
	Commands *command.Registry
	Players  *player.Manager
	Assets   *assets.Store
	Log      *slog.Logger
}

// Mod is a server-side extension started before the world loads, so its
// generation handlers see every column.
type Mod interface {
	Name() string
	StartServerSide(api *API) error
}

// Stopper is implemented by mods holding resources released on shutdown.
type Stopper interface {
	Stop() error
}
