package gen

import (
	"fmt"

	"github.com/OCharnyshevich/treasure-chest/pkg/gamedata"
)

// Wood holds the resolved block IDs of one tree species.
type Wood struct {
	Name   string
	Log    uint16
	Leaves uint16
}

// Ore is a resolved ore block.
type Ore struct {
	Metal string
	Block uint16
}

// Palette resolves the block IDs the generators place.
type Palette struct {
	Bedrock   uint16
	Rock      uint16
	Soil      uint16
	Grass     uint16
	Sand      uint16
	Water     uint16
	TallGrass uint16
	Ores      []Ore
	Woods     []Wood
}

// NewPalette looks up the terrain blocks, the ores and the log/leaves pair of
// every wood variant in the registry. Ores the registry lacks are skipped.
func NewPalette(blocks *gamedata.BlockRegistry, woods []string) (*Palette, error) {
	lookup := func(code string) (uint16, error) {
		b, ok := blocks.ByCode(code)
		if !ok {
			return 0, fmt.Errorf("palette: unknown block %q", code)
		}
		return b.ID, nil
	}

	p := &Palette{}
	fields := []struct {
		dst  *uint16
		code string
	}{
		{&p.Bedrock, gamedata.BlockBedrock},
		{&p.Rock, gamedata.BlockRock},
		{&p.Soil, gamedata.BlockSoil},
		{&p.Grass, gamedata.BlockGrass},
		{&p.Sand, gamedata.BlockSand},
		{&p.Water, gamedata.BlockWater},
		{&p.TallGrass, gamedata.BlockTallGrass},
	}
	for _, f := range fields {
		id, err := lookup(f.code)
		if err != nil {
			return nil, err
		}
		*f.dst = id
	}

	for _, m := range gamedata.OreMetals {
		if b, ok := blocks.ByCode(gamedata.OreCode(m)); ok {
			p.Ores = append(p.Ores, Ore{Metal: m, Block: b.ID})
		}
	}

	for _, w := range woods {
		log, err := lookup(gamedata.LogCode(w))
		if err != nil {
			return nil, err
		}
		leaves, err := lookup(gamedata.LeavesCode(w))
		if err != nil {
			return nil, err
		}
		p.Woods = append(p.Woods, Wood{Name: w, Log: log, Leaves: leaves})
	}
	return p, nil
}
