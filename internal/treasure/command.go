package treasure

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/OCharnyshevich/treasure-chest/internal/server/command"
	"github.com/OCharnyshevich/treasure-chest/internal/server/player"
	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
)

const defaultRecent = 5

func (m *Mod) command() command.Command {
	return command.Command{
		Name:        "treasure",
		Syntax:      "/treasure | /treasure recent [n]",
		Description: "Place a treasure chest with random items",
		Privilege:   player.PrivilegeControlServer,
		Handler:     m.cmdTreasure,
		Complete: func(argIndex int, partial string) []string {
			if argIndex == 0 {
				return command.FilterPrefix(partial, []string{"recent"})
			}
			return nil
		},
	}
}

func (m *Mod) cmdTreasure(c command.Caller, args []string) error {
	if len(args) == 0 {
		pos := c.Player().AheadBlockPos(2)
		stacks, err := m.PlaceChest(m.api.World, pos, newCommandRand(), SourceCommand)
		if err != nil {
			return err
		}
		c.SendSuccess(fmt.Sprintf("Treasure chest placed at %s with %s.", pos, describe(stacks)))
		return nil
	}

	if strings.ToLower(args[0]) != "recent" || len(args) > 2 {
		return command.ErrUsage
	}
	n := defaultRecent
	if len(args) == 2 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 {
			return command.ErrUsage
		}
		n = v
	}
	if m.ledger == nil {
		return fmt.Errorf("the treasure ledger is disabled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	placements, err := m.ledger.Recent(ctx, n)
	if err != nil {
		return err
	}
	if len(placements) == 0 {
		c.SendInfo("No treasure chests placed yet.")
		return nil
	}
	for _, p := range placements {
		c.SendInfo(fmt.Sprintf("%s %s at %s: %s",
			p.PlacedAt.Format(time.DateTime), p.Source, p.Pos, describe(p.Items)))
	}
	return nil
}

func describe(stacks []world.ItemStack) string {
	if len(stacks) == 0 {
		return "nothing"
	}
	parts := make([]string, len(stacks))
	for i, st := range stacks {
		parts[i] = fmt.Sprintf("%dx %s", st.StackSize, st.Item)
	}
	return strings.Join(parts, ", ")
}
