package server

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/OCharnyshevich/treasure-chest/internal/server/command"
	"github.com/OCharnyshevich/treasure-chest/internal/server/player"
)

func (s *Server) registerBuiltins() error {
	builtins := []command.Command{
		{Name: "help", Syntax: "/help", Description: "Show available commands", Handler: s.cmdHelp},
		{Name: "list", Syntax: "/list", Description: "Show online players", Handler: s.cmdList},
		{
			Name:        "tp",
			Syntax:      "/tp <player> | /tp <x> <y> <z>",
			Description: "Teleport to a player or coordinates",
			Privilege:   player.PrivilegeTeleport,
			Handler:     s.cmdTp,
			Complete:    s.completePlayer,
		},
		{Name: "look", Syntax: "/look <yaw> [pitch]", Description: "Turn to face a direction", Handler: s.cmdLook},
		{Name: "pos", Syntax: "/pos", Description: "Show your position and the block ahead", Handler: s.cmdPos},
		{Name: "seed", Syntax: "/seed", Description: "Show world seed", Handler: s.cmdSeed},
		{
			Name:        "save",
			Syntax:      "/save",
			Description: "Save world and player data",
			Privilege:   player.PrivilegeControlServer,
			Handler:     s.cmdSave,
		},
	}
	for _, cmd := range builtins {
		if err := s.commands.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) cmdHelp(c command.Caller, _ []string) error {
	c.SendInfo("--- Available Commands ---")
	for _, cmd := range s.commands.Commands() {
		if c.Player().HasPrivilege(cmd.Privilege) {
			c.SendInfo(fmt.Sprintf("%s - %s", cmd.Syntax, cmd.Description))
		}
	}
	return nil
}

func (s *Server) cmdList(c command.Caller, _ []string) error {
	var names []string
	s.players.ForEach(func(p *player.Player) {
		names = append(names, p.Name)
	})
	c.SendSuccess(fmt.Sprintf("Online players (%d): %s", len(names), strings.Join(names, ", ")))
	return nil
}

func (s *Server) cmdTp(c command.Caller, args []string) error {
	self := c.Player()
	pos := self.GetPosition()

	switch len(args) {
	case 1:
		target := s.players.GetByName(args[0])
		if target == nil {
			return fmt.Errorf("player %q not found", args[0])
		}
		to := target.GetPosition()
		pos.X, pos.Y, pos.Z = to.X, to.Y, to.Z
		self.SetPosition(pos)
		c.SendSuccess(fmt.Sprintf("Teleported to %s.", target.Name))

	case 3:
		x, errX := strconv.ParseFloat(args[0], 64)
		y, errY := strconv.ParseFloat(args[1], 64)
		z, errZ := strconv.ParseFloat(args[2], 64)
		if errX != nil || errY != nil || errZ != nil {
			return command.ErrUsage
		}
		pos.X, pos.Y, pos.Z = x, y, z
		self.SetPosition(pos)
		c.SendSuccess(fmt.Sprintf("Teleported to %.1f, %.1f, %.1f.", x, y, z))

	default:
		return command.ErrUsage
	}
	return nil
}

func (s *Server) completePlayer(argIndex int, partial string) []string {
	if argIndex != 0 {
		return nil
	}
	var names []string
	s.players.ForEach(func(p *player.Player) {
		names = append(names, p.Name)
	})
	return command.FilterPrefix(partial, names)
}

func (s *Server) cmdLook(c command.Caller, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return command.ErrUsage
	}
	yaw, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return command.ErrUsage
	}
	pitch := float64(c.Player().GetPosition().Pitch)
	if len(args) == 2 {
		if pitch, err = strconv.ParseFloat(args[1], 32); err != nil {
			return command.ErrUsage
		}
	}
	yaw = math.Mod(yaw, 360)
	c.Player().UpdateLook(float32(yaw), float32(pitch))
	c.SendSuccess(fmt.Sprintf("Now facing yaw %.1f, pitch %.1f.", yaw, pitch))
	return nil
}

func (s *Server) cmdPos(c command.Caller, _ []string) error {
	p := c.Player()
	pos := p.GetPosition()
	ahead := p.AheadBlockPos(1)
	c.SendInfo(fmt.Sprintf("Position: %.1f, %.1f, %.1f (yaw %.1f, pitch %.1f)", pos.X, pos.Y, pos.Z, pos.Yaw, pos.Pitch))
	c.SendInfo(fmt.Sprintf("Ahead: %s at %s", s.world.GetBlock(ahead).Code, ahead))
	return nil
}

func (s *Server) cmdSeed(c command.Caller, _ []string) error {
	c.SendSuccess(fmt.Sprintf("Seed: [%d]", s.cfg.Seed))
	return nil
}

func (s *Server) cmdSave(c command.Caller, _ []string) error {
	c.SendInfo("Saving world and player data...")
	if err := s.SaveAll(); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	c.SendSuccess("Save complete.")
	return nil
}
