package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/OCharnyshevich/treasure-chest/internal/server"
	"github.com/OCharnyshevich/treasure-chest/internal/server/command"
	"github.com/OCharnyshevich/treasure-chest/internal/server/player"
)

// consoleName is the player the stdin operator acts as.
const consoleName = "console"

// console is the command.Caller for lines typed on stdin.
type console struct {
	mu     sync.Mutex
	player *player.Player
	out    io.Writer
}

func (c *console) Player() *player.Player { return c.player }

func (c *console) SendSuccess(msg string) { c.println(msg) }
func (c *console) SendInfo(msg string)    { c.println(msg) }
func (c *console) SendError(msg string)   { c.println("error: " + msg) }

func (c *console) println(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, msg)
}

func registerStop(srv *server.Server, stop func()) error {
	return srv.Commands().Register(command.Command{
		Name:        "stop",
		Syntax:      "/stop",
		Description: "Save and stop the server",
		Privilege:   player.PrivilegeControlServer,
		Handler: func(c command.Caller, _ []string) error {
			c.SendInfo("Stopping the server...")
			stop()
			return nil
		},
	})
}

// runConsole waits for the server to be ready, then executes every line read
// from in as the console operator, who holds every privilege.
func runConsole(ctx context.Context, srv *server.Server, in io.Reader, out io.Writer, log *slog.Logger) {
	select {
	case <-srv.Ready():
	case <-ctx.Done():
		return
	}

	p, err := srv.Join(consoleName, player.AllPrivileges...)
	if err != nil {
		log.Error("console join", "error", err)
		return
	}
	c := &console{player: p, out: out}
	c.SendInfo("Console ready. Type /help for a list of commands.")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// Failures are already reported to the console.
		_ = srv.Execute(c, line)
		if ctx.Err() != nil {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error("read console", "error", err)
	}
	if err := srv.Leave(p); err != nil {
		log.Error("console leave", "error", err)
	}
}
