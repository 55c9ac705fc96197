// Package command parses console and chat command lines and dispatches them to
// registered handlers.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/OCharnyshevich/treasure-chest/internal/server/player"
)

var (
	// ErrUsage is returned by handlers when arguments are malformed; the
	// dispatcher answers with the command syntax.
	ErrUsage = errors.New("invalid usage")
	// ErrUnknownCommand is returned by Dispatch for unregistered names.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNoPrivilege is returned by Dispatch when the caller lacks the
	// command's privilege.
	ErrNoPrivilege = errors.New("missing privilege")
)

// Caller is whoever issued a command line.
type Caller interface {
	Player() *player.Player
	SendSuccess(msg string)
	SendError(msg string)
	SendInfo(msg string)
}

// Handler runs a command. args excludes the command name.
type Handler func(caller Caller, args []string) error

// Command describes a registered command.
type Command struct {
	Name        string
	Syntax      string
	Description string
	Privilege   string
	Handler     Handler
	// Complete optionally suggests values for argument argIndex (0-based).
	Complete func(argIndex int, partial string) []string
}

// Registry holds commands by lower-cased name.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command. Names are case-insensitive and must be unique.
func (r *Registry) Register(cmd Command) error {
	name := strings.ToLower(strings.TrimPrefix(cmd.Name, "/"))
	if name == "" || strings.ContainsAny(name, " \t") {
		return fmt.Errorf("register command %q: invalid name", cmd.Name)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("register command %q: nil handler", name)
	}
	if cmd.Syntax == "" {
		cmd.Syntax = "/" + name
	}
	cmd.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.commands[name]; ok {
		return fmt.Errorf("register command %q: already registered", name)
	}
	r.commands[name] = cmd
	return nil
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Commands returns all commands sorted by name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	out := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Dispatch parses line ("/name args..." or "name args...") and runs the
// matching command. Every failure is also reported to the caller.
func (r *Registry) Dispatch(caller Caller, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	name := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	args := parts[1:]

	cmd, ok := r.Lookup(name)
	if !ok {
		caller.SendError(fmt.Sprintf("Unknown command: /%s. Type /help for a list of commands.", name))
		return fmt.Errorf("/%s: %w", name, ErrUnknownCommand)
	}
	if !caller.Player().HasPrivilege(cmd.Privilege) {
		caller.SendError(fmt.Sprintf("You need the %q privilege to use /%s.", cmd.Privilege, name))
		return fmt.Errorf("/%s: %w %q", name, ErrNoPrivilege, cmd.Privilege)
	}

	err := cmd.Handler(caller, args)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUsage):
		caller.SendError("Usage: " + cmd.Syntax)
	default:
		caller.SendError(err.Error())
	}
	return fmt.Errorf("/%s: %w", name, err)
}

// Complete returns completions for a partially typed line. Command names are
// only offered for commands the player may run.
func (r *Registry) Complete(p *player.Player, text string) []string {
	parts := strings.Fields(text)
	// If text ends with space, we're completing the next argument.
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) == 0 {
		return nil
	}
	if len(parts) == 1 && !trailingSpace {
		partial := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
		var matches []string
		for _, cmd := range r.Commands() {
			if strings.HasPrefix(cmd.Name, partial) && p.HasPrivilege(cmd.Privilege) {
				matches = append(matches, "/"+cmd.Name)
			}
		}
		return matches
	}

	cmd, ok := r.Lookup(strings.TrimPrefix(parts[0], "/"))
	if !ok || cmd.Complete == nil || !p.HasPrivilege(cmd.Privilege) {
		return nil
	}
	var argPartial string
	argIndex := len(parts) - 1
	if !trailingSpace {
		argPartial = parts[len(parts)-1]
		argIndex--
	}
	return cmd.Complete(argIndex, argPartial)
}

// FilterPrefix returns the options starting with partial, case-insensitively.
func FilterPrefix(partial string, options []string) []string {
	partial = strings.ToLower(partial)
	var matches []string
	for _, opt := range options {
		if strings.HasPrefix(strings.ToLower(opt), partial) {
			matches = append(matches, opt)
		}
	}
	return matches
}
