package command_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/treasure-chest/internal/server/command"
	"github.com/OCharnyshevich/treasure-chest/internal/server/command/commandtest"
	"github.com/OCharnyshevich/treasure-chest/internal/server/player"
)

func newRegistry(t *testing.T) (*command.Registry, *[][]string) {
	t.Helper()
	var calls [][]string
	r := command.NewRegistry()
	require.NoError(t, r.Register(command.Command{
		Name:   "Echo",
		Syntax: "/echo <text>",
		Handler: func(c command.Caller, args []string) error {
			calls = append(calls, args)
			if len(args) == 0 {
				return command.ErrUsage
			}
			c.SendSuccess(fmt.Sprint(args))
			return nil
		},
		Complete: func(argIndex int, partial string) []string {
			if argIndex == 0 {
				return command.FilterPrefix(partial, []string{"hello", "help", "world"})
			}
			return nil
		},
	}))
	require.NoError(t, r.Register(command.Command{
		Name:      "stop",
		Privilege: player.PrivilegeControlServer,
		Handler:   func(command.Caller, []string) error { return errors.New("cannot stop") },
	}))
	return r, &calls
}

func TestRegisterRejectsDuplicatesAndBadNames(t *testing.T) {
	r, _ := newRegistry(t)
	noop := func(command.Caller, []string) error { return nil }

	assert.Error(t, r.Register(command.Command{Name: "ECHO", Handler: noop}))
	assert.Error(t, r.Register(command.Command{Name: "", Handler: noop}))
	assert.Error(t, r.Register(command.Command{Name: "two words", Handler: noop}))
	assert.Error(t, r.Register(command.Command{Name: "nohandler"}))

	cmd, ok := r.Lookup("stop")
	require.True(t, ok)
	assert.Equal(t, "/stop", cmd.Syntax)
	assert.Equal(t, []string{"echo", "stop"}, names(r.Commands()))
}

func TestDispatch(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		privs    []string
		expErr   error
		expKind  string
		expText  string
		expCalls int
	}{
		{name: "slash prefix", line: "/echo a b", expKind: "success", expText: "[a b]", expCalls: 1},
		{name: "bare and upper case", line: "  ECHO x", expKind: "success", expText: "[x]", expCalls: 1},
		{name: "usage", line: "/echo", expErr: command.ErrUsage, expKind: "error", expText: "Usage: /echo <text>", expCalls: 1},
		{name: "unknown", line: "/nope", expErr: command.ErrUnknownCommand, expKind: "error"},
		{name: "no privilege", line: "/stop", expErr: command.ErrNoPrivilege, expKind: "error"},
		{name: "handler error", line: "/stop", privs: []string{player.PrivilegeControlServer}, expKind: "error", expText: "cannot stop"},
		{name: "blank", line: "   "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, calls := newRegistry(t)
			rec := commandtest.NewRecorder(player.NewPlayer("op", player.Position{}, tc.privs...))

			err := r.Dispatch(rec, tc.line)
			switch {
			case tc.expErr != nil:
				require.ErrorIs(t, err, tc.expErr)
			case tc.expText == "cannot stop":
				require.Error(t, err)
			default:
				require.NoError(t, err)
			}

			assert.Len(t, *calls, tc.expCalls)
			last := rec.Last()
			assert.Equal(t, tc.expKind, last.Kind)
			if tc.expText != "" {
				assert.Equal(t, tc.expText, last.Text)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	r, _ := newRegistry(t)
	user := player.NewPlayer("user", player.Position{})
	op := player.NewPlayer("op", player.Position{}, player.PrivilegeControlServer)

	assert.Equal(t, []string{"/echo"}, r.Complete(user, "/"))
	assert.Equal(t, []string{"/echo", "/stop"}, r.Complete(op, "/"))
	assert.Equal(t, []string{"hello", "help"}, r.Complete(user, "/echo he"))
	assert.Equal(t, []string{"hello", "help", "world"}, r.Complete(user, "/echo "))
	assert.Nil(t, r.Complete(user, "/echo hello "))
	assert.Nil(t, r.Complete(user, "/stop "))
	assert.Nil(t, r.Complete(user, ""))
}

func names(cmds []command.Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Name
	}
	return out
}
