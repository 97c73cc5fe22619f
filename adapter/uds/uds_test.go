package uds

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ravem-box/adapter/prompt"
	"ravem-box/business/entity"
	"ravem-box/business/usecase"
	"ravem-box/pkg/logger"
)

type fakeRooms struct {
	mu      sync.Mutex
	views   map[string]entity.View
	answers []bool
}

func (f *fakeRooms) Click(ctx context.Context, room string, p usecase.Prompter) (entity.View, error) {
	f.mu.Lock()
	v, ok := f.views[room]
	f.mu.Unlock()
	if !ok {
		return entity.View{}, fmt.Errorf("%w: %s", entity.ErrUnknownRoom, room)
	}
	if !v.Enabled {
		return v, fmt.Errorf("%w: %s", entity.ErrButtonDisabled, v.State)
	}

	answer := p.Confirm(ctx, room+" already connected", "connected to 1234\nforce?")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, answer)
	if answer {
		v.State = entity.StateConnected
		f.views[room] = v
	}
	return v, nil
}

func (f *fakeRooms) given() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]bool(nil), f.answers...)
}

func (f *fakeRooms) Refresh(_ context.Context, room string) (entity.View, error) {
	return f.View(room)
}

func (f *fakeRooms) View(room string) (entity.View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.views[room]
	if !ok {
		return entity.View{}, fmt.Errorf("%w: %s", entity.ErrUnknownRoom, room)
	}
	return v, nil
}

func (f *fakeRooms) Views() []entity.View {
	f.mu.Lock()
	defer f.mu.Unlock()

	return []entity.View{f.views["Council Chamber"], f.views["40-S2-A01"]}
}

func startServer(t *testing.T) (*Client, *fakeRooms) {
	t.Helper()

	rooms := &fakeRooms{views: map[string]entity.View{
		"Council Chamber": {Room: "Council Chamber", State: entity.StateDisconnected, Enabled: true, Tooltip: "Connect Council Chamber\nto weekly"},
		"40-S2-A01":       {Room: "40-S2-A01", State: entity.StateErrorStatus, Tooltip: "Unable to contact the room."},
	}}
	SetRoomsUseCase(rooms)
	t.Cleanup(func() { SetRoomsUseCase(nil) })

	path := filepath.Join(t.TempDir(), "ravem.sock")
	srv, err := NewUDSServer(&ServerConfig{SocketPath: path, CommandTimeout: 5}, logger.NewNopZerolog())
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	return NewUDSClient(&ClientConfig{SocketPath: path}), rooms
}

func TestList(t *testing.T) {
	c, _ := startServer(t)
	out := &bytes.Buffer{}

	res, err := c.Do(context.Background(), CmdList, nil, out)

	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Equal(t, "Council Chamber\tdisconnected\ttrue\n40-S2-A01\terrorStatus\tfalse\n", out.String())
}

func TestStatus(t *testing.T) {
	c, _ := startServer(t)
	out := &bytes.Buffer{}

	res, err := c.Do(context.Background(), CmdStatus+" Council Chamber", nil, out)

	require.NoError(t, err)
	assert.Equal(t, "disconnected", res)
	assert.Equal(t, "disconnected\ttrue\nConnect Council Chamber\nto weekly\n", out.String())
}

func TestStatusUnknownRoom(t *testing.T) {
	c, _ := startServer(t)

	_, err := c.Do(context.Background(), CmdStatus+" nowhere", nil, nil)

	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "unknown room")
}

func TestClickAnswersPrompt(t *testing.T) {
	for _, answer := range []bool{true, false} {
		t.Run(fmt.Sprint(answer), func(t *testing.T) {
			c, rooms := startServer(t)
			term := &bytes.Buffer{}
			in := "n\n"
			if answer {
				in = "y\n"
			}

			res, err := c.Do(context.Background(), CmdClick+" Council Chamber", prompt.NewTerminal(bytes.NewBufferString(in), term), nil)

			require.NoError(t, err)
			assert.Equal(t, []bool{answer}, rooms.given())
			assert.Equal(t, "Council Chamber already connected\nconnected to 1234\nforce? [y/N] ", term.String())
			if answer {
				assert.Equal(t, "connected", res)
			} else {
				assert.Equal(t, "disconnected", res)
			}
		})
	}
}

func TestClickDisabled(t *testing.T) {
	c, rooms := startServer(t)

	_, err := c.Do(context.Background(), CmdClick+" 40-S2-A01", prompt.Always, nil)

	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "button disabled")
	assert.Empty(t, rooms.given())
}

func TestUnknownCommand(t *testing.T) {
	c, _ := startServer(t)

	_, err := c.Do(context.Background(), "reboot", nil, nil)

	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "unknown command")
}

func TestNotReady(t *testing.T) {
	c, _ := startServer(t)
	SetRoomsUseCase(nil)

	_, err := c.Do(context.Background(), CmdList, nil, nil)

	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "not ready", ce.Message)
}

func TestPromptEncoding(t *testing.T) {
	title, question := decodePrompt(encodePrompt("Room\tA", "line one\nline two"))

	assert.Equal(t, "Room A", title)
	assert.Equal(t, "line one\nline two", question)
}

func TestSplitCommand(t *testing.T) {
	cmd, arg := splitCommand("  CLICK   IT Amphitheatre ")

	assert.Equal(t, CmdClick, cmd)
	assert.Equal(t, "IT Amphitheatre", arg)
}
