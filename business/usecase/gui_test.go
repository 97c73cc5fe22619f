package usecase

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ravem-box/adapter/broker"
	"ravem-box/business/entity"
	"ravem-box/pkg/logger"
)

type fakeBroker struct {
	onConnect broker.ConnectHandler
	topic     string
	handler   broker.MessageHandler
}

func (b *fakeBroker) Start() error {
	b.onConnect()
	return nil
}

func (b *fakeBroker) PublishState(string, []byte) {}

func (b *fakeBroker) Subscribe(topic string, handler broker.MessageHandler) {
	b.topic = topic
	b.handler = handler
}

func (b *fakeBroker) SetConnectHandler(h broker.ConnectHandler) {
	b.onConnect = h
}

func (b *fakeBroker) SetDisconnectHandler(broker.DisconnectHandler) {}

type fakeIcons map[string]string

func (f fakeIcons) Get(icon string) (string, error) {
	if p, ok := f[icon]; ok {
		return p, nil
	}
	return "", errors.New("no icon")
}

type notification struct {
	kind    string
	title   string
	message string
	icon    string
}

func newTestGUI(t *testing.T) (*fakeBroker, *[]notification) {
	t.Helper()

	SetStateTopic("ravem/state")
	t.Cleanup(func() { SetStateTopic("") })

	b := &fakeBroker{}
	uc, err := NewGUIUseCase(b, fakeIcons{entity.IconCamera: "/usr/share/ravem/camera.png"}, logger.NewNopZerolog())
	require.NoError(t, err)

	shown := &[]notification{}
	record := func(kind string) NotifyFunc {
		return func(title, message, icon string) error {
			*shown = append(*shown, notification{kind: kind, title: title, message: message, icon: icon})
			return nil
		}
	}
	uc.notify = record("notify")
	uc.alert = record("alert")

	return b, shown
}

func publish(t *testing.T, b *fakeBroker, state entity.State, extra string) {
	t.Helper()

	data, err := json.Marshal(entity.Render(entity.NewTranslator("en"), testRoom, state, extra))
	require.NoError(t, err)
	b.handler(broker.StateTopic("ravem/state", testRoom.Name), data)
}

func TestGUISubscribesOnConnect(t *testing.T) {
	b, _ := newTestGUI(t)

	assert.Equal(t, "ravem/state/#", b.topic)
	require.NotNil(t, b.handler)
}

func TestGUIShowsSettledStates(t *testing.T) {
	b, shown := newTestGUI(t)

	publish(t, b, entity.StateWaitingStatus, "")
	publish(t, b, entity.StateDisconnected, "")
	publish(t, b, entity.StateDisconnected, "")
	publish(t, b, entity.StateWaitingConnect, "")
	publish(t, b, entity.StateErrorConnect, "RAVEM is down")

	require.Len(t, *shown, 2)

	first := (*shown)[0]
	assert.Equal(t, "notify", first.kind)
	assert.Equal(t, testRoom.Name+" [OFF]", first.title)
	assert.Equal(t, "/usr/share/ravem/camera.png", first.icon)

	second := (*shown)[1]
	assert.Equal(t, "alert", second.kind)
	assert.Equal(t, testRoom.Name+" [ERROR]", second.title)
	assert.Contains(t, second.message, "RAVEM is down")
	assert.Empty(t, second.icon)
}

func TestGUIIgnoresGarbage(t *testing.T) {
	b, shown := newTestGUI(t)

	b.handler("ravem/state/x", []byte("not json"))
	b.handler("ravem/state/x", []byte(`{"state": "connected"}`))

	assert.Empty(t, *shown)
}

func TestGUIShowsRepeatedResultAfterNewRequest(t *testing.T) {
	b, shown := newTestGUI(t)

	publish(t, b, entity.StateErrorStatus, "RAVEM is down")
	publish(t, b, entity.StateWaitingStatus, "")
	publish(t, b, entity.StateErrorStatus, "Room not found")

	require.Len(t, *shown, 2)
	assert.Equal(t, "alert", (*shown)[1].kind)
	assert.Contains(t, (*shown)[1].message, "Room not found")
}

func TestGUIIgnoresUnknownState(t *testing.T) {
	b, shown := newTestGUI(t)

	b.handler("ravem/state/x", []byte(`{"room": "x", "state": "exploded"}`))

	assert.Empty(t, *shown)
}
