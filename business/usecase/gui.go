package usecase

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"ravem-box/business/entity"
	"ravem-box/pkg/logger"
)

type NotifyFunc func(title, message, appIcon string) error

type GUIUseCase struct {
	broker Broker
	icons  Icons
	log    *logger.Zerolog
	mu     sync.Mutex
	last   map[string]entity.State
	notify NotifyFunc
	alert  NotifyFunc
}

func NewGUIUseCase(broker Broker, icons Icons, log *logger.Zerolog) (*GUIUseCase, error) {
	uc := &GUIUseCase{
		broker: broker,
		icons:  icons,
		log:    log,
		last:   make(map[string]entity.State),
		notify: beeep.Notify,
		alert:  beeep.Alert,
	}

	uc.broker.SetConnectHandler(uc.OnConnect)

	return uc, uc.broker.Start()
}

func (uc *GUIUseCase) OnConnect() {
	uc.broker.Subscribe(stateTopic+"/#", func(topic string, payload []byte) {
		uc.log.Debug().Msgf("%s - %s", topic, string(payload))

		view, err := uc.parseView(payload)
		if err != nil {
			uc.log.Error().Msgf("failed to parse state: %v", err)
			return
		}

		uc.show(view)
	})
}

func (uc *GUIUseCase) parseView(payload []byte) (*entity.View, error) {
	view := &entity.View{}
	if err := json.Unmarshal(payload, view); err != nil {
		return nil, err
	}
	if !view.State.Valid() {
		return nil, fmt.Errorf("unknown state %q", view.State)
	}
	return view, nil
}

// show raises a notification when a room settles in a new state. Waiting
// states are not shown but forget the last state, so a repeated result after
// a new request is shown again.
func (uc *GUIUseCase) show(view *entity.View) {
	if len(view.Room) == 0 {
		return
	}

	uc.mu.Lock()
	if view.State.Waiting() {
		delete(uc.last, view.Room)
		uc.mu.Unlock()
		return
	}
	if uc.last[view.Room] == view.State {
		uc.mu.Unlock()
		return
	}
	uc.last[view.Room] = view.State
	uc.mu.Unlock()

	img, err := uc.icons.Get(view.Icon)
	if err != nil {
		uc.log.Error().Msgf("failed to get state icon: %v", err)
	}

	title := view.Label
	switch {
	case view.State == entity.StateConnected:
		title += " [ON]"
	case view.State == entity.StateDisconnected:
		title += " [OFF]"
	case view.State.Failed():
		title += " [ERROR]"
	}

	send := uc.notify
	if view.State.Failed() {
		send = uc.alert
	}

	if err = send(title, view.Tooltip, img); err != nil {
		uc.log.Error().Msgf("failed to show notification: %v", err)
	}
}
