package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"ravem-box/business/entity"
	"ravem-box/pkg/logger"
)

const (
	DefaultPollingLimit    = 5
	DefaultPollingInterval = 5000 * time.Millisecond
	MinPollingInterval     = 1000 * time.Millisecond
)

type ButtonConfig struct {
	// PollingLimit is the number of status polls made after an accepted
	// action before the action is considered failed.
	PollingLimit    int
	PollingInterval time.Duration
	// ConfirmConnect asks the user before sending a connect request.
	ConfirmConnect bool
}

func (c *ButtonConfig) Validate() error {
	if c.PollingLimit < 1 {
		return fmt.Errorf("polling limit must be at least 1, got %d", c.PollingLimit)
	}
	if c.PollingInterval < MinPollingInterval {
		return fmt.Errorf("polling interval must be at least %s, got %s", MinPollingInterval, c.PollingInterval)
	}
	return nil
}

// action describes one direction of the toggle.
type action struct {
	name         entity.Action
	old          entity.State
	new          entity.State
	wait         entity.State
	fail         entity.State
	validReasons map[string]struct{}
	expect       bool
	forceMsg     string
	failureMsg   string
}

var (
	connectAction = &action{
		name:         entity.ActionConnect,
		old:          entity.StateDisconnected,
		new:          entity.StateConnected,
		wait:         entity.StateWaitingConnect,
		fail:         entity.StateErrorConnect,
		validReasons: map[string]struct{}{entity.ReasonAlreadyConnected: {}},
		expect:       true,
		forceMsg:     entity.MsgForceConnect,
		failureMsg:   entity.MsgConnectFailed,
	}
	disconnectAction = &action{
		name:         entity.ActionDisconnect,
		old:          entity.StateConnected,
		new:          entity.StateDisconnected,
		wait:         entity.StateWaitingDisconnect,
		fail:         entity.StateErrorDisconnect,
		validReasons: map[string]struct{}{entity.ReasonAlreadyDisconnected: {}},
		expect:       false,
		forceMsg:     entity.MsgForceDisconnect,
		failureMsg:   entity.MsgDisconnectFailed,
	}
)

func actionFor(s entity.State) *action {
	switch s.Action() {
	case entity.ActionConnect:
		return connectAction
	case entity.ActionDisconnect:
		return disconnectAction
	default:
		return nil
	}
}

// ButtonUseCase is the connect/disconnect toggle of a single room.
type ButtonUseCase struct {
	cfg      *ButtonConfig
	room     entity.Room
	api      RoomAPI
	pub      Publisher
	clock    clock.Clock
	tr       *entity.Translator
	log      *logger.Zerolog
	mu       sync.RWMutex
	state    entity.State
	view     entity.View
	attempts int
}

func NewButtonUseCase(cfg *ButtonConfig, room entity.Room, api RoomAPI, pub Publisher, clk clock.Clock, tr *entity.Translator, log *logger.Zerolog) *ButtonUseCase {
	uc := &ButtonUseCase{
		cfg:   cfg,
		room:  room,
		api:   api,
		pub:   pub,
		clock: clk,
		tr:    tr,
		log:   log.WithField("room", room.Name),
		state: entity.StateWaitingStatus,
	}
	uc.view = entity.Render(tr, room, uc.state, "")

	return uc
}

func (uc *ButtonUseCase) Room() entity.Room {
	return uc.room
}

func (uc *ButtonUseCase) State() entity.State {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	return uc.state
}

func (uc *ButtonUseCase) View() entity.View {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	return uc.view
}

// Attach queries the room status and moves the button to its first real
// state. The returned error is informational, the button state already
// reflects it.
func (uc *ButtonUseCase) Attach(ctx context.Context) error {
	uc.mu.Lock()
	uc.setState(entity.StateWaitingStatus, "")
	uc.mu.Unlock()

	return uc.attach(ctx)
}

// Refresh re-runs Attach. It is refused while a request is in flight.
func (uc *ButtonUseCase) Refresh(ctx context.Context) error {
	uc.mu.Lock()
	if uc.state.Waiting() {
		state := uc.state
		uc.mu.Unlock()
		return fmt.Errorf("%w: %s", entity.ErrButtonDisabled, state)
	}
	uc.setState(entity.StateWaitingStatus, "")
	uc.mu.Unlock()

	return uc.attach(ctx)
}

func (uc *ButtonUseCase) attach(ctx context.Context) error {
	status, err := uc.api.Status(ctx, uc.room)
	if err != nil {
		uc.log.Error().Msgf("failed to get room status: %v", err)
		uc.update(entity.StateErrorStatus, uc.messageOr(entity.ErrorMessage(err), entity.MsgUnknownError))
		return err
	}

	if err = status.Err(); err != nil {
		if errors.Is(err, entity.ErrUnsupportedRoom) {
			uc.update(entity.StateUnsupported, status.Message)
		} else {
			uc.update(entity.StateErrorStatus, status.Message)
		}
		return err
	}

	if status.Connected {
		uc.update(entity.StateConnected, "")
	} else {
		uc.update(entity.StateDisconnected, "")
	}

	return nil
}

// Click toggles the connection. In a state without an action it does
// nothing and returns ErrButtonDisabled. It returns once the action has
// settled: steady state reached, error state reached or the user declined.
func (uc *ButtonUseCase) Click(ctx context.Context, p Prompter) error {
	uc.mu.RLock()
	act := actionFor(uc.state)
	state := uc.state
	uc.mu.RUnlock()

	if p == nil {
		p = declineAll{}
	}

	if act == nil {
		uc.log.Debug().Msgf("click ignored in state %s", state)
		return fmt.Errorf("%w: %s", entity.ErrButtonDisabled, state)
	}

	if act == connectAction && uc.cfg.ConfirmConnect {
		title := uc.tr.Sprintf(entity.MsgJoinTitle, uc.room.Name)
		if !p.Confirm(ctx, title, uc.tr.Sprintf(entity.MsgReadyToJoin)) {
			uc.log.Debug().Msg("connect cancelled by user")
			return nil
		}
	}

	if err := uc.begin(act); err != nil {
		return err
	}

	return uc.perform(ctx, act, p, false)
}

// begin moves the button from the action's steady state into its waiting
// state. Doing the check and the transition under one lock is what keeps
// two clicks from racing.
func (uc *ButtonUseCase) begin(act *action) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.state != act.old {
		return fmt.Errorf("%w: %s", entity.ErrButtonDisabled, uc.state)
	}
	uc.setState(act.wait, "")

	return nil
}

func (uc *ButtonUseCase) perform(ctx context.Context, act *action, p Prompter, force bool) error {
	uc.log.Info().Msgf("sending %s request (force=%t)", act.name, force)

	var (
		resp *entity.StatusResponse
		err  error
	)
	if act == connectAction {
		resp, err = uc.api.Connect(ctx, uc.room, force)
	} else {
		resp, err = uc.api.Disconnect(ctx, uc.room, force)
	}

	return uc.handle(ctx, act, p, resp, err)
}

func (uc *ButtonUseCase) handle(ctx context.Context, act *action, p Prompter, resp *entity.StatusResponse, err error) error {
	if err != nil {
		uc.log.Error().Msgf("%s request failed: %v", act.name, err)
		uc.update(act.fail, uc.messageOr(entity.ErrorMessage(err), entity.MsgUnknownError))
		return err
	}

	if resp.Success {
		return uc.confirm(ctx, act)
	}

	if _, ok := act.validReasons[resp.Reason]; ok && resp.Reason != "" {
		uc.log.Info().Msgf("%s: %s", act.name, resp.Reason)
		uc.update(act.new, "")
		return nil
	}

	if resp.Reason == entity.ReasonConnectedOther {
		uc.update(act.old, "")

		title := uc.tr.Sprintf(entity.MsgAlreadyConnectedTitle, uc.room.Name)
		question := strings.Join([]string{resp.Message, uc.tr.Sprintf(act.forceMsg, uc.room.Name, uc.room.VCRoomName)}, "\n")
		if resp.Message == "" {
			question = uc.tr.Sprintf(act.forceMsg, uc.room.Name, uc.room.VCRoomName)
		}

		if !p.Confirm(ctx, title, question) {
			uc.log.Info().Msgf("forced %s declined", act.name)
			return nil
		}

		if err = uc.begin(act); err != nil {
			return err
		}
		return uc.perform(ctx, act, p, true)
	}

	uc.log.Error().Msgf("%s rejected: reason=%q message=%q", act.name, resp.Reason, resp.Message)
	uc.update(act.fail, resp.Message)

	return resp.Err()
}

// confirm polls the status until it reflects the action or the attempt
// budget runs out.
func (uc *ButtonUseCase) confirm(ctx context.Context, act *action) error {
	uc.mu.Lock()
	uc.attempts = uc.cfg.PollingLimit
	uc.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			uc.log.Info().Msgf("%s polling cancelled", act.name)
			uc.update(act.fail, uc.messageOr("", act.failureMsg))
			return ctx.Err()
		case <-uc.clock.After(uc.cfg.PollingInterval):
		}

		status, err := uc.api.Status(ctx, uc.room)
		if err == nil && status.Success && status.Connected == act.expect {
			uc.log.Info().Msgf("%s confirmed", act.name)
			uc.update(act.new, "")
			return nil
		}

		uc.mu.Lock()
		uc.attempts--
		left := uc.attempts
		uc.mu.Unlock()

		if left > 0 {
			uc.log.Debug().Msgf("%s not confirmed yet, %d attempts left", act.name, left)
			continue
		}

		var msg string
		if err != nil {
			msg = entity.ErrorMessage(err)
		} else {
			msg = status.Message
		}
		uc.log.Error().Msgf("%s not confirmed after %d attempts", act.name, uc.cfg.PollingLimit)
		uc.update(act.fail, uc.messageOr(msg, act.failureMsg))

		return fmt.Errorf("%s %s: %w", act.name, uc.room.Name, entity.ErrPollExhausted)
	}
}

type declineAll struct{}

func (declineAll) Confirm(context.Context, string, string) bool {
	return false
}

func (uc *ButtonUseCase) messageOr(msg, key string) string {
	if msg != "" {
		return msg
	}
	return uc.tr.Sprintf(key, uc.room.Name, uc.room.VCRoomName)
}

func (uc *ButtonUseCase) update(state entity.State, msg string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.setState(state, msg)
}

// setState must be called with mu held.
func (uc *ButtonUseCase) setState(state entity.State, msg string) {
	uc.state = state
	uc.view = entity.Render(uc.tr, uc.room, state, msg)
	uc.publish()
}

func (uc *ButtonUseCase) publish() {
	if uc.pub == nil {
		return
	}

	data, err := json.Marshal(uc.view)
	if err != nil {
		uc.log.Error().Msg(err.Error())
		return
	}
	uc.pub.PublishState(uc.room.Name, data)
}
