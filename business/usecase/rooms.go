package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"

	"ravem-box/business/entity"
	"ravem-box/pkg/logger"
)

// RoomsUseCase owns one ButtonUseCase per configured room. Buttons are
// independent of each other.
type RoomsUseCase struct {
	buttons map[string]*ButtonUseCase
	order   []string
	log     *logger.Zerolog
}

func NewRoomsUseCase(cfg *ButtonConfig, rooms []entity.Room, api RoomAPI, pub Publisher, clk clock.Clock, tr *entity.Translator, log *logger.Zerolog) (*RoomsUseCase, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	uc := &RoomsUseCase{
		buttons: make(map[string]*ButtonUseCase, len(rooms)),
		order:   make([]string, 0, len(rooms)),
		log:     log,
	}

	for _, r := range rooms {
		if _, ok := uc.buttons[r.Name]; ok {
			return nil, fmt.Errorf("duplicate room %q", r.Name)
		}
		uc.buttons[r.Name] = NewButtonUseCase(cfg, r, api, pub, clk, tr, log)
		uc.order = append(uc.order, r.Name)
	}

	return uc, nil
}

// AttachAll initializes every button concurrently and waits for all of them.
func (uc *RoomsUseCase) AttachAll(ctx context.Context) {
	wg := sync.WaitGroup{}
	for _, name := range uc.order {
		wg.Add(1)
		go func(b *ButtonUseCase) {
			defer wg.Done()
			if err := b.Attach(ctx); err != nil {
				uc.log.Error().Msgf("failed to attach room %s: %v", b.Room().Name, err)
			}
		}(uc.buttons[name])
	}
	wg.Wait()
}

func (uc *RoomsUseCase) button(room string) (*ButtonUseCase, error) {
	b, ok := uc.buttons[room]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownRoom, room)
	}
	return b, nil
}

func (uc *RoomsUseCase) Click(ctx context.Context, room string, p Prompter) (entity.View, error) {
	b, err := uc.button(room)
	if err != nil {
		return entity.View{}, err
	}
	err = b.Click(ctx, p)
	return b.View(), err
}

func (uc *RoomsUseCase) Refresh(ctx context.Context, room string) (entity.View, error) {
	b, err := uc.button(room)
	if err != nil {
		return entity.View{}, err
	}
	err = b.Refresh(ctx)
	return b.View(), err
}

func (uc *RoomsUseCase) View(room string) (entity.View, error) {
	b, err := uc.button(room)
	if err != nil {
		return entity.View{}, err
	}
	return b.View(), nil
}

// Views returns the views of all buttons in configuration order.
func (uc *RoomsUseCase) Views() []entity.View {
	views := make([]entity.View, 0, len(uc.order))
	for _, name := range uc.order {
		views = append(views, uc.buttons[name].View())
	}
	return views
}
