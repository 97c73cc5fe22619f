package uds

import (
	"context"
	"sync"

	"ravem-box/business/entity"
	"ravem-box/business/usecase"
)

type RoomsUseCase interface {
	Click(ctx context.Context, room string, p usecase.Prompter) (entity.View, error)
	Refresh(ctx context.Context, room string) (entity.View, error)
	View(room string) (entity.View, error)
	Views() []entity.View
}

var (
	mu           sync.RWMutex
	roomsUseCase RoomsUseCase
)

func SetRoomsUseCase(uc RoomsUseCase) {
	mu.Lock()
	defer mu.Unlock()

	roomsUseCase = uc
}

func getRoomsUseCase() RoomsUseCase {
	mu.RLock()
	defer mu.RUnlock()

	return roomsUseCase
}
