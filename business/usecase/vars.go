package usecase

import (
	"context"

	"ravem-box/adapter/broker"
	"ravem-box/business/entity"
)

type Broker interface {
	Start() error
	PublishState(room string, data []byte)
	Subscribe(topic string, handler broker.MessageHandler)
	SetConnectHandler(h broker.ConnectHandler)
	SetDisconnectHandler(h broker.DisconnectHandler)
}

// Publisher receives the rendered view of a button on every state change.
type Publisher interface {
	PublishState(room string, data []byte)
}

// RoomAPI talks to the host status/connect/disconnect endpoints.
type RoomAPI interface {
	Status(ctx context.Context, room entity.Room) (*entity.StatusResponse, error)
	Connect(ctx context.Context, room entity.Room, force bool) (*entity.StatusResponse, error)
	Disconnect(ctx context.Context, room entity.Room, force bool) (*entity.StatusResponse, error)
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, title, question string) bool
}

type Icons interface {
	Get(icon string) (string, error)
}

var (
	stateTopic string
)

func SetStateTopic(t string) {
	stateTopic = t
}
