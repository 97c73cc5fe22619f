package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"ravem-box/adapter/broker"
	"ravem-box/adapter/icon"
	"ravem-box/business/usecase"
	"ravem-box/pkg/logger"
)

var (
	log *logger.Zerolog

	brokerClient *broker.Client
	iconSet      *icon.Set

	guiUseCase *usecase.GUIUseCase
)

func main() {
	defer shutdown()

	log = logger.NewZerolog(logger.ZeroConfig{
		Level:             cfg.Logger.Level,
		TimeFieldFormat:   cfg.Logger.TimeFieldFormat,
		PrettyPrint:       cfg.Logger.PrettyPrint,
		DisableSampling:   cfg.Logger.DisableSampling,
		RedirectStdLogger: cfg.Logger.RedirectStdLogger,
		ErrorStack:        cfg.Logger.ErrorStack,
		ShowCaller:        cfg.Logger.ShowCaller,
	})

	initAdapters()
	initUseCases()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

func initAdapters() {
	var err error
	brokerClient, err = broker.NewBrokerClient(&broker.Config{
		Host:       cfg.Broker.Host,
		Port:       cfg.Broker.Port,
		StateTopic: cfg.Broker.StateTopic,
		ClientID:   cfg.Broker.ClientID,
		UserName:   cfg.Broker.UserName,
		Password:   cfg.Broker.Password,
	}, log)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	iconSet = icon.NewIconSet(&icon.Config{
		Paths: cfg.Icons.Paths,
	}, log)
}

func initUseCases() {
	usecase.SetStateTopic(cfg.Broker.StateTopic)

	var err error
	guiUseCase, err = usecase.NewGUIUseCase(brokerClient, iconSet, log)
	switch {
	case errors.Is(err, broker.ErrNotConnected):
		log.Error().Msgf("failed to connect to broker, will retry: %v", err)
	case err != nil:
		log.Fatal().Msg(err.Error())
	}
}

func shutdown() {
	if brokerClient != nil {
		brokerClient.Close()
	}
}
