package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/soellman/pidfile"

	"ravem-box/adapter/broker"
	"ravem-box/adapter/ravem"
	"ravem-box/adapter/uds"
	"ravem-box/business/entity"
	"ravem-box/business/usecase"
	"ravem-box/pkg/logger"
)

var (
	cfg *Config
	log *logger.Zerolog

	brokerClient *broker.Client
	udsServer    *uds.Server
	ravemClient  *ravem.Client

	roomsUseCase *usecase.RoomsUseCase
)

const (
	pidFile = "/tmp/ravem-box.pid"
)

func main() {
	defer shutdown()

	var err error
	if cfg, err = loadConfig(configPath()); err != nil {
		logger.NewDefaultZerolog().Fatal().Msg(err.Error())
	}

	log = logger.NewZerolog(logger.ZeroConfig{
		Level:             cfg.Logger.Level,
		TimeFieldFormat:   cfg.Logger.TimeFieldFormat,
		PrettyPrint:       cfg.Logger.PrettyPrint,
		DisableSampling:   cfg.Logger.DisableSampling,
		RedirectStdLogger: cfg.Logger.RedirectStdLogger,
		ErrorStack:        cfg.Logger.ErrorStack,
		ShowCaller:        cfg.Logger.ShowCaller,
	})

	if err = pidfile.Write(pidFile); err != nil {
		log.Fatal().Msgf("failed to create pid file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initAdapters()
	initUseCases()

	go roomsUseCase.AttachAll(ctx)

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
	if err = brokerClient.Start(); err != nil {
		log.Error().Msgf("failed to connect to broker, will retry: %v", err)
	}

	ravemClient = ravem.NewClient(&ravem.Config{
		Timeout: time.Duration(cfg.HTTP.Timeout) * time.Second,
		Header:  cfg.HTTP.Header,
	}, log)

	udsServer, err = uds.NewUDSServer(&uds.ServerConfig{
		SocketPath:     cfg.UDS.ServerSocket,
		CommandTimeout: cfg.UDS.CommandTimeout,
	}, log)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
}

func initUseCases() {
	tr := entity.NewTranslator(cfg.Language)
	log.Info().Msgf("tooltip language: %s", tr.Language())

	var err error
	roomsUseCase, err = usecase.NewRoomsUseCase(
		cfg.ButtonConfig(),
		cfg.RoomList(),
		ravemClient,
		brokerClient,
		clock.New(),
		tr,
		log,
	)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	uds.SetRoomsUseCase(roomsUseCase)
}

func shutdown() {
	if r := recover(); r != nil {
		fmt.Println(r)
	}
	_ = pidfile.Remove(pidFile)
	if udsServer != nil {
		udsServer.Close()
	}
	if brokerClient != nil {
		brokerClient.Close()
	}
}
