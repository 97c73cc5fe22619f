package main

import (
	"encoding/json"
	"os"

	"ravem-box/pkg/logger"
)

const (
	defaultConfigPath = "ravem-box-front.json"
)

type Config struct {
	Broker *BrokerConfig `json:"broker"`
	Icons  *IconsConfig  `json:"icons"`
	Logger *LoggerConfig `json:"logger"`
}

type LoggerConfig struct {
	Level             string `json:"level"`
	TimeFieldFormat   string `json:"time_field_format"`
	PrettyPrint       bool   `json:"pretty_print"`
	DisableSampling   bool   `json:"disable_sampling"`
	RedirectStdLogger bool   `json:"redirect_std_logger"`
	ErrorStack        bool   `json:"error_stack"`
	ShowCaller        bool   `json:"show_caller"`
}

type BrokerConfig struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	StateTopic string `json:"state_topic"`
	ClientID   string `json:"client_id"`
	UserName   string `json:"user_name"`
	Password   string `json:"password"`
}

type IconsConfig struct {
	Paths map[string]string `json:"paths"`
}

var (
	cfg = &Config{}
)

func init() {
	log := logger.NewDefaultZerolog()

	path, ok := os.LookupEnv("RAVEM_BOX_FRONT_CONFIG")
	if !ok {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		log.Fatal().Msg(err.Error())
	}

	if cfg.Broker == nil {
		log.Fatal().Msg("broker section is missing")
	}
	if cfg.Icons == nil {
		cfg.Icons = &IconsConfig{}
	}
	if cfg.Logger == nil {
		cfg.Logger = &LoggerConfig{Level: "info"}
	}
}
