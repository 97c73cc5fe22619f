package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"ravem-box/business/entity"
	"ravem-box/business/usecase"
)

const (
	defaultConfigPath     = "ravem-box-back.json"
	defaultCommandTimeout = 60
	defaultHTTPTimeout    = 30
)

type Config struct {
	Broker   *BrokerConfig  `json:"broker"`
	UDS      *UDSConfig     `json:"uds"`
	HTTP     *HTTPConfig    `json:"http"`
	Polling  *PollingConfig `json:"polling"`
	Language string         `json:"language"`
	Confirm  bool           `json:"confirm_connect"`
	Rooms    []*entity.Room `json:"rooms"`
	Logger   *LoggerConfig  `json:"logger"`
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

type UDSConfig struct {
	ServerSocket   string `json:"server_socket"`
	CommandTimeout int    `json:"command_timeout"`
}

type HTTPConfig struct {
	// Timeout in seconds, 0 disables it.
	Timeout int               `json:"timeout"`
	Header  map[string]string `json:"header"`
}

type PollingConfig struct {
	Limit int `json:"limit"`
	// Interval in milliseconds.
	Interval int `json:"interval"`
}

func (c *Config) ButtonConfig() *usecase.ButtonConfig {
	return &usecase.ButtonConfig{
		PollingLimit:    c.Polling.Limit,
		PollingInterval: time.Duration(c.Polling.Interval) * time.Millisecond,
		ConfirmConnect:  c.Confirm,
	}
}

func (c *Config) RoomList() []entity.Room {
	rooms := make([]entity.Room, 0, len(c.Rooms))
	for _, r := range c.Rooms {
		rooms = append(rooms, *r)
	}
	return rooms
}

func (c *Config) setDefaults() {
	if c.Polling == nil {
		c.Polling = &PollingConfig{}
	}
	if c.Polling.Limit == 0 {
		c.Polling.Limit = usecase.DefaultPollingLimit
	}
	if c.Polling.Interval == 0 {
		c.Polling.Interval = int(usecase.DefaultPollingInterval / time.Millisecond)
	}
	if c.HTTP == nil {
		c.HTTP = &HTTPConfig{Timeout: defaultHTTPTimeout}
	}
	if c.UDS != nil && c.UDS.CommandTimeout == 0 {
		c.UDS.CommandTimeout = defaultCommandTimeout
	}
	if c.Logger == nil {
		c.Logger = &LoggerConfig{Level: "info"}
	}
}

func (c *Config) validate() error {
	if c.Broker == nil {
		return errors.New("broker section is missing")
	}
	if c.UDS == nil || len(c.UDS.ServerSocket) == 0 {
		return errors.New("uds.server_socket is missing")
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative, got %d", c.HTTP.Timeout)
	}
	if len(c.Rooms) == 0 {
		return errors.New("no rooms configured")
	}
	for i, r := range c.Rooms {
		if r == nil || len(r.Name) == 0 {
			return fmt.Errorf("room #%d: name is missing", i)
		}
		if len(r.StatusURL) == 0 || len(r.ConnectURL) == 0 || len(r.DisconnectURL) == 0 {
			return fmt.Errorf("room %s: status, connect and disconnect urls are required", r.Name)
		}
	}
	return c.ButtonConfig().Validate()
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := &Config{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	c.setDefaults()

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

func configPath() string {
	if path, ok := os.LookupEnv("RAVEM_BOX_BACK_CONFIG"); ok {
		return path
	}
	return defaultConfigPath
}
