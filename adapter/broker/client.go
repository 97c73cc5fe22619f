package broker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"ravem-box/pkg/logger"
)

const (
	qos                   = 1
	publishTimeout        = 5 * time.Second
	disconnectQuiesce     = 250
	defaultConnectTimeout = 10 * time.Second
	defaultRetryInterval  = 10 * time.Second
)

// ErrNotConnected is returned by Start when the first connection did not
// come up in time. The client keeps retrying in the background.
var ErrNotConnected = errors.New("broker not connected yet")

type Config struct {
	Host       string
	Port       int
	StateTopic string
	ClientID   string
	UserName   string
	Password   string
	// ConnectTimeout bounds the wait in Start.
	ConnectTimeout time.Duration
	// RetryInterval is the delay between connection attempts until the
	// first connection succeeds.
	RetryInterval time.Duration
}

type MessageHandler func(topic string, payload []byte)
type ConnectHandler func()
type DisconnectHandler func(err error)

type Client struct {
	cfg               *Config
	log               *logger.Zerolog
	client            mqtt.Client
	connectHandler    ConnectHandler
	disconnectHandler DisconnectHandler
}

func NewBrokerClient(cfg *Config, log *logger.Zerolog) (*Client, error) {
	if len(cfg.Host) == 0 {
		return nil, errors.New("broker host is empty")
	}

	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}

	c := &Client{
		cfg: cfg,
		log: log,
	}

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.UserName).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(cfg.RetryInterval).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(c.onConnectionLost)

	c.client = mqtt.NewClient(opts)

	return c, nil
}

// Start connects to the broker. If the broker is not reachable within the
// connect timeout, ErrNotConnected is returned and the connection is retried
// in the background. The connect handler runs once it succeeds.
func (c *Client) Start() error {
	token := c.client.Connect()
	if !token.WaitTimeout(c.cfg.ConnectTimeout) {
		return ErrNotConnected
	}
	return token.Error()
}

// Connected reports whether the connection to the broker is currently up.
func (c *Client) Connected() bool {
	return c.client.IsConnectionOpen()
}

func (c *Client) SetConnectHandler(h ConnectHandler) {
	c.connectHandler = h
}

func (c *Client) SetDisconnectHandler(h DisconnectHandler) {
	c.disconnectHandler = h
}

func (c *Client) onConnect(mqtt.Client) {
	c.log.Info().Msgf("connected to broker %s:%d", c.cfg.Host, c.cfg.Port)
	if c.connectHandler != nil {
		c.connectHandler()
	}
}

func (c *Client) onConnectionLost(_ mqtt.Client, err error) {
	c.log.Error().Msgf("connection to broker lost: %v", err)
	if c.disconnectHandler != nil {
		c.disconnectHandler(err)
	}
}

// PublishState publishes a retained state message on <state topic>/<room>.
func (c *Client) PublishState(room string, data []byte) {
	topic := StateTopic(c.cfg.StateTopic, room)
	token := c.client.Publish(topic, qos, true, data)
	go func() {
		if !token.WaitTimeout(publishTimeout) {
			c.log.Error().Msgf("timeout publishing to %s", topic)
			return
		}
		if err := token.Error(); err != nil {
			c.log.Error().Msgf("failed to publish to %s: %v", topic, err)
		}
	}()
}

func (c *Client) Subscribe(topic string, handler MessageHandler) {
	token := c.client.Subscribe(topic, qos, func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	token.Wait()
	if err := token.Error(); err != nil {
		c.log.Error().Msgf("failed to subscribe to %s: %v", topic, err)
	}
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Disconnect(disconnectQuiesce)
	}
}

var topicReplacer = strings.NewReplacer("/", "_", "+", "_", "#", "_")

// StateTopic returns the topic a room's state is published on. Characters
// with a meaning in MQTT topic filters are replaced.
func StateTopic(base, room string) string {
	return base + "/" + topicReplacer.Replace(room)
}
