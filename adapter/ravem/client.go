package ravem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"ravem-box/business/entity"
	"ravem-box/pkg/logger"
)

const (
	headerRequestID = "X-Request-ID"
	maxBodySize     = 1 << 20
)

type Config struct {
	// Timeout bounds a single request, zero disables it.
	Timeout time.Duration
	// Header is added to every request, e.g. an authorization token.
	Header map[string]string
}

type Client struct {
	cfg  *Config
	http *http.Client
	log  *logger.Zerolog
}

func NewClient(cfg *Config, log *logger.Zerolog) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

func (c *Client) Status(ctx context.Context, room entity.Room) (*entity.StatusResponse, error) {
	return c.do(ctx, http.MethodGet, room.StatusURL)
}

func (c *Client) Connect(ctx context.Context, room entity.Room, force bool) (*entity.StatusResponse, error) {
	u, err := actionURL(room.ConnectURL, force)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, u)
}

func (c *Client) Disconnect(ctx context.Context, room entity.Room, force bool) (*entity.StatusResponse, error) {
	u, err := actionURL(room.DisconnectURL, force)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, u)
}

func actionURL(raw string, force bool) (string, error) {
	if !force {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid action url %q: %w", raw, err)
	}
	q := u.Query()
	q.Set("force", "1")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (c *Client) do(ctx context.Context, method, target string) (*entity.StatusResponse, error) {
	reqID := uuid.New().String()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, &entity.TransportError{Method: method, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, reqID)
	for k, v := range c.cfg.Header {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Str("request_id", reqID).Msgf("%s %s failed: %v", method, target, err)
		return nil, &entity.TransportError{Method: method, URL: target, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))

	c.log.Debug().
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Float64("latency_ms", float64(time.Since(start).Milliseconds())).
		Msgf("%s %s", method, target)

	if err != nil {
		return nil, &entity.TransportError{Method: method, URL: target, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &entity.TransportError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	status := &entity.StatusResponse{}
	if err = json.Unmarshal(body, status); err != nil {
		return nil, &entity.TransportError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("invalid response body: %w", err),
		}
	}

	return status, nil
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// errorMessage extracts the host's {"error": {"message": ...}} text.
func errorMessage(body []byte) string {
	e := errorBody{}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error.Message
}
