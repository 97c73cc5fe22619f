package uds

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"ravem-box/business/usecase"
)

type ClientConfig struct {
	SocketPath string
}

// CommandError is an err line sent back by the server.
type CommandError struct {
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}

type Client struct {
	cfg *ClientConfig
}

func NewUDSClient(cfg *ClientConfig) *Client {
	return &Client{cfg: cfg}
}

// Do sends one command and waits for its ok/err line. Data lines are copied
// to out, prompts are answered through p. The text following "ok" is
// returned.
func (c *Client) Do(ctx context.Context, command string, p usecase.Prompter, out io.Writer) (string, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", c.cfg.SocketPath)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = conn.Close()
	}()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	if _, err = fmt.Fprintln(conn, oneLine(command)); err != nil {
		return "", err
	}

	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case strings.HasPrefix(line, prefixData):
			if out != nil {
				_, _ = fmt.Fprintln(out, strings.TrimPrefix(line, prefixData))
			}
		case strings.HasPrefix(line, prefixPrompt):
			title, question := decodePrompt(line)
			answer := answerNo
			if p != nil && p.Confirm(ctx, title, question) {
				answer = answerYes
			}
			if _, err = fmt.Fprintln(conn, answer); err != nil {
				return "", err
			}
		case strings.HasPrefix(line, prefixErr):
			return "", &CommandError{Message: strings.TrimPrefix(line, prefixErr)}
		case line == prefixOK:
			return "", nil
		case strings.HasPrefix(line, prefixOK+" "):
			return strings.TrimPrefix(line, prefixOK+" "), nil
		}
	}
}
