package uds

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"ravem-box/adapter/prompt"
	"ravem-box/business/entity"
	"ravem-box/pkg/logger"
)

type ServerConfig struct {
	SocketPath string
	// CommandTimeout bounds, in seconds, the wait for a command line or for
	// the answer to a prompt. Running commands are not bounded by it.
	CommandTimeout int
}

type Server struct {
	cfg      *ServerConfig
	log      *logger.Zerolog
	listener net.Listener
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewUDSServer(cfg *ServerConfig, log *logger.Zerolog) (*Server, error) {
	if err := os.Remove(cfg.SocketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove stale socket: %w", err)
	}

	l, err := net.Listen("unix", cfg.SocketPath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		log:      log,
		listener: l,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.wg.Add(1)
	go s.accept()

	log.Info().Msgf("listening on %s", cfg.SocketPath)

	return s, nil
}

func (s *Server) accept() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || s.ctx.Err() != nil {
				return
			}
			s.log.Error().Msgf("failed to accept connection: %v", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serve(conn)
		}()
	}
}

func (s *Server) timeout() time.Duration {
	return time.Duration(s.cfg.CommandTimeout) * time.Second
}

func (s *Server) serve(conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			s.log.Debug().Msgf("failed to close connection: %v", err)
		}
	}()

	sess := &session{
		server: s,
		conn:   conn,
		r:      bufio.NewReader(conn),
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-s.ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		line, err := sess.readLine()
		if err != nil {
			return
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		sess.exec(line)
	}
}

func (s *Server) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		s.log.Error().Msgf("failed to close listener: %v", err)
	}
	s.wg.Wait()
	_ = os.Remove(s.cfg.SocketPath)
}

// session is one client connection. It is also the Prompter handed to
// clicks, so confirmations are answered by whoever clicked.
type session struct {
	server *Server
	conn   net.Conn
	r      *bufio.Reader
}

func (ss *session) readLine() (string, error) {
	if t := ss.server.timeout(); t > 0 {
		_ = ss.conn.SetReadDeadline(time.Now().Add(t))
	}
	line, err := ss.r.ReadString('\n')
	_ = ss.conn.SetReadDeadline(time.Time{})

	return strings.TrimRight(line, "\r\n"), err
}

func (ss *session) write(line string) {
	if _, err := fmt.Fprintln(ss.conn, line); err != nil {
		ss.server.log.Debug().Msgf("failed to write to client: %v", err)
	}
}

func (ss *session) Confirm(ctx context.Context, title, question string) bool {
	if ctx.Err() != nil {
		return false
	}

	ss.write(encodePrompt(title, question))

	answer, err := ss.readLine()
	if err != nil {
		ss.server.log.Error().Msgf("no answer to prompt: %v", err)
		return false
	}

	return prompt.IsYes(answer)
}

func (ss *session) exec(line string) {
	cmd, arg := splitCommand(line)
	log := ss.server.log

	log.Debug().Msgf("command %q %q", cmd, arg)

	uc := getRoomsUseCase()
	if uc == nil {
		ss.write(prefixErr + "not ready")
		return
	}

	var (
		view entity.View
		err  error
	)

	switch cmd {
	case CmdList:
		for _, v := range uc.Views() {
			ss.write(prefixData + strings.Join([]string{oneLine(v.Room), string(v.State), fmt.Sprint(v.Enabled)}, fieldSep))
		}
		ss.write(prefixOK)
		return
	case CmdStatus:
		view, err = uc.View(arg)
	case CmdClick:
		view, err = uc.Click(ss.server.ctx, arg, ss)
	case CmdRefresh:
		view, err = uc.Refresh(ss.server.ctx, arg)
	default:
		ss.write(prefixErr + fmt.Sprintf("unknown command %q", cmd))
		return
	}

	if len(view.Room) != 0 {
		ss.writeView(view)
	}

	if err != nil {
		log.Debug().Msgf("%s %s: %v", cmd, arg, err)
		ss.write(prefixErr + oneLine(err.Error()))
		return
	}
	ss.write(prefixOK + " " + string(view.State))
}

func (ss *session) writeView(v entity.View) {
	ss.write(prefixData + string(v.State) + fieldSep + fmt.Sprint(v.Enabled))
	for _, l := range strings.Split(v.Tooltip, "\n") {
		ss.write(prefixData + l)
	}
}
