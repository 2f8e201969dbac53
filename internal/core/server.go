package core

import (
	"context"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tidwall/redcon"

	"github.com/Jx2f/AribasRand/pkg/logger"
)

type Server struct {
	*Service
	listener net.Listener
	sessions atomic.Int64
}

func NewServer(s *Service, ln net.Listener) *Server {
	return &Server{Service: s, listener: ln}
}

func (e *Server) Start(ctx context.Context) error {
	logger.Info().Msgf("Start listening on %s", e.listener.Addr())
	srv := redcon.NewServerNetwork("tcp", e.listener.Addr().String(),
		e.handleCommand, e.handleOpen, e.handleClose)
	served := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-served:
			return
		}
		// Close fails until Serve has taken the listener.
		for srv.Close() != nil {
			select {
			case <-served:
				return
			case <-time.After(10 * time.Millisecond):
			}
		}
	}()
	err := srv.Serve(e.listener)
	close(served)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (e *Server) handleOpen(conn redcon.Conn) bool {
	session := newSession(e, conn.RemoteAddr())
	conn.SetContext(session)
	logger.Info().Int64("sessions", e.sessions.Add(1)).Msgf("New session from %s", conn.RemoteAddr())
	return true
}

func (e *Server) handleClose(conn redcon.Conn, err error) {
	n := e.sessions.Add(-1)
	if err != nil {
		logger.Debug().Err(err).Int64("sessions", n).Msgf("Session %s closed", conn.RemoteAddr())
		return
	}
	logger.Info().Int64("sessions", n).Msgf("Session %s closed", conn.RemoteAddr())
}

func (e *Server) handleCommand(conn redcon.Conn, cmd redcon.Command) {
	session := conn.Context().(*Session)
	args := make([]string, len(cmd.Args))
	for i, arg := range cmd.Args {
		args[i] = string(arg)
	}
	args[0] = strings.ToLower(args[0])
	session.HandleCommand(conn, args)
}
