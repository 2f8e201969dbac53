package core

import (
	"context"
	"net"

	"github.com/Jx2f/AribasRand/internal/config"
	"github.com/Jx2f/AribasRand/internal/crack"
	"github.com/Jx2f/AribasRand/pkg/clock"
)

type Service struct {
	config *config.Config

	clock   clock.Clock
	cracker *crack.Cracker
	server  *Server

	ctx       context.Context
	ctxCancel context.CancelFunc
}

func NewService(c *config.Config) *Service {
	s := new(Service)
	s.config = c
	s.clock = c.NewClock()
	s.cracker = &crack.Cracker{Workers: c.Crack.Workers, MaxWindow: c.Crack.MaxWindow}
	s.ctx, s.ctxCancel = context.WithCancel(context.Background())
	return s
}

func (s *Service) Start() error {
	ln, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve runs the service on ln until Stop is called.
func (s *Service) Serve(ln net.Listener) error {
	s.server = NewServer(s, ln)
	return s.server.Start(s.ctx)
}

func (s *Service) Stop() error {
	s.ctxCancel()
	return nil
}
