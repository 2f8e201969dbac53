package core

import (
	"github.com/Jx2f/AribasRand/pkg/crypto/aribas"
)

// Session holds the generator of one connection.
type Session struct {
	*Server
	addr string

	generator *aribas.Generator
}

func newSession(s *Server, addr string) *Session {
	return &Session{
		Server:    s,
		addr:      addr,
		generator: aribas.New(s.config.DefaultPlatform()),
	}
}
