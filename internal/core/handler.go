package core

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/tidwall/redcon"

	"github.com/Jx2f/AribasRand/internal/crack"
	"github.com/Jx2f/AribasRand/pkg/crypto/aribas"
	"github.com/Jx2f/AribasRand/pkg/crypto/crt"
	"github.com/Jx2f/AribasRand/pkg/logger"
)

const maxDrawCount = 1 << 16

var (
	errWrongNumArgs = errors.New("wrong number of arguments")
	errSyntax       = errors.New("syntax error")
)

func (s *Session) HandleCommand(conn redcon.Conn, args []string) {
	logger.Trace().Str("addr", s.addr).Strs("args", args).Msg("Command")
	var err error
	switch args[0] {
	case "ping":
		err = s.OnPing(conn, args)
	case "quit":
		conn.WriteString("OK")
		_ = conn.Close()
	case "platform":
		err = s.OnPlatform(conn, args)
	case "seed":
		err = s.OnSeed(conn, args)
	case "seedraw":
		err = s.OnSeedRaw(conn, args)
	case "seednow":
		err = s.OnSeedNow(conn, args)
	case "state":
		err = s.OnState(conn, args)
	case "lanes":
		err = s.OnLanes(conn, args)
	case "random":
		err = s.OnRandom(conn, args)
	case "crack":
		err = s.OnCrack(conn, args)
	default:
		err = fmt.Errorf("unknown command '%s'", args[0])
	}
	if err != nil {
		conn.WriteError("ERR " + err.Error())
	}
}

func (s *Session) OnPing(conn redcon.Conn, args []string) error {
	switch len(args) {
	case 1:
		conn.WriteString("PONG")
	case 2:
		conn.WriteBulkString(args[1])
	default:
		return errWrongNumArgs
	}
	return nil
}

func (s *Session) OnPlatform(conn redcon.Conn, args []string) error {
	switch len(args) {
	case 1:
	case 2:
		p, err := crt.ParsePlatform(args[1])
		if err != nil {
			return err
		}
		s.generator = aribas.New(p)
		logger.Debug().Str("addr", s.addr).Str("platform", p.String()).Msg("Platform changed")
	default:
		return errWrongNumArgs
	}
	conn.WriteBulkString(s.generator.Platform().String())
	return nil
}

func (s *Session) OnSeed(conn redcon.Conn, args []string) error {
	if len(args) != 2 {
		return errWrongNumArgs
	}
	ts, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return errSyntax
	}
	writeState(conn, s.generator.SeedTimestamp(uint32(ts)))
	return nil
}

func (s *Session) OnSeedRaw(conn redcon.Conn, args []string) error {
	if len(args) != 2 {
		return errWrongNumArgs
	}
	seed, err := strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return errSyntax
	}
	writeState(conn, s.generator.Seed(seed))
	return nil
}

func (s *Session) OnSeedNow(conn redcon.Conn, args []string) error {
	if len(args) != 1 {
		return errWrongNumArgs
	}
	ts := aribas.Timestamp(s.clock)
	logger.Info().Str("addr", s.addr).Uint32("timestamp", ts).Msg("Seeding from clock")
	writeState(conn, s.generator.SeedTimestamp(ts))
	return nil
}

func (s *Session) OnState(conn redcon.Conn, args []string) error {
	if len(args) != 1 {
		return errWrongNumArgs
	}
	writeState(conn, s.generator.State())
	return nil
}

func (s *Session) OnLanes(conn redcon.Conn, args []string) error {
	if len(args) != 1 {
		return errWrongNumArgs
	}
	conn.WriteBulkString(s.generator.String())
	return nil
}

func (s *Session) OnRandom(conn redcon.Conn, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return errWrongNumArgs
	}
	m, ok := new(big.Int).SetString(args[1], 10)
	if !ok || m.Sign() < 0 {
		return errSyntax
	}
	if len(args) == 2 {
		conn.WriteBulkString(s.generator.Random(m).String())
		return nil
	}
	n, err := strconv.Atoi(args[2])
	if err != nil || n < 0 || n > maxDrawCount {
		return errSyntax
	}
	conn.WriteArray(n)
	for i := 0; i < n; i++ {
		conn.WriteBulkString(s.generator.Random(m).String())
	}
	return nil
}

func (s *Session) OnCrack(conn redcon.Conn, args []string) error {
	if len(args) < 2 {
		return errWrongNumArgs
	}
	job, err := crack.ParseJob(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	matches, err := s.cracker.Search(s.ctx, job)
	if err != nil {
		return err
	}
	logger.Info().Str("addr", s.addr).Int("matches", len(matches)).Msg("Crack finished")
	conn.WriteArray(len(matches))
	for _, m := range matches {
		conn.WriteBulkString(fmt.Sprintf("%d %d", m.Timestamp, m.State))
	}
	return nil
}

func writeState(conn redcon.Conn, state uint64) {
	conn.WriteBulkString(strconv.FormatUint(state, 10))
}
