package crack

import (
	"context"
	"math/big"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Jx2f/AribasRand/pkg/crypto/aribas"
	"github.com/Jx2f/AribasRand/pkg/crypto/crt"
	"github.com/Jx2f/AribasRand/pkg/logger"
)

const chunkSize = 1 << 16

var (
	ErrNoObservations = errors.New("no observations")
	ErrInvertedWindow = errors.New("window start after window end")
	ErrWindowTooLarge = errors.New("window too large")
)

// Observation is one draw seen right after seeding: Value was returned
// for Modulus.
type Observation struct {
	Modulus *big.Int
	Value   *big.Int
}

type Job struct {
	Platform     crt.Platform
	From, To     uint32
	Observations []Observation
}

type Match struct {
	Timestamp uint32
	State     uint64
}

type Cracker struct {
	Workers   int
	MaxWindow uint32
}

func (j *Job) Validate(maxWindow uint32) error {
	if len(j.Observations) == 0 {
		return ErrNoObservations
	}
	for i, o := range j.Observations {
		if o.Modulus == nil || o.Value == nil {
			return errors.Errorf("observation %d incomplete", i)
		}
	}
	if j.From > j.To {
		return errors.Wrapf(ErrInvertedWindow, "%d > %d", j.From, j.To)
	}
	if maxWindow != 0 && j.To-j.From >= maxWindow {
		return errors.Wrapf(ErrWindowTooLarge, "%d timestamps, limit %d", uint64(j.To-j.From)+1, maxWindow)
	}
	return nil
}

// Replays reports whether seeding with timestamp reproduces every
// observation. The returned state is the one right after seeding.
func (j *Job) Replays(g *aribas.Generator, timestamp uint32) (uint64, bool) {
	state := g.SeedTimestamp(timestamp)
	for _, o := range j.Observations {
		if g.Random(o.Modulus).Cmp(o.Value) != 0 {
			return state, false
		}
	}
	return state, true
}

// Search scans the job window and returns the matches in timestamp order.
func (c *Cracker) Search(ctx context.Context, job *Job) ([]Match, error) {
	if err := job.Validate(c.MaxWindow); err != nil {
		return nil, err
	}
	logger.Debug().Str("platform", job.Platform.String()).
		Uint32("from", job.From).Uint32("to", job.To).
		Int("observations", len(job.Observations)).Msg("Crack search started")

	var (
		mu      sync.Mutex
		matches []Match
	)
	eg, ctx := errgroup.WithContext(ctx)
	if c.Workers > 0 {
		eg.SetLimit(c.Workers)
	}
	for lo := uint64(job.From); lo <= uint64(job.To); lo += chunkSize {
		lo := lo
		hi := lo + chunkSize - 1
		if hi > uint64(job.To) {
			hi = uint64(job.To)
		}
		eg.Go(func() error {
			g := aribas.New(job.Platform)
			for ts := lo; ts <= hi; ts++ {
				if ts&0xFFF == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if state, ok := job.Replays(g, uint32(ts)); ok {
					mu.Lock()
					matches = append(matches, Match{Timestamp: uint32(ts), State: state})
					mu.Unlock()
				}
			}
			return nil
		})
		if ctx.Err() != nil {
			break
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "crack search aborted")
	}
	sort.Slice(matches, func(a, b int) bool { return matches[a].Timestamp < matches[b].Timestamp })
	logger.Debug().Int("matches", len(matches)).Msg("Crack search finished")
	return matches, nil
}
