// Package aribas replays the pseudo-random stream of the ARIBAS
// interpreter's random() builtin.
//
// The state rr is a 64-bit word of four 16-bit lanes, lane 0 in the low
// bits. Lane 3 is a guard word and is 1 after every seed or step.
package aribas

import (
	"fmt"
	"math/big"
	"time"

	"github.com/Jx2f/AribasRand/pkg/clock"
	"github.com/Jx2f/AribasRand/pkg/crypto/crt"
)

const (
	increment = 57777
	scale     = 56857

	mask32 = 0xFFFF_FFFF
	mask48 = 0xFFFF_FFFF_FFFF
	mask64 = 0xFFFF_FFFF_FFFF_FFFF
)

// Generator is not safe for concurrent use.
type Generator struct {
	rr       uint64
	platform crt.Platform
}

func New(platform crt.Platform) *Generator {
	return &Generator{platform: platform}
}

func (g *Generator) Platform() crt.Platform { return g.platform }

func (g *Generator) State() uint64 { return g.rr }

func (g *Generator) setLane(n uint, word uint16) {
	g.rr &^= 0xFFFF << (n * 16)
	g.rr |= uint64(word) << (n * 16)
}

func (g *Generator) lane(n uint) uint16 {
	return uint16(g.rr >> (n * 16))
}

// Seed sets the state to seed with the guard lane forced to 1.
func (g *Generator) Seed(seed uint64) uint64 {
	g.rr = seed
	g.setLane(3, 1)
	return g.rr
}

// SeedTimestamp initializes the state the way ARIBAS does at startup,
// from two draws of the platform rand() seeded with timestamp.
func (g *Generator) SeedTimestamp(timestamp uint32) uint64 {
	g.rr = 0
	g.setLane(1, uint16(crt.Rand(g.platform, timestamp)))
	g.step3()
	g.setLane(0, uint16(crt.Rand(g.platform, timestamp)))
	g.step3()
	g.setLane(3, 1)
	return g.rr
}

func (g *Generator) SeedNow(c clock.Clock) uint64 {
	return g.SeedTimestamp(Timestamp(c))
}

// Timestamp returns the clock reading in Unix seconds truncated to 32
// bits. It panics if the clock reads before the Unix epoch.
func Timestamp(c clock.Clock) uint32 {
	now := c.Now()
	if now.Before(time.Unix(0, 0)) {
		panic(fmt.Sprintf("aribas: clock reads %v, before the Unix epoch", now))
	}
	return uint32(now.Unix())
}

func (g *Generator) step3() { g.step(mask48, mask64, 48) }
func (g *Generator) step2() { g.step(mask32, mask48, 32) }

// step advances the state by an additive then a multiplicative pass on
// the narrow field. A carry out of the narrow field is added into the
// wide field, replacing its upper part instead of being discarded.
func (g *Generator) step(narrow, wide uint64, shift uint) {
	rr := g.rr

	a := rr&narrow + increment
	if (a&^narrow)>>shift == 0 {
		rr = rr&^narrow + a
	} else {
		rr = rr&^wide + a
	}

	a = (rr & narrow) * scale
	if (a&^narrow)>>shift == 0 {
		rr = rr&^narrow + a
	} else {
		rr = rr&^wide + a
	}

	g.rr = rr
	g.setLane(3, 1)
}

// Random returns the next value in [0, |m|). A zero modulus yields 0.
func (g *Generator) Random(m *big.Int) *big.Int {
	n := len(m.Bytes())
	if n <= 2 {
		g.step2()
		if m.Sign() == 0 {
			return new(big.Int)
		}
		v := new(big.Int).SetUint64(uint64(g.lane(1)))
		return v.Rem(v, m)
	}
	result := new(big.Int)
	word := new(big.Int)
	n16 := (n + 1) / 2
	for i := 0; i < n16; i += 2 {
		g.step3()
		word.SetUint64((g.rr >> 16) & mask32)
		result.Or(result, word.Lsh(word, uint(i*16)))
	}
	// ARIBAS drops the 16 bits just above the modulus width.
	word.SetUint64(0xFFFF)
	result.AndNot(result, word.Lsh(word, uint(n*8)))
	return result.Rem(result, m)
}

// String dumps the lanes high to low.
func (g *Generator) String() string {
	return fmt.Sprintf("rr = %d %d %d %d", g.lane(3), g.lane(2), g.lane(1), g.lane(0))
}
