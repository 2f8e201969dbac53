// sources:
//   - https://sourceware.org/git/?p=glibc.git;a=blob;f=stdlib/random_r.c
//   - https://sourceware.org/git/?p=glibc.git;a=blob;f=stdlib/random.c
//   - https://github.com/huangqinjin/ucrt/blob/master/misc/rand.cpp
package crt

import (
	"fmt"
	"strings"
)

type Platform uint8

const (
	Linux Platform = iota
	Windows
	// Glibc is the default glibc rand(), the TYPE_3 additive generator.
	Glibc
)

func (p Platform) String() string {
	switch p {
	case Linux:
		return "linux"
	case Windows:
		return "windows"
	case Glibc:
		return "glibc"
	}
	return fmt.Sprintf("Platform(%d)", uint8(p))
}

func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(s) {
	case "linux":
		return Linux, nil
	case "windows", "msvcrt":
		return Windows, nil
	case "glibc", "type3":
		return Glibc, nil
	}
	return 0, fmt.Errorf("unknown platform %q", s)
}

type params struct {
	multiplier uint32
	increment  uint32
	shift      uint32
	mask       uint32
	// zeroSeed replaces a seed of 0.
	zeroSeed uint32
}

var table = [...]params{
	// glibc random_r TYPE_0
	Linux: {multiplier: 1103515245, increment: 12345, shift: 0, mask: 0x7FFFFFFF, zeroSeed: 1},
	// msvcrt rand
	Windows: {multiplier: 214013, increment: 2531011, shift: 16, mask: 0x7FFF, zeroSeed: 0},
}

const (
	deg3 = 31
	sep3 = 3
)

// additive is glibc's TYPE_3 state: r[i] = r[i-3] + r[i-31].
type additive struct {
	state [deg3]uint32
	front int
	rear  int
}

func (a *additive) seed(seed uint32) {
	if seed == 0 {
		seed = 1
	}
	a.state[0] = seed
	word := int32(seed)
	for i := 1; i < deg3; i++ {
		// 16807 * word % 2147483647 without overflowing 31 bits
		hi, lo := word/127773, word%127773
		word = 16807*lo - 2836*hi
		if word < 0 {
			word += 2147483647
		}
		a.state[i] = uint32(word)
	}
	a.front, a.rear = sep3, 0
	for i := 0; i < 10*deg3; i++ {
		a.next()
	}
}

func (a *additive) next() uint32 {
	a.state[a.front] += a.state[a.rear]
	v := a.state[a.front] >> 1
	if a.front++; a.front == deg3 {
		a.front = 0
	}
	if a.rear++; a.rear == deg3 {
		a.rear = 0
	}
	return v
}

type Source struct {
	p     *params
	state uint32
	add   *additive
}

func NewSource(p Platform) *Source {
	switch {
	case p == Glibc:
		return &Source{add: new(additive)}
	case int(p) < len(table):
		return &Source{p: &table[p]}
	}
	panic("crt: " + p.String())
}

func (s *Source) Srand(seed uint32) {
	if s.add != nil {
		s.add.seed(seed)
		return
	}
	if seed == 0 {
		seed = s.p.zeroSeed
	}
	s.state = seed
}

func (s *Source) Rand() uint32 {
	if s.add != nil {
		return s.add.next()
	}
	s.state = s.state*s.p.multiplier + s.p.increment
	return (s.state >> s.p.shift) & s.p.mask
}

// Rand returns the first value of a stream freshly seeded with seed.
func Rand(p Platform, seed uint32) uint32 {
	s := NewSource(p)
	s.Srand(seed)
	return s.Rand()
}
