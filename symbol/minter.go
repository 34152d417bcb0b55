package symbol

import (
	"errors"
	"math/rand/v2"
	"unicode"
)

// Mint pool bounds. Every rune in [poolFirst, poolLast] encodes to exactly
// two UTF-8 bytes, so a minted symbol fills one pixmap cell by itself and
// can never equal an ASCII codec token.
const (
	poolFirst = 0x100
	poolLast  = 0x7FF
)

// ErrPoolExhausted is returned by MintUnused when every pool rune is taken.
var ErrPoolExhausted = errors.New("symbol: mint pool exhausted")

var pool = func() []rune {
	runes := make([]rune, 0, poolLast-poolFirst+1)
	for r := rune(poolFirst); r <= poolLast; r++ {
		if unicode.IsPrint(r) {
			runes = append(runes, r)
		}
	}
	return runes
}()

func inPool(r rune) bool {
	return r >= poolFirst && r <= poolLast && unicode.IsPrint(r)
}

// PoolSize returns the number of distinct symbols a Minter can produce.
func PoolSize() int { return len(pool) }

// Minter produces Wide symbols for colours that have no state symbol.
// A Minter is not safe for concurrent use.
type Minter struct {
	rng *rand.Rand
}

// NewMinter returns a Minter drawing from rng. A nil rng uses a randomly
// seeded source.
func NewMinter(rng *rand.Rand) *Minter {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Minter{rng: rng}
}

// NewSeededMinter returns a Minter with a deterministic sequence.
func NewSeededMinter(seed uint64) *Minter {
	return NewMinter(rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)))
}

// Mint returns a random pool symbol. It does not check for reuse.
func (m *Minter) Mint() Symbol {
	return Symbol{kind: Wide, char: pool[m.rng.IntN(len(pool))]}
}

// MintUnused returns a pool symbol for which used reports false.
// It retries random draws first and falls back to a linear scan so that
// it terminates even when the pool is nearly full.
func (m *Minter) MintUnused(used func(Symbol) bool) (Symbol, error) {
	const attempts = 64
	for range attempts {
		s := m.Mint()
		if !used(s) {
			return s, nil
		}
	}
	start := m.rng.IntN(len(pool))
	for i := range pool {
		s := Symbol{kind: Wide, char: pool[(start+i)%len(pool)]}
		if !used(s) {
			return s, nil
		}
	}
	return Symbol{}, ErrPoolExhausted
}
