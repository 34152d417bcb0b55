package icons

import (
	"iter"

	"github.com/gogpu/icons/symbol"
)

// ColorTable maps symbols to six-digit uppercase hex colours. It keeps the
// order in which symbols were first set; setting a symbol again replaces
// its colour in place.
type ColorTable struct {
	order  []symbol.Symbol
	colors map[symbol.Symbol]string
}

// NewColorTable returns an empty table.
func NewColorTable() *ColorTable {
	return &ColorTable{colors: make(map[symbol.Symbol]string)}
}

// Set assigns color to s. Color must already be normalized.
func (t *ColorTable) Set(s symbol.Symbol, color string) {
	if _, ok := t.colors[s]; !ok {
		t.order = append(t.order, s)
	}
	t.colors[s] = color
}

// Get returns the colour of s.
func (t *ColorTable) Get(s symbol.Symbol) (string, bool) {
	c, ok := t.colors[s]
	return c, ok
}

// Has reports whether s has a colour.
func (t *ColorTable) Has(s symbol.Symbol) bool {
	_, ok := t.colors[s]
	return ok
}

// Lookup returns a symbol whose colour is color. When several symbols share
// the colour the most recently inserted one wins.
func (t *ColorTable) Lookup(color string) (symbol.Symbol, bool) {
	for i := len(t.order) - 1; i >= 0; i-- {
		if t.colors[t.order[i]] == color {
			return t.order[i], true
		}
	}
	return symbol.Symbol{}, false
}

// Len returns the number of entries.
func (t *ColorTable) Len() int { return len(t.order) }

// All iterates entries in insertion order.
func (t *ColorTable) All() iter.Seq2[symbol.Symbol, string] {
	return func(yield func(symbol.Symbol, string) bool) {
		for _, s := range t.order {
			if !yield(s, t.colors[s]) {
				return
			}
		}
	}
}
