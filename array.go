package icons

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/icons/symbol"
)

var (
	reColor = regexp.MustCompile(`^(\d+|[.A-X]|[p-y][A-X])\s+#?([0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})`)
	reDims  = regexp.MustCompile(`^#?\s*x\s*=\s*(\d+)\s*,\s*y\s*=\s*(\d+)`)
	reDigit = regexp.MustCompile(`\d+`)
)

// ColorSource resolves fallback colours for states without an icon,
// typically from the rule's @COLORS segment.
type ColorSource interface {
	Color(state int) (string, bool)
}

// ColorMap is a ColorSource backed by a map of state to hex colour.
type ColorMap map[int]string

// Color implements ColorSource.
func (m ColorMap) Color(state int) (string, bool) {
	c, ok := m[state]
	return c, ok
}

// Dims is one "x = W, y = H" declaration.
type Dims struct {
	W, H int
}

// block is the run-length text collected for one state.
type block struct {
	line int // line of the state marker
	text strings.Builder
}

// IconArray is a parsed icon segment: a colour table and one grid per state,
// all sharing a single height. It is immutable after Parse returns.
type IconArray struct {
	height Height
	colors *ColorTable
	icons  map[int]*Grid
	dims   []Dims
}

// Parse builds an IconArray from the lines of one icon segment.
// deps supplies fallback colours for states below the highest declared
// state that have no icon; it may be nil when every state has one.
//
// The first error aborts the segment; no partial array is returned.
func Parse(lines []string, deps ColorSource, opts ...Option) (*IconArray, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = newNopLogger()
	}
	if o.minter == nil {
		o.minter = symbol.NewMinter(nil)
	}

	p := &parser{
		lines: normalizeLines(lines),
		start: o.startLine,
		log:   o.logger,
	}
	colors, next, err := p.parseColors()
	if err != nil {
		return nil, err
	}
	blocks, dims, err := p.splitStates(next)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, &ConfigError{Field: "icons", Reason: "segment declares no icons", Err: ErrNoIcons}
	}

	h := o.height
	switch {
	case h != 0:
		if err := h.check(); err != nil {
			return nil, err
		}
	case len(dims) > 0:
		h = heightFromDims(dims)
	default:
		if h, err = heightFromContent(blocks); err != nil {
			return nil, err
		}
	}
	p.log.Debug("icons: height selected", "height", int(h), "declarations", len(dims))

	arr := &IconArray{
		height: h,
		colors: colors,
		icons:  make(map[int]*Grid, len(blocks)),
		dims:   dims,
	}
	for _, state := range slices.Sorted(maps.Keys(blocks)) {
		b := blocks[state]
		g, err := DecodeGrid(b.text.String(), h)
		if err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.State = state
				fe.Line = b.line
			}
			return nil, err
		}
		arr.icons[state] = g
		p.log.Debug("icons: decoded state", "state", state, "line", b.line)
	}

	if err := arr.fillGaps(deps, o.minter, p); err != nil {
		return nil, err
	}
	p.log.Info("icons: segment parsed",
		"states", len(arr.icons), "colors", arr.colors.Len(), "height", int(h))
	return arr, nil
}

// fillGaps gives every state in 1..max-1 without an icon a solid grid in
// its fallback colour, reusing a table symbol for that colour when one
// exists and minting a fresh one otherwise.
func (a *IconArray) fillGaps(deps ColorSource, m *symbol.Minter, p *parser) error {
	maxState := 0
	for state := range a.icons {
		maxState = max(maxState, state)
	}
	for state := 1; state < maxState; state++ {
		if _, ok := a.icons[state]; ok {
			continue
		}
		if deps == nil {
			return &ReferenceError{State: state, Line: p.start}
		}
		raw, ok := deps.Color(state)
		if !ok {
			return &ReferenceError{State: state, Line: p.start}
		}
		color, err := NormalizeHex(raw)
		if err != nil {
			return &ReferenceError{State: state, Line: p.start, Err: err}
		}

		sym, ok := a.colors.Lookup(color)
		if !ok {
			sym, err = m.MintUnused(a.colors.Has)
			if err != nil {
				return &ReferenceError{State: state, Line: p.start, Err: err}
			}
			a.colors.Set(sym, color)
			p.log.Debug("icons: minted symbol", "state", state, "symbol", sym.String(), "color", color)
		}
		g, err := SolidGrid(sym, a.height)
		if err != nil {
			return err
		}
		a.icons[state] = g
		p.log.Debug("icons: filled gap", "state", state, "color", color)
	}
	return nil
}

// Height returns the icon height shared by every grid in the segment.
func (a *IconArray) Height() Height { return a.height }

// Colors returns the segment's colour table.
func (a *IconArray) Colors() *ColorTable { return a.colors }

// Dims returns the "x = W, y = H" declarations found in the segment.
func (a *IconArray) Dims() []Dims { return slices.Clone(a.dims) }

// States returns the states that have an icon, in ascending order.
func (a *IconArray) States() []int {
	return slices.Sorted(maps.Keys(a.icons))
}

// Icon returns the grid for state.
func (a *IconArray) Icon(state int) (*Grid, bool) {
	g, ok := a.icons[state]
	return g, ok
}

// Lines yields the pixmap text: the "XPM" marker, the size line, one line
// per colour and every grid row, states in ascending order. All lines but
// the marker are wrapped in double quotes.
func (a *IconArray) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield("XPM") {
			return
		}
		h := int(a.height)
		size := fmt.Sprintf("%d %d %d 2", h, h*len(a.icons), a.colors.Len())
		if !yield(quote(size)) {
			return
		}
		for s, c := range a.colors.All() {
			if !yield(quote(s.Cell() + " c #" + c)) {
				return
			}
		}
		for _, state := range a.States() {
			for _, row := range a.icons[state].Rows() {
				if !yield(quote(row)) {
					return
				}
			}
		}
	}
}

// WriteTo writes Lines to w, one per line.
func (a *IconArray) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for line := range a.Lines() {
		k, err := io.WriteString(w, line+"\n")
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func quote(s string) string { return `"` + s + `"` }

// parser holds per-call state while reading a segment.
type parser struct {
	lines []string
	start int
	log   *slog.Logger
}

func (p *parser) lineNo(i int) int { return p.start + i }

// parseColors reads the leading "<state-or-symbol> <hex>" lines. Blank lines
// before the first colour are skipped; afterwards the first blank or
// non-matching line ends the header. It returns the index of that line.
func (p *parser) parseColors() (*ColorTable, int, error) {
	table := NewColorTable()
	i := 0
	for ; i < len(p.lines); i++ {
		line := p.lines[i]
		if line == "" {
			if table.Len() == 0 {
				continue
			}
			break
		}
		m := reColor.FindStringSubmatch(line)
		if m == nil {
			break
		}
		sym, err := p.headerSymbol(m[1], i)
		if err != nil {
			return nil, 0, err
		}
		color, err := NormalizeHex(m[2])
		if err != nil {
			return nil, 0, &FormatError{Line: p.lineNo(i), Fragment: m[2], Err: err}
		}
		table.Set(sym, color)
	}
	return table, i, nil
}

func (p *parser) headerSymbol(id string, i int) (symbol.Symbol, error) {
	if id[0] < '0' || id[0] > '9' {
		sym, err := symbol.Parse(id)
		if err != nil {
			return symbol.Symbol{}, &ValueError{Line: p.lineNo(i), Value: id, Reason: "colour given for invalid symbol"}
		}
		return sym, nil
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return symbol.Symbol{}, &ValueError{Line: p.lineNo(i), Value: id, Reason: "colour given for invalid state"}
	}
	sym, err := symbol.Encode(n)
	if err != nil {
		return symbol.Symbol{}, &ValueError{Line: p.lineNo(i), Value: id, Reason: "colour given for invalid state"}
	}
	return sym, nil
}

// splitStates groups the lines from index from onwards by state marker.
func (p *parser) splitStates(from int) (map[int]*block, []Dims, error) {
	blocks := make(map[int]*block)
	var (
		dims []Dims
		cur  *block
		curN int
	)
	for i := from; i < len(p.lines); i++ {
		line := p.lines[i]
		if line == "" {
			continue
		}
		if m := reDims.FindStringSubmatch(line); m != nil {
			w, errW := strconv.Atoi(m[1])
			h, errH := strconv.Atoi(m[2])
			if errW != nil || errH != nil {
				return nil, nil, &ValueError{Line: p.lineNo(i), Value: line, Reason: "invalid dimensions"}
			}
			dims = append(dims, Dims{W: w, H: h})
			continue
		}
		if strings.HasPrefix(line, "#") {
			digits := reDigit.FindString(line)
			if digits == "" {
				continue // comment such as "#C ..."
			}
			n, err := strconv.Atoi(digits)
			if err != nil || n <= symbol.MinState || n > symbol.MaxState {
				return nil, nil, &ValueError{Line: p.lineNo(i), Value: digits, Reason: "icon given for invalid state"}
			}
			curN = n
			cur = blocks[n]
			if cur == nil {
				cur = &block{line: p.lineNo(i)}
				blocks[n] = cur
			}
			continue
		}
		if cur == nil {
			return nil, nil, &FormatError{Line: p.lineNo(i), Fragment: line, Err: ErrOrphanText}
		}
		cur.text.WriteString(line)
		p.log.Debug("icons: run-length line", "state", curN, "line", p.lineNo(i))
	}
	return blocks, dims, nil
}

// heightFromDims picks the supported height nearest the largest declared
// dimension.
func heightFromDims(dims []Dims) Height {
	maxDim := 0
	for _, d := range dims {
		maxDim = max(maxDim, d.W, d.H)
	}
	return NearestHeight(maxDim)
}

// heightFromContent picks the smallest height that fits every icon when the
// segment declares no dimensions.
func heightFromContent(blocks map[int]*block) (Height, error) {
	maxDim := 0
	for _, state := range slices.Sorted(maps.Keys(blocks)) {
		b := blocks[state]
		w, h, err := Measure(b.text.String())
		if err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.State = state
				fe.Line = b.line
			}
			return 0, err
		}
		maxDim = max(maxDim, w, h)
	}
	for _, h := range heights {
		if maxDim <= int(h) {
			return h, nil
		}
	}
	return Height31, nil
}

func normalizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(norm.NFC.String(l))
	}
	return out
}
