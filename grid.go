package icons

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gogpu/icons/internal/rle"
	"github.com/gogpu/icons/symbol"
)

// Height is the side length of every icon in a segment.
type Height int

// Supported icon heights.
const (
	Height7  Height = 7
	Height15 Height = 15
	Height31 Height = 31
)

// heights lists the supported heights in tie-break order.
var heights = [...]Height{Height7, Height15, Height31}

// Valid reports whether h is one of 7, 15 or 31.
func (h Height) Valid() bool {
	for _, v := range heights {
		if h == v {
			return true
		}
	}
	return false
}

func (h Height) check() error {
	if !h.Valid() {
		return &ConfigError{Field: "height", Reason: "unsupported height " + strconv.Itoa(int(h)), Err: ErrInvalidHeight}
	}
	return nil
}

// NearestHeight returns the supported height closest to dim.
// Ties go to the smaller height.
func NearestHeight(dim int) Height {
	best := heights[0]
	for _, h := range heights[1:] {
		if abs(dim-int(h)) < abs(dim-int(best)) {
			best = h
		}
	}
	return best
}

// Grid is a square icon of symbols, Height cells on each side.
// Grids are immutable once built.
type Grid struct {
	height Height
	cells  []symbol.Symbol // row-major
}

// Height returns the side length of g.
func (g *Grid) Height() Height { return g.height }

// At returns the symbol at column x, row y.
func (g *Grid) At(x, y int) symbol.Symbol {
	return g.cells[y*int(g.height)+x]
}

// Rows returns the pixmap rows of g. Each row is 2*Height bytes; a wide
// minted symbol is a single two-byte rune, so such rows hold fewer runes
// than bytes.
func (g *Grid) Rows() []string {
	h := int(g.height)
	rows := make([]string, h)
	var sb strings.Builder
	for y := range h {
		sb.Reset()
		for x := range h {
			sb.WriteString(g.cells[y*h+x].Cell())
		}
		rows[y] = sb.String()
	}
	return rows
}

// Equal reports whether g and o have the same height and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.height != o.height || len(g.cells) != len(o.cells) {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// SolidGrid returns a grid with every cell set to s.
func SolidGrid(s symbol.Symbol, h Height) (*Grid, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	cells := make([]symbol.Symbol, int(h)*int(h))
	for i := range cells {
		cells[i] = s
	}
	return &Grid{height: h, cells: cells}, nil
}

// DecodeGrid decodes one state's run-length text into a grid of height h.
//
// Content is trimmed of the leading background columns shared by all rows,
// right-padded to its widest row and centred horizontally. With n content
// rows, n/2 filler rows go above the content and the rest below, so short
// icons sit in the upper half.
func DecodeGrid(text string, h Height) (*Grid, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	rows, err := decodeRows(text)
	if err != nil {
		return nil, err
	}
	return layout(rows, h)
}

// Measure returns the width and height in cells of the content described
// by text, after trimming shared leading background.
func Measure(text string) (w, h int, err error) {
	rows, err := decodeRows(text)
	if err != nil {
		return 0, 0, err
	}
	rows = trimLeading(rows)
	return widest(rows), len(rows), nil
}

func decodeRows(text string) ([][]symbol.Symbol, error) {
	runs, err := rle.Scan(text)
	if err != nil {
		var se *rle.SyntaxError
		if errors.As(err, &se) {
			return nil, &FormatError{Fragment: se.Fragment, Err: err}
		}
		return nil, &FormatError{Err: err}
	}
	return rle.Rows(runs), nil
}

func layout(rows [][]symbol.Symbol, h Height) (*Grid, error) {
	rows = trimLeading(rows)
	side := int(h)
	width := widest(rows)
	if width > side || len(rows) > side {
		return nil, &FormatError{
			Fragment: strconv.Itoa(width) + "x" + strconv.Itoa(len(rows)),
			Err:      ErrIconTooLarge,
		}
	}

	g := &Grid{height: h, cells: make([]symbol.Symbol, side*side)}
	for i := range g.cells {
		g.cells[i] = symbol.Background
	}
	left := (side - width) / 2
	top := min(len(rows)/2, side-len(rows))
	for y, row := range rows {
		copy(g.cells[(top+y)*side+left:], row)
	}
	return g, nil
}

// trimLeading drops the background cells every row starts with. An empty
// row has none, so it disables trimming.
func trimLeading(rows [][]symbol.Symbol) [][]symbol.Symbol {
	shared := -1
	for _, row := range rows {
		n := 0
		for n < len(row) && row[n] == symbol.Background {
			n++
		}
		if shared < 0 || n < shared {
			shared = n
		}
	}
	if shared <= 0 {
		return rows
	}
	out := make([][]symbol.Symbol, len(rows))
	for i, row := range rows {
		out[i] = row[shared:]
	}
	return out
}

func widest(rows [][]symbol.Symbol) int {
	w := 0
	for _, row := range rows {
		w = max(w, len(row))
	}
	return w
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
