// Package rle tokenizes the multistate run-length notation used for icons.
//
// A pattern is a sequence of runs, each an optional decimal count followed
// by a symbol: '.', 'A'..'X', a two-letter token 'p'..'y' + 'A'..'X', or
// the row separator '$'. Whitespace is ignored and '!' ends the pattern.
package rle

import (
	"strconv"

	"github.com/gogpu/icons/symbol"
)

// MaxCount bounds a single run so malformed input cannot allocate
// unbounded rows.
const MaxCount = 1 << 12

// Run is one (count, symbol) pair. RowEnd runs carry no symbol.
type Run struct {
	Count  int
	Symbol symbol.Symbol
	RowEnd bool
}

// SyntaxError reports the first byte sequence that is not a run.
type SyntaxError struct {
	Offset   int
	Fragment string
	Reason   string
}

func (e *SyntaxError) Error() string {
	return "rle: " + e.Reason + " at offset " + strconv.Itoa(e.Offset) + ": " + strconv.Quote(e.Fragment)
}

// Scan splits text into runs.
func Scan(text string) ([]Run, error) {
	var runs []Run
	i := 0
	for i < len(text) {
		c := text[i]
		switch c {
		case ' ', '\t', '\r', '\n':
			i++
			continue
		case '!':
			return runs, nil
		}

		start := i
		count := 1
		if isDigit(c) {
			j := i
			for j < len(text) && isDigit(text[j]) {
				j++
			}
			n, err := strconv.Atoi(text[i:j])
			if err != nil || n > MaxCount {
				return nil, &SyntaxError{Offset: start, Fragment: text[i:j], Reason: "run count too large"}
			}
			if n == 0 {
				return nil, &SyntaxError{Offset: start, Fragment: text[i:j], Reason: "zero run count"}
			}
			count = n
			i = j
			if i == len(text) {
				return nil, &SyntaxError{Offset: start, Fragment: text[start:], Reason: "run count without symbol"}
			}
			c = text[i]
		}

		switch {
		case c == '$':
			runs = append(runs, Run{Count: count, RowEnd: true})
			i++
		case c == '.' || symbol.IsPositionLetter(c):
			s, _ := symbol.Parse(text[i : i+1])
			runs = append(runs, Run{Count: count, Symbol: s})
			i++
		case symbol.IsBlockLetter(c) && i+1 < len(text):
			s, err := symbol.Parse(text[i : i+2])
			if err != nil {
				return nil, &SyntaxError{Offset: start, Fragment: text[start : i+2], Reason: "invalid symbol"}
			}
			runs = append(runs, Run{Count: count, Symbol: s})
			i += 2
		default:
			end := i + 1
			for end < len(text) && end-start < 8 && !isSpace(text[end]) {
				end++
			}
			return nil, &SyntaxError{Offset: start, Fragment: text[start:end], Reason: "invalid symbol"}
		}
	}
	return runs, nil
}

// Rows expands runs into rows of symbols. A row-end run with count n closes
// the current row and adds n-1 empty rows. The final row is always
// included, even when empty, so a trailing row end yields an empty last row.
func Rows(runs []Run) [][]symbol.Symbol {
	var (
		rows [][]symbol.Symbol
		row  []symbol.Symbol
	)
	for _, r := range runs {
		if r.RowEnd {
			rows = append(rows, row)
			for range r.Count - 1 {
				rows = append(rows, nil)
			}
			row = nil
			continue
		}
		for range r.Count {
			row = append(row, r.Symbol)
		}
	}
	return append(rows, row)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
