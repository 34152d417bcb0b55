// Package symbol maps cell states to the compact tokens used by the icon
// run-length notation.
//
// State 0 is '.', states 1..24 are the letters 'A'..'X', and states 25..255
// are two-letter tokens: a block letter 'p'..'y' followed by a position
// letter 'A'..'X'. Every token is self-terminating at a known width, so a
// run-length stream needs no delimiters between symbols.
package symbol

import (
	"strconv"
	"unicode/utf8"
)

// Supported state range.
const (
	MinState = 0
	MaxState = 255
)

const (
	letters    = 24  // states per block
	blockFirst = 'p' // block letter for states 25..48
	blockLast  = 'y' // block letter for states 241..255
	blockBase  = 'n' // blockFirst - 2: block index 2 is the first pair block
)

// Kind identifies the shape of a Symbol.
type Kind uint8

const (
	// Invalid is the zero Kind.
	Invalid Kind = iota
	// Single is a one-byte token: '.' or 'A'..'X'.
	Single
	// Pair is a two-byte token: 'p'..'y' followed by 'A'..'X'.
	Pair
	// Wide is a single non-ASCII rune minted for colours that have no state.
	Wide
)

func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Pair:
		return "pair"
	case Wide:
		return "wide"
	default:
		return "invalid"
	}
}

// Symbol is a token in the icon notation. The zero value is invalid.
// Symbols are comparable and may be used as map keys.
type Symbol struct {
	kind  Kind
	block byte // Pair only
	char  rune
}

// Background is the symbol of state 0.
var Background = Symbol{kind: Single, char: '.'}

// Kind returns the token shape.
func (s Symbol) Kind() Kind { return s.kind }

// IsValid reports whether s is a non-zero symbol.
func (s Symbol) IsValid() bool { return s.kind != Invalid }

// String returns the token as written in run-length text.
func (s Symbol) String() string {
	switch s.kind {
	case Single, Wide:
		return string(s.char)
	case Pair:
		return string([]byte{s.block, byte(s.char)})
	default:
		return ""
	}
}

// Cell returns the two-byte pixmap cell for s. Single-byte tokens are
// doubled; pair and wide tokens are already two bytes long.
func (s Symbol) Cell() string {
	if s.kind == Single {
		return string([]byte{byte(s.char), byte(s.char)})
	}
	return s.String()
}

// RangeError reports a state outside [MinState, MaxState] or a token that
// does not name a state.
type RangeError struct {
	State int
	Token string
}

func (e *RangeError) Error() string {
	if e.Token != "" {
		return "symbol: token " + strconv.Quote(e.Token) + " does not name a state"
	}
	return "symbol: state " + strconv.Itoa(e.State) + " out of range [0, 255]"
}

// Encode returns the symbol for state.
func Encode(state int) (Symbol, error) {
	switch {
	case state < MinState || state > MaxState:
		return Symbol{}, &RangeError{State: state}
	case state == 0:
		return Background, nil
	case state <= letters:
		return Symbol{kind: Single, char: letter(state)}, nil
	}
	block := (state + letters - 1) / letters // ceil(state/24), 2..11
	return Symbol{
		kind:  Pair,
		block: byte(blockBase + block),
		char:  letter(state % letters),
	}, nil
}

// MustEncode is like Encode but panics on error.
// It is intended for constant states in tables and tests.
func MustEncode(state int) Symbol {
	s, err := Encode(state)
	if err != nil {
		panic(err)
	}
	return s
}

// Decode returns the state named by s.
func Decode(s Symbol) (int, error) {
	switch s.kind {
	case Single:
		if s.char == '.' {
			return 0, nil
		}
		if s.char >= 'A' && s.char <= 'X' {
			return int(s.char-'A') + 1, nil
		}
	case Pair:
		if s.block >= blockFirst && s.block <= blockLast && s.char >= 'A' && s.char <= 'X' {
			state := (int(s.block)-blockBase-1)*letters + int(s.char-'A') + 1
			if state <= MaxState {
				return state, nil
			}
		}
	}
	return 0, &RangeError{State: -1, Token: s.String()}
}

// Parse converts a token to a Symbol. It accepts codec tokens naming a
// state in range and single runes from the mint pool.
func Parse(token string) (Symbol, error) {
	switch len(token) {
	case 1:
		s := Symbol{kind: Single, char: rune(token[0])}
		if _, err := Decode(s); err != nil {
			return Symbol{}, err
		}
		return s, nil
	case 2:
		if token[0] < utf8.RuneSelf {
			s := Symbol{kind: Pair, block: token[0], char: rune(token[1])}
			if _, err := Decode(s); err != nil {
				return Symbol{}, err
			}
			return s, nil
		}
		r, size := utf8.DecodeRuneInString(token)
		if size == 2 && inPool(r) {
			return Symbol{kind: Wide, char: r}, nil
		}
	}
	return Symbol{}, &RangeError{State: -1, Token: token}
}

// IsBlockLetter reports whether c starts a two-letter token.
func IsBlockLetter(c byte) bool { return c >= blockFirst && c <= blockLast }

// IsPositionLetter reports whether c is a single-letter token or the second
// letter of a two-letter token.
func IsPositionLetter(c byte) bool { return c >= 'A' && c <= 'X' }

// letter returns the n-th uppercase letter, with 0 meaning the last
// position of a block.
func letter(n int) rune {
	if n == 0 {
		n = letters
	}
	return rune('A' + n - 1)
}
