package icons

import (
	"errors"
	"strconv"
)

// Sentinel errors for the icons package.
var (
	// ErrInvalidHeight is returned when an icon height is not 7, 15 or 31.
	ErrInvalidHeight = errors.New("icons: height must be 7, 15 or 31")

	// ErrIconTooLarge is returned when decoded content does not fit the
	// segment's height.
	ErrIconTooLarge = errors.New("icons: icon larger than segment height")

	// ErrNoIcons is returned when a segment declares no state icons.
	ErrNoIcons = errors.New("icons: segment declares no icons")

	// ErrOrphanText is returned for run-length text that precedes every
	// state marker.
	ErrOrphanText = errors.New("icons: run-length text before any state marker")
)

// ConfigError reports invalid structural configuration, such as an
// unsupported grid height.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return "icons: invalid config." + e.Field + ": " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FormatError reports malformed run-length text. State is 0 when the text
// is not attached to a state.
type FormatError struct {
	State    int
	Line     int
	Fragment string
	Err      error
}

func (e *FormatError) Error() string {
	msg := "icons: "
	if e.Line > 0 {
		msg += "line " + strconv.Itoa(e.Line) + ": "
	}
	if e.State > 0 {
		msg += "state " + strconv.Itoa(e.State) + ": "
	}
	msg += "malformed run-length text"
	if e.Fragment != "" {
		msg += " " + strconv.Quote(e.Fragment)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// ValueError reports a state identifier outside 1..255.
type ValueError struct {
	Line   int
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	return "icons: line " + strconv.Itoa(e.Line) + ": " + e.Reason + " " + strconv.Quote(e.Value)
}

// ReferenceError reports a state with no icon and no usable fallback colour.
// Line is the first line of the segment.
type ReferenceError struct {
	State int
	Line  int
	Err   error
}

func (e *ReferenceError) Error() string {
	msg := "icons: segment at line " + strconv.Itoa(e.Line) +
		": no icon and no fallback colour for state " + strconv.Itoa(e.State)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ReferenceError) Unwrap() error { return e.Err }
