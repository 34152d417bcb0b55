// Package icons compiles the @ICONS segment of a cellular-automaton rule
// into the XPM pixmap text a simulator host loads as per-state icons.
//
// # Overview
//
// An icon segment starts with a colour header, one "<state> <hex>" line per
// colour, followed by one block per state:
//
//	1 0F0
//	2 F00
//
//	#1
//	x = 3, y = 3
//	.A$2.A$3A!
//
// Each block is run-length text in the multistate notation: an optional
// count before a symbol, '$' between rows. Symbols are defined by package
// [github.com/gogpu/icons/symbol].
//
// # Quick Start
//
//	arr, err := icons.Parse(lines, icons.ColorMap{2: "FF0000"})
//	if err != nil {
//	    return err
//	}
//	for line := range arr.Lines() {
//	    fmt.Println(line)
//	}
//
// # Sizing
//
// Every icon in a segment shares one height, 7, 15 or 31, chosen as the
// value nearest the largest "x = W, y = H" declaration. Content is trimmed
// of shared leading background, centred horizontally and padded to a
// square; an icon of n rows gets n/2 filler rows above it.
//
// # Missing States
//
// States below the highest declared state that have no icon are filled
// with a solid icon in a fallback colour from a [ColorSource], usually the
// rule's @COLORS segment. Fallback colours reuse an existing symbol when
// the segment already has one, otherwise a fresh wide symbol is minted.
//
// # Errors
//
// Parse returns the first error of a segment: [*ConfigError],
// [*FormatError], [*ValueError] or [*ReferenceError]. No partial output is
// produced for a failed segment.
package icons

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
