package icons

import (
	"fmt"
	"image/color"
	"strings"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	// color.Color is premultiplied; undo it so R, G, B stay straight.
	return RGBA{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
		A: float64(a) / 65535,
	}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB" and "RRGGBB", with an optional leading '#'.
// Invalid input yields opaque black.
func Hex(hex string) RGBA {
	norm, err := NormalizeHex(hex)
	if err != nil {
		return RGBA{R: 0, G: 0, B: 0, A: 1}
	}
	var r, g, b uint32
	parseHex(norm[0:2], &r)
	parseHex(norm[2:4], &g)
	parseHex(norm[4:6], &b)
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: 1,
	}
}

// NormalizeHex returns hex as six uppercase digits. Three-digit shorthand
// is expanded by duplicating each digit, so "0f0" becomes "00FF00".
func NormalizeHex(hex string) (string, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return "", fmt.Errorf("icons: invalid hex color %q", hex)
		}
	}
	hex = strings.ToUpper(hex)
	switch len(hex) {
	case 6:
		return hex, nil
	case 3:
		return string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}), nil
	default:
		return "", fmt.Errorf("icons: hex color %q must have 3 or 6 digits", hex)
	}
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// Over composites c over an opaque background.
func (c RGBA) Over(bg RGBA) RGBA {
	return RGBA{
		R: bg.R + (c.R-bg.R)*c.A,
		G: bg.G + (c.G-bg.G)*c.A,
		B: bg.B + (c.B-bg.B)*c.A,
		A: 1,
	}
}

// to8 converts a [0, 1] component to a rounded byte.
func to8(v float64) uint8 {
	return uint8(clamp255(v*255 + 0.5))
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = RGBA{R: 0, G: 0, B: 0, A: 1}
	White       = RGBA{R: 1, G: 1, B: 1, A: 1}
	Transparent = RGBA{}
)
