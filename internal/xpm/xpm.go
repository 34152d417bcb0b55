// Package xpm reads the pixmap text emitted for rule icons back into an
// image. It understands the subset produced by the icons package: an
// "XPM" marker line followed by double-quoted size, colour and pixel lines.
package xpm

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"iter"
	"strings"
)

// Background is the cell used for state 0. It decodes to transparent
// when the colour table does not define it.
const Background = ".."

var (
	// ErrNoMarker is returned when the first line is not the XPM marker.
	ErrNoMarker = errors.New("xpm: missing XPM marker")
	// ErrTruncated is returned when fewer pixel rows than declared are read.
	ErrTruncated = errors.New("xpm: truncated pixel data")
)

// Header is the parsed size line.
type Header struct {
	Width, Height int
	Colors        int
	CharsPerPixel int
}

// Decode parses lines into an image. Lines after the last pixel row are
// ignored.
func Decode(lines iter.Seq[string]) (*image.NRGBA, Header, error) {
	var (
		hdr     Header
		img     *image.NRGBA
		pal     = make(map[string]color.NRGBA)
		nr      int
		y       int
		started bool
		cols    = -1
		err     error
	)
	for l := range lines {
		nr++
		l = strings.TrimSpace(l)
		if !started {
			if l != "XPM" && !strings.HasPrefix(l, "/* XPM */") && !strings.HasPrefix(l, "! XPM2") {
				return nil, hdr, ErrNoMarker
			}
			started = true
			continue
		}
		if l == "" || strings.HasPrefix(l, "/*") {
			continue
		}
		l = strings.TrimSuffix(l, ",")
		l = strings.Trim(l, `"`)

		switch {
		case cols < 0: // size line
			hdr, err = parseHeader(l)
			if err != nil {
				return nil, hdr, fmt.Errorf("xpm: line %d: %w", nr, err)
			}
			img = image.NewNRGBA(image.Rect(0, 0, hdr.Width, hdr.Height))
			cols = hdr.Colors
		case cols > 0:
			sym, c, err := parseColor(l, hdr.CharsPerPixel)
			if err != nil {
				return nil, hdr, fmt.Errorf("xpm: line %d: %w", nr, err)
			}
			pal[sym] = c
			cols--
		default:
			if y >= hdr.Height {
				return img, hdr, nil
			}
			if err := decodeRow(img, y, l, hdr, pal); err != nil {
				return nil, hdr, fmt.Errorf("xpm: line %d: %w", nr, err)
			}
			y++
		}
	}
	if !started {
		return nil, hdr, ErrNoMarker
	}
	if img == nil || cols > 0 || y < hdr.Height {
		return nil, hdr, ErrTruncated
	}
	return img, hdr, nil
}

func parseHeader(l string) (Header, error) {
	var h Header
	n, _ := fmt.Sscanf(l, "%d %d %d %d", &h.Width, &h.Height, &h.Colors, &h.CharsPerPixel)
	if n != 4 || h.Width <= 0 || h.Height <= 0 || h.Colors < 0 || h.CharsPerPixel <= 0 {
		return h, fmt.Errorf("invalid size line %q", l)
	}
	return h, nil
}

func parseColor(l string, cpp int) (string, color.NRGBA, error) {
	sym, def, ok := strings.Cut(l, " c ")
	if !ok || len(sym) != cpp {
		return "", color.NRGBA{}, fmt.Errorf("invalid colour line %q", l)
	}
	def = strings.TrimSpace(def)
	if def == "None" {
		return sym, color.NRGBA{}, nil
	}
	c := color.NRGBA{A: 255}
	if n, _ := fmt.Sscanf(def, "#%02x%02x%02x", &c.R, &c.G, &c.B); n != 3 {
		return "", color.NRGBA{}, fmt.Errorf("invalid colour %q", def)
	}
	return sym, c, nil
}

// decodeRow splits l into cells of CharsPerPixel bytes.
func decodeRow(img *image.NRGBA, y int, l string, hdr Header, pal map[string]color.NRGBA) error {
	if len(l) != hdr.Width*hdr.CharsPerPixel {
		return fmt.Errorf("row %d is %d bytes, want %d", y, len(l), hdr.Width*hdr.CharsPerPixel)
	}
	for x := range hdr.Width {
		sym := l[x*hdr.CharsPerPixel : (x+1)*hdr.CharsPerPixel]
		c, ok := pal[sym]
		if !ok {
			if sym != Background {
				return fmt.Errorf("undefined cell %q at column %d", sym, x)
			}
			c = color.NRGBA{}
		}
		img.SetNRGBA(x, y, c)
	}
	return nil
}
