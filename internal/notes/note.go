// Package notes holds the ordered note list and its on-disk copy.
package notes

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTitle  = "New Note"
	UntitledTitle = "Untitled Note"
)

var ErrNotFound = errors.New("note not found")

// Note is a single note. Color is "#rrggbb".
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Matches reports whether query occurs in the title or content, ignoring case.
func (n Note) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q)
}

// RGBA returns the note colour, or white if it does not parse.
func (n Note) RGBA() color.RGBA {
	c, err := ParseHex(n.Color)
	if err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c
}

// RandomColor picks a saturated, fairly bright colour.
func RandomColor(rng *rand.Rand) string {
	r, g, b := hsvToRgb(rng.Float64()*360, 0.55+rng.Float64()*0.35, 0.75+rng.Float64()*0.25)
	return Hex(color.RGBA{R: r, G: g, B: b, A: 255})
}

// Hex formats c as "#rrggbb", dropping alpha.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// ParseHex accepts "#rgb" and "#rrggbb".
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("parse color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}
