package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color uses 0-255 RGB components.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

var namedColors = map[string]Color{
	"black":     Black,
	"white":     White,
	"navy":      {0x1a, 0x1a, 0x2e},
	"darkgreen": {0x0d, 0x3d, 0x2e},
	"blue":      {0x00, 0x00, 0xff},
	"red":       {0xff, 0x00, 0x00},
	"green":     {0x00, 0x80, 0x00},
	"yellow":    {0xff, 0xff, 0x00},
	"cyan":      {0x00, 0xff, 0xff},
	"magenta":   {0xff, 0x00, 0xff},
	"gray":      {0x80, 0x80, 0x80},
	"grey":      {0x80, 0x80, 0x80},
}

// ParseColor accepts a color name from the fixed table or six hex digits with
// or without a leading '#'. Anything else resolves to black.
func ParseColor(s string) Color {
	c := strings.ToLower(strings.TrimSpace(s))
	if c == "" {
		return Black
	}
	if named, ok := namedColors[c]; ok {
		return named
	}
	hex := strings.TrimPrefix(c, "#")
	if len(hex) != 6 {
		return Black
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Black
	}
	return Color{R: int(v>>16&0xff), G: int(v>>8&0xff), B: int(v&0xff)}
}

// Hex formats the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ToRGBA converts to an opaque image/color value.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
}
