// Package graphics provides the value-space primitives the animation engine
// interpolates over: ARGB colors and 2D offsets/rectangles for timeline
// coordinate math.
package graphics

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/colornames"
)

// maxByte is the maximum value of a byte, used for color normalization.
const maxByte = 255.0

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA constructs a Color from red, green, blue bytes and alpha (0-1).
func RGBA(r, g, b uint8, a float64) Color {
	return Color(uint32(alpha01ToByte(a))<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGBA8 constructs a Color from red, green, blue, alpha bytes (all 0-255).
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// RGBAF returns normalized color components (0.0 to 1.0).
func (c Color) RGBAF() (r, g, b, a float64) {
	return float64(uint8(c>>16)) / maxByte,
		float64(uint8(c>>8)) / maxByte,
		float64(uint8(c)) / maxByte,
		float64(uint8(c>>24)) / maxByte
}

// Alpha returns the alpha component as a value from 0.0 (transparent) to 1.0 (opaque).
func (c Color) Alpha() float64 {
	return float64(uint8(c>>24)) / maxByte
}

// WithAlpha returns a copy of the color with the given alpha (0-1).
func (c Color) WithAlpha(a float64) Color {
	return Color(uint32(alpha01ToByte(a))<<24 | uint32(c)&0x00FFFFFF)
}

// Hex returns the color as "#RRGGBB" when fully opaque, "#AARRGGBB" otherwise.
func (c Color) Hex() string {
	if uint8(c>>24) == 0xFF {
		return fmt.Sprintf("#%06X", uint32(c)&0x00FFFFFF)
	}
	return fmt.Sprintf("#%08X", uint32(c))
}

// Lerp interpolates componentwise between c and other in 8-bit sRGB space.
// t is clamped to [0, 1] per channel only through rounding; overshoot easing
// values are clamped so channels stay within byte range.
func (c Color) Lerp(other Color, t float64) Color {
	lerpChan := func(a, b uint8) uint8 {
		v := math.Round(float64(a) + (float64(b)-float64(a))*t)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return RGBA8(
		lerpChan(uint8(c>>16), uint8(other>>16)),
		lerpChan(uint8(c>>8), uint8(other>>8)),
		lerpChan(uint8(c), uint8(other)),
		lerpChan(uint8(c>>24), uint8(other>>24)),
	)
}

// ParseColor parses "#RGB", "#RRGGBB", "#AARRGGBB" hex notation or an SVG 1.1
// color name ("red", "rebeccapurple", ...).
func ParseColor(s string) (Color, error) {
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if rgba, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGBA8(rgba.R, rgba.G, rgba.B, rgba.A), nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

func parseHex(s string) (Color, error) {
	var v uint32
	for _, r := range s {
		d, ok := hexDigit(r)
		if !ok {
			return 0, fmt.Errorf("invalid hex color %q", "#"+s)
		}
		v = v<<4 | uint32(d)
	}
	switch len(s) {
	case 3:
		r := (v >> 8) & 0xF
		g := (v >> 4) & 0xF
		b := v & 0xF
		return RGB(uint8(r<<4|r), uint8(g<<4|g), uint8(b<<4|b)), nil
	case 6:
		return Color(0xFF000000 | v), nil
	case 8:
		return Color(v), nil
	default:
		return 0, fmt.Errorf("invalid hex color %q", "#"+s)
	}
}

func hexDigit(r rune) (uint8, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return uint8(r-'A') + 10, true
	}
	return 0, false
}

// alpha01ToByte converts a 0-1 alpha to 0-255 with proper rounding.
func alpha01ToByte(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

// clamp01 clamps a value to the range [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)
