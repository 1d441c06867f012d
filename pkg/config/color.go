package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color serialized as "#rrggbb" or "#rrggbbaa".
type Color struct {
	colorful.Color
	A float64
}

// White is opaque white.
var White = Color{Color: colorful.Color{R: 1, G: 1, B: 1}, A: 1}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") || (len(s) != 7 && len(s) != 9) {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", s)
	}
	// colorful.Hex stops at the first bad digit without an error
	if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	alpha := 1.0
	if len(s) == 9 {
		a, _ := strconv.ParseUint(s[7:], 16, 8)
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{Color: c, A: alpha}, nil
}

// Hex formats the color as "#rrggbbaa".
func (c Color) Hex() string {
	a := int(c.A*255 + 0.5)
	if a < 0 {
		a = 0
	}
	if a > 255 {
		a = 255
	}
	return fmt.Sprintf("%s%02x", c.Color.Clamped().Hex(), a)
}

// Vec4 returns the color as an RGBA shader vector.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// ColorFromVec4 converts an RGBA shader vector to a Color.
func ColorFromVec4(v mgl32.Vec4) Color {
	return Color{
		Color: colorful.Color{R: float64(v[0]), G: float64(v[1]), B: float64(v[2])},
		A:     float64(v[3]),
	}
}

// MarshalYAML implements yaml.Marshaler
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (c *Color) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
