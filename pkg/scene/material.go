package scene

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// MaterialKind tags what a material is for. Effects compare kinds instead
// of material names to recognize slots they or a sibling effect own.
type MaterialKind int

const (
	KindStandard MaterialKind = iota
	KindOutlineMask
	KindOutlineFill
	KindOutlineEmpty
	KindBlinker
	KindBlinkerEmpty
	KindOverlay
)

var materialKindNames = map[MaterialKind]string{
	KindStandard:     "standard",
	KindOutlineMask:  "outline_mask",
	KindOutlineFill:  "outline_fill",
	KindOutlineEmpty: "outline_empty",
	KindBlinker:      "blinker",
	KindBlinkerEmpty: "blinker_empty",
	KindOverlay:      "overlay",
}

func (k MaterialKind) String() string {
	if s, ok := materialKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("MaterialKind(%d)", int(k))
}

// IsEffect reports whether the kind is an effect shader layered on top of
// a renderer's own materials.
func (k MaterialKind) IsEffect() bool {
	switch k {
	case KindOutlineMask, KindOutlineFill, KindBlinker, KindOverlay:
		return true
	}
	return false
}

// ParseMaterialKind converts a kind name back to its MaterialKind.
func ParseMaterialKind(s string) (MaterialKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KindStandard, nil
	}
	for k, name := range materialKindNames {
		if name == s {
			return k, nil
		}
	}
	return KindStandard, fmt.Errorf("unknown material kind %q", s)
}

// CompareFunc is a depth/stencil comparison, stored in material float
// parameters.
type CompareFunc int

const (
	CompareDisabled CompareFunc = iota
	CompareNever
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// StencilOp is a stencil buffer operation, stored in material float
// parameters.
type StencilOp int

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
)

// Material is a named set of shader parameters. Templates live in a
// Library; effects own instances created from them.
type Material struct {
	Name   string
	Kind   MaterialKind
	Shader string

	Floats  map[string]float32
	Vectors map[string]mgl32.Vec4

	destroyed bool
}

// NewMaterial returns a material with empty parameter maps.
func NewMaterial(name string, kind MaterialKind, shader string) *Material {
	return &Material{
		Name:    name,
		Kind:    kind,
		Shader:  shader,
		Floats:  make(map[string]float32),
		Vectors: make(map[string]mgl32.Vec4),
	}
}

// SetFloat sets a float parameter.
func (m *Material) SetFloat(name string, v float32) {
	if m.Floats == nil {
		m.Floats = make(map[string]float32)
	}
	m.Floats[name] = v
}

// Float returns a float parameter.
func (m *Material) Float(name string) (float32, bool) {
	v, ok := m.Floats[name]
	return v, ok
}

// SetColor sets an RGBA color parameter.
func (m *Material) SetColor(name string, c mgl32.Vec4) {
	m.SetVector(name, c)
}

// SetVector sets a vector parameter.
func (m *Material) SetVector(name string, v mgl32.Vec4) {
	if m.Vectors == nil {
		m.Vectors = make(map[string]mgl32.Vec4)
	}
	m.Vectors[name] = v
}

// Vector returns a vector parameter.
func (m *Material) Vector(name string) (mgl32.Vec4, bool) {
	v, ok := m.Vectors[name]
	return v, ok
}

// Destroy releases the material. Renderers must not reference a destroyed
// material; the GL renderer skips such slots.
func (m *Material) Destroy() {
	m.destroyed = true
}

// Destroyed reports whether Destroy was called.
func (m *Material) Destroyed() bool {
	return m.destroyed
}

func (m *Material) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.Kind)
}
