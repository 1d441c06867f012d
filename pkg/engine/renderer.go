package engine

import (
	"quickfx/pkg/scene"
)

// Renderer defines the interface for all renderers
type Renderer interface {
	// Render draws every live renderer under root. time is the number of
	// seconds since the engine started.
	Render(root *scene.Node, time float64)

	// UpdateResolution updates the rendering resolution
	UpdateResolution(width, height int)

	// Close releases resources
	Close()
}

// HeadlessRenderer builds the draw list of every frame without a GPU and
// keeps per-shader counts of the last one.
type HeadlessRenderer struct {
	width  int
	height int
	frames int
	draws  map[string]int
}

var _ Renderer = (*HeadlessRenderer)(nil)

// NewHeadlessRenderer creates a renderer that only records draw calls.
func NewHeadlessRenderer(width, height int) *HeadlessRenderer {
	return &HeadlessRenderer{
		width:  width,
		height: height,
		draws:  make(map[string]int),
	}
}

// Render implements Renderer.
func (r *HeadlessRenderer) Render(root *scene.Node, _ float64) {
	clear(r.draws)
	for _, c := range collectDraws(root) {
		r.draws[c.Material.Shader]++
	}
	r.frames++
}

// UpdateResolution implements Renderer.
func (r *HeadlessRenderer) UpdateResolution(width, height int) {
	r.width = width
	r.height = height
}

// Close implements Renderer.
func (r *HeadlessRenderer) Close() {}

// Frames returns the number of rendered frames.
func (r *HeadlessRenderer) Frames() int {
	return r.frames
}

// DrawCalls returns the number of draw calls per shader in the last frame.
func (r *HeadlessRenderer) DrawCalls() map[string]int {
	out := make(map[string]int, len(r.draws))
	for k, v := range r.draws {
		out[k] = v
	}
	return out
}
