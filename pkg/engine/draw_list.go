package engine

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"quickfx/pkg/effects"
	"quickfx/pkg/scene"
)

// Render queues. Effect passes draw after opaque geometry, the outline
// mask before its fill.
const (
	queueGeometry    = 2000
	queueTransparent = 3000
	queueOutlineMask = 3100
	queueOutlineFill = 3110
)

func renderQueue(k scene.MaterialKind) int {
	switch k {
	case scene.KindOutlineMask:
		return queueOutlineMask
	case scene.KindOutlineFill:
		return queueOutlineFill
	case scene.KindBlinker, scene.KindOverlay:
		return queueTransparent
	}
	return queueGeometry
}

// drawCall is one material slot of one renderer.
type drawCall struct {
	Renderer *scene.Renderer
	Material *scene.Material
	Submesh  int
	Model    mgl32.Mat4
	queue    int
}

// collectDraws returns one draw call per material slot of every mesh
// renderer under root, ordered by render queue and then by scene order.
// Slots past the last submesh draw the last submesh again. Placeholder
// materials and destroyed instances draw nothing.
func collectDraws(root *scene.Node) []drawCall {
	var calls []drawCall
	root.WalkDown(func(n *scene.Node) bool {
		r := n.Renderer()
		if r == nil || r.Mesh == nil || r.Mesh.SubmeshCount() == 0 {
			return scene.Continue
		}
		model := n.WorldMatrix()
		last := r.Mesh.SubmeshCount() - 1
		for i, m := range r.Materials() {
			if m == nil || m.Destroyed() || m.Shader == effects.ShaderEmpty {
				continue
			}
			calls = append(calls, drawCall{
				Renderer: r,
				Material: m,
				Submesh:  min(i, last),
				Model:    model,
				queue:    renderQueue(m.Kind),
			})
		}
		return scene.Continue
	})

	sort.SliceStable(calls, func(i, j int) bool {
		return calls[i].queue < calls[j].queue
	})
	return calls
}
