package effects

import (
	"quickfx/pkg/scene"
)

// scanRenderers collects the renderers below root that the given effect
// kind may apply to, in depth-first pre-order.
//
// A stopper that suppresses the kind excludes the node's own renderer; with
// ApplySelfAndChildren the whole subtree is skipped. Children carrying an
// Overlay marker are never entered. Particle renderers are always
// excluded.
func scanRenderers(root *scene.Node, kind Kind) []*scene.Renderer {
	var out []*scene.Renderer
	scanNode(root, kind, &out)
	return out
}

func scanNode(n *scene.Node, kind Kind, out *[]*scene.Renderer) {
	if kind.suppressedBy(n.Stopper) {
		if n.Stopper.Target == scene.ApplySelfAndChildren {
			return
		}
	} else if r := n.Renderer(); r != nil && r.Kind() != scene.ParticleRendererKind {
		*out = append(*out, r)
	}

	for i := 0; i < n.NumChildren(); i++ {
		child := n.Child(i)
		if child.Overlay != nil {
			continue
		}
		scanNode(child, kind, out)
	}
}
