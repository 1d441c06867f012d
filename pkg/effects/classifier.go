package effects

import (
	"fmt"

	"quickfx/pkg/scene"
)

// classify splits newly seen renderers into those that can take the effect
// material directly and those that need a proxy. Every renderer it returns
// is added to registered; renderers already registered are skipped.
func classify(found []*scene.Renderer, registered rendererSet) (single, multi []*scene.Renderer) {
	for _, r := range found {
		if !registered.add(r) {
			continue
		}
		if isSingleMaterial(r) {
			single = append(single, r)
		} else {
			multi = append(multi, r)
		}
	}
	return single, multi
}

// isSingleMaterial reports whether r has one material slot of its own. A
// renderer whose second slot already holds an effect material (from this
// or another effect) counts as single.
func isSingleMaterial(r *scene.Renderer) bool {
	switch n := r.MaterialCount(); {
	case n == 0:
		panic(fmt.Sprintf("effects: renderer %q has no material slots", r.Name()))
	case n == 1:
		return true
	}
	second := r.Material(1)
	return second != nil && second.Kind.IsEffect()
}
