package effects

import (
	"quickfx/pkg/scene"
)

// applyMaterials adds (or removes) each of mats to the slot list of every
// renderer. Adding is idempotent; removing an absent material is a no-op.
// Slot lists are only rewritten when they change.
func applyMaterials(renderers []*scene.Renderer, mats []*scene.Material, add bool) {
	for _, r := range renderers {
		if !r.Alive() {
			continue
		}
		slots := r.Materials()
		var changed bool
		if add {
			slots, changed = appendMissing(slots, mats)
		} else {
			slots, changed = removeAll(slots, mats)
		}
		if changed {
			r.SetMaterials(slots)
		}
	}
}

func appendMissing(slots, mats []*scene.Material) ([]*scene.Material, bool) {
	changed := false
	for _, m := range mats {
		if !containsMaterial(slots, m) {
			slots = append(slots, m)
			changed = true
		}
	}
	return slots, changed
}

func removeAll(slots, mats []*scene.Material) ([]*scene.Material, bool) {
	kept := slots[:0]
	for _, s := range slots {
		if !containsMaterial(mats, s) {
			kept = append(kept, s)
		}
	}
	return kept, len(kept) != len(slots)
}

func containsMaterial(list []*scene.Material, m *scene.Material) bool {
	for _, x := range list {
		if x == m {
			return true
		}
	}
	return false
}
