package effects

import (
	"quickfx/pkg/scene"
)

// rendererSet is the set of renderers an effect instance has already
// classified. Membership only.
type rendererSet map[*scene.Renderer]struct{}

func (s rendererSet) add(r *scene.Renderer) bool {
	if _, ok := s[r]; ok {
		return false
	}
	s[r] = struct{}{}
	return true
}

func (s rendererSet) contains(r *scene.Renderer) bool {
	_, ok := s[r]
	return ok
}

// prune drops destroyed renderers and returns how many were removed.
func (s rendererSet) prune() int {
	n := 0
	for r := range s {
		if !r.Alive() {
			delete(s, r)
			n++
		}
	}
	return n
}

// appliedList is the ordered set of renderers carrying the effect's
// materials.
type appliedList struct {
	items []*scene.Renderer
	index rendererSet
}

func newAppliedList() appliedList {
	return appliedList{index: make(rendererSet)}
}

// add appends r unless it is already present.
func (l *appliedList) add(r *scene.Renderer) bool {
	if !l.index.add(r) {
		return false
	}
	l.items = append(l.items, r)
	return true
}

func (l *appliedList) len() int {
	return len(l.items)
}

// prune drops destroyed renderers, keeping order, and returns how many
// were removed.
func (l *appliedList) prune() int {
	kept := l.items[:0]
	for _, r := range l.items {
		if r.Alive() {
			kept = append(kept, r)
		} else {
			delete(l.index, r)
		}
	}
	n := len(l.items) - len(kept)
	for i := len(kept); i < len(l.items); i++ {
		l.items[i] = nil
	}
	l.items = kept
	return n
}

// registry holds the RegisteredSet and AppliedSet of one effect instance.
type registry struct {
	registered rendererSet
	applied    appliedList
}

func newRegistry() registry {
	return registry{
		registered: make(rendererSet),
		applied:    newAppliedList(),
	}
}

// prune removes destroyed renderers from both sets.
func (r *registry) prune() (registered, applied int) {
	return r.registered.prune(), r.applied.prune()
}
