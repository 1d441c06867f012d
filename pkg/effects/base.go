package effects

import (
	"fmt"

	"quickfx/internal/logger"
	"quickfx/pkg/scene"
)

// base is the renderer discovery and material bookkeeping shared by every
// effect kind.
type base struct {
	kind Kind
	root *scene.Node
	lib  *scene.Library
	log  *logger.Logger

	reg   registry
	synth synthesizer

	// templates are instantiated on activation into materials, in order
	templates []string
	materials []*scene.Material

	active        bool
	needsRescan   bool
	needsMaterial bool
}

func newBase(kind Kind, root *scene.Node, lib *scene.Library, log *logger.Logger, templates ...string) base {
	return base{
		kind:      kind,
		root:      root,
		lib:       lib,
		log:       log.Named(kind.String()),
		reg:       newRegistry(),
		synth:     synthesizer{kind: kind},
		templates: templates,
	}
}

// Kind returns the effect kind.
func (b *base) Kind() Kind {
	return b.kind
}

// Root returns the node the effect scans from.
func (b *base) Root() *scene.Node {
	return b.root
}

// State returns the lifecycle state.
func (b *base) State() State {
	switch {
	case !b.active:
		return Inactive
	case b.needsRescan:
		return ScanPending
	case b.needsMaterial:
		return MaterialPending
	}
	return Steady
}

// Applied returns a copy of the applied renderer list.
func (b *base) Applied() []*scene.Renderer {
	return append([]*scene.Renderer(nil), b.reg.applied.items...)
}

// Materials returns the owned material instances, nil while inactive.
func (b *base) Materials() []*scene.Material {
	return append([]*scene.Material(nil), b.materials...)
}

func (b *base) refresh() {
	b.needsRescan = true
	b.needsMaterial = true
}

func (b *base) markMaterial() {
	b.needsMaterial = true
}

// activate instantiates the owned materials and applies them to the
// renderers already known.
func (b *base) activate() error {
	if b.active {
		return nil
	}

	empty, err := b.lib.Template(b.kind.emptyTemplate())
	if err != nil {
		return fmt.Errorf("failed to activate %s: %w", b.kind, err)
	}

	mats := make([]*scene.Material, 0, len(b.templates))
	for _, name := range b.templates {
		m, err := b.lib.Instantiate(name)
		if err != nil {
			for _, created := range mats {
				created.Destroy()
			}
			return fmt.Errorf("failed to activate %s: %w", b.kind, err)
		}
		mats = append(mats, m)
	}

	b.synth.empty = empty
	b.materials = mats
	b.active = true
	b.prune()
	applyMaterials(b.reg.applied.items, b.materials, true)
	b.refresh()
	return nil
}

// deactivate strips the owned materials from every applied renderer and
// releases them.
func (b *base) deactivate() {
	if !b.active {
		return
	}
	b.prune()
	applyMaterials(b.reg.applied.items, b.materials, false)
	for _, m := range b.materials {
		m.Destroy()
	}
	b.materials = nil
	b.active = false
}

// destroy deactivates and forgets every renderer.
func (b *base) destroy() {
	b.deactivate()
	b.reg = newRegistry()
	b.needsRescan = false
	b.needsMaterial = false
}

// prune drops renderers destroyed by the host since the last frame.
func (b *base) prune() {
	registered, applied := b.reg.prune()
	if registered > 0 || applied > 0 {
		b.log.Warnf("dropped %d registered / %d applied renderers that no longer exist", registered, applied)
	}
}

// rescan discovers new renderers under the root, builds proxies for the
// multi-material ones and applies the effect materials to the result.
func (b *base) rescan() {
	found := scanRenderers(b.root, b.kind)
	single, multi := classify(found, b.reg.registered)

	created := 0
	for _, r := range multi {
		proxy, isNew := b.synth.synthesize(r)
		if proxy == nil {
			b.log.Warnf("%s has a %q child without a live renderer, skipping it",
				r.Name(), b.kind.ProxyName(r.Name()))
			continue
		}
		if isNew {
			created++
		}
		b.reg.registered.add(proxy)
		single = append(single, proxy)
	}

	added := 0
	for _, r := range single {
		if b.reg.applied.add(r) {
			added++
		}
	}

	applyMaterials(b.reg.applied.items, b.materials, b.active)
	b.needsRescan = false

	b.log.Debugf("scan of %s: %d renderers, %d new, %d proxies created, %d applied",
		b.root.Name, len(found), added, created, b.reg.applied.len())
}
