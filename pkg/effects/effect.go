// Package effects implements the Outline and Blinker renderer effects.
//
// Both effects scan a scene subtree for renderers, proxy renderers that
// carry several materials with a single-submesh copy of their mesh, append
// their own material instances to every applied renderer and push shader
// parameters into those instances. All entry points must be called from
// the frame update phase of the host; none of them are safe for concurrent
// use.
package effects

import (
	"quickfx/pkg/scene"
)

// State is the lifecycle state of an effect instance.
type State int

const (
	// Inactive: no materials are owned or applied.
	Inactive State = iota
	// ScanPending: the next frame rescans the hierarchy.
	ScanPending
	// MaterialPending: the next frame pushes shader parameters.
	MaterialPending
	// Steady: nothing left to do beyond per-frame work.
	Steady
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case ScanPending:
		return "scan-pending"
	case MaterialPending:
		return "material-pending"
	case Steady:
		return "steady"
	}
	return "unknown"
}

// Effect is the host-facing surface of an effect instance.
type Effect interface {
	// Kind returns the effect kind.
	Kind() Kind

	// Activate creates the owned material instances, applies them to the
	// renderers found so far and schedules a rescan. It fails when a
	// material template is missing.
	Activate() error

	// FrameUpdate runs the pending scan and parameter work. It does
	// nothing while the effect is inactive.
	FrameUpdate(dt float64)

	// Deactivate removes the effect materials from every applied renderer
	// and releases them.
	Deactivate()

	// Destroy deactivates the effect and forgets every renderer.
	Destroy()

	// Refresh schedules a rescan and a full parameter push.
	Refresh()

	// State returns the lifecycle state.
	State() State

	// Applied returns the renderers currently carrying the effect.
	Applied() []*scene.Renderer
}
