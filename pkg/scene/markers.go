package scene

// ApplyTarget selects how far an EffectStopper reaches.
type ApplyTarget int

const (
	// ApplySelf suppresses the node's own renderer only; children are
	// still visited.
	ApplySelf ApplyTarget = iota
	// ApplySelfAndChildren stops effect traversal at the node.
	ApplySelfAndChildren
)

func (t ApplyTarget) String() string {
	if t == ApplySelfAndChildren {
		return "self_and_children"
	}
	return "self"
}

// EffectStopper suppresses effects on a node, per effect kind.
type EffectStopper struct {
	StopOutline bool
	StopBlinker bool
	Target      ApplyTarget
}

// Overlay marks a node as geometry synthesized by an effect. Effect scans
// never descend into overlay nodes.
type Overlay struct{}
