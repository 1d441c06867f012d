package effects

import (
	"fmt"

	"quickfx/pkg/scene"
)

// Kind identifies an effect type. Each kind has its own suppression flag
// on scene.EffectStopper and its own proxy naming.
type Kind int

const (
	KindOutline Kind = iota
	KindBlinker
)

func (k Kind) String() string {
	switch k {
	case KindOutline:
		return "Outline"
	case KindBlinker:
		return "Blinker"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// suppressedBy reports whether the stopper disables this kind.
func (k Kind) suppressedBy(s *scene.EffectStopper) bool {
	if s == nil {
		return false
	}
	switch k {
	case KindOutline:
		return s.StopOutline
	case KindBlinker:
		return s.StopBlinker
	}
	return false
}

// ProxyName returns the name of the proxy node synthesized under a source
// renderer's node.
func (k Kind) ProxyName(source string) string {
	return source + " (" + k.String() + ")"
}

func (k Kind) proxyMeshName() string {
	return k.String() + " Mesh"
}

// emptyTemplate is the placeholder material put in slot 0 of proxies.
func (k Kind) emptyTemplate() string {
	if k == KindBlinker {
		return TemplateBlinkerEmpty
	}
	return TemplateOutlineEmpty
}
