package effects

import (
	"fmt"
	"strings"

	"quickfx/pkg/scene"
)

// Mode selects which parts of an outlined object are drawn.
type Mode int

const (
	OutlineAll Mode = iota
	OutlineVisible
	OutlineHidden
	OutlineAndSilhouette
	SilhouetteOnly
)

var modeNames = []string{
	OutlineAll:           "outline_all",
	OutlineVisible:       "outline_visible",
	OutlineHidden:        "outline_hidden",
	OutlineAndSilhouette: "outline_and_silhouette",
	SilhouetteOnly:       "silhouette_only",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Next returns the following mode, wrapping around.
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % len(modeNames))
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return OutlineAll, fmt.Errorf("unknown outline mode %q", s)
}

// modeParams is the depth state of the mask and fill passes for a mode.
type modeParams struct {
	maskZTest scene.CompareFunc
	fillZTest scene.CompareFunc
	// zeroWidth forces the fill width to 0
	zeroWidth bool
}

var modeTable = map[Mode]modeParams{
	OutlineAll:           {scene.CompareAlways, scene.CompareAlways, false},
	OutlineVisible:       {scene.CompareAlways, scene.CompareLessEqual, false},
	OutlineHidden:        {scene.CompareAlways, scene.CompareGreater, false},
	OutlineAndSilhouette: {scene.CompareLessEqual, scene.CompareAlways, false},
	SilhouetteOnly:       {scene.CompareLessEqual, scene.CompareGreater, true},
}
