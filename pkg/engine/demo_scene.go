package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"quickfx/pkg/effects"
	"quickfx/pkg/scene"
)

// demoPalette returns n evenly spaced hues.
func demoPalette(n int) []mgl32.Vec4 {
	out := make([]mgl32.Vec4, n)
	for i := range out {
		c := colorful.Hsv(float64(i)*360/float64(n), 0.55, 0.85)
		out[i] = mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), 1}
	}
	return out
}

// demoBuilder instantiates standard materials from a library, cycling
// through the palette.
type demoBuilder struct {
	lib     *scene.Library
	palette []mgl32.Vec4
	next    int
	err     error
}

func (b *demoBuilder) materials(n int) []*scene.Material {
	mats := make([]*scene.Material, 0, n)
	for i := 0; i < n; i++ {
		m, err := b.lib.Instantiate(effects.TemplateStandard)
		if err != nil {
			if b.err == nil {
				b.err = err
			}
			return mats
		}
		m.SetColor(effects.ParamColor, b.palette[b.next%len(b.palette)])
		b.next++
		mats = append(mats, m)
	}
	return mats
}

func (b *demoBuilder) box(parent *scene.Node, name string, pos, size mgl32.Vec3, submeshes int) *scene.Node {
	n := parent.NewChild(name)
	n.Position = pos
	n.SetRenderer(scene.NewMeshRenderer(scene.NewBoxMesh(name, size, submeshes), b.materials(submeshes)...))
	return n
}

// BuildDemoScene creates the sample scene shown by the demo binary. It
// holds one of every renderer kind the effects distinguish:
//
//	crate      single material box
//	pillar     box with three materials (proxied)
//	character  skinned box with two materials (proxied, skinned proxy)
//	sparks     particle renderer (ignored)
//	glass      outline stopped on itself only, its handle is outlined
//	hidden     both effects stopped for the whole subtree
func BuildDemoScene(lib *scene.Library) (*scene.Node, error) {
	b := &demoBuilder{lib: lib, palette: demoPalette(8)}
	root := scene.NewNode("Demo")

	b.box(root, "crate", mgl32.Vec3{-4, 0, 0}, mgl32.Vec3{1.5, 1.5, 1.5}, 1)
	b.box(root, "pillar", mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{1, 3, 1}, 3)

	character := root.NewChild("character")
	character.Position = mgl32.Vec3{4, 0, 0}
	hips := character.NewChild("hips")
	spine := hips.NewChild("spine")
	spine.Position = mgl32.Vec3{0, 1, 0}
	character.SetRenderer(scene.NewSkinnedMeshRenderer(
		scene.NewSkinnedBoxMesh("character", mgl32.Vec3{1, 2, 0.6}, 2),
		scene.Skin{
			Bones:    []*scene.Node{hips, spine},
			RootBone: hips,
			Quality:  scene.SkinQualityBone2,
		},
		b.materials(2)...))

	sparks := root.NewChild("sparks")
	sparks.Position = mgl32.Vec3{0, 3, 0}
	sparks.SetRenderer(scene.NewParticleRenderer(b.materials(1)...))

	glass := b.box(root, "glass", mgl32.Vec3{-2, 0, 3}, mgl32.Vec3{1, 1, 1}, 1)
	glass.Stopper = &scene.EffectStopper{StopOutline: true, Target: scene.ApplySelf}
	b.box(glass, "handle", mgl32.Vec3{0.8, 0, 0}, mgl32.Vec3{0.3, 0.6, 0.3}, 1)

	hidden := b.box(root, "hidden", mgl32.Vec3{2, 0, 3}, mgl32.Vec3{1, 1, 1}, 2)
	hidden.Stopper = &scene.EffectStopper{StopOutline: true, StopBlinker: true, Target: scene.ApplySelfAndChildren}
	b.box(hidden, "inner", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, 1)

	if b.err != nil {
		return nil, fmt.Errorf("failed to build demo scene: %w", b.err)
	}
	return root, nil
}
