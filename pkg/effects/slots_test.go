package effects

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"quickfx/pkg/scene"
)

func TestApplyMaterialsRoundTrip(t *testing.T) {
	root := scene.NewNode("root")
	a := boxNode(root, "a", mgl32.Vec3{}, 1).Renderer()
	b := boxNode(root, "b", mgl32.Vec3{}, 3).Renderer()
	origA, origB := a.Materials(), b.Materials()

	mask := scene.NewMaterial("mask", scene.KindOutlineMask, ShaderOutlineMask)
	fill := scene.NewMaterial("fill", scene.KindOutlineFill, ShaderOutlineFill)
	mats := []*scene.Material{mask, fill}
	renderers := []*scene.Renderer{a, b}

	applyMaterials(renderers, mats, true)
	assert.Equal(t, append(origA, mask, fill), a.Materials())
	assert.Equal(t, append(origB, mask, fill), b.Materials())

	// adding twice changes nothing
	applyMaterials(renderers, mats, true)
	assert.Equal(t, 3, a.MaterialCount())

	applyMaterials(renderers, mats, false)
	assert.Equal(t, origA, a.Materials())
	assert.Equal(t, origB, b.Materials())

	// removing what is not there is a no-op
	applyMaterials(renderers, mats, false)
	assert.Equal(t, origA, a.Materials())
}

func TestApplyMaterialsSkipsDestroyed(t *testing.T) {
	root := scene.NewNode("root")
	r := boxNode(root, "a", mgl32.Vec3{}, 1).Renderer()
	r.Destroy()

	applyMaterials([]*scene.Renderer{r}, []*scene.Material{standard("x")}, true)
	assert.Equal(t, 1, r.MaterialCount())
}

func TestAppliedListPrune(t *testing.T) {
	root := scene.NewNode("root")
	a := boxNode(root, "a", mgl32.Vec3{}, 1).Renderer()
	b := boxNode(root, "b", mgl32.Vec3{}, 1).Renderer()
	c := boxNode(root, "c", mgl32.Vec3{}, 1).Renderer()

	l := newAppliedList()
	assert.True(t, l.add(a))
	assert.True(t, l.add(b))
	assert.False(t, l.add(a))
	assert.True(t, l.add(c))

	b.Destroy()
	assert.Equal(t, 1, l.prune())
	assert.Equal(t, []string{"a", "c"}, names(l.items))
	assert.False(t, l.index.contains(b))
	assert.Equal(t, 0, l.prune())
}
