package effects

import (
	"bytes"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickfx/internal/logger"
	"quickfx/pkg/config"
	"quickfx/pkg/scene"
)

// outlineScene has one single-material box and one three-material box.
func outlineScene() (root, single, multi *scene.Node) {
	root = scene.NewNode("root")
	single = boxNode(root, "single", mgl32.Vec3{-2, 0, 0}, 1)
	multi = boxNode(root, "multi", mgl32.Vec3{2, 0, 0}, 3)
	return root, single, multi
}

func floatParam(t *testing.T, m *scene.Material, name string) float32 {
	t.Helper()
	v, ok := m.Float(name)
	require.True(t, ok, "missing %s on %s", name, m.Name)
	return v
}

func TestOutlineLifecycle(t *testing.T) {
	root, single, multi := outlineScene()
	o := newTestOutline(t, root)
	assert.Equal(t, Inactive, o.State())

	o.FrameUpdate(0.016)
	assert.Empty(t, o.Applied())
	assert.Zero(t, o.pushes)

	require.NoError(t, o.Activate())
	assert.Equal(t, ScanPending, o.State())
	mats := o.Materials()
	require.Len(t, mats, 2)
	assert.Equal(t, "OutlineMask (Instance)", mats[0].Name)
	assert.Equal(t, "OutlineFill (Instance)", mats[1].Name)

	o.FrameUpdate(0.016)
	assert.Equal(t, Steady, o.State())
	assert.Equal(t, 1, o.pushes)

	proxyNode := multi.Find("multi (Outline)")
	require.NotNil(t, proxyNode)
	assert.Equal(t, []string{"single", "multi (Outline)"}, names(o.Applied()))

	assert.Equal(t, []scene.MaterialKind{scene.KindStandard, scene.KindOutlineMask, scene.KindOutlineFill},
		kinds(single.Renderer()))
	assert.Equal(t, []scene.MaterialKind{scene.KindOutlineEmpty, scene.KindOutlineMask, scene.KindOutlineFill},
		kinds(proxyNode.Renderer()))
	assert.Equal(t, 3, multi.Renderer().MaterialCount(), "multi-material source is left alone")

	o.SetColor(mgl32.Vec4{1, 0, 0, 1})
	assert.Equal(t, MaterialPending, o.State())
	o.FrameUpdate(0.016)
	assert.Equal(t, Steady, o.State())

	o.Refresh()
	assert.Equal(t, ScanPending, o.State())

	o.Deactivate()
	assert.Equal(t, Inactive, o.State())
}

func TestOutlineRescanIsIdempotent(t *testing.T) {
	root, _, multi := outlineScene()
	o := newTestOutline(t, root)
	require.NoError(t, o.Activate())
	o.FrameUpdate(0.016)

	applied := o.Applied()
	registered := len(o.reg.registered)

	for i := 0; i < 3; i++ {
		o.Refresh()
		o.FrameUpdate(0.016)
	}

	assert.Equal(t, applied, o.Applied())
	assert.Len(t, o.reg.registered, registered)
	assert.Equal(t, 1, multi.NumChildren())
	for _, r := range o.Applied() {
		assert.Equal(t, 3, r.MaterialCount(), r.Name())
	}
}

func TestOutlinePicksUpNewRenderers(t *testing.T) {
	root, _, _ := outlineScene()
	o := newTestOutline(t, root)
	require.NoError(t, o.Activate())
	o.FrameUpdate(0.016)

	late := boxNode(root, "late", mgl32.Vec3{0, 3, 0}, 1)
	o.FrameUpdate(0.016)
	assert.Len(t, o.Applied(), 2, "no rescan without a refresh")

	o.Refresh()
	o.FrameUpdate(0.016)
	assert.Len(t, o.Applied(), 3)
	assert.Equal(t, 3, late.Renderer().MaterialCount())
}

func TestOutlineDeactivateRestoresSlots(t *testing.T) {
	root, single, multi := outlineScene()
	before := single.Renderer().Materials()
	multiBefore := multi.Renderer().Materials()

	o := newTestOutline(t, root)
	require.NoError(t, o.Activate())
	o.FrameUpdate(0.016)
	mats := o.Materials()

	o.Deactivate()
	assert.Equal(t, before, single.Renderer().Materials())
	assert.Equal(t, multiBefore, multi.Renderer().Materials())
	proxy := multi.Find("multi (Outline)").Renderer()
	assert.Equal(t, []scene.MaterialKind{scene.KindOutlineEmpty}, kinds(proxy))
	for _, m := range mats {
		assert.True(t, m.Destroyed(), m.Name)
	}
	assert.Nil(t, o.Materials())

	// reactivation reapplies fresh instances to the known renderers
	require.NoError(t, o.Activate())
	assert.Equal(t, 3, single.Renderer().MaterialCount())
	assert.NotSame(t, mats[0], single.Renderer().Material(1))
	o.FrameUpdate(0.016)
	assert.Len(t, o.Applied(), 2)
}

func TestOutlineDestroyForgetsRenderers(t *testing.T) {
	root, single, _ := outlineScene()
	o := newTestOutline(t, root)
	require.NoError(t, o.Activate())
	o.FrameUpdate(0.016)

	o.Destroy()
	assert.Equal(t, Inactive, o.State())
	assert.Empty(t, o.Applied())
	assert.Empty(t, o.reg.registered)
	assert.Equal(t, 1, single.Renderer().MaterialCount())
}

func TestOutlinePrunesDestroyedRenderers(t *testing.T) {
	root, single, multi := outlineScene()
	o := newTestOutline(t, root)
	require.NoError(t, o.Activate())
	o.FrameUpdate(0.016)

	single.Destroy()
	o.FrameUpdate(0.016)
	assert.Equal(t, []string{"multi (Outline)"}, names(o.Applied()))

	multi.Destroy()
	o.FrameUpdate(0.016)
	assert.Empty(t, o.Applied())
	assert.Empty(t, o.reg.registered)
}

func TestOutlineParameterChangesCoalesce(t *testing.T) {
	root, _, _ := outlineScene()
	o := newTestOutline(t, root)
	require.NoError(t, o.Activate())
	o.FrameUpdate(0.016)
	require.Equal(t, 1, o.pushes)

	o.SetColor(mgl32.Vec4{1, 0, 0, 1})
	o.SetColor(mgl32.Vec4{0, 1, 0, 1})
	o.SetColor(mgl32.Vec4{0, 0, 1, 1})
	o.FrameUpdate(0.016)
	assert.Equal(t, 2, o.pushes)

	fill := o.Materials()[1]
	c, ok := fill.Vector(ParamOutlineColor)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec4{0, 0, 1, 1}, c)

	// unchanged values do not mark the material dirty
	o.SetColor(mgl32.Vec4{0, 0, 1, 1})
	o.SetWidth(o.Width())
	o.FrameUpdate(0.016)
	assert.Equal(t, 2, o.pushes)
}

func TestOutlineModeTable(t *testing.T) {
	tests := []struct {
		mode      Mode
		maskZTest scene.CompareFunc
		fillZTest scene.CompareFunc
		width     float32
	}{
		{OutlineAll, scene.CompareAlways, scene.CompareAlways, 4},
		{OutlineVisible, scene.CompareAlways, scene.CompareLessEqual, 4},
		{OutlineHidden, scene.CompareAlways, scene.CompareGreater, 4},
		{OutlineAndSilhouette, scene.CompareLessEqual, scene.CompareAlways, 4},
		{SilhouetteOnly, scene.CompareLessEqual, scene.CompareGreater, 0},
	}

	root, _, _ := outlineScene()
	o := newTestOutline(t, root)
	o.SetWidth(4)
	require.NoError(t, o.Activate())

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			o.SetMode(tt.mode)
			o.FrameUpdate(0.016)

			mats := o.Materials()
			mask, fill := mats[0], mats[1]
			assert.Equal(t, float32(tt.maskZTest), floatParam(t, mask, ParamZTest))
			assert.Equal(t, float32(tt.fillZTest), floatParam(t, fill, ParamZTest))
			assert.Equal(t, tt.width, floatParam(t, fill, ParamOutlineWidth))
			assert.Equal(t, float32(4), o.Width(), "configured width is kept")
		})
	}
}

func TestOutlineShowToggle(t *testing.T) {
	root, single, _ := outlineScene()
	o := newTestOutline(t, root)
	require.NoError(t, o.Activate())
	o.FrameUpdate(0.016)

	mats := o.Materials()
	assert.Equal(t, float32(scene.StencilReplace), floatParam(t, mats[0], ParamStencilPass))
	assert.Equal(t, float32(1), floatParam(t, mats[1], ParamOutlineShow))

	o.SetShow(false)
	o.FrameUpdate(0.016)
	assert.Equal(t, float32(scene.StencilKeep), floatParam(t, mats[0], ParamStencilPass))
	assert.Equal(t, float32(0), floatParam(t, mats[1], ParamOutlineShow))
	assert.Equal(t, 3, single.Renderer().MaterialCount(), "hiding keeps the materials applied")
}

func TestOutlineWidthIsClamped(t *testing.T) {
	o := newTestOutline(t, scene.NewNode("root"))
	o.SetWidth(-3)
	assert.Equal(t, float32(0), o.Width())
	o.SetWidth(25)
	assert.Equal(t, float32(MaxOutlineWidth), o.Width())
}

func TestOutlineSmoothNormals(t *testing.T) {
	root, single, _ := outlineScene()
	skinned := root.NewChild("skinned")
	skinned.SetRenderer(scene.NewSkinnedMeshRenderer(
		scene.NewSkinnedBoxMesh("skinned", mgl32.Vec3{1, 1, 1}, 1), scene.Skin{}, standard("s")))

	o := newTestOutline(t, root)
	require.NoError(t, o.Activate())
	o.FrameUpdate(0.016)

	mesh := single.Renderer().Mesh
	uvs := mesh.UVs(SmoothNormalChannel)
	require.Len(t, uvs, mesh.VertexCount())
	inv := float32(1 / math.Sqrt(3))
	for i, v := range mesh.Vertices {
		want := mgl32.Vec3{sign(v[0]) * inv, sign(v[1]) * inv, sign(v[2]) * inv}
		assert.True(t, uvs[i].ApproxEqualThreshold(want, 1e-5), "vertex %d: %v", i, uvs[i])
	}

	skinnedUVs := skinned.Renderer().Mesh.UVs(SmoothNormalChannel)
	require.Len(t, skinnedUVs, skinned.Renderer().Mesh.VertexCount())
	for _, uv := range skinnedUVs {
		assert.Equal(t, mgl32.Vec3{}, uv)
	}

	// each mesh is processed once per instance
	mesh.SetUVs(SmoothNormalChannel, nil)
	o.Refresh()
	o.FrameUpdate(0.016)
	assert.Empty(t, mesh.UVs(SmoothNormalChannel))
}

func TestOutlineWithoutSmoothNormals(t *testing.T) {
	root, single, _ := outlineScene()
	cfg := config.DefaultOutlineConfig()
	cfg.SmoothNormals = false
	o, err := NewOutline(root, NewTemplateLibrary(), cfg, quietLogger())
	require.NoError(t, err)
	require.NoError(t, o.Activate())
	o.FrameUpdate(0.016)

	assert.Empty(t, single.Renderer().Mesh.UVs(SmoothNormalChannel))
	assert.Equal(t, float32(0), floatParam(t, o.Materials()[1], ParamOutlineSmoothNormals))
}

func TestOutlineBake(t *testing.T) {
	root, single, _ := outlineScene()
	cfg := config.DefaultOutlineConfig()
	cfg.Precompute = true
	o, err := NewOutline(root, NewTemplateLibrary(), cfg, quietLogger())
	require.NoError(t, err)
	assert.Len(t, o.normals.baked, 2)
	assert.Contains(t, o.normals.baked, single.Renderer().Mesh)
	assert.Empty(t, single.Renderer().Mesh.UVs(SmoothNormalChannel), "baking does not write the mesh")
}

func TestOutlineMissingTemplate(t *testing.T) {
	root, single, _ := outlineScene()
	lib := scene.NewLibrary()
	lib.Register(scene.NewMaterial(TemplateOutlineEmpty, scene.KindOutlineEmpty, ShaderEmpty))
	lib.Register(scene.NewMaterial(TemplateOutlineMask, scene.KindOutlineMask, ShaderOutlineMask))

	o, err := NewOutline(root, lib, config.DefaultOutlineConfig(), quietLogger())
	require.NoError(t, err)

	err = o.Activate()
	require.ErrorIs(t, err, scene.ErrTemplateNotFound)
	assert.Contains(t, err.Error(), TemplateOutlineFill)
	assert.Equal(t, Inactive, o.State())

	o.FrameUpdate(0.016)
	assert.Equal(t, 1, single.Renderer().MaterialCount())
}

func TestOutlineBadMode(t *testing.T) {
	cfg := config.DefaultOutlineConfig()
	cfg.Mode = "sideways"
	_, err := NewOutline(scene.NewNode("root"), NewTemplateLibrary(), cfg, quietLogger())
	assert.Error(t, err)
}

func TestModeParsing(t *testing.T) {
	m, err := ParseMode(" Silhouette_Only ")
	require.NoError(t, err)
	assert.Equal(t, SilhouetteOnly, m)
	assert.Equal(t, OutlineAll, SilhouetteOnly.Next())
	assert.Equal(t, OutlineVisible, OutlineAll.Next())
}

func TestOutlineAndBlinkerShareRenderers(t *testing.T) {
	root, single, multi := outlineScene()
	o := newTestOutline(t, root)
	b := newTestBlinker(t, root)
	require.NoError(t, o.Activate())
	require.NoError(t, b.Activate())

	o.FrameUpdate(0.016)
	b.FrameUpdate(0.016)

	assert.Equal(t, []scene.MaterialKind{
		scene.KindStandard, scene.KindOutlineMask, scene.KindOutlineFill, scene.KindBlinker,
	}, kinds(single.Renderer()))

	assert.NotNil(t, multi.Find("multi (Outline)"))
	assert.NotNil(t, multi.Find("multi (Blinker)"))
	assert.Equal(t, []string{"single", "multi (Blinker)"}, names(b.Applied()))

	o.Deactivate()
	assert.Equal(t, []scene.MaterialKind{scene.KindStandard, scene.KindBlinker}, kinds(single.Renderer()))
}

func TestOutlineWarnsOnDeadProxyNode(t *testing.T) {
	root := scene.NewNode("root")
	crate := boxNode(root, "crate", mgl32.Vec3{}, 2)
	crate.NewChild("crate (Outline)")

	var buf bytes.Buffer
	o, err := NewOutline(root, NewTemplateLibrary(), config.DefaultOutlineConfig(), logger.New("warn", &buf))
	require.NoError(t, err)
	require.NoError(t, o.Activate())
	o.FrameUpdate(0.016)

	assert.Empty(t, o.Applied())
	assert.Equal(t, 1, crate.NumChildren(), "no second proxy is created")
	assert.Contains(t, buf.String(), `crate has a "crate (Outline)" child without a live renderer`)
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
