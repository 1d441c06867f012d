package effects

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickfx/pkg/scene"
)

func testSynthesizer(t *testing.T, kind Kind) synthesizer {
	t.Helper()
	empty, err := NewTemplateLibrary().Template(kind.emptyTemplate())
	require.NoError(t, err)
	return synthesizer{kind: kind, empty: empty}
}

func TestSynthesizeMeshProxy(t *testing.T) {
	root := scene.NewNode("root")
	src := boxNode(root, "crate", mgl32.Vec3{1, 2, 3}, 3).Renderer()
	s := testSynthesizer(t, KindOutline)

	proxy, created := s.synthesize(src)
	require.NotNil(t, proxy)
	assert.True(t, created)

	node := proxy.Node()
	assert.Equal(t, "crate (Outline)", node.Name)
	assert.Same(t, src.Node(), node.Parent())
	assert.NotNil(t, node.Overlay)
	assert.Equal(t, scene.MeshRendererKind, proxy.Kind())

	require.Equal(t, 1, proxy.MaterialCount())
	assert.Equal(t, scene.KindOutlineEmpty, proxy.Material(0).Kind)

	m := proxy.Mesh
	assert.Equal(t, "Outline Mesh", m.Name)
	assert.Equal(t, src.Mesh.VertexCount(), m.VertexCount())
	assert.Equal(t, 1, m.SubmeshCount())
	assert.Equal(t, src.Mesh.Triangles(), m.Triangles())
	assert.Equal(t, src.Mesh.Normals, m.Normals)
	assert.Equal(t, src.Mesh.Tangents, m.Tangents)
	assert.NotSame(t, src.Mesh, m)

	// the proxy sits where its source does
	assert.Equal(t, src.Bounds(), proxy.Bounds())
}

func TestSynthesizeSkinnedProxy(t *testing.T) {
	root := scene.NewNode("root")
	hips := root.NewChild("hips")
	spine := hips.NewChild("spine")

	n := root.NewChild("body")
	skin := scene.Skin{
		Bones:                []*scene.Node{hips, spine},
		RootBone:             hips,
		RenderingLayerMask:   0x5,
		Quality:              scene.SkinQualityBone2,
		UpdateWhenOffscreen:  true,
		SkinnedMotionVectors: true,
	}
	src := n.SetRenderer(scene.NewSkinnedMeshRenderer(
		scene.NewSkinnedBoxMesh("body", mgl32.Vec3{1, 2, 1}, 2), skin,
		standard("skin"), standard("cloth")))

	proxy, created := testSynthesizer(t, KindBlinker).synthesize(src)
	require.True(t, created)

	assert.Equal(t, "body (Blinker)", proxy.Name())
	assert.Equal(t, scene.SkinnedMeshRendererKind, proxy.Kind())
	assert.Equal(t, scene.KindBlinkerEmpty, proxy.Material(0).Kind)
	assert.Equal(t, "Blinker Mesh", proxy.Mesh.Name)
	assert.Equal(t, src.Mesh.BoneWeights, proxy.Mesh.BoneWeights)
	assert.Equal(t, src.Mesh.BindPoses, proxy.Mesh.BindPoses)

	require.NotNil(t, proxy.Skin)
	assert.Equal(t, *src.Skin, *proxy.Skin)
	assert.NotSame(t, src.Skin, proxy.Skin)
}

func TestSynthesizeAdoptsExistingProxy(t *testing.T) {
	root := scene.NewNode("root")
	src := boxNode(root, "crate", mgl32.Vec3{}, 2).Renderer()
	s := testSynthesizer(t, KindOutline)

	first, created := s.synthesize(src)
	require.True(t, created)

	again, created := s.synthesize(src)
	assert.False(t, created)
	assert.Same(t, first, again)
	assert.Equal(t, 1, src.Node().NumChildren())
}

func TestSynthesizeWithoutMeshPanics(t *testing.T) {
	n := scene.NewNode("hollow")
	src := n.SetRenderer(scene.NewMeshRenderer(nil, standard("a"), standard("b")))
	assert.Panics(t, func() {
		testSynthesizer(t, KindOutline).synthesize(src)
	})
}
