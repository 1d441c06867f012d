package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestBoxMesh(t *testing.T) {
	m := NewBoxMesh("box", mgl32.Vec3{2, 4, 6}, 3)

	assert.Equal(t, 24, m.VertexCount())
	assert.Equal(t, 3, m.SubmeshCount())
	assert.Equal(t, 12, m.TriangleCount())
	assert.Len(t, m.Normals, 24)
	assert.Len(t, m.Tangents, 24)
	for _, sm := range m.Submeshes {
		assert.Len(t, sm, 12)
	}

	b := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -2, -3}, b.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, b.Max)
}

func TestBoxMeshClampsGroups(t *testing.T) {
	assert.Equal(t, 1, NewBoxMesh("a", mgl32.Vec3{1, 1, 1}, 0).SubmeshCount())
	assert.Equal(t, 6, NewBoxMesh("b", mgl32.Vec3{1, 1, 1}, 9).SubmeshCount())
}

func TestTrianglesConcatenatesSubmeshes(t *testing.T) {
	m := NewMesh("m")
	m.SetTriangles([]uint32{0, 1, 2}, 0)
	m.SetTriangles([]uint32{2, 3, 0, 1, 2, 3}, 1)

	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0, 1, 2, 3}, m.Triangles())
	assert.Equal(t, 3, m.TriangleCount())
}

func TestUVChannels(t *testing.T) {
	m := NewMesh("m")
	assert.Nil(t, m.UVs(3))
	data := []mgl32.Vec3{{1, 0, 0}}
	m.SetUVs(3, data)
	data[0] = mgl32.Vec3{}
	assert.Equal(t, []mgl32.Vec3{{1, 0, 0}}, m.UVs(3))
}

func TestSkinnedBoxMesh(t *testing.T) {
	m := NewSkinnedBoxMesh("skin", mgl32.Vec3{1, 1, 1}, 2)
	assert.True(t, m.IsSkinned())
	assert.Len(t, m.BoneWeights, m.VertexCount())
	assert.Len(t, m.BindPoses, 2)
}

func TestBounds(t *testing.T) {
	b := EmptyBounds()
	assert.True(t, b.IsEmpty())
	b.Encapsulate(mgl32.Vec3{1, 2, 3})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, mgl32.Vec3{}, b.Size())

	u := NewBounds(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}).Union(EmptyBounds())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, u.Size())

	rot := mgl32.HomogRotate3DY(float32(math.Pi / 2))
	tb := NewBounds(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 1, 1}).Transform(rot)
	assert.InDelta(t, 2, tb.Size()[2], 1e-5)
	assert.InDelta(t, 1, tb.Size()[0], 1e-5)
}
