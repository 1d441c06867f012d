package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BoneWeight binds a vertex to up to four bones.
type BoneWeight struct {
	BoneIndex [4]int
	Weight    [4]float32
}

// Mesh holds indexed triangle geometry split into submeshes. Submesh i is
// drawn with material slot i of the renderer that uses the mesh.
type Mesh struct {
	Name string

	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Tangents []mgl32.Vec4

	// Submeshes are triangle index lists (three indices per triangle).
	Submeshes [][]uint32

	// skinning data, empty for static meshes
	BoneWeights []BoneWeight
	BindPoses   []mgl32.Mat4

	uvs map[int][]mgl32.Vec3
}

// NewMesh returns an empty mesh with the given name.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// SubmeshCount returns the number of submeshes.
func (m *Mesh) SubmeshCount() int {
	return len(m.Submeshes)
}

// Triangles returns the index lists of all submeshes concatenated in
// submesh order.
func (m *Mesh) Triangles() []uint32 {
	n := 0
	for _, sm := range m.Submeshes {
		n += len(sm)
	}
	out := make([]uint32, 0, n)
	for _, sm := range m.Submeshes {
		out = append(out, sm...)
	}
	return out
}

// TriangleCount returns the total number of triangles over all submeshes.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, sm := range m.Submeshes {
		n += len(sm) / 3
	}
	return n
}

// SetTriangles replaces submesh index with tris, growing the submesh list
// as needed.
func (m *Mesh) SetTriangles(tris []uint32, submesh int) {
	for len(m.Submeshes) <= submesh {
		m.Submeshes = append(m.Submeshes, nil)
	}
	m.Submeshes[submesh] = append([]uint32(nil), tris...)
}

// SetUVs stores per-vertex data in the given UV channel.
func (m *Mesh) SetUVs(channel int, data []mgl32.Vec3) {
	if m.uvs == nil {
		m.uvs = make(map[int][]mgl32.Vec3)
	}
	m.uvs[channel] = append([]mgl32.Vec3(nil), data...)
}

// UVs returns the data of a UV channel, or nil if unset.
func (m *Mesh) UVs(channel int) []mgl32.Vec3 {
	return m.uvs[channel]
}

// IsSkinned reports whether the mesh carries bone data.
func (m *Mesh) IsSkinned() bool {
	return len(m.BoneWeights) > 0
}

// Bounds returns the local-space box of all vertices.
func (m *Mesh) Bounds() Bounds {
	b := EmptyBounds()
	for _, v := range m.Vertices {
		b.Encapsulate(v)
	}
	return b
}
