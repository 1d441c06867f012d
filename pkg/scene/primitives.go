package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// boxFaces lists, per face, the outward normal, the tangent direction and
// the bitangent direction.
var boxFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// NewBoxMesh builds a box of the given size centered on the origin. Each
// face has its own four vertices, so corners share positions but not
// normals. The six faces are spread over faceGroups submeshes (clamped to
// 1..6), face f going to submesh f*faceGroups/6.
func NewBoxMesh(name string, size mgl32.Vec3, faceGroups int) *Mesh {
	if faceGroups < 1 {
		faceGroups = 1
	}
	if faceGroups > 6 {
		faceGroups = 6
	}
	half := size.Mul(0.5)
	m := NewMesh(name)
	m.Submeshes = make([][]uint32, faceGroups)

	for f, face := range boxFaces {
		n, t, b := face[0], face[1], face[2]
		center := mgl32.Vec3{n[0] * half[0], n[1] * half[1], n[2] * half[2]}
		tu := mgl32.Vec3{t[0] * half[0], t[1] * half[1], t[2] * half[2]}
		bv := mgl32.Vec3{b[0] * half[0], b[1] * half[1], b[2] * half[2]}

		base := uint32(len(m.Vertices))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			m.Vertices = append(m.Vertices, center.Add(tu.Mul(c[0])).Add(bv.Mul(c[1])))
			m.Normals = append(m.Normals, n)
			m.Tangents = append(m.Tangents, t.Vec4(1))
		}
		sm := f * faceGroups / 6
		m.Submeshes[sm] = append(m.Submeshes[sm], base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// NewSkinnedBoxMesh builds a box whose lower half is bound to bone 0 and
// upper half to bone 1, with identity bind poses.
func NewSkinnedBoxMesh(name string, size mgl32.Vec3, faceGroups int) *Mesh {
	m := NewBoxMesh(name, size, faceGroups)
	m.BoneWeights = make([]BoneWeight, len(m.Vertices))
	for i, v := range m.Vertices {
		bone := 0
		if v[1] > 0 {
			bone = 1
		}
		m.BoneWeights[i] = BoneWeight{BoneIndex: [4]int{bone}, Weight: [4]float32{1}}
	}
	m.BindPoses = []mgl32.Mat4{mgl32.Ident4(), mgl32.Ident4()}
	return m
}
