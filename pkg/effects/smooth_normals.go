package effects

import (
	"github.com/go-gl/mathgl/mgl32"

	"quickfx/pkg/scene"
)

// smoothNormals averages the normals of vertices that share a position, so
// an extruded outline stays closed across hard edges. Vertices with a
// unique position keep their normal.
func smoothNormals(m *scene.Mesh) []mgl32.Vec3 {
	out := append([]mgl32.Vec3(nil), m.Normals...)
	if len(m.Normals) != len(m.Vertices) {
		return out
	}

	groups := make(map[mgl32.Vec3][]int, len(m.Vertices))
	order := make([]mgl32.Vec3, 0, len(m.Vertices))
	for i, v := range m.Vertices {
		if _, ok := groups[v]; !ok {
			order = append(order, v)
		}
		groups[v] = append(groups[v], i)
	}

	for _, pos := range order {
		idx := groups[pos]
		if len(idx) == 1 {
			continue
		}
		var sum mgl32.Vec3
		for _, i := range idx {
			sum = sum.Add(m.Normals[i])
		}
		if sum.Len() > 0 {
			sum = sum.Normalize()
		}
		for _, i := range idx {
			out[i] = sum
		}
	}
	return out
}

// normalCache tracks the smooth normals of one Outline instance: baked
// results and the meshes already written.
type normalCache struct {
	baked     map[*scene.Mesh][]mgl32.Vec3
	processed map[*scene.Mesh]struct{}
}

func newNormalCache() *normalCache {
	return &normalCache{
		baked:     make(map[*scene.Mesh][]mgl32.Vec3),
		processed: make(map[*scene.Mesh]struct{}),
	}
}

// markProcessed returns false if m was already processed.
func (c *normalCache) markProcessed(m *scene.Mesh) bool {
	if _, ok := c.processed[m]; ok {
		return false
	}
	c.processed[m] = struct{}{}
	return true
}

// bake computes smooth normals for every static mesh under root, once per
// mesh.
func (c *normalCache) bake(root *scene.Node) int {
	n := 0
	forEachMesh(root, scene.MeshRendererKind, func(m *scene.Mesh) {
		if _, ok := c.baked[m]; ok {
			return
		}
		c.baked[m] = smoothNormals(m)
		n++
	})
	return n
}

// load writes smooth normals into the smooth-normal UV channel of static
// meshes (when smooth is set) and zeroes that channel on skinned meshes.
func (c *normalCache) load(root *scene.Node, smooth bool) int {
	n := 0
	if smooth {
		forEachMesh(root, scene.MeshRendererKind, func(m *scene.Mesh) {
			if !c.markProcessed(m) {
				return
			}
			normals, ok := c.baked[m]
			if !ok {
				normals = smoothNormals(m)
			}
			m.SetUVs(SmoothNormalChannel, normals)
			n++
		})
	}

	forEachMesh(root, scene.SkinnedMeshRendererKind, func(m *scene.Mesh) {
		if !c.markProcessed(m) {
			return
		}
		m.SetUVs(SmoothNormalChannel, make([]mgl32.Vec3, m.VertexCount()))
		n++
	})
	return n
}

// forEachMesh calls fn for the mesh of every live renderer of the given
// kind in the subtree, proxies included.
func forEachMesh(root *scene.Node, kind scene.RendererKind, fn func(*scene.Mesh)) {
	root.WalkDown(func(n *scene.Node) bool {
		if r := n.Renderer(); r != nil && r.Kind() == kind && r.Mesh != nil {
			fn(r.Mesh)
		}
		return scene.Continue
	})
}
