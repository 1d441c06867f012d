package effects

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"quickfx/pkg/scene"
)

// proxyBuilder creates the proxy renderer for one renderer variant.
type proxyBuilder interface {
	build(src *scene.Renderer, mesh *scene.Mesh, empty *scene.Material) *scene.Renderer
}

type meshProxy struct{}

func (meshProxy) build(_ *scene.Renderer, mesh *scene.Mesh, empty *scene.Material) *scene.Renderer {
	return scene.NewMeshRenderer(mesh, empty)
}

type skinnedProxy struct{}

func (skinnedProxy) build(src *scene.Renderer, mesh *scene.Mesh, empty *scene.Material) *scene.Renderer {
	mesh.BoneWeights = append([]scene.BoneWeight(nil), src.Mesh.BoneWeights...)
	mesh.BindPoses = append([]mgl32.Mat4(nil), src.Mesh.BindPoses...)

	var skin scene.Skin
	if src.Skin != nil {
		skin = *src.Skin
		skin.Bones = append([]*scene.Node(nil), src.Skin.Bones...)
	}
	return scene.NewSkinnedMeshRenderer(mesh, skin, empty)
}

var proxyBuilders = map[scene.RendererKind]proxyBuilder{
	scene.MeshRendererKind:        meshProxy{},
	scene.SkinnedMeshRendererKind: skinnedProxy{},
}

// synthesizer builds single-submesh proxies for multi-material renderers.
type synthesizer struct {
	kind  Kind
	empty *scene.Material
}

// synthesize returns the proxy renderer for src. If a proxy node with the
// expected name already exists its renderer is returned with created set
// to false; nil is returned when that node has no live renderer.
func (s synthesizer) synthesize(src *scene.Renderer) (proxy *scene.Renderer, created bool) {
	node := src.Node()
	if node == nil {
		panic(fmt.Sprintf("effects: renderer %v is not attached to a node", src))
	}

	name := s.kind.ProxyName(node.Name)
	if existing := node.Find(name); existing != nil {
		return existing.Renderer(), false
	}

	if src.Mesh == nil {
		panic(fmt.Sprintf("effects: %s %q has no mesh", src.Kind(), node.Name))
	}
	builder, ok := proxyBuilders[src.Kind()]
	if !ok {
		panic(fmt.Sprintf("effects: cannot build a proxy for %s %q", src.Kind(), node.Name))
	}

	display := node.NewChild(name)
	display.Overlay = &scene.Overlay{}

	mesh := flattenMesh(src.Mesh, s.kind.proxyMeshName())
	return display.SetRenderer(builder.build(src, mesh, s.empty)), true
}

// flattenMesh copies the geometry of src with every triangle merged into
// submesh 0.
func flattenMesh(src *scene.Mesh, name string) *scene.Mesh {
	m := scene.NewMesh(name)
	m.Vertices = append([]mgl32.Vec3(nil), src.Vertices...)
	m.SetTriangles(src.Triangles(), 0)
	m.Normals = append([]mgl32.Vec3(nil), src.Normals...)
	m.Tangents = append([]mgl32.Vec4(nil), src.Tangents...)
	return m
}
