package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// RendererKind is the variant of a Renderer.
type RendererKind int

const (
	MeshRendererKind RendererKind = iota
	SkinnedMeshRendererKind
	ParticleRendererKind
)

func (k RendererKind) String() string {
	switch k {
	case MeshRendererKind:
		return "MeshRenderer"
	case SkinnedMeshRendererKind:
		return "SkinnedMeshRenderer"
	case ParticleRendererKind:
		return "ParticleRenderer"
	}
	return fmt.Sprintf("RendererKind(%d)", int(k))
}

// SkinQuality is the maximum number of bones per vertex.
type SkinQuality int

const (
	SkinQualityAuto SkinQuality = iota
	SkinQualityBone1
	SkinQualityBone2
	SkinQualityBone4
)

// Skin carries the bone bindings of a skinned mesh renderer.
type Skin struct {
	Bones                []*Node
	RootBone             *Node
	RenderingLayerMask   uint32
	Quality              SkinQuality
	UpdateWhenOffscreen  bool
	SkinnedMotionVectors bool
}

// Renderer draws a mesh with an ordered list of material slots. It is
// attached to at most one Node.
type Renderer struct {
	kind RendererKind
	node *Node

	// Mesh is the geometry drawn by mesh and skinned renderers.
	Mesh *Mesh
	// Skin is set for skinned renderers only.
	Skin *Skin

	materials []*Material
	destroyed bool
}

// NewMeshRenderer returns a renderer drawing mesh with the given slots.
func NewMeshRenderer(mesh *Mesh, materials ...*Material) *Renderer {
	return &Renderer{
		kind:      MeshRendererKind,
		Mesh:      mesh,
		materials: append([]*Material(nil), materials...),
	}
}

// NewSkinnedMeshRenderer returns a skinned renderer drawing mesh.
func NewSkinnedMeshRenderer(mesh *Mesh, skin Skin, materials ...*Material) *Renderer {
	return &Renderer{
		kind:      SkinnedMeshRendererKind,
		Mesh:      mesh,
		Skin:      &skin,
		materials: append([]*Material(nil), materials...),
	}
}

// NewParticleRenderer returns a particle system renderer.
func NewParticleRenderer(materials ...*Material) *Renderer {
	return &Renderer{
		kind:      ParticleRendererKind,
		materials: append([]*Material(nil), materials...),
	}
}

// Kind returns the renderer variant.
func (r *Renderer) Kind() RendererKind {
	return r.kind
}

// Node returns the node the renderer is attached to, or nil.
func (r *Renderer) Node() *Node {
	return r.node
}

// Name returns the name of the owning node.
func (r *Renderer) Name() string {
	if r.node == nil {
		return ""
	}
	return r.node.Name
}

// Materials returns a copy of the material slot list.
func (r *Renderer) Materials() []*Material {
	return append([]*Material(nil), r.materials...)
}

// SetMaterials replaces the material slot list.
func (r *Renderer) SetMaterials(materials []*Material) {
	r.materials = append(r.materials[:0:0], materials...)
}

// MaterialCount returns the number of material slots.
func (r *Renderer) MaterialCount() int {
	return len(r.materials)
}

// Material returns slot i, or nil when out of range.
func (r *Renderer) Material(i int) *Material {
	if i < 0 || i >= len(r.materials) {
		return nil
	}
	return r.materials[i]
}

// Bounds returns the world-space bounds of the renderer. Particle
// renderers and meshes without vertices report a zero-size box at the
// node position.
func (r *Renderer) Bounds() Bounds {
	if r.Mesh == nil || r.Mesh.VertexCount() == 0 {
		var p mgl32.Vec3
		if r.node != nil {
			p = r.node.WorldPosition()
		}
		return NewBounds(p, p)
	}
	local := r.Mesh.Bounds()
	if r.node == nil {
		return local
	}
	return local.Transform(r.node.WorldMatrix())
}

// Alive reports whether the renderer exists and was not destroyed.
func (r *Renderer) Alive() bool {
	return r != nil && !r.destroyed
}

// Destroy detaches the renderer from its node and marks it destroyed.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	if r.node != nil && r.node.renderer == r {
		r.node.renderer = nil
	}
}

func (r *Renderer) String() string {
	return fmt.Sprintf("%s(%s, %d slots)", r.kind, r.Name(), len(r.materials))
}
