package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeHierarchy(t *testing.T) {
	root := NewNode("root")
	a := root.NewChild("a")
	b := a.NewChild("b")
	root.NewChild("c")

	assert.Equal(t, 2, root.NumChildren())
	assert.Same(t, a, root.Find("a"))
	assert.Nil(t, root.Find("b"))
	assert.Same(t, b, root.FindPath("a/b"))
	assert.Same(t, root, root.FindPath(""))
	assert.Nil(t, root.FindPath("a/x"))
	assert.Equal(t, "root/a/b", b.Path())

	// re-parenting detaches from the old parent
	root.Find("c").AddChild(b)
	assert.Equal(t, 0, a.NumChildren())
	assert.Equal(t, "root/c/b", b.Path())
}

func TestWorldTransform(t *testing.T) {
	root := NewNode("root")
	root.Position = mgl32.Vec3{1, 0, 0}
	root.Scale = mgl32.Vec3{2, 2, 2}
	child := root.NewChild("child")
	child.Position = mgl32.Vec3{0, 1, 0}

	p := child.WorldPosition()
	assert.InDelta(t, 1, p[0], 1e-6)
	assert.InDelta(t, 2, p[1], 1e-6)
	assert.InDelta(t, 0, p[2], 1e-6)
}

func TestWalkDownBreak(t *testing.T) {
	root := NewNode("root")
	a := root.NewChild("a")
	a.NewChild("a1")
	root.NewChild("b").NewChild("b1")

	var visited []string
	root.WalkDown(func(n *Node) bool {
		visited = append(visited, n.Name)
		if n.Name == "a" {
			return Break
		}
		return Continue
	})
	assert.Equal(t, []string{"root", "a", "b", "b1"}, visited)
}

func TestDestroySubtree(t *testing.T) {
	root := NewNode("root")
	a := root.NewChild("a")
	ra := a.SetRenderer(NewMeshRenderer(NewBoxMesh("box", mgl32.Vec3{1, 1, 1}, 1)))
	b := a.NewChild("b")
	rb := b.SetRenderer(NewParticleRenderer())

	a.Destroy()
	assert.False(t, ra.Alive())
	assert.False(t, rb.Alive())
	assert.False(t, a.Alive())
	assert.Nil(t, b.Renderer())
	assert.Equal(t, 0, root.NumChildren())
}

func TestRendererBounds(t *testing.T) {
	n := NewNode("box")
	n.Position = mgl32.Vec3{2, 0, 0}
	r := n.SetRenderer(NewMeshRenderer(NewBoxMesh("box", mgl32.Vec3{2, 2, 2}, 1)))

	b := r.Bounds()
	assert.InDelta(t, 1, b.Min[0], 1e-6)
	assert.InDelta(t, 3, b.Max[0], 1e-6)
	assert.InDelta(t, -1, b.Min[1], 1e-6)
	assert.InDelta(t, 1, b.Max[1], 1e-6)

	p := NewNode("fx")
	p.Position = mgl32.Vec3{0, 5, 0}
	pr := p.SetRenderer(NewParticleRenderer())
	require.False(t, pr.Bounds().IsEmpty())
	assert.Equal(t, mgl32.Vec3{0, 5, 0}, pr.Bounds().Center())

	e := NewNode("empty")
	e.Position = mgl32.Vec3{0, 0, 4}
	er := e.SetRenderer(NewMeshRenderer(NewMesh("none")))
	require.False(t, er.Bounds().IsEmpty())
	assert.Equal(t, NewBounds(mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 0, 4}), er.Bounds())
}

func TestRendererDestroyDetaches(t *testing.T) {
	n := NewNode("n")
	r := n.SetRenderer(NewParticleRenderer())
	require.Same(t, r, n.Renderer())
	r.Destroy()
	assert.Nil(t, n.Renderer())
	assert.False(t, r.Alive())

	var nilRenderer *Renderer
	assert.False(t, nilRenderer.Alive())
}
