package scene

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Walk callback results for WalkDown.
const (
	// Continue descends into the node's children.
	Continue = true
	// Break skips the node's children.
	Break = false
)

// Node is an element of the scene hierarchy with a local transform, an
// ordered child list and optional components.
type Node struct {
	Name string

	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	// Stopper suppresses effects on this node, nil if none.
	Stopper *EffectStopper
	// Overlay marks synthesized effect geometry, nil if none.
	Overlay *Overlay

	parent    *Node
	children  []*Node
	renderer  *Renderer
	destroyed bool
}

// NewNode returns a detached node with identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// AddChild appends child to n, detaching it from any previous parent,
// and returns child.
func (n *Node) AddChild(child *Node) *Node {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// NewChild creates a child node with the given name.
func (n *Node) NewChild(name string) *Node {
	return n.AddChild(NewNode(name))
}

// RemoveChild detaches child from n. It is a no-op if child is not a
// direct child of n.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Child returns child i.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// Find returns the direct child with the given name, or nil.
func (n *Node) Find(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindPath resolves a slash separated path of child names below n. An
// empty path returns n itself.
func (n *Node) FindPath(path string) *Node {
	cur := n
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		cur = cur.Find(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Path returns the slash separated names from the root to n.
func (n *Node) Path() string {
	if n.parent == nil {
		return n.Name
	}
	return n.parent.Path() + "/" + n.Name
}

// SetRenderer attaches r to n, replacing any previous renderer.
func (n *Node) SetRenderer(r *Renderer) *Renderer {
	if n.renderer != nil && n.renderer != r {
		n.renderer.node = nil
	}
	n.renderer = r
	if r != nil {
		r.node = n
	}
	return r
}

// Renderer returns the attached renderer, or nil.
func (n *Node) Renderer() *Renderer {
	if !n.renderer.Alive() {
		return nil
	}
	return n.renderer
}

// LocalMatrix returns the translation * rotation * scale matrix.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	s := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(n.Rotation.Normalize().Mat4()).Mul4(s)
}

// WorldMatrix returns the local-to-world transform.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.WorldMatrix().Mul4(n.LocalMatrix())
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// WalkDown visits n and its descendants in pre-order. Returning Break from
// fn skips the children of that node.
func (n *Node) WalkDown(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.WalkDown(fn)
	}
}

// Destroy destroys every renderer in the subtree and detaches n from its
// parent.
func (n *Node) Destroy() {
	n.WalkDown(func(k *Node) bool {
		if k.renderer != nil {
			k.renderer.Destroy()
		}
		k.destroyed = true
		return Continue
	})
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// Alive reports whether the node exists and was not destroyed.
func (n *Node) Alive() bool {
	return n != nil && !n.destroyed
}
