package effects

import (
	"io"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"quickfx/internal/logger"
	"quickfx/pkg/config"
	"quickfx/pkg/scene"
)

func quietLogger() *logger.Logger {
	return logger.New("error", io.Discard)
}

func standard(name string) *scene.Material {
	return scene.NewMaterial(name, scene.KindStandard, ShaderStandard)
}

// boxNode adds a child holding a box renderer with one material per
// submesh.
func boxNode(parent *scene.Node, name string, pos mgl32.Vec3, submeshes int) *scene.Node {
	n := parent.NewChild(name)
	n.Position = pos
	mats := make([]*scene.Material, submeshes)
	for i := range mats {
		mats[i] = standard(name + "-mat")
	}
	n.SetRenderer(scene.NewMeshRenderer(scene.NewBoxMesh(name, mgl32.Vec3{2, 2, 2}, submeshes), mats...))
	return n
}

func newTestOutline(t *testing.T, root *scene.Node) *Outline {
	t.Helper()
	o, err := NewOutline(root, NewTemplateLibrary(), config.DefaultOutlineConfig(), quietLogger())
	require.NoError(t, err)
	return o
}

func newTestBlinker(t *testing.T, root *scene.Node) *Blinker {
	t.Helper()
	b, err := NewBlinker(root, NewTemplateLibrary(), config.DefaultBlinkerConfig(), quietLogger())
	require.NoError(t, err)
	return b
}

func names(rs []*scene.Renderer) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name()
	}
	return out
}

func kinds(r *scene.Renderer) []scene.MaterialKind {
	out := make([]scene.MaterialKind, r.MaterialCount())
	for i, m := range r.Materials() {
		out[i] = m.Kind
	}
	return out
}
