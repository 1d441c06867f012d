package effects

import (
	"github.com/go-gl/mathgl/mgl32"

	"quickfx/internal/logger"
	"quickfx/internal/util"
	"quickfx/pkg/config"
	"quickfx/pkg/scene"
)

// MaxOutlineWidth is the upper bound of the outline width.
const MaxOutlineWidth = 10

// Outline draws an outline and/or silhouette around every renderer under
// its root using a stencil mask pass and an extruded fill pass.
type Outline struct {
	base

	mode          Mode
	color         mgl32.Vec4
	width         float32
	show          bool
	smoothNormals bool

	normals      *normalCache
	needsNormals bool

	// pushes counts parameter pushes into the material instances
	pushes int
}

var _ Effect = (*Outline)(nil)

// NewOutline creates an inactive outline over root configured from cfg.
func NewOutline(root *scene.Node, lib *scene.Library, cfg config.OutlineConfig, log *logger.Logger) (*Outline, error) {
	o := &Outline{
		base:    newBase(KindOutline, root, lib, log, TemplateOutlineMask, TemplateOutlineFill),
		normals: newNormalCache(),
	}
	if err := o.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.Precompute {
		o.Bake()
	}
	return o, nil
}

// ApplyConfig runs every setter with the values in cfg. Only values that
// differ from the current ones mark the material dirty.
func (o *Outline) ApplyConfig(cfg config.OutlineConfig) error {
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	o.SetMode(mode)
	o.SetColor(cfg.Color.Vec4())
	o.SetWidth(cfg.Width)
	o.SetShow(cfg.Show)
	o.SetSmoothNormals(cfg.SmoothNormals)
	return nil
}

// Mode returns the outline mode.
func (o *Outline) Mode() Mode { return o.mode }

// SetMode sets the outline mode.
func (o *Outline) SetMode(m Mode) {
	if o.mode != m {
		o.mode = m
		o.markMaterial()
	}
}

// Color returns the outline color.
func (o *Outline) Color() mgl32.Vec4 { return o.color }

// SetColor sets the outline color.
func (o *Outline) SetColor(c mgl32.Vec4) {
	if o.color != c {
		o.color = c
		o.markMaterial()
	}
}

// Width returns the outline width.
func (o *Outline) Width() float32 { return o.width }

// SetWidth sets the outline width, clamped to [0, MaxOutlineWidth].
func (o *Outline) SetWidth(w float32) {
	w = util.Clamp(w, 0, MaxOutlineWidth)
	if o.width != w {
		o.width = w
		o.markMaterial()
	}
}

// Show reports whether the outline is drawn.
func (o *Outline) Show() bool { return o.show }

// SetShow shows or hides the outline without removing its materials.
func (o *Outline) SetShow(show bool) {
	if o.show != show {
		o.show = show
		o.markMaterial()
	}
}

// SmoothNormals reports whether the fill extrudes along smoothed normals.
func (o *Outline) SmoothNormals() bool { return o.smoothNormals }

// SetSmoothNormals toggles extrusion along smoothed normals.
func (o *Outline) SetSmoothNormals(smooth bool) {
	if o.smoothNormals != smooth {
		o.smoothNormals = smooth
		o.needsNormals = true
		o.markMaterial()
	}
}

// Bake precomputes smooth normals for every static mesh under the root.
func (o *Outline) Bake() {
	n := o.normals.bake(o.root)
	o.log.Debugf("baked smooth normals for %d meshes", n)
}

// Refresh schedules a rescan, a normals reload and a parameter push.
func (o *Outline) Refresh() {
	o.refresh()
	o.needsNormals = true
}

// Activate implements Effect.
func (o *Outline) Activate() error {
	if err := o.activate(); err != nil {
		return err
	}
	o.needsNormals = true
	return nil
}

// Deactivate implements Effect.
func (o *Outline) Deactivate() {
	o.deactivate()
}

// Destroy implements Effect.
func (o *Outline) Destroy() {
	o.destroy()
	o.needsNormals = false
}

// FrameUpdate implements Effect.
func (o *Outline) FrameUpdate(dt float64) {
	if !o.active {
		return
	}
	o.prune()

	if o.needsRescan {
		o.rescan()
	}

	if o.needsNormals {
		n := o.normals.load(o.root, o.smoothNormals)
		if n > 0 {
			o.log.Debugf("loaded smooth normals for %d meshes", n)
		}
		o.needsNormals = false
	}

	if o.needsMaterial {
		o.updateMaterialProperties()
		o.needsMaterial = false
	}
}

// updateMaterialProperties pushes the configuration into the mask and fill
// instances.
func (o *Outline) updateMaterialProperties() {
	mask, fill := o.materials[0], o.materials[1]

	stencil := scene.StencilKeep
	if o.show {
		stencil = scene.StencilReplace
	}
	mask.SetFloat(ParamStencilPass, float32(stencil))
	fill.SetColor(ParamOutlineColor, o.color)
	fill.SetFloat(ParamOutlineShow, util.Bool01(o.show))
	fill.SetFloat(ParamOutlineSmoothNormals, util.Bool01(o.smoothNormals))

	p := modeTable[o.mode]
	mask.SetFloat(ParamZTest, float32(p.maskZTest))
	fill.SetFloat(ParamZTest, float32(p.fillZTest))
	width := o.width
	if p.zeroWidth {
		width = 0
	}
	fill.SetFloat(ParamOutlineWidth, width)

	o.pushes++
	o.log.Debugf("parameter push %d: mode %s, width %.2f, show %t", o.pushes, o.mode, width, o.show)
}
