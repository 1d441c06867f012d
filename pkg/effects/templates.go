package effects

import (
	"github.com/go-gl/mathgl/mgl32"

	"quickfx/pkg/scene"
)

// Builtin material template names.
const (
	TemplateStandard     = "Standard"
	TemplateOutlineMask  = "OutlineMask"
	TemplateOutlineFill  = "OutlineFill"
	TemplateOutlineEmpty = "OutlineEmpty"
	TemplateBlinker      = "ColorBlinker"
	TemplateBlinkerEmpty = "BlinkerEmpty"
	TemplateOverlay      = "ColorOverlay"
)

// Shader program names referenced by the builtin templates.
const (
	ShaderStandard    = "standard"
	ShaderOutlineMask = "outline_mask"
	ShaderOutlineFill = "outline_fill"
	ShaderBlinker     = "blinker"
	ShaderOverlay     = "overlay"
	ShaderEmpty       = "empty"
)

// Shader parameter names.
const (
	ParamColor = "color"
	ParamShow  = "show"
	ParamZTest = "zTest"

	ParamStencilPass          = "stencilPass"
	ParamOutlineColor         = "outlineColor"
	ParamOutlineShow          = "outlineShow"
	ParamOutlineWidth         = "outlineWidth"
	ParamOutlineSmoothNormals = "outlineUseSmoothedNormal"

	ParamBlinkBand    = "blinkBand"
	ParamBlinkFalloff = "blinkFalloff"
	ParamBlinkSpeed   = "blinkSpeed"
	ParamBlinkPeriod  = "blinkPeriod"
	ParamBlinkStart   = "blinkStart"
	ParamBlinkEnd     = "blinkEnd"
)

// SmoothNormalChannel is the UV channel that holds baked smooth normals.
const SmoothNormalChannel = 3

// NewTemplateLibrary returns a library holding the builtin templates.
func NewTemplateLibrary() *scene.Library {
	lib := scene.NewLibrary()
	white := mgl32.Vec4{1, 1, 1, 1}

	std := scene.NewMaterial(TemplateStandard, scene.KindStandard, ShaderStandard)
	std.SetColor(ParamColor, mgl32.Vec4{0.8, 0.8, 0.8, 1})
	lib.Register(std)

	mask := scene.NewMaterial(TemplateOutlineMask, scene.KindOutlineMask, ShaderOutlineMask)
	mask.SetFloat(ParamZTest, float32(scene.CompareAlways))
	mask.SetFloat(ParamStencilPass, float32(scene.StencilReplace))
	lib.Register(mask)

	fill := scene.NewMaterial(TemplateOutlineFill, scene.KindOutlineFill, ShaderOutlineFill)
	fill.SetFloat(ParamZTest, float32(scene.CompareAlways))
	fill.SetColor(ParamOutlineColor, white)
	fill.SetFloat(ParamOutlineShow, 1)
	fill.SetFloat(ParamOutlineWidth, 2)
	fill.SetFloat(ParamOutlineSmoothNormals, 1)
	lib.Register(fill)

	lib.Register(scene.NewMaterial(TemplateOutlineEmpty, scene.KindOutlineEmpty, ShaderEmpty))
	lib.Register(scene.NewMaterial(TemplateBlinkerEmpty, scene.KindBlinkerEmpty, ShaderEmpty))

	blink := scene.NewMaterial(TemplateBlinker, scene.KindBlinker, ShaderBlinker)
	blink.SetColor(ParamColor, white)
	blink.SetFloat(ParamShow, 1)
	blink.SetFloat(ParamBlinkSpeed, 1.5)
	blink.SetFloat(ParamBlinkPeriod, 2)
	blink.SetVector(ParamBlinkStart, mgl32.Vec4{0, -2, 0, 0})
	blink.SetVector(ParamBlinkEnd, mgl32.Vec4{0, 2, 0, 0})
	lib.Register(blink)

	overlay := scene.NewMaterial(TemplateOverlay, scene.KindOverlay, ShaderOverlay)
	overlay.SetColor(ParamColor, white)
	lib.Register(overlay)

	return lib
}
