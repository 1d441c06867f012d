package effects

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"quickfx/internal/logger"
	"quickfx/internal/util"
	"quickfx/pkg/config"
	"quickfx/pkg/scene"
)

// Direction is the world axis and sense along which the blink band moves.
type Direction int

const (
	XPositive Direction = iota
	XNegative
	YPositive
	YNegative
	ZPositive
	ZNegative
)

var directionNames = []string{
	XPositive: "x_positive",
	XNegative: "x_negative",
	YPositive: "y_positive",
	YNegative: "y_negative",
	ZPositive: "z_positive",
	ZNegative: "z_negative",
}

func (d Direction) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection converts a direction name to a Direction.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return YPositive, fmt.Errorf("unknown blinker direction %q", s)
}

// axis returns the vector component the direction runs along.
func (d Direction) axis() int {
	return int(d) / 2
}

func (d Direction) negative() bool {
	return int(d)%2 == 1
}

// Band sizing relative to the total extent along the axis.
const (
	bandHeightDivisor = 40
	bandFalloffFactor = 0.75
)

// Blinker sweeps a colored band across every renderer under its root along
// a world axis.
type Blinker struct {
	base

	color       mgl32.Vec4
	direction   Direction
	speed       float32
	cyclePeriod float32
	show        bool

	start       mgl32.Vec3
	end         mgl32.Vec3
	bandHeight  float32
	bandFalloff float32

	pushes int
}

var _ Effect = (*Blinker)(nil)

// NewBlinker creates an inactive blinker over root configured from cfg.
func NewBlinker(root *scene.Node, lib *scene.Library, cfg config.BlinkerConfig, log *logger.Logger) (*Blinker, error) {
	b := &Blinker{
		base:  newBase(KindBlinker, root, lib, log, TemplateBlinker),
		start: mgl32.Vec3{0, -2, 0},
		end:   mgl32.Vec3{0, 2, 0},
	}
	if err := b.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	return b, nil
}

// ApplyConfig runs every setter with the values in cfg.
func (b *Blinker) ApplyConfig(cfg config.BlinkerConfig) error {
	dir, err := ParseDirection(cfg.Direction)
	if err != nil {
		return err
	}
	b.SetDirection(dir)
	b.SetColor(cfg.Color.Vec4())
	b.SetSpeed(cfg.Speed)
	b.SetCyclePeriod(cfg.CyclePeriod)
	b.SetShow(cfg.Show)
	return nil
}

// Color returns the band color.
func (b *Blinker) Color() mgl32.Vec4 { return b.color }

// SetColor sets the band color.
func (b *Blinker) SetColor(c mgl32.Vec4) {
	if b.color != c {
		b.color = c
		b.markMaterial()
	}
}

// Direction returns the sweep direction.
func (b *Blinker) Direction() Direction { return b.direction }

// SetDirection sets the sweep direction.
func (b *Blinker) SetDirection(d Direction) {
	if b.direction != d {
		b.direction = d
		b.markMaterial()
	}
}

// Speed returns the sweep speed.
func (b *Blinker) Speed() float32 { return b.speed }

// SetSpeed sets the sweep speed.
func (b *Blinker) SetSpeed(v float32) {
	if b.speed != v {
		b.speed = v
		b.markMaterial()
	}
}

// CyclePeriod returns the time between two sweeps.
func (b *Blinker) CyclePeriod() float32 { return b.cyclePeriod }

// SetCyclePeriod sets the time between two sweeps.
func (b *Blinker) SetCyclePeriod(v float32) {
	if b.cyclePeriod != v {
		b.cyclePeriod = v
		b.markMaterial()
	}
}

// Show reports whether the band is drawn.
func (b *Blinker) Show() bool { return b.show }

// SetShow shows or hides the band.
func (b *Blinker) SetShow(show bool) {
	if b.show != show {
		b.show = show
		b.markMaterial()
	}
}

// Band returns the current band start and end points.
func (b *Blinker) Band() (start, end mgl32.Vec3) {
	return b.start, b.end
}

// BandHeight returns the width of the bright part of the band.
func (b *Blinker) BandHeight() float32 { return b.bandHeight }

// BandFalloff returns the length of the band's fade.
func (b *Blinker) BandFalloff() float32 { return b.bandFalloff }

// Refresh implements Effect.
func (b *Blinker) Refresh() {
	b.refresh()
}

// Activate implements Effect.
func (b *Blinker) Activate() error {
	return b.activate()
}

// Deactivate implements Effect.
func (b *Blinker) Deactivate() {
	b.deactivate()
}

// Destroy implements Effect.
func (b *Blinker) Destroy() {
	b.destroy()
}

// FrameUpdate implements Effect. The band is recomputed every frame since
// renderers may move.
func (b *Blinker) FrameUpdate(dt float64) {
	if !b.active {
		return
	}
	b.prune()

	if b.needsRescan {
		b.rescan()
	}

	b.recalculateRange()

	if b.needsMaterial {
		b.updateMaterialProperties()
		b.needsMaterial = false
	}
	b.updateBand()
}

// recalculateRange computes the band from the world bounds of the applied
// renderers. Renderers with empty bounds are ignored; it does nothing when
// no renderer has bounds.
func (b *Blinker) recalculateRange() {
	axis := b.direction.axis()
	lo := float32(math.Inf(1))
	hi := float32(math.Inf(-1))
	var centroid mgl32.Vec3
	n := 0
	for _, r := range b.reg.applied.items {
		bounds := r.Bounds()
		if bounds.IsEmpty() {
			continue
		}
		lo = min(lo, bounds.Min[axis])
		hi = max(hi, bounds.Max[axis])
		if node := r.Node(); node != nil {
			centroid = centroid.Add(node.WorldPosition())
		}
		n++
	}
	if n == 0 {
		return
	}
	centroid = centroid.Mul(1 / float32(n))

	b.start, b.end = centroid, centroid
	if b.direction.negative() {
		b.start[axis], b.end[axis] = hi, lo
	} else {
		b.start[axis], b.end[axis] = lo, hi
	}

	extent := hi - lo
	if h := extent / bandHeightDivisor; !util.ApproxEqual(b.bandHeight, h, util.Epsilon) {
		b.bandHeight = h
		b.markMaterial()
	}
	if f := extent * bandFalloffFactor; !util.ApproxEqual(b.bandFalloff, f, util.Epsilon) {
		b.bandFalloff = f
		b.markMaterial()
	}
}

// updateMaterialProperties pushes the on-demand parameters.
func (b *Blinker) updateMaterialProperties() {
	m := b.materials[0]
	m.SetColor(ParamColor, b.color)
	m.SetFloat(ParamShow, util.Bool01(b.show))
	m.SetFloat(ParamBlinkBand, b.bandHeight)
	m.SetFloat(ParamBlinkFalloff, b.bandFalloff)
	m.SetFloat(ParamBlinkSpeed, b.speed)
	m.SetFloat(ParamBlinkPeriod, b.cyclePeriod)
	b.pushes++
	b.log.Debugf("parameter push %d: band %.3f, falloff %.3f, direction %s", b.pushes, b.bandHeight, b.bandFalloff, b.direction)
}

// updateBand pushes the band end points, every frame.
func (b *Blinker) updateBand() {
	m := b.materials[0]
	m.SetVector(ParamBlinkStart, b.start.Vec4(0))
	m.SetVector(ParamBlinkEnd, b.end.Vec4(0))
}
