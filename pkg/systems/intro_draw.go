package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/ecs"
	"github.com/decker502/inferno/pkg/kinematics"
)

// withAlpha 按比例缩放颜色的透明度
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A) * a)
	return c
}

// colorRamp 多段 Lab 颜色渐变
type colorRamp []colorful.Color

// newColorRamp 从 NRGBA 列表构建渐变；空列表退化为白色
func newColorRamp(stops []color.NRGBA) colorRamp {
	ramp := make(colorRamp, 0, len(stops))
	for _, c := range stops {
		c.A = 255
		cc, _ := colorful.MakeColor(c)
		ramp = append(ramp, cc)
	}
	if len(ramp) == 0 {
		ramp = append(ramp, colorful.Color{R: 1, G: 1, B: 1})
	}
	return ramp
}

// At 返回 t ∈ [0, 1] 处的颜色
func (r colorRamp) At(t float64, alpha float64) color.NRGBA {
	if len(r) == 1 {
		return toNRGBA(r[0], alpha)
	}
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(r)-1)
	i := int(pos)
	if i >= len(r)-1 {
		return toNRGBA(r[len(r)-1], alpha)
	}
	return toNRGBA(r[i].BlendLab(r[i+1], pos-float64(i)).Clamped(), alpha)
}

func toNRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Max(0, math.Min(1, alpha)) * 255)}
}

// segmentWidth 节点 i 处的身体宽度：头部最粗，向尾部线性收细
func segmentWidth(i, n int, head, tail float64) float64 {
	if n <= 1 {
		return head
	}
	t := float64(i) / float64(n-1)
	return head + (tail-head)*t
}

// drawChainBody 逐段绘制链条身体（先粗的半透明光晕，再实体）
func drawChainBody(dst *ebiten.Image, chain *kinematics.Chain, ramp colorRamp, alpha, headWidth, tailWidth float64) {
	segs := chain.Segments
	n := len(segs)
	for i := n - 1; i >= 1; i-- {
		a, b := segs[i-1], segs[i]
		t := float64(i) / float64(n)
		w := segmentWidth(i, n, headWidth, tailWidth)
		c := ramp.At(t, alpha*(1-t*0.6))

		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(w*2.2), withAlpha(c, 0.18), true)
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(w), c, true)
		vector.DrawFilledCircle(dst, float32(b.X), float32(b.Y), float32(w/2), c, true)
	}
}

// drawFins 每隔几节画一对背鳍
func drawFins(dst *ebiten.Image, chain *kinematics.Chain, every int, length float64, clr color.NRGBA) {
	segs := chain.Segments
	n := len(segs)
	for i := every; i < n-1; i += every {
		s := segs[i]
		l := length * (1 - float64(i)/float64(n))
		for _, side := range []float64{-1, 1} {
			a := s.Angle + side*math.Pi/2.4
			ex := s.X + math.Cos(a)*l
			ey := s.Y + math.Sin(a)*l
			vector.StrokeLine(dst, float32(s.X), float32(s.Y), float32(ex), float32(ey), 1.5, clr, true)
		}
	}
}

// drawDragonHead 头部：径向光晕 + 菱形头 + 双眼
func drawDragonHead(dst *ebiten.Image, x, y, angle, size float64, body, eye color.NRGBA, alpha float64) {
	for k := 4; k >= 1; k-- {
		r := size * (1 + float64(k)*0.6)
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), withAlpha(body, alpha*0.08*float64(5-k)), true)
	}

	cos, sin := math.Cos(angle), math.Sin(angle)
	point := func(f, s float64) (float32, float32) {
		return float32(x + cos*f - sin*s), float32(y + sin*f + cos*s)
	}
	nx, ny := point(size*1.6, 0)
	lx, ly := point(0, -size*0.8)
	bx, by := point(-size*0.9, 0)
	rx, ry := point(0, size*0.8)

	c := withAlpha(body, alpha)
	vector.DrawFilledCircle(dst, float32(x), float32(y), float32(size*0.75), c, true)
	vector.StrokeLine(dst, nx, ny, lx, ly, float32(size*0.5), c, true)
	vector.StrokeLine(dst, lx, ly, bx, by, float32(size*0.5), c, true)
	vector.StrokeLine(dst, bx, by, rx, ry, float32(size*0.5), c, true)
	vector.StrokeLine(dst, rx, ry, nx, ny, float32(size*0.5), c, true)

	// 角
	for _, side := range []float64{-1, 1} {
		hx, hy := point(-size*0.4, side*size*0.6)
		tx, ty := point(-size*1.8, side*size*1.3)
		vector.StrokeLine(dst, hx, hy, tx, ty, 2, c, true)
	}

	for _, side := range []float64{-1, 1} {
		ex, ey := point(size*0.5, side*size*0.35)
		vector.DrawFilledCircle(dst, ex, ey, float32(size*0.18), withAlpha(eye, alpha), true)
	}
}

// drawOwnedParticles 绘制属于 owner 的粒子（龙的火花）
func drawOwnedParticles(dst *ebiten.Image, em *ecs.EntityManager, owner ecs.EntityID, alpha float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.AmbientParticleComponent](em) {
		p, _ := ecs.GetComponent[*components.AmbientParticleComponent](em, id)
		if p.Owner != owner {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vector.DrawFilledCircle(dst, float32(pos.X), float32(pos.Y), float32(math.Max(p.Size*p.Life, 0.3)), withAlpha(p.Color, p.Life*alpha), true)
	}
}
