package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/inferno/pkg/kinematics"
)

var (
	dragonGuideColor = color.NRGBA{R: 124, G: 45, B: 255, A: 40}
	dragonGlowColor  = color.NRGBA{R: 168, G: 85, B: 247, A: 90}
	dragonFinColor   = color.NRGBA{R: 255, G: 45, B: 155, A: 150}
	dragonEyeColor   = color.NRGBA{R: 255, G: 240, B: 120, A: 255}
)

// Draw 把龙绘制到 dst（通常是 dragon 绘制层）；每帧先清空
func (s *DragonSystem) Draw(dst *ebiten.Image) {
	dst.Clear()

	d, ok := s.dragon()
	if !ok {
		return
	}

	alpha := d.Orbit.Alpha()
	if d.Exiting && d.ExitDelay > 0 {
		alpha *= math.Max(0, 1-d.ExitElapsed/d.ExitDelay)
	}
	if alpha <= 0 {
		return
	}

	// 收束前显示轨道辅助圆和中心光晕
	if d.Orbit.Stage() < kinematics.StageConverge {
		cx, cy := d.Orbit.Center()
		vector.StrokeCircle(dst, float32(cx), float32(cy), float32(d.Orbit.Radius()), 1, withAlpha(dragonGuideColor, alpha), true)
		for k := 3; k >= 1; k-- {
			vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(24*k), withAlpha(dragonGlowColor, alpha*0.12), true)
		}
	}

	ramp := newColorRamp(d.BodyColors)
	drawChainBody(dst, d.Chain, ramp, alpha, 14, 2)
	drawFins(dst, d.Chain, 4, 16, withAlpha(dragonFinColor, alpha))

	hx, hy := d.Chain.Head()
	drawDragonHead(dst, hx, hy, d.Chain.HeadAngle(), 13, ramp.At(0, 1), dragonEyeColor, alpha)

	drawOwnedParticles(dst, s.entityManager, s.dragonEntity, alpha)
}
