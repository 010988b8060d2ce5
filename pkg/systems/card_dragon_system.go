package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/ecs"
)

var cardDragonColors = []color.NRGBA{
	{R: 0, G: 212, B: 255, A: 255},
	{R: 124, G: 45, B: 255, A: 255},
	{R: 255, G: 45, B: 155, A: 255},
}

// CardDragonSystem 主卡片周围的环绕小龙
// 头部沿卡片外接椭圆匀速运动，身体用同一套链条跟随，透明度逐渐升到上限。
type CardDragonSystem struct {
	entityManager *ecs.EntityManager
	ramp          colorRamp
}

// NewCardDragonSystem 创建环绕小龙系统
func NewCardDragonSystem(em *ecs.EntityManager) *CardDragonSystem {
	return &CardDragonSystem{
		entityManager: em,
		ramp:          newColorRamp(cardDragonColors),
	}
}

// Update 每帧推进一次角度
func (s *CardDragonSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CardDragonComponent](s.entityManager) {
		d, _ := ecs.GetComponent[*components.CardDragonComponent](s.entityManager, id)

		d.Angle += d.AngularSpeed
		tx := d.CenterX + math.Cos(d.Angle)*d.RadiusX
		ty := d.CenterY + math.Sin(d.Angle)*d.RadiusY
		d.Chain.Advance(tx, ty)

		if d.Alpha < d.MaxAlpha {
			d.Alpha = math.Min(d.MaxAlpha, d.Alpha+d.FadeInRate*dt)
		}
	}
}

// SetBounds 卡片矩形变化（视口尺寸变化）时更新椭圆
func (s *CardDragonSystem) SetBounds(cx, cy, rx, ry float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CardDragonComponent](s.entityManager) {
		d, _ := ecs.GetComponent[*components.CardDragonComponent](s.entityManager, id)
		d.CenterX, d.CenterY = cx, cy
		d.RadiusX, d.RadiusY = rx, ry
	}
}

// Draw 绘制到 dst（card-dragon 绘制层），每帧先清空
func (s *CardDragonSystem) Draw(dst *ebiten.Image) {
	dst.Clear()
	for _, id := range ecs.GetEntitiesWith1[*components.CardDragonComponent](s.entityManager) {
		d, _ := ecs.GetComponent[*components.CardDragonComponent](s.entityManager, id)
		if d.Alpha <= 0 {
			continue
		}
		drawChainBody(dst, d.Chain, s.ramp, d.Alpha, 7, 1)
		hx, hy := d.Chain.Head()
		drawDragonHead(dst, hx, hy, d.Chain.HeadAngle(), 6, s.ramp.At(0, 1), dragonEyeColor, d.Alpha)
	}
}
