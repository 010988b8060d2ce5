package systems

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
	"github.com/decker502/inferno/pkg/entities"
)

// MainCardSystem 主卡片上的小部件：色相背景、指针视差、时钟、横幅轮播
type MainCardSystem struct {
	entityManager *ecs.EntityManager
	viewport      entities.Viewport

	// now 可替换的时钟来源（测试使用固定时间）
	now func() time.Time
}

// NewMainCardSystem 创建主卡片系统
func NewMainCardSystem(em *ecs.EntityManager, vp entities.Viewport) *MainCardSystem {
	return &MainCardSystem{
		entityManager: em,
		viewport:      vp,
		now:           time.Now,
	}
}

// SetClock 替换时钟来源
func (s *MainCardSystem) SetClock(now func() time.Time) {
	s.now = now
}

// SetViewport 视口尺寸变化
func (s *MainCardSystem) SetViewport(vp entities.Viewport) {
	s.viewport = vp
}

// Update 推进所有小部件
func (s *MainCardSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.BackgroundComponent](s.entityManager) {
		bg, _ := ecs.GetComponent[*components.BackgroundComponent](s.entityManager, id)
		if bg.Interval <= 0 {
			continue
		}
		bg.Elapsed += dt
		for bg.Elapsed >= bg.Interval {
			bg.Elapsed -= bg.Interval
			bg.Hue = math.Mod(bg.Hue+1, 360)
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ParallaxComponent](s.entityManager) {
		p, _ := ecs.GetComponent[*components.ParallaxComponent](s.entityManager, id)
		s.stepParallax(p)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ClockComponent](s.entityManager) {
		c, _ := ecs.GetComponent[*components.ClockComponent](s.entityManager, id)
		c.Elapsed += dt
		if c.Hours == "" || c.Elapsed >= 1 {
			c.Elapsed = 0
			s.tick(c)
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.BannerComponent](s.entityManager) {
		b, _ := ecs.GetComponent[*components.BannerComponent](s.entityManager, id)
		if len(b.Slides) == 0 || b.Interval <= 0 {
			continue
		}
		b.Elapsed += dt
		if b.Elapsed >= b.Interval {
			b.Elapsed = 0
			b.Current = (b.Current + 1) % len(b.Slides)
		}
	}
}

// PointerMoved 记录原始指针位置
func (s *MainCardSystem) PointerMoved(x, y float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ParallaxComponent](s.entityManager) {
		p, _ := ecs.GetComponent[*components.ParallaxComponent](s.entityManager, id)
		p.PointerX, p.PointerY = x, y
	}
}

// stepParallax 平滑指针并计算背景偏移和卡片倾斜
func (s *MainCardSystem) stepParallax(p *components.ParallaxComponent) {
	p.SmoothX += (p.PointerX - p.SmoothX) * p.Lerp
	p.SmoothY += (p.PointerY - p.SmoothY) * p.Lerp

	w, h := s.viewport.Width, s.viewport.Height
	if w <= 0 || h <= 0 {
		return
	}
	nx := p.SmoothX/w - 0.5
	ny := p.SmoothY/h - 0.5
	p.TiltX = math.Max(-0.5, math.Min(0.5, nx))
	p.TiltY = math.Max(-0.5, math.Min(0.5, ny))
	p.OffsetX = p.TiltX * 2 * config.ParallaxBackgroundShift
	p.OffsetY = p.TiltY * 2 * config.ParallaxBackgroundShift
}

// tick 刷新时钟文本：HH:MM 和 "MON · JAN 2"
func (s *MainCardSystem) tick(c *components.ClockComponent) {
	c.Now = s.now()
	c.Hours = fmt.Sprintf("%02d", c.Now.Hour())
	c.Minutes = fmt.Sprintf("%02d", c.Now.Minute())
	c.Date = strings.ToUpper(c.Now.Format("Mon")) + " · " + strings.ToUpper(c.Now.Format("Jan")) + " " + fmt.Sprint(c.Now.Day())
}

// Widgets 返回主卡片小部件组件（不存在时为 nil）
func (s *MainCardSystem) Widgets() (*components.BackgroundComponent, *components.ParallaxComponent, *components.ClockComponent, *components.BannerComponent) {
	ids := ecs.GetEntitiesWith1[*components.BackgroundComponent](s.entityManager)
	if len(ids) == 0 {
		return nil, nil, nil, nil
	}
	id := ids[0]
	bg, _ := ecs.GetComponent[*components.BackgroundComponent](s.entityManager, id)
	px, _ := ecs.GetComponent[*components.ParallaxComponent](s.entityManager, id)
	ck, _ := ecs.GetComponent[*components.ClockComponent](s.entityManager, id)
	bn, _ := ecs.GetComponent[*components.BannerComponent](s.entityManager, id)
	return bg, px, ck, bn
}

// DrawBackground 用当前色相绘制纵向渐变背景，alpha 跟随主卡片容器
func (s *MainCardSystem) DrawBackground(screen *ebiten.Image, alpha float64) {
	if alpha <= 0 {
		return
	}
	bg, px, _, _ := s.Widgets()
	hue := 270.0
	if bg != nil {
		hue = bg.Hue
	}
	offX, offY := 0.0, 0.0
	if px != nil {
		offX, offY = px.OffsetX, px.OffsetY
	}

	b := screen.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	top := colorful.Hsl(hue, 0.6, 0.08)
	bottom := colorful.Hsl(math.Mod(hue+40, 360), 0.7, 0.03)

	const bands = 24
	bandH := h / bands
	for i := 0; i < bands; i++ {
		c := top.BlendLab(bottom, float64(i)/bands).Clamped()
		vector.DrawFilledRect(screen, 0, float32(i)*bandH, w, bandH+1, toNRGBA(c, alpha), false)
	}

	// 视差光斑
	glow := toNRGBA(colorful.Hsl(hue, 0.8, 0.5), 0.08*alpha)
	vector.DrawFilledCircle(screen, w*0.25+float32(offX), h*0.3+float32(offY), h*0.35, glow, true)
	vector.DrawFilledCircle(screen, w*0.75-float32(offX), h*0.7-float32(offY), h*0.3, color.NRGBA{R: glow.G, G: glow.B, B: glow.R, A: glow.A}, true)
}
