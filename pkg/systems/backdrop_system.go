package systems

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/ecs"
	"github.com/decker502/inferno/pkg/entities"
)

// BackdropSystem 矩阵雨和漂浮粒子场
//
// 矩阵雨只在 boot 阶段推进；停用后整层在 FadeOut 秒内淡出，跳过时直接隐藏。
type BackdropSystem struct {
	entityManager  *ecs.EntityManager
	rng            *rand.Rand
	viewport       entities.Viewport
	sequenceEntity ecs.EntityID
}

// NewBackdropSystem 创建背景系统
func NewBackdropSystem(em *ecs.EntityManager, rng *rand.Rand, vp entities.Viewport, sequenceEntity ecs.EntityID) *BackdropSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &BackdropSystem{
		entityManager:  em,
		rng:            rng,
		viewport:       vp,
		sequenceEntity: sequenceEntity,
	}
}

// SetViewport 视口尺寸变化：矩阵雨按新宽度重建列
func (s *BackdropSystem) SetViewport(vp entities.Viewport) {
	s.viewport = vp
	for _, id := range ecs.GetEntitiesWith1[*components.MatrixRainComponent](s.entityManager) {
		m, _ := ecs.GetComponent[*components.MatrixRainComponent](s.entityManager, id)
		cols := 1
		if m.ColumnWidth > 0 {
			cols = int(vp.Width / m.ColumnWidth)
		}
		if cols < 1 {
			cols = 1
		}
		drops := make([]float64, cols)
		copy(drops, m.Drops)
		m.Drops = drops
	}
}

// Update 推进矩阵雨和粒子场
func (s *BackdropSystem) Update(dt float64) {
	seq, _ := ecs.GetComponent[*components.IntroSequenceComponent](s.entityManager, s.sequenceEntity)
	active := seq != nil && seq.MatrixActive

	for _, id := range ecs.GetEntitiesWith1[*components.MatrixRainComponent](s.entityManager) {
		m, _ := ecs.GetComponent[*components.MatrixRainComponent](s.entityManager, id)
		if seq != nil && seq.MatrixHidden {
			m.Alpha = 0
			continue
		}
		if active {
			m.Alpha = 1
			s.stepMatrix(m)
			continue
		}
		m.Alpha = fadeStep(m.Alpha, 0, dt, m.FadeOut)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ParticleFieldComponent](s.entityManager) {
		f, _ := ecs.GetComponent[*components.ParticleFieldComponent](s.entityManager, id)
		s.stepField(f, dt)
	}
}

// stepMatrix 每列下落 0.5-1 行，越过底部后以小概率回到顶部
func (s *BackdropSystem) stepMatrix(m *components.MatrixRainComponent) {
	rows := s.viewport.Height / math.Max(m.ColumnWidth, 1)
	for i := range m.Drops {
		m.Drops[i] += 0.5 + s.rng.Float64()*0.5
		if m.Drops[i] > rows && s.rng.Float64() > 0.975 {
			m.Drops[i] = 0
		}
	}
}

// stepField 粒子匀速漂移，碰到边缘反弹
func (s *BackdropSystem) stepField(f *components.ParticleFieldComponent, dt float64) {
	w, h := s.viewport.Width, s.viewport.Height
	for i := range f.Points {
		p := &f.Points[i]
		p.X += p.VX * dt
		p.Y += p.VY * dt
		if p.X < 0 || p.X > w {
			p.VX = -p.VX
			p.X = math.Max(0, math.Min(w, p.X))
		}
		if p.Y < 0 || p.Y > h {
			p.VY = -p.VY
			p.Y = math.Max(0, math.Min(h, p.Y))
		}
	}
}

// MatrixAlpha 矩阵雨整层不透明度（没有矩阵雨时为 0）
func (s *BackdropSystem) MatrixAlpha() float64 {
	for _, id := range ecs.GetEntitiesWith1[*components.MatrixRainComponent](s.entityManager) {
		m, _ := ecs.GetComponent[*components.MatrixRainComponent](s.entityManager, id)
		return m.Alpha
	}
	return 0
}

// DrawMatrix 在持久层上叠加半透明黑色，再画每列的新字符
func (s *BackdropSystem) DrawMatrix(dst *ebiten.Image, face *text.GoTextFace) {
	seq, _ := ecs.GetComponent[*components.IntroSequenceComponent](s.entityManager, s.sequenceEntity)
	if seq == nil || !seq.MatrixActive {
		return
	}
	for _, id := range ecs.GetEntitiesWith1[*components.MatrixRainComponent](s.entityManager) {
		m, _ := ecs.GetComponent[*components.MatrixRainComponent](s.entityManager, id)
		b := dst.Bounds()
		vector.DrawFilledRect(dst, 0, 0, float32(b.Dx()), float32(b.Dy()), color.NRGBA{A: uint8(m.Fade * 255)}, false)
		if face == nil || len(m.Charset) == 0 {
			continue
		}
		for i, row := range m.Drops {
			ch := string(m.Charset[s.rng.Intn(len(m.Charset))])
			op := &text.DrawOptions{}
			op.GeoM.Translate(float64(i)*m.ColumnWidth, row*m.ColumnWidth)
			if len(m.Palette) > 0 {
				op.ColorScale.ScaleWithColor(m.Palette[s.rng.Intn(len(m.Palette))])
			}
			text.Draw(dst, ch, face, op)
		}
	}
}

// DrawField 绘制粒子场和近距离连线（每帧清空）
func (s *BackdropSystem) DrawField(dst *ebiten.Image) {
	dst.Clear()
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleFieldComponent](s.entityManager) {
		f, _ := ecs.GetComponent[*components.ParticleFieldComponent](s.entityManager, id)
		link := f.LinkDistance
		for i := range f.Points {
			a := &f.Points[i]
			vector.DrawFilledCircle(dst, float32(a.X), float32(a.Y), float32(a.Size), withAlpha(a.Color, a.Alpha), true)
			for j := i + 1; j < len(f.Points); j++ {
				b := &f.Points[j]
				d := math.Hypot(a.X-b.X, a.Y-b.Y)
				if d >= link {
					continue
				}
				c := color.NRGBA{R: 124, G: 45, B: 255, A: uint8((1 - d/link) * 0.08 * 255)}
				vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 0.5, c, true)
			}
		}
	}
}
