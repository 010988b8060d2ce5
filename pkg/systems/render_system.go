package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
)

// GlyphFaceFunc 按字号返回文字粒子使用的字体（nil 表示不绘制文字粒子）
type GlyphFaceFunc func(size float64) *text.GoTextFace

// RenderSystem 绘制氛围粒子
//
// 龙火花由 DragonSystem 绘制到龙的绘制层，这里跳过。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	glyphFace     GlyphFaceFunc
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{entityManager: em}
}

// SetGlyphFace 设置文字粒子字体来源
func (s *RenderSystem) SetGlyphFace(fn GlyphFaceFunc) {
	s.glyphFace = fn
}

// DrawParticles 绘制所有氛围粒子（龙火花除外）
func (s *RenderSystem) DrawParticles(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.AmbientParticleComponent](s.entityManager)
	for _, id := range ids {
		p, _ := ecs.GetComponent[*components.AmbientParticleComponent](s.entityManager, id)
		if p.Kind == config.KindDragonSpark || p.Life <= 0 {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if p.Glyph != "" {
			s.drawGlyph(screen, p, pos)
			continue
		}

		c := withAlpha(p.Color, p.Life)
		r := float32(math.Max(p.Size, 0.5))
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), r*2, withAlpha(c, 0.25), true)
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), r, c, true)
	}
}

func (s *RenderSystem) drawGlyph(screen *ebiten.Image, p *components.AmbientParticleComponent, pos *components.PositionComponent) {
	if s.glyphFace == nil {
		return
	}
	face := s.glyphFace(p.Size)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleWithColor(p.Color)
	op.ColorScale.ScaleAlpha(float32(p.Life * 0.35))
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, p.Glyph, face, op)
}
