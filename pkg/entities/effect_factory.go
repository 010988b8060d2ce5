package entities

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
)

// Viewport 视口尺寸（像素）
type Viewport struct {
	Width, Height float64
}

// NewAmbientParticle 创建一个氛围粒子实体
// 出生位置、速度、颜色、大小都按粒子种类的参数表随机生成。
//
// 参数:
//   - em: 实体管理器
//   - rng: 随机源（nil 表示使用全局随机源）
//   - kind: 粒子种类
//   - owner: 生成者实体（生成器或龙）
//   - x, y: 出生点，仅 OriginPoint 种类使用
//   - vp: 视口尺寸，用于底边/随机出生位置
//   - glyph: 文字粒子的字符，非文字粒子传空字符串
//
// 返回:
//   - ecs.EntityID: 粒子实体ID
//   - error: 未知粒子种类
func NewAmbientParticle(em *ecs.EntityManager, rng *rand.Rand, kind config.ParticleKind, owner ecs.EntityID, x, y float64, vp Viewport, glyph string) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	spec, ok := config.ParticleSpec(kind)
	if !ok {
		return 0, fmt.Errorf("unknown particle kind: %s", kind)
	}

	switch spec.Origin {
	case config.OriginBottomEdge:
		x = config.Range{Min: 0, Max: vp.Width}.Sample(rng)
		y = vp.Height + 4
	case config.OriginAnywhere:
		x = config.Range{Min: 0, Max: vp.Width}.Sample(rng)
		y = config.Range{Min: 0, Max: vp.Height}.Sample(rng)
	}

	speed := spec.Speed.Sample(rng)
	heading := spec.Heading.Sample(rng)

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})

	particle := &components.AmbientParticleComponent{
		Kind:      kind,
		Owner:     owner,
		VelocityX: math.Cos(heading) * speed,
		VelocityY: math.Sin(heading) * speed,
		Drag:      spec.Drag,
		Life:      1,
		Decay:     spec.Decay.Sample(rng),
		Size:      spec.Size.Sample(rng),
		Color:     spec.PickColor(rng),
	}
	if spec.Glyph {
		particle.Glyph = glyph
	}
	em.AddComponent(entityID, particle)

	// 外部超时
	if spec.Timeout > 0 {
		em.AddComponent(entityID, &components.LifetimeComponent{
			MaxLifetime: spec.Timeout,
		})
	}

	return entityID, nil
}

// RingParams 能量环参数
type RingParams struct {
	MaxRadius float64
	Speed     float64
	MinSpeed  float64
	Friction  float64
	Width     float64
	Color     color.NRGBA
}

// NewEnergyRing 在 (x, y) 创建能量环
func NewEnergyRing(em *ecs.EntityManager, x, y float64, p RingParams) ecs.EntityID {
	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.EnergyRingComponent{
		MaxRadius: p.MaxRadius,
		Speed:     p.Speed,
		MinSpeed:  p.MinSpeed,
		Friction:  p.Friction,
		Life:      1,
		Width:     p.Width,
		Color:     p.Color,
	})
	return entityID
}

// rippleColor 点击涟漪颜色 rgba(168,85,247,0.6)
var rippleColor = color.NRGBA{R: 168, G: 85, B: 247, A: 153}

// NewClickRipple 在点击位置创建一组错开时长的涟漪环
// 第 i 圈的时长为 duration + i*stagger；初速度取 2*半径/时长，最低速度保证在时长内结束。
func NewClickRipple(em *ecs.EntityManager, x, y float64, cfg config.AmbientConfig) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, cfg.RippleRings)
	for i := 0; i < cfg.RippleRings; i++ {
		d := cfg.RippleDuration + float64(i)*cfg.RippleStagger
		if d <= 0 {
			d = 0.1
		}
		ids = append(ids, NewEnergyRing(em, x, y, RingParams{
			MaxRadius: cfg.RippleRadius,
			Speed:     2 * cfg.RippleRadius / d,
			MinSpeed:  cfg.RippleRadius / d,
			Friction:  0.3,
			Width:     1,
			Color:     rippleColor,
		}))
	}
	return ids
}

// NewShockwave 创建主卡片阶段空格触发的冲击波
func NewShockwave(em *ecs.EntityManager, x, y float64, cfg config.AmbientConfig) ecs.EntityID {
	return NewEnergyRing(em, x, y, RingParams{
		MaxRadius: cfg.ShockwaveRadius,
		Speed:     cfg.ShockwaveSpeed,
		MinSpeed:  cfg.ShockwaveSpeed * 0.1,
		Friction:  cfg.ShockwaveFriction,
		Width:     3,
		Color:     color.NRGBA{R: 0, G: 212, B: 255, A: 200},
	})
}

// NewTransitionFlash 创建全屏转场闪光
func NewTransitionFlash(em *ecs.EntityManager, cfg config.FlashConfig) ecs.EntityID {
	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.FlashEffectComponent{
		Duration:  cfg.Duration,
		Intensity: cfg.Intensity,
	})
	return entityID
}

// NewSpawner 创建定时生成器实体
func NewSpawner(em *ecs.EntityManager, kind config.ParticleKind, sp config.SpawnerConfig, gate components.GateFlag, surface string, glyphs []string) ecs.EntityID {
	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.SpawnerComponent{
		Kind:     kind,
		Interval: sp.Interval,
		BurstMin: sp.BurstMin,
		BurstMax: sp.BurstMax,
		Gate:     gate,
		Surface:  surface,
		Glyphs:   glyphs,
	})
	return entityID
}
