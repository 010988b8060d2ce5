package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
	"github.com/decker502/inferno/pkg/entities"
)

// LayerChecker 绘制层是否存在（由 game.SurfaceStack 实现）
type LayerChecker interface {
	HasLayer(name string) bool
}

// AmbientSpawnerSystem 驱动所有定时生成器
//
// 生成器只在开关打开且绘制层存在时工作；开关由序列器写入序列组件，
// 这里只读取。绘制层缺失时生成器安静地什么都不做。
type AmbientSpawnerSystem struct {
	entityManager  *ecs.EntityManager
	rng            *rand.Rand
	layers         LayerChecker
	viewport       entities.Viewport
	sequenceEntity ecs.EntityID
	ambient        config.AmbientConfig

	// 指针轨迹
	trailElapsed float64
	trailOwner   ecs.EntityID
}

// NewAmbientSpawnerSystem 创建生成器系统
// sequenceEntity 为 0 时所有开关视为关闭（GateNone 除外）。
func NewAmbientSpawnerSystem(em *ecs.EntityManager, rng *rand.Rand, layers LayerChecker, vp entities.Viewport, sequenceEntity ecs.EntityID, ambient config.AmbientConfig) *AmbientSpawnerSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &AmbientSpawnerSystem{
		entityManager:  em,
		rng:            rng,
		layers:         layers,
		viewport:       vp,
		sequenceEntity: sequenceEntity,
		ambient:        ambient,
	}
}

// SetViewport 视口尺寸变化
func (s *AmbientSpawnerSystem) SetViewport(vp entities.Viewport) {
	s.viewport = vp
}

// Update 推进所有生成器
func (s *AmbientSpawnerSystem) Update(dt float64) {
	s.trailElapsed += dt

	for _, id := range ecs.GetEntitiesWith1[*components.SpawnerComponent](s.entityManager) {
		sp, _ := ecs.GetComponent[*components.SpawnerComponent](s.entityManager, id)
		if !s.open(sp) {
			sp.Elapsed = 0
			continue
		}

		if sp.Interval > 0 {
			sp.Elapsed += dt
			if sp.Elapsed < sp.Interval {
				continue
			}
			sp.Elapsed -= sp.Interval
			// 长时间卡顿后不补发
			if sp.Elapsed > sp.Interval {
				sp.Elapsed = 0
			}
		}

		s.burst(id, sp)
	}
}

// open 开关打开且绘制层存在
func (s *AmbientSpawnerSystem) open(sp *components.SpawnerComponent) bool {
	if sp.Surface != "" && (s.layers == nil || !s.layers.HasLayer(sp.Surface)) {
		return false
	}
	if sp.Gate == components.GateNone {
		return true
	}
	seq, ok := ecs.GetComponent[*components.IntroSequenceComponent](s.entityManager, s.sequenceEntity)
	if !ok {
		return false
	}
	return seq.Gate(sp.Gate)
}

// burst 生成 BurstMin..BurstMax 个粒子
func (s *AmbientSpawnerSystem) burst(owner ecs.EntityID, sp *components.SpawnerComponent) {
	n := sp.BurstMin
	if sp.BurstMax > sp.BurstMin {
		n += s.rng.Intn(sp.BurstMax - sp.BurstMin + 1)
	}
	for i := 0; i < n; i++ {
		glyph := ""
		if len(sp.Glyphs) > 0 {
			glyph = sp.Glyphs[s.rng.Intn(len(sp.Glyphs))]
		}
		if _, err := entities.NewAmbientParticle(s.entityManager, s.rng, sp.Kind, owner, 0, 0, s.viewport, glyph); err != nil {
			log.Printf("[AmbientSpawnerSystem] %s: %v", sp.Kind, err)
			return
		}
		sp.Emitted++
	}
}

// PointerMoved 指针移动时按最小间隔留下轨迹粒子
func (s *AmbientSpawnerSystem) PointerMoved(x, y float64) {
	if s.trailElapsed < s.ambient.TrailSpacing {
		return
	}
	s.trailElapsed = 0
	if _, err := entities.NewAmbientParticle(s.entityManager, s.rng, config.KindTrail, s.trailOwner, x, y, s.viewport, ""); err != nil {
		log.Printf("[AmbientSpawnerSystem] trail: %v", err)
	}
}

// Ripple 点击涟漪
func (s *AmbientSpawnerSystem) Ripple(x, y float64) []ecs.EntityID {
	return entities.NewClickRipple(s.entityManager, x, y, s.ambient)
}

// Shockwave 从视口中心发出冲击波
func (s *AmbientSpawnerSystem) Shockwave() ecs.EntityID {
	return entities.NewShockwave(s.entityManager, s.viewport.Width/2, s.viewport.Height/2, s.ambient)
}

// Live 统计某个生成器（或种类）当前存活的粒子数量
func (s *AmbientSpawnerSystem) Live(kind config.ParticleKind) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.AmbientParticleComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		if p, _ := ecs.GetComponent[*components.AmbientParticleComponent](s.entityManager, id); p.Kind == kind {
			n++
		}
	}
	return n
}
