package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
	"github.com/decker502/inferno/pkg/entities"
	"github.com/decker502/inferno/pkg/game"
	"github.com/decker502/inferno/pkg/kinematics"
)

// DragonSystem 开场龙的逐帧驱动
//
// 每帧顺序固定：轨迹计算目标点 → 链条跟随 → 生成火花；绘制在 Draw 阶段进行。
// 实现 DragonDriver：Stop 之后逐帧循环不会再执行任何一帧。
type DragonSystem struct {
	entityManager *ecs.EntityManager
	config        config.DragonConfig
	rng           *rand.Rand
	viewport      entities.Viewport

	loop         *game.FrameLoop
	dragonEntity ecs.EntityID
	onComplete   func()
	stageChanges int
}

// NewDragonSystem 创建龙系统（不会立即生成龙）
func NewDragonSystem(em *ecs.EntityManager, cfg config.DragonConfig, vp entities.Viewport, rng *rand.Rand) *DragonSystem {
	s := &DragonSystem{
		entityManager: em,
		config:        cfg,
		rng:           rng,
		viewport:      vp,
	}
	s.loop = game.NewFrameLoop("dragon", s.step)
	return s
}

// SetViewport 视口尺寸变化时更新轨道中心
func (s *DragonSystem) SetViewport(vp entities.Viewport) {
	s.viewport = vp
	if d, ok := s.dragon(); ok {
		d.Orbit.SetCenter(vp.Width/2, vp.Height/2)
	}
}

// Start 生成一条新龙并启动逐帧循环
func (s *DragonSystem) Start(onComplete func()) {
	s.removeDragon()

	s.onComplete = onComplete
	s.stageChanges = 0
	s.dragonEntity = entities.NewDragon(s.entityManager, s.config, s.viewport)

	d, _ := s.dragon()
	d.Orbit.OnStageChange(func(from, to kinematics.OrbitStage) {
		s.stageChanges++
		log.Printf("[DragonSystem] stage: %s → %s", from, to)
	})
	d.Orbit.OnComplete(s.handleComplete)

	s.loop.Start()
}

// Stop 取消逐帧循环并移除龙；不会调用完成回调
func (s *DragonSystem) Stop() {
	s.loop.Stop()
	s.onComplete = nil
	s.removeDragon()
}

// Running 逐帧循环是否在运行
func (s *DragonSystem) Running() bool {
	return s.loop.Running()
}

// Frames 本次飞行已执行的帧数
func (s *DragonSystem) Frames() int {
	return s.loop.Frames()
}

// StageChanges 本次飞行的子阶段切换次数
func (s *DragonSystem) StageChanges() int {
	return s.stageChanges
}

// DragonEntity 当前龙实体（不存在时为 0）
func (s *DragonSystem) DragonEntity() ecs.EntityID {
	return s.dragonEntity
}

// Update 执行一帧；完成后的退场淡出按时间推进
func (s *DragonSystem) Update(dt float64) {
	s.loop.Tick()

	d, ok := s.dragon()
	if !ok || !d.Exiting {
		return
	}
	d.ExitElapsed += dt
	if d.ExitElapsed >= d.ExitDelay {
		s.removeDragon()
	}
}

// step 逐帧步骤，返回 false 时循环结束
func (s *DragonSystem) step() bool {
	d, ok := s.dragon()
	if !ok {
		return false
	}

	x, y := d.Orbit.Step()
	if d.Orbit.Done() {
		return false
	}
	d.Chain.Advance(x, y)

	hx, hy := d.Chain.Head()
	if _, err := entities.NewAmbientParticle(s.entityManager, s.rng, config.KindDragonSpark, s.dragonEntity, hx, hy, s.viewport, ""); err != nil {
		log.Printf("[DragonSystem] spark: %v", err)
	}
	return true
}

func (s *DragonSystem) handleComplete() {
	if d, ok := s.dragon(); ok {
		d.Exiting = true
	}
	cb := s.onComplete
	s.onComplete = nil
	log.Printf("[DragonSystem] Flight complete after %d frames", s.loop.Frames())
	if cb != nil {
		cb()
	}
}

func (s *DragonSystem) dragon() (*components.DragonComponent, bool) {
	if s.dragonEntity == 0 {
		return nil, false
	}
	return ecs.GetComponent[*components.DragonComponent](s.entityManager, s.dragonEntity)
}

// removeDragon 删除龙实体及其火花
func (s *DragonSystem) removeDragon() {
	if s.dragonEntity == 0 {
		return
	}
	owner := s.dragonEntity
	for _, id := range ecs.GetEntitiesWith1[*components.AmbientParticleComponent](s.entityManager) {
		p, ok := ecs.GetComponent[*components.AmbientParticleComponent](s.entityManager, id)
		if ok && p.Owner == owner {
			s.entityManager.DestroyEntity(id)
		}
	}
	s.entityManager.DestroyEntity(owner)
	s.dragonEntity = 0
}
