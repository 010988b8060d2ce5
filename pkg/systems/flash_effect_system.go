package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/ecs"
)

// FlashEffectSystem 全屏转场闪光
// 闪光从 Intensity 线性淡出到 0，结束后删除实体。
type FlashEffectSystem struct {
	entityManager *ecs.EntityManager
}

// NewFlashEffectSystem 创建闪光系统
func NewFlashEffectSystem(em *ecs.EntityManager) *FlashEffectSystem {
	return &FlashEffectSystem{
		entityManager: em,
	}
}

// Update 更新所有闪光
// 参数：
//   - dt: 时间增量（秒）
func (s *FlashEffectSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager)

	for _, entity := range entities {
		flashComp, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, entity)
		if !ok {
			continue
		}

		flashComp.Elapsed += dt
		if flashComp.Elapsed >= flashComp.Duration {
			s.entityManager.DestroyEntity(entity)
		}
	}
}

// Strength 当前所有闪光叠加后的强度 [0, 1]
func (s *FlashEffectSystem) Strength() float64 {
	total := 0.0
	for _, entity := range ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(entity) {
			continue
		}
		f, _ := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, entity)
		if f.Duration <= 0 {
			continue
		}
		total += f.Intensity * (1 - f.Elapsed/f.Duration)
	}
	if total > 1 {
		total = 1
	}
	if total < 0 {
		total = 0
	}
	return total
}

// Draw 在屏幕上叠加白色闪光
func (s *FlashEffectSystem) Draw(screen *ebiten.Image) {
	a := s.Strength()
	if a <= 0 {
		return
	}
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), color.NRGBA{R: 255, G: 255, B: 255, A: uint8(a * 255)}, false)
}
