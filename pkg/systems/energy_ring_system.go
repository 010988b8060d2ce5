package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/ecs"
)

// EnergyRingSystem 推进点击涟漪和冲击波
//
// 半径每帧增加当前速度，速度按摩擦衰减但不低于最低速度；
// 生命值 = 1 - 半径/最大半径，降到 0 时删除。
type EnergyRingSystem struct {
	entityManager *ecs.EntityManager
}

// NewEnergyRingSystem 创建能量环系统
func NewEnergyRingSystem(em *ecs.EntityManager) *EnergyRingSystem {
	return &EnergyRingSystem{entityManager: em}
}

// Update 推进所有能量环
func (s *EnergyRingSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.EnergyRingComponent](s.entityManager) {
		ring, _ := ecs.GetComponent[*components.EnergyRingComponent](s.entityManager, id)

		if ring.Friction > 0 && ring.Friction < 1 {
			ring.Speed *= math.Pow(ring.Friction, dt)
		}
		if ring.Speed < ring.MinSpeed {
			ring.Speed = ring.MinSpeed
		}
		ring.Radius += ring.Speed * dt

		if ring.MaxRadius <= 0 {
			ring.Life = 0
		} else {
			ring.Life = 1 - ring.Radius/ring.MaxRadius
		}
		if ring.Life <= 0 {
			ring.Life = 0
			s.entityManager.DestroyEntity(id)
		}
	}
}

// Draw 绘制所有能量环
func (s *EnergyRingSystem) Draw(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.EnergyRingComponent](s.entityManager)
	for _, id := range ids {
		ring, _ := ecs.GetComponent[*components.EnergyRingComponent](s.entityManager, id)
		if ring.Life <= 0 {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vector.StrokeCircle(screen, float32(pos.X), float32(pos.Y), float32(ring.Radius), float32(ring.Width), withAlpha(ring.Color, ring.Life), true)
	}
}
