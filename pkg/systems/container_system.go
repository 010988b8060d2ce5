package systems

import (
	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/ecs"
)

// ContainerSystem 根据可见性渐变阶段容器的不透明度
//   - active: 在 FadeIn 秒内淡入到 1
//   - exiting: 在 FadeOut 秒内淡出到 0（容器保持 exiting，直到序列器把它隐藏）
//   - hidden: 不透明度为 0
type ContainerSystem struct {
	entityManager *ecs.EntityManager
}

// NewContainerSystem 创建容器系统
func NewContainerSystem(em *ecs.EntityManager) *ContainerSystem {
	return &ContainerSystem{entityManager: em}
}

// Update 更新所有容器
func (s *ContainerSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ContainerComponent](s.entityManager) {
		c, _ := ecs.GetComponent[*components.ContainerComponent](s.entityManager, id)
		c.Elapsed += dt

		switch c.Visibility {
		case components.VisibilityActive:
			c.Alpha = fadeStep(c.Alpha, 1, dt, c.FadeIn)
		case components.VisibilityExiting:
			c.Alpha = fadeStep(c.Alpha, 0, dt, c.FadeOut)
		default:
			c.Alpha = 0
		}
	}
}

// Alpha 返回阶段容器的当前不透明度
func (s *ContainerSystem) Alpha(id ecs.EntityID) float64 {
	c, ok := ecs.GetComponent[*components.ContainerComponent](s.entityManager, id)
	if !ok {
		return 0
	}
	return c.Alpha
}

// fadeStep 以 1/duration 每秒的速度逼近目标；duration <= 0 时立即到达
func fadeStep(cur, target, dt, duration float64) float64 {
	if duration <= 0 {
		return target
	}
	step := dt / duration
	if cur < target {
		cur += step
		if cur > target {
			cur = target
		}
	} else if cur > target {
		cur -= step
		if cur < target {
			cur = target
		}
	}
	return cur
}
