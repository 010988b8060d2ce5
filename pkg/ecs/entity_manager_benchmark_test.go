package ecs

import "testing"

type benchPosition struct {
	X, Y float64
}

type benchParticle struct {
	VX, VY float64
	Life   float64
}

// setupParticles 模拟一帧里的环境粒子：count 个粒子加一半数量的其它实体
func setupParticles(count int) *EntityManager {
	em := NewEntityManager()
	for i := 0; i < count; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &benchPosition{X: float64(i)})
		em.AddComponent(id, &benchParticle{VX: 1, VY: -1, Life: 1})
		if i%2 == 0 {
			other := em.CreateEntity()
			em.AddComponent(other, &benchPosition{})
		}
	}
	return em
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := setupParticles(500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*benchPosition, *benchParticle](em)
	}
}

// BenchmarkParticleFrame 查询 + 逐个更新 + 回收，接近粒子系统一帧的工作量
func BenchmarkParticleFrame(b *testing.B) {
	em := setupParticles(500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, id := range GetEntitiesWith2[*benchPosition, *benchParticle](em) {
			pos, _ := GetComponent[*benchPosition](em, id)
			p, _ := GetComponent[*benchParticle](em, id)
			pos.X += p.VX
			pos.Y += p.VY
			p.Life -= 0.01
			if p.Life <= 0 {
				em.DestroyEntity(id)
			}
		}
		em.RemoveMarkedEntities()
	}
}
