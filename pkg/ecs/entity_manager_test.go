package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// ID 从 1 开始递增，0 留给“没有实体”
	if id1 != 1 || id2 != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", id1, id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount = %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}

	// 泛型版本拿到的是同一个指针
	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok || pos != retrieved {
		t.Error("GetComponent[T] should return the same component")
	}
	if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
		t.Error("missing component should not be found")
	}
}

func TestGenericAddAndRemove(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testVelocityComponent{VX: 5})
	if !HasComponent[*testVelocityComponent](em, id) {
		t.Fatal("component should exist after AddComponent")
	}
	RemoveComponent[*testVelocityComponent](em, id)
	if HasComponent[*testVelocityComponent](em, id) {
		t.Error("component should be gone after RemoveComponent")
	}

	// 不存在的实体上添加组件不生效
	AddComponent(em, EntityID(999), &testVelocityComponent{})
	if em.Exists(999) {
		t.Error("AddComponent must not create entities")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除，重复标记只算一次
	em.DestroyEntity(id)
	em.DestroyEntity(id)

	if !em.Exists(id) || !em.IsMarkedForDestroy(id) {
		t.Error("Entity should still exist (marked) before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.IsMarkedForDestroy(id) {
		t.Error("mark should be cleared after cleanup")
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, want 0", em.EntityCount())
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testVelocityComponent{})

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("Position+Velocity = %v, want [%d]", both, id1)
	}

	if got := GetEntitiesWith1[*testPositionComponent](em); len(got) != 2 {
		t.Errorf("Expected 2 entities with Position component, got %d", len(got))
	}
}

func TestGetEntitiesWith_Ordered(t *testing.T) {
	em := NewEntityManager()
	var want []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
		want = append(want, id)
	}

	// 多次查询顺序一致且按创建顺序
	for round := 0; round < 3; round++ {
		got := GetEntitiesWith1[*testPositionComponent](em)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("round %d: order = %v", round, got)
		}
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()
	for _, id := range []EntityID{id1, id2, id3} {
		em.AddComponent(id, &testPositionComponent{})
	}

	em.DestroyEntity(id1)
	em.DestroyEntity(id3)
	em.RemoveMarkedEntities()

	if em.Exists(id1) || em.Exists(id3) {
		t.Error("id1 and id3 should be removed")
	}
	if !em.Exists(id2) {
		t.Error("id2 should still exist")
	}
}
