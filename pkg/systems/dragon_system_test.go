package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
)

func newTestDragonSystem() (*ecs.EntityManager, *DragonSystem) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultIntroConfig()
	return em, NewDragonSystem(em, cfg.Dragon, testViewport, rand.New(rand.NewSource(7)))
}

func TestDragonSystem_CompletesOnce(t *testing.T) {
	_, ds := newTestDragonSystem()
	completed := 0
	ds.Start(func() { completed++ })

	if ds.DragonEntity() == 0 {
		t.Fatal("dragon entity not created")
	}

	for i := 0; i < 5000 && ds.Running(); i++ {
		ds.Update(testFrame)
	}
	if ds.Running() {
		t.Fatal("dragon loop still running after 5000 frames")
	}
	if completed != 1 {
		t.Errorf("completion called %d times, want 1", completed)
	}
	// fly-in → circle → converge → done
	if ds.StageChanges() != 3 {
		t.Errorf("stage changes = %d, want 3", ds.StageChanges())
	}

	frames := ds.Frames()
	for i := 0; i < 10; i++ {
		ds.Update(testFrame)
	}
	if ds.Frames() != frames {
		t.Errorf("frames advanced after completion: %d → %d", frames, ds.Frames())
	}
	if completed != 1 {
		t.Errorf("completion called again after done")
	}

	// 退场淡出后龙被移除
	for i := 0; i < 120; i++ {
		ds.Update(testFrame)
	}
	if ds.DragonEntity() != 0 {
		t.Error("dragon should be removed after exit fade")
	}
}

func TestDragonSystem_ChainConstraintEveryFrame(t *testing.T) {
	em, ds := newTestDragonSystem()
	ds.Start(nil)
	id := ds.DragonEntity()

	for i := 0; i < 300; i++ {
		ds.Update(testFrame)
		d, ok := ecs.GetComponent[*components.DragonComponent](em, id)
		if !ok {
			t.Fatal("dragon component missing")
		}
		segs := d.Chain.Segments
		for j := 1; j < len(segs); j++ {
			dist := math.Hypot(segs[j].X-segs[j-1].X, segs[j].Y-segs[j-1].Y)
			if dist > d.Chain.MaxLength(j) {
				t.Fatalf("frame %d: segment %d distance %.4f > %.4f", i, j, dist, d.Chain.MaxLength(j))
			}
		}
	}
}

func TestDragonSystem_StopHaltsFrames(t *testing.T) {
	em, ds := newTestDragonSystem()
	completed := false
	ds.Start(func() { completed = true })

	for i := 0; i < 30; i++ {
		ds.Update(testFrame)
	}
	if ds.Frames() != 30 {
		t.Fatalf("frames = %d, want 30", ds.Frames())
	}
	id := ds.DragonEntity()

	ds.Stop()
	for i := 0; i < 1000; i++ {
		ds.Update(testFrame)
	}

	if ds.Frames() != 30 {
		t.Errorf("frames = %d after stop, want 30", ds.Frames())
	}
	if completed {
		t.Error("completion must not fire after stop")
	}
	if ds.Running() {
		t.Error("loop should not be running after stop")
	}
	if !em.IsMarkedForDestroy(id) {
		t.Error("dragon entity should be destroyed on stop")
	}
	for _, pid := range ecs.GetEntitiesWith1[*components.AmbientParticleComponent](em) {
		p, _ := ecs.GetComponent[*components.AmbientParticleComponent](em, pid)
		if p.Owner == id && !em.IsMarkedForDestroy(pid) {
			t.Fatal("dragon sparks should be destroyed with the dragon")
		}
	}
}

func TestDragonSystem_SparksPerFrame(t *testing.T) {
	em, ds := newTestDragonSystem()
	ds.Start(nil)
	for i := 0; i < 10; i++ {
		ds.Update(testFrame)
	}

	n := 0
	for _, pid := range ecs.GetEntitiesWith1[*components.AmbientParticleComponent](em) {
		p, _ := ecs.GetComponent[*components.AmbientParticleComponent](em, pid)
		if p.Kind == config.KindDragonSpark && p.Owner == ds.DragonEntity() {
			n++
		}
	}
	if n != 10 {
		t.Errorf("dragon sparks = %d, want 10", n)
	}
}

// 跳过发生在龙飞行阶段：龙的逐帧循环被取消，之后帧数不再增加
func TestDragonSystem_SkipDuringFlight(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultIntroConfig()
	ds := NewDragonSystem(em, cfg.Dragon, testViewport, rand.New(rand.NewSource(3)))
	s := NewIntroSequencerSystem(em, cfg, ds, rand.New(rand.NewSource(3)))

	s.Start()
	s.Update(100)
	if s.Phase() != components.PhaseDragonFlight {
		t.Fatalf("phase = %s, want dragon-flight", s.Phase())
	}
	for i := 0; i < 20; i++ {
		s.Update(testFrame)
		ds.Update(testFrame)
	}

	s.Skip()
	frames := ds.Frames()
	for i := 0; i < 600; i++ {
		s.Update(testFrame)
		ds.Update(testFrame)
	}

	if ds.Frames() != frames {
		t.Errorf("dragon frames advanced after skip: %d → %d", frames, ds.Frames())
	}
	if s.Phase() != components.PhaseMain {
		t.Errorf("phase = %s, want main", s.Phase())
	}
	if ds.DragonEntity() != 0 {
		t.Error("dragon should be removed on skip")
	}
}

// 完整流程：龙飞完后由完成信号切换到 main
func TestDragonSystem_FlightDrivesMain(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultIntroConfig()
	ds := NewDragonSystem(em, cfg.Dragon, testViewport, rand.New(rand.NewSource(5)))
	s := NewIntroSequencerSystem(em, cfg, ds, rand.New(rand.NewSource(5)))
	rec := &phaseRecorder{}
	s.OnPhaseChange(rec.record)

	s.Start()
	s.Update(100)
	for i := 0; i < 3000 && !s.State().MainEntered; i++ {
		s.Update(testFrame)
		ds.Update(testFrame)
	}

	if !s.State().MainEntered {
		t.Fatalf("main not entered, phase = %s", s.Phase())
	}
	if rec.count(components.PhaseMain) != 1 {
		t.Errorf("transitions to main = %d, want 1", rec.count(components.PhaseMain))
	}
	if s.State().Skipped {
		t.Error("natural run should not be marked skipped")
	}
}
