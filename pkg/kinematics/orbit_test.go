package kinematics

import (
	"math"
	"testing"
)

func testOrbitConfig() OrbitConfig {
	return OrbitConfig{
		CenterX: 640, CenterY: 360,
		Radius:          280,
		AngularSpeed:    0.028,
		StartAngle:      math.Pi,
		EntryX:          1792,
		EntryY:          72,
		FlyInStep:       0.025,
		FlyInFollowMin:  0.04,
		FlyInFollowGain: 0.06,
		CircleTurns:     2,
		ConvergeStep:    0.018,
		ShrinkFraction:  0.75,
		SpeedBoost:      2,
		FadeFraction:    0.9,
	}
}

func TestOrbit_StageTransitionsMonotonic(t *testing.T) {
	o := NewOrbit(testOrbitConfig())

	type change struct{ from, to OrbitStage }
	var changes []change
	o.OnStageChange(func(from, to OrbitStage) {
		changes = append(changes, change{from, to})
	})

	frames := 0
	for !o.Done() {
		o.Step()
		frames++
		if frames > 5000 {
			t.Fatalf("轨迹在 %d 帧内未结束", frames)
		}
	}

	expected := []change{
		{StageFlyIn, StageCircle},
		{StageCircle, StageConverge},
		{StageConverge, StageDone},
	}
	if len(changes) != len(expected) {
		t.Fatalf("期望 %d 次切换, got %d: %v", len(expected), len(changes), changes)
	}
	for i := range expected {
		if changes[i] != expected[i] {
			t.Errorf("第 %d 次切换 = %v → %v, 期望 %v → %v",
				i, changes[i].from, changes[i].to, expected[i].from, expected[i].to)
		}
	}
}

func TestOrbit_FlyInDurationBounded(t *testing.T) {
	o := NewOrbit(testOrbitConfig())
	frames := 0
	for o.Stage() == StageFlyIn {
		o.Step()
		frames++
	}
	// 1 / 0.025 = 40 帧（浮点累加可能多一帧）
	if frames < 40 || frames > 41 {
		t.Errorf("飞入阶段应持续约 40 帧, got %d", frames)
	}
}

func TestOrbit_CircleFollowsRadius(t *testing.T) {
	o := NewOrbit(testOrbitConfig())
	for o.Stage() == StageFlyIn {
		o.Step()
	}
	for i := 0; i < 50 && o.Stage() == StageCircle; i++ {
		x, y := o.Step()
		d := math.Hypot(x-640, y-360)
		if math.Abs(d-280) > 1e-6 {
			t.Fatalf("环绕阶段头部应在半径 280 的圆上, got %v", d)
		}
	}
}

func TestOrbit_ConvergeShrinksAndFades(t *testing.T) {
	o := NewOrbit(testOrbitConfig())
	for o.Stage() != StageConverge {
		o.Step()
	}

	prevRadius := o.Radius()
	prevAlpha := o.Alpha()
	for o.Stage() == StageConverge {
		o.Step()
		if o.Radius() > prevRadius+1e-9 {
			t.Fatalf("收束阶段半径不应变大: %v → %v", prevRadius, o.Radius())
		}
		if o.Alpha() > prevAlpha+1e-9 {
			t.Fatalf("收束阶段透明度不应回升: %v → %v", prevAlpha, o.Alpha())
		}
		prevRadius, prevAlpha = o.Radius(), o.Alpha()
	}

	if math.Abs(o.Radius()-70) > 1e-6 {
		t.Errorf("最终半径应为 R*0.25 = 70, got %v", o.Radius())
	}
	if math.Abs(o.Alpha()-0.1) > 1e-6 {
		t.Errorf("最终透明度应为 0.1, got %v", o.Alpha())
	}
}

func TestOrbit_CompletionSignalExactlyOnce(t *testing.T) {
	o := NewOrbit(testOrbitConfig())
	calls := 0
	o.OnComplete(func() { calls++ })

	for i := 0; i < 3000; i++ {
		o.Step()
	}

	if calls != 1 {
		t.Errorf("完成信号应恰好触发一次, got %d", calls)
	}
	if !o.Done() {
		t.Error("轨迹应处于终止状态")
	}
}

func TestOrbit_DoneStopsMoving(t *testing.T) {
	o := NewOrbit(testOrbitConfig())
	for !o.Done() {
		o.Step()
	}
	x1, y1 := o.Head()
	x2, y2 := o.Step()
	if x1 != x2 || y1 != y2 {
		t.Errorf("终止后头部不应再移动: (%v,%v) → (%v,%v)", x1, y1, x2, y2)
	}
}

func TestOrbit_ProgressInRange(t *testing.T) {
	o := NewOrbit(testOrbitConfig())
	for i := 0; i < 1000; i++ {
		o.Step()
		p := o.Progress()
		if p < 0 || p > 1 {
			t.Fatalf("frame %d: 进度 %v 超出 [0,1]", i, p)
		}
	}
}

func TestOrbit_ZeroStepsStillTerminate(t *testing.T) {
	cfg := testOrbitConfig()
	cfg.FlyInStep = 0
	cfg.ConvergeStep = 0
	cfg.AngularSpeed = 0

	o := NewOrbit(cfg)
	done := 0
	o.OnComplete(func() { done++ })
	for i := 0; i < 5; i++ {
		o.Step()
	}
	if !o.Done() || done != 1 {
		t.Errorf("退化参数下也应结束: stage=%v done=%d", o.Stage(), done)
	}
}

func TestOrbitStage_String(t *testing.T) {
	tests := []struct {
		stage    OrbitStage
		expected string
	}{
		{StageFlyIn, "fly-in"},
		{StageCircle, "circle"},
		{StageConverge, "converge"},
		{StageDone, "done"},
		{OrbitStage(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.expected {
			t.Errorf("String() = %q, 期望 %q", got, tt.expected)
		}
	}
}

func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EaseOutCubic(tt.input); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}
}
