package game

import (
	"reflect"
	"testing"
)

func TestScheduler_AfterAndEvery(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.After(0.5, func() { order = append(order, "after") })
	ticks := 0
	s.Every(0.25, func() {
		ticks++
		order = append(order, "every")
	})

	s.Update(0.125)
	if len(order) != 0 {
		t.Fatalf("nothing should fire at 0.125s, got %v", order)
	}

	// 同一时刻到期的任务按注册顺序执行
	s.Update(0.875)
	want := []string{"every", "after", "every", "every", "every"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if ticks != 4 {
		t.Errorf("ticks = %d, want 4", ticks)
	}
	if s.Pending() != 1 {
		t.Errorf("pending = %d, want 1 (the repeating timer)", s.Pending())
	}
}

func TestScheduler_CallbackChainCatchUp(t *testing.T) {
	s := NewScheduler()
	var at []float64

	// 回调内注册的任务从触发时刻起算
	s.After(1, func() {
		at = append(at, s.Now())
		s.After(1, func() {
			at = append(at, s.Now())
			s.After(0, func() { at = append(at, s.Now()) })
		})
	})

	s.Update(10)
	want := []float64{1, 2, 2}
	if !reflect.DeepEqual(at, want) {
		t.Errorf("fire times = %v, want %v", at, want)
	}
	if s.Now() != 10 {
		t.Errorf("now = %.2f, want 10", s.Now())
	}
}

func TestScheduler_Cancel(t *testing.T) {
	tests := []struct {
		name   string
		action func(s *Scheduler, id TimerID)
		fired  bool
	}{
		{"取消单个", func(s *Scheduler, id TimerID) { s.Cancel(id) }, false},
		{"全部取消", func(s *Scheduler, id TimerID) { s.CancelAll() }, false},
		{"不取消", func(s *Scheduler, id TimerID) {}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler()
			fired := false
			id := s.After(1, func() { fired = true })
			if !s.IsPending(id) {
				t.Fatal("timer should be pending")
			}

			tt.action(s, id)
			s.Update(2)
			if fired != tt.fired {
				t.Errorf("fired = %v, want %v", fired, tt.fired)
			}
			if s.IsPending(id) {
				t.Error("timer should not be pending after Update")
			}
		})
	}
}

func TestScheduler_CancelSelfInsideCallback(t *testing.T) {
	s := NewScheduler()
	n := 0
	var id TimerID
	id = s.Every(0.1, func() {
		n++
		if n == 3 {
			s.Cancel(id)
		}
	})

	s.Update(5)
	if n != 3 {
		t.Errorf("ticks = %d, want 3", n)
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}

func TestScheduler_CancelAllInsideCallback(t *testing.T) {
	s := NewScheduler()
	late := false
	s.After(1, func() { s.CancelAll() })
	s.After(2, func() { late = true })

	s.Update(3)
	if late {
		t.Error("timer fired after CancelAll")
	}
	if got := s.CancelAll(); got != 0 {
		t.Errorf("CancelAll on empty scheduler = %d, want 0", got)
	}
}
