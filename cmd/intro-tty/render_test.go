package main

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

func TestCellOf(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		cx, cy int
	}{
		{"原点", 0, 0, 0, 0},
		{"格内", 9.9, 19.9, 0, 0},
		{"下一格", 10, 20, 1, 1},
		{"远处", 405, 250, 40, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := cellOf(tt.x, tt.y)
			if cx != tt.cx || cy != tt.cy {
				t.Errorf("cellOf(%.1f, %.1f) = (%d, %d), want (%d, %d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
			}
		})
	}
}

func TestRampColor(t *testing.T) {
	red, _ := colorful.Hex("#ff0000")
	blue, _ := colorful.Hex("#0000ff")
	ramp := []colorful.Color{red, blue}

	if got := rampColor(nil, 0.5); got != tcell.ColorWhite {
		t.Errorf("empty ramp = %v, want white", got)
	}
	if got := rampColor(ramp, -1); got != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("t<0 should clamp to the first stop, got %v", got)
	}
	if got := rampColor(ramp, 2); got != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("t>1 should clamp to the last stop, got %v", got)
	}
}

func TestMatrixColumns_Resize(t *testing.T) {
	m := newMatrixColumns(10, 20, rand.New(rand.NewSource(1)))
	if len(m.drops) != 10 {
		t.Fatalf("columns = %d, want 10", len(m.drops))
	}
	for _, d := range m.drops {
		if d > 0 || d < -20 {
			t.Errorf("initial drop %.2f outside [-rows, 0]", d)
		}
	}

	first := m.drops[0]
	m.resize(15, 30)
	if len(m.drops) != 15 || m.drops[0] != first {
		t.Errorf("resize should keep existing columns, got %d columns first=%.2f", len(m.drops), m.drops[0])
	}
	m.resize(0, 30)
	if len(m.drops) != 1 {
		t.Errorf("columns = %d, want at least 1", len(m.drops))
	}

	for i := 0; i < 200; i++ {
		m.step()
	}
	if m.drops[0] <= first {
		t.Error("drops should move down")
	}
}
