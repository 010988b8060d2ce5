package config

import "testing"

func TestSkipButtonRect_AnchoredTopRight(t *testing.T) {
	for _, w := range []int{800, 1280, 1920} {
		x, y, bw, bh := SkipButtonRect(w)
		if x+bw+SkipButtonMargin != float64(w) {
			t.Errorf("width %d: right edge %.0f, want %.0f", w, x+bw, float64(w)-SkipButtonMargin)
		}
		if y != SkipButtonMargin || bw != SkipButtonWidth || bh != SkipButtonHeight {
			t.Errorf("width %d: rect = (%.0f, %.0f, %.0f, %.0f)", w, x, y, bw, bh)
		}
	}
}

func TestPointInRect(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"内部", 15, 15, true},
		{"左上角边界", 10, 10, true},
		{"右下角边界", 30, 20, true},
		{"左侧外部", 9, 15, false},
		{"下方外部", 15, 21, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInRect(tt.px, tt.py, 10, 10, 20, 10); got != tt.want {
				t.Errorf("PointInRect(%.0f, %.0f) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}
