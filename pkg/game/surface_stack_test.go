package game

import (
	"reflect"
	"testing"
)

func TestSurfaceStack_Resize(t *testing.T) {
	ss := NewSurfaceStack(320, 200, SurfaceMatrix, SurfaceFX, SurfaceDragon)

	if w, h := ss.Size(); w != 320 || h != 200 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if !reflect.DeepEqual(ss.Names(), []string{SurfaceMatrix, SurfaceFX, SurfaceDragon}) {
		t.Errorf("names = %v", ss.Names())
	}

	tests := []struct {
		name        string
		w, h        int
		wantChanged bool
		wantW       int
		wantH       int
	}{
		{"尺寸不变", 320, 200, false, 320, 200},
		{"放大", 640, 360, true, 640, 360},
		{"非法尺寸按 1 处理", 0, -5, true, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ss.Resize(tt.w, tt.h); got != tt.wantChanged {
				t.Errorf("Resize changed = %v, want %v", got, tt.wantChanged)
			}
			for _, name := range ss.Names() {
				img, ok := ss.Layer(name)
				if !ok {
					t.Fatalf("layer %s missing", name)
				}
				b := img.Bounds()
				if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
					t.Errorf("layer %s = %dx%d, want %dx%d", name, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
				}
			}
		})
	}
}

func TestSurfaceStack_LayersAndHidden(t *testing.T) {
	ss := NewSurfaceStack(10, 10, SurfaceMatrix)

	if !ss.HasLayer(SurfaceMatrix) || ss.HasLayer(SurfaceCardDragon) {
		t.Error("HasLayer wrong")
	}
	if _, ok := ss.Layer(SurfaceCardDragon); ok {
		t.Error("unknown layer should not exist")
	}

	ss.SetHidden(SurfaceMatrix, true)
	if !ss.IsHidden(SurfaceMatrix) {
		t.Error("matrix should be hidden")
	}

	var nilStack *SurfaceStack
	if nilStack.HasLayer(SurfaceMatrix) {
		t.Error("nil stack has no layers")
	}
}
