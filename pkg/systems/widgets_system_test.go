package systems

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
	"github.com/decker502/inferno/pkg/entities"
)

func newTestMainCard(t *testing.T) (*ecs.EntityManager, *MainCardSystem, *config.IntroConfig) {
	t.Helper()
	em := ecs.NewEntityManager()
	cfg := config.DefaultIntroConfig()
	entities.NewMainCardWidgets(em, cfg, testViewport)
	s := NewMainCardSystem(em, testViewport)
	s.SetClock(func() time.Time {
		return time.Date(2024, time.March, 9, 7, 5, 0, 0, time.UTC)
	})
	return em, s, cfg
}

func TestMainCardSystem_Clock(t *testing.T) {
	em, s, _ := newTestMainCard(t)
	s.Update(testFrame)
	em.RemoveMarkedEntities()

	_, _, clock, _ := s.Widgets()
	if clock == nil {
		t.Fatal("clock widget missing")
	}
	if clock.Hours != "07" || clock.Minutes != "05" {
		t.Errorf("clock = %s:%s, want 07:05", clock.Hours, clock.Minutes)
	}
	if clock.Date != "SAT · MAR 9" {
		t.Errorf("date = %q, want %q", clock.Date, "SAT · MAR 9")
	}
}

func TestMainCardSystem_BannerRotation(t *testing.T) {
	_, s, cfg := newTestMainCard(t)
	_, _, _, banner := s.Widgets()
	if len(banner.Slides) != len(cfg.Main.Banners) {
		t.Fatalf("slides = %d, want %d", len(banner.Slides), len(cfg.Main.Banners))
	}

	frames := int(cfg.Main.BannerInterval*60) + 2
	for i := 0; i < frames; i++ {
		s.Update(testFrame)
	}
	if banner.Current != 1 {
		t.Errorf("banner = %d after one interval, want 1", banner.Current)
	}

	// 轮播回到第一张
	for i := 0; i < frames*(len(banner.Slides)-1); i++ {
		s.Update(testFrame)
	}
	if banner.Current != 0 {
		t.Errorf("banner = %d after a full cycle, want 0", banner.Current)
	}
}

func TestMainCardSystem_HueAdvances(t *testing.T) {
	_, s, cfg := newTestMainCard(t)
	bg, _, _, _ := s.Widgets()

	for i := 0; i < 60; i++ {
		s.Update(testFrame)
	}
	want := math.Floor(1 / cfg.Ambient.HueInterval)
	if math.Abs(bg.Hue-want) > 1 {
		t.Errorf("hue = %.1f after 1s, want about %.0f", bg.Hue, want)
	}
	if bg.Hue < 0 || bg.Hue >= 360 {
		t.Errorf("hue %.1f out of range", bg.Hue)
	}
}

func TestMainCardSystem_ParallaxClamped(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"居中", testViewport.Width / 2, testViewport.Height / 2, 0, 0},
		{"左上角", 0, 0, -0.5, -0.5},
		{"超出右下", testViewport.Width * 3, testViewport.Height * 3, 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, s, _ := newTestMainCard(t)
			s.PointerMoved(tt.x, tt.y)
			for i := 0; i < 600; i++ {
				s.Update(testFrame)
			}
			_, p, _, _ := s.Widgets()
			if !approx(p.TiltX, tt.wantX, 1e-3) || !approx(p.TiltY, tt.wantY, 1e-3) {
				t.Errorf("tilt = (%.3f, %.3f), want (%.1f, %.1f)", p.TiltX, p.TiltY, tt.wantX, tt.wantY)
			}
			if !approx(p.OffsetX, p.TiltX*2*config.ParallaxBackgroundShift, 1e-9) {
				t.Errorf("offset %.3f does not follow tilt", p.OffsetX)
			}
		})
	}
}

func TestCardDragonSystem_FadeAndBounds(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultIntroConfig().CardDragon
	s := NewCardDragonSystem(em)
	id := entities.NewCardDragon(em, cfg, 640, 360, 275, 136)

	for i := 0; i < 240; i++ {
		s.Update(testFrame)
	}
	d, _ := ecs.GetComponent[*components.CardDragonComponent](em, id)
	if d.Alpha != cfg.MaxAlpha {
		t.Errorf("alpha = %.3f, want capped at %.2f", d.Alpha, cfg.MaxAlpha)
	}

	// 视口变化后头部绕新的中心运动
	s.SetBounds(1000, 500, 300, 150)
	for i := 0; i < 300; i++ {
		s.Update(testFrame)
	}
	hx, hy := d.Chain.Head()
	if dist := math.Hypot(hx-1000, hy-500); dist > 300+40 || dist < 150-40 {
		t.Errorf("head (%.1f, %.1f) is %.1f from the new center", hx, hy, dist)
	}
}

func newTestBackdrop(seq *components.IntroSequenceComponent) (*ecs.EntityManager, *BackdropSystem) {
	em := ecs.NewEntityManager()
	seqID := em.CreateEntity()
	em.AddComponent(seqID, seq)
	rng := rand.New(rand.NewSource(1))
	cfg := config.DefaultIntroConfig().Ambient
	entities.NewMatrixRain(em, rng, cfg, testViewport)
	entities.NewParticleField(em, rng, cfg, testViewport)
	return em, NewBackdropSystem(em, rng, testViewport, seqID)
}

func TestBackdropSystem_MatrixAlpha(t *testing.T) {
	tests := []struct {
		name   string
		seq    components.IntroSequenceComponent
		frames int
		want   float64
	}{
		{"启动阶段可见", components.IntroSequenceComponent{MatrixActive: true}, 5, 1},
		{"停用后淡出", components.IntroSequenceComponent{}, 60, 0},
		{"跳过时直接隐藏", components.IntroSequenceComponent{MatrixActive: true, MatrixHidden: true}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := tt.seq
			_, s := newTestBackdrop(&seq)
			for i := 0; i < tt.frames; i++ {
				s.Update(testFrame)
			}
			if got := s.MatrixAlpha(); !approx(got, tt.want, 1e-6) {
				t.Errorf("matrix alpha = %.3f, want %.1f", got, tt.want)
			}
		})
	}
}

func TestBackdropSystem_ResizeAndBounce(t *testing.T) {
	em, s := newTestBackdrop(&components.IntroSequenceComponent{MatrixActive: true})

	vp := entities.Viewport{Width: 700, Height: 400}
	s.SetViewport(vp)
	for i := 0; i < 600; i++ {
		s.Update(testFrame)
	}

	id := ecs.GetEntitiesWith1[*components.MatrixRainComponent](em)[0]
	m, _ := ecs.GetComponent[*components.MatrixRainComponent](em, id)
	if want := int(vp.Width / m.ColumnWidth); len(m.Drops) != want {
		t.Errorf("columns = %d, want %d", len(m.Drops), want)
	}

	fid := ecs.GetEntitiesWith1[*components.ParticleFieldComponent](em)[0]
	f, _ := ecs.GetComponent[*components.ParticleFieldComponent](em, fid)
	for i, p := range f.Points {
		if p.X < 0 || p.X > vp.Width || p.Y < 0 || p.Y > vp.Height {
			t.Fatalf("point %d at (%.1f, %.1f) escaped the viewport", i, p.X, p.Y)
		}
	}
}
