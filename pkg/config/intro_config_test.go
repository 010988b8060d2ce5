package config

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/inferno/pkg/embedded"
)

func TestDefaultIntroConfig_Valid(t *testing.T) {
	cfg := DefaultIntroConfig()
	if err := validateIntroConfig(cfg); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	if len(cfg.Boot.Lines) != 8 {
		t.Errorf("Expected 8 boot lines, got %d", len(cfg.Boot.Lines))
	}
	if len(cfg.Reveals) != RevealCount {
		t.Fatalf("Expected %d reveals, got %d", RevealCount, len(cfg.Reveals))
	}
	if cfg.Reveals[0].ProgressBar == nil {
		t.Error("first reveal should be driven by the progress bar")
	}
	if cfg.Dragon.Segments != 42 || cfg.CardDragon.Segments != 36 {
		t.Errorf("unexpected segment counts: %d / %d", cfg.Dragon.Segments, cfg.CardDragon.Segments)
	}
	if math.Abs(cfg.Dragon.StartAngle-math.Pi) > 1e-9 {
		t.Errorf("dragon should start at angle π, got %f", cfg.Dragon.StartAngle)
	}
}

func TestLoadIntroConfig(t *testing.T) {
	t.Run("部分覆盖保留默认值", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "intro.yaml")

		yamlData := `title: "TEST"
boot:
  lines: ["a", "b", "c"]
  lineInterval: 0.1
dragon:
  segments: 10
`
		if err := os.WriteFile(testFile, []byte(yamlData), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		cfg, err := LoadIntroConfig(testFile)
		if err != nil {
			t.Fatalf("LoadIntroConfig() failed: %v", err)
		}
		if cfg.Title != "TEST" {
			t.Errorf("Expected title 'TEST', got '%s'", cfg.Title)
		}
		if len(cfg.Boot.Lines) != 3 {
			t.Errorf("Expected 3 boot lines, got %d", len(cfg.Boot.Lines))
		}
		if cfg.Dragon.Segments != 10 {
			t.Errorf("Expected 10 segments, got %d", cfg.Dragon.Segments)
		}
		// 未覆盖的字段保持默认
		if cfg.Dragon.OrbitRadius != 280 {
			t.Errorf("Expected default orbit radius 280, got %f", cfg.Dragon.OrbitRadius)
		}
		if len(cfg.Reveals) != RevealCount {
			t.Errorf("Expected default reveals, got %d", len(cfg.Reveals))
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadIntroConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil {
			t.Fatal("Expected error for missing file")
		}
	})

	t.Run("YAML 语法错误", func(t *testing.T) {
		testFile := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(testFile, []byte("boot: [unclosed"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		_, err := LoadIntroConfig(testFile)
		if err == nil || !strings.Contains(err.Error(), "parse") {
			t.Fatalf("Expected parse error, got %v", err)
		}
	})

	t.Run("从嵌入资源读取", func(t *testing.T) {
		embedded.Init(fstest.MapFS{
			"data/intro.yaml": &fstest.MapFile{Data: []byte("title: EMBEDDED\n")},
		})
		defer embedded.Init(nil)

		cfg, err := LoadIntroConfig(DefaultIntroConfigPath)
		if err != nil {
			t.Fatalf("LoadIntroConfig() failed: %v", err)
		}
		if cfg.Title != "EMBEDDED" {
			t.Errorf("Expected title 'EMBEDDED', got '%s'", cfg.Title)
		}
	})
}

func TestValidateIntroConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *IntroConfig)
		wantErr string
	}{
		{
			name:    "启动行为空",
			mutate:  func(cfg *IntroConfig) { cfg.Boot.Lines = nil },
			wantErr: "boot.lines",
		},
		{
			name:    "揭示阶段数量错误",
			mutate:  func(cfg *IntroConfig) { cfg.Reveals = cfg.Reveals[:3] },
			wantErr: "exactly 4",
		},
		{
			name:    "无进度条且停留时长为 0",
			mutate:  func(cfg *IntroConfig) { cfg.Reveals[1].Hold = 0 },
			wantErr: "hold must be positive",
		},
		{
			name:    "链节数量为 0",
			mutate:  func(cfg *IntroConfig) { cfg.Dragon.Segments = 0 },
			wantErr: "dragon.segments",
		},
		{
			name:    "插值比例越界",
			mutate:  func(cfg *IntroConfig) { cfg.Dragon.FollowRate = 1.5 },
			wantErr: "followRate",
		},
		{
			name:    "生成数量区间颠倒",
			mutate:  func(cfg *IntroConfig) { cfg.Ambient.Ember.BurstMin, cfg.Ambient.Ember.BurstMax = 3, 1 },
			wantErr: "burst range",
		},
		{
			name:    "颜色格式错误",
			mutate:  func(cfg *IntroConfig) { cfg.Dragon.BodyColors = []string{"purple"} },
			wantErr: "invalid color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultIntroConfig()
			tt.mutate(cfg)
			err := validateIntroConfig(cfg)
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParticleKindTable(t *testing.T) {
	for k := KindSparkle; k < kindCount; k++ {
		spec, ok := ParticleSpec(k)
		if !ok {
			t.Fatalf("missing spec for %s", k)
		}
		if spec.Decay.Min <= 0 {
			t.Errorf("%s: decay must be positive so particles always die", k)
		}
		if len(spec.Palette) == 0 {
			t.Errorf("%s: empty palette", k)
		}
	}

	if _, ok := ParticleSpec(ParticleKind(99)); ok {
		t.Error("unknown kind should not have a spec")
	}
}

func TestRange_Sample(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := Range{Min: 2, Max: 5}
	for i := 0; i < 1000; i++ {
		if v := r.Sample(rng); !r.Contains(v) {
			t.Fatalf("sample %f out of range [%f, %f]", v, r.Min, r.Max)
		}
	}

	// 退化区间总是返回 Min
	if v := (Range{Min: 3, Max: 3}).Sample(rng); v != 3 {
		t.Errorf("Expected 3, got %f", v)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#7c2dff")
	if err != nil {
		t.Fatalf("ParseColor failed: %v", err)
	}
	if c.R != 0x7c || c.G != 0x2d || c.B != 0xff || c.A != 255 {
		t.Errorf("unexpected color %+v", c)
	}

	if _, err := ParseColor("nope"); err == nil {
		t.Error("Expected error for invalid color")
	}
}
