package config

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// ParticleKind 氛围粒子种类
// 每种粒子的行为完全由 ParticleKindSpec 表决定，系统代码不按种类分支。
type ParticleKind int

const (
	KindSparkle     ParticleKind = iota // 从底部升起的闪光点
	KindEmber                           // 余烬（受开场阶段开关控制）
	KindKanji                           // 漂浮汉字（主卡片阶段）
	KindTrail                           // 指针轨迹
	KindDragonSpark                     // 龙头火花
	kindCount
)

// String 返回粒子种类名称（用于日志）
func (k ParticleKind) String() string {
	switch k {
	case KindSparkle:
		return "sparkle"
	case KindEmber:
		return "ember"
	case KindKanji:
		return "kanji"
	case KindTrail:
		return "trail"
	case KindDragonSpark:
		return "dragon-spark"
	default:
		return fmt.Sprintf("ParticleKind(%d)", int(k))
	}
}

// Range 闭区间 [Min, Max]
type Range struct {
	Min, Max float64
}

// Sample 在区间内均匀采样；rng 为 nil 时使用全局随机源
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	var f float64
	if rng != nil {
		f = rng.Float64()
	} else {
		f = rand.Float64()
	}
	return r.Min + (r.Max-r.Min)*f
}

// Contains 值是否在区间内
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// SpawnOrigin 粒子出生位置
type SpawnOrigin int

const (
	OriginBottomEdge SpawnOrigin = iota // 视口底边随机位置
	OriginPoint                         // 指定点（龙头、指针）
	OriginAnywhere                      // 视口内随机位置
)

// ParticleKindSpec 单种粒子的参数表
type ParticleKindSpec struct {
	Origin  SpawnOrigin
	Speed   Range // 初速度（像素/秒）
	Heading Range // 初速度方向（弧度，屏幕坐标系，-π/2 向上）
	Decay   Range // 生命值每秒衰减量（生命值从 1 开始）
	Size    Range // 半径或字号（像素）
	Drag    float64 // 每秒速度保留比例，1 表示无阻力
	Timeout float64 // 外部超时（秒），与生命耗尽先到者为准；0 表示无超时
	Glyph   bool    // 是否以文字形式绘制
	Palette []color.NRGBA
}

// particleKindTable 种类 → 参数
// 每帧参数按 60 TPS 换算为每秒（例如龙火花每帧 -0.06 → 每秒 -3.6，每帧 ×0.92 → 每秒 ×0.92^60）。
var particleKindTable = [kindCount]ParticleKindSpec{
	KindSparkle: {
		Origin:  OriginBottomEdge,
		Speed:   Range{120, 260},
		Heading: Range{-math.Pi/2 - 0.15, -math.Pi/2 + 0.15},
		Decay:   Range{0.2, 0.5},
		Size:    Range{1.5, 3},
		Drag:    1,
		Timeout: 6.5,
		Palette: mustPalette("#a855f7", "#00d4ff", "#ffffff", "#ff2d55", "#ffd700"),
	},
	KindEmber: {
		Origin:  OriginBottomEdge,
		Speed:   Range{30, 80},
		Heading: Range{-math.Pi/2 - 0.4, -math.Pi/2 + 0.4},
		Decay:   Range{0.25, 0.5},
		Size:    Range{1.5, 3.5},
		Drag:    0.9,
		Timeout: 5,
		Palette: mustPalette("#ff6a00", "#ff2d55", "#ffb347", "#ffd700"),
	},
	KindKanji: {
		Origin:  OriginBottomEdge,
		Speed:   Range{40, 90},
		Heading: Range{-math.Pi / 2, -math.Pi / 2},
		Decay:   Range{0.05, 0.1},
		Size:    Range{12, 32},
		Drag:    1,
		Timeout: 25,
		Glyph:   true,
		Palette: mustPalette("#a855f7", "#00d4ff"),
	},
	KindTrail: {
		Origin:  OriginPoint,
		Speed:   Range{0, 0},
		Heading: Range{0, 0},
		Decay:   Range{2, 2},
		Size:    Range{2, 2},
		Drag:    1,
		Timeout: 0.6,
		Palette: mustPalette("#7c2dff"),
	},
	KindDragonSpark: {
		Origin:  OriginPoint,
		Speed:   Range{0, 170},
		Heading: Range{-math.Pi, math.Pi},
		Decay:   Range{3.6, 3.6},
		Size:    Range{1, 5},
		Drag:    0.0067,
		Palette: mustPalette("#7c2dff", "#00d4ff"),
	},
}

// ParticleSpec 返回粒子种类的参数；未知种类返回 false
func ParticleSpec(kind ParticleKind) (ParticleKindSpec, bool) {
	if kind < 0 || kind >= kindCount {
		return ParticleKindSpec{}, false
	}
	return particleKindTable[kind], true
}

// PickColor 从调色板随机取色；调色板为空时返回白色
func (s ParticleKindSpec) PickColor(rng *rand.Rand) color.NRGBA {
	if len(s.Palette) == 0 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	var i int
	if rng != nil {
		i = rng.Intn(len(s.Palette))
	} else {
		i = rand.Intn(len(s.Palette))
	}
	return s.Palette[i]
}

// ParseColor 解析 "#rrggbb" 颜色
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func mustPalette(hexes ...string) []color.NRGBA {
	out := make([]color.NRGBA, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseColor(h)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}
