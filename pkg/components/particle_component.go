package components

import (
	"image/color"

	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
)

// AmbientParticleComponent 氛围粒子的运行时状态
//
// 位置保存在 PositionComponent 中。粒子在生命值耗尽时被删除；
// 外部超时由 LifetimeComponent 负责，两者先到者为准。
//
// This is a pure data component following ECS principles - it contains no methods.
type AmbientParticleComponent struct {
	Kind config.ParticleKind

	// Owner 生成该粒子的实体（生成器或龙）
	Owner ecs.EntityID

	// Velocity (速度, 像素/秒)
	VelocityX float64
	VelocityY float64
	// Drag 每秒速度保留比例
	Drag float64

	// Life 剩余生命值 [0, 1]
	Life float64
	// Decay 每秒衰减量
	Decay float64

	Size  float64
	Color color.NRGBA

	// Glyph 非空时以文字形式绘制
	Glyph string
}

// SpawnerComponent 定时生成器
type SpawnerComponent struct {
	Kind config.ParticleKind

	// Interval 生成间隔（秒），0 表示每帧都生成
	Interval float64
	// Elapsed 距上次生成经过的时间
	Elapsed float64

	// BurstMin / BurstMax 每次生成数量区间
	BurstMin int
	BurstMax int

	// Gate 控制开关，GateNone 表示总是开启
	Gate GateFlag

	// Surface 绘制层名称；层不存在时生成器不工作
	Surface string

	// Glyphs 文字粒子的候选字符
	Glyphs []string

	// Emitted 累计生成数量
	Emitted int
}
