package components

import (
	"fmt"

	"github.com/decker502/inferno/pkg/ecs"
)

// IntroPhase 开场阶段（封闭枚举，按播放顺序排列）
type IntroPhase int

const (
	PhaseBoot IntroPhase = iota
	PhaseReveal1
	PhaseReveal2
	PhaseReveal3
	PhaseReveal4
	PhaseDragonFlight
	PhaseMain

	// PhaseCount 阶段数量
	PhaseCount
)

// String 返回阶段名称
func (p IntroPhase) String() string {
	switch p {
	case PhaseBoot:
		return "boot"
	case PhaseReveal1:
		return "reveal-1"
	case PhaseReveal2:
		return "reveal-2"
	case PhaseReveal3:
		return "reveal-3"
	case PhaseReveal4:
		return "reveal-4"
	case PhaseDragonFlight:
		return "dragon-flight"
	case PhaseMain:
		return "main"
	default:
		return fmt.Sprintf("IntroPhase(%d)", int(p))
	}
}

// Valid 是否为合法阶段
func (p IntroPhase) Valid() bool {
	return p >= PhaseBoot && p < PhaseCount
}

// Next 下一个阶段；main 之后没有阶段
func (p IntroPhase) Next() (IntroPhase, bool) {
	if p < PhaseBoot || p >= PhaseMain {
		return p, false
	}
	return p + 1, true
}

// RevealIndex 角色揭示阶段的序号（0-3）
func (p IntroPhase) RevealIndex() (int, bool) {
	if p >= PhaseReveal1 && p <= PhaseReveal4 {
		return int(p - PhaseReveal1), true
	}
	return 0, false
}

// GateFlag 由阶段序列器控制的开关
type GateFlag int

const (
	GateNone   GateFlag = iota // 不受控制
	GateEmbers                 // 余烬
	GateKanji                  // 漂浮汉字（主卡片出现后）
	GateMatrix                 // 矩阵雨
)

// IntroSequenceComponent 开场阶段序列器的状态
//
// 序列器系统是唯一的写入者；渲染和生成器系统只读。
type IntroSequenceComponent struct {
	// Phase 当前激活（可见）的阶段
	Phase IntroPhase

	// Visited 本轮已进入过的阶段，阶段只能前进，不能重新进入
	Visited [PhaseCount]bool

	// Containers 每个阶段的画面容器实体
	Containers [PhaseCount]ecs.EntityID

	// Run 轮次编号，每次重播加一；过期的完成回调依靠它被忽略
	Run int

	// Skipped 本轮是否通过跳过进入主卡片
	Skipped bool

	// BootLinesShown 启动终端已经显示的行数
	BootLinesShown int

	// Progress 第一个揭示阶段的加载进度（0-100）
	Progress float64

	// MainEntered 主卡片阶段的进入动作是否已经执行
	MainEntered bool

	// CardVisible 主卡片是否已经出现
	CardVisible bool

	// CardLinesShown 主卡片已经显示的正文行数（错开出现）
	CardLinesShown int

	// 开关
	EmbersEnabled bool
	KanjiEnabled  bool
	MatrixActive  bool
	// MatrixHidden 跳过时直接隐藏矩阵雨层（不做淡出）
	MatrixHidden bool
}

// Gate 读取开关值；GateNone 总是打开
func (c *IntroSequenceComponent) Gate(flag GateFlag) bool {
	switch flag {
	case GateEmbers:
		return c.EmbersEnabled
	case GateKanji:
		return c.KanjiEnabled
	case GateMatrix:
		return c.MatrixActive
	default:
		return true
	}
}
