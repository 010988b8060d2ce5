package components

// Visibility 画面容器的三态可见性
// 状态只按 Hidden → Active → Exiting → Hidden 循环。
type Visibility int

const (
	VisibilityHidden Visibility = iota
	VisibilityActive
	VisibilityExiting
)

// String 返回可见性名称
func (v Visibility) String() string {
	switch v {
	case VisibilityHidden:
		return "hidden"
	case VisibilityActive:
		return "active"
	case VisibilityExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// ContainerComponent 一个命名的画面区域（每个开场阶段一个）
type ContainerComponent struct {
	Name  string
	Phase IntroPhase

	Visibility Visibility

	// Alpha 当前不透明度，由 ContainerSystem 根据可见性渐变
	Alpha float64
	// FadeIn 进入时长（秒）
	FadeIn float64
	// FadeOut 退场时长（秒），与阶段的退场延迟一致
	FadeOut float64

	// Elapsed 进入当前可见性状态后经过的时间
	Elapsed float64
}
