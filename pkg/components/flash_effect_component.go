package components

// FlashEffectComponent 全屏转场闪光
//
// 使用场景：揭示阶段退场、龙完成时，白色闪光快速淡出
type FlashEffectComponent struct {
	// Duration 闪光持续时间（秒）
	Duration float64

	// Elapsed 已经过的时间（秒）
	Elapsed float64

	// Intensity 初始强度（0.0 - 1.0）
	// 1.0 = 完全白色，0.0 = 无效果
	Intensity float64
}
