package components

import "image/color"

// EnergyRingComponent 扩散的能量环（点击涟漪、冲击波）
// 中心保存在 PositionComponent 中。
type EnergyRingComponent struct {
	Radius    float64
	MaxRadius float64

	// Speed 当前扩散速度（像素/秒），按 Friction 衰减，不低于 MinSpeed
	Speed    float64
	MinSpeed float64
	// Friction 每秒速度保留比例
	Friction float64

	// Life 剩余生命值，始终等于 1 - Radius/MaxRadius
	Life float64

	Width float64
	Color color.NRGBA
}
