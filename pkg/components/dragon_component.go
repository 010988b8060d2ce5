package components

import (
	"image/color"

	"github.com/decker502/inferno/pkg/kinematics"
)

// DragonComponent 开场龙
// 轨道负责生成头部目标点，链条负责身体；两者都只由 DragonSystem 推进。
type DragonComponent struct {
	Chain *kinematics.Chain
	Orbit *kinematics.Orbit

	// BodyColors 身体颜色渐变（头 → 尾）
	BodyColors []color.NRGBA

	// Exiting 完成后的退场淡出
	Exiting     bool
	ExitElapsed float64
	ExitDelay   float64
}

// CardDragonComponent 环绕主卡片的小龙
type CardDragonComponent struct {
	Chain *kinematics.Chain

	// Angle 当前椭圆轨道角度，每帧增加 AngularSpeed
	Angle        float64
	AngularSpeed float64

	// 椭圆中心和半轴（由卡片矩形计算）
	CenterX, CenterY float64
	RadiusX, RadiusY float64

	Alpha      float64
	MaxAlpha   float64
	FadeInRate float64 // 每秒
}
