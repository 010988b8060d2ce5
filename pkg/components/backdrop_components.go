package components

import (
	"image/color"
	"time"
)

// MatrixRainComponent 矩阵雨
// 列下落位置以行数计（一行 = ColumnWidth 像素）。
type MatrixRainComponent struct {
	Drops       []float64
	ColumnWidth float64
	Charset     []rune
	Palette     []color.NRGBA

	// Fade 每帧覆盖的黑色透明度，形成拖尾
	Fade float64

	// Alpha 整层不透明度；停用后按 FadeOut 秒淡出
	Alpha   float64
	FadeOut float64
}

// FieldPoint 粒子场中的一个点
type FieldPoint struct {
	X, Y   float64
	VX, VY float64 // 像素/秒
	Size   float64
	Alpha  float64
	Color  color.NRGBA
}

// ParticleFieldComponent 漂浮粒子场（点之间距离小于 LinkDistance 时连线）
type ParticleFieldComponent struct {
	Points       []FieldPoint
	LinkDistance float64
}

// ParallaxComponent 指针视差
// 平滑后的指针位置决定背景偏移和卡片倾斜。
type ParallaxComponent struct {
	PointerX, PointerY float64 // 原始指针位置
	SmoothX, SmoothY   float64 // 平滑后的位置
	Lerp               float64 // 每帧插值比例

	// OffsetX / OffsetY 背景偏移（像素）
	OffsetX, OffsetY float64
	// TiltX / TiltY 卡片倾斜 [-0.5, 0.5]
	TiltX, TiltY float64
}

// BackgroundComponent 色相循环背景
type BackgroundComponent struct {
	Hue      float64 // 角度 [0, 360)
	Interval float64 // 每隔 Interval 秒色相 +1
	Elapsed  float64
}

// ClockComponent 主卡片时钟
type ClockComponent struct {
	Now     time.Time
	Hours   string
	Minutes string
	Date    string

	// Elapsed 距上次刷新经过的时间
	Elapsed float64
}

// BannerComponent 横幅轮播
type BannerComponent struct {
	Slides   []string
	Current  int
	Interval float64
	Elapsed  float64
}
