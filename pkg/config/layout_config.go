package config

// 布局配置常量
// 本文件定义窗口尺寸和各个画面元素的布局参数。
// 所有坐标都是逻辑坐标，逻辑屏幕尺寸始终等于窗口尺寸（见 app.Layout）。

const (
	// GameWindowWidth 默认窗口宽度
	GameWindowWidth = 1280
	// GameWindowHeight 默认窗口高度
	GameWindowHeight = 720
	// WindowTitle 窗口标题
	WindowTitle = "INFERNO"
)

// Boot Screen (启动终端画面)
const (
	// BootTextX 启动行左边距
	BootTextX = 80.0
	// BootTextTop 第一行的 Y 坐标
	BootTextTop = 140.0
	// BootLineHeight 行高
	BootLineHeight = 30.0
	// BootFontSize 启动行字号
	BootFontSize = 18.0
)

// Reveal Screens (角色揭示画面)
const (
	// RevealTitleFontSize 角色名字号
	RevealTitleFontSize = 56.0
	// RevealSubtitleFontSize 副标题字号
	RevealSubtitleFontSize = 20.0
	// RevealPortraitWidth 立绘显示宽度（占位图也使用这个尺寸）
	RevealPortraitWidth = 240
	// RevealPortraitHeight 立绘显示高度
	RevealPortraitHeight = 320
	// ProgressBarWidth 进度条宽度
	ProgressBarWidth = 420.0
	// ProgressBarHeight 进度条高度
	ProgressBarHeight = 6.0
)

// Main Card (主卡片)
const (
	// CardWidth 主卡片宽度
	CardWidth = 460.0
	// CardHeight 主卡片高度
	CardHeight = 300.0
	// CardOrbitMargin 卡片环绕龙的轨道与卡片边缘的距离
	CardOrbitMargin = 45.0
	// CardOrbitSquash 环绕椭圆的纵向压缩比
	CardOrbitSquash = 0.7
	// ClockFontSize 时钟字号
	ClockFontSize = 64.0
	// CardLineFontSize 卡片正文字号
	CardLineFontSize = 16.0
	// ParallaxBackgroundShift 背景视差最大偏移（像素）
	ParallaxBackgroundShift = 22.0
	// ParallaxCardShift 卡片倾斜对应的最大偏移（像素）
	ParallaxCardShift = 9.0
)

// Controls (屏幕按钮)
const (
	// SkipButtonWidth 右上角“跳过”按钮宽度
	SkipButtonWidth = 96.0
	// SkipButtonHeight 按钮高度
	SkipButtonHeight = 32.0
	// SkipButtonMargin 按钮与屏幕边缘的距离
	SkipButtonMargin = 24.0
)

// SkipButtonRect 根据视口宽度返回跳过/重播按钮的矩形（x, y, w, h）
func SkipButtonRect(viewportWidth int) (x, y, w, h float64) {
	return float64(viewportWidth) - SkipButtonWidth - SkipButtonMargin, SkipButtonMargin, SkipButtonWidth, SkipButtonHeight
}

// PointInRect 判断点是否在矩形内
func PointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}
