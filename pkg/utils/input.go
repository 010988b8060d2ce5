// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的输入状态
// 用于统一处理鼠标和触摸输入
type InputState struct {
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 点击/触摸位置
	X, Y int
	// 是否有活动的触摸
	IsTouching bool
}

// GetInputState 获取当前帧的输入状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func GetInputState() InputState {
	state := InputState{}

	// 首先检查触摸输入（移动设备）
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.JustPressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.IsTouching = true
		return state
	}

	// 活动的触摸（拖动时用于指针轨迹）
	allTouchIDs := ebiten.AppendTouchIDs(nil)
	if len(allTouchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(allTouchIDs[0])
		state.IsTouching = true
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		state.JustPressed = true
		state.X, state.Y = ebiten.CursorPosition()
		return state
	}

	state.X, state.Y = ebiten.CursorPosition()
	return state
}

// IsAnyKeyJustPressed 任意一个按键是否在本帧刚刚按下
func IsAnyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// PointerTracker 只在指针位置变化时报告移动
// 桌面端光标每帧都有位置，直接转发会让指针轨迹在静止时也不断生成。
type PointerTracker struct {
	x, y int
	seen bool
}

// Moved 记录新位置，返回是否与上一次不同（第一次记录不算移动）
func (pt *PointerTracker) Moved(x, y int) bool {
	if !pt.seen {
		pt.x, pt.y, pt.seen = x, y, true
		return false
	}
	if x == pt.x && y == pt.y {
		return false
	}
	pt.x, pt.y = x, y
	return true
}

// Position 最后记录的位置
func (pt *PointerTracker) Position() (int, int) {
	return pt.x, pt.y
}

// Reset 清除记录
func (pt *PointerTracker) Reset() {
	*pt = PointerTracker{}
}
