package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents an intro scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，场景需要跟随窗口尺寸时实现
//
// 窗口尺寸变化（包括全屏切换）时由 SceneManager.Resize 调用。
type Resizable interface {
	Resize(width, height int)
}
