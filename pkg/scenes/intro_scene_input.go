package scenes

import (
	"log"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// handleInput 把键盘和指针输入转成系统调用
func (s *IntroScene) handleInput() {
	if utils.IsAnyKeyJustPressed(ebiten.KeyEscape) {
		s.skip()
	}
	if utils.IsAnyKeyJustPressed(ebiten.KeySpace) {
		s.spacePressed()
	}

	state := utils.GetInputState()
	if s.pointer.Moved(state.X, state.Y) {
		s.pointerMoved(float64(state.X), float64(state.Y))
	}
	if state.JustPressed {
		s.pointerPressed(float64(state.X), float64(state.Y))
	}
}

// skip 跳到主卡片（主卡片阶段内什么都不做）
func (s *IntroScene) skip() {
	s.sequencer.Skip()
}

// spacePressed 空格：开场中跳过；主卡片阶段重播并触发冲击波
func (s *IntroScene) spacePressed() {
	if s.inMain() {
		s.spawnerSystem.Shockwave()
		s.replay()
		return
	}
	s.skip()
}

// replay 重新播放整个开场
func (s *IntroScene) replay() {
	if !s.sequencer.Replay() {
		return
	}
	log.Printf("[IntroScene] Replay started")
}

// pointerMoved 指针轨迹和视差
func (s *IntroScene) pointerMoved(x, y float64) {
	s.spawnerSystem.PointerMoved(x, y)
	s.mainCardSystem.PointerMoved(x, y)
}

// pointerPressed 点击按钮时跳过/重播，其他位置产生涟漪
func (s *IntroScene) pointerPressed(x, y float64) {
	w, _ := s.surfaces.Size()
	bx, by, bw, bh := config.SkipButtonRect(w)
	if config.PointInRect(x, y, bx, by, bw, bh) {
		if s.inMain() {
			s.replay()
		} else {
			s.skip()
		}
		return
	}
	s.spawnerSystem.Ripple(x, y)
}

// inMain 主卡片阶段的进入动作是否已经执行（此时按钮变成重播）
func (s *IntroScene) inMain() bool {
	seq := s.sequencer.State()
	return seq != nil && seq.Phase == components.PhaseMain && seq.MainEntered
}
