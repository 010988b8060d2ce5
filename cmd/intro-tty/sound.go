package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// beeper 启动行和阶段切换的提示音；音频不可用时静默
type beeper struct {
	enabled bool
}

func newBeeper(mute bool) *beeper {
	if mute {
		return &beeper{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("[intro-tty] audio disabled: %v", err)
		return &beeper{}
	}
	return &beeper{enabled: true}
}

// tone 播放一个短正弦音
func (b *beeper) tone(freq float64, d time.Duration) {
	if !b.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

func (b *beeper) bootLine() { b.tone(880, 40*time.Millisecond) }
func (b *beeper) phase()    { b.tone(440, 120*time.Millisecond) }

func (b *beeper) close() {
	if b.enabled {
		speaker.Close()
	}
}
