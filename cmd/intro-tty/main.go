// intro-tty 在终端里预览开场序列
//
// 与图形端共用同一套阶段序列器和龙的运动学，只把绘制换成字符格：
// 启动行、角色揭示、链条上的龙和主卡片。
//
// 按键：Space/Esc 跳过（主卡片阶段 Space 重播），r 重播，q 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
	"github.com/decker502/inferno/pkg/entities"
	"github.com/decker502/inferno/pkg/systems"
)

var (
	configFlag  = flag.String("config", "", "Path to an intro YAML config (default: built-in)")
	muteFlag    = flag.Bool("mute", false, "Disable beeps")
	verboseFlag = flag.Bool("verbose", false, "Log to intro-tty.log")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
)

// 每个字符格对应的像素尺寸（运动学按像素计算）
const (
	cellWidth  = 10.0
	cellHeight = 20.0
	tickRate   = 60
)

// ttyIntro 终端预览
type ttyIntro struct {
	screen tcell.Screen
	sound  *beeper
	config *config.IntroConfig

	entityManager *ecs.EntityManager
	sequencer     *systems.IntroSequencerSystem
	dragonSystem  *systems.DragonSystem
	flashSystem   *systems.FlashEffectSystem
	particles     *systems.ParticleSystem

	cols, rows int
	rain       *matrixColumns
	rng        *rand.Rand

	lastBootLines int
}

func newTTYIntro(screen tcell.Screen, cfg *config.IntroConfig, sound *beeper, seed int64) *ttyIntro {
	t := &ttyIntro{
		screen:        screen,
		sound:         sound,
		config:        cfg,
		entityManager: ecs.NewEntityManager(),
		rng:           rand.New(rand.NewSource(seed)),
	}
	t.cols, t.rows = screen.Size()
	vp := t.viewport()

	t.dragonSystem = systems.NewDragonSystem(t.entityManager, cfg.Dragon, vp, t.rng)
	t.sequencer = systems.NewIntroSequencerSystem(t.entityManager, cfg, t.dragonSystem, t.rng)
	t.flashSystem = systems.NewFlashEffectSystem(t.entityManager)
	t.particles = systems.NewParticleSystem(t.entityManager)
	t.rain = newMatrixColumns(t.cols, t.rows, t.rng)

	t.sequencer.OnPhaseChange(func(from, to components.IntroPhase) {
		log.Printf("[intro-tty] %s -> %s", from, to)
		t.sound.phase()
	})
	t.sequencer.OnReset(func() {
		t.lastBootLines = 0
		t.rain.reset()
	})
	t.sequencer.Start()
	return t
}

// viewport 字符格尺寸换算成像素视口
func (t *ttyIntro) viewport() entities.Viewport {
	return entities.Viewport{Width: float64(t.cols) * cellWidth, Height: float64(t.rows) * cellHeight}
}

func (t *ttyIntro) resize() {
	t.cols, t.rows = t.screen.Size()
	t.dragonSystem.SetViewport(t.viewport())
	t.rain.resize(t.cols, t.rows)
	t.screen.Sync()
}

func (t *ttyIntro) update(dt float64) {
	t.sequencer.Update(dt)
	t.dragonSystem.Update(dt)
	t.particles.Update(dt)
	t.flashSystem.Update(dt)
	t.entityManager.RemoveMarkedEntities()

	seq := t.sequencer.State()
	if seq.BootLinesShown > t.lastBootLines {
		t.lastBootLines = seq.BootLinesShown
		t.sound.bootLine()
	}
	if seq.MatrixActive && !seq.MatrixHidden {
		t.rain.step()
	}
}

// handleKey 返回 false 表示退出
func (t *ttyIntro) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		return false
	case ev.Key() == tcell.KeyEscape:
		t.sequencer.Skip()
	case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
		if !t.sequencer.Replay() {
			t.sequencer.Skip()
		}
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
		t.sequencer.Replay()
	}
	return true
}

func (t *ttyIntro) run() {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !t.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				t.resize()
			}
		case <-ticker.C:
			t.update(1.0 / tickRate)
			t.draw()
		}
	}
}

func loadConfig(path string) (*config.IntroConfig, error) {
	if path == "" {
		return config.DefaultIntroConfig(), nil
	}
	return config.LoadIntroConfig(path)
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *verboseFlag {
		f, err := os.Create("intro-tty.log")
		if err == nil {
			defer f.Close()
			log.SetOutput(f)
		}
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sound := newBeeper(*muteFlag)

	intro := newTTYIntro(screen, cfg, sound, seed)
	intro.run()

	screen.Fini()
	sound.close()
}
