package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/inferno/pkg/app"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging")
	configFlag     = flag.String("config", "", "Path to an intro YAML config (default: embedded data/intro.yaml)")
	skipIntroFlag  = flag.Bool("skip-intro", false, "Jump straight to the main card")
	fullscreenFlag = flag.Bool("fullscreen", false, "Start in fullscreen mode")
	seedFlag       = flag.Int64("seed", 0, "Random seed for particles and progress (0 = time based)")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		SkipIntro:  *skipIntroFlag,
		Fullscreen: *fullscreenFlag,
		Seed:       *seedFlag,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(gameApp.IntroConfig().Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
