// Package app 提供开场动画应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/game"
	"github.com/decker502/inferno/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 开场配置文件路径，为空则使用嵌入的 data/intro.yaml
	ConfigPath string
	// SkipIntro 启动后直接进入主卡片
	SkipIntro bool
	// Fullscreen 以全屏启动
	Fullscreen bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// App 是开场动画的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	introConfig              *config.IntroConfig
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	introConfig, err := loadIntroConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("开场配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载开场配置: %d 行启动文本, %d 个角色", len(introConfig.Boot.Lines), len(introConfig.Reveals))

	resourceManager := game.NewResourceManager()
	sceneManager := game.NewSceneManager()

	introScene := scenes.NewIntroScene(resourceManager, sceneManager, introConfig, scenes.IntroOptions{
		SkipIntro: cfg.SkipIntro,
		Seed:      cfg.Seed,
	})
	sceneManager.SwitchTo(introScene)

	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		introConfig:  introConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// loadIntroConfig 读取开场配置；path 为空时优先使用嵌入配置，嵌入配置不存在时使用内置默认值
func loadIntroConfig(path string) (*config.IntroConfig, error) {
	if path != "" {
		return config.LoadIntroConfig(path)
	}
	cfg, err := config.LoadIntroConfig(config.DefaultIntroConfigPath)
	if err != nil {
		log.Printf("[Config] 嵌入配置不可用，使用内置默认配置: %v", err)
		return config.DefaultIntroConfig(), nil
	}
	return cfg, nil
}

// Update 更新开场逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸始终等于窗口尺寸
// 尺寸变化时通知场景重建绘制层。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth, outsideHeight
	if w <= 0 || h <= 0 {
		w, h = config.GameWindowWidth, config.GameWindowHeight
	}
	a.sceneManager.Resize(w, h)
	return w, h
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IntroConfig 返回生效的开场配置
func (a *App) IntroConfig() *config.IntroConfig {
	return a.introConfig
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
