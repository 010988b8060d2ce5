package entities

import (
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
	"github.com/decker502/inferno/pkg/kinematics"
)

// containerFadeIn 容器进入时长
const containerFadeIn = 0.4

// NewPhaseContainer 创建阶段画面容器（初始隐藏）
func NewPhaseContainer(em *ecs.EntityManager, phase components.IntroPhase, fadeOut float64) ecs.EntityID {
	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.ContainerComponent{
		Name:       phase.String(),
		Phase:      phase,
		Visibility: components.VisibilityHidden,
		FadeIn:     containerFadeIn,
		FadeOut:    fadeOut,
	})
	return entityID
}

// NewDragon 创建开场龙实体
// 链条初始沿螺线排列在轨道外侧，轨道以视口中心为圆心。
func NewDragon(em *ecs.EntityManager, cfg config.DragonConfig, vp Viewport) ecs.EntityID {
	cx, cy := vp.Width/2, vp.Height/2

	chain := kinematics.NewChain(kinematics.ChainConfig{
		Count:      cfg.Segments,
		BaseLength: cfg.BaseLength,
		Taper:      cfg.Taper,
		MinLength:  cfg.MinLength,
		FollowRate: cfg.FollowRate,
	}, cx, cy)
	chain.Place(func(i int) (float64, float64) {
		a := cfg.StartAngle + float64(i)*0.22
		r := cfg.OrbitRadius + 40 + float64(i)*4
		return cx + math.Cos(a)*r, cy + math.Sin(a)*r
	})

	orbit := kinematics.NewOrbit(kinematics.OrbitConfig{
		CenterX:         cx,
		CenterY:         cy,
		Radius:          cfg.OrbitRadius,
		AngularSpeed:    cfg.AngularSpeed,
		StartAngle:      cfg.StartAngle,
		EntryX:          vp.Width * cfg.EntryXRatio,
		EntryY:          vp.Height * cfg.EntryYRatio,
		FlyInStep:       cfg.FlyInStep,
		FlyInFollowMin:  cfg.FlyInFollowMin,
		FlyInFollowGain: cfg.FlyInFollowGain,
		CircleTurns:     cfg.CircleTurns,
		ConvergeStep:    cfg.ConvergeStep,
		ShrinkFraction:  cfg.ShrinkFraction,
		SpeedBoost:      cfg.SpeedBoost,
		FadeFraction:    cfg.FadeFraction,
	})

	colors := make([]color.NRGBA, 0, len(cfg.BodyColors))
	for _, hex := range cfg.BodyColors {
		c, err := config.ParseColor(hex)
		if err != nil {
			log.Printf("[DragonFactory] skip body color: %v", err)
			continue
		}
		colors = append(colors, c)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.DragonComponent{
		Chain:      chain,
		Orbit:      orbit,
		BodyColors: colors,
		ExitDelay:  cfg.ExitDelay,
	})
	return entityID
}

// NewCardDragon 创建环绕主卡片的小龙（初始透明，逐渐淡入）
func NewCardDragon(em *ecs.EntityManager, cfg config.CardDragonConfig, cx, cy, rx, ry float64) ecs.EntityID {
	chain := kinematics.NewChain(kinematics.ChainConfig{
		Count:      cfg.Segments,
		BaseLength: cfg.BaseLength,
		Taper:      cfg.Taper,
		MinLength:  cfg.MinLength,
		FollowRate: cfg.FollowRate,
	}, cx, cy)

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.CardDragonComponent{
		Chain:        chain,
		AngularSpeed: cfg.AngularSpeed,
		CenterX:      cx,
		CenterY:      cy,
		RadiusX:      rx,
		RadiusY:      ry,
		MaxAlpha:     cfg.MaxAlpha,
		FadeInRate:   cfg.FadeInRate,
	})
	return entityID
}

// matrixPalette 矩阵雨字符颜色
var matrixPalette = []color.NRGBA{
	{R: 124, G: 45, B: 255, A: 179},
	{R: 0, G: 212, B: 255, A: 128},
	{R: 0, G: 255, B: 0, A: 102},
}

// NewMatrixRain 创建矩阵雨实体，列数 = 视口宽度 / 列宽
func NewMatrixRain(em *ecs.EntityManager, rng *rand.Rand, cfg config.AmbientConfig, vp Viewport) ecs.EntityID {
	cols := int(vp.Width / cfg.MatrixColumnWidth)
	if cols < 1 {
		cols = 1
	}
	drops := make([]float64, cols)
	for i := range drops {
		drops[i] = -config.Range{Min: 0, Max: 100}.Sample(rng)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.MatrixRainComponent{
		Drops:       drops,
		ColumnWidth: cfg.MatrixColumnWidth,
		Charset:     []rune(cfg.MatrixCharset),
		Palette:     matrixPalette,
		Fade:        cfg.MatrixFade,
		Alpha:       1,
		FadeOut:     cfg.MatrixFadeOut,
	})
	return entityID
}

// fieldColors 粒子场颜色（紫、青、红）
var fieldColors = []color.NRGBA{
	{R: 124, G: 45, B: 255, A: 255},
	{R: 0, G: 212, B: 255, A: 255},
	{R: 255, G: 45, B: 85, A: 255},
}

// NewParticleField 创建漂浮粒子场
func NewParticleField(em *ecs.EntityManager, rng *rand.Rand, cfg config.AmbientConfig, vp Viewport) ecs.EntityID {
	speed := config.Range{Min: -cfg.FieldSpeed, Max: cfg.FieldSpeed}
	points := make([]components.FieldPoint, cfg.FieldCount)
	for i := range points {
		points[i] = components.FieldPoint{
			X:     config.Range{Min: 0, Max: vp.Width}.Sample(rng),
			Y:     config.Range{Min: 0, Max: vp.Height}.Sample(rng),
			VX:    speed.Sample(rng),
			VY:    speed.Sample(rng),
			Size:  config.Range{Min: 0.2, Max: 2.2}.Sample(rng),
			Alpha: config.Range{Min: 0.04, Max: 0.39}.Sample(rng),
			Color: fieldColors[randIntn(rng, len(fieldColors))],
		}
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.ParticleFieldComponent{
		Points:       points,
		LinkDistance: cfg.FieldLinkDistance,
	})
	return entityID
}

// NewMainCardWidgets 创建主卡片上的背景、视差、时钟和横幅实体
func NewMainCardWidgets(em *ecs.EntityManager, cfg *config.IntroConfig, vp Viewport) ecs.EntityID {
	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.BackgroundComponent{
		Interval: cfg.Ambient.HueInterval,
	})
	em.AddComponent(entityID, &components.ParallaxComponent{
		PointerX: vp.Width / 2,
		PointerY: vp.Height / 2,
		SmoothX:  vp.Width / 2,
		SmoothY:  vp.Height / 2,
		Lerp:     cfg.Ambient.ParallaxLerp,
	})
	em.AddComponent(entityID, &components.ClockComponent{})
	em.AddComponent(entityID, &components.BannerComponent{
		Slides:   append([]string(nil), cfg.Main.Banners...),
		Interval: cfg.Main.BannerInterval,
	})
	return entityID
}

// randIntn 返回 [0, n) 的随机整数；rng 为 nil 时使用全局随机源
func randIntn(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	if rng != nil {
		return rng.Intn(n)
	}
	return rand.Intn(n)
}
