package scenes

import (
	"log"
	"math/rand"
	"time"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
	"github.com/decker502/inferno/pkg/entities"
	"github.com/decker502/inferno/pkg/game"
	"github.com/decker502/inferno/pkg/systems"
	"github.com/decker502/inferno/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// IntroOptions 场景启动选项
type IntroOptions struct {
	// SkipIntro 启动后立即跳到主卡片
	SkipIntro bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// IntroScene 开场动画场景
//
// 场景只负责组装：创建实体管理器、绘制层和各个系统，把输入转成系统调用，
// 按固定顺序合成绘制层。阶段推进全部由 IntroSequencerSystem 完成。
type IntroScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	config          *config.IntroConfig
	options         IntroOptions

	entityManager *ecs.EntityManager
	rng           *rand.Rand
	surfaces      *game.SurfaceStack
	viewport      entities.Viewport
	portraits     *game.PortraitLoader

	// ECS systems
	sequencer        *systems.IntroSequencerSystem
	dragonSystem     *systems.DragonSystem
	cardDragonSystem *systems.CardDragonSystem
	spawnerSystem    *systems.AmbientSpawnerSystem
	particleSystem   *systems.ParticleSystem
	lifetimeSystem   *systems.LifetimeSystem
	ringSystem       *systems.EnergyRingSystem
	flashSystem      *systems.FlashEffectSystem
	containerSystem  *systems.ContainerSystem
	backdropSystem   *systems.BackdropSystem
	mainCardSystem   *systems.MainCardSystem
	renderSystem     *systems.RenderSystem

	// cardDragon 主卡片环绕龙，卡片出现前为 0
	cardDragon ecs.EntityID

	pointer utils.PointerTracker

	// Font resources
	matrixFace   *text.GoTextFace
	bootFace     *text.GoTextFace
	titleFace    *text.GoTextFace
	subtitleFace *text.GoTextFace
	clockFace    *text.GoTextFace
	cardFace     *text.GoTextFace
	buttonFace   *text.GoTextFace
	// cjkFont 漂浮汉字字体路径，加载失败时为空
	cjkFont string

	// elapsed 场景运行时间（光标闪烁、横幅滑入）
	elapsed float64
}

// NewIntroScene creates the intro scene and starts the phase sequence.
func NewIntroScene(rm *game.ResourceManager, sm *game.SceneManager, cfg *config.IntroConfig, opts IntroOptions) *IntroScene {
	if cfg == nil {
		cfg = config.DefaultIntroConfig()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	scene := &IntroScene{
		resourceManager: rm,
		sceneManager:    sm,
		config:          cfg,
		options:         opts,
		entityManager:   ecs.NewEntityManager(),
		rng:             rand.New(rand.NewSource(seed)),
		viewport: entities.Viewport{
			Width:  config.GameWindowWidth,
			Height: config.GameWindowHeight,
		},
	}
	scene.surfaces = game.NewSurfaceStack(config.GameWindowWidth, config.GameWindowHeight,
		game.SurfaceMatrix, game.SurfaceFX, game.SurfaceDragon, game.SurfaceCardDragon)

	scene.loadFonts()
	scene.loadPortraits()
	scene.initECS()

	scene.sequencer.Start()
	if opts.SkipIntro {
		scene.sequencer.Skip()
	}
	return scene
}

// loadFonts 加载字体；CJK 字体可选
func (s *IntroScene) loadFonts() {
	rm := s.resourceManager
	fonts := s.config.Fonts

	s.matrixFace = rm.MustFont(fonts.Mono, 13)
	s.bootFace = rm.MustFont(fonts.Mono, config.BootFontSize)
	s.titleFace = rm.MustFont(fonts.Regular, config.RevealTitleFontSize)
	s.subtitleFace = rm.MustFont(fonts.Mono, config.RevealSubtitleFontSize)
	s.clockFace = rm.MustFont(fonts.Regular, config.ClockFontSize)
	s.cardFace = rm.MustFont(fonts.Mono, config.CardLineFontSize)
	s.buttonFace = rm.MustFont(fonts.Mono, 14)

	if fonts.CJK == "" {
		log.Printf("[IntroScene] 未配置 CJK 字体，不生成漂浮汉字")
		return
	}
	if _, err := rm.LoadFont(fonts.CJK, 24); err != nil {
		log.Printf("[IntroScene] CJK 字体加载失败，不生成漂浮汉字: %v", err)
		return
	}
	s.cjkFont = fonts.CJK
}

// loadPortraits 解析每个揭示阶段的立绘回退链
func (s *IntroScene) loadPortraits() {
	s.portraits = game.NewPortraitLoader(s.resourceManager, nil)
	s.portraits.PlaceholderWidth = config.RevealPortraitWidth
	s.portraits.PlaceholderHeight = config.RevealPortraitHeight
	for _, r := range s.config.Reveals {
		p := s.portraits.Load(r.ID, r.Portraits)
		if p.Placeholder {
			log.Printf("[IntroScene] %s: 没有可用立绘，使用占位图", r.ID)
		}
	}
}

// initECS 创建所有系统和常驻实体
func (s *IntroScene) initECS() {
	em := s.entityManager
	cfg := s.config

	s.dragonSystem = systems.NewDragonSystem(em, cfg.Dragon, s.viewport, s.rng)
	s.sequencer = systems.NewIntroSequencerSystem(em, cfg, s.dragonSystem, s.rng)
	seqEntity := s.sequencer.SequenceEntity()

	s.cardDragonSystem = systems.NewCardDragonSystem(em)
	s.spawnerSystem = systems.NewAmbientSpawnerSystem(em, s.rng, s.surfaces, s.viewport, seqEntity, cfg.Ambient)
	s.particleSystem = systems.NewParticleSystem(em)
	s.lifetimeSystem = systems.NewLifetimeSystem(em)
	s.ringSystem = systems.NewEnergyRingSystem(em)
	s.flashSystem = systems.NewFlashEffectSystem(em)
	s.containerSystem = systems.NewContainerSystem(em)
	s.backdropSystem = systems.NewBackdropSystem(em, s.rng, s.viewport, seqEntity)
	s.mainCardSystem = systems.NewMainCardSystem(em, s.viewport)
	s.renderSystem = systems.NewRenderSystem(em)

	if s.cjkFont != "" {
		s.renderSystem.SetGlyphFace(func(size float64) *text.GoTextFace {
			return s.resourceManager.MustFont(s.cjkFont, size)
		})
	}

	// 常驻实体
	entities.NewSpawner(em, config.KindSparkle, cfg.Ambient.Sparkle, components.GateNone, game.SurfaceFX, nil)
	entities.NewSpawner(em, config.KindEmber, cfg.Ambient.Ember, components.GateEmbers, game.SurfaceFX, nil)
	if s.cjkFont != "" && len(cfg.Ambient.KanjiGlyphs) > 0 {
		entities.NewSpawner(em, config.KindKanji, cfg.Ambient.Kanji, components.GateKanji, game.SurfaceFX, cfg.Ambient.KanjiGlyphs)
	}
	entities.NewMatrixRain(em, s.rng, cfg.Ambient, s.viewport)
	entities.NewParticleField(em, s.rng, cfg.Ambient, s.viewport)
	entities.NewMainCardWidgets(em, cfg, s.viewport)

	s.sequencer.OnPhaseChange(s.handlePhaseChange)
	s.sequencer.OnCardShown(s.handleCardShown)
	s.sequencer.OnReset(s.handleReset)
	s.sequencer.OnSkip(s.handleSkip)

	log.Printf("[IntroScene] ECS initialized (%d entities)", em.EntityCount())
}

func (s *IntroScene) handlePhaseChange(from, to components.IntroPhase) {
	log.Printf("[IntroScene] Phase %s -> %s", from, to)
}

// handleSkip 跳过时直接隐藏矩阵雨层（不等淡出）
func (s *IntroScene) handleSkip() {
	s.surfaces.SetHidden(game.SurfaceMatrix, true)
}

// handleCardShown 主卡片出现时创建环绕龙
func (s *IntroScene) handleCardShown() {
	if s.cardDragon != 0 && s.entityManager.Exists(s.cardDragon) {
		return
	}
	cx, cy, rx, ry := s.cardOrbit()
	s.cardDragon = entities.NewCardDragon(s.entityManager, s.config.CardDragon, cx, cy, rx, ry)
}

// handleReset 重播前清理本轮创建的动态实体
func (s *IntroScene) handleReset() {
	em := s.entityManager
	if s.cardDragon != 0 {
		em.DestroyEntity(s.cardDragon)
		s.cardDragon = 0
	}
	for _, id := range ecs.GetEntitiesWith1[*components.AmbientParticleComponent](em) {
		em.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.FlashEffectComponent](em) {
		em.DestroyEntity(id)
	}
	em.RemoveMarkedEntities()

	s.surfaces.SetHidden(game.SurfaceMatrix, false)
	if layer, ok := s.surfaces.Layer(game.SurfaceMatrix); ok {
		layer.Clear()
	}
	s.pointer.Reset()
}

// Update 推进所有系统
func (s *IntroScene) Update(deltaTime float64) {
	s.handleInput()
	s.updateSystems(deltaTime)
}

// updateSystems 按固定顺序推进系统，最后统一删除标记的实体
func (s *IntroScene) updateSystems(deltaTime float64) {
	s.elapsed += deltaTime
	s.sequencer.Update(deltaTime)
	s.dragonSystem.Update(deltaTime)
	s.cardDragonSystem.Update(deltaTime)
	s.spawnerSystem.Update(deltaTime)
	s.particleSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)
	s.ringSystem.Update(deltaTime)
	s.flashSystem.Update(deltaTime)
	s.containerSystem.Update(deltaTime)
	s.backdropSystem.Update(deltaTime)
	s.mainCardSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

// Resize 视口尺寸变化：重建绘制层并通知依赖尺寸的系统
func (s *IntroScene) Resize(width, height int) {
	if !s.surfaces.Resize(width, height) {
		return
	}
	w, h := s.surfaces.Size()
	s.viewport = entities.Viewport{Width: float64(w), Height: float64(h)}

	s.dragonSystem.SetViewport(s.viewport)
	s.spawnerSystem.SetViewport(s.viewport)
	s.backdropSystem.SetViewport(s.viewport)
	s.mainCardSystem.SetViewport(s.viewport)
	s.cardDragonSystem.SetBounds(s.cardOrbit())
}

// Sequencer 阶段序列器（供外部查询状态）
func (s *IntroScene) Sequencer() *systems.IntroSequencerSystem {
	return s.sequencer
}

// cardRect 主卡片矩形（视口居中）
func (s *IntroScene) cardRect() (x, y, w, h float64) {
	w, h = config.CardWidth, config.CardHeight
	return (s.viewport.Width - w) / 2, (s.viewport.Height - h) / 2, w, h
}

// cardOrbit 环绕龙的椭圆：中心为卡片中心，半轴比卡片大 CardOrbitMargin
func (s *IntroScene) cardOrbit() (cx, cy, rx, ry float64) {
	x, y, w, h := s.cardRect()
	cx, cy = x+w/2, y+h/2
	rx = w/2 + config.CardOrbitMargin
	ry = (h/2 + config.CardOrbitMargin) * config.CardOrbitSquash
	return cx, cy, rx, ry
}
