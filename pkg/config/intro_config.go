package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/decker502/inferno/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultIntroConfigPath 嵌入资源中的开场配置路径
const DefaultIntroConfigPath = "data/intro.yaml"

// IntroConfig 开场动画配置
// 所有时间单位为秒，所有“每帧”参数按 60 TPS 计算。
type IntroConfig struct {
	Title      string           `yaml:"title"`      // 窗口/卡片标题
	Boot       BootConfig       `yaml:"boot"`       // 启动终端阶段
	Reveals    []RevealConfig   `yaml:"reveals"`    // 4 个角色揭示阶段（顺序即播放顺序）
	Dragon     DragonConfig     `yaml:"dragon"`     // 开场龙
	CardDragon CardDragonConfig `yaml:"cardDragon"` // 主卡片环绕龙
	Main       MainConfig       `yaml:"main"`       // 主卡片
	Flash      FlashConfig      `yaml:"flash"`      // 转场闪光
	Ambient    AmbientConfig    `yaml:"ambient"`    // 氛围特效
	Fonts      FontsConfig      `yaml:"fonts"`      // 字体
}

// BootConfig 启动终端阶段配置
type BootConfig struct {
	Lines        []string `yaml:"lines"`        // 逐行显示的文本
	LineInterval float64  `yaml:"lineInterval"` // 每行间隔
	SettleDelay  float64  `yaml:"settleDelay"`  // 全部显示后到切换的等待
	ExitDelay    float64  `yaml:"exitDelay"`    // 退场动画时长
}

// RevealConfig 角色揭示阶段配置
type RevealConfig struct {
	ID        string   `yaml:"id"`        // 角色标识，如 "cid"
	Title     string   `yaml:"title"`     // 角色名
	Subtitle  string   `yaml:"subtitle"`  // 副标题
	Portraits []string `yaml:"portraits"` // 立绘候选路径（按顺序回退）
	Hold      float64  `yaml:"hold"`      // 停留时长（有进度条时忽略）
	ExitDelay float64  `yaml:"exitDelay"` // 退场动画时长
	Flash     bool     `yaml:"flash"`     // 退场时是否闪光

	// ProgressBar 非空时，本阶段由进度条驱动而不是固定停留时长
	ProgressBar *ProgressBarConfig `yaml:"progressBar"`
}

// ProgressBarConfig 加载进度条
// 每 Interval 秒增加 MinStep + rand*Jitter 个百分点，满 100 后等待 FinishDelay
type ProgressBarConfig struct {
	Interval    float64 `yaml:"interval"`
	MinStep     float64 `yaml:"minStep"`
	Jitter      float64 `yaml:"jitter"`
	FinishDelay float64 `yaml:"finishDelay"`
}

// DragonConfig 开场龙（链条 + 轨道）
type DragonConfig struct {
	Segments   int     `yaml:"segments"`   // 链节数量
	BaseLength float64 `yaml:"baseLength"` // 第 0 节的最大间距
	Taper      float64 `yaml:"taper"`      // 每节递减量
	MinLength  float64 `yaml:"minLength"`  // 最小间距
	FollowRate float64 `yaml:"followRate"` // 头部插值比例

	OrbitRadius  float64 `yaml:"orbitRadius"`
	AngularSpeed float64 `yaml:"angularSpeed"` // 每帧弧度
	StartAngle   float64 `yaml:"startAngle"`
	EntryXRatio  float64 `yaml:"entryXRatio"` // 入场点（相对视口宽度）
	EntryYRatio  float64 `yaml:"entryYRatio"` // 入场点（相对视口高度）

	FlyInStep       float64 `yaml:"flyInStep"`
	FlyInFollowMin  float64 `yaml:"flyInFollowMin"`
	FlyInFollowGain float64 `yaml:"flyInFollowGain"`
	CircleTurns     float64 `yaml:"circleTurns"`
	ConvergeStep    float64 `yaml:"convergeStep"`
	ShrinkFraction  float64 `yaml:"shrinkFraction"`
	SpeedBoost      float64 `yaml:"speedBoost"`
	FadeFraction    float64 `yaml:"fadeFraction"`

	// ExitDelay 完成信号后到主卡片出现的退场时长
	ExitDelay float64 `yaml:"exitDelay"`
	// BodyColors 身体颜色渐变（头 → 尾）
	BodyColors []string `yaml:"bodyColors"`
}

// CardDragonConfig 主卡片环绕龙
type CardDragonConfig struct {
	Segments     int     `yaml:"segments"`
	BaseLength   float64 `yaml:"baseLength"`
	Taper        float64 `yaml:"taper"`
	MinLength    float64 `yaml:"minLength"`
	FollowRate   float64 `yaml:"followRate"`
	AngularSpeed float64 `yaml:"angularSpeed"` // 每帧弧度
	FadeInRate   float64 `yaml:"fadeInRate"`   // 每秒增加的透明度
	MaxAlpha     float64 `yaml:"maxAlpha"`
}

// MainConfig 主卡片
type MainConfig struct {
	RevealDelay    float64  `yaml:"revealDelay"`    // 激活后到卡片出现的延迟
	LineDelay      float64  `yaml:"lineDelay"`      // 第一行出现延迟
	LineStagger    float64  `yaml:"lineStagger"`    // 行间错开时长
	Lines          []string `yaml:"lines"`          // 卡片正文
	Banners        []string `yaml:"banners"`        // 横幅轮播文字
	BannerInterval float64  `yaml:"bannerInterval"` // 横幅切换间隔
}

// FlashConfig 转场闪光
type FlashConfig struct {
	Duration  float64 `yaml:"duration"`
	Intensity float64 `yaml:"intensity"`
}

// AmbientConfig 氛围特效
type AmbientConfig struct {
	Sparkle SpawnerConfig `yaml:"sparkle"`
	Ember   SpawnerConfig `yaml:"ember"`
	Kanji   SpawnerConfig `yaml:"kanji"`

	// KanjiGlyphs 漂浮汉字候选字符（需要 CJK 字体）
	KanjiGlyphs []string `yaml:"kanjiGlyphs"`

	TrailSpacing float64 `yaml:"trailSpacing"` // 指针轨迹最小间隔

	RippleRings    int     `yaml:"rippleRings"`
	RippleDuration float64 `yaml:"rippleDuration"` // 第一圈时长
	RippleStagger  float64 `yaml:"rippleStagger"`  // 每圈增加的时长
	RippleRadius   float64 `yaml:"rippleRadius"`

	ShockwaveRadius   float64 `yaml:"shockwaveRadius"`
	ShockwaveSpeed    float64 `yaml:"shockwaveSpeed"`    // 初速度（像素/秒）
	ShockwaveFriction float64 `yaml:"shockwaveFriction"` // 每秒速度保留比例

	FieldCount        int     `yaml:"fieldCount"`
	FieldLinkDistance float64 `yaml:"fieldLinkDistance"`
	FieldSpeed        float64 `yaml:"fieldSpeed"` // 像素/秒

	MatrixColumnWidth float64 `yaml:"matrixColumnWidth"`
	MatrixFade        float64 `yaml:"matrixFade"`
	MatrixCharset     string  `yaml:"matrixCharset"`
	MatrixFadeOut     float64 `yaml:"matrixFadeOut"`

	HueInterval  float64 `yaml:"hueInterval"`
	ParallaxLerp float64 `yaml:"parallaxLerp"`
}

// SpawnerConfig 单个定时生成器
type SpawnerConfig struct {
	Interval float64 `yaml:"interval"` // 0 表示每帧
	BurstMin int     `yaml:"burstMin"`
	BurstMax int     `yaml:"burstMax"`
}

// FontsConfig 字体配置
// 取值可以是内置字体标识（builtin:gomono / builtin:goregular）或字体文件路径。
// CJK 为空时不生成漂浮汉字。
type FontsConfig struct {
	Mono    string `yaml:"mono"`
	Regular string `yaml:"regular"`
	CJK     string `yaml:"cjk"`
}

// DefaultIntroConfig 返回内置默认配置
func DefaultIntroConfig() *IntroConfig {
	return &IntroConfig{
		Title: "INFERNO",
		Boot: BootConfig{
			Lines: []string{
				"> INFERNO BIOS v4.0.4",
				"> mounting /dev/shadow ......... ok",
				"> loading garden.sys ........... ok",
				"> syncing dream channel ........ ok",
				"> calibrating sword arts ....... ok",
				"> binding star contract ........ ok",
				"> waking the dragon ............ ok",
				"> ALL SYSTEMS ONLINE",
			},
			LineInterval: 0.18,
			SettleDelay:  0.5,
			ExitDelay:    0.6,
		},
		Reveals: []RevealConfig{
			{
				ID: "cid", Title: "CID KAGENOU", Subtitle: "I AM ATOMIC",
				Portraits: []string{"data/portraits/cid.png", "data/portraits/cid.jpg", "data/portraits/placeholder.png"},
				ExitDelay: 0.7, Flash: true,
				ProgressBar: &ProgressBarConfig{Interval: 0.05, MinStep: 1.2, Jitter: 3.5, FinishDelay: 0.5},
			},
			{
				ID: "kirito", Title: "KIRITO", Subtitle: "THE BLACK SWORDSMAN",
				Portraits: []string{"data/portraits/kirito.png", "data/portraits/kirito.jpg", "data/portraits/placeholder.png"},
				Hold:      2.6, ExitDelay: 0.7, Flash: true,
			},
			{
				ID: "sakuta", Title: "SAKUTA AZUSAGAWA", Subtitle: "RASCAL DOES NOT DREAM",
				Portraits: []string{"data/portraits/sakuta.png", "data/portraits/sakuta.jpg", "data/portraits/placeholder.png"},
				Hold:      3.0, ExitDelay: 0.8, Flash: true,
			},
			{
				ID: "nasa", Title: "NASA YUZAKI", Subtitle: "FLY ME TO THE MOON",
				Portraits: []string{"data/portraits/nasa.png", "data/portraits/nasa.jpg", "data/portraits/placeholder.png"},
				Hold:      3.0, ExitDelay: 0.8, Flash: true,
			},
		},
		Dragon: DragonConfig{
			Segments: 42, BaseLength: 16, Taper: 0.2, MinLength: 1, FollowRate: 0.22,
			OrbitRadius: 280, AngularSpeed: 0.028, StartAngle: math.Pi,
			EntryXRatio: 1.4, EntryYRatio: 0.1,
			FlyInStep: 0.025, FlyInFollowMin: 0.04, FlyInFollowGain: 0.06,
			CircleTurns: 2, ConvergeStep: 0.018, ShrinkFraction: 0.75, SpeedBoost: 2, FadeFraction: 0.9,
			ExitDelay:  0.8,
			BodyColors: []string{"#7c2dff", "#a855f7", "#ff2d9b"},
		},
		CardDragon: CardDragonConfig{
			Segments: 36, BaseLength: 14, Taper: 0.18, MinLength: 1, FollowRate: 0.25,
			AngularSpeed: 0.018, FadeInRate: 0.66, MaxAlpha: 0.75,
		},
		Main: MainConfig{
			RevealDelay: 0.1,
			LineDelay:   0.05,
			LineStagger: 0.08,
			Lines: []string{
				"shadow garden // eminence in shadow",
				"link start // aincrad floor 75",
				"bunny girl senpai // seishun buta yarou",
				"tonikawa // over the moon for you",
			},
			Banners:        []string{"// shadow garden //", "// cid kagenou //", "// sakuta azusagawa //", "// tonikawa //"},
			BannerInterval: 4,
		},
		Flash: FlashConfig{Duration: 0.5, Intensity: 0.85},
		Ambient: AmbientConfig{
			Sparkle: SpawnerConfig{Interval: 0.25, BurstMin: 1, BurstMax: 1},
			Ember:   SpawnerConfig{Interval: 0, BurstMin: 1, BurstMax: 2},
			Kanji:   SpawnerConfig{Interval: 2, BurstMin: 1, BurstMax: 1},

			KanjiGlyphs: []string{"炎", "龍", "影", "夢", "魂", "光", "闇", "刃"},

			TrailSpacing: 0.03,

			RippleRings:    3,
			RippleDuration: 0.6,
			RippleStagger:  0.15,
			RippleRadius:   100,

			ShockwaveRadius:   320,
			ShockwaveSpeed:    900,
			ShockwaveFriction: 0.25,

			FieldCount:        150,
			FieldLinkDistance: 120,
			FieldSpeed:        7.5,

			MatrixColumnWidth: 14,
			MatrixFade:        0.06,
			MatrixCharset:     "0123456789INFERNO<>/\\|=+*#",
			MatrixFadeOut:     0.8,

			HueInterval:  0.05,
			ParallaxLerp: 0.055,
		},
		Fonts: FontsConfig{
			Mono:    "builtin:gomono",
			Regular: "builtin:goregular",
		},
	}
}

// LoadIntroConfig 加载开场配置
// path 以 "data/" 开头且嵌入资源中存在时从嵌入资源读取，否则从磁盘读取。
// 文件只需覆盖想修改的字段，其余字段保持默认值。
func LoadIntroConfig(path string) (*IntroConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intro config file %s: %w", path, err)
	}
	return ParseIntroConfig(data, path)
}

// ParseIntroConfig 解析 YAML 数据（source 仅用于错误信息）
func ParseIntroConfig(data []byte, source string) (*IntroConfig, error) {
	cfg := DefaultIntroConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse intro config YAML from %s: %w", source, err)
	}

	applyIntroDefaults(cfg)

	if err := validateIntroConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid intro config in %s: %w", source, err)
	}
	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	if strings.HasPrefix(path, "data/") && embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// applyIntroDefaults 为缺失（零值）的可选字段填充默认值
func applyIntroDefaults(cfg *IntroConfig) {
	def := DefaultIntroConfig()

	if cfg.Title == "" {
		cfg.Title = def.Title
	}
	if cfg.Boot.LineInterval == 0 {
		cfg.Boot.LineInterval = def.Boot.LineInterval
	}

	for i := range cfg.Reveals {
		r := &cfg.Reveals[i]
		if r.ID == "" {
			r.ID = fmt.Sprintf("reveal-%d", i+1)
		}
		if r.ProgressBar != nil {
			if r.ProgressBar.Interval == 0 {
				r.ProgressBar.Interval = 0.05
			}
			if r.ProgressBar.MinStep == 0 && r.ProgressBar.Jitter == 0 {
				r.ProgressBar.MinStep = 1.2
				r.ProgressBar.Jitter = 3.5
			}
		}
	}

	if cfg.Dragon.MinLength == 0 {
		cfg.Dragon.MinLength = def.Dragon.MinLength
	}
	if len(cfg.Dragon.BodyColors) == 0 {
		cfg.Dragon.BodyColors = def.Dragon.BodyColors
	}
	if cfg.CardDragon.MinLength == 0 {
		cfg.CardDragon.MinLength = def.CardDragon.MinLength
	}

	if cfg.Flash.Duration == 0 {
		cfg.Flash.Duration = def.Flash.Duration
	}
	if cfg.Ambient.MatrixColumnWidth == 0 {
		cfg.Ambient.MatrixColumnWidth = def.Ambient.MatrixColumnWidth
	}
	if cfg.Ambient.MatrixCharset == "" {
		cfg.Ambient.MatrixCharset = def.Ambient.MatrixCharset
	}
	if cfg.Ambient.HueInterval == 0 {
		cfg.Ambient.HueInterval = def.Ambient.HueInterval
	}

	if cfg.Fonts.Mono == "" {
		cfg.Fonts.Mono = def.Fonts.Mono
	}
	if cfg.Fonts.Regular == "" {
		cfg.Fonts.Regular = def.Fonts.Regular
	}
}

// validateIntroConfig 验证配置
func validateIntroConfig(cfg *IntroConfig) error {
	if len(cfg.Boot.Lines) == 0 {
		return fmt.Errorf("boot.lines cannot be empty")
	}
	if cfg.Boot.LineInterval <= 0 {
		return fmt.Errorf("boot.lineInterval must be positive, got %.3f", cfg.Boot.LineInterval)
	}
	if cfg.Boot.SettleDelay < 0 || cfg.Boot.ExitDelay < 0 {
		return fmt.Errorf("boot delays cannot be negative")
	}

	if len(cfg.Reveals) != RevealCount {
		return fmt.Errorf("reveals must have exactly %d entries, got %d", RevealCount, len(cfg.Reveals))
	}
	for i, r := range cfg.Reveals {
		if r.ProgressBar == nil && r.Hold <= 0 {
			return fmt.Errorf("reveals[%d] (%s): hold must be positive when no progress bar is configured", i, r.ID)
		}
		if r.ExitDelay < 0 {
			return fmt.Errorf("reveals[%d] (%s): exitDelay cannot be negative", i, r.ID)
		}
		if r.ProgressBar != nil && r.ProgressBar.MinStep <= 0 {
			return fmt.Errorf("reveals[%d] (%s): progressBar.minStep must be positive", i, r.ID)
		}
	}

	d := cfg.Dragon
	if d.Segments < 1 {
		return fmt.Errorf("dragon.segments must be at least 1, got %d", d.Segments)
	}
	if d.FollowRate <= 0 || d.FollowRate > 1 {
		return fmt.Errorf("dragon.followRate must be in (0, 1], got %.3f", d.FollowRate)
	}
	if d.OrbitRadius <= 0 {
		return fmt.Errorf("dragon.orbitRadius must be positive, got %.1f", d.OrbitRadius)
	}
	if d.ShrinkFraction < 0 || d.ShrinkFraction > 1 {
		return fmt.Errorf("dragon.shrinkFraction must be in [0, 1], got %.3f", d.ShrinkFraction)
	}
	if d.FadeFraction < 0 || d.FadeFraction > 1 {
		return fmt.Errorf("dragon.fadeFraction must be in [0, 1], got %.3f", d.FadeFraction)
	}

	if cfg.CardDragon.Segments < 1 {
		return fmt.Errorf("cardDragon.segments must be at least 1, got %d", cfg.CardDragon.Segments)
	}
	if cfg.CardDragon.MaxAlpha < 0 || cfg.CardDragon.MaxAlpha > 1 {
		return fmt.Errorf("cardDragon.maxAlpha must be in [0, 1], got %.3f", cfg.CardDragon.MaxAlpha)
	}

	for name, sp := range map[string]SpawnerConfig{
		"sparkle": cfg.Ambient.Sparkle,
		"ember":   cfg.Ambient.Ember,
		"kanji":   cfg.Ambient.Kanji,
	} {
		if sp.Interval < 0 {
			return fmt.Errorf("ambient.%s.interval cannot be negative", name)
		}
		if sp.BurstMin < 0 || sp.BurstMax < sp.BurstMin {
			return fmt.Errorf("ambient.%s: invalid burst range [%d, %d]", name, sp.BurstMin, sp.BurstMax)
		}
	}

	for _, hex := range cfg.Dragon.BodyColors {
		if _, err := ParseColor(hex); err != nil {
			return fmt.Errorf("dragon.bodyColors: %w", err)
		}
	}
	return nil
}

// RevealCount 角色揭示阶段数量
const RevealCount = 4
