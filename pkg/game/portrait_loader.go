package game

import (
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImageSource 按路径加载图片（ResourceManager 实现）
type ImageSource interface {
	LoadImage(path string) (*ebiten.Image, error)
}

// Portrait 角色立绘及其候选来源
type Portrait struct {
	Name       string
	Candidates []string

	// Image 当前显示的图片；全部失败时为占位渐变
	Image *ebiten.Image
	// Source 成功加载的候选路径，占位时为空
	Source string
	// Placeholder 是否已经替换为占位渐变
	Placeholder bool

	index            int
	placeholderCount int
}

// CurrentCandidate 当前尝试的候选索引
func (p *Portrait) CurrentCandidate() int {
	return p.index
}

// PlaceholderCount 占位元素数量（最多为 1）
func (p *Portrait) PlaceholderCount() int {
	return p.placeholderCount
}

// PortraitLoader 有界的图片回退链
//
// 依次尝试候选来源；某个来源失败就换下一个，全部失败后替换为一个静态渐变占位图。
// 不做重试，也不会让失败变成致命错误。
type PortraitLoader struct {
	source      ImageSource
	placeholder func(w, h int) *ebiten.Image
	portraits   map[string]*Portrait

	// PlaceholderWidth / PlaceholderHeight 占位图尺寸
	PlaceholderWidth, PlaceholderHeight int
}

// NewPortraitLoader 创建回退加载器；placeholder 为 nil 时使用默认渐变
func NewPortraitLoader(source ImageSource, placeholder func(w, h int) *ebiten.Image) *PortraitLoader {
	if placeholder == nil {
		placeholder = NewGradientPlaceholder
	}
	return &PortraitLoader{
		source:            source,
		placeholder:       placeholder,
		portraits:         make(map[string]*Portrait),
		PlaceholderWidth:  240,
		PlaceholderHeight: 320,
	}
}

// Load 加载立绘（同名立绘只解析一次）
func (pl *PortraitLoader) Load(name string, candidates []string) *Portrait {
	if p, ok := pl.portraits[name]; ok {
		return p
	}

	p := &Portrait{
		Name:       name,
		Candidates: append([]string(nil), candidates...),
	}
	pl.portraits[name] = p
	pl.resolve(p)
	return p
}

// Get 获取已加载的立绘
func (pl *PortraitLoader) Get(name string) (*Portrait, bool) {
	p, ok := pl.portraits[name]
	return p, ok
}

// HandleError 报告当前显示的图片失败（例如渲染时发现图片不可用）
// 切换到下一个候选；已经是占位图时重复报告不会产生新的占位元素。
func (pl *PortraitLoader) HandleError(name string) {
	p, ok := pl.portraits[name]
	if !ok || p.Placeholder {
		return
	}
	p.Image = nil
	p.Source = ""
	if !pl.nextCandidate(p) {
		return
	}
	pl.resolve(p)
}

// resolve 从当前候选开始向后尝试，直到成功或使用占位图
func (pl *PortraitLoader) resolve(p *Portrait) {
	for !p.Placeholder {
		if p.index >= len(p.Candidates) {
			pl.usePlaceholder(p)
			return
		}

		path := p.Candidates[p.index]
		if pl.source != nil {
			img, err := pl.source.LoadImage(path)
			if err == nil && img != nil {
				p.Image = img
				p.Source = path
				log.Printf("[PortraitLoader] %s: loaded candidate %d (%s)", p.Name, p.index, path)
				return
			}
			log.Printf("[PortraitLoader] %s: candidate %d failed: %v", p.Name, p.index, err)
		}

		if !pl.nextCandidate(p) {
			return
		}
	}
}

// nextCandidate 前进到下一个候选；没有更多候选时换成占位图并返回 false
func (pl *PortraitLoader) nextCandidate(p *Portrait) bool {
	if p.index < len(p.Candidates)-1 {
		p.index++
		return true
	}
	pl.usePlaceholder(p)
	return false
}

func (pl *PortraitLoader) usePlaceholder(p *Portrait) {
	if p.Placeholder {
		return
	}
	p.Placeholder = true
	p.placeholderCount++
	p.Image = pl.placeholder(pl.PlaceholderWidth, pl.PlaceholderHeight)
	log.Printf("[PortraitLoader] %s: all %d candidates failed, using gradient placeholder", p.Name, len(p.Candidates))
}

// NewGradientPlaceholder 生成 135° 线性渐变占位图（品红 → 青绿，30% 不透明）
func NewGradientPlaceholder(w, h int) *ebiten.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	from := color.NRGBA{R: 255, G: 0, B: 128, A: 77}
	to := color.NRGBA{R: 0, G: 255, B: 128, A: 77}

	rgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	span := float64(w + h - 2)
	if span <= 0 {
		span = 1
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := float64(x+y) / span
			rgba.SetNRGBA(x, y, color.NRGBA{
				R: lerpByte(from.R, to.R, t),
				G: lerpByte(from.G, to.G, t),
				B: lerpByte(from.B, to.B, t),
				A: from.A,
			})
		}
	}
	return ebiten.NewImageFromImage(rgba)
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
