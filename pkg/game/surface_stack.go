package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// 离屏绘制层名称
const (
	SurfaceMatrix     = "matrix"      // 矩阵雨（持久层，靠半透明黑色覆盖形成拖尾）
	SurfaceFX         = "fx"          // 粒子场与连线
	SurfaceDragon     = "dragon"      // 开场龙
	SurfaceCardDragon = "card-dragon" // 主卡片环绕龙
)

// SurfaceStack 管理与视口等大的离屏绘制层
//
// 视口尺寸变化时 Resize 会把新尺寸应用到每一个绘制层；
// 持久层在重建后内容为空（与浏览器 canvas 调整尺寸后清空一致）。
type SurfaceStack struct {
	width, height int
	order         []string
	layers        map[string]*ebiten.Image
	hidden        map[string]bool
}

// NewSurfaceStack 按给定顺序（从底到顶）创建绘制层
func NewSurfaceStack(width, height int, names ...string) *SurfaceStack {
	ss := &SurfaceStack{
		order:  append([]string(nil), names...),
		layers: make(map[string]*ebiten.Image, len(names)),
		hidden: make(map[string]bool),
	}
	ss.Resize(width, height)
	return ss
}

// Size 当前视口尺寸
func (ss *SurfaceStack) Size() (int, int) {
	return ss.width, ss.height
}

// Resize 把新尺寸应用到所有绘制层；尺寸未变化时返回 false
func (ss *SurfaceStack) Resize(width, height int) bool {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == ss.width && height == ss.height && len(ss.layers) == len(ss.order) {
		return false
	}

	for _, name := range ss.order {
		if old, ok := ss.layers[name]; ok {
			old.Deallocate()
		}
		ss.layers[name] = ebiten.NewImage(width, height)
	}
	ss.width, ss.height = width, height
	log.Printf("[SurfaceStack] Resized %d layers to %dx%d", len(ss.order), width, height)
	return true
}

// Layer 返回指定绘制层；不存在时返回 nil, false
func (ss *SurfaceStack) Layer(name string) (*ebiten.Image, bool) {
	img, ok := ss.layers[name]
	return img, ok
}

// HasLayer 是否存在指定绘制层
func (ss *SurfaceStack) HasLayer(name string) bool {
	if ss == nil {
		return false
	}
	_, ok := ss.layers[name]
	return ok
}

// SetHidden 隐藏/显示某一层（跳过开场时隐藏矩阵雨）
func (ss *SurfaceStack) SetHidden(name string, hidden bool) {
	ss.hidden[name] = hidden
}

// IsHidden 某一层是否隐藏
func (ss *SurfaceStack) IsHidden(name string) bool {
	return ss.hidden[name]
}

// Names 绘制层名称（从底到顶）
func (ss *SurfaceStack) Names() []string {
	return append([]string(nil), ss.order...)
}

// Composite 按顺序把未隐藏的层绘制到屏幕上，alpha 为每层的整体透明度（缺省为 1）
func (ss *SurfaceStack) Composite(screen *ebiten.Image, alpha map[string]float64) {
	for _, name := range ss.order {
		a, ok := alpha[name]
		if !ok {
			a = 1
		}
		ss.CompositeLayer(screen, name, a)
	}
}

// CompositeLayer 把单个层绘制到屏幕上；层隐藏、不存在或 alpha <= 0 时跳过
// 场景需要在两层之间插入其他内容（例如卡片）时逐层调用。
func (ss *SurfaceStack) CompositeLayer(screen *ebiten.Image, name string, alpha float64) {
	if ss.hidden[name] || alpha <= 0 {
		return
	}
	img := ss.layers[name]
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(alpha))
	}
	screen.DrawImage(img, op)
}
