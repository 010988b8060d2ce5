package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
	"github.com/decker502/inferno/pkg/game"
	"github.com/decker502/inferno/pkg/kinematics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	bootTextColor    = color.NRGBA{R: 168, G: 85, B: 247, A: 255}
	bootDoneColor    = color.NRGBA{R: 0, G: 255, B: 136, A: 255}
	titleColor       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	subtitleColor    = color.NRGBA{R: 0, G: 212, B: 255, A: 255}
	accentColor      = color.NRGBA{R: 255, G: 45, B: 155, A: 255}
	cardFillColor    = color.NRGBA{R: 10, G: 6, B: 24, A: 200}
	cardBorderColor  = color.NRGBA{R: 124, G: 45, B: 255, A: 200}
	cardTextColor    = color.NRGBA{R: 220, G: 210, B: 255, A: 255}
	progressBgColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 30}
	buttonFillColor  = color.NRGBA{R: 20, G: 10, B: 40, A: 180}
	buttonLabelColor = color.NRGBA{R: 230, G: 230, B: 255, A: 255}
)

// bannerSlideTime 横幅切换时的滑入时长
const bannerSlideTime = 0.4

// Draw 按固定顺序合成：背景 → 矩阵雨 → 粒子 → 阶段容器 → 龙 → 主卡片 → 环绕龙 → 按钮 → 闪光
func (s *IntroScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	seq := s.sequencer.State()
	if seq == nil {
		return
	}

	mainAlpha := s.containerSystem.Alpha(seq.Containers[components.PhaseMain])
	s.mainCardSystem.DrawBackground(screen, mainAlpha)

	if layer, ok := s.surfaces.Layer(game.SurfaceMatrix); ok {
		s.backdropSystem.DrawMatrix(layer, s.matrixFace)
		s.surfaces.CompositeLayer(screen, game.SurfaceMatrix, s.backdropSystem.MatrixAlpha())
	}

	if layer, ok := s.surfaces.Layer(game.SurfaceFX); ok {
		s.backdropSystem.DrawField(layer)
		s.renderSystem.DrawParticles(layer)
		s.ringSystem.Draw(layer)
		s.surfaces.CompositeLayer(screen, game.SurfaceFX, 1)
	}

	s.drawBoot(screen, seq)
	for i := range s.config.Reveals {
		s.drawReveal(screen, seq, i)
	}

	if layer, ok := s.surfaces.Layer(game.SurfaceDragon); ok {
		s.dragonSystem.Draw(layer)
		s.surfaces.CompositeLayer(screen, game.SurfaceDragon, 1)
	}

	s.drawMainCard(screen, seq, mainAlpha)

	if layer, ok := s.surfaces.Layer(game.SurfaceCardDragon); ok {
		s.cardDragonSystem.Draw(layer)
		s.surfaces.CompositeLayer(screen, game.SurfaceCardDragon, mainAlpha)
	}

	s.drawControls(screen)
	s.flashSystem.Draw(screen)
}

// container 阶段容器组件
func (s *IntroScene) container(seq *components.IntroSequenceComponent, phase components.IntroPhase) (*components.ContainerComponent, bool) {
	c, ok := ecs.GetComponent[*components.ContainerComponent](s.entityManager, seq.Containers[phase])
	if !ok || c.Alpha <= 0 {
		return nil, false
	}
	return c, true
}

// enterProgress 容器进入动画进度（缓动后），退场中保持 1
func enterProgress(c *components.ContainerComponent) float64 {
	if c.Visibility != components.VisibilityActive || c.FadeIn <= 0 {
		return 1
	}
	return kinematics.EaseOutCubic(math.Min(1, c.Elapsed/c.FadeIn))
}

// drawBoot 启动终端：逐行显示，最后一行后面是闪烁光标
func (s *IntroScene) drawBoot(screen *ebiten.Image, seq *components.IntroSequenceComponent) {
	c, ok := s.container(seq, components.PhaseBoot)
	if !ok {
		return
	}
	lines := s.config.Boot.Lines
	shown := seq.BootLinesShown
	if shown > len(lines) {
		shown = len(lines)
	}

	for i := 0; i < shown; i++ {
		clr := bootTextColor
		if i == len(lines)-1 {
			clr = bootDoneColor
		}
		drawText(screen, lines[i], s.bootFace, config.BootTextX, config.BootTextTop+float64(i)*config.BootLineHeight, clr, c.Alpha, text.AlignStart)
	}

	if c.Visibility == components.VisibilityActive && math.Mod(s.elapsed, 1) < 0.5 {
		y := config.BootTextTop + float64(shown)*config.BootLineHeight
		drawText(screen, "_", s.bootFace, config.BootTextX, y, bootDoneColor, c.Alpha, text.AlignStart)
	}
}

// drawReveal 角色揭示：立绘、角色名、副标题；第一个揭示阶段带进度条
func (s *IntroScene) drawReveal(screen *ebiten.Image, seq *components.IntroSequenceComponent, index int) {
	phase := components.PhaseReveal1 + components.IntroPhase(index)
	c, ok := s.container(seq, phase)
	if !ok {
		return
	}
	reveal := s.config.Reveals[index]
	cx, cy := s.viewport.Width/2, s.viewport.Height/2
	slide := (1 - enterProgress(c)) * 40
	alpha := c.Alpha

	// 立绘
	pw, ph := float64(config.RevealPortraitWidth), float64(config.RevealPortraitHeight)
	px, py := cx-pw-40-slide, cy-ph/2
	if p, ok := s.portraits.Get(reveal.ID); ok {
		if p.Image == nil || p.Image.Bounds().Empty() {
			s.portraits.HandleError(reveal.ID)
		}
		if img := p.Image; img != nil && !img.Bounds().Empty() {
			b := img.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(pw/float64(b.Dx()), ph/float64(b.Dy()))
			op.GeoM.Translate(px, py)
			op.ColorScale.ScaleAlpha(float32(alpha))
			screen.DrawImage(img, op)
		}
	}
	vector.StrokeRect(screen, float32(px), float32(py), float32(pw), float32(ph), 2, withAlpha(accentColor, alpha), true)

	// 文字
	tx := cx + slide
	drawText(screen, reveal.Title, s.titleFace, tx, cy-60, titleColor, alpha, text.AlignStart)
	drawText(screen, reveal.Subtitle, s.subtitleFace, tx, cy+10, subtitleColor, alpha, text.AlignStart)
	vector.StrokeLine(screen, float32(tx), float32(cy+48), float32(tx+260), float32(cy+48), 2, withAlpha(accentColor, alpha), true)

	if reveal.ProgressBar != nil {
		s.drawProgressBar(screen, seq.Progress, alpha)
	}
}

// drawProgressBar 加载进度条（0-100）
func (s *IntroScene) drawProgressBar(screen *ebiten.Image, progress, alpha float64) {
	w, h := config.ProgressBarWidth, config.ProgressBarHeight
	x := (s.viewport.Width - w) / 2
	y := s.viewport.Height - 110

	p := math.Max(0, math.Min(100, progress)) / 100
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), withAlpha(progressBgColor, alpha), false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w*p), float32(h), withAlpha(accentColor, alpha), false)

	label := fmt.Sprintf("LOADING %3d%%", int(math.Floor(progress)))
	drawText(screen, label, s.buttonFace, x+w/2, y+h+12, cardTextColor, alpha, text.AlignCenter)
}

// drawMainCard 主卡片：时钟、日期、错开出现的正文和横幅，按视差倾斜偏移
func (s *IntroScene) drawMainCard(screen *ebiten.Image, seq *components.IntroSequenceComponent, alpha float64) {
	if alpha <= 0 || !seq.CardVisible {
		return
	}
	_, parallax, clock, banner := s.mainCardSystem.Widgets()

	x, y, w, h := s.cardRect()
	if parallax != nil {
		x += parallax.TiltX * 2 * config.ParallaxCardShift
		y += parallax.TiltY * 2 * config.ParallaxCardShift
	}

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), withAlpha(cardFillColor, alpha), false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1.5, withAlpha(cardBorderColor, alpha), true)

	drawText(screen, s.config.Title, s.cardFace, x+20, y+16, accentColor, alpha, text.AlignStart)

	if clock != nil && clock.Hours != "" {
		colon := ":"
		if math.Mod(s.elapsed, 1) >= 0.5 {
			colon = " "
		}
		drawText(screen, clock.Hours+colon+clock.Minutes, s.clockFace, x+w/2, y+40, titleColor, alpha, text.AlignCenter)
		drawText(screen, clock.Date, s.cardFace, x+w/2, y+118, subtitleColor, alpha, text.AlignCenter)
	}

	lines := s.config.Main.Lines
	for i := 0; i < seq.CardLinesShown && i < len(lines); i++ {
		drawText(screen, lines[i], s.cardFace, x+20, y+150+float64(i)*22, cardTextColor, alpha, text.AlignStart)
	}

	if banner != nil && len(banner.Slides) > 0 {
		t := 1.0
		if bannerSlideTime > 0 {
			t = kinematics.EaseOutCubic(math.Min(1, banner.Elapsed/bannerSlideTime))
		}
		bx := x + w/2 + (1-t)*30
		drawText(screen, banner.Slides[banner.Current], s.cardFace, bx, y+h-30, accentColor, alpha*t, text.AlignCenter)
	}
}

// drawControls 右上角按钮：开场中为“跳过”，主卡片阶段为“重播”
func (s *IntroScene) drawControls(screen *ebiten.Image) {
	w, _ := s.surfaces.Size()
	x, y, bw, bh := config.SkipButtonRect(w)
	label := "SKIP"
	if s.inMain() {
		label = "REPLAY"
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(bw), float32(bh), buttonFillColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(bw), float32(bh), 1, cardBorderColor, true)
	drawText(screen, label, s.buttonFace, x+bw/2, y+bh/2-8, buttonLabelColor, 1, text.AlignCenter)
}

// drawText 绘制单行文字；alpha <= 0 时跳过
func drawText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.NRGBA, alpha float64, align text.Align) {
	if face == nil || str == "" || alpha <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.PrimaryAlign = align
	text.Draw(screen, str, face, op)
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	a = math.Max(0, math.Min(1, a))
	c.A = uint8(float64(c.A) * a)
	return c
}
