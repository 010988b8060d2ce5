package main

import (
	"math/rand"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
)

var (
	styleBoot     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(168, 85, 247))
	styleBootDone = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 255, 136)).Bold(true)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleSubtitle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 212, 255))
	styleAccent   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 45, 155))
	styleDim      = tcell.StyleDefault.Foreground(tcell.NewRGBColor(110, 90, 160))
	styleSpark    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 200, 120))
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (t *ttyIntro) draw() {
	t.screen.Clear()

	seq := t.sequencer.State()
	if seq.MatrixActive && !seq.MatrixHidden {
		t.rain.draw(t.screen)
	}

	switch phase := seq.Phase; {
	case phase == components.PhaseBoot:
		t.drawBoot(seq)
	case phase == components.PhaseDragonFlight:
		t.drawDragon()
	case phase == components.PhaseMain:
		t.drawMain(seq)
	default:
		if i, ok := phase.RevealIndex(); ok && i < len(t.config.Reveals) {
			t.drawReveal(seq, t.config.Reveals[i])
		}
	}

	if t.flashSystem.Strength() > 0.3 {
		t.fill(tcell.StyleDefault.Background(tcell.ColorWhite))
	}

	help := "space/esc skip  r replay  q quit"
	if seq.Phase == components.PhaseMain {
		help = "space/r replay  q quit"
	}
	drawString(t.screen, 1, t.rows-1, help, styleHelp)
	t.screen.Show()
}

func (t *ttyIntro) drawBoot(seq *components.IntroSequenceComponent) {
	lines := t.config.Boot.Lines
	top := (t.rows - len(lines)) / 2
	for i := 0; i < seq.BootLinesShown && i < len(lines); i++ {
		style := styleBoot
		if i == len(lines)-1 {
			style = styleBootDone
		}
		drawString(t.screen, 4, top+i, lines[i], style)
	}
}

func (t *ttyIntro) drawReveal(seq *components.IntroSequenceComponent, r config.RevealConfig) {
	cy := t.rows / 2
	drawCentered(t.screen, t.cols, cy-2, r.Title, styleTitle)
	drawCentered(t.screen, t.cols, cy, r.Subtitle, styleSubtitle)
	if r.ProgressBar == nil {
		return
	}
	width := t.cols / 2
	if width < 10 {
		width = 10
	}
	filled := int(seq.Progress / 100 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	drawCentered(t.screen, t.cols, cy+3, bar, styleAccent)
}

// drawDragon 链条节点画在对应的字符格里，颜色沿身体渐变
func (t *ttyIntro) drawDragon() {
	em := t.entityManager
	id := t.dragonSystem.DragonEntity()
	d, ok := ecs.GetComponent[*components.DragonComponent](em, id)
	if !ok {
		return
	}

	for _, pid := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.AmbientParticleComponent](em) {
		p, _ := ecs.GetComponent[*components.AmbientParticleComponent](em, pid)
		if p.Owner != id || p.Life < 0.3 {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, pid)
		x, y := cellOf(pos.X, pos.Y)
		t.screen.SetContent(x, y, '·', nil, styleSpark)
	}

	ramp := make([]colorful.Color, 0, len(d.BodyColors))
	for _, c := range d.BodyColors {
		cc, _ := colorful.MakeColor(c)
		ramp = append(ramp, cc)
	}

	n := len(d.Chain.Segments)
	for i := n - 1; i >= 0; i-- {
		seg := d.Chain.Segments[i]
		x, y := cellOf(seg.X, seg.Y)
		r := 'o'
		if i == 0 {
			r = '@'
		} else if i > n*2/3 {
			r = '.'
		}
		t.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(rampColor(ramp, float64(i)/float64(max(n-1, 1)))))
	}
}

func (t *ttyIntro) drawMain(seq *components.IntroSequenceComponent) {
	if !seq.CardVisible {
		return
	}
	w, h := 44, 10+len(t.config.Main.Lines)
	x0, y0 := (t.cols-w)/2, (t.rows-h)/2
	drawBox(t.screen, x0, y0, w, h, styleDim)

	drawString(t.screen, x0+2, y0+1, t.config.Title, styleAccent)
	now := time.Now()
	drawCentered(t.screen, t.cols, y0+3, now.Format("15:04"), styleTitle)
	drawCentered(t.screen, t.cols, y0+4, strings.ToUpper(now.Format("Mon · Jan 2")), styleSubtitle)

	for i := 0; i < seq.CardLinesShown && i < len(t.config.Main.Lines); i++ {
		drawString(t.screen, x0+2, y0+6+i, t.config.Main.Lines[i], styleBoot)
	}
	if banners := t.config.Main.Banners; len(banners) > 0 && t.config.Main.BannerInterval > 0 {
		i := int(now.Unix()/int64(t.config.Main.BannerInterval)) % len(banners)
		drawCentered(t.screen, t.cols, y0+h-2, banners[i], styleAccent)
	}
}

func (t *ttyIntro) fill(style tcell.Style) {
	for y := 0; y < t.rows; y++ {
		for x := 0; x < t.cols; x++ {
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// cellOf 像素坐标换算成字符格
func cellOf(x, y float64) (int, int) {
	return int(x / cellWidth), int(y / cellHeight)
}

// rampColor 在颜色表上按 t∈[0,1] 做 Lab 插值
func rampColor(ramp []colorful.Color, t float64) tcell.Color {
	switch len(ramp) {
	case 0:
		return tcell.ColorWhite
	case 1:
		r, g, b := ramp[0].RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pos := t * float64(len(ramp)-1)
	i := int(pos)
	if i >= len(ramp)-1 {
		i = len(ramp) - 2
	}
	c := ramp[i].BlendLab(ramp[i+1], pos-float64(i)).Clamped()
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawCentered(s tcell.Screen, cols, y int, str string, style tcell.Style) {
	drawString(s, (cols-len([]rune(str)))/2, y, str, style)
}

func drawBox(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for i := 1; i < w-1; i++ {
		s.SetContent(x+i, y, '─', nil, style)
		s.SetContent(x+i, y+h-1, '─', nil, style)
	}
	for j := 1; j < h-1; j++ {
		s.SetContent(x, y+j, '│', nil, style)
		s.SetContent(x+w-1, y+j, '│', nil, style)
	}
	s.SetContent(x, y, '┌', nil, style)
	s.SetContent(x+w-1, y, '┐', nil, style)
	s.SetContent(x, y+h-1, '└', nil, style)
	s.SetContent(x+w-1, y+h-1, '┘', nil, style)
}

// matrixColumns 启动阶段的字符雨（每列一个下落位置）
type matrixColumns struct {
	drops []float64
	rows  int
	rng   *rand.Rand
}

const matrixCharset = "0123456789INFERNO<>/\\|=+*#"

func newMatrixColumns(cols, rows int, rng *rand.Rand) *matrixColumns {
	m := &matrixColumns{rng: rng}
	m.resize(cols, rows)
	return m
}

func (m *matrixColumns) resize(cols, rows int) {
	m.rows = rows
	if cols < 1 {
		cols = 1
	}
	drops := make([]float64, cols)
	copy(drops, m.drops)
	for i := len(m.drops); i < cols; i++ {
		drops[i] = -m.rng.Float64() * float64(rows)
	}
	m.drops = drops
}

func (m *matrixColumns) reset() {
	for i := range m.drops {
		m.drops[i] = -m.rng.Float64() * float64(m.rows)
	}
}

func (m *matrixColumns) step() {
	for i := range m.drops {
		m.drops[i] += 0.25 + m.rng.Float64()*0.25
		if m.drops[i] > float64(m.rows) && m.rng.Float64() > 0.975 {
			m.drops[i] = 0
		}
	}
}

func (m *matrixColumns) draw(s tcell.Screen) {
	charset := []rune(matrixCharset)
	for x, d := range m.drops {
		head := int(d)
		for k := 0; k < 6; k++ {
			y := head - k
			if y < 0 || y >= m.rows {
				continue
			}
			style := styleDim
			if k == 0 {
				style = styleBootDone
			}
			s.SetContent(x, y, charset[m.rng.Intn(len(charset))], nil, style)
		}
	}
}
