package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
	"github.com/decker502/inferno/pkg/entities"
	"github.com/decker502/inferno/pkg/game"
)

// DragonDriver 龙飞行阶段的驱动者（DragonSystem 实现）
//
// Start 启动逐帧循环，轨迹结束时调用一次 onComplete；
// Stop 取消循环，之后不再执行任何一帧，也不会调用 onComplete。
type DragonDriver interface {
	Start(onComplete func())
	Stop()
}

// PhaseChangeFunc 阶段切换回调
type PhaseChangeFunc func(from, to components.IntroPhase)

// IntroSequencerSystem 开场阶段序列器
//
// 状态机只向前推进：boot → reveal-1..4 → dragon-flight → main。
// 每次切换：新阶段的容器立即激活，上一阶段的容器进入退场；
// 退场延迟结束后隐藏上一阶段的容器并执行新阶段的进入动作。
//
// 所有定时任务都注册在私有调度器上，跳过/重播时一次性全部取消。
// 完成回调携带轮次编号，重播后上一轮的回调即使被调用也会被忽略。
type IntroSequencerSystem struct {
	entityManager  *ecs.EntityManager
	config         *config.IntroConfig
	scheduler      *game.Scheduler
	dragon         DragonDriver
	rng            *rand.Rand
	sequenceEntity ecs.EntityID
	started        bool

	onPhaseChange []PhaseChangeFunc
	onCardShown   []func()
	onReset       []func()
	onSkip        []func()
}

// NewIntroSequencerSystem 创建序列器，同时创建序列实体和每个阶段的容器实体
// 创建后处于未启动状态，调用 Start 进入 boot 阶段。
func NewIntroSequencerSystem(em *ecs.EntityManager, cfg *config.IntroConfig, dragon DragonDriver, rng *rand.Rand) *IntroSequencerSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	s := &IntroSequencerSystem{
		entityManager: em,
		config:        cfg,
		scheduler:     game.NewScheduler(),
		dragon:        dragon,
		rng:           rng,
	}

	seq := &components.IntroSequenceComponent{Phase: components.PhaseBoot}
	for p := components.PhaseBoot; p < components.PhaseCount; p++ {
		seq.Containers[p] = entities.NewPhaseContainer(em, p, s.exitDelay(p))
	}

	s.sequenceEntity = em.CreateEntity()
	ecs.AddComponent(em, s.sequenceEntity, seq)

	log.Printf("[IntroSequencer] Created with %d phases", int(components.PhaseCount))
	return s
}

// SetDragonDriver 设置龙飞行阶段的驱动者
func (s *IntroSequencerSystem) SetDragonDriver(d DragonDriver) {
	s.dragon = d
}

// OnPhaseChange 注册阶段切换回调
func (s *IntroSequencerSystem) OnPhaseChange(fn PhaseChangeFunc) {
	s.onPhaseChange = append(s.onPhaseChange, fn)
}

// OnCardShown 注册主卡片出现回调
func (s *IntroSequencerSystem) OnCardShown(fn func()) {
	s.onCardShown = append(s.onCardShown, fn)
}

// OnReset 注册重置回调（重播前调用）
func (s *IntroSequencerSystem) OnReset(fn func()) {
	s.onReset = append(s.onReset, fn)
}

// OnSkip 注册跳过回调
// 龙完成后的退场延迟内阶段已经是 main，跳过不会触发阶段切换回调，只会触发这里。
func (s *IntroSequencerSystem) OnSkip(fn func()) {
	s.onSkip = append(s.onSkip, fn)
}

// SequenceEntity 序列实体ID
func (s *IntroSequencerSystem) SequenceEntity() ecs.EntityID {
	return s.sequenceEntity
}

// State 序列器状态（只读使用）
func (s *IntroSequencerSystem) State() *components.IntroSequenceComponent {
	seq, _ := ecs.GetComponent[*components.IntroSequenceComponent](s.entityManager, s.sequenceEntity)
	return seq
}

// Phase 当前激活的阶段
func (s *IntroSequencerSystem) Phase() components.IntroPhase {
	if seq := s.State(); seq != nil {
		return seq.Phase
	}
	return components.PhaseBoot
}

// PendingTimers 挂起的定时任务数量
func (s *IntroSequencerSystem) PendingTimers() int {
	return s.scheduler.Pending()
}

// Start 进入 boot 阶段；已经启动时不做任何事
func (s *IntroSequencerSystem) Start() {
	seq := s.State()
	if seq == nil || s.started {
		return
	}
	s.started = true

	seq.Phase = components.PhaseBoot
	seq.Visited[components.PhaseBoot] = true
	s.setVisibility(seq, components.PhaseBoot, components.VisibilityActive)
	s.applyGates(seq, components.PhaseBoot)

	log.Printf("[IntroSequencer] Run %d started", seq.Run)
	s.enter(components.PhaseBoot)
}

// Update 推进调度器
func (s *IntroSequencerSystem) Update(dt float64) {
	s.scheduler.Update(dt)
}

// Skip 立即跳到 main 阶段
//
// 取消所有挂起的定时任务，停止龙的逐帧循环，隐藏所有中间阶段的容器。
// 主卡片阶段的进入动作已经执行过时什么都不做。
func (s *IntroSequencerSystem) Skip() {
	seq := s.State()
	if seq == nil || !s.started {
		return
	}
	if seq.Phase == components.PhaseMain && seq.MainEntered {
		return
	}

	cancelled := s.scheduler.CancelAll()
	if s.dragon != nil {
		s.dragon.Stop()
	}

	from := seq.Phase
	for p := components.PhaseBoot; p < components.PhaseMain; p++ {
		s.setVisibility(seq, p, components.VisibilityHidden)
		seq.Visited[p] = true
	}

	seq.Phase = components.PhaseMain
	seq.Visited[components.PhaseMain] = true
	seq.Skipped = true
	seq.MatrixHidden = true
	s.applyGates(seq, components.PhaseMain)
	s.setVisibility(seq, components.PhaseMain, components.VisibilityActive)

	log.Printf("[IntroSequencer] Skip from %s (cancelled %d timers)", from, cancelled)
	for _, fn := range s.onSkip {
		fn()
	}
	if from != components.PhaseMain {
		s.notifyPhaseChange(from, components.PhaseMain)
	}
	s.enter(components.PhaseMain)
}

// Replay 从 main 阶段重新开始整个序列
// 只有 main 阶段的进入动作执行过之后才允许重播，返回是否真正重播。
func (s *IntroSequencerSystem) Replay() bool {
	seq := s.State()
	if seq == nil || seq.Phase != components.PhaseMain || !seq.MainEntered {
		return false
	}
	log.Printf("[IntroSequencer] Replay requested")
	s.Reset()
	s.Start()
	return true
}

// Reset 取消所有定时任务、停止龙、隐藏所有容器，回到未启动状态
func (s *IntroSequencerSystem) Reset() {
	seq := s.State()
	if seq == nil {
		return
	}

	s.scheduler.CancelAll()
	if s.dragon != nil {
		s.dragon.Stop()
	}

	for p := components.PhaseBoot; p < components.PhaseCount; p++ {
		s.setVisibility(seq, p, components.VisibilityHidden)
	}

	*seq = components.IntroSequenceComponent{
		Phase:      components.PhaseBoot,
		Containers: seq.Containers,
		Run:        seq.Run + 1,
	}
	s.started = false

	for _, fn := range s.onReset {
		fn()
	}
}

// advance 切换到下一个阶段
// exitDelay 是上一阶段的退场时长，结束后才执行新阶段的进入动作。
func (s *IntroSequencerSystem) advance(to components.IntroPhase, exitDelay float64) {
	seq := s.State()
	if seq == nil {
		return
	}

	from := seq.Phase
	if !to.Valid() || to <= from || seq.Visited[to] {
		log.Printf("[IntroSequencer] Refusing transition %s → %s", from, to)
		return
	}

	seq.Phase = to
	seq.Visited[to] = true
	s.setVisibility(seq, to, components.VisibilityActive)
	s.setVisibility(seq, from, components.VisibilityExiting)
	s.applyGates(seq, to)

	log.Printf("[IntroSequencer] phase: %s → %s", from, to)
	s.notifyPhaseChange(from, to)

	run := seq.Run
	s.scheduler.After(exitDelay, func() {
		if seq.Run != run {
			return
		}
		s.setVisibility(seq, from, components.VisibilityHidden)
		s.enter(to)
	})
}

// enter 执行阶段的进入动作
func (s *IntroSequencerSystem) enter(phase components.IntroPhase) {
	switch {
	case phase == components.PhaseBoot:
		s.enterBoot()
	case phase == components.PhaseDragonFlight:
		s.enterDragonFlight()
	case phase == components.PhaseMain:
		s.enterMain()
	default:
		if i, ok := phase.RevealIndex(); ok {
			s.enterReveal(phase, i)
		}
	}
}

// enterBoot 按固定间隔逐行显示启动文本，全部显示后等待 SettleDelay 再切换
func (s *IntroSequencerSystem) enterBoot() {
	seq := s.State()
	boot := s.config.Boot
	seq.BootLinesShown = 0

	var lineTimer game.TimerID
	lineTimer = s.scheduler.Every(boot.LineInterval, func() {
		if seq.BootLinesShown < len(boot.Lines) {
			seq.BootLinesShown++
			return
		}
		s.scheduler.Cancel(lineTimer)
		s.scheduler.After(boot.SettleDelay, func() {
			s.advance(components.PhaseReveal1, boot.ExitDelay)
		})
	})
}

// enterReveal 角色揭示阶段：进度条驱动或固定停留时长
func (s *IntroSequencerSystem) enterReveal(phase components.IntroPhase, index int) {
	if index >= len(s.config.Reveals) {
		return
	}
	reveal := s.config.Reveals[index]

	if reveal.ProgressBar == nil {
		s.scheduler.After(reveal.Hold, func() { s.leaveReveal(phase, reveal) })
		return
	}

	seq := s.State()
	bar := *reveal.ProgressBar
	seq.Progress = 0

	var barTimer game.TimerID
	barTimer = s.scheduler.Every(bar.Interval, func() {
		seq.Progress = math.Min(seq.Progress+bar.MinStep+s.rng.Float64()*bar.Jitter, 100)
		if seq.Progress < 100 {
			return
		}
		s.scheduler.Cancel(barTimer)
		s.scheduler.After(bar.FinishDelay, func() { s.leaveReveal(phase, reveal) })
	})
}

// leaveReveal 揭示阶段结束：闪光并切换到下一阶段
func (s *IntroSequencerSystem) leaveReveal(phase components.IntroPhase, reveal config.RevealConfig) {
	next, ok := phase.Next()
	if !ok {
		return
	}
	if reveal.Flash {
		entities.NewTransitionFlash(s.entityManager, s.config.Flash)
	}
	s.advance(next, reveal.ExitDelay)
}

// enterDragonFlight 启动龙；切换到 main 完全由完成信号驱动
func (s *IntroSequencerSystem) enterDragonFlight() {
	seq := s.State()
	if s.dragon == nil {
		log.Printf("[IntroSequencer] No dragon driver, going straight to main")
		s.advance(components.PhaseMain, 0)
		return
	}

	run := seq.Run
	s.dragon.Start(func() {
		if seq.Run != run || seq.Phase != components.PhaseDragonFlight {
			log.Printf("[IntroSequencer] Ignoring stale dragon completion (run %d)", run)
			return
		}
		entities.NewTransitionFlash(s.entityManager, s.config.Flash)
		s.advance(components.PhaseMain, s.config.Dragon.ExitDelay)
	})
}

// enterMain 主卡片：短暂延迟后出现，正文逐行错开显示
func (s *IntroSequencerSystem) enterMain() {
	seq := s.State()
	if seq.MainEntered {
		return
	}
	seq.MainEntered = true
	mainCfg := s.config.Main

	s.scheduler.After(mainCfg.RevealDelay, func() {
		seq.CardVisible = true
		seq.KanjiEnabled = true
		for i := range mainCfg.Lines {
			n := i + 1
			s.scheduler.After(mainCfg.LineDelay+float64(i)*mainCfg.LineStagger, func() {
				if n > seq.CardLinesShown {
					seq.CardLinesShown = n
				}
			})
		}
		log.Printf("[IntroSequencer] Main card shown")
		for _, fn := range s.onCardShown {
			fn()
		}
	})
}

// applyGates 根据阶段设置生成器开关
func (s *IntroSequencerSystem) applyGates(seq *components.IntroSequenceComponent, phase components.IntroPhase) {
	seq.MatrixActive = phase == components.PhaseBoot
	seq.EmbersEnabled = phase >= components.PhaseReveal1 && phase <= components.PhaseDragonFlight
}

// setVisibility 修改容器可见性；容器不存在时什么都不做
// 只有激活的容器才能进入退场。
func (s *IntroSequencerSystem) setVisibility(seq *components.IntroSequenceComponent, phase components.IntroPhase, v components.Visibility) {
	if !phase.Valid() {
		return
	}
	container, ok := ecs.GetComponent[*components.ContainerComponent](s.entityManager, seq.Containers[phase])
	if !ok {
		return
	}
	if v == components.VisibilityExiting && container.Visibility != components.VisibilityActive {
		return
	}
	if container.Visibility == v {
		return
	}
	container.Visibility = v
	container.Elapsed = 0
	if v == components.VisibilityHidden {
		container.Alpha = 0
	}
}

func (s *IntroSequencerSystem) notifyPhaseChange(from, to components.IntroPhase) {
	for _, fn := range s.onPhaseChange {
		fn(from, to)
	}
}

// exitDelay 阶段的退场时长
func (s *IntroSequencerSystem) exitDelay(p components.IntroPhase) float64 {
	switch {
	case p == components.PhaseBoot:
		return s.config.Boot.ExitDelay
	case p == components.PhaseDragonFlight:
		return s.config.Dragon.ExitDelay
	default:
		if i, ok := p.RevealIndex(); ok && i < len(s.config.Reveals) {
			return s.config.Reveals[i].ExitDelay
		}
	}
	return 0
}
