package kinematics

import "math"

// OrbitStage 龙的飞行子阶段
type OrbitStage int

const (
	// StageFlyIn 从屏幕外飞入轨道
	StageFlyIn OrbitStage = iota
	// StageCircle 沿圆轨道环绕
	StageCircle
	// StageConverge 螺旋收束并淡出
	StageConverge
	// StageDone 终止状态，不再移动
	StageDone
)

// String 返回子阶段名称（用于日志）
func (s OrbitStage) String() string {
	switch s {
	case StageFlyIn:
		return "fly-in"
	case StageCircle:
		return "circle"
	case StageConverge:
		return "converge"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// OrbitConfig 环绕/收束轨迹参数（角度单位：弧度；速度单位：每帧）
type OrbitConfig struct {
	CenterX, CenterY float64
	Radius           float64 // 轨道半径 R
	AngularSpeed     float64 // 每帧角速度
	StartAngle       float64 // 起始角度

	EntryX, EntryY float64 // 飞入起点（屏幕外）

	FlyInStep       float64 // 飞入进度每帧增量
	FlyInFollowMin  float64 // 飞入时头部跟随比例下限
	FlyInFollowGain float64 // 飞入时跟随比例随缓动进度的增益

	CircleTurns float64 // 环绕圈数（相对起始角度）

	ConvergeStep   float64 // 收束进度每帧增量
	ShrinkFraction float64 // 收束结束时半径缩小的比例（0.75 → 剩 25%）
	SpeedBoost     float64 // 收束时角速度加成：speed * (1 + ease*SpeedBoost)
	FadeFraction   float64 // 收束结束时透明度下降比例（0.9 → 剩 0.1）
}

// Orbit 生成每帧的龙头目标点
//
// 子阶段单调推进：fly-in → circle → converge → done，每个阶段只进入一次；
// 进入 done 时调用一次完成回调，之后无论再调用多少次 Step 都不会重复通知。
type Orbit struct {
	cfg OrbitConfig

	stage            OrbitStage
	angle            float64
	flyInProgress    float64
	convergeProgress float64
	radius           float64
	alpha            float64
	headX, headY     float64

	onStageChange func(from, to OrbitStage)
	onComplete    func()
	completed     bool
}

// NewOrbit 创建轨迹生成器，头部初始位于飞入起点
func NewOrbit(cfg OrbitConfig) *Orbit {
	return &Orbit{
		cfg:    cfg,
		stage:  StageFlyIn,
		angle:  cfg.StartAngle,
		radius: cfg.Radius,
		alpha:  1,
		headX:  cfg.EntryX,
		headY:  cfg.EntryY,
	}
}

// OnStageChange 注册子阶段切换回调
func (o *Orbit) OnStageChange(fn func(from, to OrbitStage)) {
	o.onStageChange = fn
}

// OnComplete 注册完成回调（“龙序列结束”信号）
func (o *Orbit) OnComplete(fn func()) {
	o.onComplete = fn
}

// Stage 当前子阶段
func (o *Orbit) Stage() OrbitStage { return o.stage }

// Angle 当前轨道角度
func (o *Orbit) Angle() float64 { return o.angle }

// Radius 当前有效半径（收束时逐渐缩小）
func (o *Orbit) Radius() float64 { return o.radius }

// Alpha 当前整体透明度 ∈ [0, 1]
func (o *Orbit) Alpha() float64 { return o.alpha }

// Head 最近一次计算的目标点
func (o *Orbit) Head() (x, y float64) { return o.headX, o.headY }

// Center 轨道中心
func (o *Orbit) Center() (x, y float64) { return o.cfg.CenterX, o.cfg.CenterY }

// SetCenter 修改轨道中心（视口尺寸变化时调用）
func (o *Orbit) SetCenter(x, y float64) {
	o.cfg.CenterX, o.cfg.CenterY = x, y
}

// Progress 返回当前子阶段的进度 ∈ [0, 1]
func (o *Orbit) Progress() float64 {
	switch o.stage {
	case StageFlyIn:
		return o.flyInProgress
	case StageCircle:
		total := o.cfg.CircleTurns * 2 * math.Pi
		if total <= 0 {
			return 1
		}
		return clamp01((o.angle - o.cfg.StartAngle) / total)
	case StageConverge:
		return o.convergeProgress
	default:
		return 1
	}
}

// Done 是否已经到达终止状态
func (o *Orbit) Done() bool { return o.stage == StageDone }

// Step 推进一帧并返回新的目标点
func (o *Orbit) Step() (x, y float64) {
	switch o.stage {
	case StageFlyIn:
		o.stepFlyIn()
	case StageCircle:
		o.stepCircle()
	case StageConverge:
		o.stepConverge()
	}
	return o.headX, o.headY
}

// stepFlyIn 头部从入口点缓动逼近轨道上（同时在前进的）目标点
func (o *Orbit) stepFlyIn() {
	o.flyInProgress = math.Min(o.flyInProgress+o.cfg.FlyInStep, 1)
	ease := EaseOutCubic(o.flyInProgress)

	o.angle += o.cfg.AngularSpeed
	tx := o.cfg.CenterX + math.Cos(o.angle)*o.cfg.Radius
	ty := o.cfg.CenterY + math.Sin(o.angle)*o.cfg.Radius

	follow := o.cfg.FlyInFollowMin + ease*o.cfg.FlyInFollowGain
	o.headX = Lerp(o.headX, tx, follow)
	o.headY = Lerp(o.headY, ty, follow)

	if o.flyInProgress >= 1 || o.cfg.FlyInStep <= 0 {
		o.setStage(StageCircle)
	}
}

// stepCircle 匀速环绕，超过配置圈数后进入收束
func (o *Orbit) stepCircle() {
	o.angle += o.cfg.AngularSpeed
	o.headX = o.cfg.CenterX + math.Cos(o.angle)*o.cfg.Radius
	o.headY = o.cfg.CenterY + math.Sin(o.angle)*o.cfg.Radius

	if o.angle > o.cfg.StartAngle+o.cfg.CircleTurns*2*math.Pi || o.cfg.AngularSpeed <= 0 {
		o.setStage(StageConverge)
	}
}

// stepConverge 半径收缩、角速度加快、透明度下降
func (o *Orbit) stepConverge() {
	o.convergeProgress = math.Min(o.convergeProgress+o.cfg.ConvergeStep, 1)
	ease := EaseOutCubic(o.convergeProgress)

	o.radius = o.cfg.Radius * (1 - ease*o.cfg.ShrinkFraction)
	o.angle += o.cfg.AngularSpeed * (1 + ease*o.cfg.SpeedBoost)
	o.headX = o.cfg.CenterX + math.Cos(o.angle)*o.radius
	o.headY = o.cfg.CenterY + math.Sin(o.angle)*o.radius
	o.alpha = clamp01(1 - ease*o.cfg.FadeFraction)

	if o.convergeProgress >= 1 || o.cfg.ConvergeStep <= 0 {
		o.setStage(StageDone)
		o.complete()
	}
}

func (o *Orbit) setStage(next OrbitStage) {
	prev := o.stage
	o.stage = next
	if o.onStageChange != nil {
		o.onStageChange(prev, next)
	}
}

func (o *Orbit) complete() {
	if o.completed {
		return
	}
	o.completed = true
	if o.onComplete != nil {
		o.onComplete()
	}
}
