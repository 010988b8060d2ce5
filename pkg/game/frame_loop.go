package game

import "log"

// FrameStep 每帧执行的步骤，返回 false 表示循环自然结束
type FrameStep func() bool

// FrameLoop 可取消的逐帧循环
//
// 取代“回调里再请求下一帧”的递归写法：循环由唯一的驱动者（系统的 Update）
// 每帧调用 Tick，Tick 在执行前检查 done 标志，一旦 Stop 之后不会再执行任何一帧。
type FrameLoop struct {
	name    string
	step    FrameStep
	running bool
	done    bool
	frames  int
}

// NewFrameLoop 创建未启动的循环
func NewFrameLoop(name string, step FrameStep) *FrameLoop {
	return &FrameLoop{name: name, step: step}
}

// Start 启动（或重新启动）循环，帧计数清零
func (l *FrameLoop) Start() {
	l.running = true
	l.done = false
	l.frames = 0
	log.Printf("[FrameLoop] %s started", l.name)
}

// Stop 设置 done 标志，之后的 Tick 都不会执行
func (l *FrameLoop) Stop() {
	if l.done {
		return
	}
	l.done = true
	l.running = false
	log.Printf("[FrameLoop] %s stopped after %d frames", l.name, l.frames)
}

// Tick 执行一帧，返回这一帧是否真正执行了
func (l *FrameLoop) Tick() bool {
	if !l.running || l.done || l.step == nil {
		return false
	}
	l.frames++
	if !l.step() {
		l.Stop()
	}
	return true
}

// Running 循环是否在运行
func (l *FrameLoop) Running() bool {
	return l.running && !l.done
}

// Done 循环是否已被停止
func (l *FrameLoop) Done() bool {
	return l.done
}

// Frames 自上次 Start 以来执行的帧数
func (l *FrameLoop) Frames() int {
	return l.frames
}
