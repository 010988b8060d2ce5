package game

import "log"

// TimerID 定时器句柄，0 为无效值
type TimerID uint64

// timer 单个待触发的定时任务
type timer struct {
	id       TimerID
	due      float64 // 触发时刻（调度器时钟，秒）
	interval float64 // > 0 表示重复任务
	fn       func()
}

// minRepeatInterval 重复任务的最小间隔，防止 Update 内死循环
const minRepeatInterval = 0.001

// Scheduler 协作式定时器调度器
//
// 所有定时器都由同一个 Update 驱动（每帧一次），回调在 Update 内同步执行，
// 不会并发。调度器拥有全部挂起的定时器，CancelAll 可以一次性原子地
// 取消所有后续回调（跳过/重播时使用）。
//
// 回调内可以安全地注册或取消任意定时器（包括正在执行的这一个）。
type Scheduler struct {
	now    float64
	nextID TimerID
	timers []*timer
}

// NewScheduler 创建调度器，时钟从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{nextID: 1}
}

// Now 调度器当前时钟（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// After 在 delay 秒后执行一次 fn
func (s *Scheduler) After(delay float64, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	return s.add(delay, 0, fn)
}

// Every 每隔 interval 秒执行一次 fn，第一次在 interval 秒后
func (s *Scheduler) Every(interval float64, fn func()) TimerID {
	if interval < minRepeatInterval {
		interval = minRepeatInterval
	}
	return s.add(interval, interval, fn)
}

func (s *Scheduler) add(delay, interval float64, fn func()) TimerID {
	id := s.nextID
	s.nextID++
	s.timers = append(s.timers, &timer{
		id:       id,
		due:      s.now + delay,
		interval: interval,
		fn:       fn,
	})
	return id
}

// Cancel 取消指定定时器，返回是否找到
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll 取消所有挂起的定时器，返回取消数量
func (s *Scheduler) CancelAll() int {
	n := len(s.timers)
	s.timers = s.timers[:0]
	if n > 0 {
		log.Printf("[Scheduler] Cancelled %d pending timers", n)
	}
	return n
}

// Pending 挂起的定时器数量
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// IsPending 指定定时器是否仍在等待
func (s *Scheduler) IsPending(id TimerID) bool {
	for _, t := range s.timers {
		if t.id == id {
			return true
		}
	}
	return false
}

// Update 推进时钟并按触发时刻顺序执行所有到期的回调
// 同一时刻到期的任务按注册顺序执行。执行回调时时钟停在该任务的触发时刻，
// 所以回调内注册的定时任务从触发时刻起算，一次较大的 dt 也能按顺序补齐整条链。
func (s *Scheduler) Update(dt float64) {
	target := s.now
	if dt > 0 {
		target += dt
	}

	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		if next.due > s.now {
			s.now = next.due
		}

		if next.interval > 0 {
			next.due += next.interval
		} else {
			s.Cancel(next.id)
		}

		if next.fn != nil {
			next.fn()
		}
	}
	s.now = target
}

// nextDue 返回最早到期（due <= until）的定时器
func (s *Scheduler) nextDue(until float64) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.due > until {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}
