// Package kinematics 提供龙身体的运动学计算：分段链条跟随与环绕/收束轨迹。
//
// 这里的类型都是纯数据 + 纯计算，不依赖 ebiten，可以被图形端（pkg/systems）
// 和终端预览（cmd/intro-tty）共用，也方便在测试里逐帧驱动。
package kinematics

import "math"

// Segment 链条中的一个节点
type Segment struct {
	X, Y float64
	// Angle 节点朝向（弧度），指向前一个节点；头部指向运动方向
	Angle float64
}

// ChainConfig 链条参数
type ChainConfig struct {
	// Count 节点数量（头部为索引 0）
	Count int
	// BaseLength 索引 i 与 i-1 之间的最大距离 = BaseLength - Taper*i
	BaseLength float64
	// Taper 每个索引的最大距离递减量，形成鞭状尾巴
	Taper float64
	// MinLength 最大距离的下限，避免尾部长度为负
	MinLength float64
	// FollowRate 头部每帧向目标靠近剩余距离的比例（指数平滑）
	FollowRate float64
}

// Chain 距离约束的“跟随领头”链条
//
// Advance 之后任意相邻节点 (i-1, i) 的距离都不超过 MaxLength(i)。
type Chain struct {
	Segments []Segment

	maxLen     []float64 // maxLen[i] 为 (i-1, i) 的最大距离，maxLen[0] 未使用
	followRate float64
}

// NewChain 创建链条，所有节点初始位于 (x, y)
func NewChain(cfg ChainConfig, x, y float64) *Chain {
	count := cfg.Count
	if count < 0 {
		count = 0
	}

	c := &Chain{
		Segments:   make([]Segment, count),
		maxLen:     make([]float64, count),
		followRate: clamp01(cfg.FollowRate),
	}
	for i := 1; i < count; i++ {
		l := cfg.BaseLength - cfg.Taper*float64(i)
		if l < cfg.MinLength {
			l = cfg.MinLength
		}
		if l < 0 {
			l = 0
		}
		c.maxLen[i] = l
	}
	c.Reset(x, y)
	return c
}

// Len 节点数量
func (c *Chain) Len() int {
	return len(c.Segments)
}

// MaxLength 返回节点 i 与 i-1 之间允许的最大距离；i <= 0 或越界时返回 0
func (c *Chain) MaxLength(i int) float64 {
	if i <= 0 || i >= len(c.maxLen) {
		return 0
	}
	return c.maxLen[i]
}

// Reset 把所有节点放到同一点
func (c *Chain) Reset(x, y float64) {
	for i := range c.Segments {
		c.Segments[i] = Segment{X: x, Y: y}
	}
}

// Place 按 fn 给出的坐标摆放每个节点（例如开场前的螺旋初始形态）
// 摆放结果不做约束，下一次 Advance 时会重新满足距离约束。
func (c *Chain) Place(fn func(i int) (x, y float64)) {
	for i := range c.Segments {
		c.Segments[i].X, c.Segments[i].Y = fn(i)
	}
}

// Head 返回头部位置
func (c *Chain) Head() (x, y float64) {
	if len(c.Segments) == 0 {
		return 0, 0
	}
	return c.Segments[0].X, c.Segments[0].Y
}

// HeadAngle 返回头部朝向（由第 1 节指向头部）
func (c *Chain) HeadAngle() float64 {
	if len(c.Segments) == 0 {
		return 0
	}
	return c.Segments[0].Angle
}

// Advance 推进一帧
//
//  1. 头部以 FollowRate 向 (tx, ty) 指数逼近（不是瞬移）
//  2. 其余节点依次检查与前一节点的距离，超过最大值时沿连线拉回到恰好最大距离
//
// 约束只求解一遍，不做迭代松弛：节点 i 的位置只依赖已经更新过的 i-1，
// 所以单遍之后所有相邻距离都满足上限（按 math.Hypot 严格 <=，见 pullTo）。
func (c *Chain) Advance(tx, ty float64) {
	n := len(c.Segments)
	if n == 0 {
		return
	}

	head := &c.Segments[0]
	head.X += (tx - head.X) * c.followRate
	head.Y += (ty - head.Y) * c.followRate

	for i := 1; i < n; i++ {
		prev := &c.Segments[i-1]
		cur := &c.Segments[i]

		dx := cur.X - prev.X
		dy := cur.Y - prev.Y
		d := math.Hypot(dx, dy)
		maxLen := c.maxLen[i]

		if d > maxLen {
			if maxLen == 0 {
				cur.X, cur.Y = prev.X, prev.Y
			} else {
				pullTo(prev, cur, dx, dy, maxLen/d, maxLen)
			}
		}

		if d > 0 {
			cur.Angle = math.Atan2(-dy, -dx)
		}
	}

	if n > 1 {
		s1 := c.Segments[1]
		if head.X != s1.X || head.Y != s1.Y {
			head.Angle = math.Atan2(head.Y-s1.Y, head.X-s1.X)
		}
	}
}

// pullTo 把 cur 放到 prev + (dx, dy)*k；舍入后仍超过 maxLen 时按倍增步长缩小 k，
// 坐标较大时单个 ulp 的缩小可能不改变结果
func pullTo(prev, cur *Segment, dx, dy, k, maxLen float64) {
	shrink := 1e-15
	for {
		cur.X = prev.X + dx*k
		cur.Y = prev.Y + dy*k
		if math.Hypot(cur.X-prev.X, cur.Y-prev.Y) <= maxLen {
			return
		}
		if shrink >= 1 {
			cur.X, cur.Y = prev.X, prev.Y
			return
		}
		k -= k * shrink
		shrink *= 2
	}
}

// clamp01 将值限制在 [0, 1]
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
