package systems

import (
	"math/rand"

	"github.com/decker502/inferno/pkg/components"
	"github.com/decker502/inferno/pkg/config"
	"github.com/decker502/inferno/pkg/ecs"
	"github.com/decker502/inferno/pkg/entities"
)

// testViewport 测试使用的视口
var testViewport = entities.Viewport{Width: config.GameWindowWidth, Height: config.GameWindowHeight}

// testFrame 60 TPS 下的一帧
const testFrame = 1.0 / 60

// fakeDragon 记录调用的龙驱动者，完成信号由测试手动触发
type fakeDragon struct {
	starts     int
	stops      int
	onComplete func()
}

func (f *fakeDragon) Start(onComplete func()) {
	f.starts++
	f.onComplete = onComplete
}

func (f *fakeDragon) Stop() {
	f.stops++
}

// complete 触发最近一次 Start 注册的完成回调
func (f *fakeDragon) complete() {
	if f.onComplete != nil {
		f.onComplete()
	}
}

// layerSet 固定的绘制层集合
type layerSet map[string]bool

func (l layerSet) HasLayer(name string) bool {
	return l[name]
}

// newTestSequencer 创建使用默认配置和固定随机种子的序列器
func newTestSequencer(dragon DragonDriver) (*ecs.EntityManager, *config.IntroConfig, *IntroSequencerSystem) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultIntroConfig()
	seq := NewIntroSequencerSystem(em, cfg, dragon, rand.New(rand.NewSource(1)))
	return em, cfg, seq
}

// containerVisibility 返回阶段容器的可见性
func containerVisibility(em *ecs.EntityManager, s *IntroSequencerSystem, p components.IntroPhase) components.Visibility {
	c, ok := ecs.GetComponent[*components.ContainerComponent](em, s.State().Containers[p])
	if !ok {
		return components.VisibilityHidden
	}
	return c.Visibility
}

// phaseRecorder 记录所有阶段切换
type phaseRecorder struct {
	changes [][2]components.IntroPhase
}

func (r *phaseRecorder) record(from, to components.IntroPhase) {
	r.changes = append(r.changes, [2]components.IntroPhase{from, to})
}

// count 切换到 to 的次数
func (r *phaseRecorder) count(to components.IntroPhase) int {
	n := 0
	for _, c := range r.changes {
		if c[1] == to {
			n++
		}
	}
	return n
}
