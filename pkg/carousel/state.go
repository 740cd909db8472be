package carousel

import (
	"math"
	"sync/atomic"

	"github.com/gonewx/carousel/pkg/utils"
)

// Mode 轮播的粗粒度阶段
type Mode int32

const (
	ModeIdle Mode = iota
	ModeEnteringOrActive
	ModeGestureInProgress
	ModeAnimatingExit
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeEnteringOrActive:
		return "EnteringOrActive"
	case ModeGestureInProgress:
		return "GestureInProgress"
	case ModeAnimatingExit:
		return "AnimatingExit"
	default:
		return "Unknown"
	}
}

// State 所有效果模块共享的轮播状态
//
// 入场/退出触发可能来自与每帧回调不同的路径，因此字段都是原子的，
// 但不加锁：视觉状态接受最后写入者获胜。
// 只有 LifecycleController 修改状态，效果模块只读。
type State struct {
	intensity atomic.Uint64 // math.Float64bits
	active    atomic.Bool   // 进入中或已在轮播中
	gesture   atomic.Bool
	exiting   atomic.Bool
	guard     atomic.Int32

	interpolator atomic.Pointer[Interpolator]
}

// NewState 创建空闲状态
func NewState() *State {
	return &State{}
}

// Intensity 当前强度 [0, 1]
func (s *State) Intensity() float64 {
	return math.Float64frombits(s.intensity.Load())
}

// SetIntensity 设置强度，超出 [0, 1] 时被钳制
func (s *State) SetIntensity(v float64) {
	s.intensity.Store(math.Float64bits(utils.Clamp01(v)))
}

// Active 是否处于 EnteringOrActive
func (s *State) Active() bool { return s.active.Load() }

func (s *State) setActive(v bool) { s.active.Store(v) }

// GestureInProgress 交互手势是否进行中
func (s *State) GestureInProgress() bool { return s.gesture.Load() }

func (s *State) setGestureInProgress(v bool) { s.gesture.Store(v) }

// AnimatingExit 是否正在播放退出动画
func (s *State) AnimatingExit() bool { return s.exiting.Load() }

func (s *State) setAnimatingExit(v bool) { s.exiting.Store(v) }

// Mode 返回当前阶段，退出与手势优先于基础阶段
func (s *State) Mode() Mode {
	switch {
	case s.AnimatingExit():
		return ModeAnimatingExit
	case s.GestureInProgress():
		return ModeGestureInProgress
	case s.Active():
		return ModeEnteringOrActive
	default:
		return ModeIdle
	}
}

// Guarding 当前是否处于叠加写入中
func (s *State) Guarding() bool {
	return s.guard.Load() > 0
}

// Guarded 在重入保护内执行 fn
//
// 保护是计数的，允许嵌套；即使 fn panic 也会被释放。
// 计数器由整个引擎共享，不区分 goroutine：依赖宿主对同一容器串行回调，
// 保护期间其他 goroutine 的宿主写入不会被记录为基线。
func (s *State) Guarded(fn func()) {
	s.guard.Add(1)
	defer s.guard.Add(-1)
	fn()
}

// ActiveInterpolator 返回当前插值器，可能为 nil
func (s *State) ActiveInterpolator() *Interpolator {
	return s.interpolator.Load()
}

// InterpolatorRunning 当前插值器是否在运行
func (s *State) InterpolatorRunning() bool {
	it := s.interpolator.Load()
	return it != nil && it.Running()
}

// startInterpolator 安装新插值器并取消旧的，保证同一时刻只有一个强度写入者
func (s *State) startInterpolator(it *Interpolator) {
	if prev := s.interpolator.Swap(it); prev != nil && prev != it {
		prev.Cancel()
	}
}

// reset 取消插值器并回到空闲
func (s *State) reset() {
	if prev := s.interpolator.Swap(nil); prev != nil {
		prev.Cancel()
	}
	s.SetIntensity(0)
	s.setActive(false)
	s.setGestureInProgress(false)
	s.setAnimatingExit(false)
}
