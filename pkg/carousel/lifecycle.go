package carousel

import (
	"log"
	"strings"
	"time"

	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/tags"
	"github.com/gonewx/carousel/pkg/utils"
)

// Clock 时间来源
type Clock func() time.Time

// LifecycleController 轮播的生命周期控制器
//
// 观察宿主的生命周期事件驱动 State：入场时启动强度插值，
// 终止事件时完整重置；同时在容器上安装每帧回调。
type LifecycleController struct {
	engine        *Engine
	clock         Clock
	entryDuration time.Duration
}

// NewLifecycleController 创建控制器，clock 为 nil 时使用 time.Now
func NewLifecycleController(e *Engine, clock Clock) *LifecycleController {
	if clock == nil {
		clock = time.Now
	}
	return &LifecycleController{
		engine:        e,
		clock:         clock,
		entryDuration: EntryDuration,
	}
}

// Engine 返回控制器驱动的引擎
func (lc *LifecycleController) Engine() *Engine { return lc.engine }

// Attach 容器附加到窗口时调用，安装每帧回调
// 多次附加只会安装一次
func (lc *LifecycleController) Attach(c Container) {
	store := c.Tags()
	if tags.ValueOr(store, tags.TagPreDrawInstalled, false) {
		return
	}
	id := c.AddPreDrawListener(func() bool {
		lc.PreDraw(c)
		return true
	})
	store.Set(tags.TagPreDrawInstalled, true)
	store.Set(tags.TagPreDrawListener, id)
	log.Printf("[CarouselLifecycle] pre-draw listener installed (id=%d)", id)
}

// OnDetached 容器从窗口移除：卸载回调并完整重置
func (lc *LifecycleController) OnDetached(c Container) {
	store := c.Tags()
	if id, ok := tags.Value[ListenerID](store, tags.TagPreDrawListener); ok {
		c.RemovePreDrawListener(id)
	}
	store.Set(tags.TagPreDrawInstalled, false)
	store.Clear(tags.TagPreDrawListener)
	lc.reset(c, "detached")
}

// OnVisibilityChanged 容器可见性变化，隐藏时完整重置
func (lc *LifecycleController) OnVisibilityChanged(c Container, visible bool) {
	if !visible {
		lc.reset(c, "hidden")
	}
}

// OnGestureStart 交互手势开始
func (lc *LifecycleController) OnGestureStart(c Container) {
	lc.engine.state.setGestureInProgress(true)
	lc.startEntry(c)
}

// BeforeGestureEnd 在宿主处理手势结束前记录目标
func (lc *LifecycleController) BeforeGestureEnd(c Container, target string) {
	c.Tags().Set(tags.TagPendingEndTarget, target)
}

// AfterGestureEnd 宿主处理完手势结束
//
// 目标仍是轮播时保持强度不变（不跳变）；否则完整重置。
func (lc *LifecycleController) AfterGestureEnd(c Container) {
	store := c.Tags()
	target := tags.ValueOr(store, tags.TagPendingEndTarget, "")
	store.Clear(tags.TagPendingEndTarget)

	state := lc.engine.state
	state.setGestureInProgress(false)
	if !strings.Contains(target, "RECENTS") {
		// 不论功能是否开启都完整重置
		lc.reset(c, "gesture ended on "+target)
		if lc.engine.Enabled() {
			lc.maybeDisableLiveTile(c)
		}
		return
	}
	if !lc.engine.Enabled() {
		return
	}
	state.setActive(true)
	lc.maybeDisableLiveTile(c)
}

// OnGestureEnd 等价于 BeforeGestureEnd + AfterGestureEnd
func (lc *LifecycleController) OnGestureEnd(c Container, target string) {
	lc.BeforeGestureEnd(c, target)
	lc.AfterGestureEnd(c)
}

// OnLiveTileEnabled 宿主开始或停止绘制实时预览
func (lc *LifecycleController) OnLiveTileEnabled(c Container, enable bool) {
	if enable && !lc.engine.state.Active() && c.Visible() {
		lc.startEntry(c)
	}
}

// OnLayout 宿主完成布局
// 手势进行中不自动入场
func (lc *LifecycleController) OnLayout(c Container) {
	if !c.Visible() || c.ChildCount() == 0 {
		return
	}
	state := lc.engine.state
	if state.GestureInProgress() {
		return
	}
	if !state.Active() && state.Intensity() < 0.5 {
		lc.startEntry(c)
	}
}

// OnLaunchAction 用户启动任务、回到桌面或确认任务
//
// 立即离开激活阶段，避免退出途中重新计算叠加；卡片属性等到终止事件再恢复。
func (lc *LifecycleController) OnLaunchAction(c Container) {
	state := lc.engine.state
	state.setAnimatingExit(true)
	state.setActive(false)
}

// OnTaskLaunchAnimationEnd 启动动画结束
func (lc *LifecycleController) OnTaskLaunchAnimationEnd(c Container) {
	lc.reset(c, "launch animation ended")
}

// PreDraw 每帧绘制前回调
func (lc *LifecycleController) PreDraw(c Container) {
	lc.advance()

	e := lc.engine
	state := e.state
	if !e.Enabled() {
		e.ResetItems(c)
		return
	}
	if !state.Active() && !state.AnimatingExit() && !state.GestureInProgress() {
		e.ResetItems(c)
		return
	}
	e.ApplyModules(c)
}

// Reset 完整重置状态并恢复所有卡片
func (lc *LifecycleController) Reset(c Container) {
	lc.reset(c, "explicit")
}

func (lc *LifecycleController) reset(c Container, reason string) {
	lc.engine.state.reset()
	lc.engine.ResetItems(c)
	log.Printf("[CarouselLifecycle] reset (%s)", reason)
}

// advance 采样插值器并写入强度
func (lc *LifecycleController) advance() {
	state := lc.engine.state
	it := state.ActiveInterpolator()
	if it == nil || it.Canceled() {
		return
	}
	if v, _ := it.Sample(lc.clock()); !it.Canceled() {
		state.SetIntensity(v)
	}
}

// startEntry 入场触发
func (lc *LifecycleController) startEntry(c Container) {
	e := lc.engine
	state := e.state
	if state.Active() && state.InterpolatorRunning() {
		return
	}
	if !e.Enabled() {
		return
	}
	state.setActive(true)
	state.setAnimatingExit(false)
	it := NewInterpolator(state.Intensity(), 1, lc.clock(), lc.entryDuration, utils.EaseDecelerate)
	state.startInterpolator(it)
	log.Printf("[CarouselLifecycle] entry animation started from %.2f", state.Intensity())
}

// maybeDisableLiveTile 手势结束后切换到截图并停止绘制实时预览
func (lc *LifecycleController) maybeDisableLiveTile(c Container) {
	if !lc.engine.settings.Bool(config.KeyDisableLiveTile, false) {
		return
	}
	host, ok := c.(LiveTileHost)
	if !ok {
		return
	}
	err := host.SwitchToScreenshot(func() {
		if err := host.FinishRecentsAnimation(); err != nil {
			log.Printf("[CarouselLifecycle] finishRecentsAnimation failed: %v", err)
			return
		}
		if err := host.SetEnableDrawingLiveTile(false); err != nil {
			log.Printf("[CarouselLifecycle] setEnableDrawingLiveTile failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("[CarouselLifecycle] Failed to disable live tile: %v", err)
	}
}
