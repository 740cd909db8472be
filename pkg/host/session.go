package host

import (
	"image"
	"log"
	"math"
	"time"

	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/gonewx/carousel/pkg/utils"
)

// 布局参数
const (
	TaskWidthRatio  = 0.28
	TaskHeightRatio = 0.62
	TaskGap         = 40.0

	// LaunchDuration 启动任务动画时长
	LaunchDuration = 300 * time.Millisecond
	// LaunchScale 启动动画结束时卡片的放大倍数
	LaunchScale = 1.35
)

// 手势结束目标
const (
	TargetRecents  = "RECENTS"
	TargetHome     = "HOME"
	TargetLastTask = "LAST_TASK"
)

// launchAnim 启动动画
type launchAnim struct {
	task  *TaskView
	start time.Time
}

// Session 把多任务视图、宿主 setter 与轮播引擎连接在一起
//
// 每帧 Tick 的顺序与真实宿主相同：宿主布局并写入自己的属性，
// 然后派发每帧回调，引擎在回调中写入叠加。
type Session struct {
	view        *RecentsView
	setters     *Setters
	engine      *carousel.Engine
	interceptor *carousel.Interceptor
	lifecycle   *carousel.LifecycleController
	clock       carousel.Clock

	layoutDirty bool
	launching   *launchAnim
	launched    *TaskView
}

// NewSession 创建会话，clock 为 nil 时使用 time.Now
func NewSession(view *RecentsView, settings carousel.Settings, clock carousel.Clock) *Session {
	if clock == nil {
		clock = time.Now
	}
	setters := NewSetters()
	engine := carousel.NewEngine(settings, setters)
	interceptor := carousel.NewInterceptor(engine)
	setters.Bind(interceptor)

	s := &Session{
		view:        view,
		setters:     setters,
		engine:      engine,
		interceptor: interceptor,
		lifecycle:   carousel.NewLifecycleController(engine, clock),
		clock:       clock,
		layoutDirty: true,
	}
	view.OnLiveTileChanged = func(enable bool) {
		s.lifecycle.OnLiveTileEnabled(view, enable)
	}
	return s
}

func (s *Session) View() *RecentsView                       { return s.view }
func (s *Session) Engine() *carousel.Engine                 { return s.engine }
func (s *Session) Lifecycle() *carousel.LifecycleController { return s.lifecycle }

// Launched 最近一次启动完成的卡片
func (s *Session) Launched() *TaskView { return s.launched }

// Launching 是否正在播放启动动画
func (s *Session) Launching() bool { return s.launching != nil }

// Open 显示多任务视图
func (s *Session) Open() {
	if s.view.visible {
		return
	}
	s.view.visible = true
	s.launched = nil
	s.lifecycle.Attach(s.view)
	s.layoutDirty = true
	if err := s.view.SetEnableDrawingLiveTile(true); err != nil {
		log.Printf("[RecentsSession] enable live tile failed: %v", err)
	}
	log.Printf("[RecentsSession] opened with %d tasks", len(s.view.tasks))
}

// Close 隐藏多任务视图
func (s *Session) Close() {
	if !s.view.visible {
		return
	}
	s.view.visible = false
	s.lifecycle.OnVisibilityChanged(s.view, false)
	if err := s.view.SetEnableDrawingLiveTile(false); err != nil {
		log.Printf("[RecentsSession] disable live tile failed: %v", err)
	}
	log.Printf("[RecentsSession] closed")
}

// Detach 视图从窗口移除
func (s *Session) Detach() {
	s.lifecycle.OnDetached(s.view)
}

// BeginGesture 从底部上滑的手势开始
func (s *Session) BeginGesture() {
	if !s.view.visible {
		s.view.visible = true
		s.lifecycle.Attach(s.view)
		s.layoutDirty = true
	}
	s.lifecycle.OnGestureStart(s.view)
}

// EndGesture 手势结束，target 为宿主决定的目标状态
func (s *Session) EndGesture(target string) {
	s.lifecycle.OnGestureEnd(s.view, target)
	if target != TargetRecents {
		s.Close()
	}
}

// ScrollBy 横向滚动
func (s *Session) ScrollBy(dx float64) {
	s.view.SetScrollX(s.view.scrollX+dx, s.MaxScroll())
}

// ScrollTo 滚动到第 i 张卡片居中
func (s *Session) ScrollTo(i int) {
	s.view.SetScrollX(float64(i)*s.pitch(), s.MaxScroll())
}

// MaxScroll 最大滚动距离
func (s *Session) MaxScroll() float64 {
	n := len(s.view.tasks)
	if n <= 1 {
		return 0
	}
	return float64(n-1) * s.pitch()
}

// CenterTask 当前最接近视口中心的卡片
func (s *Session) CenterTask() *TaskView {
	if len(s.view.tasks) == 0 {
		return nil
	}
	i := int(math.Round(s.view.scrollX / s.pitch()))
	i = int(utils.Clamp(float64(i), 0, float64(len(s.view.tasks)-1)))
	return s.view.tasks[i]
}

// TaskAt 命中测试，x/y 为屏幕坐标
func (s *Session) TaskAt(x, y float64) *TaskView {
	cx := x + s.view.scrollX
	for _, t := range s.view.tasks {
		left := t.left + t.TransX
		if cx >= left && cx < left+t.Width() && y >= t.top && y < t.bottom {
			return t
		}
	}
	return nil
}

// Launch 启动卡片
func (s *Session) Launch(t *TaskView) {
	if t == nil || s.launching != nil || !s.view.visible {
		return
	}
	s.lifecycle.OnLaunchAction(s.view)
	s.launching = &launchAnim{task: t, start: s.clock()}
	log.Printf("[RecentsSession] launching %q", t.Title)
}

// GoHome 回到桌面
func (s *Session) GoHome() {
	if !s.view.visible {
		return
	}
	s.lifecycle.OnLaunchAction(s.view)
	s.lifecycle.OnTaskLaunchAnimationEnd(s.view)
	s.Close()
}

// Tick 推进一帧
func (s *Session) Tick() {
	if !s.view.visible {
		return
	}
	s.layout()
	s.stepLaunch()
	s.view.DispatchPreDraw()
}

// TaskRect 第 i 张卡片的布局矩形（容器坐标），尺寸经过拦截器缩放
func (s *Session) TaskRect(i int) image.Rectangle {
	w, h := s.taskSize()
	left := round(s.view.width/2) - w/2 + i*round(s.pitch())
	top := round(s.view.height/2) - h/2
	base := image.Rect(left, top, left+w, top+h)
	return s.interceptor.AfterCalculateTaskSize(base)
}

func round(v float64) int { return int(math.Round(v)) }

// taskSize 卡片的基础尺寸（像素）
func (s *Session) taskSize() (int, int) {
	return round(s.view.width * TaskWidthRatio), round(s.view.height * TaskHeightRatio)
}

func (s *Session) pitch() float64 {
	w, _ := s.taskSize()
	return float64(w) + TaskGap
}

// layout 宿主布局：更新几何并写入自己的属性值
func (s *Session) layout() {
	for i, t := range s.view.tasks {
		t.setFrame(s.TaskRect(i))
		s.hostWrite(t)
	}
	if s.layoutDirty {
		s.layoutDirty = false
		s.lifecycle.OnLayout(s.view)
	}
}

// hostWrite 宿主每帧的属性写入，经过拦截器
func (s *Session) hostWrite(t *TaskView) {
	if err := s.setters.SetTranslationX(t, 0); err != nil {
		log.Printf("[RecentsSession] setTranslationX failed: %v", err)
	}
	if err := s.setters.SetStableAlpha(t, 1); err != nil {
		log.Printf("[RecentsSession] setStableAlpha failed: %v", err)
	}
	if err := s.setters.SetNonGridScale(t, 1); err != nil {
		log.Printf("[RecentsSession] setNonGridScale failed: %v", err)
	}
}

func (s *Session) stepLaunch() {
	la := s.launching
	if la == nil {
		return
	}
	p := utils.Clamp01(float64(s.clock().Sub(la.start)) / float64(LaunchDuration))
	scale := utils.Lerp(1, LaunchScale, utils.EaseOutCubic(p))
	if err := s.setters.SetScale(la.task, scale, scale); err != nil {
		log.Printf("[RecentsSession] setScale failed: %v", err)
	}
	if p < 1 {
		return
	}
	s.launching = nil
	s.launched = la.task
	s.lifecycle.OnTaskLaunchAnimationEnd(s.view)
	s.Close()
	log.Printf("[RecentsSession] launched %q", la.task.Title)
}
