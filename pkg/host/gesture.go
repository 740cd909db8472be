package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// PointerSample 一帧的指针采样
type PointerSample struct {
	Pressed bool
	X, Y    int
}

// PollPointer 读取当前帧的指针状态，优先检测触摸
func PollPointer() PointerSample {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerSample{Pressed: true, X: x, Y: y}
	}
	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	return PointerSample{Pressed: pressed, X: x, Y: y}
}

// DragInfo 拖拽信息
type DragInfo struct {
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置
	CurrentX, CurrentY int
	// LastX, LastY 上一帧位置
	LastX, LastY int
}

// DragTracker 跟踪拖拽状态
type DragTracker struct {
	info DragInfo
}

// Update 根据本帧采样推进状态机，每帧调用一次
func (d *DragTracker) Update(p PointerSample) DragInfo {
	switch d.info.State {
	case DragStateNone:
		if p.Pressed {
			d.info = DragInfo{
				State:    DragStateStarted,
				StartX:   p.X,
				StartY:   p.Y,
				CurrentX: p.X,
				CurrentY: p.Y,
				LastX:    p.X,
				LastY:    p.Y,
			}
		}

	case DragStateStarted, DragStateDragging:
		d.info.LastX, d.info.LastY = d.info.CurrentX, d.info.CurrentY
		if p.Pressed {
			d.info.State = DragStateDragging
			d.info.CurrentX, d.info.CurrentY = p.X, p.Y
		} else {
			d.info.State = DragStateEnded
		}

	case DragStateEnded:
		// 结束状态只持续一帧
		d.Reset()
		if p.Pressed {
			return d.Update(p)
		}
	}
	return d.info
}

// Reset 重置拖拽状态
func (d *DragTracker) Reset() {
	d.info = DragInfo{State: DragStateNone}
}

// Info 当前拖拽信息
func (d *DragTracker) Info() DragInfo { return d.info }

// Distance 从起点到当前位置的距离
func (d *DragTracker) Distance() (dx, dy int) {
	return d.info.CurrentX - d.info.StartX, d.info.CurrentY - d.info.StartY
}

// 手势识别参数
const (
	// SwipeZone 屏幕底部可以开始上滑手势的高度
	SwipeZone = 80
	// SwipeRecentsDistance 上滑超过该距离且停在多任务
	SwipeRecentsDistance = 150
	// SwipeHomeDistance 上滑超过该距离回到桌面
	SwipeHomeDistance = 420
	// TapSlop 位移小于该值视为点击
	TapSlop = 10
)

// gestureMode 当前拖拽被识别为哪种手势
type gestureMode int

const (
	modeNone gestureMode = iota
	modeSwipeUp
	modeScroll
)

// GestureRecognizer 把拖拽翻译成会话操作
//
// 从底部区域开始的拖拽是上滑手势：抬起时根据上滑距离决定停在多任务还是回到桌面。
// 其他拖拽横向滚动卡片，几乎没有位移的拖拽是点击，启动被点中的卡片。
type GestureRecognizer struct {
	session *Session
	tracker DragTracker
	height  float64
	mode    gestureMode
}

// NewGestureRecognizer 创建手势识别器
func NewGestureRecognizer(s *Session, screenHeight float64) *GestureRecognizer {
	return &GestureRecognizer{session: s, height: screenHeight}
}

// Resize 屏幕高度变化
func (g *GestureRecognizer) Resize(screenHeight float64) { g.height = screenHeight }

// Update 处理一帧的指针采样
func (g *GestureRecognizer) Update(p PointerSample) {
	info := g.tracker.Update(p)
	switch info.State {
	case DragStateStarted:
		if float64(info.StartY) >= g.height-SwipeZone {
			g.mode = modeSwipeUp
			g.session.BeginGesture()
		} else if g.session.View().Visible() {
			g.mode = modeScroll
		}

	case DragStateDragging:
		if g.mode == modeScroll {
			g.session.ScrollBy(float64(info.LastX - info.CurrentX))
		}

	case DragStateEnded:
		dx, dy := g.tracker.Distance()
		switch g.mode {
		case modeSwipeUp:
			g.session.EndGesture(swipeTarget(-dy))
		case modeScroll:
			if abs(dx) < TapSlop && abs(dy) < TapSlop {
				g.session.Launch(g.session.TaskAt(float64(info.CurrentX), float64(info.CurrentY)))
			}
		}
		g.mode = modeNone
	}
}

// swipeTarget 根据上滑距离决定手势结束目标
func swipeTarget(distance int) string {
	switch {
	case distance >= SwipeHomeDistance:
		return TargetHome
	case distance >= SwipeRecentsDistance:
		return TargetRecents
	default:
		return TargetLastTask
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
