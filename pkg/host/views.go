// Package host 提供一个进程内的多任务视图宿主
//
// 宿主拥有卡片集合与布局，每帧自己写入平移、透明度与缩放；
// 轮播引擎只通过 carousel 包定义的接口观察和叠加这些属性。
// 该包同时被演示程序和集成测试使用。
package host

import (
	"image"
	"image/color"

	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/gonewx/carousel/pkg/tags"
)

// 视图名称，效果模块通过名称识别结构
const (
	NameRecentsView    = "RecentsView"
	NameTaskView       = "TaskView"
	NameGroupedTask    = "GroupedTaskView"
	NameThumbnail      = "TaskThumbnailView"
	NameIconChip       = "IconAppChipView"
	NameClearAllButton = "ClearAllButton"
)

// Node 视图树中的普通节点
type Node struct {
	name     string
	children []carousel.View

	TransX, TransY float64
	Effect         *carousel.Effect
	Clip           bool
	Color          color.NRGBA
}

// NewNode 创建节点，新节点默认裁剪子内容
func NewNode(name string, children ...carousel.View) *Node {
	return &Node{name: name, children: children, Clip: true}
}

func (n *Node) Name() string                { return n.name }
func (n *Node) ChildCount() int             { return len(n.children) }
func (n *Node) ChildAt(i int) carousel.View { return n.children[i] }

// AddChild 追加子节点
func (n *Node) AddChild(v carousel.View) {
	n.children = append(n.children, v)
}

// node 返回视图内嵌的 Node
func node(v carousel.View) *Node {
	switch t := v.(type) {
	case *Node:
		return t
	case *TaskView:
		return &t.Node
	case *RecentsView:
		return &t.Node
	}
	return nil
}

// touchSlop 点击区域向外扩展的像素
const touchSlop = 16

// TouchRegion 卡片扩展的点击区域
type TouchRegion struct {
	Rect image.Rectangle
}

// TaskView 一张任务卡片
//
// 子树结构: TaskView -> [TaskThumbnailView, IconAppChipView]
type TaskView struct {
	Node
	store *tags.Store

	Title string
	ID    int

	left, top, right, bottom float64

	scaleX, scaleY float64
	stableAlpha    float64
	nonGridScale   float64
	delegate       carousel.TouchDelegate

	thumbnail *Node
	icon      *Node
}

// NewTaskView 创建任务卡片及其缩略图和图标子节点
func NewTaskView(id int, title string, c color.NRGBA) *TaskView {
	thumb := NewNode(NameThumbnail)
	thumb.Color = shade(c, 0.7)
	icon := NewNode(NameIconChip)
	icon.Color = shade(c, 1.3)

	t := &TaskView{
		Node:         Node{name: NameTaskView, Clip: true, Color: c},
		store:        tags.NewStore(),
		Title:        title,
		ID:           id,
		scaleX:       1,
		scaleY:       1,
		stableAlpha:  1,
		nonGridScale: 1,
		thumbnail:    thumb,
		icon:         icon,
	}
	t.children = []carousel.View{thumb, icon}
	return t
}

// NewGroupedTaskView 创建分屏组合卡片，图标位移不作用于它
func NewGroupedTaskView(id int, title string, c color.NRGBA) *TaskView {
	t := NewTaskView(id, title, c)
	t.name = NameGroupedTask
	return t
}

func (t *TaskView) Tags() *tags.Store                     { return t.store }
func (t *TaskView) Left() float64                         { return t.left }
func (t *TaskView) Right() float64                        { return t.right }
func (t *TaskView) Top() float64                          { return t.top }
func (t *TaskView) Bottom() float64                       { return t.bottom }
func (t *TaskView) TranslationX() float64                 { return t.TransX }
func (t *TaskView) ScaleX() float64                       { return t.scaleX }
func (t *TaskView) ScaleY() float64                       { return t.scaleY }
func (t *TaskView) StableAlpha() float64                  { return t.stableAlpha }
func (t *TaskView) NonGridScale() float64                 { return t.nonGridScale }
func (t *TaskView) TouchDelegate() carousel.TouchDelegate { return t.delegate }
func (t *TaskView) Thumbnail() *Node                      { return t.thumbnail }
func (t *TaskView) Icon() *Node                           { return t.icon }

// Width 布局宽度
func (t *TaskView) Width() float64 { return t.right - t.left }

// Height 布局高度
func (t *TaskView) Height() float64 { return t.bottom - t.top }

// setFrame 由布局设置卡片位置，同时更新扩展点击区域
func (t *TaskView) setFrame(r image.Rectangle) {
	t.left, t.top = float64(r.Min.X), float64(r.Min.Y)
	t.right, t.bottom = float64(r.Max.X), float64(r.Max.Y)
	if tr, ok := t.delegate.(*TouchRegion); ok {
		tr.Rect = r.Inset(-touchSlop)
	} else if t.delegate == nil && !t.store.Has(tags.TagIconOrigDelegate) {
		t.delegate = &TouchRegion{Rect: r.Inset(-touchSlop)}
	}
}

// listener 每帧回调
type listener struct {
	id carousel.ListenerID
	fn func() bool
}

// RecentsView 可横向滚动的多任务视图
type RecentsView struct {
	Node
	store *tags.Store

	width, height float64
	scrollX       float64
	visible       bool

	tasks     []*TaskView
	clearAll  *Node
	listeners []listener
	nextID    carousel.ListenerID

	liveTile          bool
	screenshot        bool
	animationFinished bool

	// OnLiveTileChanged 实时预览开关变化时回调
	OnLiveTileChanged func(enable bool)
}

// NewRecentsView 创建多任务视图，末尾附带"全部清除"按钮
func NewRecentsView(width, height float64) *RecentsView {
	clearAll := NewNode(NameClearAllButton)
	return &RecentsView{
		Node:     Node{name: NameRecentsView, Clip: true, children: []carousel.View{clearAll}},
		store:    tags.NewStore(),
		width:    width,
		height:   height,
		clearAll: clearAll,
	}
}

func (v *RecentsView) Tags() *tags.Store { return v.store }
func (v *RecentsView) Width() float64    { return v.width }
func (v *RecentsView) Height() float64   { return v.height }
func (v *RecentsView) ScrollX() float64  { return v.scrollX }
func (v *RecentsView) Visible() bool     { return v.visible }

// Tasks 卡片列表（按布局顺序）
func (v *RecentsView) Tasks() []*TaskView { return v.tasks }

// AddTask 追加卡片，"全部清除"按钮保持在最后
func (v *RecentsView) AddTask(t *TaskView) {
	v.tasks = append(v.tasks, t)
	v.children = make([]carousel.View, 0, len(v.tasks)+1)
	for _, task := range v.tasks {
		v.children = append(v.children, task)
	}
	v.children = append(v.children, v.clearAll)
}

// Resize 视口尺寸变化
func (v *RecentsView) Resize(width, height float64) {
	v.width, v.height = width, height
}

// SetScrollX 设置滚动位置，限制在 [0, maxScroll]
func (v *RecentsView) SetScrollX(x float64, maxScroll float64) {
	if x < 0 {
		x = 0
	}
	if x > maxScroll {
		x = maxScroll
	}
	v.scrollX = x
}

// AddPreDrawListener 注册每帧回调
func (v *RecentsView) AddPreDrawListener(fn func() bool) carousel.ListenerID {
	v.nextID++
	v.listeners = append(v.listeners, listener{id: v.nextID, fn: fn})
	return v.nextID
}

// RemovePreDrawListener 移除每帧回调
func (v *RecentsView) RemovePreDrawListener(id carousel.ListenerID) {
	for i, l := range v.listeners {
		if l.id == id {
			v.listeners = append(v.listeners[:i], v.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount 已注册的每帧回调数量
func (v *RecentsView) ListenerCount() int { return len(v.listeners) }

// DispatchPreDraw 按注册顺序调用每帧回调，任一回调返回 false 表示本帧取消绘制
func (v *RecentsView) DispatchPreDraw() bool {
	proceed := true
	for _, l := range append([]listener(nil), v.listeners...) {
		if !l.fn() {
			proceed = false
		}
	}
	return proceed
}

// SwitchToScreenshot 把实时预览替换为截图，完成后调用 onFinish
func (v *RecentsView) SwitchToScreenshot(onFinish func()) error {
	v.screenshot = true
	if onFinish != nil {
		onFinish()
	}
	return nil
}

// FinishRecentsAnimation 结束进入多任务的过渡动画
func (v *RecentsView) FinishRecentsAnimation() error {
	v.animationFinished = true
	return nil
}

// SetEnableDrawingLiveTile 开关实时预览
func (v *RecentsView) SetEnableDrawingLiveTile(enable bool) error {
	if v.liveTile == enable {
		return nil
	}
	v.liveTile = enable
	if enable {
		v.screenshot = false
	}
	if v.OnLiveTileChanged != nil {
		v.OnLiveTileChanged(enable)
	}
	return nil
}

// LiveTile 是否正在绘制实时预览
func (v *RecentsView) LiveTile() bool { return v.liveTile }

// Screenshot 实时预览是否已被截图替换
func (v *RecentsView) Screenshot() bool { return v.screenshot }

// shade 按系数调整颜色亮度
func shade(c color.NRGBA, k float64) color.NRGBA {
	ch := func(v uint8) uint8 {
		f := float64(v) * k
		if f > 255 {
			f = 255
		}
		return uint8(f)
	}
	return color.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

var (
	_ carousel.Container    = (*RecentsView)(nil)
	_ carousel.LiveTileHost = (*RecentsView)(nil)
	_ carousel.Item         = (*TaskView)(nil)
)
