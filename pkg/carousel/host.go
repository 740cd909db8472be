// Package carousel 实现最近任务轮播的效果引擎
//
// 引擎不拥有任何视图。宿主每帧都会重写卡片的平移、缩放、透明度等属性，
// 引擎通过拦截宿主的 setter 记录"基线"值，再在基线之上写入自己的"叠加"值。
// 所有叠加写入都包在重入保护中，拦截路径在保护期间跳过基线记录，
// 因此引擎自己的写入永远不会被误记为宿主基线。
//
// 数据流（每帧单向）：
//
//	LifecycleController → State.Intensity → 各 Module 读取 State + Factor + Settings
//	  → 写入 tags.Store 与宿主属性 → Composer 合并模糊/着色效果
package carousel

import "github.com/gonewx/carousel/pkg/tags"

// View 宿主视图树中的任意节点
type View interface {
	// Name 返回节点的结构类型名，用于名称启发式匹配（如 "TaskThumbnailView"）
	Name() string
	ChildCount() int
	// ChildAt 返回第 i 个子节点，可能为 nil
	ChildAt(i int) View
}

// TouchDelegate 宿主的点击委托对象，对引擎不透明
type TouchDelegate interface{}

// Item 容器中的一张卡片
type Item interface {
	View
	Tags() *tags.Store

	// 布局几何（容器坐标）
	Left() float64
	Right() float64

	// 当前生效的属性值（可能已被叠加过）
	TranslationX() float64
	ScaleX() float64
	ScaleY() float64
	TouchDelegate() TouchDelegate
}

// ListenerID 每帧回调的注册句柄
type ListenerID int

// Container 宿主拥有的可横向滚动的卡片集合
type Container interface {
	View
	Tags() *tags.Store

	Width() float64
	ScrollX() float64
	Visible() bool

	// AddPreDrawListener 注册每帧绘制前回调
	AddPreDrawListener(fn func() bool) ListenerID
	RemovePreDrawListener(id ListenerID)
}

// HostSetters 调用宿主真实 setter 的能力
//
// 由适配器实现，适配器负责把调用派发到宿主（反射、钩子或直接调用）。
// 返回 error 表示该次写入失败（如宿主版本不匹配），引擎记录日志后跳过。
type HostSetters interface {
	SetTranslationX(v View, x float64) error
	SetTranslationY(v View, y float64) error
	SetScale(v View, sx, sy float64) error
	SetStableAlpha(it Item, alpha float64) error
	SetNonGridScale(it Item, scale float64) error
	SetRenderEffect(v View, e *Effect) error
	SetClipping(v View, clip bool) error
	SetTouchDelegate(it Item, d TouchDelegate) error
}

// LiveTileHost 支持关闭实时预览的宿主（可选能力）
type LiveTileHost interface {
	SwitchToScreenshot(onFinish func()) error
	FinishRecentsAnimation() error
	SetEnableDrawingLiveTile(enable bool) error
}

// Settings 设置读取协作者
// 读取失败或类型不符时必须返回 def
type Settings interface {
	Bool(key string, def bool) bool
	Int(key string, def int) int
	Float(key string, def float64) float64
}
