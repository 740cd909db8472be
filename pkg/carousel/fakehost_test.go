package carousel

import (
	"errors"

	"github.com/gonewx/carousel/pkg/tags"
)

// fakeView 普通子节点（图标、缩略图等）
type fakeView struct {
	name     string
	children []View

	transX, transY float64
	effect         *Effect
	clip           bool
}

func (v *fakeView) Name() string       { return v.name }
func (v *fakeView) ChildCount() int    { return len(v.children) }
func (v *fakeView) ChildAt(i int) View { return v.children[i] }

// fakeItem 卡片
type fakeItem struct {
	fakeView
	store *tags.Store

	left, right    float64
	scaleX, scaleY float64
	stableAlpha    float64
	nonGridScale   float64
	delegate       TouchDelegate
}

func newFakeItem(name string, left, right float64, children ...View) *fakeItem {
	return &fakeItem{
		fakeView:     fakeView{name: name, children: children, clip: true},
		store:        tags.NewStore(),
		left:         left,
		right:        right,
		scaleX:       1,
		scaleY:       1,
		stableAlpha:  1,
		nonGridScale: 1,
	}
}

func (it *fakeItem) Tags() *tags.Store            { return it.store }
func (it *fakeItem) Left() float64                { return it.left }
func (it *fakeItem) Right() float64               { return it.right }
func (it *fakeItem) TranslationX() float64        { return it.transX }
func (it *fakeItem) ScaleX() float64              { return it.scaleX }
func (it *fakeItem) ScaleY() float64              { return it.scaleY }
func (it *fakeItem) TouchDelegate() TouchDelegate { return it.delegate }

// fakeContainer 可滚动容器
type fakeContainer struct {
	fakeView
	store   *tags.Store
	width   float64
	scrollX float64
	visible bool

	nextID    ListenerID
	listeners map[ListenerID]func() bool

	liveTileSupported bool
	liveTileCalls     []string
}

func newFakeContainer(width float64, items ...View) *fakeContainer {
	return &fakeContainer{
		fakeView:  fakeView{name: "RecentsView", children: items, clip: true},
		store:     tags.NewStore(),
		width:     width,
		visible:   true,
		listeners: make(map[ListenerID]func() bool),
	}
}

func (c *fakeContainer) Tags() *tags.Store { return c.store }
func (c *fakeContainer) Width() float64    { return c.width }
func (c *fakeContainer) ScrollX() float64  { return c.scrollX }
func (c *fakeContainer) Visible() bool     { return c.visible }

func (c *fakeContainer) AddPreDrawListener(fn func() bool) ListenerID {
	c.nextID++
	c.listeners[c.nextID] = fn
	return c.nextID
}

func (c *fakeContainer) RemovePreDrawListener(id ListenerID) {
	delete(c.listeners, id)
}

// frame 模拟宿主绘制一帧
func (c *fakeContainer) frame() {
	for _, fn := range c.listeners {
		fn()
	}
}

// liveTileContainer 支持关闭实时预览的容器
type liveTileContainer struct {
	*fakeContainer
}

func (c liveTileContainer) SwitchToScreenshot(onFinish func()) error {
	c.liveTileCalls = append(c.liveTileCalls, "switchToScreenshot")
	onFinish()
	return nil
}

func (c liveTileContainer) FinishRecentsAnimation() error {
	c.liveTileCalls = append(c.liveTileCalls, "finishRecentsAnimation")
	return nil
}

func (c liveTileContainer) SetEnableDrawingLiveTile(enable bool) error {
	if enable {
		c.liveTileCalls = append(c.liveTileCalls, "enableLiveTile")
	} else {
		c.liveTileCalls = append(c.liveTileCalls, "disableLiveTile")
	}
	return nil
}

// fakeSetters 模拟被钩住的宿主 setter：每次写入先经过拦截器
type fakeSetters struct {
	ic *Interceptor

	failNonGridScale bool
	panicEffect      bool
	writes           int
}

var errVersionMismatch = errors.New("method not found")

func asFake(v View) *fakeView {
	switch t := v.(type) {
	case *fakeItem:
		return &t.fakeView
	case *fakeContainer:
		return &t.fakeView
	case liveTileContainer:
		return &t.fakeView
	case *fakeView:
		return t
	}
	return nil
}

func (s *fakeSetters) SetTranslationX(v View, x float64) error {
	s.writes++
	if it, ok := v.(*fakeItem); ok && s.ic != nil {
		s.ic.BeforeSetTranslationX(it, x)
	}
	asFake(v).transX = x
	return nil
}

func (s *fakeSetters) SetTranslationY(v View, y float64) error {
	s.writes++
	asFake(v).transY = y
	return nil
}

func (s *fakeSetters) SetScale(v View, sx, sy float64) error {
	s.writes++
	if it, ok := v.(*fakeItem); ok {
		it.scaleX, it.scaleY = sx, sy
	}
	return nil
}

func (s *fakeSetters) SetStableAlpha(it Item, alpha float64) error {
	s.writes++
	if s.ic != nil {
		alpha = s.ic.BeforeSetStableAlpha(it, alpha)
	}
	it.(*fakeItem).stableAlpha = alpha
	return nil
}

func (s *fakeSetters) SetNonGridScale(it Item, scale float64) error {
	s.writes++
	if s.failNonGridScale {
		return errVersionMismatch
	}
	if s.ic != nil {
		scale = s.ic.BeforeSetNonGridScale(it, scale)
	}
	it.(*fakeItem).nonGridScale = scale
	return nil
}

func (s *fakeSetters) SetRenderEffect(v View, e *Effect) error {
	s.writes++
	if s.panicEffect {
		panic("render effects unsupported")
	}
	asFake(v).effect = e
	return nil
}

func (s *fakeSetters) SetClipping(v View, clip bool) error {
	s.writes++
	asFake(v).clip = clip
	return nil
}

func (s *fakeSetters) SetTouchDelegate(it Item, d TouchDelegate) error {
	s.writes++
	it.(*fakeItem).delegate = d
	return nil
}

// fakeSettings 内存设置
type fakeSettings map[string]interface{}

func (s fakeSettings) Bool(key string, def bool) bool {
	if v, ok := s[key].(bool); ok {
		return v
	}
	return def
}

func (s fakeSettings) Int(key string, def int) int {
	if v, ok := s[key].(int); ok {
		return v
	}
	return def
}

func (s fakeSettings) Float(key string, def float64) float64 {
	if v, ok := s[key].(float64); ok {
		return v
	}
	return def
}

// newTestEngine 创建带拦截器的测试引擎
func newTestEngine(settings fakeSettings) (*Engine, *fakeSetters) {
	setters := &fakeSetters{}
	e := NewEngine(settings, setters)
	setters.ic = NewInterceptor(e)
	return e, setters
}
