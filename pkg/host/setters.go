package host

import (
	"errors"
	"fmt"

	"github.com/gonewx/carousel/pkg/carousel"
)

// ErrUnsupportedView 视图类型不支持该属性
var ErrUnsupportedView = errors.New("unsupported view")

// Setters 宿主属性 setter
//
// 对卡片的平移、透明度和缩放写入先经过拦截器，与被钩住的真实宿主行为一致：
// 宿主自己的写入被记为基线，并可能被改写为带叠加的值。
type Setters struct {
	interceptor *carousel.Interceptor
}

// NewSetters 创建 setter，拦截器可以之后通过 Bind 设置
func NewSetters() *Setters {
	return &Setters{}
}

// Bind 安装拦截器
func (s *Setters) Bind(ic *carousel.Interceptor) {
	s.interceptor = ic
}

func (s *Setters) SetTranslationX(v carousel.View, x float64) error {
	if t, ok := v.(*TaskView); ok && s.interceptor != nil {
		s.interceptor.BeforeSetTranslationX(t, x)
	}
	n := node(v)
	if n == nil {
		return fmt.Errorf("setTranslationX: %w: %T", ErrUnsupportedView, v)
	}
	n.TransX = x
	return nil
}

func (s *Setters) SetTranslationY(v carousel.View, y float64) error {
	n := node(v)
	if n == nil {
		return fmt.Errorf("setTranslationY: %w: %T", ErrUnsupportedView, v)
	}
	n.TransY = y
	return nil
}

func (s *Setters) SetScale(v carousel.View, sx, sy float64) error {
	t, ok := v.(*TaskView)
	if !ok {
		return fmt.Errorf("setScale: %w: %T", ErrUnsupportedView, v)
	}
	t.scaleX, t.scaleY = sx, sy
	return nil
}

func (s *Setters) SetStableAlpha(it carousel.Item, alpha float64) error {
	t, ok := it.(*TaskView)
	if !ok {
		return fmt.Errorf("setStableAlpha: %w: %T", ErrUnsupportedView, it)
	}
	if s.interceptor != nil {
		alpha = s.interceptor.BeforeSetStableAlpha(t, alpha)
	}
	t.stableAlpha = alpha
	return nil
}

func (s *Setters) SetNonGridScale(it carousel.Item, scale float64) error {
	t, ok := it.(*TaskView)
	if !ok {
		return fmt.Errorf("setNonGridScale: %w: %T", ErrUnsupportedView, it)
	}
	if s.interceptor != nil {
		scale = s.interceptor.BeforeSetNonGridScale(t, scale)
	}
	t.nonGridScale = scale
	return nil
}

func (s *Setters) SetRenderEffect(v carousel.View, e *carousel.Effect) error {
	n := node(v)
	if n == nil {
		return fmt.Errorf("setRenderEffect: %w: %T", ErrUnsupportedView, v)
	}
	n.Effect = e
	return nil
}

func (s *Setters) SetClipping(v carousel.View, clip bool) error {
	n := node(v)
	if n == nil {
		return fmt.Errorf("setClipping: %w: %T", ErrUnsupportedView, v)
	}
	n.Clip = clip
	return nil
}

func (s *Setters) SetTouchDelegate(it carousel.Item, d carousel.TouchDelegate) error {
	t, ok := it.(*TaskView)
	if !ok {
		return fmt.Errorf("setTouchDelegate: %w: %T", ErrUnsupportedView, it)
	}
	t.delegate = d
	return nil
}

var _ carousel.HostSetters = (*Setters)(nil)
