package carousel

import "image/color"

// EffectKind 渲染效果种类
type EffectKind uint8

const (
	EffectBlur EffectKind = iota
	EffectTint
	EffectChain
)

// TileMode 模糊边缘采样方式
type TileMode uint8

const (
	// TileClamp 边缘像素延伸，模糊限制在内容区域内
	TileClamp TileMode = iota
	// TileDecal 边缘外为透明，模糊可以溢出
	TileDecal
)

// Effect 宿主单个"已应用效果"槽位中的值
//
// 着色按 SRC_ATOP 混合：只覆盖不透明像素。
// 链式效果按 Stages 顺序依次应用。
type Effect struct {
	Kind     EffectKind
	Radius   float64
	TileMode TileMode
	Color    color.NRGBA
	Stages   []*Effect
}

// NewBlurEffect 创建模糊效果
func NewBlurEffect(radius float64, mode TileMode) *Effect {
	return &Effect{Kind: EffectBlur, Radius: radius, TileMode: mode}
}

// NewTintEffect 创建着色效果
func NewTintEffect(c color.NRGBA) *Effect {
	return &Effect{Kind: EffectTint, Color: c}
}

// NewChainEffect 创建链式效果，first 先于 second 应用
func NewChainEffect(first, second *Effect) *Effect {
	return &Effect{Kind: EffectChain, Stages: []*Effect{first, second}}
}

// Equal 结构相等比较，nil 只与 nil 相等
func (e *Effect) Equal(o *Effect) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Kind != o.Kind || e.Radius != o.Radius || e.TileMode != o.TileMode || e.Color != o.Color {
		return false
	}
	if len(e.Stages) != len(o.Stages) {
		return false
	}
	for i := range e.Stages {
		if !e.Stages[i].Equal(o.Stages[i]) {
			return false
		}
	}
	return true
}

// ARGBColor 把 0xAARRGGBB 整数转为颜色
func ARGBColor(argb int) color.NRGBA {
	v := uint32(argb)
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(v >> 24),
	}
}
