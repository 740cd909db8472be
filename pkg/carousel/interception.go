package carousel

import (
	"image"

	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/tags"
)

// 叠加倍率被视为"无效果"的容差
const overlayEpsilon = 0.01

// Interceptor 宿主 setter 的观察路径
//
// 适配器在宿主调用自己的 setter 之前调用这些方法。
// 重入保护生效时（引擎自己的叠加写入）一律跳过基线记录；
// 否则无条件把宿主的值记为基线。
type Interceptor struct {
	engine *Engine
}

// NewInterceptor 创建拦截器
func NewInterceptor(e *Engine) *Interceptor {
	return &Interceptor{engine: e}
}

// BeforeSetTranslationX 记录宿主的平移基线
func (ic *Interceptor) BeforeSetTranslationX(it Item, value float64) {
	if ic.engine.state.Guarding() {
		return
	}
	it.Tags().Set(tags.TagSysTransX, value)
}

// BeforeSetStableAlpha 记录宿主的透明度基线，并返回宿主实际应写入的值
//
// 轮播激活时把上次的透明度叠加乘到宿主值上，避免宿主在两帧之间把卡片写回不透明。
func (ic *Interceptor) BeforeSetStableAlpha(it Item, value float64) float64 {
	e := ic.engine
	if e.state.Guarding() {
		return value
	}
	it.Tags().Set(tags.TagSysStableAlpha, value)
	if !e.state.Active() || !e.Enabled() {
		return value
	}
	overlay := tags.ValueOr(it.Tags(), tags.TagOffsetAlpha, 1.0)
	if overlay < 1-overlayEpsilon {
		return value * overlay
	}
	return value
}

// BeforeSetNonGridScale 记录宿主的缩放基线，并返回宿主实际应写入的值
//
// 退出动画期间继续保持上次的缩放叠加，卡片不会在启动动画中突然弹回。
func (ic *Interceptor) BeforeSetNonGridScale(it Item, value float64) float64 {
	e := ic.engine
	if e.state.Guarding() {
		return value
	}
	it.Tags().Set(tags.TagSysNonGridScale, value)
	if !e.state.Active() && !e.state.AnimatingExit() {
		return value
	}
	if !e.Enabled() {
		return value
	}
	overlay := tags.ValueOr(it.Tags(), tags.TagOffsetScale, 1.0)
	if overlay < 1-overlayEpsilon || overlay > 1+overlayEpsilon {
		return value * overlay
	}
	return value
}

// AfterCalculateTaskSize 按设置缩放宿主计算出的任务卡片尺寸
func (ic *Interceptor) AfterCalculateTaskSize(rect image.Rectangle) image.Rectangle {
	s := ic.engine.settings
	if !s.Bool(config.KeyModifyEnable, false) || !s.Bool(config.KeyScaleEnable, false) {
		return rect
	}
	percent := s.Int(config.KeyScalePercent, config.DefaultScalePercent)
	if percent == config.DefaultScalePercent {
		return rect
	}
	return ScaleTaskRect(rect, percent)
}
