package carousel

import (
	"image/color"
	"math"

	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/tags"
)

// TintMinAlpha 低于等于该 alpha 的着色层被移除
const TintMinAlpha = 5

// TintModule 边缘卡片着色
type TintModule struct{}

func (TintModule) Name() string { return "TintModule" }

func (TintModule) Applicable(s Settings) bool {
	return s.Bool(config.KeyModifyEnable, false) && s.Int(config.KeyTintIntensity, 0) > 0
}

// TintAlpha 计算着色 alpha，量化到 0-255
func TintAlpha(maxPercent int, intensity, factor float64) int {
	maxIntensity := float64(maxPercent) / 100
	alpha := int(math.Trunc(255 * maxIntensity * intensity * factor))
	if alpha < 0 {
		return 0
	}
	if alpha > 255 {
		return 255
	}
	return alpha
}

// TintColor 在设置颜色上替换 alpha
func TintColor(argb int, alpha int) color.NRGBA {
	c := ARGBColor(argb)
	c.A = uint8(alpha)
	return c
}

func (m TintModule) Apply(e *Engine, c Container) {
	intensity := e.state.Intensity()
	if intensity <= 0 {
		return
	}
	argb := e.settings.Int(config.KeyTintColor, config.DefaultTintColor)
	maxPercent := e.settings.Int(config.KeyTintIntensity, 0)

	for _, it := range e.Items(c) {
		alpha := TintAlpha(maxPercent, intensity, Factor(it, c))
		if alpha > TintMinAlpha {
			it.Tags().Set(tags.TagTintEffect, NewTintEffect(TintColor(argb, alpha)))
			e.ComposeAndApply(it)
		} else if it.Tags().Has(tags.TagTintEffect) {
			it.Tags().Clear(tags.TagTintEffect)
			e.ComposeAndApply(it)
		}
	}
}
