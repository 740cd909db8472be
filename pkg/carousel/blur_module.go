package carousel

import (
	"math"

	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/tags"
)

// 模糊半径量化
const (
	BlurStep      = 2.0
	BlurMinRadius = 2.0
)

// BlurModule 边缘卡片模糊
//
// 溢出模式把模糊作用于整张卡片并关闭裁剪；
// 包含模式只模糊卡片内的缩略图，找不到缩略图时退回整张卡片。
type BlurModule struct{}

func (BlurModule) Name() string { return "BlurModule" }

func (BlurModule) Applicable(s Settings) bool {
	return s.Bool(config.KeyModifyEnable, false) && s.Int(config.KeyBlurRadius, 0) > 0
}

// BlurRadius 计算量化后的模糊半径，低于最小值时为 0
func BlurRadius(maxBlur, intensity, factor float64) float64 {
	raw := maxBlur * intensity * factor
	if raw < BlurMinRadius {
		return 0
	}
	return math.Floor(raw/BlurStep) * BlurStep
}

func (m BlurModule) Apply(e *Engine, c Container) {
	intensity := e.state.Intensity()
	if intensity <= 0 {
		return
	}
	maxBlur := float64(e.settings.Int(config.KeyBlurRadius, 0))
	overflow := e.settings.Bool(config.KeyBlurOverflow, false)

	for _, it := range e.Items(c) {
		radius := BlurRadius(maxBlur, intensity, Factor(it, c))
		thumb := FindFirst(it, ThumbnailSearchDepth, IsThumbnail)
		if radius > 0 {
			m.applyBlur(e, it, thumb, radius, overflow)
		} else {
			m.clearBlur(e, it, thumb)
		}
	}
}

func (m BlurModule) applyBlur(e *Engine, it Item, thumb View, radius float64, overflow bool) {
	if overflow {
		it.Tags().Set(tags.TagBlurEffect, NewBlurEffect(radius, TileDecal))
		e.ComposeAndApply(it)
		e.disableClipping(m.Name(), it, it.Tags())
		if thumb != nil {
			m.setEffect(e, thumb, nil)
		}
		return
	}

	effect := NewBlurEffect(radius, TileClamp)
	m.setClipping(e, it, true)
	if thumb != nil {
		if it.Tags().Has(tags.TagBlurEffect) {
			it.Tags().Clear(tags.TagBlurEffect)
			e.ComposeAndApply(it)
		}
		m.setEffect(e, thumb, effect)
		m.setClipping(e, thumb, true)
		return
	}
	it.Tags().Set(tags.TagBlurEffect, effect)
	e.ComposeAndApply(it)
}

func (m BlurModule) clearBlur(e *Engine, it Item, thumb View) {
	if it.Tags().Has(tags.TagBlurEffect) {
		it.Tags().Clear(tags.TagBlurEffect)
		e.ComposeAndApply(it)
	}
	if thumb != nil {
		m.setEffect(e, thumb, nil)
	}
}

func (m BlurModule) setEffect(e *Engine, v View, effect *Effect) {
	e.write(m.Name(), "setRenderEffect", func() error {
		return e.setters.SetRenderEffect(v, effect)
	})
}

func (m BlurModule) setClipping(e *Engine, v View, clip bool) {
	e.write(m.Name(), "setClipping", func() error {
		return e.setters.SetClipping(v, clip)
	})
}
