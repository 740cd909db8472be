package carousel

import (
	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/tags"
	"github.com/gonewx/carousel/pkg/utils"
)

// AlphaModule 边缘卡片淡出（写入宿主的 stable alpha）
type AlphaModule struct{}

func (AlphaModule) Name() string { return "AlphaModule" }

func (AlphaModule) Applicable(s Settings) bool {
	return s.Bool(config.KeyModifyEnable, false) &&
		s.Float(config.KeyAlpha, config.DefaultAlpha) < 0.99
}

// AlphaOverlay 计算透明度倍率 [0, 1]，与基线相乘
func AlphaOverlay(minAlpha, intensity, factor float64) float64 {
	effectiveMin := 1 - (1-minAlpha)*intensity
	alphaRange := 1 - effectiveMin
	return utils.Clamp01(1 - alphaRange*factor)
}

func (m AlphaModule) Apply(e *Engine, c Container) {
	intensity := e.state.Intensity()
	if intensity <= 0 {
		return
	}
	minAlpha := e.settings.Float(config.KeyAlpha, config.DefaultAlpha)

	for _, it := range e.Items(c) {
		overlay := AlphaOverlay(minAlpha, intensity, Factor(it, c))
		it.Tags().Set(tags.TagOffsetAlpha, overlay)
		base := tags.ValueOr(it.Tags(), tags.TagSysStableAlpha, 1.0)

		item := it
		e.write(m.Name(), "setStableAlpha", func() error {
			return e.setters.SetStableAlpha(item, base*overlay)
		})
	}
}
