package carousel

import (
	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/tags"
	"github.com/gonewx/carousel/pkg/utils"
)

// ScaleModule 边缘卡片缩放（写入宿主的 non-grid scale）
type ScaleModule struct{}

func (ScaleModule) Name() string { return "ScaleModule" }

func (ScaleModule) Applicable(s Settings) bool {
	if !s.Bool(config.KeyModifyEnable, false) {
		return false
	}
	scale := s.Float(config.KeyScale, config.DefaultScale)
	return scale < 0.99 || scale > 1.01
}

// ScaleOverlay 计算缩放倍率
// 有效缩放从 1 插值到配置值，倍率 = 1 - range × factor
func ScaleOverlay(minScale, intensity, factor float64) float64 {
	effective := utils.Lerp(1, minScale, intensity)
	scaleRange := 1 - effective
	return 1 - scaleRange*factor
}

func (m ScaleModule) Apply(e *Engine, c Container) {
	intensity := e.state.Intensity()
	if intensity <= 0 {
		return
	}
	minScale := e.settings.Float(config.KeyScale, config.DefaultScale)

	for _, it := range e.Items(c) {
		overlay := ScaleOverlay(minScale, intensity, Factor(it, c))
		it.Tags().Set(tags.TagOffsetScale, overlay)
		base := tags.ValueOr(it.Tags(), tags.TagSysNonGridScale, 1.0)

		item := it
		e.write(m.Name(), "setNonGridScale", func() error {
			return e.setters.SetNonGridScale(item, base*overlay)
		})
	}
}
