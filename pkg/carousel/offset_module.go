package carousel

import (
	"math"

	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/tags"
)

// SpacingDeadZone 视口中心附近不施加间距位移的范围（像素）
const SpacingDeadZone = 50.0

// OffsetModule 边缘卡片间距：沿远离中心的方向追加平移
type OffsetModule struct{}

func (OffsetModule) Name() string { return "OffsetModule" }

func (OffsetModule) Applicable(s Settings) bool {
	return s.Bool(config.KeyModifyEnable, false) && s.Int(config.KeySpacing, 0) != 0
}

// SpacingOffset 计算一张卡片的额外平移
//
// 有效位移 = 设置值 × 强度（截断为整数像素），方向由卡片位于中心哪一侧决定。
func SpacingOffset(setting int, intensity, factor, itemCenter, viewportCenter float64) float64 {
	if math.Abs(viewportCenter-itemCenter) <= SpacingDeadZone {
		return 0
	}
	offset := math.Trunc(float64(setting) * intensity)
	direction := -1.0
	if itemCenter > viewportCenter {
		direction = 1.0
	}
	return direction * offset * math.Min(factor, 1)
}

func (m OffsetModule) Apply(e *Engine, c Container) {
	intensity := e.state.Intensity()
	if intensity <= 0 {
		return
	}
	setting := e.settings.Int(config.KeySpacing, 0)
	center := ViewportCenter(c)

	for _, it := range e.Items(c) {
		factor := Factor(it, c)
		sys := BaselineTranslationX(it)
		extra := SpacingOffset(setting, intensity, factor, ItemCenter(it), center)

		item := it
		e.write(m.Name(), "setTranslationX", func() error {
			if err := e.setters.SetTranslationX(item, sys+extra); err != nil {
				return err
			}
			item.Tags().Set(tags.TagOffsetTrans, extra)
			return nil
		})
	}
}
