package carousel

import (
	"math"

	"github.com/gonewx/carousel/pkg/tags"
)

// InfluenceRadiusRatio 影响半径占视口宽度的比例
const InfluenceRadiusRatio = 0.55

// ViewportCenter 返回容器视口中心（容器坐标）
func ViewportCenter(c Container) float64 {
	return c.ScrollX() + c.Width()/2
}

// BaselineTranslationX 返回卡片的宿主基线平移
//
// 没有记录过基线时，用"当前值 - 上次叠加量"推算并缓存为基线。
func BaselineTranslationX(it Item) float64 {
	store := it.Tags()
	if sys, ok := tags.Value[float64](store, tags.TagSysTransX); ok {
		return sys
	}
	lastOffset := tags.ValueOr(store, tags.TagOffsetTrans, 0.0)
	sys := it.TranslationX() - lastOffset
	store.Set(tags.TagSysTransX, sys)
	return sys
}

// ItemCenter 卡片在基线平移下的中心位置
func ItemCenter(it Item) float64 {
	return (it.Left()+it.Right())/2 + BaselineTranslationX(it)
}

// Factor 计算卡片相对视口中心的影响因子 [0, 1]
//
// 中心处为 0，线性增长到影响半径处为 1，超出半径保持 1。
// 视口宽度或半径为 0 时返回 1。
func Factor(it Item, c Container) float64 {
	width := c.Width()
	radius := width * InfluenceRadiusRatio
	if width <= 0 || radius <= 0 {
		return 1
	}
	distance := math.Abs(ViewportCenter(c) - ItemCenter(it))
	return math.Min(distance/radius, 1)
}
