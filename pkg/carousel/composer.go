package carousel

import (
	"github.com/gonewx/carousel/pkg/tags"
)

// Compose 合并模糊层与着色层
//
// 两层都存在时着色先于模糊应用；任意一层可以为 nil。
func Compose(blur, tint *Effect) *Effect {
	switch {
	case blur != nil && tint != nil:
		return NewChainEffect(tint, blur)
	case blur != nil:
		return blur
	case tint != nil:
		return tint
	default:
		return nil
	}
}

// ComposeAndApply 从卡片当前的两个效果层重新计算合成结果并写入一次
//
// 每次都从两层的当前状态重新合成，而不是增量修补，
// 因此任一模块清除自己的层不会影响另一层。
func (e *Engine) ComposeAndApply(it Item) {
	blur, _ := tags.Value[*Effect](it.Tags(), tags.TagBlurEffect)
	tint, _ := tags.Value[*Effect](it.Tags(), tags.TagTintEffect)
	result := Compose(blur, tint)
	e.write("Composer", "setRenderEffect", func() error {
		return e.setters.SetRenderEffect(it, result)
	})
}
