package carousel

import (
	"github.com/gonewx/carousel/pkg/tags"
)

const resetModule = "CarouselReset"

// ResetItems 清除容器内所有卡片的叠加并恢复基线
//
// 幂等：没有叠加过的卡片上只会写入与当前相同的值。
func (e *Engine) ResetItems(c Container) {
	n := c.ChildCount()
	if n == 0 {
		return
	}
	e.state.Guarded(func() {
		for i := 0; i < n; i++ {
			it, ok := c.ChildAt(i).(Item)
			if !ok {
				continue
			}
			e.ResetItem(it)
		}
		e.restoreClipping(resetModule, c, c.Tags())
	})
}

// ResetItem 恢复单张卡片
func (e *Engine) ResetItem(it Item) {
	store := it.Tags()

	// 平移：只在叠加过时恢复到基线
	if store.Has(tags.TagOffsetTrans) {
		sys := tags.ValueOr(store, tags.TagSysTransX, 0.0)
		e.write(resetModule, "setTranslationX", func() error {
			return e.setters.SetTranslationX(it, sys)
		})
		store.Clear(tags.TagOffsetTrans)
	}

	// 视图缩放：无条件回到 (1, 1)
	if it.ScaleX() != 1 || it.ScaleY() != 1 {
		e.write(resetModule, "setScale", func() error {
			return e.setters.SetScale(it, 1, 1)
		})
	}

	// 透明度与 non-grid scale 必须经过宿主 setter，宿主依赖它更新内部派生状态
	store.Clear(tags.TagOffsetAlpha)
	if base, ok := tags.Value[float64](store, tags.TagSysStableAlpha); ok {
		e.write(resetModule, "setStableAlpha", func() error {
			return e.setters.SetStableAlpha(it, base)
		})
	}

	store.Clear(tags.TagOffsetScale)
	if base, ok := tags.Value[float64](store, tags.TagSysNonGridScale); ok {
		e.write(resetModule, "setNonGridScale", func() error {
			return e.setters.SetNonGridScale(it, base)
		})
	}

	// 效果层
	store.Clear(tags.TagBlurEffect)
	store.Clear(tags.TagTintEffect)
	e.ComposeAndApply(it)
	for _, thumb := range FindAll(it, ThumbnailSearchDepth, IsThumbnail) {
		v := thumb
		e.write(resetModule, "setRenderEffect", func() error {
			return e.setters.SetRenderEffect(v, nil)
		})
	}

	// 图标
	for _, icon := range FindAll(it, IconSearchDepth, IsIcon) {
		v := icon
		e.write(resetModule, "setIconTranslation", func() error {
			if err := e.setters.SetTranslationX(v, 0); err != nil {
				return err
			}
			return e.setters.SetTranslationY(v, 0)
		})
	}
	restoreTouchDelegate(e, resetModule, it)
	e.restoreClipping(resetModule, it, store)
}

// disableClipping 关闭裁剪并在 store 上留下标记
func (e *Engine) disableClipping(module string, v View, store *tags.Store) {
	e.write(module, "setClipping", func() error {
		if err := e.setters.SetClipping(v, false); err != nil {
			return err
		}
		store.Set(tags.TagClipDisabled, true)
		return nil
	})
}

// restoreClipping 只恢复本引擎关闭过的裁剪
func (e *Engine) restoreClipping(module string, v View, store *tags.Store) {
	if !store.Has(tags.TagClipDisabled) {
		return
	}
	e.write(module, "setClipping", func() error {
		if err := e.setters.SetClipping(v, true); err != nil {
			return err
		}
		store.Clear(tags.TagClipDisabled)
		return nil
	})
}
