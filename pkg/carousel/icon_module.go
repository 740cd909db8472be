package carousel

import (
	"strings"

	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/tags"
)

// IconOffsetModule 卡片内图标/标题芯片的整体位移
//
// 位移与影响因子无关，只随强度变化。位移非零时卡片自身的点击委托会
// 把点击错误地路由到图标原来的位置，因此暂时移除并保存，归零后恢复。
type IconOffsetModule struct{}

func (IconOffsetModule) Name() string { return "IconOffsetModule" }

func (IconOffsetModule) Applicable(s Settings) bool {
	if !s.Bool(config.KeyModifyEnable, false) {
		return false
	}
	return s.Int(config.KeyIconOffsetX, 0) != 0 || s.Int(config.KeyIconOffsetY, 0) != 0
}

// IconOffset 计算图标位移
func IconOffset(x, y int, intensity float64) (float64, float64) {
	return float64(x) * intensity, float64(y) * intensity
}

func (m IconOffsetModule) Apply(e *Engine, c Container) {
	x, y := IconOffset(
		e.settings.Int(config.KeyIconOffsetX, 0),
		e.settings.Int(config.KeyIconOffsetY, 0),
		e.state.Intensity(),
	)
	for _, it := range e.Items(c) {
		if it.ChildCount() == 0 {
			continue
		}
		if strings.Contains(it.Name(), "Grouped") {
			continue
		}
		m.applyToItem(e, c, it, x, y)
	}
}

func (m IconOffsetModule) applyToItem(e *Engine, c Container, it Item, x, y float64) {
	for _, icon := range FindAll(it, IconSearchDepth, IsIcon) {
		v := icon
		e.write(m.Name(), "setIconTranslation", func() error {
			if err := e.setters.SetTranslationX(v, x); err != nil {
				return err
			}
			return e.setters.SetTranslationY(v, y)
		})
	}

	store := it.Tags()
	if x != 0 || y != 0 {
		e.disableClipping(m.Name(), it, it.Tags())
		e.disableClipping(m.Name(), c, c.Tags())
		if d := it.TouchDelegate(); d != nil && !store.Has(tags.TagIconOrigDelegate) {
			store.Set(tags.TagIconOrigDelegate, d)
			e.write(m.Name(), "setTouchDelegate", func() error {
				return e.setters.SetTouchDelegate(it, nil)
			})
		}
		return
	}
	restoreTouchDelegate(e, m.Name(), it)
}

// restoreTouchDelegate 恢复被暂存的点击委托
func restoreTouchDelegate(e *Engine, module string, it Item) {
	store := it.Tags()
	orig, ok := store.Get(tags.TagIconOrigDelegate)
	if !ok {
		return
	}
	e.write(module, "setTouchDelegate", func() error {
		if err := e.setters.SetTouchDelegate(it, orig); err != nil {
			return err
		}
		store.Clear(tags.TagIconOrigDelegate)
		return nil
	})
}
