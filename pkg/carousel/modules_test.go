package carousel

import (
	"image/color"
	"math"
	"testing"

	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/tags"
)

// activate 把引擎置于满强度激活状态
func activate(e *Engine, intensity float64) {
	e.State().setActive(true)
	e.State().SetIntensity(intensity)
}

func TestScaleOverlay_Scenario(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		want   float64
	}{
		{"中心", 0, 1},
		{"距离450", 450.0 / 550.0, 0.836},
		{"距离500", 500.0 / 550.0, 0.818},
		{"半径外", 1, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleOverlay(0.8, 1, tt.factor)
			if !approxEqual(got, tt.want, 0.001) {
				t.Errorf("ScaleOverlay(0.8, 1, %.3f) = %.4f, want %.3f", tt.factor, got, tt.want)
			}
		})
	}
}

// TestScaleModule_Scenario 宽度 1000 的视口中两张边缘卡片
func TestScaleModule_Scenario(t *testing.T) {
	e, _ := newTestEngine(fakeSettings{
		config.KeyModifyEnable: true,
		config.KeyScale:        0.8,
	})
	a := newFakeItem("TaskView", 900, 1000)  // 中心 950
	b := newFakeItem("TaskView", 950, 1050)  // 中心 1000
	mid := newFakeItem("TaskView", 450, 550) // 中心 500
	c := newFakeContainer(1000, a, b, mid)
	activate(e, 1)

	e.ApplyModules(c)

	if !approxEqual(a.nonGridScale, 0.836, 0.001) {
		t.Errorf("item at 950 scale = %.4f, want 0.836", a.nonGridScale)
	}
	if !approxEqual(b.nonGridScale, 0.818, 0.001) {
		t.Errorf("item at 1000 scale = %.4f, want 0.818", b.nonGridScale)
	}
	if mid.nonGridScale != 1 {
		t.Errorf("centered item scale = %.4f, want 1", mid.nonGridScale)
	}
	// 叠加写入不能被记成基线
	if tags.ValueOr(a.Tags(), tags.TagSysNonGridScale, 1.0) != 1 {
		t.Error("overlay write leaked into baseline")
	}
}

func TestApplicable(t *testing.T) {
	tests := []struct {
		name     string
		module   Module
		settings fakeSettings
		want     bool
	}{
		{"总开关关闭", OffsetModule{}, fakeSettings{config.KeySpacing: 40}, false},
		{"间距非零", OffsetModule{}, fakeSettings{config.KeyModifyEnable: true, config.KeySpacing: -40}, true},
		{"间距为零", OffsetModule{}, fakeSettings{config.KeyModifyEnable: true}, false},
		{"缩放接近1", ScaleModule{}, fakeSettings{config.KeyModifyEnable: true, config.KeyScale: 1.005}, false},
		{"缩放放大", ScaleModule{}, fakeSettings{config.KeyModifyEnable: true, config.KeyScale: 1.2}, true},
		{"缩放缩小", ScaleModule{}, fakeSettings{config.KeyModifyEnable: true, config.KeyScale: 0.9}, true},
		{"透明度默认", AlphaModule{}, fakeSettings{config.KeyModifyEnable: true}, false},
		{"透明度降低", AlphaModule{}, fakeSettings{config.KeyModifyEnable: true, config.KeyAlpha: 0.5}, true},
		{"模糊", BlurModule{}, fakeSettings{config.KeyModifyEnable: true, config.KeyBlurRadius: 10}, true},
		{"着色为零", TintModule{}, fakeSettings{config.KeyModifyEnable: true}, false},
		{"着色", TintModule{}, fakeSettings{config.KeyModifyEnable: true, config.KeyTintIntensity: 30}, true},
		{"图标Y", IconOffsetModule{}, fakeSettings{config.KeyModifyEnable: true, config.KeyIconOffsetY: -12}, true},
		{"图标为零", IconOffsetModule{}, fakeSettings{config.KeyModifyEnable: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.module.Applicable(tt.settings); got != tt.want {
				t.Errorf("%s.Applicable() = %v, want %v", tt.module.Name(), got, tt.want)
			}
		})
	}
}

func TestSpacingOffset(t *testing.T) {
	tests := []struct {
		name       string
		setting    int
		intensity  float64
		factor     float64
		itemCenter float64
		want       float64
	}{
		{"死区内", 40, 1, 0.05, 530, 0},
		{"死区边界", 40, 1, 0.09, 550, 0},
		{"右侧", 40, 1, 0.5, 800, 20},
		{"左侧", 40, 1, 0.5, 200, -20},
		{"强度截断", 30, 0.5, 1, 1200, 15},
		{"截断为整数", 25, 0.5, 1, 1200, 12},
		{"负设置值向内", -40, 1, 1, 1200, -40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SpacingOffset(tt.setting, tt.intensity, tt.factor, tt.itemCenter, 500)
			if !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("SpacingOffset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOffsetModule_UsesBaseline(t *testing.T) {
	e, setters := newTestEngine(fakeSettings{
		config.KeyModifyEnable: true,
		config.KeySpacing:      40,
	})
	it := newFakeItem("TaskView", 900, 1000)
	c := newFakeContainer(1000, it)
	activate(e, 1)

	// 宿主布局写入基线
	if err := setters.SetTranslationX(it, 10); err != nil {
		t.Fatal(err)
	}
	e.ApplyModules(c)
	first := it.transX

	// 再来一帧，叠加不累积
	e.ApplyModules(c)
	if it.transX != first {
		t.Errorf("translation drifted between frames: %v -> %v", first, it.transX)
	}
	if got := tags.ValueOr(it.Tags(), tags.TagSysTransX, 0.0); got != 10 {
		t.Errorf("baseline = %v, want 10", got)
	}
	extra := tags.ValueOr(it.Tags(), tags.TagOffsetTrans, 0.0)
	if extra <= 0 || first != 10+extra {
		t.Errorf("translation = %v, extra = %v", first, extra)
	}
}

func TestAlphaOverlay(t *testing.T) {
	tests := []struct {
		name      string
		minAlpha  float64
		intensity float64
		factor    float64
		want      float64
	}{
		{"中心不透明", 0.4, 1, 0, 1},
		{"边缘", 0.4, 1, 1, 0.4},
		{"半强度", 0.4, 0.5, 1, 0.7},
		{"负配置被截断", -1, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AlphaOverlay(tt.minAlpha, tt.intensity, tt.factor)
			if !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("AlphaOverlay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlurRadius(t *testing.T) {
	tests := []struct {
		name   string
		max    float64
		factor float64
		want   float64
	}{
		{"低于最小值", 10, 0.15, 0},
		{"恰好最小值", 10, 0.2, 2},
		{"向下量化", 10, 0.75, 6},
		{"最大", 10, 1, 10},
		{"奇数最大值", 9, 1, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlurRadius(tt.max, 1, tt.factor)
			if got != tt.want {
				t.Errorf("BlurRadius(%v, 1, %v) = %v, want %v", tt.max, tt.factor, got, tt.want)
			}
			if math.Mod(got, BlurStep) != 0 {
				t.Errorf("radius %v not quantized", got)
			}
		})
	}
}

func TestBlurModule_Overflow(t *testing.T) {
	e, _ := newTestEngine(fakeSettings{
		config.KeyModifyEnable: true,
		config.KeyBlurRadius:   10,
		config.KeyBlurOverflow: true,
	})
	thumb := &fakeView{name: "TaskThumbnailView", effect: NewBlurEffect(4, TileClamp)}
	it := newFakeItem("TaskView", 1100, 1200, thumb)
	c := newFakeContainer(1000, it)
	activate(e, 1)

	e.ApplyModules(c)

	want := NewBlurEffect(10, TileDecal)
	if !it.effect.Equal(want) {
		t.Errorf("item effect = %+v, want %+v", it.effect, want)
	}
	if it.clip {
		t.Error("overflow blur must disable item clipping")
	}
	if thumb.effect != nil {
		t.Error("thumbnail effect should be cleared in overflow mode")
	}
}

func TestBlurModule_Contained(t *testing.T) {
	e, _ := newTestEngine(fakeSettings{
		config.KeyModifyEnable: true,
		config.KeyBlurRadius:   10,
	})
	thumb := &fakeView{name: "TaskThumbnailView"}
	withThumb := newFakeItem("TaskView", 1100, 1200, &fakeView{name: "FrameLayout", children: []View{thumb}})
	// 之前处于溢出模式留下的整卡模糊
	withThumb.Tags().Set(tags.TagBlurEffect, NewBlurEffect(10, TileDecal))
	bare := newFakeItem("TaskView", -300, -200)
	c := newFakeContainer(1000, withThumb, bare)
	activate(e, 1)

	e.ApplyModules(c)

	if !thumb.effect.Equal(NewBlurEffect(10, TileClamp)) {
		t.Errorf("thumbnail effect = %+v, want clamp blur 10", thumb.effect)
	}
	if withThumb.Tags().Has(tags.TagBlurEffect) || withThumb.effect != nil {
		t.Error("item-level blur should be removed when thumbnail is blurred")
	}
	if !thumb.clip || !withThumb.clip {
		t.Error("contained blur must keep clipping")
	}
	if !bare.effect.Equal(NewBlurEffect(10, TileClamp)) {
		t.Errorf("item without thumbnail effect = %+v, want clamp blur on item", bare.effect)
	}
}

func TestBlurModule_ClearsBelowMinimum(t *testing.T) {
	e, _ := newTestEngine(fakeSettings{
		config.KeyModifyEnable: true,
		config.KeyBlurRadius:   10,
	})
	it := newFakeItem("TaskView", 450, 550)
	it.Tags().Set(tags.TagBlurEffect, NewBlurEffect(6, TileClamp))
	it.effect = NewBlurEffect(6, TileClamp)
	c := newFakeContainer(1000, it)
	activate(e, 1)

	e.ApplyModules(c)

	if it.Tags().Has(tags.TagBlurEffect) || it.effect != nil {
		t.Error("centered item should have no blur")
	}
}

func TestTintAlpha(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		factor  float64
		want    int
	}{
		{"满", 100, 1, 255},
		{"一半", 50, 1, 127},
		{"截断", 30, 0.5, 38},
		{"超出被截断", 200, 1, 255},
		{"负值", -10, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TintAlpha(tt.percent, 1, tt.factor); got != tt.want {
				t.Errorf("TintAlpha() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTintModule_ComposesWithBlur(t *testing.T) {
	e, _ := newTestEngine(fakeSettings{
		config.KeyModifyEnable:  true,
		config.KeyTintIntensity: 40,
		config.KeyTintColor:     int(0xFF102030),
	})
	it := newFakeItem("TaskView", 1100, 1200)
	blur := NewBlurEffect(8, TileDecal)
	it.Tags().Set(tags.TagBlurEffect, blur)
	c := newFakeContainer(1000, it)
	activate(e, 1)

	e.ApplyModules(c)

	tint := NewTintEffect(color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 102})
	want := NewChainEffect(tint, blur)
	if !it.effect.Equal(want) {
		t.Errorf("item effect = %+v, want %+v", it.effect, want)
	}

	// 强度降到着色阈值以下，着色层被移除，模糊层保留
	e.State().SetIntensity(0.04)
	e.ApplyModules(c)
	if it.Tags().Has(tags.TagTintEffect) {
		t.Error("tint layer should be cleared at alpha <= 5")
	}
	if !it.effect.Equal(blur) {
		t.Errorf("item effect = %+v, want blur only", it.effect)
	}
}

func TestIconOffsetModule_TouchDelegate(t *testing.T) {
	settings := fakeSettings{
		config.KeyModifyEnable: true,
		config.KeyIconOffsetX:  20,
		config.KeyIconOffsetY:  -10,
	}
	e, _ := newTestEngine(settings)
	icon := &fakeView{name: "IconView"}
	it := newFakeItem("TaskView", 450, 550, icon)
	it.delegate = "expand-touch"
	grouped := newFakeItem("GroupedTaskView", 0, 100, &fakeView{name: "IconView"})
	c := newFakeContainer(1000, it, grouped)
	activate(e, 0.5)

	e.ApplyModules(c)

	if icon.transX != 10 || icon.transY != -5 {
		t.Errorf("icon translation = (%v, %v), want (10, -5)", icon.transX, icon.transY)
	}
	if it.delegate != nil {
		t.Error("touch delegate should be cleared while icon is displaced")
	}
	if it.clip || c.clip {
		t.Error("clipping should be disabled on item and container")
	}
	if got := grouped.children[0].(*fakeView); got.transX != 0 {
		t.Error("grouped items must be skipped")
	}

	// 第二帧不能用 nil 覆盖已保存的委托
	e.ApplyModules(c)
	if got := tags.ValueOr[TouchDelegate](it.Tags(), tags.TagIconOrigDelegate, nil); got != "expand-touch" {
		t.Errorf("saved delegate = %v, want expand-touch", got)
	}

	settings[config.KeyIconOffsetX] = 0
	settings[config.KeyIconOffsetY] = 0
	// 直接调用模块：设置归零后 Applicable 为 false
	IconOffsetModule{}.Apply(e, c)
	if it.delegate != "expand-touch" {
		t.Errorf("delegate = %v, want restored", it.delegate)
	}
	if it.Tags().Has(tags.TagIconOrigDelegate) {
		t.Error("saved delegate tag should be cleared after restore")
	}
}

func TestApplyModules_ExcludedAndInactive(t *testing.T) {
	e, setters := newTestEngine(fakeSettings{
		config.KeyModifyEnable: true,
		config.KeyScale:        0.8,
	})
	clearAll := newFakeItem("ClearAllButton", 1100, 1200)
	c := newFakeContainer(1000, clearAll)

	e.ApplyModules(c)
	if setters.writes != 0 {
		t.Errorf("inactive engine wrote %d times", setters.writes)
	}

	activate(e, 1)
	e.ApplyModules(c)
	if clearAll.nonGridScale != 1 {
		t.Error("excluded item must not be touched")
	}
}

// TestWriteFailureIsolated 一次写入失败（错误或 panic）不影响其余写入，保护也不会卡住
func TestWriteFailureIsolated(t *testing.T) {
	e, setters := newTestEngine(fakeSettings{
		config.KeyModifyEnable:  true,
		config.KeyScale:         0.8,
		config.KeyAlpha:         0.5,
		config.KeyTintIntensity: 50,
	})
	setters.failNonGridScale = true
	setters.panicEffect = true
	it := newFakeItem("TaskView", 1100, 1200)
	c := newFakeContainer(1000, it)
	activate(e, 1)

	e.ApplyModules(c)

	if e.State().Guarding() {
		t.Fatal("guard stuck after failed writes")
	}
	if !approxEqual(it.stableAlpha, 0.5, 1e-9) {
		t.Errorf("stable alpha = %v, want 0.5 despite other failures", it.stableAlpha)
	}
	if it.nonGridScale != 1 {
		t.Error("failed write should not change the property")
	}

	// 保护释放后，宿主写入重新记录基线
	setters.failNonGridScale = false
	if err := setters.SetStableAlpha(it, 0.9); err != nil {
		t.Fatal(err)
	}
	if got := tags.ValueOr(it.Tags(), tags.TagSysStableAlpha, 0.0); got != 0.9 {
		t.Errorf("baseline = %v, want 0.9", got)
	}
}
