package carousel

import (
	"image/color"
	"testing"

	"github.com/gonewx/carousel/pkg/tags"
)

func TestCompose(t *testing.T) {
	blur := NewBlurEffect(8, TileClamp)
	tint := NewTintEffect(color.NRGBA{A: 120})

	if got := Compose(nil, nil); got != nil {
		t.Errorf("Compose(nil, nil) = %v, want nil", got)
	}
	if got := Compose(blur, nil); got != blur {
		t.Error("Compose(blur, nil) should be blur")
	}
	if got := Compose(nil, tint); got != tint {
		t.Error("Compose(nil, tint) should be tint")
	}

	chained := Compose(blur, tint)
	if chained.Kind != EffectChain || len(chained.Stages) != 2 {
		t.Fatalf("Compose(blur, tint) = %+v, want 2-stage chain", chained)
	}
	if chained.Stages[0] != tint || chained.Stages[1] != blur {
		t.Error("tint must be applied before blur")
	}
}

// TestComposeAndApply_Symmetry 清除着色层后结果与从未设置着色相同；设置顺序不影响结果
func TestComposeAndApply_Symmetry(t *testing.T) {
	e, _ := newTestEngine(fakeSettings{})

	onlyBlur := newFakeItem("TaskView", 0, 100)
	onlyBlur.Tags().Set(tags.TagBlurEffect, NewBlurEffect(6, TileDecal))
	e.ComposeAndApply(onlyBlur)

	cleared := newFakeItem("TaskView", 0, 100)
	cleared.Tags().Set(tags.TagBlurEffect, NewBlurEffect(6, TileDecal))
	cleared.Tags().Set(tags.TagTintEffect, NewTintEffect(color.NRGBA{R: 10, A: 90}))
	e.ComposeAndApply(cleared)
	cleared.Tags().Clear(tags.TagTintEffect)
	e.ComposeAndApply(cleared)

	if !cleared.effect.Equal(onlyBlur.effect) {
		t.Errorf("after clearing tint effect = %+v, want %+v", cleared.effect, onlyBlur.effect)
	}

	tintFirst := newFakeItem("TaskView", 0, 100)
	tintFirst.Tags().Set(tags.TagTintEffect, NewTintEffect(color.NRGBA{G: 30, A: 200}))
	e.ComposeAndApply(tintFirst)
	tintFirst.Tags().Set(tags.TagBlurEffect, NewBlurEffect(4, TileClamp))
	e.ComposeAndApply(tintFirst)

	blurFirst := newFakeItem("TaskView", 0, 100)
	blurFirst.Tags().Set(tags.TagBlurEffect, NewBlurEffect(4, TileClamp))
	e.ComposeAndApply(blurFirst)
	blurFirst.Tags().Set(tags.TagTintEffect, NewTintEffect(color.NRGBA{G: 30, A: 200}))
	e.ComposeAndApply(blurFirst)

	if !tintFirst.effect.Equal(blurFirst.effect) {
		t.Error("composition must not depend on the order layers were set")
	}
}

// TestComposeAndApply_SetterPanic 宿主 setter panic 时被捕获，保护被释放
func TestComposeAndApply_SetterPanic(t *testing.T) {
	e, setters := newTestEngine(fakeSettings{})
	setters.panicEffect = true

	it := newFakeItem("TaskView", 0, 100)
	it.Tags().Set(tags.TagBlurEffect, NewBlurEffect(4, TileClamp))
	e.ComposeAndApply(it)

	if e.State().Guarding() {
		t.Error("guard stuck after setter panic")
	}
	if it.effect != nil {
		t.Error("failed write should leave effect untouched")
	}
}

func TestEffectEqual(t *testing.T) {
	a := NewChainEffect(NewTintEffect(color.NRGBA{A: 1}), NewBlurEffect(2, TileClamp))
	b := NewChainEffect(NewTintEffect(color.NRGBA{A: 1}), NewBlurEffect(2, TileClamp))
	c := NewChainEffect(NewTintEffect(color.NRGBA{A: 1}), NewBlurEffect(4, TileClamp))

	if !a.Equal(b) {
		t.Error("structurally equal chains should be Equal")
	}
	if a.Equal(c) {
		t.Error("different radius should not be Equal")
	}
	var nilEffect *Effect
	if !nilEffect.Equal(nil) || a.Equal(nil) {
		t.Error("nil handling incorrect")
	}
}

func TestARGBColor(t *testing.T) {
	got := ARGBColor(0x80FF2010)
	want := color.NRGBA{R: 0xFF, G: 0x20, B: 0x10, A: 0x80}
	if got != want {
		t.Errorf("ARGBColor = %+v, want %+v", got, want)
	}
}
