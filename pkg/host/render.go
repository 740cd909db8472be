package host

import (
	"fmt"
	"image"
	"image/color"
	"math"

	ebimath "github.com/edwinsyarief/ebi-math"
	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// 卡片内部布局
const (
	cardInset      = 10.0
	cardHeaderH    = 34.0
	iconSize       = 28
	blurSampleStep = 3.0
)

var (
	backgroundColor = color.NRGBA{R: 24, G: 26, B: 32, A: 255}
	stripeColor     = color.NRGBA{R: 255, G: 255, B: 255, A: 60}
)

// Renderer 用 ebiten 绘制多任务视图
//
// 卡片的平移、缩放、透明度和渲染效果全部从视图属性读取，
// 渲染器本身不知道轮播引擎的存在。
type Renderer struct {
	pool scratchPool
	icon *ebiten.Image
}

// NewRenderer 创建渲染器
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Draw 绘制完整的多任务视图
func (r *Renderer) Draw(screen *ebiten.Image, view *RecentsView) {
	r.pool.reset()
	screen.Fill(backgroundColor)
	if !view.Visible() {
		return
	}
	center := -1
	if len(view.tasks) > 0 {
		center = nearestTask(view)
	}
	for i, t := range view.tasks {
		r.drawTask(screen, view, t, i == center)
	}
}

func (r *Renderer) drawTask(screen *ebiten.Image, view *RecentsView, t *TaskView, center bool) {
	w, h := int(t.Width()), int(t.Height())
	if w <= 0 || h <= 0 {
		return
	}
	card := r.pool.get(w, h)
	card.Fill(t.Color)

	r.drawThumbnail(card, t)
	ebitenutil.DebugPrintAt(card, t.Title, int(cardInset), int(cardInset))
	if center && view.LiveTile() {
		label := "LIVE"
		if view.Screenshot() {
			label = "SNAPSHOT"
		}
		ebitenutil.DebugPrintAt(card, label, w-60, int(cardInset))
	}

	iconPos := IconPosition(t)
	if t.Clip {
		// 卡片图层按整像素绘制
		r.drawIcon(card, t, ebiten.GeoM{}, iconPos.Round())
	}

	img, pad := r.applyEffect(card, t.Effect)
	geo := CardGeoM(t, view.ScrollX(), pad)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geo
	op.ColorScale.ScaleAlpha(float32(t.StableAlpha()))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)

	// 不裁剪时图标画在卡片之外的一层，可以越过卡片边界
	if !t.Clip {
		r.drawIcon(screen, t, CardGeoM(t, view.ScrollX(), 0), iconPos)
	}
}

func (r *Renderer) drawThumbnail(card *ebiten.Image, t *TaskView) {
	thumbNode := t.Thumbnail()
	w := int(t.Width() - 2*cardInset)
	h := int(t.Height() - cardHeaderH - cardInset)
	if w <= 0 || h <= 0 {
		return
	}
	thumb := r.pool.get(w, h)
	thumb.Fill(thumbNode.Color)
	// 条纹让模糊效果可见
	for y := 0; y < h; y += 24 {
		stripe := thumb.SubImage(image.Rect(0, y, w, y+8)).(*ebiten.Image)
		stripe.Fill(stripeColor)
	}

	img, pad := r.applyEffect(thumb, thumbNode.Effect)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(cardInset-pad, cardHeaderH-pad)
	card.DrawImage(img, op)
}

func (r *Renderer) drawIcon(dst *ebiten.Image, t *TaskView, geo ebiten.GeoM, pos ebimath.Vector) {
	if r.icon == nil {
		r.icon = ebiten.NewImage(iconSize, iconSize)
	}
	r.icon.Fill(t.Icon().Color)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(pos.X, pos.Y)
	op.GeoM.Concat(geo)
	op.ColorScale.ScaleAlpha(float32(t.StableAlpha()))
	dst.DrawImage(r.icon, op)
}

// applyEffect 把渲染效果作用于 src，返回结果图像及其四周扩展的像素
func (r *Renderer) applyEffect(src *ebiten.Image, e *carousel.Effect) (*ebiten.Image, float64) {
	if e == nil {
		return src, 0
	}
	switch e.Kind {
	case carousel.EffectTint:
		b := src.Bounds()
		dst := r.pool.get(b.Dx(), b.Dy())
		colorm.DrawImage(dst, src, TintMatrix(e.Color), &colorm.DrawImageOptions{})
		return dst, 0

	case carousel.EffectBlur:
		return r.blur(src, e)

	case carousel.EffectChain:
		img, pad := src, 0.0
		for _, stage := range e.Stages {
			var p float64
			img, p = r.applyEffect(img, stage)
			pad += p
		}
		return img, pad
	}
	return src, 0
}

// blur 先缩小再放大的近似模糊
func (r *Renderer) blur(src *ebiten.Image, e *carousel.Effect) (*ebiten.Image, float64) {
	if e.Radius <= 0 {
		return src, 0
	}
	pad := EffectPadding(e)
	b := src.Bounds()
	w, h := b.Dx()+2*int(pad), b.Dy()+2*int(pad)

	padded := src
	if pad > 0 {
		padded = r.pool.get(w, h)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(pad, pad)
		padded.DrawImage(src, op)
	}

	k := BlurFactor(e.Radius)
	small := r.pool.get(int(math.Ceil(float64(w)/k)), int(math.Ceil(float64(h)/k)))
	down := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	down.GeoM.Scale(1/k, 1/k)
	small.DrawImage(padded, down)

	out := r.pool.get(w, h)
	up := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	up.GeoM.Scale(k, k)
	out.DrawImage(small, up)
	return out, pad
}

// TintMatrix 把颜色按 alpha 混合到源像素上的颜色矩阵
func TintMatrix(c color.NRGBA) colorm.ColorM {
	a := float64(c.A) / 255
	var cm colorm.ColorM
	cm.Scale(1-a, 1-a, 1-a, 1)
	cm.Translate(float64(c.R)/255*a, float64(c.G)/255*a, float64(c.B)/255*a, 0)
	return cm
}

// BlurFactor 模糊半径对应的缩放倍数
func BlurFactor(radius float64) float64 {
	if radius <= 0 {
		return 1
	}
	return 1 + radius/blurSampleStep
}

// EffectPadding 效果向图像外扩展的像素
// 只有 Decal 模式的模糊会溢出原始边界
func EffectPadding(e *carousel.Effect) float64 {
	if e == nil {
		return 0
	}
	switch e.Kind {
	case carousel.EffectBlur:
		if e.TileMode == carousel.TileDecal && e.Radius > 0 {
			return math.Ceil(e.Radius)
		}
	case carousel.EffectChain:
		var pad float64
		for _, s := range e.Stages {
			pad += EffectPadding(s)
		}
		return pad
	}
	return 0
}

// CardGeoM 卡片的屏幕变换
//
// 以卡片中心为基准应用视图缩放与 non-grid 缩放，再平移到屏幕位置。
// pad 为效果图像四周扩展的像素。
func CardGeoM(t *TaskView, scrollX, pad float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-t.Width()/2-pad, -t.Height()/2-pad)
	g.Scale(t.ScaleX()*t.NonGridScale(), t.ScaleY()*t.NonGridScale())
	cx := (t.Left()+t.Right())/2 + t.TranslationX() - scrollX
	cy := (t.Top() + t.Bottom()) / 2
	g.Translate(cx, cy)
	return g
}

// IconAnchor 图标未位移时在卡片内的左上角（卡片坐标）
func IconAnchor(t *TaskView) ebimath.Vector {
	return ebimath.V(cardInset, t.Height()-cardInset-iconSize)
}

// IconOffset 图标当前的位移
func IconOffset(t *TaskView) ebimath.Vector {
	icon := t.Icon()
	return ebimath.V(icon.TransX, icon.TransY)
}

// IconPosition 图标在卡片内的位置（卡片坐标），包含图标位移
func IconPosition(t *TaskView) ebimath.Vector {
	return IconAnchor(t).Add(IconOffset(t))
}

// nearestTask 最接近视口中心的卡片下标
func nearestTask(view *RecentsView) int {
	center := view.ScrollX() + view.Width()/2
	best, bestDist := 0, math.Inf(1)
	for i, t := range view.tasks {
		d := math.Abs((t.Left()+t.Right())/2 - center)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// DrawHUD 绘制调试信息
func DrawHUD(screen *ebiten.Image, s *Session) {
	state := s.Engine().State()
	msg := fmt.Sprintf("mode: %s  intensity: %.2f  enabled: %v\nscroll: %.0f / %.0f",
		state.Mode(), state.Intensity(), s.Engine().Enabled(), s.View().ScrollX(), s.MaxScroll())
	ebitenutil.DebugPrint(screen, msg)
}

// scratchPool 每帧复用的离屏图像
type scratchPool struct {
	images []*ebiten.Image
	next   int
}

func (p *scratchPool) reset() { p.next = 0 }

func (p *scratchPool) get(w, h int) *ebiten.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	for p.next < len(p.images) {
		img := p.images[p.next]
		p.next++
		if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
			img.Clear()
			return img
		}
	}
	img := ebiten.NewImage(w, h)
	p.images = append(p.images, img)
	p.next = len(p.images)
	return img
}
