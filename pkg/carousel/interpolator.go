package carousel

import (
	"sync/atomic"
	"time"

	"github.com/gonewx/carousel/pkg/utils"
)

// EntryDuration 入场动画时长
const EntryDuration = 250 * time.Millisecond

// Interpolator 基于时间的强度插值器
//
// 由每帧回调采样；Cancel 可以从任意路径调用。
type Interpolator struct {
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
	easing   utils.EasingFunc

	canceled atomic.Bool
	finished atomic.Bool
}

// NewInterpolator 创建从 from 到 to 的插值器
func NewInterpolator(from, to float64, start time.Time, duration time.Duration, easing utils.EasingFunc) *Interpolator {
	if easing == nil {
		easing = utils.EaseLinear
	}
	return &Interpolator{
		from:     utils.Clamp01(from),
		to:       utils.Clamp01(to),
		start:    start,
		duration: duration,
		easing:   easing,
	}
}

// Sample 返回 now 时刻的值
// 第二个返回值为 false 表示插值器已结束或已取消
func (it *Interpolator) Sample(now time.Time) (float64, bool) {
	if it.canceled.Load() {
		return 0, false
	}
	progress := 1.0
	if it.duration > 0 {
		progress = float64(now.Sub(it.start)) / float64(it.duration)
	}
	if progress >= 1 {
		it.finished.Store(true)
		return it.to, false
	}
	return utils.Lerp(it.from, it.to, it.easing(progress)), true
}

// Cancel 停止插值器，之后 Sample 不再产生值
func (it *Interpolator) Cancel() {
	it.canceled.Store(true)
}

// Canceled 是否已被取消
func (it *Interpolator) Canceled() bool {
	return it.canceled.Load()
}

// Running 既未结束也未取消
func (it *Interpolator) Running() bool {
	return !it.canceled.Load() && !it.finished.Load()
}
