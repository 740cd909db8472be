package carousel

import "image"

// ScaleTaskRect 以中心为基准按百分比缩放任务矩形
// 空矩形原样返回
func ScaleTaskRect(rect image.Rectangle, percent int) image.Rectangle {
	if rect.Empty() {
		return rect
	}
	scale := float64(percent) / 100
	newW := int(float64(rect.Dx()) * scale)
	newH := int(float64(rect.Dy()) * scale)
	cx := (rect.Min.X + rect.Max.X) >> 1
	cy := (rect.Min.Y + rect.Max.Y) >> 1
	return image.Rect(cx-newW/2, cy-newH/2, cx+newW/2, cy+newH/2)
}
