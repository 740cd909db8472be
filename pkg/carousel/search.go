package carousel

import "strings"

// 结构搜索深度上限
const (
	ThumbnailSearchDepth = 3
	IconSearchDepth      = 6
)

// FindFirst 在 root 的后代中做深度受限的广度优先搜索，返回第一个匹配节点
//
// root 自身深度为 0，不参与匹配；只检查深度 <= maxDepth 的节点。
// 未找到返回 nil，这是正常结果。
func FindFirst(root View, maxDepth int, match func(View) bool) View {
	if root == nil {
		return nil
	}
	level := children(root)
	for depth := 1; depth <= maxDepth && len(level) > 0; depth++ {
		var next []View
		for _, v := range level {
			if match(v) {
				return v
			}
			next = append(next, children(v)...)
		}
		level = next
	}
	return nil
}

// FindAll 返回 root 后代中所有匹配的节点（广度优先，深度受限）
// 匹配节点的子树不再继续搜索
func FindAll(root View, maxDepth int, match func(View) bool) []View {
	if root == nil {
		return nil
	}
	var out []View
	level := children(root)
	for depth := 1; depth <= maxDepth && len(level) > 0; depth++ {
		var next []View
		for _, v := range level {
			if match(v) {
				out = append(out, v)
				continue
			}
			next = append(next, children(v)...)
		}
		level = next
	}
	return out
}

func children(v View) []View {
	n := v.ChildCount()
	if n == 0 {
		return nil
	}
	out := make([]View, 0, n)
	for i := 0; i < n; i++ {
		if c := v.ChildAt(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// IsThumbnail 缩略图节点的名称启发式
func IsThumbnail(v View) bool {
	name := v.Name()
	return strings.Contains(name, "ThumbnailView") || strings.Contains(name, "Snapshot")
}

// IsIcon 图标类节点的名称启发式
func IsIcon(v View) bool {
	name := v.Name()
	return strings.Contains(name, "Icon") ||
		strings.Contains(name, "Chip") ||
		strings.Contains(name, "iconView")
}
