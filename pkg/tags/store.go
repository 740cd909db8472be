// Package tags 提供挂在宿主视图上的旁路属性存储（side channel）
//
// 每个视图持有一个 Store，以稳定的小整数 Tag 为键保存任意值。
// 存储按命名空间划分所有权：
//   - 基线（TagSys*）：宿主自己最后一次写入属性的值，由拦截路径记录
//   - 叠加（TagOffset* 与效果层）：本引擎最后一次应用的叠加值
//   - 标记：每帧回调是否已安装等
//
// Store 首次读写时惰性创建，只会被显式重置清空，宿主不会清理它。
package tags

// Tag 是旁路存储的键
type Tag uint32

// 已安装回调标记（存放在容器上）
const (
	TagPreDrawInstalled Tag = 0x7F0B0002
	TagPreDrawListener  Tag = 0x7F0B0003
	TagPendingEndTarget Tag = 0x7F0B0004
)

// 基线命名空间：宿主赋予的值
const (
	TagSysAlpha        Tag = 0x7F0B0012
	TagSysTransX       Tag = 0x7F0B0013
	TagSysStableAlpha  Tag = 0x7F0B0014
	TagSysNonGridScale Tag = 0x7F0B0015
)

// 叠加命名空间：本引擎应用的值
const (
	TagOffsetTrans Tag = 0x7F0B0021
	TagOffsetAlpha Tag = 0x7F0B0022
	TagOffsetScale Tag = 0x7F0B0023

	TagBlurEffect       Tag = 0x7F0B0040
	TagTintEffect       Tag = 0x7F0B0041
	TagIconOrigDelegate Tag = 0x7F0B0042
	TagClipDisabled     Tag = 0x7F0B0043 // 本引擎关闭了该视图的裁剪
)

// Store 单个视图的旁路属性映射
//
// 同一视图的 Store 只在宿主的帧回调中被串行访问，因此不加锁。
type Store struct {
	values map[Tag]interface{}
}

// NewStore 创建一个空的 Store
func NewStore() *Store {
	return &Store{}
}

// Set 写入一个值；写入 nil 等价于 Clear
func (s *Store) Set(tag Tag, value interface{}) {
	if value == nil {
		s.Clear(tag)
		return
	}
	if s.values == nil {
		s.values = make(map[Tag]interface{})
	}
	s.values[tag] = value
}

// Get 读取原始值
func (s *Store) Get(tag Tag) (interface{}, bool) {
	if s == nil || s.values == nil {
		return nil, false
	}
	v, ok := s.values[tag]
	return v, ok
}

// Has 检查是否存在某个键
func (s *Store) Has(tag Tag) bool {
	_, ok := s.Get(tag)
	return ok
}

// Clear 删除某个键，键不存在时无操作
func (s *Store) Clear(tag Tag) {
	if s == nil || s.values == nil {
		return
	}
	delete(s.values, tag)
}

// Len 返回已保存的键数量
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Value 以类型 T 读取值
// 键不存在或类型不匹配时返回 (零值, false)
func Value[T any](s *Store, tag Tag) (T, bool) {
	var zero T
	raw, ok := s.Get(tag)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// ValueOr 以类型 T 读取值，缺失时返回 def
func ValueOr[T any](s *Store, tag Tag, def T) T {
	if v, ok := Value[T](s, tag); ok {
		return v
	}
	return def
}
