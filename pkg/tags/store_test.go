package tags

import "testing"

func TestStoreSetAndGet(t *testing.T) {
	s := NewStore()
	s.Set(TagSysTransX, 12.5)

	v, ok := Value[float64](s, TagSysTransX)
	if !ok {
		t.Fatal("TagSysTransX should be found")
	}
	if v != 12.5 {
		t.Errorf("TagSysTransX = %v, want 12.5", v)
	}
	if !s.Has(TagSysTransX) {
		t.Error("Has(TagSysTransX) should be true")
	}
}

func TestStoreLazyEmpty(t *testing.T) {
	// 未写入过的 Store 读取不应 panic
	s := NewStore()
	if s.Has(TagOffsetTrans) {
		t.Error("empty store should not have TagOffsetTrans")
	}
	s.Clear(TagOffsetTrans) // 无操作

	var nilStore *Store
	if _, ok := nilStore.Get(TagOffsetTrans); ok {
		t.Error("nil store should report missing")
	}
	if nilStore.Len() != 0 {
		t.Error("nil store Len should be 0")
	}
}

func TestStoreSetNilClears(t *testing.T) {
	s := NewStore()
	s.Set(TagBlurEffect, "blur")
	s.Set(TagBlurEffect, nil)

	if s.Has(TagBlurEffect) {
		t.Error("setting nil should clear the tag")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestValueTypeMismatch(t *testing.T) {
	s := NewStore()
	s.Set(TagPendingEndTarget, "RECENTS")

	if _, ok := Value[float64](s, TagPendingEndTarget); ok {
		t.Error("type mismatch should report missing")
	}
	if got := ValueOr(s, TagSysStableAlpha, 1.0); got != 1.0 {
		t.Errorf("ValueOr default = %v, want 1.0", got)
	}
	if got := ValueOr(s, TagPendingEndTarget, ""); got != "RECENTS" {
		t.Errorf("ValueOr = %q, want RECENTS", got)
	}
}

func TestNamespacesAreDistinct(t *testing.T) {
	all := []Tag{
		TagPreDrawInstalled, TagPreDrawListener, TagPendingEndTarget,
		TagSysAlpha, TagSysTransX, TagSysStableAlpha, TagSysNonGridScale,
		TagOffsetTrans, TagOffsetAlpha, TagOffsetScale,
		TagBlurEffect, TagTintEffect, TagIconOrigDelegate,
	}
	seen := make(map[Tag]bool)
	for _, tag := range all {
		if seen[tag] {
			t.Errorf("duplicate tag value 0x%X", uint32(tag))
		}
		seen[tag] = true
	}
}
