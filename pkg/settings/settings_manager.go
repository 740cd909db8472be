// Package settings 提供轮播效果使用的键值设置存储
//
// 值在内存中以键值表保存，按需通过 gdata 以 YAML 持久化。
// 读取永远不会失败：键缺失或类型不符时返回调用方给出的默认值。
package settings

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "carousel"
)

// Manager 设置管理器
// 负责设置的加载、保存和内存管理
type Manager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）

	mu     sync.RWMutex
	values map[string]interface{}
}

// NewManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *Manager: 设置管理器实例
//   - error: 始终为 nil，加载失败只记录日志
func NewManager(gdataManager *gdata.Manager) (*Manager, error) {
	m := &Manager{
		gdataManager: gdataManager,
		values:       make(map[string]interface{}),
	}

	if err := m.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return m, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，清空为默认状态
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.gdataManager == nil {
		m.values = make(map[string]interface{})
		return nil
	}

	if !m.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		m.values = make(map[string]interface{})
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.values = make(map[string]interface{})
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.values = make(map[string]interface{})
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded == nil {
		// 属性内容为 null
		loaded = make(map[string]interface{})
	}

	m.values = loaded
	log.Printf("[SettingsManager] Settings loaded successfully (%d keys)", len(loaded))
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (m *Manager) Save() error {
	if m.gdataManager == nil {
		return nil
	}

	m.mu.RLock()
	data, err := yaml.Marshal(m.values)
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := m.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Bool 读取布尔设置，缺失或类型不符时返回 def
func (m *Manager) Bool(key string, def bool) bool {
	raw, ok := m.lookup(key)
	if !ok {
		return def
	}
	if v, ok := raw.(bool); ok {
		return v
	}
	return def
}

// Int 读取整数设置，缺失、类型不符或超出 int 范围时返回 def
//
// 整数值的浮点也会被接受（YAML 中 "40.0" 这类写法）
func (m *Manager) Int(key string, def int) int {
	raw, ok := m.lookup(key)
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		if v <= math.MaxInt {
			return int(v)
		}
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt && v < math.MaxInt {
			return int(v)
		}
	}
	return def
}

// Float 读取浮点设置，缺失或类型不符时返回 def
func (m *Manager) Float(key string, def float64) float64 {
	raw, ok := m.lookup(key)
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	}
	return def
}

// SetBool 设置布尔值
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (m *Manager) SetBool(key string, value bool) { m.set(key, value) }

// SetInt 设置整数值
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (m *Manager) SetInt(key string, value int) { m.set(key, value) }

// SetFloat 设置浮点值
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (m *Manager) SetFloat(key string, value float64) { m.set(key, value) }

// Delete 删除一个键，之后读取返回默认值
func (m *Manager) Delete(key string) {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
}

func (m *Manager) set(key string, value interface{}) {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
}

func (m *Manager) lookup(key string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}
