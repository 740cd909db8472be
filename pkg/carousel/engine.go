package carousel

import (
	"fmt"
	"log"
	"strings"

	"github.com/gonewx/carousel/pkg/config"
)

// DefaultExcludeMarker 永远跳过的卡片名称标记（常驻的"全部清除"按钮）
const DefaultExcludeMarker = "ClearAll"

// Module 可插拔的效果规则
type Module interface {
	Name() string
	// Applicable 根据当前设置判断模块是否生效
	Applicable(s Settings) bool
	// Apply 为容器内的卡片计算并写入叠加值
	Apply(e *Engine, c Container)
}

// Engine 效果引擎
//
// 持有共享状态、设置与宿主 setter，被每帧回调与拦截路径共同使用。
type Engine struct {
	state         *State
	settings      Settings
	setters       HostSetters
	modules       []Module
	excludeMarker string
}

// Option 引擎选项
type Option func(*Engine)

// WithModules 替换默认模块列表
func WithModules(modules ...Module) Option {
	return func(e *Engine) { e.modules = modules }
}

// WithExcludeMarker 替换排除标记
func WithExcludeMarker(marker string) Option {
	return func(e *Engine) { e.excludeMarker = marker }
}

// WithState 使用外部提供的状态
func WithState(s *State) Option {
	return func(e *Engine) { e.state = s }
}

// DefaultModules 返回六个内置效果模块
func DefaultModules() []Module {
	return []Module{
		OffsetModule{},
		ScaleModule{},
		AlphaModule{},
		BlurModule{},
		TintModule{},
		IconOffsetModule{},
	}
}

// NewEngine 创建效果引擎
func NewEngine(settings Settings, setters HostSetters, opts ...Option) *Engine {
	e := &Engine{
		state:         NewState(),
		settings:      settings,
		setters:       setters,
		modules:       DefaultModules(),
		excludeMarker: DefaultExcludeMarker,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State 共享状态
func (e *Engine) State() *State { return e.state }

// Settings 设置协作者
func (e *Engine) Settings() Settings { return e.settings }

// Modules 当前模块列表
func (e *Engine) Modules() []Module { return e.modules }

// Enabled 总开关
func (e *Engine) Enabled() bool {
	return e.settings.Bool(config.KeyModifyEnable, false)
}

// ApplyModules 运行所有生效的模块
//
// 只在 EnteringOrActive 且不在退出动画中时计算，避免退出途中闪现旧的偏移。
func (e *Engine) ApplyModules(c Container) {
	if !e.Enabled() {
		return
	}
	if !e.state.Active() || e.state.AnimatingExit() {
		return
	}
	for _, m := range e.modules {
		if !m.Applicable(e.settings) {
			continue
		}
		m.Apply(e, c)
	}
}

// Items 返回容器中所有未被排除的卡片
func (e *Engine) Items(c Container) []Item {
	n := c.ChildCount()
	out := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		it, ok := c.ChildAt(i).(Item)
		if !ok {
			continue
		}
		if e.Excluded(it) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Excluded 卡片是否带有排除标记
func (e *Engine) Excluded(v View) bool {
	return e.excludeMarker != "" && strings.Contains(v.Name(), e.excludeMarker)
}

// write 在重入保护内执行一次宿主写入
// 失败（包括 panic）只记录日志并跳过，不影响其他写入
func (e *Engine) write(module, what string, fn func() error) {
	var err error
	e.state.Guarded(func() {
		err = safeWrite(fn)
	})
	if err != nil {
		log.Printf("[%s] %s failed: %v", module, what, err)
	}
}

func safeWrite(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host setter panicked: %v", r)
		}
	}()
	return fn()
}
