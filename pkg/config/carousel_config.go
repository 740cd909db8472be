package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 轮播效果设置键
//
// 与宿主设置存储共享同一套键名，效果模块每帧都重新读取，
// 因此修改设置后立即生效。
const (
	KeyModifyEnable = "launcher_recents_modify_enable"

	KeySpacing       = "launcher_recents_carousel_spacing"
	KeyScale         = "launcher_recents_carousel_scale"
	KeyAlpha         = "launcher_recents_carousel_alpha"
	KeyBlurRadius    = "launcher_recents_carousel_blur_radius"
	KeyBlurOverflow  = "launcher_recents_carousel_blur_overflow"
	KeyTintColor     = "launcher_recents_carousel_tint_color"
	KeyTintIntensity = "launcher_recents_carousel_tint_intensity"
	KeyIconOffsetX   = "launcher_recents_carousel_icon_offset_x"
	KeyIconOffsetY   = "launcher_recents_carousel_icon_offset_y"

	KeyScaleEnable     = "launcher_recents_scale_enable"
	KeyScalePercent    = "launcher_recents_scale_percent"
	KeyDisableLiveTile = "launcher_recents_disable_livetile"
)

// 默认值
const (
	DefaultScale        = 1.0
	DefaultAlpha        = 1.0
	DefaultTintColor    = int(0xFF000000) // 不透明黑色
	DefaultScalePercent = 100
)

// CarouselProfile 轮播效果配置档
//
// 一个配置档描述一组命名的效果强度，可以整体写入设置存储。
//
// 配置文件示例:
//
//	name: deep
//	enabled: true
//	spacing: 40
//	scale: 0.8
//	alpha: 0.6
//	blurRadius: 12
//	tintColor: 0xFF000000
//	tintIntensity: 35
type CarouselProfile struct {
	// Name 配置档名称
	Name string `yaml:"name"`

	// Enabled 总开关
	Enabled bool `yaml:"enabled"`

	// Spacing 边缘卡片额外位移（像素，可为负）
	Spacing int `yaml:"spacing"`

	// Scale 边缘卡片最小缩放（1.0 = 不缩放）
	Scale float64 `yaml:"scale"`

	// Alpha 边缘卡片最小透明度（1.0 = 不透明）
	Alpha float64 `yaml:"alpha"`

	// BlurRadius 最大模糊半径（像素）
	BlurRadius int `yaml:"blurRadius"`

	// BlurOverflow 模糊是否溢出到整个卡片
	BlurOverflow bool `yaml:"blurOverflow"`

	// TintColor 着色颜色（ARGB）
	TintColor int `yaml:"tintColor"`

	// TintIntensity 最大着色强度（百分比 0-100）
	TintIntensity int `yaml:"tintIntensity"`

	// IconOffsetX/IconOffsetY 图标位移（像素）
	IconOffsetX int `yaml:"iconOffsetX"`
	IconOffsetY int `yaml:"iconOffsetY"`

	// ScalePercent 任务卡片整体尺寸百分比（100 = 原始大小，0 表示不启用）
	ScalePercent int `yaml:"scalePercent"`

	// DisableLiveTile 手势结束后关闭实时预览
	DisableLiveTile bool `yaml:"disableLiveTile"`
}

// SettingsWriter 可写入设置的存储
type SettingsWriter interface {
	SetBool(key string, value bool)
	SetInt(key string, value int)
	SetFloat(key string, value float64)
}

// DefaultCarouselProfile 返回一个所有效果关闭的配置档
func DefaultCarouselProfile() *CarouselProfile {
	return &CarouselProfile{
		Name:      "default",
		Enabled:   false,
		Scale:     DefaultScale,
		Alpha:     DefaultAlpha,
		TintColor: DefaultTintColor,
	}
}

// LoadCarouselProfile 从 YAML 文件加载配置档
//
// 未出现在文件中的字段保留 DefaultCarouselProfile 的值。
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *CarouselProfile: 加载并验证后的配置档
//   - error: 读取、解析或验证失败时返回错误
func LoadCarouselProfile(path string) (*CarouselProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read carousel profile: %w", err)
	}
	return ParseCarouselProfile(data)
}

// ParseCarouselProfile 从 YAML 数据解析配置档
func ParseCarouselProfile(data []byte) (*CarouselProfile, error) {
	profile := DefaultCarouselProfile()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse carousel profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid carousel profile %q: %w", profile.Name, err)
	}
	return profile, nil
}

// Validate 验证配置档数值范围
func (p *CarouselProfile) Validate() error {
	if p.Scale <= 0 || p.Scale > 2 {
		return fmt.Errorf("scale must be in (0, 2], got %v", p.Scale)
	}
	if p.Alpha < 0 || p.Alpha > 1 {
		return fmt.Errorf("alpha must be in [0, 1], got %v", p.Alpha)
	}
	if p.BlurRadius < 0 {
		return fmt.Errorf("blurRadius must be >= 0, got %d", p.BlurRadius)
	}
	if p.TintIntensity < 0 || p.TintIntensity > 100 {
		return fmt.Errorf("tintIntensity must be in [0, 100], got %d", p.TintIntensity)
	}
	if p.ScalePercent < 0 {
		return fmt.Errorf("scalePercent must be >= 0, got %d", p.ScalePercent)
	}
	return nil
}

// Apply 把配置档写入设置存储
func (p *CarouselProfile) Apply(w SettingsWriter) {
	w.SetBool(KeyModifyEnable, p.Enabled)
	w.SetInt(KeySpacing, p.Spacing)
	w.SetFloat(KeyScale, p.Scale)
	w.SetFloat(KeyAlpha, p.Alpha)
	w.SetInt(KeyBlurRadius, p.BlurRadius)
	w.SetBool(KeyBlurOverflow, p.BlurOverflow)
	w.SetInt(KeyTintColor, p.TintColor)
	w.SetInt(KeyTintIntensity, p.TintIntensity)
	w.SetInt(KeyIconOffsetX, p.IconOffsetX)
	w.SetInt(KeyIconOffsetY, p.IconOffsetY)

	percent := p.ScalePercent
	if percent == 0 {
		percent = DefaultScalePercent
	}
	w.SetBool(KeyScaleEnable, percent != DefaultScalePercent)
	w.SetInt(KeyScalePercent, percent)
	w.SetBool(KeyDisableLiveTile, p.DisableLiveTile)
}
