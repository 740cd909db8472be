// Package main 提供最近任务轮播效果的交互演示程序
//
// Usage:
//
//	go run ./cmd/carousel_demo [flags]
//
// Flags:
//
//	--verbose           启用详细日志
//	--profiles <dir>    配置档目录（默认 data/profiles）
//	--profile <file>    只加载一个配置档
//	--tasks <n>         卡片数量
//	--persist           通过 gdata 持久化设置
//
// Environment:
//
//	CAROUSEL_WIDTH / CAROUSEL_HEIGHT   窗口尺寸
//	CAROUSEL_TASKS                     卡片数量（被 --tasks 覆盖）
//	CAROUSEL_PROFILES                  配置档目录
//	CAROUSEL_VERBOSE                   启用详细日志
//
// Controls:
//
//	Space        - 打开/关闭多任务
//	Up           - 模拟上滑并停在多任务
//	Left/Right   - 切换居中卡片
//	Enter        - 启动居中卡片
//	H            - 回到桌面
//	E            - 开关效果
//	1-9          - 切换配置档
//	S            - 保存设置
//	F11          - 全屏
//	鼠标从底部上滑 - 手势进入多任务；横向拖拽滚动；点击启动卡片
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/caarlos0/env/v11"
	"github.com/gonewx/carousel/pkg/app"
	"github.com/gonewx/carousel/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"
)

// envConfig 环境变量配置
type envConfig struct {
	Width    int    `env:"CAROUSEL_WIDTH"    envDefault:"1280"`
	Height   int    `env:"CAROUSEL_HEIGHT"   envDefault:"720"`
	Tasks    int    `env:"CAROUSEL_TASKS"    envDefault:"7"`
	Profiles string `env:"CAROUSEL_PROFILES" envDefault:"data/profiles"`
	Verbose  bool   `env:"CAROUSEL_VERBOSE"`
}

var (
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	profilesFlag = flag.String("profiles", "", "Directory of carousel profile YAML files")
	profileFlag  = flag.String("profile", "", "Load a single carousel profile")
	tasksFlag    = flag.Int("tasks", 0, "Number of tasks in recents")
	persistFlag  = flag.Bool("persist", false, "Persist settings with gdata")
)

func main() {
	flag.Parse()

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		fmt.Fprintf(os.Stderr, "parse env: %v\n", err)
		os.Exit(1)
	}

	cfg := app.Config{
		Verbose: *verboseFlag || ec.Verbose,
		Width:   ec.Width,
		Height:  ec.Height,
		Tasks:   ec.Tasks,
		Persist: *persistFlag,
	}
	if *tasksFlag > 0 {
		cfg.Tasks = *tasksFlag
	}

	profiles, err := loadProfiles(*profileFlag, firstNonEmpty(*profilesFlag, ec.Profiles))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load profiles: %v\n", err)
		os.Exit(1)
	}
	cfg.Profiles = profiles

	a, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Recents Carousel Demo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
	if err := a.Settings().Save(); err != nil {
		log.Printf("[Main] Failed to save settings: %v", err)
	}
}

// loadProfiles 加载配置档
// single 非空时只加载该文件；否则加载目录下所有 .yaml 文件（按文件名排序）
// 目录不存在时返回默认配置档
func loadProfiles(single, dir string) ([]*config.CarouselProfile, error) {
	if single != "" {
		p, err := config.LoadCarouselProfile(single)
		if err != nil {
			return nil, err
		}
		return []*config.CarouselProfile{p}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Printf("[Main] No profiles in %s, using defaults", dir)
		return []*config.CarouselProfile{config.DefaultCarouselProfile()}, nil
	}

	profiles := make([]*config.CarouselProfile, 0, len(files))
	for _, f := range files {
		p, err := config.LoadCarouselProfile(f)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
