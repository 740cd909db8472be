// Package main 校验轮播效果配置档
//
// Usage:
//
//	go run ./cmd/validate_profiles [dir]
//
// 默认校验 data/profiles 下的所有 .yaml 文件，任一文件无效时以状态 1 退出。
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gonewx/carousel/pkg/config"
)

func main() {
	dir := "data/profiles"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		fmt.Printf("❌ 读取目录失败: %v\n", err)
		os.Exit(1)
	}
	sort.Strings(files)
	if len(files) == 0 {
		fmt.Printf("❌ %s 下没有配置档\n", dir)
		os.Exit(1)
	}

	if failed := validate(files); failed > 0 {
		fmt.Printf("❌ 有 %d 个配置档无效\n", failed)
		os.Exit(1)
	}
	fmt.Printf("✅ 所有配置档有效 (%d)\n", len(files))
}

// validate 逐个加载配置档，返回无效文件数量
func validate(files []string) int {
	failed := 0
	names := make(map[string]string)
	for _, f := range files {
		p, err := config.LoadCarouselProfile(f)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", f, err)
			failed++
			continue
		}
		if p.Name == "" {
			fmt.Printf("❌ %s: 缺少 name\n", f)
			failed++
			continue
		}
		if prev, ok := names[p.Name]; ok {
			fmt.Printf("❌ %s: name %q 与 %s 重复\n", f, p.Name, prev)
			failed++
			continue
		}
		names[p.Name] = f
		fmt.Printf("✅ %s (%s)\n", f, p.Name)
	}
	return failed
}
