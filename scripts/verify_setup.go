package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/RecoveryAshes/sitemapcheck/internal/core"
	"github.com/RecoveryAshes/sitemapcheck/internal/models"
)

func main() {
	fmt.Println("==============================================")
	fmt.Println("  sitemapcheck 环境验证")
	fmt.Println("==============================================")
	fmt.Println()

	allOK := true

	fmt.Printf("✅ Go版本: %s\n", runtime.Version())
	fmt.Printf("✅ 操作系统: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	configPath := core.DefaultConfigFile
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// 检查配置文件
	config, err := core.LoadConfig(configPath)
	switch {
	case err == nil:
		fmt.Printf("✅ 配置文件: %s\n", configPath)
	case core.IsMissingConfig(err):
		fmt.Printf("⚠️  未找到配置文件 %s, 将使用默认配置\n", configPath)
	default:
		fmt.Printf("❌ 配置文件无效: %v\n", err)
		allOK = false
	}

	if err := config.Check.Validate(); err != nil {
		fmt.Printf("❌ 检测配置无效: %v\n", err)
		allOK = false
	}

	if sitemap := config.ResolveSitemapURL(""); sitemap != "" {
		if err := models.ValidateSitemapURL(sitemap); err != nil {
			fmt.Printf("❌ default_sitemap_url 无效: %v\n", err)
			allOK = false
		} else {
			fmt.Printf("✅ 默认站点地图: %s\n", sitemap)
		}
	} else {
		fmt.Println("⚠️  未配置 default_sitemap_url, 运行时需要 --sitemap 或 --url-file")
	}

	if _, err := core.NewHeaderManager(config.Headers, nil); err != nil {
		fmt.Printf("❌ headers 配置无效: %v\n", err)
		allOK = false
	}

	// 检查报告和日志目录是否可写
	outputDir := filepath.Dir(config.ResolveOutputPath(core.DefaultOutputPath, false))
	if checkWritable(outputDir) {
		fmt.Printf("✅ 报告目录可写: %s\n", outputDir)
	} else {
		fmt.Printf("❌ 报告目录不可写: %s\n", outputDir)
		allOK = false
	}
	if dir := config.Logging.LogDir; dir != "" {
		if checkWritable(dir) {
			fmt.Printf("✅ 日志目录可写: %s\n", dir)
		} else {
			fmt.Printf("❌ 日志目录不可写: %s\n", dir)
			allOK = false
		}
	}

	fmt.Println()
	fmt.Println("==============================================")
	if allOK {
		fmt.Println("✅ 环境验证通过")
		return
	}
	fmt.Println("❌ 环境验证失败, 请根据上述提示修复")
	os.Exit(1)
}

// checkWritable 尝试在目录中创建临时文件
func checkWritable(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".sitemapcheck-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
