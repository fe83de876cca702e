package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RecoveryAshes/sitemapcheck/internal/core"
	"github.com/RecoveryAshes/sitemapcheck/internal/models"
	"github.com/RecoveryAshes/sitemapcheck/internal/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 退出码
const (
	exitOK          = 0
	exitBrokenLinks = 1
	exitUsage       = 2
)

// 命令行参数
var (
	// 全局参数
	configFile string
	verbose    bool
	logLevel   string
	headers    []string

	// 检测参数
	sitemapURL string
	urlFile    string
	outputPath string
	htmlReport bool
	jsonReport bool
	timeout    int
	progress   bool
)

// appConfig 在 PersistentPreRunE 中加载
var appConfig *core.Config

// errBrokenLinksFound 检测完成但存在失效链接
var errBrokenLinksFound = errors.New("发现失效链接")

var rootCmd = &cobra.Command{
	Use:   "sitemapcheck",
	Short: "站点地图失效链接检测工具",
	Long: `sitemapcheck - 站点地图失效链接检测工具

递归展开站点地图(支持sitemap index和gzip/brotli压缩), 逐个检测URL,
将失效链接写入CSV报告(可选HTML/JSON报告)。

示例:
  sitemapcheck --sitemap https://example.com/sitemap.xml
  sitemapcheck --url-file urls.txt --output reports/broken.csv --html
  sitemapcheck --sitemap https://example.com/sitemap.xml -H "Authorization: Bearer token"

退出码: 0 无失效链接, 1 存在失效链接或运行失败, 2 未提供URL来源

版本: ` + Version + `
构建时间: ` + BuildTime,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config, configErr := core.LoadConfig(configFile)
		appConfig = config

		logConfig := utils.LogConfig{
			Level:      config.Logging.Level,
			LogDir:     config.Logging.LogDir,
			MaxSize:    config.Logging.Rotation.MaxSize,
			MaxBackups: config.Logging.Rotation.MaxBackups,
			MaxAge:     config.Logging.Rotation.MaxAge,
			Compress:   config.Logging.Rotation.Compress,
			NoColor:    config.Logging.NoColor,
		}

		// 命令行参数覆盖配置文件
		if logLevel != "" {
			logConfig.Level = logLevel
		}
		if verbose {
			logConfig.Level = "debug"
		}

		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("初始化日志系统失败: %w", err)
		}

		// 配置文件缺失或无效不影响运行
		switch {
		case configErr == nil:
		case core.IsMissingConfig(configErr):
			utils.Debugf("未找到配置文件, 使用默认配置: %v", configErr)
		default:
			utils.Warnf("配置文件无效, 使用默认配置: %v", configErr)
		}

		if verbose {
			utils.Info("详细模式已启用")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// 设置信号处理(Ctrl+C退出)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-sigChan
			utils.Warnf("\n收到中断信号: %v, 退出", sig)
			os.Exit(exitBrokenLinks)
		}()

		opts, err := buildOptions(cmd)
		if err != nil {
			return err
		}

		runner, err := core.NewRunner(opts)
		if err != nil {
			return err
		}

		report, err := runner.Run(context.Background())
		if err != nil {
			return err
		}
		if report.BrokenCount > 0 {
			return errBrokenLinksFound
		}
		return nil
	},
}

// buildOptions 合并命令行参数与配置文件
func buildOptions(cmd *cobra.Command) (core.Options, error) {
	check := appConfig.Check
	if cmd.Flags().Changed("timeout") || check.Timeout == 0 {
		check.Timeout = timeout
	}
	if progress {
		check.Progress = true
	}

	sitemap := appConfig.ResolveSitemapURL(sitemapURL)
	if err := ValidateFlags(sitemap, urlFile, check.Timeout); err != nil {
		return core.Options{}, err
	}

	headerManager, err := core.NewHeaderManager(appConfig.Headers, headers)
	if err != nil {
		return core.Options{}, fmt.Errorf("解析HTTP头部失败: %w", err)
	}
	requestHeaders, err := headerManager.GetHeaders()
	if err != nil {
		return core.Options{}, fmt.Errorf("HTTP头部验证失败: %w", err)
	}
	for name, value := range headerManager.GetSafeHeaders() {
		utils.Debugf("请求头部 %s: %s", name, value)
	}

	return core.Options{
		SitemapURL: sitemap,
		URLFile:    urlFile,
		OutputPath: appConfig.ResolveOutputPath(outputPath, cmd.Flags().Changed("output")),
		HTML:       htmlReport,
		JSON:       jsonReport,
		Check:      check,
		Headers:    requestHeaders,
	}, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sitemapcheck %s\n", Version)
		fmt.Printf("构建时间: %s\n", BuildTime)
	},
}

func init() {
	// 全局参数
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", core.DefaultConfigFile, "配置文件路径")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出模式")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringArrayVarP(&headers, "header", "H", []string{}, "自定义HTTP头部,格式: 'Name: Value',可多次指定")

	// 检测参数
	rootCmd.Flags().StringVar(&sitemapURL, "sitemap", "", "站点地图URL")
	rootCmd.Flags().StringVar(&urlFile, "url-file", "", "包含URL列表的文件路径 (优先于 --sitemap)")
	rootCmd.Flags().StringVar(&outputPath, "output", core.DefaultOutputPath, "CSV报告路径")
	rootCmd.Flags().BoolVar(&htmlReport, "html", false, "同时生成HTML报告")
	rootCmd.Flags().BoolVar(&jsonReport, "json", false, "同时生成JSON报告")
	rootCmd.Flags().IntVar(&timeout, "timeout", 10, "单次检测超时(秒, 1-300)")
	rootCmd.Flags().BoolVar(&progress, "progress", false, "显示检测进度条")

	rootCmd.AddCommand(versionCmd)
}

// exitCode 将运行结果映射为进程退出码
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, models.ErrNoURLSource):
		return exitUsage
	default:
		return exitBrokenLinks
	}
}

func main() {
	err := rootCmd.Execute()
	switch {
	case err == nil, errors.Is(err, errBrokenLinksFound):
	case errors.Is(err, models.ErrNoURLSource):
		fmt.Fprintln(os.Stderr, "错误: 请通过 --sitemap、--url-file 或配置文件 default_sitemap_url 提供URL来源")
	default:
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
	}
	os.Exit(exitCode(err))
}
