package core

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/RecoveryAshes/sitemapcheck/internal/crawlers"
	"github.com/RecoveryAshes/sitemapcheck/internal/models"
	"github.com/RecoveryAshes/sitemapcheck/internal/utils"
)

// SitemapSource 将站点地图展开为叶子URL列表
type SitemapSource interface {
	Resolve(ctx context.Context, sitemapURL string) ([]string, error)
}

// Options 单次检测的参数
type Options struct {
	SitemapURL string
	URLFile    string // 优先于 SitemapURL
	OutputPath string
	HTML       bool
	JSON       bool
	Check      CheckSettings
	Headers    http.Header
}

// Runner 检测流程协调器: URL来源 → 逐个检测 → 报告
type Runner struct {
	opts     Options
	sitemap  SitemapSource
	links    URLChecker
	reporter *utils.Reporter
}

// NewRunner 创建协调器
func NewRunner(opts Options) (*Runner, error) {
	if err := opts.Check.Validate(); err != nil {
		return nil, fmt.Errorf("检测配置无效: %w", err)
	}
	if opts.OutputPath == "" {
		opts.OutputPath = DefaultOutputPath
	}

	return &Runner{
		opts:    opts,
		sitemap: crawlers.NewSitemapResolver(opts.Headers, opts.Check.InsecureSkipVerify),
		links: crawlers.NewLinkChecker(crawlers.LinkCheckerConfig{
			Timeout:            time.Duration(opts.Check.Timeout) * time.Second,
			InsecureSkipVerify: opts.Check.InsecureSkipVerify,
			Headers:            opts.Headers,
		}),
		reporter: utils.NewReporter(opts.OutputPath),
	}, nil
}

// Run 执行检测
// 没有URL来源时返回 models.ErrNoURLSource 且不写报告
// 站点地图获取/解析失败时返回对应错误
func (r *Runner) Run(ctx context.Context) (*models.CheckReport, error) {
	kind, source, err := r.source()
	if err != nil {
		return nil, err
	}

	utils.Infof("🚀 开始检测: %s (%s)", source, kind)
	report := models.NewCheckReport(kind, source, r.opts.Check.CheckConfig)

	urls, err := r.loadURLs(ctx, kind, source)
	if err != nil {
		return nil, err
	}

	broken := NewChecker(r.links, r.opts.Check.Progress).FindBroken(urls)
	report.Finish(len(urls), broken)

	if err := r.saveReports(report); err != nil {
		return report, err
	}

	r.printSummary(report)
	return report, nil
}

func (r *Runner) source() (models.SourceKind, string, error) {
	switch {
	case r.opts.URLFile != "":
		return models.SourceFile, r.opts.URLFile, nil
	case r.opts.SitemapURL != "":
		return models.SourceSitemap, r.opts.SitemapURL, nil
	default:
		return "", "", models.ErrNoURLSource
	}
}

func (r *Runner) loadURLs(ctx context.Context, kind models.SourceKind, source string) ([]string, error) {
	if kind == models.SourceFile {
		urls, err := utils.ReadURLsFromFile(source)
		if err != nil {
			return nil, err
		}
		return urls, nil
	}

	urls, err := r.sitemap.Resolve(ctx, source)
	if err != nil {
		return nil, err
	}
	utils.Infof("站点地图共展开 %d 个URL", len(urls))
	return urls, nil
}

func (r *Runner) saveReports(report *models.CheckReport) error {
	if err := r.reporter.SaveCSV(report.Broken); err != nil {
		return err
	}
	if r.opts.HTML {
		if err := r.reporter.SaveHTML(report.Broken); err != nil {
			return err
		}
	}
	if r.opts.JSON {
		if err := r.reporter.SaveJSON(report); err != nil {
			return err
		}
	}
	return nil
}

// printSummary 打印检测摘要
func (r *Runner) printSummary(report *models.CheckReport) {
	utils.Info("==================================================")
	utils.Infof("📊 检测摘要 (运行ID: %s)", report.RunID)
	utils.Infof("总URL数: %d", report.TotalURLs)
	utils.Infof("❌ 失效: %d", report.BrokenCount)
	utils.Infof("⏱️  总耗时: %.2f秒", report.Duration)
	utils.Info("==================================================")

	if report.BrokenCount == 0 {
		utils.Info("未发现失效链接")
		return
	}

	for _, link := range report.Broken {
		status := link.StatusText()
		if status == "" {
			status = "无响应"
		}
		utils.Warnf("  - %s: %s", link.URL, status)
	}
	utils.Errorf("发现 %d 个失效链接!", report.BrokenCount)
}
