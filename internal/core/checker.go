package core

import (
	"github.com/RecoveryAshes/sitemapcheck/internal/models"
	"github.com/RecoveryAshes/sitemapcheck/internal/utils"
)

// URLChecker 检测单个URL, 传输失败体现在结果中而不是返回错误
type URLChecker interface {
	Check(url string) models.CheckResult
}

// Checker 失效链接汇总器
// 按顺序逐个检测URL, 同一时间只有一个请求
type Checker struct {
	links    URLChecker
	progress bool
}

// NewChecker 创建汇总器, progress 为true时显示进度条
func NewChecker(links URLChecker, progress bool) *Checker {
	return &Checker{links: links, progress: progress}
}

// FindBroken 返回按检测顺序排列的失效链接, 空列表表示全部正常
func (c *Checker) FindBroken(urls []string) []models.BrokenLink {
	broken := make([]models.BrokenLink, 0)

	var advance func()
	if c.progress && len(urls) > 0 {
		bar := utils.NewProgressBar(len(urls), "检测链接")
		advance = func() { _ = bar.Add(1) }
	}

	for i, url := range urls {
		utils.Infof("[%d/%d] 检测: %s", i+1, len(urls), url)

		result := c.links.Check(url)
		if result.IsBroken() {
			utils.Debugf("失效链接: %s (状态: %q)", url, result.StatusText())
			broken = append(broken, result)
		}

		if advance != nil {
			advance()
		}
	}

	return broken
}
