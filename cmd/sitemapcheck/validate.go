package main

import (
	"fmt"

	"github.com/RecoveryAshes/sitemapcheck/internal/models"
)

// ValidateFlags 验证命令行标志
// 没有URL来源不在此处报错, 由 Runner 返回 ErrNoURLSource
func ValidateFlags(sitemapURL, urlFile string, timeout int) error {
	// URL文件优先时忽略站点地图URL
	if urlFile == "" && sitemapURL != "" {
		if err := models.ValidateSitemapURL(sitemapURL); err != nil {
			return fmt.Errorf("无效的站点地图URL: %w", err)
		}
	}

	if timeout < 1 || timeout > 300 {
		return fmt.Errorf("超时时间必须在1-300秒之间,当前值: %d", timeout)
	}

	return nil
}
