package models

import (
	"fmt"
	"net/url"
	"strings"
)

// SitemapKind 站点地图类型, 由根元素的本地名称决定
type SitemapKind string

const (
	SitemapIndex  SitemapKind = "sitemapindex" // 站点地图索引, 列出子站点地图
	SitemapURLSet SitemapKind = "urlset"       // URL集合, 列出叶子URL
)

// KindOf 根据根元素本地名称判断站点地图类型
// 除 sitemapindex 之外的根元素一律按URL集合处理
func KindOf(rootLocalName string) SitemapKind {
	if rootLocalName == string(SitemapIndex) {
		return SitemapIndex
	}
	return SitemapURLSet
}

// ValidateSitemapURL 检查站点地图地址能否直接用于HTTP获取
// 必须是带主机名的绝对 http/https 地址, 首尾不能有空白
func ValidateSitemapURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("站点地图URL不能为空")
	}
	if strings.TrimSpace(raw) != raw {
		return fmt.Errorf("站点地图URL首尾不能包含空白")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("无效的URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("站点地图URL必须是HTTP或HTTPS协议")
	}
	if parsed.Host == "" {
		return fmt.Errorf("站点地图URL必须包含主机名")
	}
	return nil
}
