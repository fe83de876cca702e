package crawlers

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// 按本地名称匹配元素, 忽略命名空间
var (
	sitemapEntries = xpath.MustCompile(`.//*[local-name()='sitemap']`)
	urlEntries     = xpath.MustCompile(`.//*[local-name()='url']`)
	locChild       = xpath.MustCompile(`*[local-name()='loc']`)
)

// rootElement 返回文档的根元素, 文档为空时返回nil
func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

// findLocs 按文档顺序返回 root 下每个条目元素的第一个 <loc> 文本
// 没有 <loc> 或 <loc> 为空的条目被跳过
func findLocs(root *xmlquery.Node, entries *xpath.Expr) []string {
	locs := make([]string, 0)
	for _, entry := range xmlquery.QuerySelectorAll(root, entries) {
		loc := xmlquery.QuerySelector(entry, locChild)
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.InnerText()); text != "" {
			locs = append(locs, text)
		}
	}
	return locs
}
