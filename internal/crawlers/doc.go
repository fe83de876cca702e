// Package crawlers 提供站点地图展开和链接可用性检测
//
// # 核心组件
//
// ## SitemapResolver
//
// 基于 net/http + xmlquery 的站点地图解析器。递归展开 sitemap index,
// 按文档顺序返回所有 urlset 中的 <loc>。元素按 local-name() 匹配,
// 带命名空间和不带命名空间的文档都能解析。支持 gzip/deflate/br 响应
// 以及 .xml.gz 文件。每次展开使用独立的 VisitedSet, 自引用和循环引用
// 的分支会被跳过。
//
//	resolver := NewSitemapResolver(headers, false)
//	urls, err := resolver.Resolve(ctx, "https://example.com/sitemap.xml")
//
// ## LinkChecker
//
// 基于 Colly 的链接检测器。先发送 HEAD, 传输失败或状态码不在 [100,399]
// 时再发送 GET, 以最后一次尝试的结果为准。超时分别作用于每次尝试。
//
//	checker := NewLinkChecker(LinkCheckerConfig{Timeout: 10 * time.Second})
//	result := checker.Check("https://example.com/page")
//
// # 错误处理
//
// 站点地图获取失败返回 *models.FetchError, XML无效返回 *models.ParseError,
// 两者都会终止本次运行。单个链接的传输失败不返回错误, 记录为状态码为空的
// CheckResult。
package crawlers
