package crawlers

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/RecoveryAshes/sitemapcheck/internal/models"
	"github.com/RecoveryAshes/sitemapcheck/internal/utils"
	"github.com/antchfx/xmlquery"
)

const (
	// SitemapFetchTimeout 站点地图获取超时 (固定值)
	SitemapFetchTimeout = 20 * time.Second

	// MaxSitemapSize 站点地图协议规定的最大解压后大小 (50MB)
	MaxSitemapSize = 50 * 1024 * 1024

	sitemapAcceptEncoding = "gzip, deflate, br"
)

// SitemapResolver 站点地图解析器
// 递归展开站点地图索引, 按文档顺序返回所有叶子URL
type SitemapResolver struct {
	client  *http.Client
	headers http.Header
}

// NewSitemapResolver 创建站点地图解析器
func NewSitemapResolver(headers http.Header, insecureSkipVerify bool) *SitemapResolver {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &SitemapResolver{
		client: &http.Client{
			Transport: transport,
			Timeout:   SitemapFetchTimeout,
		},
		headers: headers,
	}
}

// Resolve 从根站点地图开始遍历
// 站点地图获取或解析失败会中止整个遍历
func (sr *SitemapResolver) Resolve(ctx context.Context, sitemapURL string) ([]string, error) {
	visited := NewVisitedSet()
	urls, err := sr.resolve(ctx, sitemapURL, visited)
	if err != nil {
		return nil, err
	}
	utils.Debugf("站点地图遍历完成: 获取 %d 个站点地图, 共 %d 个URL", visited.Len(), len(urls))
	return urls, nil
}

func (sr *SitemapResolver) resolve(ctx context.Context, sitemapURL string, visited *VisitedSet) ([]string, error) {
	if !visited.MarkIfNotVisited(sitemapURL) {
		utils.Debugf("跳过已访问的站点地图: %s", sitemapURL)
		return nil, nil
	}

	utils.Infof("获取站点地图: %s", sitemapURL)
	root, err := sr.fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0)
	switch models.KindOf(root.Data) {
	case models.SitemapIndex:
		for _, child := range findLocs(root, sitemapEntries) {
			childURLs, err := sr.resolve(ctx, child, visited)
			if err != nil {
				return nil, err
			}
			urls = append(urls, childURLs...)
		}
	default:
		urls = append(urls, findLocs(root, urlEntries)...)
	}

	utils.Infof("站点地图 %s 中发现 %d 个URL", sitemapURL, len(urls))
	return urls, nil
}

// fetch 获取站点地图并返回根元素
func (sr *SitemapResolver) fetch(ctx context.Context, sitemapURL string) (*xmlquery.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, &models.FetchError{URL: sitemapURL, Cause: err}
	}
	for name, values := range sr.headers {
		req.Header[name] = values
	}
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", sitemapAcceptEncoding)
	}

	resp, err := sr.client.Do(req)
	if err != nil {
		return nil, &models.FetchError{URL: sitemapURL, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &models.FetchError{
			URL:        sitemapURL,
			StatusCode: resp.StatusCode,
			Cause:      errors.New(resp.Status),
		}
	}

	body, err := readLimited(resp.Body)
	if errors.Is(err, ErrSitemapTooLarge) {
		return nil, &models.ParseError{URL: sitemapURL, Cause: err}
	}
	if err != nil {
		return nil, &models.FetchError{URL: sitemapURL, Cause: fmt.Errorf("读取响应失败: %w", err)}
	}

	body, err = decodeSitemapBody(resp.Header.Get("Content-Encoding"), body)
	if err != nil {
		return nil, &models.ParseError{URL: sitemapURL, Cause: err}
	}

	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &models.ParseError{URL: sitemapURL, Cause: err}
	}

	root := rootElement(doc)
	if root == nil {
		return nil, &models.ParseError{URL: sitemapURL, Cause: errors.New("文档没有根元素")}
	}
	return root, nil
}
