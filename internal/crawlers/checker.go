package crawlers

import (
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	"github.com/RecoveryAshes/sitemapcheck/internal/models"
	"github.com/RecoveryAshes/sitemapcheck/internal/utils"
	"github.com/gocolly/colly/v2"
)

const (
	// DefaultCheckTimeout 单次请求默认超时
	DefaultCheckTimeout = 10 * time.Second

	statusKey = "status"
)

var errNoResponse = errors.New("未收到响应")

// LinkCheckerConfig 链接检测器配置
type LinkCheckerConfig struct {
	// Timeout 分别作用于 HEAD 和 GET 两次请求
	Timeout time.Duration

	InsecureSkipVerify bool
	Headers            http.Header
}

// LinkChecker 链接检测器(使用Colly)
// 先发送HEAD, 失败或状态码异常时改用GET
type LinkChecker struct {
	collector *colly.Collector
	headers   http.Header
}

// NewLinkChecker 创建链接检测器
func NewLinkChecker(config LinkCheckerConfig) *LinkChecker {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}

	// 同一URL的HEAD和GET需要重复访问, 错误状态码作为正常响应返回
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
		colly.IgnoreRobotsTxt(),
	)

	if config.InsecureSkipVerify {
		c.WithTransport(&http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		})
	}
	c.SetRequestTimeout(timeout)

	c.OnRequest(func(r *colly.Request) {
		utils.Debugf("%s %s", r.Method, r.URL)
	})
	// 只需要状态码, 收到响应头后中止, 不读取响应体
	c.OnResponseHeaders(func(r *colly.Response) {
		r.Ctx.Put(statusKey, r.StatusCode)
		r.Request.Abort()
	})

	// 响应体不读取, 不需要协商压缩
	headers := config.Headers.Clone()
	if headers == nil {
		headers = make(http.Header)
	}
	headers.Del("Accept-Encoding")

	return &LinkChecker{
		collector: c,
		headers:   headers,
	}
}

// Check 检测单个URL
// 传输层错误不会返回error, 而是记录为状态码为空的结果
func (lc *LinkChecker) Check(link string) models.CheckResult {
	status, err := lc.attempt(http.MethodHead, link)
	if err == nil && !models.IsBrokenStatus(status) {
		return models.NewStatusResult(link, http.MethodHead, status)
	}

	if err != nil {
		utils.Debugf("HEAD 请求失败, 改用 GET: %s (%v)", link, err)
	} else {
		utils.Debugf("HEAD 返回 %d, 改用 GET: %s", status, link)
	}

	status, err = lc.attempt(http.MethodGet, link)
	if err != nil {
		utils.Warnf("检测 %s 出错: %v", link, err)
		return models.NewTransportFailure(link, http.MethodGet, err)
	}
	return models.NewStatusResult(link, http.MethodGet, status)
}

func (lc *LinkChecker) attempt(method, link string) (int, error) {
	ctx := colly.NewContext()
	// Colly会修改传入的头部, 每次请求使用副本
	err := lc.collector.Request(method, link, nil, ctx, lc.headers.Clone())
	if err != nil && !errors.Is(err, colly.ErrAbortedAfterHeaders) {
		return 0, err
	}

	status, ok := ctx.GetAny(statusKey).(int)
	if !ok {
		return 0, errNoResponse
	}
	return status, nil
}
