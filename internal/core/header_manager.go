package core

import (
	"net/http"

	"github.com/RecoveryAshes/sitemapcheck/internal/models"
	"github.com/RecoveryAshes/sitemapcheck/internal/utils"
)

const (
	// DefaultUserAgent 默认User-Agent
	DefaultUserAgent = "Mozilla/5.0 (compatible; sitemapcheck/1.0; +https://github.com/RecoveryAshes/sitemapcheck)"
)

var _ models.HeaderProvider = (*HeaderManager)(nil)

// HeaderManager 管理HTTP请求头部
// 实现 HeaderProvider 接口, 优先级: 默认 < 配置 < 命令行
type HeaderManager struct {
	defaults  http.Header
	config    http.Header
	cli       http.Header
	validator *utils.HeaderValidator
}

// NewHeaderManager 创建头部管理器
// 参数:
//   - configHeaders: 配置文件 headers 段
//   - cliHeaders: 命令行 -H 传入的头部字符串列表
func NewHeaderManager(configHeaders map[string]string, cliHeaders []string) (*HeaderManager, error) {
	cli, err := models.CliHeaders(cliHeaders).Parse()
	if err != nil {
		return nil, err
	}

	config := make(http.Header)
	for name, value := range configHeaders {
		config.Set(name, value)
	}

	return &HeaderManager{
		defaults: http.Header{
			"User-Agent": []string{DefaultUserAgent},
			"Accept":     []string{"*/*"},
		},
		config:    config,
		cli:       cli,
		validator: utils.NewHeaderValidator(),
	}, nil
}

// Validate 按 默认 → 配置 → 命令行 的顺序验证所有头部
func (hm *HeaderManager) Validate() error {
	for _, headers := range []http.Header{hm.defaults, hm.config, hm.cli} {
		if err := hm.validator.Validate(headers); err != nil {
			return err
		}
	}
	return nil
}

// GetMergedHeaders 按优先级合并头部
func (hm *HeaderManager) GetMergedHeaders() http.Header {
	result := make(http.Header)
	for _, layer := range []http.Header{hm.defaults, hm.config, hm.cli} {
		for name, values := range layer {
			result[name] = values
		}
	}
	return result
}

// GetSafeHeaders 返回脱敏后的头部 (用于日志)
func (hm *HeaderManager) GetSafeHeaders() map[string]string {
	return utils.RedactHeaders(hm.GetMergedHeaders())
}

// GetHeaders 实现 HeaderProvider 接口
func (hm *HeaderManager) GetHeaders() (http.Header, error) {
	if err := hm.Validate(); err != nil {
		return nil, err
	}
	return hm.GetMergedHeaders(), nil
}
