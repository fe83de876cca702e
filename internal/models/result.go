package models

import (
	"fmt"
	"strconv"
)

const (
	// MinHealthyStatus 视为可用的最小HTTP状态码
	MinHealthyStatus = 100
	// MaxHealthyStatus 视为可用的最大HTTP状态码 (重定向已由客户端跟随)
	MaxHealthyStatus = 399
)

// CheckResult 单个URL的检测结果
type CheckResult struct {
	URL string `json:"url"`

	// Status 最终HTTP状态码, nil表示网络/传输层失败
	Status *int `json:"status"`

	// Method 产生最终结果的请求方法 (HEAD 或 GET)
	Method string `json:"method,omitempty"`

	// Err 传输层错误信息
	Err string `json:"error,omitempty"`
}

// NewStatusResult 创建带状态码的检测结果
func NewStatusResult(url, method string, status int) CheckResult {
	return CheckResult{URL: url, Method: method, Status: &status}
}

// NewTransportFailure 创建传输失败的检测结果
func NewTransportFailure(url, method string, err error) CheckResult {
	r := CheckResult{URL: url, Method: method}
	if err != nil {
		r.Err = err.Error()
	}
	return r
}

// IsBroken 判断结果是否为失效链接
func (r CheckResult) IsBroken() bool {
	return r.Status == nil || IsBrokenStatus(*r.Status)
}

// StatusText 返回状态码的文本形式, 传输失败时为空字符串
func (r CheckResult) StatusText() string {
	if r.Status == nil {
		return ""
	}
	return strconv.Itoa(*r.Status)
}

// IsBrokenStatus 状态码 >= 400 或 < 100 视为失效
func IsBrokenStatus(status int) bool {
	return status > MaxHealthyStatus || status < MinHealthyStatus
}

// BrokenLink 失效链接记录
type BrokenLink = CheckResult

// CheckConfig 链接检测配置
type CheckConfig struct {
	Timeout  int  `json:"timeout" mapstructure:"timeout"`   // 单次请求超时(秒) (默认:10)
	Progress bool `json:"progress" mapstructure:"progress"` // 显示进度条
}

// Validate 验证配置
func (c *CheckConfig) Validate() error {
	if c.Timeout < 1 || c.Timeout > 300 {
		return fmt.Errorf("超时时间必须在1-300秒之间")
	}
	return nil
}
