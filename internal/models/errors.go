package models

import (
	"errors"
	"fmt"
)

// ErrNoURLSource 未提供 --sitemap / --url-file 且配置中也没有默认站点地图
var ErrNoURLSource = errors.New("必须提供 --sitemap 或 --url-file")

// FetchError 站点地图获取失败 (非2xx响应或网络错误)
// 该错误会中止整个遍历
type FetchError struct {
	URL        string
	StatusCode int // 0 表示没有收到响应
	Cause      error
}

// Error 实现error接口
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("获取站点地图失败 [%s]: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("获取站点地图失败 [%s]: %v", e.URL, e.Cause)
}

// Unwrap 支持errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ParseError 站点地图XML格式错误
type ParseError struct {
	URL   string
	Cause error
}

// Error 实现error接口
func (e *ParseError) Error() string {
	return fmt.Sprintf("解析站点地图失败 [%s]: %v", e.URL, e.Cause)
}

// Unwrap 支持errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ConfigError 配置文件错误
// 表示配置文件解析失败
type ConfigError struct {
	// FilePath 配置文件路径
	FilePath string

	// Cause 底层错误 (如viper.ConfigParseError)
	Cause error
}

// Error 实现error接口
func (e *ConfigError) Error() string {
	return fmt.Sprintf("配置文件错误 [%s]: %v", e.FilePath, e.Cause)
}

// Unwrap 支持errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Cause
}
