package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/RecoveryAshes/sitemapcheck/internal/models"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigFile 默认配置文件路径
	DefaultConfigFile = "config.yaml"

	// DefaultOutputPath 默认CSV报告路径
	DefaultOutputPath = "broken_links_report.csv"

	envPrefix = "SITEMAPCHECK"
)

// Config 应用程序配置
type Config struct {
	DefaultSitemapURL string            `mapstructure:"default_sitemap_url"`
	DefaultOutputPath string            `mapstructure:"default_output_path"`
	Check             CheckSettings     `mapstructure:"check"`
	Logging           LoggingConfig     `mapstructure:"logging"`
	Headers           map[string]string `mapstructure:"headers"`
}

// CheckSettings 链接检测配置
type CheckSettings struct {
	models.CheckConfig `mapstructure:",squash"`

	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"`
	NoColor  bool           `mapstructure:"no_color"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// LoadConfig 加载配置文件
// 配置文件缺失或无效时返回默认配置和 *models.ConfigError, 调用方记录后继续运行
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigFile
	}

	v := newViper()

	var loadErr error
	if _, err := os.Stat(configPath); err != nil {
		loadErr = &models.ConfigError{FilePath: configPath, Cause: err}
	} else {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			loadErr = &models.ConfigError{FilePath: configPath, Cause: err}
			v = newViper()
		}
	}

	config, err := unmarshal(v)
	if err != nil {
		// 文件内容结构不符合预期时退回默认值
		config, _ = unmarshal(newViper())
		return config, &models.ConfigError{FilePath: configPath, Cause: fmt.Errorf("解析配置文件失败: %w", err)}
	}

	return config, loadErr
}

// IsMissingConfig 判断错误是否为配置文件不存在
func IsMissingConfig(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.Headers == nil {
		config.Headers = make(map[string]string)
	}
	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("default_sitemap_url", "")
	v.SetDefault("default_output_path", "")

	// 检测配置默认值
	v.SetDefault("check.timeout", 10)
	v.SetDefault("check.progress", false)
	v.SetDefault("check.insecure_skip_verify", false)

	// 日志配置默认值
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_dir", "")
	v.SetDefault("logging.no_color", false)
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)
}

// ResolveSitemapURL 命令行参数优先, 其次配置文件
func (c *Config) ResolveSitemapURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return strings.TrimSpace(c.DefaultSitemapURL)
}

// ResolveOutputPath 命令行参数优先, 其次配置文件, 最后使用默认路径
func (c *Config) ResolveOutputPath(flagValue string, flagChanged bool) string {
	if flagChanged && flagValue != "" {
		return flagValue
	}
	if path := strings.TrimSpace(c.DefaultOutputPath); path != "" {
		return path
	}
	if flagValue != "" {
		return flagValue
	}
	return DefaultOutputPath
}
