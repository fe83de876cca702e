package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/RecoveryAshes/sitemapcheck/internal/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
default_sitemap_url: https://example.com/sitemap.xml
default_output_path: reports/out.csv
check:
  timeout: 5
  progress: true
  insecure_skip_verify: true
logging:
  level: debug
headers:
  X-Api-Key: secret-value
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.DefaultSitemapURL != "https://example.com/sitemap.xml" {
		t.Errorf("DefaultSitemapURL = %q", config.DefaultSitemapURL)
	}
	if config.DefaultOutputPath != "reports/out.csv" {
		t.Errorf("DefaultOutputPath = %q", config.DefaultOutputPath)
	}
	if config.Check.Timeout != 5 || !config.Check.Progress || !config.Check.InsecureSkipVerify {
		t.Errorf("Check = %+v", config.Check)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", config.Logging.Level)
	}
	if config.Logging.Rotation.MaxSize != 10 {
		t.Errorf("未设置的项应使用默认值, MaxSize = %d", config.Logging.Rotation.MaxSize)
	}
	if len(config.Headers) != 1 {
		t.Errorf("Headers = %v", config.Headers)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	var configErr *models.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("缺失的配置文件应返回 ConfigError, 得到 %v", err)
	}
	if !IsMissingConfig(err) {
		t.Error("IsMissingConfig 应为 true")
	}
	if config == nil {
		t.Fatal("缺失配置文件时仍应返回默认配置")
	}
	if config.DefaultSitemapURL != "" || config.Check.Timeout != 10 {
		t.Errorf("默认配置错误: %+v", config)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"未闭合的序列", "default_sitemap_url: [unclosed\n"},
		{"缩进错误", "check:\n  timeout: 5\n bad: indent\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(writeConfig(t, tt.content))

			var configErr *models.ConfigError
			if !errors.As(err, &configErr) {
				t.Fatalf("无效配置应返回 ConfigError, 得到 %v", err)
			}
			if IsMissingConfig(err) {
				t.Error("无效配置不应视为文件缺失")
			}
			if config == nil || config.DefaultSitemapURL != "" || config.Check.Timeout != 10 {
				t.Errorf("无效配置应退回默认值: %+v", config)
			}
		})
	}
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("空配置文件不应报错: %v", err)
	}
	if config.Check.Timeout != 10 {
		t.Errorf("Timeout = %d, want 10", config.Check.Timeout)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SITEMAPCHECK_DEFAULT_SITEMAP_URL", "https://env.example.com/sitemap.xml")
	t.Setenv("SITEMAPCHECK_CHECK_TIMEOUT", "30")

	config, _ := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if config.DefaultSitemapURL != "https://env.example.com/sitemap.xml" {
		t.Errorf("DefaultSitemapURL = %q", config.DefaultSitemapURL)
	}
	if config.Check.Timeout != 30 {
		t.Errorf("Timeout = %d, want 30", config.Check.Timeout)
	}
}

func TestConfig_ResolveSitemapURL(t *testing.T) {
	config := &Config{DefaultSitemapURL: "https://config.test/sitemap.xml"}

	if got := config.ResolveSitemapURL("https://flag.test/sitemap.xml"); got != "https://flag.test/sitemap.xml" {
		t.Errorf("命令行参数应优先, 得到 %s", got)
	}
	if got := config.ResolveSitemapURL(""); got != "https://config.test/sitemap.xml" {
		t.Errorf("应使用配置默认值, 得到 %s", got)
	}
	if got := (&Config{}).ResolveSitemapURL(""); got != "" {
		t.Errorf("都未提供时应为空, 得到 %s", got)
	}
}

func TestConfig_ResolveOutputPath(t *testing.T) {
	tests := []struct {
		name        string
		configValue string
		flagValue   string
		flagChanged bool
		want        string
	}{
		{"显式参数优先", "config.csv", "flag.csv", true, "flag.csv"},
		{"未指定参数使用配置", "config.csv", DefaultOutputPath, false, "config.csv"},
		{"都未指定使用默认", "", DefaultOutputPath, false, DefaultOutputPath},
		{"参数为空使用默认", "", "", false, DefaultOutputPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{DefaultOutputPath: tt.configValue}
			if got := config.ResolveOutputPath(tt.flagValue, tt.flagChanged); got != tt.want {
				t.Errorf("ResolveOutputPath() = %s, want %s", got, tt.want)
			}
		})
	}
}
