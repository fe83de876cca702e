package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/RecoveryAshes/sitemapcheck/internal/models"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"成功", nil, exitOK},
		{"存在失效链接", errBrokenLinksFound, exitBrokenLinks},
		{"没有URL来源", models.ErrNoURLSource, exitUsage},
		{"包装后的无来源错误", fmt.Errorf("run: %w", models.ErrNoURLSource), exitUsage},
		{"站点地图获取失败", &models.FetchError{URL: "https://example.com/sitemap.xml", StatusCode: 404}, exitBrokenLinks},
		{"站点地图解析失败", &models.ParseError{URL: "https://example.com/sitemap.xml", Cause: errors.New("EOF")}, exitBrokenLinks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name       string
		sitemapURL string
		urlFile    string
		timeout    int
		wantErr    bool
	}{
		{"有效站点地图", "https://example.com/sitemap.xml", "", 10, false},
		{"没有来源", "", "", 10, false},
		{"无效站点地图URL", "example.com/sitemap.xml", "", 10, true},
		{"URL文件优先时忽略站点地图URL", "not a url", "urls.txt", 10, false},
		{"超时过小", "", "urls.txt", 0, true},
		{"超时过大", "", "urls.txt", 301, true},
		{"超时边界", "", "urls.txt", 300, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFlags(tt.sitemapURL, tt.urlFile, tt.timeout)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
