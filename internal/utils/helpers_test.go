package utils

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadURLsFromFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "保持顺序",
			content: "http://b.test\nhttp://a.test\nhttp://c.test\n",
			want:    []string{"http://b.test", "http://a.test", "http://c.test"},
		},
		{
			name:    "去除空白和空行",
			content: "  http://a.test  \n\n\t\nhttp://b.test\r\n   \n",
			want:    []string{"http://a.test", "http://b.test"},
		},
		{
			name:    "没有结尾换行",
			content: "http://a.test",
			want:    []string{"http://a.test"},
		},
		{
			name:    "空文件",
			content: "",
			want:    []string{},
		},
		{
			name:    "非URL行原样保留",
			content: "not a url\nhttp://a.test\n",
			want:    []string{"not a url", "http://a.test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "urls.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("写入测试文件失败: %v", err)
			}

			got, err := ReadURLsFromFile(path)
			if err != nil {
				t.Fatalf("ReadURLsFromFile() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadURLsFromFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadURLsFromFile_Missing(t *testing.T) {
	_, err := ReadURLsFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("不存在的文件应返回错误")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("错误应包含文件不存在原因: %v", err)
	}
}

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"broken_links_report.csv", "broken_links_report.html"},
		{"out/report.csv", "out/report.html"},
		{"report.txt", "report.txt.html"},
		{"report", "report.html"},
	}

	for _, tt := range tests {
		if got := ReplaceExt(tt.path, ".csv", ".html"); got != tt.want {
			t.Errorf("ReplaceExt(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
