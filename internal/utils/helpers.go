package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadURLsFromFile 从文件中读取URL列表
// 每行一个URL, 去除首尾空白并跳过空行, 保持原有顺序
func ReadURLsFromFile(filepath string) ([]string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("打开URL文件失败: %w", err)
	}
	defer file.Close()

	urls := make([]string, 0)
	scanner := bufio.NewScanner(file)
	// 允许超长行 (部分URL带很长的查询串)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取URL文件失败: %w", err)
	}

	Infof("从文件加载了 %d 个URL", len(urls))
	return urls, nil
}

// ReplaceExt 替换路径的扩展名
// 路径以 oldExt 结尾时替换为 newExt, 否则直接追加 newExt
func ReplaceExt(path, oldExt, newExt string) string {
	if strings.HasSuffix(path, oldExt) {
		return strings.TrimSuffix(path, oldExt) + newExt
	}
	return path + newExt
}
