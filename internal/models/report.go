package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SourceKind URL来源类型
type SourceKind string

const (
	SourceSitemap SourceKind = "sitemap" // 站点地图
	SourceFile    SourceKind = "file"    // URL列表文件
)

// CheckReport 检测报告
type CheckReport struct {
	// 运行信息
	RunID      string     `json:"run_id"`
	SourceKind SourceKind `json:"source_kind"`
	Source     string     `json:"source"` // 站点地图URL或文件路径

	// 时间信息
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  float64   `json:"duration"` // 秒

	// 统计信息
	TotalURLs   int `json:"total_urls"`
	BrokenCount int `json:"broken_count"`

	Broken []BrokenLink `json:"broken"`

	// 配置快照
	Config CheckConfig `json:"config"`
}

// NewCheckReport 创建检测报告
func NewCheckReport(kind SourceKind, source string, config CheckConfig) *CheckReport {
	return &CheckReport{
		RunID:      uuid.New().String(),
		SourceKind: kind,
		Source:     source,
		StartTime:  time.Now(),
		Broken:     []BrokenLink{},
		Config:     config,
	}
}

// Finish 记录检测结果并计算耗时
func (r *CheckReport) Finish(total int, broken []BrokenLink) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime).Seconds()
	r.TotalURLs = total
	r.BrokenCount = len(broken)
	if broken != nil {
		r.Broken = broken
	}
}

// ToJSON 序列化为JSON
func (r *CheckReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
