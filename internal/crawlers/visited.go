package crawlers

// VisitedSet 单次站点地图遍历中已获取过的站点地图URL集合
// 由遍历独占, 不做并发保护
type VisitedSet struct {
	urls map[string]bool
}

// NewVisitedSet 创建空集合
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: make(map[string]bool)}
}

// MarkIfNotVisited 未访问时标记并返回true, 已访问返回false
func (s *VisitedSet) MarkIfNotVisited(url string) bool {
	if s.urls[url] {
		return false
	}
	s.urls[url] = true
	return true
}

// Len 已访问数量
func (s *VisitedSet) Len() int {
	return len(s.urls)
}
