package core

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/RecoveryAshes/sitemapcheck/internal/crawlers"
	"github.com/RecoveryAshes/sitemapcheck/internal/models"
)

// fakeURLChecker 按URL返回预设结果, 并记录检测顺序
type fakeURLChecker struct {
	statuses map[string]int // 不在表中的URL视为传输失败
	checked  []string
}

func (f *fakeURLChecker) Check(url string) models.CheckResult {
	f.checked = append(f.checked, url)
	if status, ok := f.statuses[url]; ok {
		return models.NewStatusResult(url, http.MethodHead, status)
	}
	return models.NewTransportFailure(url, http.MethodGet, errors.New("dial tcp: connection refused"))
}

func TestFindBroken(t *testing.T) {
	links := &fakeURLChecker{statuses: map[string]int{
		"http://a.test": 200,
		"http://b.test": 500,
	}}
	urls := []string{"http://a.test", "http://b.test", "http://c.test"}

	broken := NewChecker(links, false).FindBroken(urls)

	if len(broken) != 2 {
		t.Fatalf("失效链接数 = %d, want 2: %+v", len(broken), broken)
	}
	if broken[0].URL != "http://b.test" || broken[0].Status == nil || *broken[0].Status != 500 {
		t.Errorf("第一条记录错误: %+v", broken[0])
	}
	if broken[1].URL != "http://c.test" || broken[1].Status != nil {
		t.Errorf("第二条记录错误: %+v", broken[1])
	}
	if !reflect.DeepEqual(links.checked, urls) {
		t.Errorf("检测顺序 = %v, want %v", links.checked, urls)
	}
}

func TestFindBroken_Thresholds(t *testing.T) {
	links := &fakeURLChecker{statuses: map[string]int{
		"u99":  99,
		"u100": 100,
		"u204": 204,
		"u399": 399,
		"u400": 400,
		"u503": 503,
	}}
	urls := []string{"u99", "u100", "u204", "u399", "u400", "u503"}

	broken := NewChecker(links, false).FindBroken(urls)

	var got []string
	for _, b := range broken {
		got = append(got, b.URL)
	}
	want := []string{"u99", "u400", "u503"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("失效链接 = %v, want %v", got, want)
	}
}

func TestFindBroken_Empty(t *testing.T) {
	broken := NewChecker(&fakeURLChecker{}, true).FindBroken(nil)
	if broken == nil || len(broken) != 0 {
		t.Errorf("空输入应返回空列表, 得到 %v", broken)
	}
}

func TestFindBroken_WithProgressBar(t *testing.T) {
	links := &fakeURLChecker{statuses: map[string]int{"a": 200, "b": 404}}
	broken := NewChecker(links, true).FindBroken([]string{"a", "b"})
	if len(broken) != 1 || broken[0].URL != "b" {
		t.Errorf("失效链接 = %+v", broken)
	}
}

func TestFindBroken_WithLinkChecker(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	links := crawlers.NewLinkChecker(crawlers.LinkCheckerConfig{Timeout: 2 * time.Second})
	broken := NewChecker(links, false).FindBroken([]string{ok.URL, failing.URL, closedURL})

	if len(broken) != 2 {
		t.Fatalf("失效链接数 = %d, want 2: %+v", len(broken), broken)
	}
	if broken[0].URL != failing.URL || broken[0].Status == nil || *broken[0].Status != 500 {
		t.Errorf("第一条记录错误: %+v", broken[0])
	}
	if broken[1].URL != closedURL || broken[1].Status != nil {
		t.Errorf("第二条记录错误: %+v", broken[1])
	}
}
