package kakao

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cafemap/backend/config"
)

func testConfig(localURL, panelURL string) *config.KakaoConfig {
	return &config.KakaoConfig{
		RESTKey:      "test-rest-key",
		PanelCookie:  "session=abc",
		LocalBaseURL: localURL,
		PanelBaseURL: panelURL,
		HTTPTimeout:  5 * time.Second,
		PageSize:     15,
		MaxPages:     10,
		PageSleep:    time.Millisecond,
	}
}

func TestSearchCafes_Pagination(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, CategoryCafe, r.URL.Query().Get("category_group_code"))
		assert.Equal(t, "distance", r.URL.Query().Get("sort"))

		page := r.URL.Query().Get("page")
		isEnd := page == "2"
		fmt.Fprintf(w, `{
			"documents": [{"id": "cafe-%s", "place_name": "카페 %s", "x": "126.92", "y": "37.54"}],
			"meta": {"is_end": %v}
		}`, page, page, isEnd)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL, srv.URL), zap.NewNop())
	docs, err := c.SearchCafes(context.Background(), 37.5477, 126.9225, 1000)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "cafe-1", docs[0].ID)
	assert.Equal(t, "cafe-2", docs[1].ID)
	assert.Equal(t, "KakaoAK test-rest-key", gotAuth)
}

func TestSearchCafes_StopsAtMaxPages(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"documents": [], "meta": {"is_end": false}}`)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, srv.URL)
	cfg.MaxPages = 3
	c := NewClient(cfg, zap.NewNop())

	_, err := c.SearchCafes(context.Background(), 37.5, 126.9, 1000)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestSearchCafes_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL, srv.URL), zap.NewNop())
	_, err := c.SearchCafes(context.Background(), 37.5, 126.9, 1000)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFetchPanel_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places/panel3/12345", r.URL.Path)
		assert.Equal(t, "session=abc", r.Header.Get("Cookie"))
		assert.Equal(t, "https://place.map.kakao.com", r.Header.Get("Origin"))
		fmt.Fprint(w, `{"open_hours": {"week_from_today": {"week_periods": []}}}`)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL, srv.URL), zap.NewNop())
	raw, err := c.FetchPanel(context.Background(), "12345")

	require.NoError(t, err)
	assert.Contains(t, string(raw), "week_from_today")
}

// 쿠키 만료 등으로 panel3가 거부되면 본문 일부를 에러에 포함한다
func TestFetchPanel_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden by kakao", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL, srv.URL), zap.NewNop())
	_, err := c.FetchPanel(context.Background(), "12345")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "forbidden")
}
