package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"cafemap/backend/config"
)

// CategoryCafe 카카오 카테고리 그룹 코드: 카페
const CategoryCafe = "CE7"

// panel3 엔드포인트는 공개 API가 아니라서 브라우저인 척해야 응답을 준다
var panelHeaders = map[string]string{
	"accept":          "application/json, text/plain, */*",
	"accept-language": "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
	"appversion":      "6.6.0",
	"origin":          "https://place.map.kakao.com",
	"pf":              "PC",
	"referer":         "https://place.map.kakao.com/",
	"user-agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/143.0.0.0 Safari/537.36",
}

// API 카카오 API 접근 인터페이스 (테스트에서 목으로 교체)
type API interface {
	// SearchCafes 좌표 반경 내 카페 목록을 페이지 끝까지 수집
	SearchCafes(ctx context.Context, lat, lng float64, radius int) ([]Document, error)
	// FetchPanel 장소 상세 패널(panel3) 원본 JSON
	FetchPanel(ctx context.Context, placeID string) ([]byte, error)
}

// Client API의 HTTP 구현
type Client struct {
	localBaseURL string
	panelBaseURL string
	restKey      string
	panelCookie  string
	pageSize     int
	maxPages     int
	pageSleep    time.Duration
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewClient 설정으로 카카오 클라이언트 생성
func NewClient(cfg *config.KakaoConfig, logger *zap.Logger) *Client {
	return &Client{
		localBaseURL: cfg.LocalBaseURL,
		panelBaseURL: cfg.PanelBaseURL,
		restKey:      cfg.RESTKey,
		panelCookie:  cfg.PanelCookie,
		pageSize:     cfg.PageSize,
		maxPages:     cfg.MaxPages,
		pageSleep:    cfg.PageSleep,
		httpClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		logger:       logger,
	}
}

func (c *Client) SearchCafes(ctx context.Context, lat, lng float64, radius int) ([]Document, error) {
	var all []Document

	for page := 1; page <= c.maxPages; page++ {
		resp, err := c.searchPage(ctx, lat, lng, radius, page)
		if err != nil {
			return nil, fmt.Errorf("카테고리 검색 실패 (page=%d): %w", page, err)
		}
		all = append(all, resp.Documents...)

		if resp.Meta.IsEnd {
			break
		}
		// 과호출 방지
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pageSleep):
		}
	}

	c.logger.Info("카카오 카페 검색 완료",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng),
		zap.Int("radius", radius),
		zap.Int("count", len(all)),
	)
	return all, nil
}

func (c *Client) searchPage(ctx context.Context, lat, lng float64, radius, page int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("category_group_code", CategoryCafe)
	params.Set("y", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("x", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(radius))
	params.Set("sort", "distance")
	params.Set("size", strconv.Itoa(c.pageSize))
	params.Set("page", strconv.Itoa(page))

	reqURL := c.localBaseURL + "/v2/local/search/category.json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "KakaoAK "+c.restKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", res.StatusCode, truncate(body, 200))
	}

	var out SearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("응답 파싱 실패: %w", err)
	}
	return &out, nil
}

func (c *Client) FetchPanel(ctx context.Context, placeID string) ([]byte, error) {
	reqURL := c.panelBaseURL + "/places/panel3/" + url.PathEscape(placeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range panelHeaders {
		req.Header.Set(k, v)
	}
	if c.panelCookie != "" {
		req.Header.Set("Cookie", c.panelCookie)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		// 쿠키 만료 등을 바로 알 수 있도록 본문 앞부분을 에러에 싣는다
		return nil, fmt.Errorf("panel3 HTTP %d: %s", res.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
