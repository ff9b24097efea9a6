package dto

import "time"

// ── 장소 DTO ──

// ListPlacesQuery 지도 범위 기반 장소 조회 쿼리
type ListPlacesQuery struct {
	Lat    float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lng    float64 `form:"lng" binding:"required,min=-180,max=180"`
	Radius float64 `form:"radius,default=1000" binding:"min=1,max=20000"`
}

// PlaceResponse 장소 + 최신 영업 상태 응답
type PlaceResponse struct {
	KakaoID         string   `json:"kakao_id"`
	Name            *string  `json:"name"`
	Address         *string  `json:"address"`
	RoadAddress     *string  `json:"road_address"`
	Phone           *string  `json:"phone"`
	PlaceURL        *string  `json:"place_url"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
	IsOpenNow       *bool    `json:"is_open_now"`
	TodayOpenClose  *string  `json:"today_open_close"`
	MinutesToClose  *int     `json:"minutes_to_close"`
	MinutesToOpen   *int     `json:"minutes_to_open"`
	TodayStatusNote *string  `json:"today_status_note"`
	OpenHourSummary *string  `json:"open_hour_summary"`
}

// StatusLogQuery 영업 상태 로그 조회 쿼리
type StatusLogQuery struct {
	Limit int    `form:"limit,default=50" binding:"min=1,max=500"`
	Order string `form:"order,default=id" binding:"oneof=id minutes"`
}

// StatusLogResponse 영업 상태 로그 응답
type StatusLogResponse struct {
	ID              uint      `json:"id"`
	PlaceID         string    `json:"place_id"`
	PlaceName       *string   `json:"place_name"`
	IsOpenNow       *bool     `json:"is_open_now"`
	TodayOpenTime   *string   `json:"today_open_time"`
	TodayCloseTime  *string   `json:"today_close_time"`
	TodayOpenClose  *string   `json:"today_open_close"`
	MinutesToClose  *int      `json:"minutes_to_close"`
	MinutesToOpen   *int      `json:"minutes_to_open"`
	TodayStatusNote *string   `json:"today_status_note"`
	CheckedAt       time.Time `json:"checked_at"`
}

// Cafe24hResponse 24시간 카페 응답
type Cafe24hResponse struct {
	KakaoID     string   `json:"kakao_id"`
	Name        *string  `json:"name"`
	Address     *string  `json:"address"`
	RoadAddress *string  `json:"road_address"`
	Phone       *string  `json:"phone"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// CollectPlacesRequest 장소 수집 요청
type CollectPlacesRequest struct {
	Lat    *float64 `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lng    *float64 `json:"lng" binding:"omitempty,min=-180,max=180"`
	Radius *float64 `json:"radius" binding:"omitempty,min=1,max=20000"`
}

// CollectResultResponse 수집 작업 결과 응답
type CollectResultResponse struct {
	Requested int `json:"requested"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// RefreshStatusResponse 상태 갱신 결과 응답
type RefreshStatusResponse struct {
	Refreshed int `json:"refreshed"` // 영업시간 문서로 판정한 스냅샷 수
	Skipped   int `json:"skipped"`   // 문서가 없어 unknown 으로만 기록한 스냅샷 수
}
