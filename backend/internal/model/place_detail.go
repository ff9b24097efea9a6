package model

import "time"

// PlaceDetail 카페 상세 스냅샷 — place_details
// panel3를 긁을 때마다 한 건씩 쌓는 append-only 테이블.
// Place 1 : N PlaceDetail
type PlaceDetail struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	KakaoID string `gorm:"type:varchar(32);not null;index:idx_place_details_place_fetched,priority:1" json:"kakao_id"`

	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"review_count,omitempty"`
	HolidayDesc *string  `gorm:"type:text" json:"holiday_desc,omitempty"`

	// 주간 영업시간의 표시용 요약과 원본 JSON (판정은 항상 JSON으로 다시 한다)
	OpeningHoursText *string `gorm:"type:text" json:"opening_hours_text,omitempty"`
	OpeningHoursJSON *string `gorm:"type:text" json:"opening_hours_json,omitempty"`

	FetchedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_place_details_place_fetched,priority:2,sort:desc" json:"fetched_at"`
}

// TableName 테이블명 지정
func (PlaceDetail) TableName() string { return "place_details" }
