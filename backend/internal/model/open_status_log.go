package model

import "time"

// OpenStatusLog 영업 상태 판정 로그 — open_status_logs
// 평가 시점마다 한 건씩 쌓이는 불변 로그. 생성 후 수정하지 않는다.
// Place 1 : N OpenStatusLog
type OpenStatusLog struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	KakaoID string `gorm:"type:varchar(32);not null;index:idx_status_logs_place_checked,priority:1" json:"kakao_id"`

	// 판정 당시의 이름 (Place.name이 바뀔 수 있어서 기록용)
	Name *string `gorm:"type:text" json:"name,omitempty"`

	// nil=판정 불가 / true=영업중 / false=영업 전·종료·휴무
	IsOpenNow *bool `json:"is_open_now"`

	TodayOpenTime  *string `gorm:"type:varchar(5)" json:"today_open_time,omitempty"`
	TodayCloseTime *string `gorm:"type:varchar(5)" json:"today_close_time,omitempty"`

	MinutesToClose *int `json:"minutes_to_close,omitempty"`
	MinutesToOpen  *int `json:"minutes_to_open,omitempty"`

	TodayStatusNote *string `gorm:"type:text" json:"today_status_note,omitempty"`

	CheckedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_status_logs_place_checked,priority:2,sort:desc;index:idx_status_logs_checked,sort:desc" json:"checked_at"`
}

// TableName 테이블명 지정
func (OpenStatusLog) TableName() string { return "open_status_logs" }
