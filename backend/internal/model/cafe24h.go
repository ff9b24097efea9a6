package model

import "time"

// Cafe24h 24시간 카페 투영 테이블 — cafes_24h
// refresh 시점마다 "오늘 00:00 개점, 자정 마감"으로 판정된 장소만 유지한다.
// Place 1 : 1
type Cafe24h struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	KakaoID string `gorm:"type:varchar(32);not null;uniqueIndex" json:"kakao_id"`

	Name           *string `gorm:"type:text"       json:"name,omitempty"`
	TodayOpenTime  *string `gorm:"type:varchar(5)" json:"today_open_time,omitempty"`
	TodayCloseTime *string `gorm:"type:varchar(5)" json:"today_close_time,omitempty"`

	CheckedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"checked_at"`
}

// TableName 테이블명 지정
func (Cafe24h) TableName() string { return "cafes_24h" }
