package model

import "time"

// Bookmark 즐겨찾기 — bookmarks
// 같은 사용자가 같은 장소를 중복 저장할 수 없다 (user_id+kakao_id 유니크).
type Bookmark struct {
	BookmarkID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"bookmark_id"`
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:uniq_user_place,priority:1" json:"user_id"`
	KakaoID    string `gorm:"type:varchar(32);not null;uniqueIndex:uniq_user_place,priority:2" json:"kakao_id"`

	Memo string `gorm:"type:varchar(200);not null;default:''" json:"memo"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 연관
	Place *Place `gorm:"foreignKey:KakaoID;references:KakaoID" json:"place,omitempty"`
}

// TableName 테이블명 지정
func (Bookmark) TableName() string { return "bookmarks" }
