package model

// Place 카페 기본 정보 — places
// 카카오 장소 ID를 그대로 PK로 쓴다.
type Place struct {
	KakaoID      string   `gorm:"type:varchar(32);primaryKey" json:"kakao_id"`
	Name         *string  `gorm:"type:text"                   json:"name,omitempty"`
	Address      *string  `gorm:"type:text"                   json:"address,omitempty"`
	RoadAddress  *string  `gorm:"type:text"                   json:"road_address,omitempty"`
	Phone        *string  `gorm:"type:text"                   json:"phone,omitempty"`
	PlaceURL     *string  `gorm:"type:text"                   json:"place_url,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	CategoryName *string  `gorm:"type:text"                   json:"category_name,omitempty"`
	BaseModel

	// 연관 (스냅샷들은 장소 삭제 시 함께 삭제)
	Details    []PlaceDetail   `gorm:"foreignKey:KakaoID;references:KakaoID;constraint:OnDelete:CASCADE" json:"details,omitempty"`
	StatusLogs []OpenStatusLog `gorm:"foreignKey:KakaoID;references:KakaoID;constraint:OnDelete:CASCADE" json:"status_logs,omitempty"`
}

// TableName 테이블명 지정
func (Place) TableName() string { return "places" }
