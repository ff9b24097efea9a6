package kakao

// ── Kakao Local API 응답 모델 ──

// Document 카테고리 검색 결과의 장소 한 건.
// 카카오는 좌표를 문자열로 내려준다 (x=경도, y=위도).
type Document struct {
	ID              string `json:"id"`
	PlaceName       string `json:"place_name"`
	AddressName     string `json:"address_name"`
	RoadAddressName string `json:"road_address_name"`
	Phone           string `json:"phone"`
	PlaceURL        string `json:"place_url"`
	X               string `json:"x"`
	Y               string `json:"y"`
	Distance        string `json:"distance"`
	CategoryName    string `json:"category_name"`
}

// Meta 검색 페이지네이션 메타
type Meta struct {
	TotalCount    int  `json:"total_count"`
	PageableCount int  `json:"pageable_count"`
	IsEnd         bool `json:"is_end"`
}

// SearchResponse 카테고리 검색 응답
type SearchResponse struct {
	Documents []Document `json:"documents"`
	Meta      Meta       `json:"meta"`
}
