package dto

import "time"

// ── 북마크 DTO ──

// CreateBookmarkRequest 북마크 생성 요청
type CreateBookmarkRequest struct {
	PlaceID string `json:"place_id" binding:"required,max=32"`
	Memo    string `json:"memo" binding:"max=200"`
}

// UpdateMemoRequest 북마크 메모 수정 요청
type UpdateMemoRequest struct {
	Memo string `json:"memo" binding:"max=200"`
}

// BookmarkResponse 북마크 응답
type BookmarkResponse struct {
	BookmarkID string        `json:"bookmark_id"`
	Memo       string        `json:"memo"`
	CreatedAt  time.Time     `json:"created_at"`
	Place      PlaceResponse `json:"place"`
}
