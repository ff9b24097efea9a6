package handler

import "cafemap/backend/internal/service"

// Handler 모든 Handler 의 집합 진입점
type Handler struct {
	Auth     *AuthHandler
	Place    *PlaceHandler
	Bookmark *BookmarkHandler
	Export   *ExportHandler
}

// NewHandler Handler 집합 생성
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Place:    NewPlaceHandler(svc.Place, svc.Collect),
		Bookmark: NewBookmarkHandler(svc.Bookmark, svc.Calendar),
		Export:   NewExportHandler(svc.Export),
	}
}
