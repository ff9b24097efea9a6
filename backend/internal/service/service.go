package service

import (
	"go.uber.org/zap"

	"cafemap/backend/config"
	"cafemap/backend/internal/kakao"
	"cafemap/backend/internal/repository"
	"cafemap/backend/pkg/jwt"
	"cafemap/backend/pkg/redis"
)

// Service 모든 Service 의 집합 진입점
type Service struct {
	Auth     AuthService
	Place    PlaceService
	Bookmark BookmarkService
	Collect  CollectService
	Export   ExportService
	Calendar CalendarService
}

// NewService Service 집합 생성
// rdb 는 nil 허용 (Redis 없이 degraded 모드로 기동)
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	kakaoAPI kakao.API,
	logger *zap.Logger,
) *Service {
	place := NewPlaceService(repo, rdb, logger)
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Place:    place,
		Bookmark: NewBookmarkService(repo, logger),
		Collect:  NewCollectService(cfg, repo, rdb, kakaoAPI, logger),
		Export:   NewExportService(repo, logger),
		Calendar: NewCalendarService(cfg, repo, logger),
	}
}
