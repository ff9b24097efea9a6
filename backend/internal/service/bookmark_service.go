package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cafemap/backend/internal/dto"
	"cafemap/backend/internal/model"
	"cafemap/backend/internal/repository"
)

var (
	ErrBookmarkNotFound = errors.New("존재하지 않는 북마크입니다")
	ErrNotBookmarkOwner = errors.New("본인의 북마크만 변경할 수 있습니다")
)

// BookmarkService 북마크 비즈니스 인터페이스
type BookmarkService interface {
	Create(ctx context.Context, userID string, req *dto.CreateBookmarkRequest) (*dto.BookmarkResponse, error)
	List(ctx context.Context, userID string) ([]dto.BookmarkResponse, error)
	UpdateMemo(ctx context.Context, userID, bookmarkID string, req *dto.UpdateMemoRequest) (*dto.BookmarkResponse, error)
	Delete(ctx context.Context, userID, bookmarkID string) error
}

type bookmarkService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBookmarkService BookmarkService 인스턴스 생성
func NewBookmarkService(repo *repository.Repository, logger *zap.Logger) BookmarkService {
	return &bookmarkService{repo: repo, logger: logger}
}

// Create 북마크 생성. 이미 같은 장소를 저장했다면 기존 북마크를 그대로 돌려준다.
func (s *bookmarkService) Create(ctx context.Context, userID string, req *dto.CreateBookmarkRequest) (*dto.BookmarkResponse, error) {
	// 1. 장소 존재 확인
	if _, err := s.repo.Place.GetByID(ctx, req.PlaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		s.logger.Error("장소 조회 실패", zap.Error(err))
		return nil, err
	}

	// 2. 중복이면 기존 북마크 반환 (멱등)
	existing, err := s.repo.Bookmark.GetByUserAndPlace(ctx, userID, req.PlaceID)
	if err == nil {
		resp := toBookmarkResponse(existing)
		return &resp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("북마크 조회 실패", zap.Error(err))
		return nil, err
	}

	// 3. 생성
	bookmark := &model.Bookmark{
		UserID:  userID,
		KakaoID: req.PlaceID,
		Memo:    req.Memo,
	}
	if err := s.repo.Bookmark.Create(ctx, bookmark); err != nil {
		s.logger.Error("북마크 생성 실패", zap.Error(err))
		return nil, err
	}

	// 장소 정보 포함해서 다시 조회
	created, err := s.repo.Bookmark.GetByID(ctx, bookmark.BookmarkID)
	if err != nil {
		s.logger.Error("생성한 북마크 조회 실패", zap.Error(err))
		return nil, err
	}
	resp := toBookmarkResponse(created)
	return &resp, nil
}

func (s *bookmarkService) List(ctx context.Context, userID string) ([]dto.BookmarkResponse, error) {
	bookmarks, err := s.repo.Bookmark.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("북마크 목록 조회 실패", zap.Error(err))
		return nil, err
	}

	result := make([]dto.BookmarkResponse, 0, len(bookmarks))
	for i := range bookmarks {
		result = append(result, toBookmarkResponse(&bookmarks[i]))
	}
	return result, nil
}

func (s *bookmarkService) UpdateMemo(ctx context.Context, userID, bookmarkID string, req *dto.UpdateMemoRequest) (*dto.BookmarkResponse, error) {
	bookmark, err := s.getOwned(ctx, userID, bookmarkID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Bookmark.UpdateMemo(ctx, bookmark.BookmarkID, req.Memo); err != nil {
		s.logger.Error("메모 수정 실패", zap.Error(err))
		return nil, err
	}

	bookmark.Memo = req.Memo
	resp := toBookmarkResponse(bookmark)
	return &resp, nil
}

func (s *bookmarkService) Delete(ctx context.Context, userID, bookmarkID string) error {
	bookmark, err := s.getOwned(ctx, userID, bookmarkID)
	if err != nil {
		return err
	}
	if err := s.repo.Bookmark.Delete(ctx, bookmark.BookmarkID); err != nil {
		s.logger.Error("북마크 삭제 실패", zap.Error(err))
		return err
	}
	return nil
}

// getOwned 북마크 조회 + 소유자 검사
func (s *bookmarkService) getOwned(ctx context.Context, userID, bookmarkID string) (*model.Bookmark, error) {
	bookmark, err := s.repo.Bookmark.GetByID(ctx, bookmarkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookmarkNotFound
		}
		s.logger.Error("북마크 조회 실패", zap.Error(err))
		return nil, err
	}
	if bookmark.UserID != userID {
		return nil, ErrNotBookmarkOwner
	}
	return bookmark, nil
}

func toBookmarkResponse(b *model.Bookmark) dto.BookmarkResponse {
	resp := dto.BookmarkResponse{
		BookmarkID: b.BookmarkID,
		Memo:       b.Memo,
		CreatedAt:  b.CreatedAt,
	}
	if b.Place != nil {
		resp.Place = toPlaceResponse(b.Place, nil, nil)
	} else {
		resp.Place = dto.PlaceResponse{KakaoID: b.KakaoID}
	}
	return resp
}
