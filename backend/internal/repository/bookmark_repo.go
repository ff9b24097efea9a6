package repository

import (
	"context"

	"gorm.io/gorm"

	"cafemap/backend/internal/model"
)

// BookmarkRepository 북마크 데이터 접근 인터페이스
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *model.Bookmark) error
	GetByID(ctx context.Context, id string) (*model.Bookmark, error)
	GetByUserAndPlace(ctx context.Context, userID, kakaoID string) (*model.Bookmark, error)
	ListByUser(ctx context.Context, userID string) ([]model.Bookmark, error)
	UpdateMemo(ctx context.Context, id, memo string) error
	Delete(ctx context.Context, id string) error
}

// bookmarkRepo BookmarkRepository 의 GORM 구현
type bookmarkRepo struct {
	db *gorm.DB
}

// NewBookmarkRepo BookmarkRepository 인스턴스 생성
func NewBookmarkRepo(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepo{db: db}
}

func (r *bookmarkRepo) Create(ctx context.Context, bookmark *model.Bookmark) error {
	return r.db.WithContext(ctx).Create(bookmark).Error
}

func (r *bookmarkRepo) GetByID(ctx context.Context, id string) (*model.Bookmark, error) {
	var bookmark model.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Place").
		Where("bookmark_id = ?", id).
		First(&bookmark).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *bookmarkRepo) GetByUserAndPlace(ctx context.Context, userID, kakaoID string) (*model.Bookmark, error) {
	var bookmark model.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Place").
		Where("user_id = ? AND kakao_id = ?", userID, kakaoID).
		First(&bookmark).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *bookmarkRepo) ListByUser(ctx context.Context, userID string) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Place").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (r *bookmarkRepo) UpdateMemo(ctx context.Context, id, memo string) error {
	return r.db.WithContext(ctx).
		Model(&model.Bookmark{}).
		Where("bookmark_id = ?", id).
		Update("memo", memo).Error
}

func (r *bookmarkRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("bookmark_id = ?", id).
		Delete(&model.Bookmark{}).Error
}
