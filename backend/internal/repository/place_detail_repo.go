package repository

import (
	"context"

	"gorm.io/gorm"

	"cafemap/backend/internal/model"
)

// PlaceDetailRepository 상세 스냅샷 데이터 접근 인터페이스
type PlaceDetailRepository interface {
	Create(ctx context.Context, detail *model.PlaceDetail) error
	BatchCreate(ctx context.Context, details []model.PlaceDetail) error
	LatestByPlace(ctx context.Context, kakaoID string) (*model.PlaceDetail, error)
	LatestByPlaces(ctx context.Context, kakaoIDs []string) (map[string]model.PlaceDetail, error)
	LatestForAll(ctx context.Context) ([]model.PlaceDetail, error)
}

// placeDetailRepo PlaceDetailRepository 의 GORM 구현
type placeDetailRepo struct {
	db *gorm.DB
}

// NewPlaceDetailRepo PlaceDetailRepository 인스턴스 생성
func NewPlaceDetailRepo(db *gorm.DB) PlaceDetailRepository {
	return &placeDetailRepo{db: db}
}

func (r *placeDetailRepo) Create(ctx context.Context, detail *model.PlaceDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *placeDetailRepo) BatchCreate(ctx context.Context, details []model.PlaceDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(details, 100).Error
}

func (r *placeDetailRepo) LatestByPlace(ctx context.Context, kakaoID string) (*model.PlaceDetail, error) {
	var detail model.PlaceDetail
	err := r.db.WithContext(ctx).
		Where("kakao_id = ?", kakaoID).
		Order("fetched_at DESC, id DESC").
		First(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// LatestByPlaces 주어진 장소들의 최신 스냅샷 한 건씩 조회
func (r *placeDetailRepo) LatestByPlaces(ctx context.Context, kakaoIDs []string) (map[string]model.PlaceDetail, error) {
	result := make(map[string]model.PlaceDetail, len(kakaoIDs))
	if len(kakaoIDs) == 0 {
		return result, nil
	}

	sub := r.db.Model(&model.PlaceDetail{}).
		Select("MAX(id)").
		Where("kakao_id IN ?", kakaoIDs).
		Group("kakao_id")

	var details []model.PlaceDetail
	err := r.db.WithContext(ctx).
		Where("id IN (?)", sub).
		Find(&details).Error
	if err != nil {
		return nil, err
	}

	for _, d := range details {
		result[d.KakaoID] = d
	}
	return result, nil
}

// LatestForAll 장소별 최신 스냅샷 한 건씩 조회
func (r *placeDetailRepo) LatestForAll(ctx context.Context) ([]model.PlaceDetail, error) {
	var details []model.PlaceDetail
	sub := r.db.Model(&model.PlaceDetail{}).
		Select("MAX(id)").
		Group("kakao_id")
	err := r.db.WithContext(ctx).
		Where("id IN (?)", sub).
		Order("kakao_id").
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}
