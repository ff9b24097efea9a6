package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cafemap/backend/internal/model"
)

// PlaceRepository 장소 데이터 접근 인터페이스
type PlaceRepository interface {
	Upsert(ctx context.Context, place *model.Place) error
	BatchUpsert(ctx context.Context, places []model.Place) error
	GetByID(ctx context.Context, kakaoID string) (*model.Place, error)
	ListInBBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64, limit int) ([]model.Place, error)
	ListByIDs(ctx context.Context, kakaoIDs []string) ([]model.Place, error)
	ListAll(ctx context.Context) ([]model.Place, error)
}

// placeRepo PlaceRepository 의 GORM 구현
type placeRepo struct {
	db *gorm.DB
}

// NewPlaceRepo PlaceRepository 인스턴스 생성
func NewPlaceRepo(db *gorm.DB) PlaceRepository {
	return &placeRepo{db: db}
}

func (r *placeRepo) Upsert(ctx context.Context, place *model.Place) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "kakao_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "address", "road_address", "phone", "place_url",
				"lat", "lng", "category_name", "updated_at",
			}),
		}).
		Create(place).Error
}

func (r *placeRepo) BatchUpsert(ctx context.Context, places []model.Place) error {
	if len(places) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "kakao_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "address", "road_address", "phone", "place_url",
				"lat", "lng", "category_name", "updated_at",
			}),
		}).
		CreateInBatches(places, 100).Error
}

func (r *placeRepo) GetByID(ctx context.Context, kakaoID string) (*model.Place, error) {
	var place model.Place
	err := r.db.WithContext(ctx).
		Where("kakao_id = ?", kakaoID).
		First(&place).Error
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *placeRepo) ListInBBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64, limit int) ([]model.Place, error) {
	var places []model.Place
	err := r.db.WithContext(ctx).
		Where("lat BETWEEN ? AND ?", minLat, maxLat).
		Where("lng BETWEEN ? AND ?", minLng, maxLng).
		Limit(limit).
		Order("kakao_id").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepo) ListByIDs(ctx context.Context, kakaoIDs []string) ([]model.Place, error) {
	if len(kakaoIDs) == 0 {
		return []model.Place{}, nil
	}
	var places []model.Place
	err := r.db.WithContext(ctx).
		Where("kakao_id IN ?", kakaoIDs).
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepo) ListAll(ctx context.Context) ([]model.Place, error) {
	var places []model.Place
	err := r.db.WithContext(ctx).
		Order("kakao_id").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}
