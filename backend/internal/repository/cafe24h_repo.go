package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cafemap/backend/internal/model"
)

// Cafe24hRepository 24시간 카페 투영 데이터 접근 인터페이스
type Cafe24hRepository interface {
	Upsert(ctx context.Context, cafe *model.Cafe24h) error
	Delete(ctx context.Context, kakaoID string) error
	List(ctx context.Context) ([]model.Cafe24h, error)
}

// cafe24hRepo Cafe24hRepository 의 GORM 구현
type cafe24hRepo struct {
	db *gorm.DB
}

// NewCafe24hRepo Cafe24hRepository 인스턴스 생성
func NewCafe24hRepo(db *gorm.DB) Cafe24hRepository {
	return &cafe24hRepo{db: db}
}

func (r *cafe24hRepo) Upsert(ctx context.Context, cafe *model.Cafe24h) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "kakao_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "today_open_time", "today_close_time", "checked_at",
			}),
		}).
		Create(cafe).Error
}

func (r *cafe24hRepo) Delete(ctx context.Context, kakaoID string) error {
	return r.db.WithContext(ctx).
		Where("kakao_id = ?", kakaoID).
		Delete(&model.Cafe24h{}).Error
}

func (r *cafe24hRepo) List(ctx context.Context) ([]model.Cafe24h, error) {
	var cafes []model.Cafe24h
	err := r.db.WithContext(ctx).
		Order("name").
		Find(&cafes).Error
	if err != nil {
		return nil, err
	}
	return cafes, nil
}
