package repository

import (
	"context"

	"gorm.io/gorm"

	"cafemap/backend/internal/model"
)

// StatusLogRepository 영업 상태 로그 데이터 접근 인터페이스
type StatusLogRepository interface {
	Create(ctx context.Context, log *model.OpenStatusLog) error
	BatchCreate(ctx context.Context, logs []model.OpenStatusLog) error
	List(ctx context.Context, limit int, orderByMinutes bool) ([]model.OpenStatusLog, error)
	ListByPlace(ctx context.Context, kakaoID string, limit int) ([]model.OpenStatusLog, error)
	LatestByPlaces(ctx context.Context, kakaoIDs []string) (map[string]model.OpenStatusLog, error)
}

// statusLogRepo StatusLogRepository 의 GORM 구현
type statusLogRepo struct {
	db *gorm.DB
}

// NewStatusLogRepo StatusLogRepository 인스턴스 생성
func NewStatusLogRepo(db *gorm.DB) StatusLogRepository {
	return &statusLogRepo{db: db}
}

func (r *statusLogRepo) Create(ctx context.Context, log *model.OpenStatusLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *statusLogRepo) BatchCreate(ctx context.Context, logs []model.OpenStatusLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}

// List 최근 로그 조회. orderByMinutes 가 true 면 마감 임박 순으로 정렬한다.
func (r *statusLogRepo) List(ctx context.Context, limit int, orderByMinutes bool) ([]model.OpenStatusLog, error) {
	var logs []model.OpenStatusLog
	q := r.db.WithContext(ctx).Limit(limit)
	if orderByMinutes {
		q = q.Order("minutes_to_close ASC NULLS LAST").Order("id DESC")
	} else {
		q = q.Order("id DESC")
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *statusLogRepo) ListByPlace(ctx context.Context, kakaoID string, limit int) ([]model.OpenStatusLog, error) {
	var logs []model.OpenStatusLog
	err := r.db.WithContext(ctx).
		Where("kakao_id = ?", kakaoID).
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// LatestByPlaces 장소별 최신 로그 한 건씩 조회
func (r *statusLogRepo) LatestByPlaces(ctx context.Context, kakaoIDs []string) (map[string]model.OpenStatusLog, error) {
	result := make(map[string]model.OpenStatusLog, len(kakaoIDs))
	if len(kakaoIDs) == 0 {
		return result, nil
	}

	sub := r.db.Model(&model.OpenStatusLog{}).
		Select("MAX(id)").
		Where("kakao_id IN ?", kakaoIDs).
		Group("kakao_id")

	var logs []model.OpenStatusLog
	err := r.db.WithContext(ctx).
		Where("id IN (?)", sub).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	for _, l := range logs {
		result[l.KakaoID] = l
	}
	return result, nil
}
