package repository

import "gorm.io/gorm"

// Repository 모든 Repository 의 집합 진입점
type Repository struct {
	db *gorm.DB

	User        UserRepository
	Place       PlaceRepository
	PlaceDetail PlaceDetailRepository
	StatusLog   StatusLogRepository
	Cafe24h     Cafe24hRepository
	Bookmark    BookmarkRepository
}

// NewRepository Repository 집합 생성
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		User:        NewUserRepo(db),
		Place:       NewPlaceRepo(db),
		PlaceDetail: NewPlaceDetailRepo(db),
		StatusLog:   NewStatusLogRepo(db),
		Cafe24h:     NewCafe24hRepo(db),
		Bookmark:    NewBookmarkRepo(db),
	}
}

// BeginTx 트랜잭션 시작
func (r *Repository) BeginTx() *gorm.DB {
	return r.db.Begin()
}

// WithTx 트랜잭션에 바인딩된 Repository 집합 반환
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}
