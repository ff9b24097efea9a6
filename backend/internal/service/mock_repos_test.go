package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"cafemap/backend/internal/model"
	"cafemap/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock PlaceRepository ──

type mockPlaceRepo struct {
	mu     sync.Mutex
	places map[string]*model.Place
}

func newMockPlaceRepo() *mockPlaceRepo {
	return &mockPlaceRepo{places: make(map[string]*model.Place)}
}

func (m *mockPlaceRepo) Upsert(_ context.Context, place *model.Place) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.places[place.KakaoID] = place
	return nil
}

func (m *mockPlaceRepo) BatchUpsert(ctx context.Context, places []model.Place) error {
	for i := range places {
		p := places[i]
		if err := m.Upsert(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockPlaceRepo) GetByID(_ context.Context, kakaoID string) (*model.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.places[kakaoID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlaceRepo) ListInBBox(_ context.Context, minLat, maxLat, minLng, maxLng float64, limit int) ([]model.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Place
	for _, p := range m.sorted() {
		if p.Lat == nil || p.Lng == nil {
			continue
		}
		if *p.Lat < minLat || *p.Lat > maxLat || *p.Lng < minLng || *p.Lng > maxLng {
			continue
		}
		result = append(result, p)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (m *mockPlaceRepo) ListByIDs(_ context.Context, kakaoIDs []string) ([]model.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Place
	for _, id := range kakaoIDs {
		if p, ok := m.places[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPlaceRepo) ListAll(_ context.Context) ([]model.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(), nil
}

func (m *mockPlaceRepo) sorted() []model.Place {
	result := make([]model.Place, 0, len(m.places))
	for _, p := range m.places {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].KakaoID < result[j].KakaoID })
	return result
}

// ── Mock PlaceDetailRepository ──

type mockPlaceDetailRepo struct {
	mu      sync.Mutex
	nextID  int64
	details []model.PlaceDetail
}

func newMockPlaceDetailRepo() *mockPlaceDetailRepo {
	return &mockPlaceDetailRepo{}
}

func (m *mockPlaceDetailRepo) Create(_ context.Context, detail *model.PlaceDetail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	detail.ID = m.nextID
	m.details = append(m.details, *detail)
	return nil
}

func (m *mockPlaceDetailRepo) BatchCreate(ctx context.Context, details []model.PlaceDetail) error {
	for i := range details {
		if err := m.Create(ctx, &details[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockPlaceDetailRepo) LatestByPlace(_ context.Context, kakaoID string) (*model.PlaceDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.details) - 1; i >= 0; i-- {
		if m.details[i].KakaoID == kakaoID {
			d := m.details[i]
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlaceDetailRepo) LatestByPlaces(_ context.Context, kakaoIDs []string) (map[string]model.PlaceDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[string]bool, len(kakaoIDs))
	for _, id := range kakaoIDs {
		want[id] = true
	}
	result := make(map[string]model.PlaceDetail)
	for _, d := range m.details {
		if want[d.KakaoID] {
			result[d.KakaoID] = d // 뒤에 온 게 최신
		}
	}
	return result, nil
}

func (m *mockPlaceDetailRepo) LatestForAll(_ context.Context) ([]model.PlaceDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	latest := make(map[string]model.PlaceDetail)
	for _, d := range m.details {
		latest[d.KakaoID] = d
	}
	keys := make([]string, 0, len(latest))
	for k := range latest {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make([]model.PlaceDetail, 0, len(keys))
	for _, k := range keys {
		result = append(result, latest[k])
	}
	return result, nil
}

// ── Mock StatusLogRepository ──

type mockStatusLogRepo struct {
	mu     sync.Mutex
	nextID int64
	logs   []model.OpenStatusLog
}

func newMockStatusLogRepo() *mockStatusLogRepo {
	return &mockStatusLogRepo{}
}

func (m *mockStatusLogRepo) Create(_ context.Context, log *model.OpenStatusLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	log.ID = m.nextID
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockStatusLogRepo) BatchCreate(ctx context.Context, logs []model.OpenStatusLog) error {
	for i := range logs {
		if err := m.Create(ctx, &logs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockStatusLogRepo) List(_ context.Context, limit int, orderByMinutes bool) ([]model.OpenStatusLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.OpenStatusLog, len(m.logs))
	copy(result, m.logs)
	if orderByMinutes {
		sort.SliceStable(result, func(i, j int) bool {
			a, b := result[i].MinutesToClose, result[j].MinutesToClose
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return *a < *b
		})
	} else {
		sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockStatusLogRepo) ListByPlace(_ context.Context, kakaoID string, limit int) ([]model.OpenStatusLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.OpenStatusLog
	for i := len(m.logs) - 1; i >= 0 && len(result) < limit; i-- {
		if m.logs[i].KakaoID == kakaoID {
			result = append(result, m.logs[i])
		}
	}
	return result, nil
}

func (m *mockStatusLogRepo) LatestByPlaces(_ context.Context, kakaoIDs []string) (map[string]model.OpenStatusLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[string]bool, len(kakaoIDs))
	for _, id := range kakaoIDs {
		want[id] = true
	}
	result := make(map[string]model.OpenStatusLog)
	for _, l := range m.logs {
		if want[l.KakaoID] {
			result[l.KakaoID] = l
		}
	}
	return result, nil
}

// ── Mock Cafe24hRepository ──

type mockCafe24hRepo struct {
	mu    sync.Mutex
	cafes map[string]*model.Cafe24h
}

func newMockCafe24hRepo() *mockCafe24hRepo {
	return &mockCafe24hRepo{cafes: make(map[string]*model.Cafe24h)}
}

func (m *mockCafe24hRepo) Upsert(_ context.Context, cafe *model.Cafe24h) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cafes[cafe.KakaoID] = cafe
	return nil
}

func (m *mockCafe24hRepo) Delete(_ context.Context, kakaoID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cafes, kakaoID)
	return nil
}

func (m *mockCafe24hRepo) List(_ context.Context) ([]model.Cafe24h, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Cafe24h, 0, len(m.cafes))
	for _, c := range m.cafes {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].KakaoID < result[j].KakaoID })
	return result, nil
}

// ── Mock BookmarkRepository ──

type mockBookmarkRepo struct {
	mu        sync.Mutex
	nextID    int
	bookmarks map[string]*model.Bookmark
	places    *mockPlaceRepo // Preload("Place") 대용
}

func newMockBookmarkRepo(places *mockPlaceRepo) *mockBookmarkRepo {
	return &mockBookmarkRepo{bookmarks: make(map[string]*model.Bookmark), places: places}
}

func (m *mockBookmarkRepo) Create(_ context.Context, bookmark *model.Bookmark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookmarks {
		if b.UserID == bookmark.UserID && b.KakaoID == bookmark.KakaoID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	bookmark.BookmarkID = fmt.Sprintf("bm-%d", m.nextID)
	bookmark.CreatedAt = time.Now()
	m.bookmarks[bookmark.BookmarkID] = bookmark
	return nil
}

func (m *mockBookmarkRepo) GetByID(ctx context.Context, id string) (*model.Bookmark, error) {
	m.mu.Lock()
	b, ok := m.bookmarks[id]
	m.mu.Unlock()
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.withPlace(ctx, b), nil
}

func (m *mockBookmarkRepo) GetByUserAndPlace(ctx context.Context, userID, kakaoID string) (*model.Bookmark, error) {
	m.mu.Lock()
	var found *model.Bookmark
	for _, b := range m.bookmarks {
		if b.UserID == userID && b.KakaoID == kakaoID {
			found = b
			break
		}
	}
	m.mu.Unlock()
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.withPlace(ctx, found), nil
}

func (m *mockBookmarkRepo) ListByUser(ctx context.Context, userID string) ([]model.Bookmark, error) {
	m.mu.Lock()
	var mine []*model.Bookmark
	for _, b := range m.bookmarks {
		if b.UserID == userID {
			mine = append(mine, b)
		}
	}
	m.mu.Unlock()
	sort.Slice(mine, func(i, j int) bool { return mine[i].BookmarkID < mine[j].BookmarkID })
	result := make([]model.Bookmark, 0, len(mine))
	for _, b := range mine {
		result = append(result, *m.withPlace(ctx, b))
	}
	return result, nil
}

func (m *mockBookmarkRepo) UpdateMemo(_ context.Context, id, memo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookmarks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Memo = memo
	return nil
}

func (m *mockBookmarkRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bookmarks, id)
	return nil
}

func (m *mockBookmarkRepo) withPlace(ctx context.Context, b *model.Bookmark) *model.Bookmark {
	cp := *b
	if m.places != nil {
		if p, err := m.places.GetByID(ctx, b.KakaoID); err == nil {
			cp.Place = p
		}
	}
	return &cp
}

// ── 테스트용 Repository 조립 ──

func newTestRepo() (*repository.Repository, *mockPlaceRepo, *mockPlaceDetailRepo, *mockStatusLogRepo, *mockCafe24hRepo, *mockBookmarkRepo) {
	places := newMockPlaceRepo()
	details := newMockPlaceDetailRepo()
	logs := newMockStatusLogRepo()
	cafes := newMockCafe24hRepo()
	bookmarks := newMockBookmarkRepo(places)
	repo := &repository.Repository{
		User:        newMockUserRepo(),
		Place:       places,
		PlaceDetail: details,
		StatusLog:   logs,
		Cafe24h:     cafes,
		Bookmark:    bookmarks,
	}
	return repo, places, details, logs, cafes, bookmarks
}
