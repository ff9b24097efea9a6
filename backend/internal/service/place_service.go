package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cafemap/backend/internal/dto"
	"cafemap/backend/internal/model"
	"cafemap/backend/internal/openhours"
	"cafemap/backend/internal/repository"
	"cafemap/backend/pkg/redis"
)

var ErrPlaceNotFound = errors.New("존재하지 않는 장소입니다")

// 지도 범위 조회 시 한 번에 돌려주는 최대 장소 수
const maxPlacesPerQuery = 200

// PlaceService 장소 조회 비즈니스 인터페이스
type PlaceService interface {
	ListPlaces(ctx context.Context, q *dto.ListPlacesQuery) ([]dto.PlaceResponse, error)
	GetPlace(ctx context.Context, kakaoID string) (*dto.PlaceResponse, error)
	ListStatusLogs(ctx context.Context, q *dto.StatusLogQuery) ([]dto.StatusLogResponse, error)
	List24h(ctx context.Context) ([]dto.Cafe24hResponse, error)
}

// statusCache RefreshStatus 가 적재하는 장소 상태 캐시의 읽기 쪽 (*redis.Client 가 구현)
type statusCache interface {
	GetStatusCache(ctx context.Context, kakaoID string) ([]byte, error)
}

type placeService struct {
	repo   *repository.Repository
	cache  statusCache
	logger *zap.Logger
}

// NewPlaceService PlaceService 인스턴스 생성. rdb 가 nil 이면 캐시 없이 동작한다.
func NewPlaceService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) PlaceService {
	s := &placeService{repo: repo, logger: logger}
	if rdb != nil {
		s.cache = rdb
	}
	return s
}

// ListPlaces 반경(m)을 근사 사각형으로 바꿔서 좌표 범위 조회
//
// 위도 1도 ≈ 111km, 경도 1도 ≈ 111km × cos(위도).
// 서울 스케일에서는 충분한 근사이고 인덱스를 태울 수 있다.
func (s *placeService) ListPlaces(ctx context.Context, q *dto.ListPlacesQuery) ([]dto.PlaceResponse, error) {
	dLat := q.Radius / 111000.0
	dLng := q.Radius / (111000.0 * math.Cos(q.Lat*math.Pi/180.0))

	places, err := s.repo.Place.ListInBBox(ctx,
		q.Lat-dLat, q.Lat+dLat,
		q.Lng-dLng, q.Lng+dLng,
		maxPlacesPerQuery,
	)
	if err != nil {
		s.logger.Error("장소 범위 조회 실패", zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(places))
	for _, p := range places {
		ids = append(ids, p.KakaoID)
	}

	logs, err := s.repo.StatusLog.LatestByPlaces(ctx, ids)
	if err != nil {
		s.logger.Error("최신 상태 로그 조회 실패", zap.Error(err))
		return nil, err
	}
	details, err := s.repo.PlaceDetail.LatestByPlaces(ctx, ids)
	if err != nil {
		s.logger.Error("최신 스냅샷 조회 실패", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PlaceResponse, 0, len(places))
	for _, p := range places {
		var logPtr *model.OpenStatusLog
		if l, ok := logs[p.KakaoID]; ok {
			cp := l
			logPtr = &cp
		}
		var detailPtr *model.PlaceDetail
		if d, ok := details[p.KakaoID]; ok {
			cp := d
			detailPtr = &cp
		}
		result = append(result, toPlaceResponse(&p, logPtr, detailPtr))
	}
	return result, nil
}

func (s *placeService) GetPlace(ctx context.Context, kakaoID string) (*dto.PlaceResponse, error) {
	place, err := s.repo.Place.GetByID(ctx, kakaoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		s.logger.Error("장소 조회 실패", zap.Error(err))
		return nil, err
	}

	// RefreshStatus 가 적재한 상태 캐시를 먼저 보고, 없으면 최신 로그로 폴백
	rec := s.cachedStatus(ctx, kakaoID)
	var logPtr *model.OpenStatusLog
	if rec == nil {
		logs, err := s.repo.StatusLog.LatestByPlaces(ctx, []string{kakaoID})
		if err != nil {
			s.logger.Error("최신 상태 로그 조회 실패", zap.Error(err))
			return nil, err
		}
		if l, ok := logs[kakaoID]; ok {
			cp := l
			logPtr = &cp
		}
	}

	var detailPtr *model.PlaceDetail
	if detail, err := s.repo.PlaceDetail.LatestByPlace(ctx, kakaoID); err == nil {
		detailPtr = detail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("최신 스냅샷 조회 실패", zap.Error(err))
		return nil, err
	}

	resp := toPlaceResponse(place, logPtr, detailPtr)
	if rec != nil {
		applyStatusRecord(&resp, rec)
	}
	return &resp, nil
}

// cachedStatus 캐시된 StatusRecord 조회. miss/오류/깨진 payload 는 전부 nil (DB 폴백)
func (s *placeService) cachedStatus(ctx context.Context, kakaoID string) *openhours.StatusRecord {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.GetStatusCache(ctx, kakaoID)
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("상태 캐시 조회 실패", zap.String("kakao_id", kakaoID), zap.Error(err))
		}
		return nil
	}
	var rec openhours.StatusRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		s.logger.Warn("상태 캐시 역직렬화 실패", zap.String("kakao_id", kakaoID), zap.Error(err))
		return nil
	}
	return &rec
}

// applyStatusRecord 캐시된 판정 결과를 응답의 상태 필드에 덮어쓴다
func applyStatusRecord(resp *dto.PlaceResponse, rec *openhours.StatusRecord) {
	resp.IsOpenNow = rec.IsOpenNow
	resp.TodayOpenClose = rec.TodayOpenClose
	resp.MinutesToClose = rec.MinutesToClose
	resp.MinutesToOpen = rec.MinutesToOpen
	resp.TodayStatusNote = rec.TodayStatusNote
}

func (s *placeService) ListStatusLogs(ctx context.Context, q *dto.StatusLogQuery) ([]dto.StatusLogResponse, error) {
	logs, err := s.repo.StatusLog.List(ctx, q.Limit, q.Order == "minutes")
	if err != nil {
		s.logger.Error("상태 로그 조회 실패", zap.Error(err))
		return nil, err
	}

	result := make([]dto.StatusLogResponse, 0, len(logs))
	for _, l := range logs {
		result = append(result, dto.StatusLogResponse{
			ID:              uint(l.ID),
			PlaceID:         l.KakaoID,
			PlaceName:       l.Name,
			IsOpenNow:       l.IsOpenNow,
			TodayOpenTime:   l.TodayOpenTime,
			TodayCloseTime:  l.TodayCloseTime,
			TodayOpenClose:  joinOpenClose(l.TodayOpenTime, l.TodayCloseTime),
			MinutesToClose:  l.MinutesToClose,
			MinutesToOpen:   l.MinutesToOpen,
			TodayStatusNote: l.TodayStatusNote,
			CheckedAt:       l.CheckedAt,
		})
	}
	return result, nil
}

func (s *placeService) List24h(ctx context.Context) ([]dto.Cafe24hResponse, error) {
	cafes, err := s.repo.Cafe24h.List(ctx)
	if err != nil {
		s.logger.Error("24시간 카페 조회 실패", zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(cafes))
	for _, c := range cafes {
		ids = append(ids, c.KakaoID)
	}
	places, err := s.repo.Place.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("장소 일괄 조회 실패", zap.Error(err))
		return nil, err
	}
	placeByID := make(map[string]model.Place, len(places))
	for _, p := range places {
		placeByID[p.KakaoID] = p
	}

	result := make([]dto.Cafe24hResponse, 0, len(cafes))
	for _, c := range cafes {
		resp := dto.Cafe24hResponse{
			KakaoID: c.KakaoID,
			Name:    c.Name,
		}
		if p, ok := placeByID[c.KakaoID]; ok {
			resp.Address = p.Address
			resp.RoadAddress = p.RoadAddress
			resp.Phone = p.Phone
			resp.Lat = p.Lat
			resp.Lng = p.Lng
		}
		result = append(result, resp)
	}
	return result, nil
}

// toPlaceResponse 장소 + 최신 로그 + 최신 스냅샷을 응답으로 합성
func toPlaceResponse(p *model.Place, log *model.OpenStatusLog, detail *model.PlaceDetail) dto.PlaceResponse {
	resp := dto.PlaceResponse{
		KakaoID:     p.KakaoID,
		Name:        p.Name,
		Address:     p.Address,
		RoadAddress: p.RoadAddress,
		Phone:       p.Phone,
		PlaceURL:    p.PlaceURL,
		Lat:         p.Lat,
		Lng:         p.Lng,
	}
	if log != nil {
		resp.IsOpenNow = log.IsOpenNow
		resp.TodayOpenClose = joinOpenClose(log.TodayOpenTime, log.TodayCloseTime)
		resp.MinutesToClose = log.MinutesToClose
		resp.MinutesToOpen = log.MinutesToOpen
		resp.TodayStatusNote = log.TodayStatusNote
	}
	if detail != nil {
		resp.OpenHourSummary = detail.OpeningHoursText
	}
	return resp
}

// joinOpenClose "HH:MM ~ HH:MM" 표시 문자열. 둘 다 있어야 만든다.
func joinOpenClose(open, close *string) *string {
	if open == nil || close == nil {
		return nil
	}
	s := *open + " ~ " + *close
	return &s
}
