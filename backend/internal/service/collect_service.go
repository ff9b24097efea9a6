package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"cafemap/backend/config"
	"cafemap/backend/internal/dto"
	"cafemap/backend/internal/kakao"
	"cafemap/backend/internal/model"
	"cafemap/backend/internal/openhours"
	"cafemap/backend/internal/repository"
	"cafemap/backend/pkg/redis"
)

// 영업 상태 캐시 TTL. 갱신 주기보다 약간 길게 잡는다.
const statusCacheTTL = 15 * time.Minute

// CollectService 수집/갱신 파이프라인 인터페이스
//
//   - CollectPlaces: 카카오 로컬 API로 반경 내 카페 목록을 긁어 Place upsert
//   - CollectDetails: 저장된 모든 장소의 panel3를 워커 풀로 수집해서 스냅샷 적재
//   - RefreshStatus: 장소별 최신 스냅샷을 다시 판정해서 상태 로그 적재 + 24시간 투영 갱신
type CollectService interface {
	CollectPlaces(ctx context.Context, lat, lng float64, radius int) (*dto.CollectResultResponse, error)
	CollectDetails(ctx context.Context) (*dto.CollectResultResponse, error)
	RefreshStatus(ctx context.Context) (*dto.RefreshStatusResponse, error)
}

type collectService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	kakao  kakao.API
	loc    *time.Location
	logger *zap.Logger
}

// NewCollectService CollectService 인스턴스 생성
func NewCollectService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	kakaoAPI kakao.API,
	logger *zap.Logger,
) CollectService {
	loc, err := time.LoadLocation(cfg.Database.Timezone)
	if err != nil {
		logger.Warn("타임존 로드 실패, 시스템 로컬 사용", zap.String("tz", cfg.Database.Timezone))
		loc = time.Local
	}
	return &collectService{
		cfg:    cfg,
		repo:   repo,
		rdb:    rdb,
		kakao:  kakaoAPI,
		loc:    loc,
		logger: logger,
	}
}

// ═══════════════════════════════════════════════════════════
// CollectPlaces — 카페 목록 수집
// ═══════════════════════════════════════════════════════════

func (s *collectService) CollectPlaces(ctx context.Context, lat, lng float64, radius int) (*dto.CollectResultResponse, error) {
	// 미지정 값은 설정된 기준점(집 좌표)과 반경으로 채운다
	if lat == 0 && lng == 0 {
		lat, lng = s.cfg.Collect.HomeLat, s.cfg.Collect.HomeLng
	}
	if radius <= 0 {
		radius = s.cfg.Collect.RadiusM
	}

	docs, err := s.kakao.SearchCafes(ctx, lat, lng, radius)
	if err != nil {
		s.logger.Error("카카오 카페 검색 실패", zap.Error(err))
		return nil, err
	}

	result := &dto.CollectResultResponse{Requested: len(docs)}
	places := make([]model.Place, 0, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			result.Failed++
			continue
		}
		places = append(places, model.Place{
			KakaoID:      d.ID,
			Name:         optStr(d.PlaceName),
			Address:      optStr(d.AddressName),
			RoadAddress:  optStr(d.RoadAddressName),
			Phone:        optStr(d.Phone),
			PlaceURL:     optStr(d.PlaceURL),
			Lat:          optFloat(d.Y),
			Lng:          optFloat(d.X),
			CategoryName: optStr(d.CategoryName),
		})
	}

	if err := s.repo.Place.BatchUpsert(ctx, places); err != nil {
		s.logger.Error("장소 일괄 upsert 실패", zap.Error(err))
		return nil, err
	}
	result.Succeeded = len(places)

	s.logger.Info("카페 목록 수집 완료",
		zap.Int("requested", result.Requested),
		zap.Int("succeeded", result.Succeeded),
	)
	return result, nil
}

// ═══════════════════════════════════════════════════════════
// CollectDetails — panel3 스냅샷 수집 (워커 풀)
// ═══════════════════════════════════════════════════════════

func (s *collectService) CollectDetails(ctx context.Context) (*dto.CollectResultResponse, error) {
	places, err := s.repo.Place.ListAll(ctx)
	if err != nil {
		s.logger.Error("장소 목록 조회 실패", zap.Error(err))
		return nil, err
	}
	if limit := s.cfg.Collect.DetailLimit; limit > 0 && len(places) > limit {
		places = places[:limit]
	}

	workers := s.cfg.Collect.Workers
	if workers <= 0 {
		workers = 1
	}

	var (
		mu      sync.Mutex
		details []model.PlaceDetail
		failed  int
	)

	jobs := make(chan model.Place)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				detail, err := s.fetchDetail(ctx, p.KakaoID)
				mu.Lock()
				if err != nil {
					failed++
				} else {
					details = append(details, *detail)
				}
				mu.Unlock()

				// 요청 간격을 두어 패널 API를 배려한다
				select {
				case <-ctx.Done():
					return
				case <-time.After(s.cfg.Collect.RequestSleep):
				}
			}
		}()
	}

	for _, p := range places {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- p:
		}
	}
	close(jobs)
	wg.Wait()

	if err := s.repo.PlaceDetail.BatchCreate(ctx, details); err != nil {
		s.logger.Error("스냅샷 일괄 저장 실패", zap.Error(err))
		return nil, err
	}

	result := &dto.CollectResultResponse{
		Requested: len(places),
		Succeeded: len(details),
		Failed:    failed,
	}
	s.logger.Info("상세 스냅샷 수집 완료",
		zap.Int("requested", result.Requested),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// fetchDetail panel3 한 건을 긁어서 스냅샷 레코드로 변환
func (s *collectService) fetchDetail(ctx context.Context, kakaoID string) (*model.PlaceDetail, error) {
	raw, err := s.kakao.FetchPanel(ctx, kakaoID)
	if err != nil {
		s.logger.Warn("panel3 수집 실패", zap.String("kakao_id", kakaoID), zap.Error(err))
		return nil, err
	}

	detail := &model.PlaceDetail{
		KakaoID:   kakaoID,
		FetchedAt: time.Now().In(s.loc),
	}

	// open_hours 서브트리만 원본 그대로 보존한다.
	// 표시용 요약은 지금 만들어 두지만 판정은 항상 JSON에서 다시 한다.
	var panel openhours.Panel
	if err := json.Unmarshal(raw, &panel); err == nil && len(panel.OpenHours) > 0 {
		detail.OpeningHoursJSON = optStr(string(panel.OpenHours))
	}
	if doc := openhours.DecodePanel(raw); doc != nil {
		detail.OpeningHoursText = optStr(openhours.Summary(doc))
	}

	return detail, nil
}

// ═══════════════════════════════════════════════════════════
// RefreshStatus — 저장된 스냅샷 재판정
// ═══════════════════════════════════════════════════════════

func (s *collectService) RefreshStatus(ctx context.Context) (*dto.RefreshStatusResponse, error) {
	details, err := s.repo.PlaceDetail.LatestForAll(ctx)
	if err != nil {
		s.logger.Error("최신 스냅샷 조회 실패", zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.KakaoID)
	}
	places, err := s.repo.Place.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("장소 일괄 조회 실패", zap.Error(err))
		return nil, err
	}
	nameByID := make(map[string]*string, len(places))
	for _, p := range places {
		nameByID[p.KakaoID] = p.Name
	}

	now := time.Now().In(s.loc)
	result := &dto.RefreshStatusResponse{}
	logs := make([]model.OpenStatusLog, 0, len(details))

	for _, d := range details {
		var doc *openhours.Document
		if d.OpeningHoursJSON != nil {
			doc = openhours.DecodeDocument([]byte(*d.OpeningHoursJSON))
		}
		rec := openhours.Compute(doc, now)

		logs = append(logs, model.OpenStatusLog{
			KakaoID:         d.KakaoID,
			Name:            nameByID[d.KakaoID],
			IsOpenNow:       rec.IsOpenNow,
			TodayOpenTime:   rec.TodayOpenTime,
			TodayCloseTime:  rec.TodayCloseTime,
			MinutesToClose:  rec.MinutesToClose,
			MinutesToOpen:   rec.MinutesToOpen,
			TodayStatusNote: rec.TodayStatusNote,
			CheckedAt:       now,
		})
		// 영업시간 문서가 없거나 해독 불가하면 판정은 건너뛰고 unknown 으로만 기록
		if doc != nil {
			result.Refreshed++
		} else {
			result.Skipped++
		}

		// 24시간 카페 투영 유지
		if err := s.maintain24h(ctx, d.KakaoID, nameByID[d.KakaoID], rec, now); err != nil {
			s.logger.Warn("24시간 투영 갱신 실패", zap.String("kakao_id", d.KakaoID), zap.Error(err))
		}

		// 현재 상태 캐시 (Redis 없으면 건너뜀)
		if s.rdb != nil {
			if payload, err := json.Marshal(rec); err == nil {
				if err := s.rdb.SetStatusCache(ctx, d.KakaoID, payload, statusCacheTTL); err != nil {
					s.logger.Warn("상태 캐시 저장 실패", zap.String("kakao_id", d.KakaoID), zap.Error(err))
				}
			}
		}
	}

	if err := s.repo.StatusLog.BatchCreate(ctx, logs); err != nil {
		s.logger.Error("상태 로그 일괄 저장 실패", zap.Error(err))
		return nil, err
	}

	s.logger.Info("영업 상태 갱신 완료",
		zap.Int("refreshed", result.Refreshed),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// maintain24h "00:00 개점, 자정 마감"으로 판정된 장소만 cafes_24h에 유지
func (s *collectService) maintain24h(ctx context.Context, kakaoID string, name *string, rec openhours.StatusRecord, now time.Time) error {
	if is24h(rec) {
		return s.repo.Cafe24h.Upsert(ctx, &model.Cafe24h{
			KakaoID:        kakaoID,
			Name:           name,
			TodayOpenTime:  rec.TodayOpenTime,
			TodayCloseTime: rec.TodayCloseTime,
			CheckedAt:      now,
		})
	}
	return s.repo.Cafe24h.Delete(ctx, kakaoID)
}

// is24h 오늘 00:00 개점이고 마감이 자정(표기 상 23:59/24:00/00:00)이면 24시간으로 본다
func is24h(rec openhours.StatusRecord) bool {
	if rec.TodayOpenTime == nil || rec.TodayCloseTime == nil {
		return false
	}
	if *rec.TodayOpenTime != "00:00" {
		return false
	}
	switch *rec.TodayCloseTime {
	case "23:59", "24:00", "00:00":
		return true
	}
	return false
}

// ── 변환 헬퍼 ──

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
