package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"cafemap/backend/config"
	"cafemap/backend/internal/repository"
)

// CalendarService 북마크 캘린더 피드 인터페이스
//
// 북마크한 카페들의 "오늘 영업시간"을 iCalendar (RFC 5545) 이벤트로 만든다.
// 영업시간을 판정하지 못한 카페는 이벤트 없이 건너뛴다.
type CalendarService interface {
	BookmarkCalendar(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type calendarService struct {
	cfg    *config.Config
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewCalendarService CalendarService 인스턴스 생성
func NewCalendarService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CalendarService {
	loc, err := time.LoadLocation(cfg.Database.Timezone)
	if err != nil {
		loc = time.Local
	}
	return &calendarService{cfg: cfg, repo: repo, loc: loc, logger: logger}
}

func (s *calendarService) BookmarkCalendar(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	bookmarks, err := s.repo.Bookmark.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("북마크 목록 조회 실패", zap.Error(err))
		return nil, "", err
	}

	ids := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		ids = append(ids, b.KakaoID)
	}
	logs, err := s.repo.StatusLog.LatestByPlaces(ctx, ids)
	if err != nil {
		s.logger.Error("최신 상태 로그 조회 실패", zap.Error(err))
		return nil, "", err
	}

	now := time.Now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//cafemap//bookmark-calendar//KO")

	for _, b := range bookmarks {
		log, ok := logs[b.KakaoID]
		if !ok || log.TodayOpenTime == nil || log.TodayCloseTime == nil {
			continue
		}
		openAt, ok1 := clockOn(today, *log.TodayOpenTime)
		closeAt, ok2 := clockOn(today, *log.TodayCloseTime)
		if !ok1 || !ok2 {
			continue
		}
		// 심야 영업은 익일로 넘긴다
		if !closeAt.After(openAt) {
			closeAt = closeAt.Add(24 * time.Hour)
		}

		name := b.KakaoID
		if b.Place != nil && b.Place.Name != nil {
			name = *b.Place.Name
		}

		event := cal.AddEvent(fmt.Sprintf("%s@cafemap", b.BookmarkID))
		event.SetDtStampTime(now)
		event.SetStartAt(openAt)
		event.SetEndAt(closeAt)
		event.SetSummary(name + " 영업")
		if b.Memo != "" {
			event.SetDescription(b.Memo)
		}
		if b.Place != nil {
			if b.Place.Address != nil {
				event.SetLocation(*b.Place.Address)
			}
			if b.Place.PlaceURL != nil {
				event.SetURL(*b.Place.PlaceURL)
			}
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("bookmarks_%s.ics", now.Format("20060102"))
	return buf, filename, nil
}

// clockOn "HH:MM" 문자열을 해당 날짜의 시각으로 변환
func clockOn(day time.Time, clock string) (time.Time, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), true
}
