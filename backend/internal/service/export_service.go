package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"cafemap/backend/internal/repository"
)

// ── 내보내기 비즈니스 에러 ──

var ErrExportNoPlaces = errors.New("내보낼 장소가 없습니다")

// ExportService 내보내기 비즈니스 인터페이스
//
// 설계 메모:
//   - Excel: 전체 장소 + 최신 영업 상태를 한 시트로
//   - 지도: go-echarts Geo 산점도를 HTML로 렌더링 (영업중/마감 색 구분 없이 단일 시리즈)
//   - 둘 다 bytes.Buffer 로 돌려주고 Handler 가 응답 헤더를 붙인다
type ExportService interface {
	ExportPlaces(ctx context.Context) (*bytes.Buffer, string, error)
	RenderMap(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService ExportService 인스턴스 생성
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportPlaces — 장소 목록을 Excel 로
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportPlaces(ctx context.Context) (*bytes.Buffer, string, error) {
	places, err := s.repo.Place.ListAll(ctx)
	if err != nil {
		s.logger.Error("장소 목록 조회 실패", zap.Error(err))
		return nil, "", err
	}
	if len(places) == 0 {
		return nil, "", ErrExportNoPlaces
	}

	ids := make([]string, 0, len(places))
	for _, p := range places {
		ids = append(ids, p.KakaoID)
	}
	logs, err := s.repo.StatusLog.LatestByPlaces(ctx, ids)
	if err != nil {
		s.logger.Error("최신 상태 로그 조회 실패", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "카페목록"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"카카오ID", "이름", "주소", "전화", "위도", "경도", "영업중", "오늘 영업시간", "마감까지(분)", "개점까지(분)", "비고"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, p := range places {
		values := []interface{}{
			p.KakaoID,
			deref(p.Name), deref(p.Address), deref(p.Phone),
			derefFloat(p.Lat), derefFloat(p.Lng),
			"", "", "", "", "",
		}
		if l, ok := logs[p.KakaoID]; ok {
			values[6] = openNowText(l.IsOpenNow)
			if oc := joinOpenClose(l.TodayOpenTime, l.TodayCloseTime); oc != nil {
				values[7] = *oc
			}
			if l.MinutesToClose != nil {
				values[8] = *l.MinutesToClose
			}
			if l.MinutesToOpen != nil {
				values[9] = *l.MinutesToOpen
			}
			values[10] = deref(l.TodayStatusNote)
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("Excel 생성 실패", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("cafes_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// RenderMap — 카페 분포를 Geo 산점도로
// ═══════════════════════════════════════════════════════════

func (s *exportService) RenderMap(ctx context.Context) (*bytes.Buffer, string, error) {
	places, err := s.repo.Place.ListAll(ctx)
	if err != nil {
		s.logger.Error("장소 목록 조회 실패", zap.Error(err))
		return nil, "", err
	}

	points := make([]opts.GeoData, 0, len(places))
	for _, p := range places {
		if p.Lat == nil || p.Lng == nil {
			continue
		}
		points = append(points, opts.GeoData{
			Name:  deref(p.Name),
			Value: []float64{*p.Lng, *p.Lat},
		})
	}
	if len(points) == 0 {
		return nil, "", ErrExportNoPlaces
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "카페 지도",
			Width:     "900px",
			Height:    "700px",
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("cafes", types.ChartScatter, points,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)

	var buf bytes.Buffer
	if err := geo.Render(&buf); err != nil {
		s.logger.Error("지도 렌더링 실패", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("cafe_map_%s.html", time.Now().Format("20060102"))
	return &buf, filename, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) interface{} {
	if f == nil {
		return ""
	}
	return *f
}

func openNowText(b *bool) string {
	switch {
	case b == nil:
		return "판정불가"
	case *b:
		return "영업중"
	default:
		return "영업종료"
	}
}
