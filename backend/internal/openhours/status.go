package openhours

import "time"

// StatusRecord 한 장소의 한 평가 시점에 대한 최종 판정.
// 모든 필드가 nullable이며, 호출자가 로그로 보존하거나
// "현재 상태" 캐시에 투영한다. 생성 이후 변경하지 않는다.
type StatusRecord struct {
	// nil=판정 불가 / true=영업중 / false=영업 전이거나 종료
	IsOpenNow *bool `json:"is_open_now"`

	TodayOpenTime  *string `json:"today_open_time"`  // "HH:MM"
	TodayCloseTime *string `json:"today_close_time"` // "HH:MM"
	TodayOpenClose *string `json:"today_open_close"` // "HH:MM ~ HH:MM" 표시용

	// 영업중일 때 마감까지 남은 분. 영업 전일 때 개점까지 남은 분.
	// 둘이 동시에 채워지는 일은 없다.
	MinutesToClose *int `json:"minutes_to_close"`
	MinutesToOpen  *int `json:"minutes_to_open"`

	TodayStatusNote *string `json:"today_status_note"`
}

// Compute 오늘 스케줄과 현재 시각으로 StatusRecord를 만든다.
// 순수 함수: 같은 입력이면 항상 같은 결과, 외부 입출력 없음,
// 어떤 입력이 들어와도 실패하지 않는다 (판정 불가로 귀결될 뿐).
func Compute(doc *Document, now time.Time) StatusRecord {
	var out StatusRecord

	info := ExtractToday(doc, now)
	if info.Note != "" {
		out.TodayStatusNote = strPtr(info.Note)
	}

	// 휴무
	if info.Status == StatusOff {
		out.IsOpenNow = boolPtr(false)
		return out
	}

	// 영업일 + 시각 확보
	if info.Status == StatusOpen && info.OpenAt != nil && info.CloseAt != nil {
		openAt, closeAt := *info.OpenAt, *info.CloseAt

		out.TodayOpenTime = strPtr(openAt.Format("15:04"))
		out.TodayCloseTime = strPtr(closeAt.Format("15:04"))
		out.TodayOpenClose = strPtr(openAt.Format("15:04") + " ~ " + closeAt.Format("15:04"))

		if !now.Before(openAt) && now.Before(closeAt) {
			out.IsOpenNow = boolPtr(true)
			out.MinutesToClose = intPtr(floorMinutes(closeAt.Sub(now)))
		} else {
			out.IsOpenNow = boolPtr(false)
			if now.Before(openAt) {
				out.MinutesToOpen = intPtr(floorMinutes(openAt.Sub(now)))
			}
			// 이미 마감한 경우 다음 날 개점은 계산하지 않는다
		}
		return out
	}

	// 영업일인데 시간 미상, 혹은 오늘 항목 없음 — 판정 불가
	out.IsOpenNow = nil
	return out
}

// ComputeFromPanel panel3 원본 JSON에서 바로 판정까지 간다.
func ComputeFromPanel(raw []byte, now time.Time) StatusRecord {
	return Compute(DecodePanel(raw), now)
}

// floorMinutes 초 단위 버림으로 분을 구한다 (반올림 아님)
func floorMinutes(d time.Duration) int {
	return int(d / time.Minute)
}

func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
