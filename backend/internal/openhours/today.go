package openhours

import (
	"strings"
	"time"
)

// Status 오늘 스케줄의 3상태 분류
type Status string

const (
	StatusOff     Status = "OFF"  // 휴무
	StatusOpen    Status = "OPEN" // 영업일 (시간은 모를 수도 있음)
	StatusUnknown Status = ""     // 오늘 항목 없음 / 문서 없음
)

// TodaySchedule 주간 문서에서 뽑아낸 '오늘' 하루치 스케줄.
// 매 계산마다 새로 만들어지는 중간 값이며 저장하지 않는다.
type TodaySchedule struct {
	Status  Status
	OpenAt  *time.Time // Status=OPEN이고 시간 파싱에 성공했을 때만
	CloseAt *time.Time // 자정 넘김 보정이 끝난 값 (OpenAt보다 항상 뒤)
	Note    string
}

// ExtractToday 주간 문서에서 now의 달력 날짜에 해당하는 항목을 찾아 분류한다.
//
// 규칙:
//   - 문서가 없거나 모양이 깨져 있으면 UNKNOWN (에러 아님)
//   - 라벨의 (M/D) 스탬프를 now의 연도로 해석해 오늘과 비교, 파싱 실패 항목은 건너뜀
//   - 문서 순회 순서상 첫 번째 일치 항목만 사용 (중복 스탬프 충돌 해소는 하지 않음)
//   - 휴무 설명이 있으면 OFF
//   - 시간 텍스트가 "시작 ~ 종료"로 파싱되면 OPEN + 시각,
//     종료가 시작보다 같거나 빠르면 익일 마감으로 보고 24시간 더한다
//   - 시간 텍스트가 없거나 깨져 있어도 영업일인 건 맞으므로 OPEN (시각 없음)
func ExtractToday(doc *Document, now time.Time) TodaySchedule {
	if doc == nil || doc.WeekFromToday == nil {
		return TodaySchedule{Status: StatusUnknown}
	}

	year := now.Year()
	today := time.Date(year, now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, period := range doc.WeekFromToday.Periods {
		for _, d := range period.Days {
			stamp, ok := parseDayStamp(d.DayLabel, year, now.Location())
			if !ok || !stamp.Equal(today) {
				continue
			}

			// 휴무
			if d.OffDaysDesc != "" {
				return TodaySchedule{
					Status: StatusOff,
					Note:   d.DayLabel + " " + d.OffDaysDesc,
				}
			}

			// 영업일: "12:00 ~ 17:00" 파싱 시도
			if d.OnDays != nil {
				if sched, ok := parseOpenRange(d.DayLabel, d.OnDays.StartEndTimeDesc, today); ok {
					return sched
				}
			}

			// 영업일인데 시간은 모름 — 정책상 UNKNOWN이 아니라 OPEN
			return TodaySchedule{
				Status: StatusOpen,
				Note:   d.DayLabel + " (시간 파싱 실패)",
			}
		}
	}

	return TodaySchedule{Status: StatusUnknown}
}

// parseOpenRange "시작 ~ 종료" 텍스트를 오늘 날짜의 시각 쌍으로 바꾼다.
func parseOpenRange(label, rangeText string, today time.Time) (TodaySchedule, bool) {
	if rangeText == "" {
		return TodaySchedule{}, false
	}
	parts := strings.Split(rangeText, "~")
	if len(parts) != 2 {
		return TodaySchedule{}, false
	}

	oh, om, okOpen := parseClock(strings.TrimSpace(parts[0]))
	ch, cm, okClose := parseClock(strings.TrimSpace(parts[1]))
	if !okOpen || !okClose {
		return TodaySchedule{}, false
	}

	openAt := today.Add(time.Duration(oh)*time.Hour + time.Duration(om)*time.Minute)
	closeAt := today.Add(time.Duration(ch)*time.Hour + time.Duration(cm)*time.Minute)

	// "18:00 ~ 02:00" 같은 자정 넘김 영업. "09:00 ~ 24:00"도
	// 24:00→00:00 정규화 탓에 여기로 들어와 익일 00:00 마감이 된다.
	if !closeAt.After(openAt) {
		closeAt = closeAt.Add(24 * time.Hour)
	}

	return TodaySchedule{
		Status:  StatusOpen,
		OpenAt:  &openAt,
		CloseAt: &closeAt,
		Note:    label + " " + rangeText,
	}, true
}
