package openhours

import (
	"regexp"
	"strconv"
	"time"
)

// ── 텍스트 마이크로 파서 ────────────────────────────────────
//
// 표시용 문자열 안에 섞여 있는 구조화 데이터를 꺼내는 파서 두 개.
// 라벨 날짜 스탬프와 시각 파싱은 반드시 여기서만 한다.
// ─────────────────────────────────────────────────────────────

var (
	// "일(12/28)" 라벨 안의 (월/일) 스탬프
	dayStampPattern = regexp.MustCompile(`\((\d{1,2})/(\d{1,2})\)`)
	// "9:30" / "12:00" 형태의 시각. 분은 반드시 두 자리
	clockPattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*$`)
)

// parseDayStamp 요일 라벨에서 (M/D) 스탬프를 찾아 해당 연도의 날짜로 만든다.
// 스탬프가 없거나 달력에 존재하지 않는 날짜면 ok=false.
func parseDayStamp(label string, year int, loc *time.Location) (time.Time, bool) {
	if label == "" {
		return time.Time{}, false
	}
	m := dayStampPattern.FindStringSubmatch(label)
	if m == nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, false
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date는 2/31 같은 값을 3/3으로 넘겨 버리므로 왕복 검증으로 거른다
	if int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// parseClock "H:MM"/"HH:MM" 시각 텍스트를 (시, 분)으로 파싱한다.
// "24:00"은 자정 표기 관례라 00:00으로 정규화한다.
func parseClock(s string) (hh, mm int, ok bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	hh, _ = strconv.Atoi(m[1])
	mm, _ = strconv.Atoi(m[2])

	if hh == 24 && mm == 0 {
		hh = 0
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, 0, false
	}
	return hh, mm, true
}
