package openhours

import (
	"testing"
	"time"
)

var kst = time.FixedZone("KST", 9*60*60)

// docWithDays 단일 기간짜리 주간 문서 생성 헬퍼
func docWithDays(days ...DayEntry) *Document {
	return &Document{
		WeekFromToday: &Week{Periods: []Period{{Days: days}}},
	}
}

func openDay(label, hours string) DayEntry {
	return DayEntry{DayLabel: label, OnDays: &OnDays{StartEndTimeDesc: hours}}
}

func offDay(label, reason string) DayEntry {
	return DayEntry{DayLabel: label, OffDaysDesc: reason}
}

// ── 문서 없음 / 구조 손상 ──

func TestExtractToday_NilDocument(t *testing.T) {
	now := time.Date(2025, 12, 28, 13, 0, 0, 0, kst)

	if got := ExtractToday(nil, now); got.Status != StatusUnknown {
		t.Errorf("nil 문서는 UNKNOWN이어야 함, 실제 %q", got.Status)
	}
	if got := ExtractToday(&Document{}, now); got.Status != StatusUnknown {
		t.Errorf("week_from_today 없는 문서는 UNKNOWN이어야 함, 실제 %q", got.Status)
	}
}

func TestDecodeDocument_Malformed(t *testing.T) {
	cases := []string{
		"",
		"null",
		`"문자열"`,
		`[1,2,3]`,
		`{"week_from_today": "wrong"}`,
		`{"week_from_today": {"week_periods": {"not":"a list"}}}`,
		`{깨진 json`,
	}
	for _, raw := range cases {
		if doc := DecodeDocument([]byte(raw)); doc != nil {
			now := time.Date(2025, 12, 28, 13, 0, 0, 0, kst)
			if got := ExtractToday(doc, now); got.Status != StatusUnknown {
				t.Errorf("%q: 손상된 문서는 UNKNOWN으로 끝나야 함", raw)
			}
		}
	}
}

func TestDecodePanel_Malformed(t *testing.T) {
	cases := []string{"", "null", `{}`, `{"open_hours": null}`, `{"open_hours": 42}`, `not json`}
	for _, raw := range cases {
		if doc := DecodePanel([]byte(raw)); doc != nil && doc.WeekFromToday != nil {
			t.Errorf("%q: open_hours가 없으면 문서도 비어 있어야 함", raw)
		}
	}
}

// ── 오늘 항목 추출 ──

func TestExtractToday_OffDay(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, kst)
	doc := docWithDays(offDay("수(1/1)", "신정"))

	got := ExtractToday(doc, now)
	if got.Status != StatusOff {
		t.Fatalf("기대 OFF, 실제 %q", got.Status)
	}
	if got.Note != "수(1/1) 신정" {
		t.Errorf("기대 note=%q, 실제 %q", "수(1/1) 신정", got.Note)
	}
	if got.OpenAt != nil || got.CloseAt != nil {
		t.Error("휴무일엔 시각이 없어야 함")
	}
}

func TestExtractToday_OpenWithHours(t *testing.T) {
	now := time.Date(2025, 12, 28, 13, 0, 0, 0, kst)
	doc := docWithDays(openDay("일(12/28)", "12:00 ~ 17:00"))

	got := ExtractToday(doc, now)
	if got.Status != StatusOpen {
		t.Fatalf("기대 OPEN, 실제 %q", got.Status)
	}
	if got.OpenAt == nil || got.CloseAt == nil {
		t.Fatal("시각이 채워져야 함")
	}
	wantOpen := time.Date(2025, 12, 28, 12, 0, 0, 0, kst)
	wantClose := time.Date(2025, 12, 28, 17, 0, 0, 0, kst)
	if !got.OpenAt.Equal(wantOpen) || !got.CloseAt.Equal(wantClose) {
		t.Errorf("기대 %v~%v, 실제 %v~%v", wantOpen, wantClose, got.OpenAt, got.CloseAt)
	}
	if got.Note != "일(12/28) 12:00 ~ 17:00" {
		t.Errorf("note 불일치: %q", got.Note)
	}
}

// 종료가 시작보다 빠르면 익일 마감으로 본다
func TestExtractToday_OvernightSpan(t *testing.T) {
	now := time.Date(2025, 12, 28, 23, 30, 0, 0, kst)
	doc := docWithDays(openDay("일(12/28)", "18:00 ~ 02:00"))

	got := ExtractToday(doc, now)
	if got.Status != StatusOpen || got.CloseAt == nil {
		t.Fatalf("OPEN + 시각을 기대, 실제 %+v", got)
	}
	wantClose := time.Date(2025, 12, 29, 2, 0, 0, 0, kst)
	if !got.CloseAt.Equal(wantClose) {
		t.Errorf("기대 마감 %v, 실제 %v", wantClose, got.CloseAt)
	}
}

// "09:00 ~ 24:00"은 00:00 정규화 + 익일 보정을 거쳐 익일 자정 마감이 된다
func TestExtractToday_RunsUntilMidnight(t *testing.T) {
	now := time.Date(2025, 12, 28, 22, 0, 0, 0, kst)
	doc := docWithDays(openDay("일(12/28)", "09:00 ~ 24:00"))

	got := ExtractToday(doc, now)
	if got.Status != StatusOpen || got.CloseAt == nil {
		t.Fatalf("OPEN + 시각을 기대, 실제 %+v", got)
	}
	wantClose := time.Date(2025, 12, 29, 0, 0, 0, 0, kst)
	if !got.CloseAt.Equal(wantClose) {
		t.Errorf("기대 마감 %v, 실제 %v", wantClose, got.CloseAt)
	}
}

func TestExtractToday_UnparseableHours(t *testing.T) {
	now := time.Date(2025, 12, 28, 13, 0, 0, 0, kst)
	cases := []DayEntry{
		openDay("일(12/28)", "12시부터 5시까지"),
		openDay("일(12/28)", "12:00 ~ 17:00 ~ 19:00"),
		openDay("일(12/28)", ""),
		{DayLabel: "일(12/28)"}, // on_days 자체가 없음
	}
	for _, day := range cases {
		got := ExtractToday(docWithDays(day), now)
		if got.Status != StatusOpen {
			t.Errorf("%+v: 시간 미상이어도 OPEN이어야 함, 실제 %q", day, got.Status)
			continue
		}
		if got.OpenAt != nil || got.CloseAt != nil {
			t.Errorf("%+v: 시각은 비어 있어야 함", day)
		}
		if got.Note != "일(12/28) (시간 파싱 실패)" {
			t.Errorf("note 불일치: %q", got.Note)
		}
	}
}

func TestExtractToday_NoMatchingDay(t *testing.T) {
	now := time.Date(2025, 12, 28, 13, 0, 0, 0, kst)
	doc := docWithDays(
		openDay("월(12/29)", "09:00 ~ 18:00"),
		offDay("화(12/30)", "정기휴무"),
	)

	if got := ExtractToday(doc, now); got.Status != StatusUnknown {
		t.Errorf("오늘 항목이 없으면 UNKNOWN, 실제 %q", got.Status)
	}
}

// 스탬프가 깨진 항목은 건너뛰고 다음 후보를 계속 본다
func TestExtractToday_SkipsBadStamp(t *testing.T) {
	now := time.Date(2025, 12, 28, 13, 0, 0, 0, kst)
	doc := docWithDays(
		openDay("일요일", "10:00 ~ 11:00"),    // 스탬프 없음
		openDay("화(2/31)", "10:00 ~ 11:00"), // 달력에 없는 날짜
		openDay("일(12/28)", "12:00 ~ 17:00"),
	)

	got := ExtractToday(doc, now)
	if got.Status != StatusOpen || got.OpenAt == nil {
		t.Fatalf("뒤쪽의 정상 항목을 찾아야 함, 실제 %+v", got)
	}
}

// 같은 날짜가 여러 기간에 걸쳐 중복되면 열거 순서상 첫 항목을 쓴다
func TestExtractToday_FirstMatchWins(t *testing.T) {
	now := time.Date(2025, 12, 28, 13, 0, 0, 0, kst)
	doc := &Document{
		WeekFromToday: &Week{Periods: []Period{
			{Days: []DayEntry{openDay("일(12/28)", "10:00 ~ 15:00")}},
			{Days: []DayEntry{openDay("일(12/28)", "12:00 ~ 17:00")}},
		}},
	}

	got := ExtractToday(doc, now)
	if got.Note != "일(12/28) 10:00 ~ 15:00" {
		t.Errorf("첫 번째 일치 항목을 써야 함, 실제 note=%q", got.Note)
	}
}

// 연말/연초: 스탬프는 now의 연도로 해석한다
func TestExtractToday_UsesReferenceYear(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, kst)
	doc := docWithDays(openDay("수(1/1)", "10:00 ~ 18:00"))

	got := ExtractToday(doc, now)
	if got.Status != StatusOpen || got.OpenAt == nil {
		t.Fatalf("1/1 항목이 2026-01-01과 일치해야 함, 실제 %+v", got)
	}
	if got.OpenAt.Year() != 2026 {
		t.Errorf("기대 연도 2026, 실제 %d", got.OpenAt.Year())
	}
}
