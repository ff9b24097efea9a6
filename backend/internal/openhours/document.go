package openhours

import "encoding/json"

// ── 영업시간 문서 구조 ──────────────────────────────────────
//
// 카카오 플레이스 패널(panel3) 응답의 open_hours 영역을 그대로 본뜬 트리.
// 외부에서 긁어온 데이터라 어떤 필드든 빠져 있을 수 있으며,
// 모양이 다른 경우(배열 대신 객체 등)는 디코딩 단계에서 전부 걸러서
// "문서 없음"으로 취급한다. 이 패키지 밖에서는 panel3의 생김새를
// 알 필요가 없도록 방어적 접근을 여기에 모아 둔다.
// ─────────────────────────────────────────────────────────────

// Panel panel3 응답 중 이 패키지가 관심 있는 부분
type Panel struct {
	OpenHours json.RawMessage `json:"open_hours"`
}

// Document 주간 영업시간 문서 (open_hours)
type Document struct {
	WeekFromToday *Week     `json:"week_from_today"`
	Headline      *Headline `json:"headline"`
}

// Week 오늘부터 시작하는 주간 스케줄
type Week struct {
	Periods []Period `json:"week_periods"`
}

// Period 요일 묶음 (예: 평일/주말). 순서 보장은 없다고 가정한다.
type Period struct {
	Days []DayEntry `json:"days"`
}

// DayEntry 하루치 영업 정보
//   - DayLabel: "일(12/28)" 형태의 표시 문자열
//   - OffDaysDesc: 값이 있으면 휴무 (예: "신정")
//   - OnDays: 영업일인 경우의 시간 정보
type DayEntry struct {
	DayLabel    string  `json:"day_of_the_week_desc"`
	OffDaysDesc string  `json:"off_days_desc"`
	OnDays      *OnDays `json:"on_days"`
}

// OnDays 영업 시간 텍스트 ("12:00 ~ 17:00" 형태)
type OnDays struct {
	StartEndTimeDesc string `json:"start_end_time_desc"`
}

// Headline 요약 라인이 하나도 없을 때의 대체 표시 문구
type Headline struct {
	DisplayTextInfo string `json:"display_text_info"`
}

// DecodePanel panel3 원본 JSON에서 open_hours 문서를 꺼낸다.
// 어느 단계에서든 구조가 깨져 있으면 nil을 돌려준다. 에러가 아니라
// "데이터 없음"이라는 정상 결과다.
func DecodePanel(raw []byte) *Document {
	if len(raw) == 0 {
		return nil
	}
	var p Panel
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return DecodeDocument(p.OpenHours)
}

// DecodeDocument open_hours JSON을 Document로 디코딩한다.
// null, 빈 값, 타입이 다른 값 모두 nil.
func DecodeDocument(raw []byte) *Document {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	return &doc
}
