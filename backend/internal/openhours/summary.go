package openhours

import "strings"

// Summary 주간 문서 전체를 사람이 읽을 한 줄 요약으로 펼친다.
//
// 하루당 한 조각씩 "일(12/28) 휴무" 또는 "월(12/29) 09:00 ~ 18:00" 형태로
// 만들어 " | "로 잇는다. 휴무도 시간도 없는 항목은 생략.
// 조각이 하나도 없으면 문서의 headline 표시 문구로 대체하고,
// 그마저 없으면 빈 문자열. 영업중 판정과는 무관한 표시 전용 값이다.
func Summary(doc *Document) string {
	if doc == nil {
		return ""
	}

	var lines []string
	if doc.WeekFromToday != nil {
		for _, period := range doc.WeekFromToday.Periods {
			for _, d := range period.Days {
				switch {
				case d.OffDaysDesc != "":
					lines = append(lines, d.DayLabel+" 휴무")
				case d.OnDays != nil && d.OnDays.StartEndTimeDesc != "":
					lines = append(lines, d.DayLabel+" "+d.OnDays.StartEndTimeDesc)
				}
			}
		}
	}

	if len(lines) > 0 {
		return strings.Join(lines, " | ")
	}
	if doc.Headline != nil {
		return doc.Headline.DisplayTextInfo
	}
	return ""
}
