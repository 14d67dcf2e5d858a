package datecode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Date: YYMMDD 코드에서 복원한 날짜 (Year는 4자리)
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Encode: 날짜를 6자리 YYMMDD 정수 코드로 변환
// 예: 2025-11-04 → 251104
// 월/일 범위는 검증하지 않고 그대로 인코딩한다 (부분 날짜 허용).
// 범위를 벗어나면 경고만 남긴다.
func Encode(year, month, day int) int {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		log.Warn().
			Int("year", year).Int("month", month).Int("day", day).
			Msg("날짜 코드 인코딩: 월/일이 정상 범위를 벗어남")
	}
	return (year%100)*10000 + month*100 + day
}

// Decode: YYMMDD 코드를 날짜로 복원. 연도는 "20" 접두로 재구성한다.
// 0 이하의 코드는 날짜 없음으로 간주한다 (ok=false).
func Decode(code int) (Date, bool) {
	if code <= 0 {
		return Date{}, false
	}
	str := fmt.Sprintf("%06d", code)
	if len(str) > 6 {
		return Date{}, false
	}
	yy, _ := strconv.Atoi(str[0:2])
	mm, _ := strconv.Atoi(str[2:4])
	dd, _ := strconv.Atoi(str[4:6])
	return Date{Year: 2000 + yy, Month: mm, Day: dd}, true
}

// Format: "YY-MM-DD" 표시 형식
func (d Date) Format() string {
	return fmt.Sprintf("%02d-%02d-%02d", d.Year%100, d.Month, d.Day)
}

var dashDateRe = regexp.MustCompile(`^(\d{2}|\d{4})[-/](\d{2})[-/](\d{2})$`)

// FromString: 날짜 문자열을 YYMMDD 코드로 변환
// "25-11-10", "2025-11-10", "2025/11/10" 형식 지원. 그 외는 0.
func FromString(s string) int {
	m := dashDateRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	yy := m[1]
	if len(yy) == 4 {
		yy = yy[2:]
	}
	code, err := strconv.Atoi(yy + m[2] + m[3])
	if err != nil {
		return 0
	}
	return code
}

// FormatDisplay: 저장 형태가 일정하지 않은 날짜 값을 "YY-MM-DD"로 표시
// 지원 형태: 정수 YYMMDD 코드 / seconds 필드를 가진 타임스탬프 맵 /
// time.Time / 날짜 문자열. seconds 필드가 있으면 우선한다.
// 해석할 수 없으면 빈 문자열을 돌려준다 (throw 금지).
func FormatDisplay(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case int:
		return formatCode(t)
	case int64:
		return formatCode(int(t))
	case float64:
		return formatCode(int(t))
	case time.Time:
		return t.Format("06-01-02")
	case map[string]any:
		// Firestore 타임스탬프 호환: {"seconds": ..., "nanoseconds": ...}
		if sec, ok := timestampSeconds(t); ok {
			return time.Unix(sec, 0).UTC().Format("06-01-02")
		}
		return ""
	case string:
		if code := FromString(t); code > 0 {
			return formatCode(code)
		}
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts.Format("06-01-02")
		}
		return ""
	default:
		return ""
	}
}

func formatCode(code int) string {
	d, ok := Decode(code)
	if !ok {
		return ""
	}
	return d.Format()
}

func timestampSeconds(m map[string]any) (int64, bool) {
	raw, ok := m["seconds"]
	if !ok {
		raw, ok = m["_seconds"]
	}
	if !ok {
		return 0, false
	}
	switch s := raw.(type) {
	case int64:
		return s, true
	case int:
		return int64(s), true
	case float64:
		return int64(s), true
	default:
		return 0, false
	}
}

// FromYYYYMMDD: "20251104" 같은 8자리 문자열을 YYMMDD 코드로 변환
// 형식이 아니면 오늘 날짜의 코드를 돌려준다.
func FromYYYYMMDD(s string) int {
	if len(s) != 8 {
		return Today()
	}
	code, err := strconv.Atoi(s[2:])
	if err != nil {
		return Today()
	}
	return code
}

// Today: 오늘 날짜의 YYMMDD 코드
func Today() int {
	now := time.Now()
	return Encode(now.Year(), int(now.Month()), now.Day())
}
