package extract

import (
	"strconv"
	"strings"
)

// ParseAmount: 금액 문자열을 정수로 변환
// 천 단위 쉼표를 제거하고, 음수 표기 3종을 처리한다:
// "-" (하이픈), "▲" (수정 세금계산서 표기), "(1,000)" (괄호)
func ParseAmount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := strings.Contains(s, "-") ||
		strings.Contains(s, "▲") ||
		(strings.Contains(s, "(") && strings.Contains(s, ")"))

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}

// GroupDigits: 정수를 천 단위 쉼표가 포함된 문자열로 변환 (음수 지원)
func GroupDigits(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// stripCommas: 천 단위 쉼표 제거
func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// isNumericOnly: 쉼표/공백을 무시하고 숫자로만 구성되어 있는지 확인
func isNumericOnly(s string) bool {
	s = strings.TrimSpace(stripCommas(s))
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
