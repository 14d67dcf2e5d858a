package format

import "strings"

// digitsOnly: 숫자만 남기고, 최대 길이를 넘으면 자른다
func digitsOnly(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()
	if len(d) > max {
		d = d[:max]
	}
	return d
}

// Phone: 전화번호 자동 하이픈 (11자리 제한)
// 예: "01012345678" → "010-1234-5678"
func Phone(value string) string {
	digits := digitsOnly(value, 11)

	switch {
	case len(digits) < 4:
		return digits
	case len(digits) < 7:
		return digits[:3] + "-" + digits[3:]
	case len(digits) < 11:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	default:
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	}
}

// BizNumber: 사업자등록번호 자동 하이픈 (10자리 제한)
// 예: "1234567890" → "123-45-67890"
func BizNumber(value string) string {
	digits := digitsOnly(value, 10)

	switch {
	case len(digits) < 4:
		return digits
	case len(digits) < 6:
		return digits[:3] + "-" + digits[3:]
	default:
		return digits[:3] + "-" + digits[3:5] + "-" + digits[5:]
	}
}

// bankPatterns: 은행별 계좌번호 자리수 패턴
var bankPatterns = map[string][]int{
	"국민은행":   {6, 2, 6},
	"농협":     {3, 4, 4, 2},
	"신한은행":   {3, 3, 6},
	"기업은행":   {3, 6, 2},
	"우리은행":   {4, 3, 6},
	"하나은행":   {3, 6, 5},
	"카카오뱅크":  {4, 2, 6},
	"토스뱅크":   {3, 4, 4},
	"부산은행":   {3, 6, 2},
	"수협":     {3, 4, 4},
	"SC제일은행": {4, 2, 7},
}

// AccountNumber: 은행별 패턴에 따라 계좌번호에 하이픈을 넣는다
// 등록되지 않은 은행은 숫자만 돌려준다.
func AccountNumber(bank, value string) string {
	numbers := digitsOnly(value, len(value))
	pattern, ok := bankPatterns[bank]
	if !ok {
		return numbers
	}

	var b strings.Builder
	idx := 0
	for i, n := range pattern {
		if idx >= len(numbers) {
			break
		}
		end := idx + n
		if end > len(numbers) {
			end = len(numbers)
		}
		part := numbers[idx:end]
		b.WriteString(part)
		idx = end

		if i < len(pattern)-1 && len(part) == n && idx < len(numbers) {
			b.WriteByte('-')
		}
	}
	return b.String()
}
