package extract

import (
	"regexp"
	"strings"
)

var (
	bizNoShapeRe = regexp.MustCompile(`^\d{3}-\d{2}-\d{5}$`)
	bizNoScanRe  = regexp.MustCompile(`\d{3}-\d{2}-\d{5}`)
)

// NormalizeBizNo: 사업자등록번호에서 숫자만 남긴다
// 멱등: NormalizeBizNo(NormalizeBizNo(x)) == NormalizeBizNo(x).
// 앞자리 0은 제거하지 않는다 (비교는 문자열 그대로).
func NormalizeBizNo(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatBizNo: 추출된 원문을 NNN-NN-NNNNN 형태로 정규화
// OCR 결과물에는 숫자 그룹 사이에 공백/줄바꿈이 끼어들 수 있으므로
// 공백을 걷어낸 뒤, 하이픈이 이미 있으면 그대로 쓰고 없으면
// 3-2-5 자리 위치에 하이픈을 넣는다.
func FormatBizNo(raw string) string {
	compact := strings.Join(strings.Fields(raw), "")
	if strings.Contains(compact, "-") {
		return compact
	}
	digits := NormalizeBizNo(compact)
	if len(digits) != 10 {
		return compact
	}
	return digits[0:3] + "-" + digits[3:5] + "-" + digits[5:10]
}

// AllBusinessNumbers - 본문에 등장하는 모든 사업자등록번호를 순서대로 반환한다.
// 세금계산서 서식상 공급자 번호가 공급받는자 번호보다 먼저 나온다.
func AllBusinessNumbers(text string) []string {
	return bizNoScanRe.FindAllString(text, -1)
}

// looksLikeBizNo: 값 자체가 사업자등록번호 형태인지 확인 (상호명 검증용)
func looksLikeBizNo(s string) bool {
	s = strings.TrimSpace(s)
	if bizNoShapeRe.MatchString(s) {
		return true
	}
	digits := NormalizeBizNo(s)
	return len(digits) == 10 && digits == strings.ReplaceAll(s, "-", "")
}
