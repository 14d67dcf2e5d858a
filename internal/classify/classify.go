package classify

import (
	"fmt"
	"regexp"
	"strings"

	"jangbu-backend/internal/datecode"
	"jangbu-backend/internal/extract"
)

// DocType: 문서 분류 결과
type DocType string

const (
	Purchase DocType = "purchases" // 매입 (수요자가 본인)
	Sale     DocType = "sales"     // 매출 (공급자가 본인)
	Unknown  DocType = "unknown"   // 판별 불가
)

// Label: 한글 표시명
func (t DocType) Label() string {
	switch t {
	case Purchase:
		return "매입"
	case Sale:
		return "매출"
	default:
		return "기타"
	}
}

// Classify: 본인 사업자번호 기준으로 매입/매출 판별
// 세 인자 모두 숫자만 남긴 형태로 비교한다. ownerBiz가 비어 있으면
// 항상 Unknown (설정 경고는 호출부에서 한 번만 남긴다).
// 수요자가 본인이면 매입, 공급자가 본인이면 매출.
func Classify(ownerBiz, supplierBiz, buyerBiz string) DocType {
	owner := extract.NormalizeBizNo(ownerBiz)
	if owner == "" {
		return Unknown
	}

	if extract.NormalizeBizNo(buyerBiz) == owner {
		return Purchase
	}
	if extract.NormalizeBizNo(supplierBiz) == owner {
		return Sale
	}
	return Unknown
}

// 파일명에 쓸 수 없는 문자들
var forbiddenPathChars = regexp.MustCompile(`[/\\#%&?*:<>"|{}]`)
var whitespaceRun = regexp.MustCompile(`\s+`)

// SanitizeFileName: 거래처명을 파일명에 쓸 수 있게 정리
// 공백은 밑줄로, 경로 금지 문자는 제거.
func SanitizeFileName(s string) string {
	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), "_")
	return forbiddenPathChars.ReplaceAllString(s, "")
}

// FileName: 저장 파일명 규칙
// {yy}-{mm}-{dd}_{정리된 거래처명}_{쉼표 포함 합계}_{플래그}
// 플래그: 매입 01, 매출 02
func FileName(t DocType, date datecode.Date, partner string, total int64, ext string) string {
	flag := "01"
	if t == Sale {
		flag = "02"
	}
	return fmt.Sprintf("%s_%s_%s_%s%s",
		date.Format(), SanitizeFileName(partner), extract.GroupDigits(total), flag, ext)
}

// StoragePath: 업로드 대상 경로
// /BUSINESS/{yyyy}년 세금계산서/{매입|매출}/{파일명}
func StoragePath(t DocType, date datecode.Date, fileName string) string {
	return fmt.Sprintf("/BUSINESS/%d년 세금계산서/%s/%s", date.Year, t.Label(), fileName)
}
