package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Fields: 세금계산서 텍스트에서 추출한 항목들
// 매칭되지 않은 항목은 빈 문자열 (규격만 "-" 플레이스홀더).
type Fields struct {
	Date           string `json:"date"`
	Supplier       string `json:"supplier"`
	Receiver       string `json:"receiver"`
	BusinessNumber string `json:"businessNumber"`
	ItemName       string `json:"itemName"`
	Specification  string `json:"specification"`
	Quantity       string `json:"qty"`
	UnitPrice      string `json:"unitPrice"`
	SupplyValue    string `json:"supplyPrice"`
	Tax            string `json:"tax"`
	Total          string `json:"total"`
}

// candidate: (패턴, 검증자) 쌍. 패턴 우선순위 순서대로 시도하고
// 검증을 통과한 첫 매치를 쓴다.
type candidate struct {
	re       *regexp.Regexp
	validate func(string) bool
}

// Normalize: 추출 전에 텍스트를 정리 (캐리지 리턴 제거, 공백 축약)
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

var spaceRe = regexp.MustCompile(`\s+`)

// Extract: 정리된 텍스트에서 전체 항목을 추출한다. 실패해도 에러 없이
// 해당 항목만 비운다.
func Extract(text string) Fields {
	text = Normalize(text)
	return Fields{
		Date:           ExtractDate(text),
		Supplier:       ExtractSupplier(text),
		Receiver:       ExtractReceiver(text),
		BusinessNumber: ExtractBusinessNumber(text),
		ItemName:       ExtractItemName(text),
		Specification:  ExtractSpecification(text),
		Quantity:       ExtractQuantity(text),
		UnitPrice:      ExtractUnitPrice(text),
		SupplyValue:    ExtractSupplyValue(text),
		Tax:            ExtractTax(text),
		Total:          ExtractTotal(text),
	}
}

// firstMatch: 후보 패턴을 순서대로 적용해 검증을 통과한 첫 매치를 반환
func firstMatch(text string, cands []candidate) string {
	for _, c := range cands {
		m := c.re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		v := strings.TrimSpace(m[1])
		if v == "" {
			continue
		}
		if c.validate != nil && !c.validate(v) {
			continue
		}
		return v
	}
	return ""
}

// ---------------------------------
// 작성일자
// ---------------------------------

var dateCandidates = []*regexp.Regexp{
	// 라벨이 붙은 작성일자 우선
	regexp.MustCompile(`작성일자\s*[:：]?\s*(\d{4})[.\-/\s]*(\d{1,2})[.\-/\s]*(\d{1,2})`),
	// 라벨 없는 일반 날짜는 마지막 수단
	regexp.MustCompile(`(\d{4})[.\-/\s]*(\d{1,2})[.\-/\s]*(\d{1,2})`),
}

// ExtractDate: 작성일자를 "YYYY-MM-DD" 형식으로 추출
func ExtractDate(text string) string {
	for _, re := range dateCandidates {
		m := re.FindStringSubmatch(text)
		if len(m) < 4 {
			continue
		}
		return fmt.Sprintf("%s-%s-%s", m[1], pad2(m[2]), pad2(m[3]))
	}
	return ""
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// ---------------------------------
// 공급자 / 공급받는자 상호
// ---------------------------------

// 상호명 검증: 순수 숫자나 사업자등록번호 형태는 상호가 아니다
func validCompanyName(v string) bool {
	return !isNumericOnly(v) && !looksLikeBizNo(v)
}

var supplierCandidates = []candidate{
	{regexp.MustCompile(`공급자.*?상\s*호\s*[:：]?\s*([가-힣A-Za-z0-9㈜\s]+)`), validCompanyName},
	{regexp.MustCompile(`공급자.*?상\s*호.*?([가-힣A-Za-z0-9㈜]+)`), validCompanyName},
}

var receiverCandidates = []candidate{
	{regexp.MustCompile(`공급받는자.*?상\s*호\s*[:：]?\s*([가-힣A-Za-z0-9㈜\s]+)`), validCompanyName},
	{regexp.MustCompile(`수요자.*?상\s*호.*?([가-힣A-Za-z0-9㈜]+)`), validCompanyName},
}

// ExtractSupplier: 공급자 상호명 추출
func ExtractSupplier(text string) string {
	return firstMatch(text, supplierCandidates)
}

// ExtractReceiver: 공급받는자(수요자) 상호명 추출
func ExtractReceiver(text string) string {
	return firstMatch(text, receiverCandidates)
}

// ---------------------------------
// 사업자등록번호
// ---------------------------------

var bizNoCandidates = []*regexp.Regexp{
	// OCR로 숫자 그룹 사이에 공백이 끼어든 경우까지 허용
	regexp.MustCompile(`등록번호\s*[:：]?\s*(\d{3}[\s-]*\d{2}[\s-]*\d{5})`),
	regexp.MustCompile(`(\d{3}-\d{2}-\d{5})`),
	regexp.MustCompile(`(\d{3}\s+\d{2}\s+\d{5})`),
}

// ExtractBusinessNumber: 사업자등록번호를 NNN-NN-NNNNN 형태로 추출
func ExtractBusinessNumber(text string) string {
	for _, re := range bizNoCandidates {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		return FormatBizNo(m[1])
	}
	return ""
}

// ---------------------------------
// 품목 / 규격
// ---------------------------------

// 컬럼 라벨 자체가 품목으로 잡히면 안 된다
var reservedLabels = map[string]bool{
	"규격": true, "수량": true, "단가": true,
}

func validItemName(v string) bool {
	return !isNumericOnly(v) && !reservedLabels[v]
}

var itemCandidates = []candidate{
	{regexp.MustCompile(`품\s*목\s*명\s*[:：]?\s*([가-힣A-Za-z0-9\s]+)`), validItemName},
	{regexp.MustCompile(`품\s*목\s*[:：]\s*([가-힣A-Za-z0-9]+)`), validItemName},
}

// ExtractItemName: 품목명 추출
func ExtractItemName(text string) string {
	return firstMatch(text, itemCandidates)
}

var specRe = regexp.MustCompile(`규\s*격\s*[:：]?\s*([가-힣A-Za-z0-9×x*/]+)`)

// ExtractSpecification: 규격 추출. 순수 숫자이거나 찾지 못하면 "-"
func ExtractSpecification(text string) string {
	m := specRe.FindStringSubmatch(text)
	if len(m) < 2 {
		return "-"
	}
	v := strings.TrimSpace(m[1])
	if v == "" || isNumericOnly(v) {
		return "-"
	}
	return v
}

// ---------------------------------
// 수량 / 단가
// ---------------------------------

var qtyCandidates = []*regexp.Regexp{
	regexp.MustCompile(`수\s*량\s*[:：]?\s*([\d,]+)`),
	// "188ea" 같은 표기에서 ea 앞 자연수를 수량으로
	regexp.MustCompile(`(\d+)\s*[eE][aA]`),
}

// ExtractQuantity: 수량 추출 (쉼표 제거)
func ExtractQuantity(text string) string {
	for _, re := range qtyCandidates {
		m := re.FindStringSubmatch(text)
		if len(m) >= 2 {
			return stripCommas(m[1])
		}
	}
	return ""
}

var unitPriceRe = regexp.MustCompile(`단\s*가\s*[:：]?\s*(-?[\d,]+)`)

// ExtractUnitPrice: 단가 추출
func ExtractUnitPrice(text string) string {
	m := unitPriceRe.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// ---------------------------------
// 공급가액 / 세액 / 합계금액
// ---------------------------------

var supplyCandidates = []*regexp.Regexp{
	regexp.MustCompile(`공급가액\s*[:：]?\s*(-?[\d,]+)`),
	regexp.MustCompile(`공\s*급\s*가\s*액\s*[:：]?\s*(-?[\d,]+)`),
}

// ExtractSupplyValue: 공급가액 추출
func ExtractSupplyValue(text string) string {
	for _, re := range supplyCandidates {
		m := re.FindStringSubmatch(text)
		if len(m) >= 2 {
			return m[1]
		}
	}
	return ""
}

var taxRe = regexp.MustCompile(`세\s*액\s*[:：]?\s*(-?[\d,]+)`)

// ExtractTax: 세액 추출
func ExtractTax(text string) string {
	m := taxRe.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

var totalCandidates = []*regexp.Regexp{
	regexp.MustCompile(`합계금액\s*[:：]?\s*(-?[\d,]+)`),
	regexp.MustCompile(`총\s*계\s*[:：]?\s*(-?[\d,]+)`),
}

// ExtractTotal: 합계금액 추출
// 라벨 매치가 없으면 공급가액 + 세액으로 유도한다 (합계 = 공급가 + 세액 불변식).
func ExtractTotal(text string) string {
	for _, re := range totalCandidates {
		m := re.FindStringSubmatch(text)
		if len(m) >= 2 {
			return m[1]
		}
	}

	supply, okS := ParseAmount(ExtractSupplyValue(text))
	tax, okT := ParseAmount(ExtractTax(text))
	if !okS || !okT {
		return ""
	}
	return GroupDigits(supply + tax)
}
