// Package pdftext - PDF 내장 텍스트 레이어 추출.
// 전자세금계산서 PDF는 대부분 텍스트 레이어를 포함하고 있어 OCR 없이 처리 가능하다.
package pdftext

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/go-fitz"
)

// OCR 전환 기준. 이보다 짧은 텍스트는 스캔본으로 간주한다.
const minTextRunes = 100

// Extract - PDF의 모든 페이지에서 텍스트 레이어를 추출한다.
func Extract(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("PDF 열기 실패: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("%d페이지 텍스트 추출 실패: %w", n+1, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// NeedsOCR - 추출된 텍스트가 너무 짧으면 스캔 문서로 판단한다.
func NeedsOCR(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < minTextRunes
}
