package ingest

import (
	"context"

	"jangbu-backend/internal/ocr"
	"jangbu-backend/internal/pdftext"

	"github.com/rs/zerolog"
)

// PDFTextExtractor - 텍스트 레이어를 먼저 읽고, 부족하면 OCR로 내려가는
// TextExtractor 구현. recognizer가 nil이면 텍스트 레이어만 쓴다.
type PDFTextExtractor struct {
	recognizer ocr.TextRecognizer
	log        zerolog.Logger
}

func NewPDFTextExtractor(recognizer ocr.TextRecognizer, log zerolog.Logger) *PDFTextExtractor {
	return &PDFTextExtractor{recognizer: recognizer, log: log}
}

func (p *PDFTextExtractor) Text(ctx context.Context, data []byte) (string, error) {
	text, err := pdftext.Extract(data)
	if err != nil {
		if p.recognizer == nil {
			return "", err
		}
		p.log.Warn().Err(err).Msg("텍스트 레이어 추출 실패, OCR 시도")
		text = ""
	}

	if pdftext.NeedsOCR(text) && p.recognizer != nil {
		p.log.Info().Int("textLen", len(text)).Msg("텍스트 부족, OCR 실행")
		ocrText, err := p.recognizer.Process(ctx, data)
		if err != nil {
			if text != "" {
				p.log.Warn().Err(err).Msg("OCR 실패, 텍스트 레이어 결과 사용")
				return text, nil
			}
			return "", err
		}
		return ocrText, nil
	}
	return text, nil
}
