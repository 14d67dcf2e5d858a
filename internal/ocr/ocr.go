package ocr

import (
	"context"
	"errors"
	"fmt"
)

// 동기 처리 한도. Vision API 기준 20MB.
const MaxFileSizeBytes = 20 * 1024 * 1024

// TextRecognizer - PDF 바이트에서 전체 텍스트를 추출한다.
type TextRecognizer interface {
	Process(ctx context.Context, data []byte) (string, error)
	Close() error
}

var (
	ErrPDFTooLarge        = errors.New("PDF 크기가 20MB 한도를 초과")
	ErrInvalidPDF         = errors.New("유효하지 않은 PDF 문서")
	ErrOCRFailed          = errors.New("OCR 처리 실패")
	ErrMissingCredentials = errors.New("Google Cloud 인증 정보 없음")
	ErrEmptyDocument      = errors.New("문서에서 텍스트를 찾을 수 없음")
)

// Error - 실패한 작업명과 원인을 함께 담는다.
type Error struct {
	Op      string
	Err     error
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrapErr(op string, err error, details string) error {
	if err == nil {
		return nil
	}
	var oe *Error
	if errors.As(err, &oe) {
		return err
	}
	return &Error{Op: op, Err: err, Details: details}
}

func validatePDF(data []byte) error {
	if len(data) > MaxFileSizeBytes {
		return ErrPDFTooLarge
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		return ErrInvalidPDF
	}
	return nil
}
