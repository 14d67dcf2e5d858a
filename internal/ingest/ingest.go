// Package ingest - 업로드된 세금계산서(엑셀/PDF)를 분류해 저장소와 장부에 반영한다.
package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"jangbu-backend/internal/classify"
	"jangbu-backend/internal/datecode"
	"jangbu-backend/internal/extract"
	"jangbu-backend/internal/models"
	"jangbu-backend/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// 세금계산서 서식의 고정 셀 주소
const (
	cellSupplierBiz  = "H5"  // 공급자 등록번호
	cellSupplierName = "H6"  // 공급자 상호
	cellBuyerBiz     = "Z5"  // 공급받는자 등록번호
	cellBuyerName    = "Z6"  // 공급받는자 상호
	cellApprovalNo   = "Z4"  // 승인번호 (앞 8자리가 발행일)
	cellWrittenDate  = "C12" // 작성일자
	cellSupplyValue  = "H12" // 공급가액
	cellTax          = "M12" // 세액
	cellFirstItem    = "E12" // 첫 품목
)

// Ingestor - 계산서 수집 파이프라인
type Ingestor struct {
	store    store.Store
	storage  FileUploader
	extract  TextExtractor
	llm      FieldExtractor
	ownerBiz string
	log      zerolog.Logger
}

// FileUploader - 분류된 파일을 외부 저장소에 올린다. nil이면 업로드를 건너뛴다.
type FileUploader interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
}

// TextExtractor - PDF 바이트에서 텍스트를 얻는다 (텍스트 레이어 + OCR 폴백).
type TextExtractor interface {
	Text(ctx context.Context, data []byte) (string, error)
}

// FieldExtractor - LLM 기반 항목 추출. nil이면 정규식 추출만 쓴다.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (extract.Fields, error)
}

func New(st store.Store, uploader FileUploader, textExtractor TextExtractor, llm FieldExtractor, ownerBiz string, log zerolog.Logger) *Ingestor {
	return &Ingestor{
		store:    st,
		storage:  uploader,
		extract:  textExtractor,
		llm:      llm,
		ownerBiz: ownerBiz,
		log:      log,
	}
}

// SheetResult - 성공한 시트의 처리 결과
type SheetResult struct {
	Index   int    `json:"index"`
	Type    string `json:"type"` // 매입 / 매출
	Partner string `json:"partner"`
	Date    string `json:"date"` // YYYY-MM-DD
	Total   int64  `json:"total"`
	FileURL string `json:"fileUrl"`
}

// SheetError - 실패한 시트의 사유. 다른 시트 처리에는 영향을 주지 않는다.
type SheetError struct {
	Index       int    `json:"index"`
	Error       string `json:"error"`
	SupplierBiz string `json:"supplierBiz,omitempty"`
	BuyerBiz    string `json:"buyerBiz,omitempty"`
}

type BatchSummary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// BatchResult - 통합 엑셀 파일 한 건의 처리 결과
type BatchResult struct {
	OK        bool         `json:"ok"`
	BatchID   string       `json:"batchId"`
	Duplicate bool         `json:"duplicate,omitempty"`
	Message   string       `json:"message,omitempty"`
	Results   []SheetResult `json:"results"`
	Errors    []SheetError  `json:"errors,omitempty"`
	Summary   BatchSummary  `json:"summary"`
}

// IngestWorkbook - 여러 시트가 담긴 엑셀 파일을 시트 단위로 분류/저장한다.
// 한 시트의 실패가 나머지 시트 처리를 막지 않는다.
func (g *Ingestor) IngestWorkbook(ctx context.Context, data []byte, filename string) (*BatchResult, error) {
	hash := bufferHash(data)

	dup, err := g.store.HasUpload(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("업로드 이력 조회 실패: %w", err)
	}
	if dup {
		g.log.Info().Str("filename", filename).Str("hash", hash).Msg("이미 처리된 파일")
		return &BatchResult{OK: true, Duplicate: true, Message: "이미 처리된 파일입니다."}, nil
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("엑셀 파일 열기 실패: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("엑셀 파일에 시트가 없습니다: %s", filename)
	}
	g.log.Info().Str("filename", filename).Int("sheets", len(sheets)).Msg("엑셀 수집 시작")

	result := &BatchResult{OK: true, BatchID: uuid.NewString(), Results: []SheetResult{}}

	for si, sheet := range sheets {
		res, serr := g.ingestSheet(ctx, wb, sheet, si)
		if serr != nil {
			g.log.Warn().Int("sheet", si+1).Str("error", serr.Error).Msg("시트 처리 실패")
			result.Errors = append(result.Errors, *serr)
			continue
		}
		result.Results = append(result.Results, *res)
	}

	result.Summary = BatchSummary{
		Total:   len(sheets),
		Success: len(result.Results),
		Failed:  len(result.Errors),
	}

	// 전부 실패한 파일은 이력에 남기지 않는다. 설정을 고친 뒤 재업로드할 수 있어야 한다.
	if result.Summary.Success > 0 {
		if err := g.store.AddUpload(ctx, &models.UploadLog{
			Hash:         hash,
			Filename:     filename,
			TotalSheets:  len(sheets),
			SuccessCount: result.Summary.Success,
			ErrorCount:   result.Summary.Failed,
			ProcessedAt:  time.Now(),
		}); err != nil {
			// 기록 실패는 수집 결과를 무효화하지 않는다
			g.log.Error().Err(err).Msg("업로드 이력 저장 실패")
		}
	}

	g.log.Info().
		Int("success", result.Summary.Success).
		Int("failed", result.Summary.Failed).
		Msg("엑셀 수집 완료")

	return result, nil
}

func (g *Ingestor) ingestSheet(ctx context.Context, wb *excelize.File, sheet string, index int) (*SheetResult, *SheetError) {
	supplierBiz := extract.NormalizeBizNo(readCell(wb, sheet, cellSupplierBiz))
	supplierName := readCell(wb, sheet, cellSupplierName)
	buyerBiz := extract.NormalizeBizNo(readCell(wb, sheet, cellBuyerBiz))
	buyerName := readCell(wb, sheet, cellBuyerName)

	// 날짜: 승인번호 → 작성일자 → 오늘
	dateCode := sheetDateCode(wb, sheet)
	date, _ := datecode.Decode(dateCode)

	supplyValue := cellAmount(readCell(wb, sheet, cellSupplyValue))
	tax := cellAmount(readCell(wb, sheet, cellTax))
	totalAmount := supplyValue + tax
	firstItem := readCell(wb, sheet, cellFirstItem)

	docType := classify.Classify(g.ownerBiz, supplierBiz, buyerBiz)
	if docType == classify.Unknown {
		return nil, &SheetError{
			Index:       index,
			Error:       "매입/매출 판별 불가",
			SupplierBiz: supplierBiz,
			BuyerBiz:    buyerBiz,
		}
	}

	partner := supplierName
	if docType == classify.Sale {
		partner = buyerName
	}

	fileName := classify.FileName(docType, date, partner, totalAmount, ".xlsx")
	storePath := classify.StoragePath(docType, date, fileName)

	fileURL := ""
	if g.storage != nil {
		out, err := cloneSheet(wb, sheet)
		if err != nil {
			return nil, &SheetError{Index: index, Error: fmt.Sprintf("시트 복사 실패: %v", err)}
		}
		fileURL, err = g.storage.Upload(ctx, storePath, out)
		if err != nil {
			return nil, &SheetError{Index: index, Error: fmt.Sprintf("파일 업로드 실패: %v", err)}
		}
	}

	var err error
	if docType == classify.Purchase {
		err = g.store.AddPurchase(ctx, &models.PurchaseRecord{
			Date:        dateCode,
			Supplier:    supplierName,
			SupplierBiz: supplierBiz,
			Item:        firstItem,
			SupplyValue: supplyValue,
			Tax:         tax,
			TotalAmount: totalAmount,
			FileURL:     fileURL,
			FilePath:    storePath,
		})
	} else {
		err = g.store.AddSale(ctx, &models.SaleRecord{
			Date:        dateCode,
			Buyer:       buyerName,
			BuyerBiz:    buyerBiz,
			Item:        firstItem,
			SupplyValue: supplyValue,
			Tax:         tax,
			TotalAmount: totalAmount,
			FileURL:     fileURL,
			FilePath:    storePath,
		})
	}
	if err != nil {
		return nil, &SheetError{Index: index, Error: fmt.Sprintf("장부 저장 실패: %v", err)}
	}

	return &SheetResult{
		Index:   index,
		Type:    docType.Label(),
		Partner: partner,
		Date:    fmt.Sprintf("%04d-%02d-%02d", date.Year, date.Month, date.Day),
		Total:   totalAmount,
		FileURL: fileURL,
	}, nil
}

// sheetDateCode - 승인번호 앞 8자리를 우선 쓰고, 없으면 작성일자 셀,
// 그것도 없으면 오늘 날짜를 쓴다.
func sheetDateCode(wb *excelize.File, sheet string) int {
	if raw := readCell(wb, sheet, cellApprovalNo); raw != "" {
		digits := digitsOnly(raw)
		if len(digits) >= 8 {
			return datecode.FromYYYYMMDD(digits[:8])
		}
	}
	if raw := readCell(wb, sheet, cellWrittenDate); raw != "" {
		if code := writtenDateCode(raw); code > 0 {
			return code
		}
	}
	return datecode.Today()
}

var writtenDateRe = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)

// writtenDateCode - "2025.11.04", "2025-11-4", "20251104" 형태를 YYMMDD 코드로
func writtenDateCode(raw string) int {
	s := strings.ReplaceAll(strings.ReplaceAll(raw, ".", "-"), "/", "-")
	if m := writtenDateRe.FindStringSubmatch(s); m != nil {
		return datecode.FromYYYYMMDD(m[1] + pad2(m[2]) + pad2(m[3]))
	}
	digits := digitsOnly(raw)
	if len(digits) >= 8 {
		return datecode.FromYYYYMMDD(digits[:8])
	}
	return 0
}

func readCell(wb *excelize.File, sheet, addr string) string {
	v, err := wb.GetCellValue(sheet, addr)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// cellAmount - 금액 셀 해석. 파싱 불가는 0으로 둔다 (빈 셀 허용).
func cellAmount(raw string) int64 {
	v, ok := extract.ParseAmount(raw)
	if !ok {
		return 0
	}
	return v
}

// cloneSheet - 원본 시트 하나를 값/스타일/병합/열 너비/행 높이까지 복사해
// 단일 시트 엑셀 파일로 만든다.
func cloneSheet(src *excelize.File, sheet string) ([]byte, error) {
	out := excelize.NewFile()
	defer out.Close()

	if sheet != "Sheet1" {
		if err := out.SetSheetName("Sheet1", sheet); err != nil {
			return nil, err
		}
	}

	// 스타일 ID는 파일 단위라 원본 정의를 읽어 대상 파일에 다시 등록한다
	styleCache := make(map[int]int)
	copyStyle := func(cell string) {
		srcID, err := src.GetCellStyle(sheet, cell)
		if err != nil || srcID == 0 {
			return
		}
		outID, ok := styleCache[srcID]
		if !ok {
			style, err := src.GetStyle(srcID)
			if err != nil {
				return
			}
			outID, err = out.NewStyle(style)
			if err != nil {
				return
			}
			styleCache[srcID] = outID
		}
		_ = out.SetCellStyle(sheet, cell, cell, outID)
	}

	rows, err := src.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if v != "" {
				if err := out.SetCellValue(sheet, cell, v); err != nil {
					return nil, err
				}
			}
			copyStyle(cell)
		}
		if h, err := src.GetRowHeight(sheet, r+1); err == nil && h > 0 {
			_ = out.SetRowHeight(sheet, r+1, h)
		}
	}

	merges, err := src.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	for _, m := range merges {
		if err := out.MergeCell(sheet, m.GetStartAxis(), m.GetEndAxis()); err != nil {
			return nil, err
		}
	}

	cols, err := src.GetCols(sheet)
	if err != nil {
		return nil, err
	}
	for i := range cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		if w, err := src.GetColWidth(sheet, name); err == nil && w > 0 {
			_ = out.SetColWidth(sheet, name, name, w)
		}
	}

	buf, err := out.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func bufferHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
