package ingest

import (
	"context"
	"fmt"

	"jangbu-backend/internal/classify"
	"jangbu-backend/internal/datecode"
	"jangbu-backend/internal/extract"
	"jangbu-backend/internal/models"
)

// PDFResult - PDF 계산서 한 건의 처리 결과
type PDFResult struct {
	OK      bool           `json:"ok"`
	Type    string         `json:"type"` // 매입 / 매출 / 기타
	Partner string         `json:"partner"`
	Fields  extract.Fields `json:"fields"`
	FileURL string         `json:"fileUrl,omitempty"`
	Message string         `json:"message,omitempty"`
}

// IngestPDF - PDF 계산서의 텍스트를 추출하고 항목을 뽑아 분류/저장한다.
// LLM 추출기가 있으면 우선 쓰고, 없거나 실패하면 정규식 추출로 내려간다.
func (g *Ingestor) IngestPDF(ctx context.Context, data []byte, filename string) (*PDFResult, error) {
	text, fields, err := g.extractFields(ctx, data)
	if err != nil {
		return nil, err
	}

	// 서식상 공급자 등록번호가 먼저, 공급받는자 등록번호가 나중에 나온다
	supplierBiz, buyerBiz := "", ""
	if nums := extract.AllBusinessNumbers(text); len(nums) >= 2 {
		supplierBiz, buyerBiz = nums[0], nums[1]
	} else if len(nums) == 1 {
		supplierBiz = nums[0]
	}

	docType := classify.Classify(g.ownerBiz, supplierBiz, buyerBiz)
	if docType == classify.Unknown {
		g.log.Warn().Str("filename", filename).Msg("매입/매출 판별 불가")
		return &PDFResult{
			OK:      false,
			Type:    docType.Label(),
			Fields:  fields,
			Message: "매입/매출 판별 불가",
		}, nil
	}

	partner := fields.Supplier
	if docType == classify.Sale {
		partner = fields.Receiver
	}

	dateCode := datecode.FromString(fields.Date)
	if dateCode == 0 {
		dateCode = datecode.Today()
	}
	date, _ := datecode.Decode(dateCode)

	totalAmount, ok := extract.ParseAmount(fields.Total)
	if !ok {
		supply, _ := extract.ParseAmount(fields.SupplyValue)
		tax, _ := extract.ParseAmount(fields.Tax)
		totalAmount = supply + tax
	}
	supplyValue, _ := extract.ParseAmount(fields.SupplyValue)
	tax, _ := extract.ParseAmount(fields.Tax)

	fileName := classify.FileName(docType, date, partner, totalAmount, ".pdf")
	storePath := classify.StoragePath(docType, date, fileName)

	fileURL := ""
	if g.storage != nil {
		fileURL, err = g.storage.Upload(ctx, storePath, data)
		if err != nil {
			return nil, fmt.Errorf("파일 업로드 실패: %w", err)
		}
	}

	if docType == classify.Purchase {
		err = g.store.AddPurchase(ctx, &models.PurchaseRecord{
			Date:        dateCode,
			Supplier:    fields.Supplier,
			SupplierBiz: extract.NormalizeBizNo(supplierBiz),
			Item:        fields.ItemName,
			Spec:        fields.Specification,
			Quantity:    fields.Quantity,
			UnitPrice:   fields.UnitPrice,
			SupplyValue: supplyValue,
			Tax:         tax,
			TotalAmount: totalAmount,
			FileURL:     fileURL,
			FilePath:    storePath,
		})
	} else {
		err = g.store.AddSale(ctx, &models.SaleRecord{
			Date:        dateCode,
			Buyer:       fields.Receiver,
			BuyerBiz:    extract.NormalizeBizNo(buyerBiz),
			Item:        fields.ItemName,
			Spec:        fields.Specification,
			Quantity:    fields.Quantity,
			UnitPrice:   fields.UnitPrice,
			SupplyValue: supplyValue,
			Tax:         tax,
			TotalAmount: totalAmount,
			FileURL:     fileURL,
			FilePath:    storePath,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("장부 저장 실패: %w", err)
	}

	g.log.Info().
		Str("type", docType.Label()).
		Str("partner", partner).
		Int64("total", totalAmount).
		Msg("PDF 수집 완료")

	return &PDFResult{
		OK:      true,
		Type:    docType.Label(),
		Partner: partner,
		Fields:  fields,
		FileURL: fileURL,
	}, nil
}

// ExtractOnly - 저장 없이 항목 추출 결과만 돌려준다 (미리보기용).
func (g *Ingestor) ExtractOnly(ctx context.Context, data []byte) (extract.Fields, error) {
	_, fields, err := g.extractFields(ctx, data)
	return fields, err
}

func (g *Ingestor) extractFields(ctx context.Context, data []byte) (string, extract.Fields, error) {
	if g.extract == nil {
		return "", extract.Fields{}, fmt.Errorf("텍스트 추출기가 설정되지 않음")
	}
	text, err := g.extract.Text(ctx, data)
	if err != nil {
		return "", extract.Fields{}, fmt.Errorf("텍스트 추출 실패: %w", err)
	}
	text = extract.Normalize(text)

	if g.llm != nil {
		fields, err := g.llm.ExtractFields(ctx, text)
		if err == nil {
			return text, fields, nil
		}
		g.log.Warn().Err(err).Msg("LLM 추출 실패, 정규식 추출로 대체")
	}
	return text, extract.Extract(text), nil
}
