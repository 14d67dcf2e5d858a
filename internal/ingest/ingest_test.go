package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"jangbu-backend/internal/store"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const ownerBiz = "506-81-12345"

type fakeUploader struct {
	paths []string
}

func (f *fakeUploader) Upload(_ context.Context, path string, _ []byte) (string, error) {
	f.paths = append(f.paths, path)
	return "https://drive.example/" + path, nil
}

type fakeTextExtractor struct {
	text string
}

func (f *fakeTextExtractor) Text(_ context.Context, _ []byte) (string, error) {
	return f.text, nil
}

// 세금계산서 서식 셀에 값을 채운 시트를 만든다
func writeInvoiceSheet(t *testing.T, wb *excelize.File, sheet, supplierBiz, supplierName, buyerBiz, buyerName, approval, supply, tax, item string) {
	t.Helper()
	if _, err := wb.NewSheet(sheet); err != nil {
		t.Fatalf("시트 생성 실패: %v", err)
	}
	cells := map[string]string{
		cellSupplierBiz:  supplierBiz,
		cellSupplierName: supplierName,
		cellBuyerBiz:     buyerBiz,
		cellBuyerName:    buyerName,
		cellApprovalNo:   approval,
		cellSupplyValue:  supply,
		cellTax:          tax,
		cellFirstItem:    item,
	}
	for addr, v := range cells {
		if err := wb.SetCellValue(sheet, addr, v); err != nil {
			t.Fatalf("셀 쓰기 실패 (%s): %v", addr, err)
		}
	}
}

func workbookBytes(t *testing.T, wb *excelize.File) []byte {
	t.Helper()
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("엑셀 버퍼 생성 실패: %v", err)
	}
	return buf.Bytes()
}

func TestIngestWorkbook(t *testing.T) {
	wb := excelize.NewFile()
	// Sheet1: 매입 (수요자가 본인)
	writeInvoiceSheet(t, wb, "Sheet1",
		"123-45-67890", "포항 케이이씨", ownerBiz, "케이이씨",
		"20251104-41000000-12345678", "1,000,000", "100,000", "전자부품")
	// Sheet2: 매출 (공급자가 본인)
	writeInvoiceSheet(t, wb, "Sheet2",
		ownerBiz, "케이이씨", "777-88-99999", "미래상사",
		"20251201-41000000-87654321", "500,000", "50,000", "강판")
	// Sheet3: 판별 불가 (본인 번호가 없음)
	writeInvoiceSheet(t, wb, "Sheet3",
		"111-11-11111", "갑", "222-22-22222", "을",
		"20251215-41000000-11112222", "10,000", "1,000", "기타")
	data := workbookBytes(t, wb)

	st := store.NewMemoryStore()
	up := &fakeUploader{}
	ing := New(st, up, nil, nil, ownerBiz, zerolog.Nop())

	result, err := ing.IngestWorkbook(context.Background(), data, "통합.xlsx")
	if err != nil {
		t.Fatalf("IngestWorkbook() error = %v", err)
	}

	if result.Summary.Total != 3 || result.Summary.Success != 2 || result.Summary.Failed != 1 {
		t.Fatalf("summary = %+v, 원함 total=3 success=2 failed=1", result.Summary)
	}
	if result.BatchID == "" {
		t.Error("BatchID가 비어 있음")
	}

	// 판별 불가 시트의 오류에는 양쪽 사업자번호가 담겨야 한다
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %d, 원함 1", len(result.Errors))
	}
	if result.Errors[0].Index != 2 {
		t.Errorf("오류 시트 인덱스 = %d, 원함 2", result.Errors[0].Index)
	}
	if result.Errors[0].SupplierBiz != "1111111111" || result.Errors[0].BuyerBiz != "2222222222" {
		t.Errorf("오류 상세 = %+v", result.Errors[0])
	}

	// 매입 1건, 매출 1건 저장 확인
	purchases, err := st.ListPurchasesByDateRange(context.Background(), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(purchases) != 1 {
		t.Fatalf("매입 기록 = %d건, 원함 1건", len(purchases))
	}
	p := purchases[0]
	if p.Date != 251104 {
		t.Errorf("매입 date = %d, 원함 251104", p.Date)
	}
	if p.Supplier != "포항 케이이씨" || p.SupplierBiz != "1234567890" {
		t.Errorf("매입 공급자 = %q (%q)", p.Supplier, p.SupplierBiz)
	}
	if p.SupplyValue != 1000000 || p.Tax != 100000 || p.TotalAmount != 1100000 {
		t.Errorf("매입 금액 = %d/%d/%d", p.SupplyValue, p.Tax, p.TotalAmount)
	}
	if p.Item != "전자부품" {
		t.Errorf("매입 품목 = %q", p.Item)
	}

	sales, err := st.ListSalesByDateRange(context.Background(), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != 1 {
		t.Fatalf("매출 기록 = %d건, 원함 1건", len(sales))
	}
	s := sales[0]
	if s.Date != 251201 || s.Buyer != "미래상사" || s.TotalAmount != 550000 {
		t.Errorf("매출 기록 = %+v", s)
	}

	// 업로드 경로: 연도 폴더와 매입/매출 폴더, 파일명 규칙 확인
	if len(up.paths) != 2 {
		t.Fatalf("업로드 = %d건, 원함 2건", len(up.paths))
	}
	wantPurchasePath := "/BUSINESS/2025년 세금계산서/매입/25-11-04_포항_케이이씨_1,100,000_01.xlsx"
	if up.paths[0] != wantPurchasePath {
		t.Errorf("매입 업로드 경로 = %q, 원함 %q", up.paths[0], wantPurchasePath)
	}
	if !strings.Contains(up.paths[1], "/매출/") || !strings.HasSuffix(up.paths[1], "_02.xlsx") {
		t.Errorf("매출 업로드 경로 = %q", up.paths[1])
	}
}

func TestIngestWorkbookDuplicate(t *testing.T) {
	wb := excelize.NewFile()
	writeInvoiceSheet(t, wb, "Sheet1",
		"123-45-67890", "포항 케이이씨", ownerBiz, "케이이씨",
		"20251104-41000000-12345678", "1,000,000", "100,000", "전자부품")
	data := workbookBytes(t, wb)

	st := store.NewMemoryStore()
	ing := New(st, nil, nil, nil, ownerBiz, zerolog.Nop())

	first, err := ing.IngestWorkbook(context.Background(), data, "a.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if first.Duplicate {
		t.Fatal("첫 업로드가 중복으로 처리됨")
	}

	second, err := ing.IngestWorkbook(context.Background(), data, "a.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if !second.Duplicate {
		t.Fatal("같은 파일의 재업로드가 중복으로 감지되지 않음")
	}

	purchases, _ := st.ListPurchasesByDateRange(context.Background(), 0, 0)
	if len(purchases) != 1 {
		t.Errorf("중복 업로드 후 매입 기록 = %d건, 원함 1건", len(purchases))
	}
}

// 시트가 하나도 없는 xlsx. excelize로는 만들 수 없어 직접 zip을 구성한다.
func emptyWorkbookBytes(t *testing.T) []byte {
	t.Helper()
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>` +
			`</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>` +
			`</Relationships>`,
		"xl/workbook.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheets/></workbook>`,
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestIngestWorkbookNoSheets(t *testing.T) {
	data := emptyWorkbookBytes(t)

	st := store.NewMemoryStore()
	ing := New(st, nil, nil, nil, ownerBiz, zerolog.Nop())

	result, err := ing.IngestWorkbook(context.Background(), data, "빈파일.xlsx")
	if err == nil {
		t.Fatalf("시트 없는 엑셀이 오류 없이 처리됨: %+v", result)
	}

	// 실패한 파일은 이력에 남지 않으므로 재업로드도 중복이 아니라 같은 오류여야 한다
	second, err := ing.IngestWorkbook(context.Background(), data, "빈파일.xlsx")
	if err == nil {
		t.Fatalf("재업로드가 오류 없이 처리됨: %+v", second)
	}
}

func TestIngestWorkbookAllFailedNotLogged(t *testing.T) {
	// 모든 시트가 판별 불가인 파일은 이력에 남기지 않는다.
	// 설정(본인 사업자번호)을 고친 뒤 같은 파일을 다시 올릴 수 있어야 한다.
	wb := excelize.NewFile()
	writeInvoiceSheet(t, wb, "Sheet1",
		"123-45-67890", "포항 케이이씨", ownerBiz, "케이이씨",
		"20251104-41000000-12345678", "1,000,000", "100,000", "전자부품")
	data := workbookBytes(t, wb)

	st := store.NewMemoryStore()
	broken := New(st, nil, nil, nil, "", zerolog.Nop())

	first, err := broken.IngestWorkbook(context.Background(), data, "a.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if first.Summary.Success != 0 || first.Summary.Failed != 1 {
		t.Fatalf("summary = %+v, 원함 success=0 failed=1", first.Summary)
	}

	fixed := New(st, nil, nil, nil, ownerBiz, zerolog.Nop())
	second, err := fixed.IngestWorkbook(context.Background(), data, "a.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if second.Duplicate {
		t.Fatal("전부 실패한 업로드가 중복으로 기록됨")
	}
	if second.Summary.Success != 1 {
		t.Fatalf("재업로드 summary = %+v, 원함 success=1", second.Summary)
	}

	purchases, _ := st.ListPurchasesByDateRange(context.Background(), 0, 0)
	if len(purchases) != 1 {
		t.Errorf("매입 기록 = %d건, 원함 1건", len(purchases))
	}
}

func TestIngestWorkbookNegativeAmounts(t *testing.T) {
	// 수정 세금계산서: ▲와 괄호 표기 음수
	wb := excelize.NewFile()
	writeInvoiceSheet(t, wb, "Sheet1",
		"123-45-67890", "포항 케이이씨", ownerBiz, "케이이씨",
		"20251104-41000000-12345678", "▲1,000,000", "(100,000)", "반품")
	data := workbookBytes(t, wb)

	st := store.NewMemoryStore()
	ing := New(st, nil, nil, nil, ownerBiz, zerolog.Nop())

	result, err := ing.IngestWorkbook(context.Background(), data, "수정.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if result.Summary.Success != 1 {
		t.Fatalf("summary = %+v", result.Summary)
	}

	purchases, _ := st.ListPurchasesByDateRange(context.Background(), 0, 0)
	p := purchases[0]
	if p.SupplyValue != -1000000 || p.Tax != -100000 || p.TotalAmount != -1100000 {
		t.Errorf("음수 금액 = %d/%d/%d, 원함 -1000000/-100000/-1100000", p.SupplyValue, p.Tax, p.TotalAmount)
	}
}

func TestIngestWorkbookNoOwner(t *testing.T) {
	wb := excelize.NewFile()
	writeInvoiceSheet(t, wb, "Sheet1",
		"123-45-67890", "포항 케이이씨", ownerBiz, "케이이씨",
		"20251104-41000000-12345678", "1,000,000", "100,000", "전자부품")
	data := workbookBytes(t, wb)

	st := store.NewMemoryStore()
	ing := New(st, nil, nil, nil, "", zerolog.Nop())

	result, err := ing.IngestWorkbook(context.Background(), data, "a.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	// 본인 번호가 없으면 모든 시트가 판별 불가
	if result.Summary.Success != 0 || result.Summary.Failed != 1 {
		t.Errorf("summary = %+v, 원함 success=0 failed=1", result.Summary)
	}
}

func TestIngestWorkbookWrittenDateFallback(t *testing.T) {
	// 승인번호가 없으면 작성일자 셀을 쓴다
	wb := excelize.NewFile()
	writeInvoiceSheet(t, wb, "Sheet1",
		"123-45-67890", "포항 케이이씨", ownerBiz, "케이이씨",
		"", "1,000,000", "100,000", "전자부품")
	if err := wb.SetCellValue("Sheet1", cellWrittenDate, "2025.07.09"); err != nil {
		t.Fatal(err)
	}
	data := workbookBytes(t, wb)

	st := store.NewMemoryStore()
	ing := New(st, nil, nil, nil, ownerBiz, zerolog.Nop())

	if _, err := ing.IngestWorkbook(context.Background(), data, "a.xlsx"); err != nil {
		t.Fatal(err)
	}
	purchases, _ := st.ListPurchasesByDateRange(context.Background(), 0, 0)
	if len(purchases) != 1 || purchases[0].Date != 250709 {
		t.Errorf("작성일자 폴백 date = %+v, 원함 250709", purchases)
	}
}

const invoiceText = "작성일자: 2025-11-04 공급자 상호: 포항케이이씨, 등록번호: 123-45-67890 " +
	"공급받는자 상호: 케이이씨, 등록번호: 506-81-12345 품목명: 전자부품, 규격: 10x20 " +
	"수량: 188 단가: 5,000 공급가액: 1,000,000 세액: 100,000 합계금액: 1,100,000"

func TestIngestPDF(t *testing.T) {
	st := store.NewMemoryStore()
	up := &fakeUploader{}
	ing := New(st, up, &fakeTextExtractor{text: invoiceText}, nil, ownerBiz, zerolog.Nop())

	pdf := []byte("%PDF-1.7 dummy")
	result, err := ing.IngestPDF(context.Background(), pdf, "계산서.pdf")
	if err != nil {
		t.Fatalf("IngestPDF() error = %v", err)
	}
	if !result.OK {
		t.Fatalf("result = %+v", result)
	}
	// 공급받는자가 본인이므로 매입
	if result.Type != "매입" {
		t.Errorf("type = %q, 원함 매입", result.Type)
	}

	purchases, _ := st.ListPurchasesByDateRange(context.Background(), 0, 0)
	if len(purchases) != 1 {
		t.Fatalf("매입 기록 = %d건", len(purchases))
	}
	p := purchases[0]
	if p.Date != 251104 {
		t.Errorf("date = %d, 원함 251104", p.Date)
	}
	if p.SupplierBiz != "1234567890" {
		t.Errorf("supplierBiz = %q", p.SupplierBiz)
	}
	if p.SupplyValue != 1000000 || p.Tax != 100000 || p.TotalAmount != 1100000 {
		t.Errorf("금액 = %d/%d/%d", p.SupplyValue, p.Tax, p.TotalAmount)
	}
	if p.Quantity != "188" {
		t.Errorf("quantity = %q, 원함 188", p.Quantity)
	}

	if len(up.paths) != 1 || !strings.Contains(up.paths[0], "/매입/") || !strings.HasSuffix(up.paths[0], "_01.pdf") {
		t.Errorf("업로드 경로 = %v", up.paths)
	}
}

func TestIngestPDFUnknown(t *testing.T) {
	// 본인 사업자번호가 등장하지 않는 문서
	text := "등록번호: 111-11-11111 등록번호: 222-22-22222 공급가액: 10,000 세액: 1,000"
	st := store.NewMemoryStore()
	ing := New(st, nil, &fakeTextExtractor{text: text}, nil, ownerBiz, zerolog.Nop())

	result, err := ing.IngestPDF(context.Background(), []byte("%PDF-1.7"), "기타.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if result.OK || result.Type != "기타" {
		t.Errorf("result = %+v, 원함 OK=false type=기타", result)
	}

	purchases, _ := st.ListPurchasesByDateRange(context.Background(), 0, 0)
	sales, _ := st.ListSalesByDateRange(context.Background(), 0, 0)
	if len(purchases) != 0 || len(sales) != 0 {
		t.Error("판별 불가 문서가 장부에 저장됨")
	}
}

func TestExtractOnly(t *testing.T) {
	ing := New(store.NewMemoryStore(), nil, &fakeTextExtractor{text: invoiceText}, nil, ownerBiz, zerolog.Nop())

	fields, err := ing.ExtractOnly(context.Background(), []byte("%PDF-1.7"))
	if err != nil {
		t.Fatal(err)
	}
	if fields.Date != "2025-11-04" {
		t.Errorf("date = %q", fields.Date)
	}
	if fields.BusinessNumber != "123-45-67890" {
		t.Errorf("businessNumber = %q", fields.BusinessNumber)
	}
	if fields.Total != "1,100,000" {
		t.Errorf("total = %q", fields.Total)
	}
}

func TestCloneSheetPreservesLayout(t *testing.T) {
	src := excelize.NewFile()
	writeInvoiceSheet(t, src, "Sheet1",
		"123-45-67890", "포항 케이이씨", ownerBiz, "케이이씨",
		"20251104-41000000-12345678", "1,000,000", "100,000", "전자부품")
	if err := src.MergeCell("Sheet1", "A1", "D1"); err != nil {
		t.Fatal(err)
	}
	if err := src.SetCellValue("Sheet1", "A1", "세금계산서"); err != nil {
		t.Fatal(err)
	}
	if err := src.SetColWidth("Sheet1", "A", "A", 25); err != nil {
		t.Fatal(err)
	}

	out, err := cloneSheet(src, "Sheet1")
	if err != nil {
		t.Fatalf("cloneSheet() error = %v", err)
	}

	copied, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	defer copied.Close()

	if got, _ := copied.GetCellValue("Sheet1", "A1"); got != "세금계산서" {
		t.Errorf("A1 = %q", got)
	}
	if got, _ := copied.GetCellValue("Sheet1", cellSupplierName); got != "포항 케이이씨" {
		t.Errorf("공급자 상호 = %q", got)
	}
	merges, _ := copied.GetMergeCells("Sheet1")
	if len(merges) != 1 {
		t.Errorf("병합 셀 = %d개, 원함 1개", len(merges))
	}
	if w, _ := copied.GetColWidth("Sheet1", "A"); w != 25 {
		t.Errorf("A열 너비 = %v, 원함 25", w)
	}
}
