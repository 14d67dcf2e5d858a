// Package ledger - 매입/매출 장부 조회와 수정 API
package ledger

import (
	"errors"

	"jangbu-backend/internal/datecode"
	"jangbu-backend/internal/models"
	"jangbu-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response 타입
// -------------------------

type PurchaseResponse struct {
	ID          uint   `json:"id"`
	Date        int    `json:"date"` // YYMMDD 코드
	Supplier    string `json:"supplier"`
	SupplierBiz string `json:"supplierBiz"`
	Item        string `json:"item"`
	Spec        string `json:"spec,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	UnitPrice   string `json:"unitPrice,omitempty"`
	SupplyValue int64  `json:"supplyValue"`
	Tax         int64  `json:"tax"`
	TotalAmount int64  `json:"totalAmount"`
	FileURL     string `json:"fileUrl"`
	FilePath    string `json:"filePath"`
	CreatedAt   string `json:"createdAt"`
}

type SaleResponse struct {
	ID          uint   `json:"id"`
	Date        int    `json:"date"`
	Buyer       string `json:"buyer"`
	BuyerBiz    string `json:"buyerBiz"`
	Item        string `json:"item"`
	Spec        string `json:"spec,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	UnitPrice   string `json:"unitPrice,omitempty"`
	SupplyValue int64  `json:"supplyValue"`
	Tax         int64  `json:"tax"`
	TotalAmount int64  `json:"totalAmount"`
	FileURL     string `json:"fileUrl"`
	FilePath    string `json:"filePath"`
	CreatedAt   string `json:"createdAt"`
}

func toPurchaseResponse(m *models.PurchaseRecord) PurchaseResponse {
	return PurchaseResponse{
		ID:          m.ID,
		Date:        m.Date,
		Supplier:    m.Supplier,
		SupplierBiz: m.SupplierBiz,
		Item:        m.Item,
		Spec:        m.Spec,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		SupplyValue: m.SupplyValue,
		Tax:         m.Tax,
		TotalAmount: m.TotalAmount,
		FileURL:     m.FileURL,
		FilePath:    m.FilePath,
		CreatedAt:   m.CreatedAt.Format("2006-01-02"),
	}
}

func toSaleResponse(m *models.SaleRecord) SaleResponse {
	return SaleResponse{
		ID:          m.ID,
		Date:        m.Date,
		Buyer:       m.Buyer,
		BuyerBiz:    m.BuyerBiz,
		Item:        m.Item,
		Spec:        m.Spec,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		SupplyValue: m.SupplyValue,
		Tax:         m.Tax,
		TotalAmount: m.TotalAmount,
		FileURL:     m.FileURL,
		FilePath:    m.FilePath,
		CreatedAt:   m.CreatedAt.Format("2006-01-02"),
	}
}

// ?start=2025-10-17&end=2025-11-16 → YYMMDD 코드 범위
// start 미지정은 0 (제약 없음), end 미지정은 999999 (전체).
func dateRange(c *fiber.Ctx) (int, int, error) {
	start, end := 0, 999999
	if s := c.Query("start"); s != "" {
		start = datecode.FromString(s)
		if start == 0 {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, "start 날짜 형식이 잘못되었습니다.")
		}
	}
	if e := c.Query("end"); e != "" {
		end = datecode.FromString(e)
		if end == 0 {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, "end 날짜 형식이 잘못되었습니다.")
		}
	}
	return start, end, nil
}

func recordID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "잘못된 ID입니다.")
	}
	return uint(id), nil
}

// 요청 본문 키 → 저장소 컬럼명. 여기에 없는 키는 버린다.
var updatableColumns = map[string]string{
	"date":        "date",
	"supplier":    "supplier",
	"supplierBiz": "supplier_biz",
	"buyer":       "buyer",
	"buyerBiz":    "buyer_biz",
	"item":        "item",
	"spec":        "spec",
	"quantity":    "quantity",
	"unitPrice":   "unit_price",
	"supplyValue": "supply_value",
	"tax":         "tax",
	"totalAmount": "total_amount",
	"fileUrl":     "file_url",
	"filePath":    "file_path",
}

// 수정 요청 본문을 저장용 필드 맵으로 변환. 날짜 문자열은 코드로 바꾼다.
func updateFields(c *fiber.Ctx) (map[string]any, error) {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "잘못된 요청입니다.")
	}
	if raw, ok := body["date"].(string); ok {
		code := datecode.FromString(raw)
		if code == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "date 형식이 잘못되었습니다.")
		}
		body["date"] = code
	}

	fields := make(map[string]any, len(body))
	for key, v := range body {
		if col, ok := updatableColumns[key]; ok {
			fields[col] = v
		}
	}
	if len(fields) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "수정할 항목이 없습니다.")
	}
	return fields, nil
}

type CreatePurchaseRequest struct {
	Date        string `json:"date"` // "YY-MM-DD" 또는 "YYYY-MM-DD"
	Supplier    string `json:"supplier"`
	SupplierBiz string `json:"supplierBiz"`
	Item        string `json:"item"`
	Spec        string `json:"spec"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	SupplyValue int64  `json:"supplyValue"`
	Tax         int64  `json:"tax"`
	TotalAmount int64  `json:"totalAmount"`
	FileURL     string `json:"fileUrl"`
	FilePath    string `json:"filePath"`
}

type CreateSaleRequest struct {
	Date        string `json:"date"`
	Buyer       string `json:"buyer"`
	BuyerBiz    string `json:"buyerBiz"`
	Item        string `json:"item"`
	Spec        string `json:"spec"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	SupplyValue int64  `json:"supplyValue"`
	Tax         int64  `json:"tax"`
	TotalAmount int64  `json:"totalAmount"`
	FileURL     string `json:"fileUrl"`
	FilePath    string `json:"filePath"`
}

// -------------------------
// 매입
// -------------------------

// POST /api/purchases - 수기 입력
func CreatePurchaseHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "잘못된 요청입니다.")
		}

		code := datecode.FromString(body.Date)
		if code == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "date 형식이 잘못되었습니다.")
		}
		total := body.TotalAmount
		if total == 0 {
			total = body.SupplyValue + body.Tax
		}

		rec := models.PurchaseRecord{
			Date:        code,
			Supplier:    body.Supplier,
			SupplierBiz: body.SupplierBiz,
			Item:        body.Item,
			Spec:        body.Spec,
			Quantity:    body.Quantity,
			UnitPrice:   body.UnitPrice,
			SupplyValue: body.SupplyValue,
			Tax:         body.Tax,
			TotalAmount: total,
			FileURL:     body.FileURL,
			FilePath:    body.FilePath,
		}
		if err := st.AddPurchase(c.Context(), &rec); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "매입 저장 실패")
		}
		return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(&rec))
	}
}

// GET /api/purchases?start=...&end=...
func ListPurchasesHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := dateRange(c)
		if err != nil {
			return err
		}

		recs, err := st.ListPurchasesByDateRange(c.Context(), start, end)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "매입 데이터 조회 실패")
		}

		resp := make([]PurchaseResponse, 0, len(recs))
		for i := range recs {
			resp = append(resp, toPurchaseResponse(&recs[i]))
		}
		return c.JSON(fiber.Map{
			"purchases": resp,
			"count":     len(resp),
		})
	}
}

// GET /api/purchases/:id
func GetPurchaseHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := recordID(c)
		if err != nil {
			return err
		}

		rec, err := st.GetPurchase(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "매입 정보를 찾을 수 없습니다.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "매입 조회 실패")
		}

		resp := toPurchaseResponse(rec)
		return c.JSON(fiber.Map{
			"id":          resp.ID,
			"date":        datecode.FormatDisplay(rec.Date), // "YY-MM-DD"
			"itemName":    resp.Item,
			"qty":         resp.Quantity,
			"total":       resp.TotalAmount,
			"supplier":    resp.Supplier,
			"supplierBiz": resp.SupplierBiz,
			"spec":        resp.Spec,
			"unitPrice":   resp.UnitPrice,
			"supplyValue": resp.SupplyValue,
			"tax":         resp.Tax,
			"fileUrl":     resp.FileURL,
			"filePath":    resp.FilePath,
			"createdAt":   resp.CreatedAt,
		})
	}
}

// PUT /api/purchases/:id
func UpdatePurchaseHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := recordID(c)
		if err != nil {
			return err
		}
		fields, err := updateFields(c)
		if err != nil {
			return err
		}

		if err := st.UpdatePurchase(c.Context(), id, fields); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "매입 정보를 찾을 수 없습니다.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "매입 수정 실패")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/purchases/:id
func DeletePurchaseHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := recordID(c)
		if err != nil {
			return err
		}

		if err := st.DeletePurchase(c.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "매입 정보를 찾을 수 없습니다.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "매입 삭제 실패")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// -------------------------
// 매출
// -------------------------

// POST /api/sales - 수기 입력
func CreateSaleHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "잘못된 요청입니다.")
		}

		code := datecode.FromString(body.Date)
		if code == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "date 형식이 잘못되었습니다.")
		}
		total := body.TotalAmount
		if total == 0 {
			total = body.SupplyValue + body.Tax
		}

		rec := models.SaleRecord{
			Date:        code,
			Buyer:       body.Buyer,
			BuyerBiz:    body.BuyerBiz,
			Item:        body.Item,
			Spec:        body.Spec,
			Quantity:    body.Quantity,
			UnitPrice:   body.UnitPrice,
			SupplyValue: body.SupplyValue,
			Tax:         body.Tax,
			TotalAmount: total,
			FileURL:     body.FileURL,
			FilePath:    body.FilePath,
		}
		if err := st.AddSale(c.Context(), &rec); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "매출 저장 실패")
		}
		return c.Status(fiber.StatusCreated).JSON(toSaleResponse(&rec))
	}
}

// GET /api/sales?start=...&end=...
func ListSalesHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := dateRange(c)
		if err != nil {
			return err
		}

		recs, err := st.ListSalesByDateRange(c.Context(), start, end)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "매출 데이터 조회 실패")
		}

		resp := make([]SaleResponse, 0, len(recs))
		for i := range recs {
			resp = append(resp, toSaleResponse(&recs[i]))
		}
		return c.JSON(fiber.Map{
			"sales": resp,
			"count": len(resp),
		})
	}
}

// GET /api/sales/:id
func GetSaleHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := recordID(c)
		if err != nil {
			return err
		}

		rec, err := st.GetSale(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "매출 정보를 찾을 수 없습니다.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "매출 조회 실패")
		}

		resp := toSaleResponse(rec)
		return c.JSON(fiber.Map{
			"id":          resp.ID,
			"date":        datecode.FormatDisplay(rec.Date),
			"itemName":    resp.Item,
			"qty":         resp.Quantity,
			"total":       resp.TotalAmount,
			"buyer":       resp.Buyer,
			"buyerBiz":    resp.BuyerBiz,
			"spec":        resp.Spec,
			"unitPrice":   resp.UnitPrice,
			"supplyValue": resp.SupplyValue,
			"tax":         resp.Tax,
			"fileUrl":     resp.FileURL,
			"filePath":    resp.FilePath,
			"createdAt":   resp.CreatedAt,
		})
	}
}

// PUT /api/sales/:id
func UpdateSaleHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := recordID(c)
		if err != nil {
			return err
		}
		fields, err := updateFields(c)
		if err != nil {
			return err
		}

		if err := st.UpdateSale(c.Context(), id, fields); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "매출 정보를 찾을 수 없습니다.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "매출 수정 실패")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/sales/:id
func DeleteSaleHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := recordID(c)
		if err != nil {
			return err
		}

		if err := st.DeleteSale(c.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "매출 정보를 찾을 수 없습니다.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "매출 삭제 실패")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
