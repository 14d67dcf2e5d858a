package ledger

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"jangbu-backend/internal/models"
	"jangbu-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(st store.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	api := app.Group("/api")
	api.Post("/purchases", CreatePurchaseHandler(st))
	api.Get("/purchases", ListPurchasesHandler(st))
	api.Get("/purchases/:id", GetPurchaseHandler(st))
	api.Put("/purchases/:id", UpdatePurchaseHandler(st))
	api.Delete("/purchases/:id", DeletePurchaseHandler(st))
	api.Get("/sales", ListSalesHandler(st))
	return app
}

func seedPurchases(t *testing.T, st store.Store) {
	t.Helper()
	recs := []models.PurchaseRecord{
		{Date: 251017, Supplier: "포항 케이이씨", SupplierBiz: "1234567890", Item: "전자부품", SupplyValue: 1000000, Tax: 100000, TotalAmount: 1100000, FileURL: "https://drive.example/a"},
		{Date: 251103, Supplier: "미래상사", SupplierBiz: "7778899999", Item: "강판", SupplyValue: 500000, Tax: 50000, TotalAmount: 550000, FileURL: "https://drive.example/b"},
		{Date: 260105, Supplier: "한빛물산", SupplierBiz: "1112233333", Item: "포장재", SupplyValue: -200000, Tax: -20000, TotalAmount: -220000, FileURL: "https://drive.example/c"},
	}
	for i := range recs {
		if err := st.AddPurchase(context.Background(), &recs[i]); err != nil {
			t.Fatal(err)
		}
	}
}

func decodeBody(t *testing.T, resp io.Reader) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp).Decode(&body); err != nil {
		t.Fatalf("응답 JSON 파싱 실패: %v", err)
	}
	return body
}

func TestListPurchasesDateRange(t *testing.T) {
	st := store.NewMemoryStore()
	seedPurchases(t, st)
	app := newTestApp(st)

	tests := []struct {
		name  string
		url   string
		count int
	}{
		{"전체", "/api/purchases", 3},
		{"2025년 10월", "/api/purchases?start=2025-10-01&end=2025-10-31", 1},
		{"범위 시작만", "/api/purchases?start=2025-11-01", 2},
		{"두 자리 연도", "/api/purchases?start=25-10-01&end=25-12-31", 2},
		{"해당 없음", "/api/purchases?start=2024-01-01&end=2024-12-31", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			body := decodeBody(t, resp.Body)
			if got := int(body["count"].(float64)); got != tt.count {
				t.Errorf("count = %d, 원함 %d", got, tt.count)
			}
		})
	}
}

func TestListPurchasesBadDate(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	req := httptest.NewRequest("GET", "/api/purchases?start=2025.10.01", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, 원함 400", resp.StatusCode)
	}
}

func TestGetPurchaseDetail(t *testing.T) {
	st := store.NewMemoryStore()
	seedPurchases(t, st)
	app := newTestApp(st)

	req := httptest.NewRequest("GET", "/api/purchases/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp.Body)
	// 상세 조회는 표시용 "YY-MM-DD"로 돌려준다
	if body["date"] != "25-10-17" {
		t.Errorf("date = %v, 원함 25-10-17", body["date"])
	}
	if body["supplier"] != "포항 케이이씨" {
		t.Errorf("supplier = %v", body["supplier"])
	}
}

func TestGetPurchaseNotFound(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	req := httptest.NewRequest("GET", "/api/purchases/99", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, 원함 404", resp.StatusCode)
	}
}

func TestUpdatePurchaseDateString(t *testing.T) {
	st := store.NewMemoryStore()
	seedPurchases(t, st)
	app := newTestApp(st)

	// 날짜를 문자열로 보내면 YYMMDD 코드로 저장되어야 한다
	body := strings.NewReader(`{"date":"2025-12-25","item":"수정품목"}`)
	req := httptest.NewRequest("PUT", "/api/purchases/1", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	rec, err := st.GetPurchase(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Date != 251225 {
		t.Errorf("date = %d, 원함 251225", rec.Date)
	}
	if rec.Item != "수정품목" {
		t.Errorf("item = %q", rec.Item)
	}
}

func TestUpdatePurchaseUnknownKeysIgnored(t *testing.T) {
	st := store.NewMemoryStore()
	seedPurchases(t, st)
	app := newTestApp(st)

	body := strings.NewReader(`{"id":99,"createdAt":"2020-01-01","item":"안전한수정"}`)
	req := httptest.NewRequest("PUT", "/api/purchases/1", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	rec, _ := st.GetPurchase(context.Background(), 1)
	if rec.ID != 1 || rec.Item != "안전한수정" {
		t.Errorf("rec = %+v", rec)
	}
}

func TestCreatePurchase(t *testing.T) {
	st := store.NewMemoryStore()
	app := newTestApp(st)

	// 합계 미지정이면 공급가액 + 세액으로 채운다
	body := strings.NewReader(`{"date":"2025-11-04","supplier":"포항 케이이씨","supplierBiz":"1234567890","item":"전자부품","supplyValue":1000000,"tax":100000}`)
	req := httptest.NewRequest("POST", "/api/purchases", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, 원함 201", resp.StatusCode)
	}

	rec, err := st.GetPurchase(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Date != 251104 {
		t.Errorf("date = %d, 원함 251104", rec.Date)
	}
	if rec.TotalAmount != 1100000 {
		t.Errorf("totalAmount = %d, 원함 1100000", rec.TotalAmount)
	}
}

func TestCreatePurchaseBadDate(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	body := strings.NewReader(`{"date":"11/04/2025","supplier":"포항 케이이씨"}`)
	req := httptest.NewRequest("POST", "/api/purchases", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, 원함 400", resp.StatusCode)
	}
}

func TestDeletePurchase(t *testing.T) {
	st := store.NewMemoryStore()
	seedPurchases(t, st)
	app := newTestApp(st)

	req := httptest.NewRequest("DELETE", "/api/purchases/2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	if _, err := st.GetPurchase(context.Background(), 2); err != store.ErrNotFound {
		t.Errorf("삭제 후 조회 = %v, 원함 ErrNotFound", err)
	}
}
