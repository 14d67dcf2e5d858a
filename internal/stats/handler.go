// Package stats - 월별 집계 화면에 쓰는 매입/매출 요약 API
package stats

import (
	"fmt"

	"jangbu-backend/internal/datecode"
	"jangbu-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// Entry - 집계용 항목. 음수 금액(수정 세금계산서)도 그대로 반영한다.
type Entry struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Item    string `json:"item"`
	Partner string `json:"partner"` // 공급자 또는 수요자
	Amount  int64  `json:"amount"`
}

// GET /api/stats
func StatsHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		purchases, err := st.ListPurchasesByDateRange(c.Context(), 0, 0)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "매입 데이터 조회 실패")
		}
		sales, err := st.ListSalesByDateRange(c.Context(), 0, 0)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "매출 데이터 조회 실패")
		}

		purchaseEntries := make([]Entry, 0, len(purchases))
		for _, p := range purchases {
			d, ok := datecode.Decode(p.Date)
			if !ok {
				continue
			}
			purchaseEntries = append(purchaseEntries, Entry{
				Date:    fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day),
				Year:    d.Year,
				Month:   d.Month,
				Item:    p.Item,
				Partner: p.Supplier,
				Amount:  p.TotalAmount,
			})
		}

		saleEntries := make([]Entry, 0, len(sales))
		for _, s := range sales {
			d, ok := datecode.Decode(s.Date)
			if !ok {
				continue
			}
			saleEntries = append(saleEntries, Entry{
				Date:    fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day),
				Year:    d.Year,
				Month:   d.Month,
				Item:    s.Item,
				Partner: s.Buyer,
				Amount:  s.TotalAmount,
			})
		}

		return c.JSON(fiber.Map{
			"purchases": purchaseEntries,
			"sales":     saleEntries,
		})
	}
}
