package store

import (
	"context"
	"sort"
	"sync"

	"jangbu-backend/internal/models"
)

// MemoryStore - 테스트용 인메모리 Store 구현
type MemoryStore struct {
	mu        sync.Mutex
	purchases map[uint]models.PurchaseRecord
	sales     map[uint]models.SaleRecord
	uploads   map[string]models.UploadLog
	nextID    uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		purchases: make(map[uint]models.PurchaseRecord),
		sales:     make(map[uint]models.SaleRecord),
		uploads:   make(map[string]models.UploadLog),
		nextID:    1,
	}
}

func (s *MemoryStore) AddPurchase(_ context.Context, rec *models.PurchaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextID
	s.nextID++
	s.purchases[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) GetPurchase(_ context.Context, id uint) (*models.PurchaseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.purchases[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) UpdatePurchase(_ context.Context, id uint, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.purchases[id]
	if !ok {
		return ErrNotFound
	}
	applyPurchaseFields(&rec, fields)
	s.purchases[id] = rec
	return nil
}

func (s *MemoryStore) DeletePurchase(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.purchases[id]; !ok {
		return ErrNotFound
	}
	delete(s.purchases, id)
	return nil
}

func (s *MemoryStore) ListPurchasesByDateRange(_ context.Context, start, end int) ([]models.PurchaseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var recs []models.PurchaseRecord
	for _, rec := range s.purchases {
		if (start > 0 && rec.Date < start) || (end > 0 && rec.Date > end) {
			continue
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Date != recs[j].Date {
			return recs[i].Date > recs[j].Date
		}
		return recs[i].ID > recs[j].ID
	})
	return recs, nil
}

func (s *MemoryStore) AddSale(_ context.Context, rec *models.SaleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextID
	s.nextID++
	s.sales[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) GetSale(_ context.Context, id uint) (*models.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sales[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) UpdateSale(_ context.Context, id uint, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sales[id]
	if !ok {
		return ErrNotFound
	}
	applySaleFields(&rec, fields)
	s.sales[id] = rec
	return nil
}

func (s *MemoryStore) DeleteSale(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sales[id]; !ok {
		return ErrNotFound
	}
	delete(s.sales, id)
	return nil
}

func (s *MemoryStore) ListSalesByDateRange(_ context.Context, start, end int) ([]models.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var recs []models.SaleRecord
	for _, rec := range s.sales {
		if (start > 0 && rec.Date < start) || (end > 0 && rec.Date > end) {
			continue
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Date != recs[j].Date {
			return recs[i].Date > recs[j].Date
		}
		return recs[i].ID > recs[j].ID
	})
	return recs, nil
}

func (s *MemoryStore) HasUpload(_ context.Context, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.uploads[hash]
	return ok, nil
}

func (s *MemoryStore) AddUpload(_ context.Context, log *models.UploadLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[log.Hash] = *log
	return nil
}

func applyPurchaseFields(rec *models.PurchaseRecord, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "date":
			rec.Date = toInt(v)
		case "supplier":
			rec.Supplier, _ = v.(string)
		case "supplier_biz":
			rec.SupplierBiz, _ = v.(string)
		case "item":
			rec.Item, _ = v.(string)
		case "spec":
			rec.Spec, _ = v.(string)
		case "quantity":
			rec.Quantity, _ = v.(string)
		case "unit_price":
			rec.UnitPrice, _ = v.(string)
		case "supply_value":
			rec.SupplyValue = toInt64(v)
		case "tax":
			rec.Tax = toInt64(v)
		case "total_amount":
			rec.TotalAmount = toInt64(v)
		case "file_url":
			rec.FileURL, _ = v.(string)
		case "file_path":
			rec.FilePath, _ = v.(string)
		}
	}
}

func applySaleFields(rec *models.SaleRecord, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "date":
			rec.Date = toInt(v)
		case "buyer":
			rec.Buyer, _ = v.(string)
		case "buyer_biz":
			rec.BuyerBiz, _ = v.(string)
		case "item":
			rec.Item, _ = v.(string)
		case "spec":
			rec.Spec, _ = v.(string)
		case "quantity":
			rec.Quantity, _ = v.(string)
		case "unit_price":
			rec.UnitPrice, _ = v.(string)
		case "supply_value":
			rec.SupplyValue = toInt64(v)
		case "tax":
			rec.Tax = toInt64(v)
		case "total_amount":
			rec.TotalAmount = toInt64(v)
		case "file_url":
			rec.FileURL, _ = v.(string)
		case "file_path":
			rec.FilePath, _ = v.(string)
		}
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}
