package store

import (
	"context"
	"errors"

	"jangbu-backend/internal/models"

	"gorm.io/gorm"
)

// GormStore - Postgres 기반 Store 구현
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) AddPurchase(ctx context.Context, rec *models.PurchaseRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *GormStore) GetPurchase(ctx context.Context, id uint) (*models.PurchaseRecord, error) {
	var rec models.PurchaseRecord
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) UpdatePurchase(ctx context.Context, id uint, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&models.PurchaseRecord{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeletePurchase(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.PurchaseRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListPurchasesByDateRange(ctx context.Context, start, end int) ([]models.PurchaseRecord, error) {
	var recs []models.PurchaseRecord
	q := s.db.WithContext(ctx).Model(&models.PurchaseRecord{})
	if start > 0 {
		q = q.Where("date >= ?", start)
	}
	if end > 0 {
		q = q.Where("date <= ?", end)
	}
	if err := q.Order("date DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *GormStore) AddSale(ctx context.Context, rec *models.SaleRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *GormStore) GetSale(ctx context.Context, id uint) (*models.SaleRecord, error) {
	var rec models.SaleRecord
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) UpdateSale(ctx context.Context, id uint, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&models.SaleRecord{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteSale(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.SaleRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListSalesByDateRange(ctx context.Context, start, end int) ([]models.SaleRecord, error) {
	var recs []models.SaleRecord
	q := s.db.WithContext(ctx).Model(&models.SaleRecord{})
	if start > 0 {
		q = q.Where("date >= ?", start)
	}
	if end > 0 {
		q = q.Where("date <= ?", end)
	}
	if err := q.Order("date DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *GormStore) HasUpload(ctx context.Context, hash string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UploadLog{}).Where("hash = ?", hash).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) AddUpload(ctx context.Context, log *models.UploadLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}
