package store

import (
	"context"
	"errors"

	"jangbu-backend/internal/models"
)

// ErrNotFound - 요청한 기록이 존재하지 않음
var ErrNotFound = errors.New("기록을 찾을 수 없음")

// Store - 계산서 기록 저장소. 수집 파이프라인은 이 인터페이스에만 의존한다.
type Store interface {
	AddPurchase(ctx context.Context, rec *models.PurchaseRecord) error
	GetPurchase(ctx context.Context, id uint) (*models.PurchaseRecord, error)
	UpdatePurchase(ctx context.Context, id uint, fields map[string]any) error
	DeletePurchase(ctx context.Context, id uint) error
	// ListPurchasesByDateRange - start, end는 YYMMDD 코드 (양끝 포함). 0이면 제약 없음.
	ListPurchasesByDateRange(ctx context.Context, start, end int) ([]models.PurchaseRecord, error)

	AddSale(ctx context.Context, rec *models.SaleRecord) error
	GetSale(ctx context.Context, id uint) (*models.SaleRecord, error)
	UpdateSale(ctx context.Context, id uint, fields map[string]any) error
	DeleteSale(ctx context.Context, id uint) error
	ListSalesByDateRange(ctx context.Context, start, end int) ([]models.SaleRecord, error)

	// HasUpload - 같은 해시의 파일이 이미 처리되었는지 확인
	HasUpload(ctx context.Context, hash string) (bool, error)
	AddUpload(ctx context.Context, log *models.UploadLog) error
}
