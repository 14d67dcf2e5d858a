package database

import (
	"fmt"

	"jangbu-backend/internal/config"
	"jangbu-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Init(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Client{},
		&models.Contact{},
		&models.PurchaseRecord{},
		&models.SaleRecord{},
		&models.UploadLog{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate 실패: %w", err)
	}

	return db, nil
}
