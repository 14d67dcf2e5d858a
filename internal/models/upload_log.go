package models

import "time"

// UploadLog - 업로드된 파일의 해시 기록. 같은 파일의 중복 처리를 막는다.
type UploadLog struct {
	ID           uint   `gorm:"primaryKey"`
	Hash         string `gorm:"size:64;uniqueIndex;not null"` // SHA-256
	Filename     string `gorm:"size:255"`
	TotalSheets  int
	SuccessCount int
	ErrorCount   int
	ProcessedAt  time.Time
}
