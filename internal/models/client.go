package models

import "time"

// Client - 거래처
type Client struct {
	ID             uint      `gorm:"primaryKey"`
	Name           string    `gorm:"size:100;not null"` // 상호명
	Representative string    `gorm:"size:50"`           // 대표자
	BizNo          string    `gorm:"size:20;index"`     // 사업자등록번호 (NNN-NN-NNNNN)
	Phone          string    `gorm:"size:20"`
	Email          string    `gorm:"size:100"`
	Address        string    `gorm:"size:255"`
	Bank           string    `gorm:"size:50"`  // 은행명
	AccountNo      string    `gorm:"size:50"`  // 계좌번호
	Memo           string    `gorm:"size:500"` // 비고
	Contacts       []Contact `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Contact - 거래처 담당자
type Contact struct {
	ID       uint   `gorm:"primaryKey"`
	ClientID uint   `gorm:"index;not null"`
	Name     string `gorm:"size:50;not null"`
	Phone    string `gorm:"size:20"`
	Email    string `gorm:"size:100"`
}
