package models

import "time"

// PurchaseRecord - 매입 기록. Date는 YYMMDD 정수 코드로 저장된다.
type PurchaseRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Date        int    `gorm:"index;not null"` // 작성일자 (YYMMDD)
	Supplier    string `gorm:"size:100"`       // 공급자 상호
	SupplierBiz string `gorm:"size:20"`        // 공급자 등록번호
	Item        string `gorm:"size:200"`       // 품목명
	Spec        string `gorm:"size:100"`       // 규격
	Quantity    string `gorm:"size:50"`        // 수량
	UnitPrice   string `gorm:"size:50"`        // 단가
	SupplyValue int64  // 공급가액
	Tax         int64  // 세액
	TotalAmount int64  // 합계금액
	FileURL     string `gorm:"size:500"` // 업로드된 계산서 링크
	FilePath    string `gorm:"size:500"` // 저장 경로
	CreatedAt   time.Time
}

// SaleRecord - 매출 기록
type SaleRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Date        int    `gorm:"index;not null"` // 작성일자 (YYMMDD)
	Buyer       string `gorm:"size:100"`       // 공급받는자 상호
	BuyerBiz    string `gorm:"size:20"`        // 공급받는자 등록번호
	Item        string `gorm:"size:200"`
	Spec        string `gorm:"size:100"`
	Quantity    string `gorm:"size:50"`
	UnitPrice   string `gorm:"size:50"`
	SupplyValue int64
	Tax         int64
	TotalAmount int64
	FileURL     string `gorm:"size:500"`
	FilePath    string `gorm:"size:500"`
	CreatedAt   time.Time
}
