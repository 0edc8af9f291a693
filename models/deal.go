package models

import (
	"time"

	"gorm.io/gorm"
)

// Deal is a time-boxed promotional override of a product's installment
// plans. While a deal is active its installments are materialized as the
// product's InstallmentPlan rows and the standard set is switched off.
type Deal struct {
	gorm.Model
	Name         string            `json:"name" gorm:"not null"`
	StartDate    time.Time         `json:"start_date" gorm:"not null"`
	EndDate      time.Time         `json:"end_date" gorm:"not null"`
	ProductID    uint              `json:"product_id" gorm:"index;not null"`
	Product      Product           `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Active       bool              `json:"active" gorm:"default:false;index"`
	Installments []DealInstallment `json:"installments,omitempty" gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`
	ProductDeals []ProductDeal     `json:"product_deals,omitempty" gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`
}

// DealInstallment is the template row a deal carries, distinct from the
// materialized InstallmentPlan rows. Owned by either a Deal or a
// ProductDeal, never both.
type DealInstallment struct {
	gorm.Model
	DealID        *uint   `json:"deal_id,omitempty" gorm:"index"`
	ProductDealID *uint   `json:"product_deal_id,omitempty" gorm:"index"`
	Months        int     `json:"months" gorm:"not null"`
	AdvanceAmount float64 `json:"advance_amount"`
	MonthlyAmount float64 `json:"monthly_amount"`
	TotalPrice    float64 `json:"total_price"`
}

// ProductDeal binds an extra product to a deal with its own plan overrides.
// It has no independent active flag: it is active iff the parent deal is.
type ProductDeal struct {
	gorm.Model
	DealID       uint              `json:"deal_id" gorm:"uniqueIndex:idx_product_deal;not null"`
	Deal         Deal              `json:"deal,omitempty" gorm:"foreignKey:DealID"`
	ProductID    uint              `json:"product_id" gorm:"uniqueIndex:idx_product_deal;not null"`
	Product      Product           `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Installments []DealInstallment `json:"installments,omitempty" gorm:"foreignKey:ProductDealID;constraint:OnDelete:CASCADE"`
}
