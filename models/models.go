package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin represents an administrator in the system
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Category represents a product category
type Category struct {
	gorm.Model
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	Products    []Product `json:"products,omitempty"`
	Blocked     bool      `json:"blocked" gorm:"default:false"`
}

// Product represents a product sold on installments
type Product struct {
	gorm.Model
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         float64           `json:"price"`
	Stock         int               `json:"stock"`
	CategoryID    uint              `json:"category_id"`
	Category      Category          `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ImageURL      string            `json:"image_url"`
	IsActive      bool              `json:"is_active" gorm:"default:true"`
	HasActiveDeal bool              `json:"has_active_deal" gorm:"default:false"`
	Plans         []InstallmentPlan `json:"plans,omitempty" gorm:"foreignKey:ProductID"`
}

// InstallmentPlan is a materialized, queryable plan row for a product.
// DealID and ProductDealID are both nil for a standard plan; at most one
// of them is set for a deal-sourced plan.
type InstallmentPlan struct {
	gorm.Model
	ProductID     uint    `json:"product_id" gorm:"index;not null"`
	Months        int     `json:"months" gorm:"not null"`
	AdvanceAmount float64 `json:"advance_amount"`
	MonthlyAmount float64 `json:"monthly_amount"`
	TotalPrice    float64 `json:"total_price"`
	Active        bool    `json:"active" gorm:"default:true"`
	DealID        *uint   `json:"deal_id,omitempty" gorm:"index"`
	ProductDealID *uint   `json:"product_deal_id,omitempty" gorm:"index"`
}

// IsStandard reports whether the plan belongs to the product's default set.
func (p *InstallmentPlan) IsStandard() bool {
	return p.DealID == nil && p.ProductDealID == nil
}
