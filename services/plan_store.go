package services

import (
	"errors"

	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/asadullah-yousuf/QistKart/utils"
	"gorm.io/gorm"
)

// PlanStore swaps a product's installment plan rows between the standard
// set and a deal's set. Every method runs on the transaction handle the
// caller provides, never on its own connection, so a whole lifecycle
// transition commits or rolls back as one unit.
type PlanStore struct{}

// ownedPlans scopes a query to the plan rows tagged with one deal or one
// product-deal. Exactly one of dealID/productDealID is non-nil.
func ownedPlans(tx *gorm.DB, productID uint, dealID, productDealID *uint) *gorm.DB {
	q := tx.Where("product_id = ?", productID)
	if dealID != nil {
		return q.Where("deal_id = ?", *dealID)
	}
	return q.Where("product_deal_id = ?", *productDealID)
}

func standardPlans(tx *gorm.DB, productID uint) *gorm.DB {
	return tx.Where("product_id = ? AND deal_id IS NULL AND product_deal_id IS NULL", productID)
}

// MaterializeDealPlans deactivates the product's standard plans and inserts
// one active plan row per template, tagged with the owning deal or
// product-deal. Re-running for the same owner deletes and recreates the
// tagged rows, so the effect is idempotent. A missing product is a no-op:
// the caller may be racing a deletion.
func (PlanStore) MaterializeDealPlans(tx *gorm.DB, productID uint, templates []PlanTemplate, dealID, productDealID *uint) error {
	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogDebug("MaterializeDealPlans: product %d no longer exists, skipping", productID)
			return nil
		}
		return err
	}

	if err := ownedPlans(tx, productID, dealID, productDealID).
		Unscoped().Delete(&models.InstallmentPlan{}).Error; err != nil {
		return err
	}

	if err := standardPlans(tx.Model(&models.InstallmentPlan{}), productID).
		Update("active", false).Error; err != nil {
		return err
	}

	for _, tpl := range templates {
		plan := models.InstallmentPlan{
			ProductID:     productID,
			Months:        tpl.Months,
			AdvanceAmount: tpl.AdvanceAmount,
			MonthlyAmount: tpl.MonthlyAmount,
			TotalPrice:    tpl.TotalPrice,
			Active:        true,
			DealID:        dealID,
			ProductDealID: productDealID,
		}
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
	}
	return nil
}

// RevertToStandardPlans deletes the plan rows tagged with the given owner
// and reactivates the product's standard plans. A product left with zero
// active plans is logged as an inconsistency, not repaired. Missing rows
// make this a no-op, so a racing manual deactivate and sweep cannot
// double-revert.
func (PlanStore) RevertToStandardPlans(tx *gorm.DB, productID uint, dealID, productDealID *uint) error {
	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogDebug("RevertToStandardPlans: product %d no longer exists, skipping", productID)
			return nil
		}
		return err
	}

	if err := ownedPlans(tx, productID, dealID, productDealID).
		Unscoped().Delete(&models.InstallmentPlan{}).Error; err != nil {
		return err
	}

	res := standardPlans(tx.Model(&models.InstallmentPlan{}), productID).Update("active", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		utils.LogError("RevertToStandardPlans: product %d has no standard plans to restore", productID)
	}
	return nil
}

// recomputeHasActiveDeal refreshes Product.HasActiveDeal: true iff an
// active deal targets the product directly or through a product-deal
// binding.
func recomputeHasActiveDeal(tx *gorm.DB, productID uint) error {
	var direct int64
	if err := tx.Model(&models.Deal{}).
		Where("product_id = ? AND active = ?", productID, true).
		Count(&direct).Error; err != nil {
		return err
	}

	var bound int64
	if err := tx.Model(&models.ProductDeal{}).
		Joins("JOIN deals ON deals.id = product_deals.deal_id AND deals.deleted_at IS NULL").
		Where("product_deals.product_id = ? AND deals.active = ?", productID, true).
		Count(&bound).Error; err != nil {
		return err
	}

	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("has_active_deal", direct+bound > 0).Error
}
