package services

import (
	"github.com/asadullah-yousuf/QistKart/models"
	"gorm.io/gorm"
)

// CheckProductConflicts enforces the one-active-deal-per-product policy.
// Bindings belonging to excludeDealID are ignored so a deal can re-activate
// over its own prior bindings. Fails fast with DealConflictError naming the
// first conflicting product. Pass excludeDealID = 0 for a deal that has no
// row yet.
func CheckProductConflicts(tx *gorm.DB, productIDs []uint, excludeDealID uint) error {
	for _, productID := range productIDs {
		var direct int64
		if err := tx.Model(&models.Deal{}).
			Where("product_id = ? AND active = ? AND id <> ?", productID, true, excludeDealID).
			Count(&direct).Error; err != nil {
			return err
		}
		if direct > 0 {
			return &DealConflictError{ProductID: productID}
		}

		var bound int64
		if err := tx.Model(&models.ProductDeal{}).
			Joins("JOIN deals ON deals.id = product_deals.deal_id AND deals.deleted_at IS NULL").
			Where("product_deals.product_id = ? AND deals.active = ? AND deals.id <> ?", productID, true, excludeDealID).
			Count(&bound).Error; err != nil {
			return err
		}
		if bound > 0 {
			return &DealConflictError{ProductID: productID}
		}
	}
	return nil
}
