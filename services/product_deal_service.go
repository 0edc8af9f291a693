package services

import (
	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/asadullah-yousuf/QistKart/utils"
	"gorm.io/gorm"
)

// ProductDealService manages the per-product bindings of a deal. A binding
// has no activation state of its own: it follows the parent deal, so
// creating one under an active deal materializes immediately and deleting
// one reverts immediately.
type ProductDealService struct {
	db    *gorm.DB
	plans PlanStore
}

// NewProductDealService creates a ProductDealService on the given database
// handle.
func NewProductDealService(db *gorm.DB) *ProductDealService {
	return &ProductDealService{db: db}
}

// ProductDealInput carries a binding create request. Installments may be
// empty, in which case the plan generator derives the override set from
// the bound product's price and category.
type ProductDealInput struct {
	DealID       uint
	ProductID    uint
	Installments []PlanTemplate
}

func (s *ProductDealService) loadProductDeal(tx *gorm.DB, id uint) (*models.ProductDeal, error) {
	var pd models.ProductDeal
	err := tx.Preload("Installments").Preload("Deal").First(&pd, id).Error
	if err != nil {
		return nil, err
	}
	return &pd, nil
}

// CreateProductDeal binds a product to a deal. Under an active parent deal
// the binding's plan set is conflict-checked and materialized in the same
// transaction.
func (s *ProductDealService) CreateProductDeal(input ProductDealInput) (*models.ProductDeal, error) {
	var created *models.ProductDeal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var deal models.Deal
		if err := tx.First(&deal, input.DealID).Error; err != nil {
			return err
		}
		var product models.Product
		if err := tx.Preload("Category").First(&product, input.ProductID).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.ProductDeal{}).
			Where("deal_id = ? AND product_id = ?", deal.ID, product.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return &ValidationError{Field: "product_id", Message: "product is already bound to this deal"}
		}

		templates, err := resolveTemplates(&product, input.Installments)
		if err != nil {
			return err
		}

		if deal.Active {
			if err := CheckProductConflicts(tx, []uint{product.ID}, deal.ID); err != nil {
				return err
			}
		}

		pd := models.ProductDeal{DealID: deal.ID, ProductID: product.ID}
		if err := tx.Create(&pd).Error; err != nil {
			return err
		}
		for _, tpl := range templates {
			inst := models.DealInstallment{
				ProductDealID: &pd.ID,
				Months:        tpl.Months,
				AdvanceAmount: tpl.AdvanceAmount,
				MonthlyAmount: tpl.MonthlyAmount,
				TotalPrice:    tpl.TotalPrice,
			}
			if err := tx.Create(&inst).Error; err != nil {
				return err
			}
			pd.Installments = append(pd.Installments, inst)
		}

		if deal.Active {
			if err := s.plans.MaterializeDealPlans(tx, product.ID, templates, nil, &pd.ID); err != nil {
				return wrapActivation(deal.ID, err)
			}
		}
		if err := recomputeHasActiveDeal(tx, product.ID); err != nil {
			return err
		}
		created = &pd
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Bound product %d to deal %d (binding %d)", created.ProductID, created.DealID, created.ID)
	return created, nil
}

// UpdateProductDeal replaces the binding's installment overrides wholesale.
// Under an active parent deal the product's plan set is reverted and
// re-materialized from the new overrides, in that order.
func (s *ProductDealService) UpdateProductDeal(id uint, installments []PlanTemplate) (*models.ProductDeal, error) {
	var updated *models.ProductDeal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		pd, err := s.loadProductDeal(tx, id)
		if err != nil {
			return err
		}

		if pd.Deal.Active {
			if err := s.plans.RevertToStandardPlans(tx, pd.ProductID, nil, &pd.ID); err != nil {
				return wrapActivation(pd.DealID, err)
			}
		}

		var product models.Product
		if err := tx.Preload("Category").First(&product, pd.ProductID).Error; err != nil {
			return err
		}
		templates, err := resolveTemplates(&product, installments)
		if err != nil {
			return err
		}

		if err := tx.Unscoped().Where("product_deal_id = ?", pd.ID).Delete(&models.DealInstallment{}).Error; err != nil {
			return err
		}
		pd.Installments = nil
		for _, tpl := range templates {
			inst := models.DealInstallment{
				ProductDealID: &pd.ID,
				Months:        tpl.Months,
				AdvanceAmount: tpl.AdvanceAmount,
				MonthlyAmount: tpl.MonthlyAmount,
				TotalPrice:    tpl.TotalPrice,
			}
			if err := tx.Create(&inst).Error; err != nil {
				return err
			}
			pd.Installments = append(pd.Installments, inst)
		}

		if pd.Deal.Active {
			if err := s.plans.MaterializeDealPlans(tx, pd.ProductID, templates, nil, &pd.ID); err != nil {
				return wrapActivation(pd.DealID, err)
			}
		}
		updated = pd
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProductDeal reverts the bound product when the parent deal is
// active, then removes the binding and its installment overrides.
func (s *ProductDealService) DeleteProductDeal(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		pd, err := s.loadProductDeal(tx, id)
		if err != nil {
			return err
		}
		if pd.Deal.Active {
			if err := s.plans.RevertToStandardPlans(tx, pd.ProductID, nil, &pd.ID); err != nil {
				return wrapActivation(pd.DealID, err)
			}
		}
		if err := tx.Unscoped().Where("product_deal_id = ?", pd.ID).Delete(&models.DealInstallment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(pd).Error; err != nil {
			return err
		}
		return recomputeHasActiveDeal(tx, pd.ProductID)
	})
	if err != nil {
		return err
	}
	utils.LogInfo("Removed product-deal binding %d", id)
	return nil
}

// GetProductDeal returns a binding with its overrides and parent deal.
func (s *ProductDealService) GetProductDeal(id uint) (*models.ProductDeal, error) {
	return s.loadProductDeal(s.db, id)
}
