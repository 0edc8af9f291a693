package services

import (
	"time"

	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/asadullah-yousuf/QistKart/utils"
	"gorm.io/gorm"
)

// DealService owns every Deal lifecycle transition. Each public method
// wraps its whole transition in one transaction: plans are never half
// swapped, and a failure after the conflict check rolls the transition
// back rather than leaving a product with zero or two active plan sets.
type DealService struct {
	db    *gorm.DB
	plans PlanStore
}

// NewDealService creates a DealService on the given database handle.
func NewDealService(db *gorm.DB) *DealService {
	return &DealService{db: db}
}

// DealInput carries a deal create request. Installments may be empty, in
// which case the plan generator fills them in from the product's price and
// category.
type DealInput struct {
	Name         string
	StartDate    time.Time
	EndDate      time.Time
	ProductID    uint
	Active       bool
	Installments []PlanTemplate
}

// DealUpdateInput carries a deal update. Zero-valued fields keep their
// current value; Active nil keeps the current activation state. The
// installment templates are always replaced wholesale.
type DealUpdateInput struct {
	Name         string
	StartDate    time.Time
	EndDate      time.Time
	Active       *bool
	Installments []PlanTemplate
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return &ValidationError{Field: "start_date", Message: "start and end dates are required"}
	}
	if !end.After(start) {
		return &ValidationError{Field: "end_date", Message: "end date must be after start date"}
	}
	return nil
}

func validateTemplates(templates []PlanTemplate) error {
	for _, tpl := range templates {
		if tpl.Months <= 0 {
			return &ValidationError{Field: "months", Message: "term length must be positive"}
		}
		if tpl.AdvanceAmount < 0 || tpl.MonthlyAmount < 0 || tpl.TotalPrice < 0 {
			return &ValidationError{Field: "amount", Message: "plan amounts must not be negative"}
		}
	}
	return nil
}

// resolveTemplates returns the supplied templates after validation, or
// generates the set from the product's category and price when none are
// supplied.
func resolveTemplates(product *models.Product, supplied []PlanTemplate) ([]PlanTemplate, error) {
	if len(supplied) > 0 {
		if err := validateTemplates(supplied); err != nil {
			return nil, err
		}
		return supplied, nil
	}
	return GeneratePlans(product.Category.Name, product.Price)
}

func templatesOf(installments []models.DealInstallment) []PlanTemplate {
	templates := make([]PlanTemplate, 0, len(installments))
	for _, inst := range installments {
		templates = append(templates, PlanTemplate{
			Months:        inst.Months,
			AdvanceAmount: inst.AdvanceAmount,
			MonthlyAmount: inst.MonthlyAmount,
			TotalPrice:    inst.TotalPrice,
		})
	}
	return templates
}

// wrapActivation turns a storage failure mid-transition into
// DealActivationFailed. Taxonomy errors pass through untouched.
func wrapActivation(dealID uint, err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *DealConflictError, *ValidationError, *NoPlanAvailableError:
		return err
	}
	return &DealActivationFailedError{DealID: dealID, Err: err}
}

func (s *DealService) loadDeal(tx *gorm.DB, id uint) (*models.Deal, error) {
	var deal models.Deal
	err := tx.Preload("Installments").
		Preload("ProductDeals").
		Preload("ProductDeals.Installments").
		First(&deal, id).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// boundProductIDs lists every product the deal claims: its own target plus
// all product-deal bindings.
func boundProductIDs(deal *models.Deal) []uint {
	ids := []uint{deal.ProductID}
	for _, pd := range deal.ProductDeals {
		ids = append(ids, pd.ProductID)
	}
	return ids
}

// activate runs the conflict guard and materializes the deal's plan sets
// on every bound product. The deal row must be loaded with its
// installments and product-deals.
func (s *DealService) activate(tx *gorm.DB, deal *models.Deal) error {
	if err := CheckProductConflicts(tx, boundProductIDs(deal), deal.ID); err != nil {
		return err
	}
	if err := tx.Model(deal).Update("active", true).Error; err != nil {
		return wrapActivation(deal.ID, err)
	}
	if err := s.plans.MaterializeDealPlans(tx, deal.ProductID, templatesOf(deal.Installments), &deal.ID, nil); err != nil {
		return wrapActivation(deal.ID, err)
	}
	for i := range deal.ProductDeals {
		pd := &deal.ProductDeals[i]
		if err := s.plans.MaterializeDealPlans(tx, pd.ProductID, templatesOf(pd.Installments), nil, &pd.ID); err != nil {
			return wrapActivation(deal.ID, err)
		}
	}
	for _, productID := range boundProductIDs(deal) {
		if err := recomputeHasActiveDeal(tx, productID); err != nil {
			return wrapActivation(deal.ID, err)
		}
	}
	deal.Active = true
	return nil
}

// deactivate reverts every bound product to its standard plans. Safe to
// call for a deal another writer already reverted: the plan store treats
// missing rows as a no-op.
func (s *DealService) deactivate(tx *gorm.DB, deal *models.Deal) error {
	if err := tx.Model(deal).Update("active", false).Error; err != nil {
		return err
	}
	if err := s.plans.RevertToStandardPlans(tx, deal.ProductID, &deal.ID, nil); err != nil {
		return err
	}
	for i := range deal.ProductDeals {
		pd := &deal.ProductDeals[i]
		if err := s.plans.RevertToStandardPlans(tx, pd.ProductID, nil, &pd.ID); err != nil {
			return err
		}
	}
	for _, productID := range boundProductIDs(deal) {
		if err := recomputeHasActiveDeal(tx, productID); err != nil {
			return err
		}
	}
	deal.Active = false
	return nil
}

// CreateDeal validates the request, runs the conflict guard when the deal
// is created active, persists the deal with its installment templates and
// materializes the plan set. A conflicting create is rejected outright; no
// disabled row is persisted.
func (s *DealService) CreateDeal(input DealInput) (*models.Deal, error) {
	if input.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	if err := validateWindow(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	var created *models.Deal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Preload("Category").First(&product, input.ProductID).Error; err != nil {
			return err
		}

		templates, err := resolveTemplates(&product, input.Installments)
		if err != nil {
			return err
		}

		deal := models.Deal{
			Name:      input.Name,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
			ProductID: product.ID,
			Active:    false,
		}
		if err := tx.Create(&deal).Error; err != nil {
			return err
		}
		for _, tpl := range templates {
			inst := models.DealInstallment{
				DealID:        &deal.ID,
				Months:        tpl.Months,
				AdvanceAmount: tpl.AdvanceAmount,
				MonthlyAmount: tpl.MonthlyAmount,
				TotalPrice:    tpl.TotalPrice,
			}
			if err := tx.Create(&inst).Error; err != nil {
				return err
			}
			deal.Installments = append(deal.Installments, inst)
		}

		if input.Active {
			if err := s.activate(tx, &deal); err != nil {
				return err
			}
		}
		created = &deal
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Created deal %d (%s) for product %d, active=%t", created.ID, created.Name, created.ProductID, created.Active)
	return created, nil
}

// UpdateDeal reverts an active deal first, replaces its installment
// templates wholesale, applies field changes and re-activates when
// requested, re-running the conflict guard.
func (s *DealService) UpdateDeal(id uint, input DealUpdateInput) (*models.Deal, error) {
	var updated *models.Deal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		deal, err := s.loadDeal(tx, id)
		if err != nil {
			return err
		}

		targetActive := deal.Active
		if input.Active != nil {
			targetActive = *input.Active
		}

		if deal.Active {
			if err := s.deactivate(tx, deal); err != nil {
				return wrapActivation(deal.ID, err)
			}
		}

		if input.Name != "" {
			deal.Name = input.Name
		}
		if !input.StartDate.IsZero() {
			deal.StartDate = input.StartDate
		}
		if !input.EndDate.IsZero() {
			deal.EndDate = input.EndDate
		}
		if err := validateWindow(deal.StartDate, deal.EndDate); err != nil {
			return err
		}
		if err := tx.Model(deal).Updates(map[string]interface{}{
			"name":       deal.Name,
			"start_date": deal.StartDate,
			"end_date":   deal.EndDate,
		}).Error; err != nil {
			return err
		}

		var product models.Product
		if err := tx.Preload("Category").First(&product, deal.ProductID).Error; err != nil {
			return err
		}
		templates, err := resolveTemplates(&product, input.Installments)
		if err != nil {
			return err
		}

		// Templates are replaced wholesale, never diffed.
		if err := tx.Unscoped().Where("deal_id = ?", deal.ID).Delete(&models.DealInstallment{}).Error; err != nil {
			return err
		}
		deal.Installments = nil
		for _, tpl := range templates {
			inst := models.DealInstallment{
				DealID:        &deal.ID,
				Months:        tpl.Months,
				AdvanceAmount: tpl.AdvanceAmount,
				MonthlyAmount: tpl.MonthlyAmount,
				TotalPrice:    tpl.TotalPrice,
			}
			if err := tx.Create(&inst).Error; err != nil {
				return err
			}
			deal.Installments = append(deal.Installments, inst)
		}

		if targetActive {
			if err := s.activate(tx, deal); err != nil {
				return err
			}
		}
		updated = deal
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Updated deal %d, active=%t", updated.ID, updated.Active)
	return updated, nil
}

// ToggleDeal moves a deal to the target activation state. Toggling to the
// current state is a no-op, not an error.
func (s *DealService) ToggleDeal(id uint, targetActive bool) (*models.Deal, error) {
	var toggled *models.Deal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		deal, err := s.loadDeal(tx, id)
		if err != nil {
			return err
		}
		if deal.Active == targetActive {
			toggled = deal
			return nil
		}
		if targetActive {
			if err := s.activate(tx, deal); err != nil {
				return err
			}
		} else {
			if err := s.deactivate(tx, deal); err != nil {
				return wrapActivation(deal.ID, err)
			}
		}
		toggled = deal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

// DeleteDeal reverts an active deal first, then removes the deal with its
// product-deal bindings and all owned installment templates.
func (s *DealService) DeleteDeal(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		deal, err := s.loadDeal(tx, id)
		if err != nil {
			return err
		}
		if deal.Active {
			if err := s.deactivate(tx, deal); err != nil {
				return wrapActivation(deal.ID, err)
			}
		}
		for i := range deal.ProductDeals {
			pd := &deal.ProductDeals[i]
			if err := tx.Unscoped().Where("product_deal_id = ?", pd.ID).Delete(&models.DealInstallment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("deal_id = ?", deal.ID).Delete(&models.ProductDeal{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("deal_id = ?", deal.ID).Delete(&models.DealInstallment{}).Error; err != nil {
			return err
		}
		return tx.Delete(deal).Error
	})
	if err != nil {
		return err
	}
	utils.LogInfo("Deleted deal %d", id)
	return nil
}

// GetDeal returns a deal with its installment templates and bindings.
func (s *DealService) GetDeal(id uint) (*models.Deal, error) {
	return s.loadDeal(s.db, id)
}

// ListDeals returns deals newest first with their installment templates.
func (s *DealService) ListDeals(offset, limit int) ([]models.Deal, int64, error) {
	var total int64
	if err := s.db.Model(&models.Deal{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var deals []models.Deal
	err := s.db.Preload("Installments").
		Preload("ProductDeals").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&deals).Error
	if err != nil {
		return nil, 0, err
	}
	return deals, total, nil
}
