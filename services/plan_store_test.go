package services

import (
	"testing"

	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanStoreMissingProduct(t *testing.T) {
	db := setupTestDB(t)
	store := PlanStore{}
	dealID := uint(1)
	templates := []PlanTemplate{
		{Months: 6, AdvanceAmount: 5000, MonthlyAmount: 6500, TotalPrice: 44000},
	}

	// Both operations treat a vanished product as a no-op success: the
	// caller may be racing a product deletion.
	require.NoError(t, store.MaterializeDealPlans(db, 99999, templates, &dealID, nil))
	require.NoError(t, store.RevertToStandardPlans(db, 99999, &dealID, nil))

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.InstallmentPlan{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRevertWithNoStandardPlans(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDealService(db)
	category := createTestCategory(t, db, "mobiles")
	product := createTestProduct(t, db, category, 40000)
	start, end := testWindow(7)

	deal, err := svc.CreateDeal(DealInput{
		Name: "Sole Deal", StartDate: start, EndDate: end, ProductID: product.ID, Active: true,
	})
	require.NoError(t, err)

	// Pull the standard set out from under the active deal.
	require.NoError(t, db.Unscoped().
		Where("product_id = ? AND deal_id IS NULL AND product_deal_id IS NULL", product.ID).
		Delete(&models.InstallmentPlan{}).Error)

	_, err = svc.ToggleDeal(deal.ID, false)
	require.NoError(t, err)

	// The inconsistency is reported, not repaired: the product ends with
	// zero active plans and no rows are regenerated.
	assert.Empty(t, activePlans(t, db, product.ID))

	var remaining int64
	require.NoError(t, db.Unscoped().Model(&models.InstallmentPlan{}).
		Where("product_id = ?", product.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestPlanOwnershipRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDealService(db)
	category := createTestCategory(t, db, "mobiles")
	product := createTestProduct(t, db, category, 40000)
	start, end := testWindow(7)

	for _, plan := range activePlans(t, db, product.ID) {
		assert.True(t, plan.IsStandard())
	}

	deal, err := svc.CreateDeal(DealInput{
		Name: "Owned Deal", StartDate: start, EndDate: end, ProductID: product.ID, Active: true,
	})
	require.NoError(t, err)

	for _, plan := range activePlans(t, db, product.ID) {
		assert.False(t, plan.IsStandard())
	}

	_, err = svc.ToggleDeal(deal.ID, false)
	require.NoError(t, err)

	for _, plan := range activePlans(t, db, product.ID) {
		assert.True(t, plan.IsStandard())
	}
}
