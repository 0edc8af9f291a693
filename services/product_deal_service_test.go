package services

import (
	"testing"

	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductDeal(t *testing.T) {
	db := setupTestDB(t)
	deals := NewDealService(db)
	bindings := NewProductDealService(db)
	category := createTestCategory(t, db, "mobiles")
	primary := createTestProduct(t, db, category, 40000)
	start, end := testWindow(7)

	deal, err := deals.CreateDeal(DealInput{
		Name: "Bundle Deal", StartDate: start, EndDate: end, ProductID: primary.ID, Active: true,
	})
	require.NoError(t, err)

	t.Run("binding under an active deal materializes immediately", func(t *testing.T) {
		extra := createTestProduct(t, db, category, 30000)

		pd, err := bindings.CreateProductDeal(ProductDealInput{
			DealID:    deal.ID,
			ProductID: extra.ID,
			Installments: []PlanTemplate{
				{Months: 6, AdvanceAmount: 4000, MonthlyAmount: 5000, TotalPrice: 34000},
			},
		})
		require.NoError(t, err)
		require.Len(t, pd.Installments, 1)

		plans := activePlans(t, db, extra.ID)
		require.Len(t, plans, 1)
		require.NotNil(t, plans[0].ProductDealID)
		assert.Equal(t, pd.ID, *plans[0].ProductDealID)
		assert.Zero(t, standardPlanCount(t, db, extra.ID, true))
		assert.True(t, reloadProduct(t, db, extra.ID).HasActiveDeal)
		requireSingleActiveSet(t, db, extra.ID)
	})

	t.Run("duplicate binding is rejected", func(t *testing.T) {
		extra := createTestProduct(t, db, category, 25000)
		_, err := bindings.CreateProductDeal(ProductDealInput{DealID: deal.ID, ProductID: extra.ID})
		require.NoError(t, err)

		_, err = bindings.CreateProductDeal(ProductDealInput{DealID: deal.ID, ProductID: extra.ID})
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("binding a product held by another deal conflicts", func(t *testing.T) {
		contested := createTestProduct(t, db, category, 35000)
		_, err := deals.CreateDeal(DealInput{
			Name: "Rival Deal", StartDate: start, EndDate: end, ProductID: contested.ID, Active: true,
		})
		require.NoError(t, err)

		_, err = bindings.CreateProductDeal(ProductDealInput{DealID: deal.ID, ProductID: contested.ID})
		var conflict *DealConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, contested.ID, conflict.ProductID)
	})

	t.Run("omitted overrides come from the generator", func(t *testing.T) {
		extra := createTestProduct(t, db, category, 20000)
		pd, err := bindings.CreateProductDeal(ProductDealInput{DealID: deal.ID, ProductID: extra.ID})
		require.NoError(t, err)
		assert.Len(t, pd.Installments, 4)
	})
}

func TestUpdateProductDeal(t *testing.T) {
	db := setupTestDB(t)
	deals := NewDealService(db)
	bindings := NewProductDealService(db)
	category := createTestCategory(t, db, "mobiles")
	primary := createTestProduct(t, db, category, 40000)
	extra := createTestProduct(t, db, category, 30000)
	start, end := testWindow(7)

	deal, err := deals.CreateDeal(DealInput{
		Name: "Bundle Deal", StartDate: start, EndDate: end, ProductID: primary.ID, Active: true,
	})
	require.NoError(t, err)

	pd, err := bindings.CreateProductDeal(ProductDealInput{DealID: deal.ID, ProductID: extra.ID})
	require.NoError(t, err)

	updated, err := bindings.UpdateProductDeal(pd.ID, []PlanTemplate{
		{Months: 3, AdvanceAmount: 9000, MonthlyAmount: 8000, TotalPrice: 33000},
	})
	require.NoError(t, err)
	require.Len(t, updated.Installments, 1)

	plans := activePlans(t, db, extra.ID)
	require.Len(t, plans, 1)
	assert.Equal(t, 3, plans[0].Months)
	assert.Equal(t, 9000.0, plans[0].AdvanceAmount)
	requireSingleActiveSet(t, db, extra.ID)
}

func TestDeleteProductDeal(t *testing.T) {
	db := setupTestDB(t)
	deals := NewDealService(db)
	bindings := NewProductDealService(db)
	category := createTestCategory(t, db, "mobiles")
	primary := createTestProduct(t, db, category, 40000)
	extra := createTestProduct(t, db, category, 30000)
	start, end := testWindow(7)

	deal, err := deals.CreateDeal(DealInput{
		Name: "Bundle Deal", StartDate: start, EndDate: end, ProductID: primary.ID, Active: true,
	})
	require.NoError(t, err)

	pd, err := bindings.CreateProductDeal(ProductDealInput{DealID: deal.ID, ProductID: extra.ID})
	require.NoError(t, err)
	require.True(t, reloadProduct(t, db, extra.ID).HasActiveDeal)

	require.NoError(t, bindings.DeleteProductDeal(pd.ID))

	assert.Equal(t, int64(4), standardPlanCount(t, db, extra.ID, true))
	assert.False(t, reloadProduct(t, db, extra.ID).HasActiveDeal)

	var overrides int64
	require.NoError(t, db.Unscoped().Model(&models.DealInstallment{}).
		Where("product_deal_id = ?", pd.ID).Count(&overrides).Error)
	assert.Zero(t, overrides)

	// The primary product keeps its deal plans.
	assert.True(t, reloadProduct(t, db, primary.ID).HasActiveDeal)
	requireSingleActiveSet(t, db, primary.ID)
}

func TestToggleDealCascadesOverBindings(t *testing.T) {
	db := setupTestDB(t)
	deals := NewDealService(db)
	bindings := NewProductDealService(db)
	category := createTestCategory(t, db, "mobiles")
	primary := createTestProduct(t, db, category, 40000)
	extra := createTestProduct(t, db, category, 30000)
	start, end := testWindow(7)

	deal, err := deals.CreateDeal(DealInput{
		Name: "Bundle Deal", StartDate: start, EndDate: end, ProductID: primary.ID, Active: true,
	})
	require.NoError(t, err)

	_, err = bindings.CreateProductDeal(ProductDealInput{DealID: deal.ID, ProductID: extra.ID})
	require.NoError(t, err)

	_, err = deals.ToggleDeal(deal.ID, false)
	require.NoError(t, err)

	for _, productID := range []uint{primary.ID, extra.ID} {
		assert.Equal(t, int64(4), standardPlanCount(t, db, productID, true))
		assert.False(t, reloadProduct(t, db, productID).HasActiveDeal)
	}

	_, err = deals.ToggleDeal(deal.ID, true)
	require.NoError(t, err)

	for _, productID := range []uint{primary.ID, extra.ID} {
		assert.Zero(t, standardPlanCount(t, db, productID, true))
		assert.True(t, reloadProduct(t, db, productID).HasActiveDeal)
		requireSingleActiveSet(t, db, productID)
	}
}
