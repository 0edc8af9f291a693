package services

import (
	"testing"
	"time"

	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.InstallmentPlan{},
		&models.Deal{},
		&models.DealInstallment{},
		&models.ProductDeal{},
	)
	require.NoError(t, err)

	return db
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	category := &models.Category{Name: name, Description: name + " on installments"}
	require.NoError(t, db.Create(category).Error)
	return category
}

// createTestProduct creates a product with its generated standard plan set
// persisted, the way product creation does.
func createTestProduct(t *testing.T, db *gorm.DB, category *models.Category, price float64) *models.Product {
	product := &models.Product{
		Name:       "Test Product",
		Price:      price,
		Stock:      10,
		CategoryID: category.ID,
		IsActive:   true,
	}
	require.NoError(t, db.Create(product).Error)

	templates, err := GeneratePlans(category.Name, price)
	require.NoError(t, err)
	for _, tpl := range templates {
		plan := models.InstallmentPlan{
			ProductID:     product.ID,
			Months:        tpl.Months,
			AdvanceAmount: tpl.AdvanceAmount,
			MonthlyAmount: tpl.MonthlyAmount,
			TotalPrice:    tpl.TotalPrice,
			Active:        true,
		}
		require.NoError(t, db.Create(&plan).Error)
	}
	return product
}

func activePlans(t *testing.T, db *gorm.DB, productID uint) []models.InstallmentPlan {
	var plans []models.InstallmentPlan
	require.NoError(t, db.Where("product_id = ? AND active = ?", productID, true).Order("months ASC").Find(&plans).Error)
	return plans
}

func standardPlanCount(t *testing.T, db *gorm.DB, productID uint, active bool) int64 {
	var count int64
	require.NoError(t, db.Model(&models.InstallmentPlan{}).
		Where("product_id = ? AND active = ? AND deal_id IS NULL AND product_deal_id IS NULL", productID, active).
		Count(&count).Error)
	return count
}

func reloadProduct(t *testing.T, db *gorm.DB, id uint) *models.Product {
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return &product
}

// requireSingleActiveSet asserts the core plan invariant: the active plans
// of a product are either all standard or all owned by one deal binding.
func requireSingleActiveSet(t *testing.T, db *gorm.DB, productID uint) {
	plans := activePlans(t, db, productID)
	require.NotEmpty(t, plans)

	first := plans[0]
	for _, plan := range plans {
		require.Equal(t, first.DealID, plan.DealID)
		require.Equal(t, first.ProductDealID, plan.ProductDealID)
	}
}

func testWindow(days int) (time.Time, time.Time) {
	now := time.Now()
	return now.Add(-time.Hour), now.AddDate(0, 0, days)
}
