package services

import (
	"context"
	"testing"
	"time"

	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep(t *testing.T) {
	db := setupTestDB(t)
	deals := NewDealService(db)
	bindings := NewProductDealService(db)
	sweeper := NewExpirySweeper(deals, time.Minute)
	category := createTestCategory(t, db, "mobiles")
	now := time.Now()

	t.Run("nothing expired reverts nothing", func(t *testing.T) {
		product := createTestProduct(t, db, category, 40000)
		_, err := deals.CreateDeal(DealInput{
			Name:      "Ongoing Deal",
			StartDate: now.Add(-time.Hour),
			EndDate:   now.AddDate(0, 0, 7),
			ProductID: product.ID,
			Active:    true,
		})
		require.NoError(t, err)

		count, err := sweeper.Sweep(now)
		require.NoError(t, err)
		assert.Zero(t, count)

		assert.True(t, reloadProduct(t, db, product.ID).HasActiveDeal)
		requireSingleActiveSet(t, db, product.ID)
	})

	t.Run("expired active deal is reverted exactly once", func(t *testing.T) {
		product := createTestProduct(t, db, category, 45000)
		extra := createTestProduct(t, db, category, 30000)

		deal, err := deals.CreateDeal(DealInput{
			Name:      "Lapsed Deal",
			StartDate: now.Add(-48 * time.Hour),
			EndDate:   now.Add(-time.Hour),
			ProductID: product.ID,
			Active:    true,
		})
		require.NoError(t, err)

		_, err = bindings.CreateProductDeal(ProductDealInput{DealID: deal.ID, ProductID: extra.ID})
		require.NoError(t, err)

		count, err := sweeper.Sweep(now)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		var swept models.Deal
		require.NoError(t, db.First(&swept, deal.ID).Error)
		assert.False(t, swept.Active)

		for _, productID := range []uint{product.ID, extra.ID} {
			assert.Equal(t, int64(4), standardPlanCount(t, db, productID, true))
			assert.False(t, reloadProduct(t, db, productID).HasActiveDeal)
			requireSingleActiveSet(t, db, productID)
		}

		// Idempotent second pass.
		count, err = sweeper.Sweep(now)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("inactive expired deals are left alone", func(t *testing.T) {
		product := createTestProduct(t, db, category, 20000)
		deal, err := deals.CreateDeal(DealInput{
			Name:      "Old Dormant Deal",
			StartDate: now.Add(-48 * time.Hour),
			EndDate:   now.Add(-time.Hour),
			ProductID: product.ID,
		})
		require.NoError(t, err)

		count, err := sweeper.Sweep(now)
		require.NoError(t, err)
		assert.Zero(t, count)

		var unchanged models.Deal
		require.NoError(t, db.First(&unchanged, deal.ID).Error)
		assert.False(t, unchanged.Active)
		assert.Equal(t, int64(4), standardPlanCount(t, db, product.ID, true))
	})

	t.Run("deals handled by a racing writer are not counted", func(t *testing.T) {
		product := createTestProduct(t, db, category, 35000)
		deal, err := deals.CreateDeal(DealInput{
			Name:      "Raced Deal",
			StartDate: now.Add(-48 * time.Hour),
			EndDate:   now.Add(-time.Hour),
			ProductID: product.ID,
			Active:    true,
		})
		require.NoError(t, err)

		swept, err := sweeper.sweepOne(deal.ID)
		require.NoError(t, err)
		assert.True(t, swept)

		// A second pass over the same id finds it already inactive and
		// skips it, the state a manual deactivate landing between the
		// expired listing and the per-deal transaction produces.
		swept, err = sweeper.sweepOne(deal.ID)
		require.NoError(t, err)
		assert.False(t, swept)

		// Same for a deal deleted out from under the listing.
		swept, err = sweeper.sweepOne(99999)
		require.NoError(t, err)
		assert.False(t, swept)

		assert.Equal(t, int64(4), standardPlanCount(t, db, product.ID, true))
	})

	t.Run("sweeper never activates a deal whose window has not started", func(t *testing.T) {
		product := createTestProduct(t, db, category, 25000)
		deal, err := deals.CreateDeal(DealInput{
			Name:      "Future Deal",
			StartDate: now.AddDate(0, 0, 1),
			EndDate:   now.AddDate(0, 0, 7),
			ProductID: product.ID,
		})
		require.NoError(t, err)

		count, err := sweeper.Sweep(now)
		require.NoError(t, err)
		assert.Zero(t, count)

		var unchanged models.Deal
		require.NoError(t, db.First(&unchanged, deal.ID).Error)
		assert.False(t, unchanged.Active)
	})
}

func TestSweeperStartStop(t *testing.T) {
	db := setupTestDB(t)
	sweeper := NewExpirySweeper(NewDealService(db), 10*time.Millisecond)

	sweeper.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	sweeper.Stop()

	// Stop is idempotent.
	sweeper.Stop()
}
