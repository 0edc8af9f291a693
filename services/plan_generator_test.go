package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePlans_ThreeStageRounding(t *testing.T) {
	// price=1000, 3 months, profit=0.20, advance=0.35:
	// advance=350, profit=200, monthly=ceil(283.33/50)*50=300,
	// total=ceil(1250/50)*50=1250.
	plans, err := GeneratePlans("mobiles", 1000)
	require.NoError(t, err)
	require.NotEmpty(t, plans)

	first := plans[0]
	assert.Equal(t, 3, first.Months)
	assert.Equal(t, 350.0, first.AdvanceAmount)
	assert.Equal(t, 300.0, first.MonthlyAmount)
	assert.Equal(t, 1250.0, first.TotalPrice)
}

func TestGeneratePlans_Brackets(t *testing.T) {
	t.Run("mobiles base bracket has four ascending terms", func(t *testing.T) {
		plans, err := GeneratePlans("mobiles", 40000)
		require.NoError(t, err)
		require.Len(t, plans, 4)
		months := []int{plans[0].Months, plans[1].Months, plans[2].Months, plans[3].Months}
		assert.Equal(t, []int{3, 6, 9, 12}, months)
	})

	t.Run("bracket boundary at 50000 stays in base table", func(t *testing.T) {
		base, err := GeneratePlans("mobiles", 50000)
		require.NoError(t, err)
		mid, err := GeneratePlans("mobiles", 50001)
		require.NoError(t, err)
		require.Len(t, base, 4)
		require.Len(t, mid, 4)
		// Mid bracket asks for a larger advance on the same term.
		assert.Greater(t, mid[0].AdvanceAmount/50001, base[0].AdvanceAmount/50000)
	})

	t.Run("premium bracket adds a 24 month term", func(t *testing.T) {
		plans, err := GeneratePlans("mobiles", 120000)
		require.NoError(t, err)
		require.Len(t, plans, 5)
		assert.Equal(t, 24, plans[4].Months)
	})

	t.Run("premium bracket is price driven regardless of category", func(t *testing.T) {
		plans, err := GeneratePlans("laptops", 120000)
		require.NoError(t, err)
		require.Len(t, plans, 5)
		assert.Equal(t, 24, plans[4].Months)
	})

	t.Run("unsupported combination fails, never an empty list", func(t *testing.T) {
		plans, err := GeneratePlans("shoes", 40000)
		assert.Nil(t, plans)

		var noPlan *NoPlanAvailableError
		require.ErrorAs(t, err, &noPlan)
		assert.Equal(t, "shoes", noPlan.Category)
		assert.Equal(t, 40000.0, noPlan.Price)
	})

	t.Run("non-mobiles category below premium limit fails", func(t *testing.T) {
		_, err := GeneratePlans("laptops", 100000)
		var noPlan *NoPlanAvailableError
		require.ErrorAs(t, err, &noPlan)
	})
}

func TestGeneratePlans_AmountProperties(t *testing.T) {
	cases := []struct {
		category string
		price    float64
	}{
		{"mobiles", 1000},
		{"mobiles", 7777},
		{"mobiles", 49999},
		{"mobiles", 50000},
		{"mobiles", 99950},
		{"mobiles", 100000},
		{"laptops", 100001},
		{"mobiles", 120000},
		{"shoes", 350000},
	}

	for _, tc := range cases {
		plans, err := GeneratePlans(tc.category, tc.price)
		require.NoError(t, err, "category=%s price=%.0f", tc.category, tc.price)

		for _, plan := range plans {
			// Every derived amount is a multiple of 50.
			assert.Zero(t, math.Mod(plan.AdvanceAmount, 50))
			assert.Zero(t, math.Mod(plan.MonthlyAmount, 50))
			assert.Zero(t, math.Mod(plan.TotalPrice, 50))

			// Financing covers principal plus profit.
			paid := plan.AdvanceAmount + plan.MonthlyAmount*float64(plan.Months)
			assert.GreaterOrEqual(t, paid, tc.price,
				"category=%s price=%.0f months=%d", tc.category, tc.price, plan.Months)
		}
	}
}

func TestRoundUp50(t *testing.T) {
	assert.Equal(t, 0.0, RoundUp50(0))
	assert.Equal(t, 50.0, RoundUp50(1))
	assert.Equal(t, 50.0, RoundUp50(50))
	assert.Equal(t, 100.0, RoundUp50(50.01))
	assert.Equal(t, 300.0, RoundUp50(283.33))
}
