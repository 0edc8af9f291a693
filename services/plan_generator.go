package services

import (
	"math"
	"strings"
)

// PlanTemplate holds the derived amounts for one installment term. It is
// plain data, unattached to any product until persisted.
type PlanTemplate struct {
	Months        int     `json:"months"`
	AdvanceAmount float64 `json:"advance_amount"`
	MonthlyAmount float64 `json:"monthly_amount"`
	TotalPrice    float64 `json:"total_price"`
}

type planTerm struct {
	months          int
	profitFraction  float64
	advanceFraction float64
}

// Fixed bracket policy. Terms are listed ascending and generated in this
// order. These fractions are business constants, not configuration.
var (
	mobilesBaseTerms = []planTerm{
		{3, 0.20, 0.35},
		{6, 0.25, 0.30},
		{9, 0.30, 0.25},
		{12, 0.35, 0.20},
	}
	mobilesMidTerms = []planTerm{
		{3, 0.20, 0.40},
		{6, 0.25, 0.35},
		{9, 0.30, 0.30},
		{12, 0.35, 0.25},
	}
	premiumTerms = []planTerm{
		{3, 0.20, 0.40},
		{6, 0.25, 0.35},
		{9, 0.30, 0.30},
		{12, 0.35, 0.30},
		{24, 0.45, 0.25},
	}
)

const (
	mobilesCategory  = "mobiles"
	mobilesBaseLimit = 50000
	mobilesMidLimit  = 100000
)

// RoundUp50 rounds x up to the next multiple of 50. Every derived amount
// goes through this independently, so totals are not the sum of unrounded
// figures.
func RoundUp50(x float64) float64 {
	return math.Ceil(x/50) * 50
}

// GeneratePlans derives the installment plan set for a category name and
// price. Pure and deterministic; returns NoPlanAvailableError when no
// bracket covers the combination.
func GeneratePlans(category string, price float64) ([]PlanTemplate, error) {
	terms := bracketTerms(category, price)
	if terms == nil {
		return nil, &NoPlanAvailableError{Category: category, Price: price}
	}

	plans := make([]PlanTemplate, 0, len(terms))
	for _, term := range terms {
		profit := RoundUp50(price * term.profitFraction)
		advance := RoundUp50(price * term.advanceFraction)
		monthly := RoundUp50((price + profit - advance) / float64(term.months))
		total := RoundUp50(advance + monthly*float64(term.months))
		plans = append(plans, PlanTemplate{
			Months:        term.months,
			AdvanceAmount: advance,
			MonthlyAmount: monthly,
			TotalPrice:    total,
		})
	}
	return plans, nil
}

// bracketTerms selects the term table for a category/price pair. Above the
// mid limit the bracket is price-driven regardless of category.
func bracketTerms(category string, price float64) []planTerm {
	if price > mobilesMidLimit {
		return premiumTerms
	}
	if strings.EqualFold(strings.TrimSpace(category), mobilesCategory) {
		if price <= mobilesBaseLimit {
			return mobilesBaseTerms
		}
		return mobilesMidTerms
	}
	return nil
}
