package services

import "fmt"

// ValidationError reports a malformed field before any store mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NoPlanAvailableError is returned when no bracket table covers a
// category/price combination.
type NoPlanAvailableError struct {
	Category string
	Price    float64
}

func (e *NoPlanAvailableError) Error() string {
	return fmt.Sprintf("no installment plan available for category %q at price %.2f", e.Category, e.Price)
}

// DealConflictError is returned when a product already has another active
// deal bound to it.
type DealConflictError struct {
	ProductID uint
}

func (e *DealConflictError) Error() string {
	return fmt.Sprintf("product %d already has an active deal", e.ProductID)
}

// DealActivationFailedError wraps a storage failure that aborted a
// lifecycle transition. The transaction rolled back, so a retry is safe.
type DealActivationFailedError struct {
	DealID uint
	Err    error
}

func (e *DealActivationFailedError) Error() string {
	return fmt.Sprintf("deal %d activation failed: %v", e.DealID, e.Err)
}

func (e *DealActivationFailedError) Unwrap() error {
	return e.Err
}
