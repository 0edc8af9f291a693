package controllers

import (
	"errors"
	"time"

	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/asadullah-yousuf/QistKart/services"
	"github.com/asadullah-yousuf/QistKart/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InstallmentTemplateRequest is the plan shape callers may supply
// explicitly. When omitted the plan generator derives the set from the
// product's price and category.
type InstallmentTemplateRequest struct {
	Months        int     `json:"months" binding:"required,gt=0"`
	AdvanceAmount float64 `json:"advance_amount" binding:"gte=0"`
	MonthlyAmount float64 `json:"monthly_amount" binding:"gte=0"`
	TotalPrice    float64 `json:"total_price" binding:"gte=0"`
}

func toPlanTemplates(reqs []InstallmentTemplateRequest) []services.PlanTemplate {
	templates := make([]services.PlanTemplate, 0, len(reqs))
	for _, r := range reqs {
		templates = append(templates, services.PlanTemplate{
			Months:        r.Months,
			AdvanceAmount: r.AdvanceAmount,
			MonthlyAmount: r.MonthlyAmount,
			TotalPrice:    r.TotalPrice,
		})
	}
	return templates
}

// handleDealError maps the service error taxonomy onto HTTP responses.
func handleDealError(c *gin.Context, err error) {
	var validation *services.ValidationError
	var noPlan *services.NoPlanAvailableError
	var conflict *services.DealConflictError
	var activation *services.DealActivationFailedError

	switch {
	case errors.As(err, &validation):
		utils.BadRequest(c, validation.Error(), nil)
	case errors.As(err, &noPlan):
		utils.ValidationError(c, noPlan.Error(), nil)
	case errors.As(err, &conflict):
		utils.Conflict(c, conflict.Error(), nil)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.NotFound(c, "Record not found")
	case errors.As(err, &activation):
		utils.LogError("Deal transition rolled back: %v", activation)
		utils.InternalServerError(c, "Deal activation failed, safe to retry", activation.Error())
	default:
		utils.LogError("Unexpected deal error: %v", err)
		utils.InternalServerError(c, "Something went wrong", err.Error())
	}
}

func dealResponse(deal *models.Deal) gin.H {
	return gin.H{
		"id":           deal.ID,
		"name":         deal.Name,
		"start_date":   deal.StartDate.Format(time.RFC3339),
		"end_date":     deal.EndDate.Format(time.RFC3339),
		"product_id":   deal.ProductID,
		"active":       deal.Active,
		"installments": deal.Installments,
	}
}
