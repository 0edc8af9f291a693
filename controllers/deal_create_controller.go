package controllers

import (
	"time"

	"github.com/asadullah-yousuf/QistKart/config"
	"github.com/asadullah-yousuf/QistKart/services"
	"github.com/asadullah-yousuf/QistKart/utils"
	"github.com/gin-gonic/gin"
)

// CreateDealRequest represents the request body for creating a new deal
type CreateDealRequest struct {
	Name         string                       `json:"name" binding:"required"`
	StartDate    string                       `json:"start_date" binding:"required"` // RFC3339
	EndDate      string                       `json:"end_date" binding:"required"`
	ProductID    uint                         `json:"product_id" binding:"required"`
	Active       bool                         `json:"active"`
	Installments []InstallmentTemplateRequest `json:"installments"`
}

// CreateDeal creates a deal and, when requested active, swaps its plan set
// in for the product's standard plans.
func CreateDeal(c *gin.Context) {
	utils.LogInfo("CreateDeal called")

	var req CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	start, err1 := time.Parse(time.RFC3339, req.StartDate)
	end, err2 := time.Parse(time.RFC3339, req.EndDate)
	if err1 != nil || err2 != nil {
		utils.LogError("Invalid date format in deal create request")
		utils.BadRequest(c, "Invalid date format. Use RFC3339.", nil)
		return
	}

	svc := services.NewDealService(config.DB)
	deal, err := svc.CreateDeal(services.DealInput{
		Name:         req.Name,
		StartDate:    start,
		EndDate:      end,
		ProductID:    req.ProductID,
		Active:       req.Active,
		Installments: toPlanTemplates(req.Installments),
	})
	if err != nil {
		handleDealError(c, err)
		return
	}

	utils.Created(c, "Deal created successfully", dealResponse(deal))
}
