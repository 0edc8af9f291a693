package controllers

import (
	"strconv"
	"time"

	"github.com/asadullah-yousuf/QistKart/config"
	"github.com/asadullah-yousuf/QistKart/services"
	"github.com/asadullah-yousuf/QistKart/utils"
	"github.com/gin-gonic/gin"
)

// UpdateDealRequest represents the request body for updating a deal
type UpdateDealRequest struct {
	Name         string                       `json:"name"`
	StartDate    string                       `json:"start_date"`
	EndDate      string                       `json:"end_date"`
	Active       *bool                        `json:"active"`
	Installments []InstallmentTemplateRequest `json:"installments"`
}

// UpdateDeal replaces a deal's installment templates and re-applies its
// activation state.
func UpdateDeal(c *gin.Context) {
	utils.LogInfo("UpdateDeal called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid deal id", nil)
		return
	}

	var req UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	input := services.DealUpdateInput{
		Name:         req.Name,
		Active:       req.Active,
		Installments: toPlanTemplates(req.Installments),
	}
	if req.StartDate != "" {
		t, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			utils.BadRequest(c, "Invalid start_date format. Use RFC3339.", nil)
			return
		}
		input.StartDate = t
	}
	if req.EndDate != "" {
		t, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			utils.BadRequest(c, "Invalid end_date format. Use RFC3339.", nil)
			return
		}
		input.EndDate = t
	}

	svc := services.NewDealService(config.DB)
	deal, err := svc.UpdateDeal(uint(id), input)
	if err != nil {
		handleDealError(c, err)
		return
	}

	utils.Success(c, "Deal updated successfully", dealResponse(deal))
}

// ToggleDealRequest represents the toggle request body
type ToggleDealRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ToggleDeal switches a deal between active and inactive. Toggling to the
// current state is a no-op.
func ToggleDeal(c *gin.Context) {
	utils.LogInfo("ToggleDeal called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid deal id", nil)
		return
	}

	var req ToggleDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	svc := services.NewDealService(config.DB)
	deal, err := svc.ToggleDeal(uint(id), *req.Active)
	if err != nil {
		handleDealError(c, err)
		return
	}

	utils.Success(c, "Deal toggled successfully", dealResponse(deal))
}
