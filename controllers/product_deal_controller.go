package controllers

import (
	"strconv"

	"github.com/asadullah-yousuf/QistKart/config"
	"github.com/asadullah-yousuf/QistKart/services"
	"github.com/asadullah-yousuf/QistKart/utils"
	"github.com/gin-gonic/gin"
)

// CreateProductDealRequest binds an extra product to a deal
type CreateProductDealRequest struct {
	ProductID    uint                         `json:"product_id" binding:"required"`
	Installments []InstallmentTemplateRequest `json:"installments"`
}

// CreateProductDeal binds a product to an existing deal with optional
// per-product plan overrides.
func CreateProductDeal(c *gin.Context) {
	utils.LogInfo("CreateProductDeal called")

	dealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid deal id", nil)
		return
	}

	var req CreateProductDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	svc := services.NewProductDealService(config.DB)
	pd, err := svc.CreateProductDeal(services.ProductDealInput{
		DealID:       uint(dealID),
		ProductID:    req.ProductID,
		Installments: toPlanTemplates(req.Installments),
	})
	if err != nil {
		handleDealError(c, err)
		return
	}

	utils.Created(c, "Product bound to deal", gin.H{
		"id":           pd.ID,
		"deal_id":      pd.DealID,
		"product_id":   pd.ProductID,
		"installments": pd.Installments,
	})
}

// UpdateProductDealRequest replaces a binding's plan overrides
type UpdateProductDealRequest struct {
	Installments []InstallmentTemplateRequest `json:"installments"`
}

// UpdateProductDeal replaces the binding's installment overrides. Under an
// active parent deal the product's plan set is re-materialized.
func UpdateProductDeal(c *gin.Context) {
	utils.LogInfo("UpdateProductDeal called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product deal id", nil)
		return
	}

	var req UpdateProductDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	svc := services.NewProductDealService(config.DB)
	pd, err := svc.UpdateProductDeal(uint(id), toPlanTemplates(req.Installments))
	if err != nil {
		handleDealError(c, err)
		return
	}

	utils.Success(c, "Product deal updated", gin.H{
		"id":           pd.ID,
		"deal_id":      pd.DealID,
		"product_id":   pd.ProductID,
		"installments": pd.Installments,
	})
}

// DeleteProductDeal removes a binding, reverting the product's plans when
// the parent deal is active.
func DeleteProductDeal(c *gin.Context) {
	utils.LogInfo("DeleteProductDeal called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product deal id", nil)
		return
	}

	svc := services.NewProductDealService(config.DB)
	if err := svc.DeleteProductDeal(uint(id)); err != nil {
		handleDealError(c, err)
		return
	}

	utils.Success(c, "Product deal removed", nil)
}
