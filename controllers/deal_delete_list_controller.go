package controllers

import (
	"strconv"

	"github.com/asadullah-yousuf/QistKart/config"
	"github.com/asadullah-yousuf/QistKart/services"
	"github.com/asadullah-yousuf/QistKart/utils"
	"github.com/gin-gonic/gin"
)

// DeleteDeal reverts an active deal and removes it with its installment
// templates.
func DeleteDeal(c *gin.Context) {
	utils.LogInfo("DeleteDeal called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid deal id", nil)
		return
	}

	svc := services.NewDealService(config.DB)
	if err := svc.DeleteDeal(uint(id)); err != nil {
		handleDealError(c, err)
		return
	}

	utils.Success(c, "Deal deleted successfully", nil)
}

// GetDeal returns a deal with its installment templates and product
// bindings.
func GetDeal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid deal id", nil)
		return
	}

	svc := services.NewDealService(config.DB)
	deal, err := svc.GetDeal(uint(id))
	if err != nil {
		handleDealError(c, err)
		return
	}

	utils.Success(c, "Deal details retrieved", gin.H{
		"deal":          dealResponse(deal),
		"product_deals": deal.ProductDeals,
	})
}

// ListDeals returns deals newest first, paginated. Expired deals are
// reconciled by the background sweeper, never on this read path.
func ListDeals(c *gin.Context) {
	pagination := utils.NewPagination(c)

	svc := services.NewDealService(config.DB)
	deals, total, err := svc.ListDeals(pagination.Offset, pagination.Limit)
	if err != nil {
		handleDealError(c, err)
		return
	}
	pagination.SetTotal(total)

	list := make([]gin.H, 0, len(deals))
	for i := range deals {
		list = append(list, dealResponse(&deals[i]))
	}
	utils.SendPaginatedResponse(c, list, pagination)
}
