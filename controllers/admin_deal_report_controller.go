package controllers

import (
	"fmt"
	"time"

	"github.com/asadullah-yousuf/QistKart/config"
	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/asadullah-yousuf/QistKart/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// Admin: Download deals report as Excel
func DownloadDealsReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadDealsReportExcel called")

	scope := c.DefaultQuery("scope", "all")
	now := time.Now()

	query := config.DB.Preload("Product").Preload("Installments").Order("created_at DESC")
	switch scope {
	case "all":
	case "active":
		query = query.Where("active = ?", true)
	case "expired":
		query = query.Where("end_date < ?", now)
	default:
		utils.LogError("Invalid scope specified: %s", scope)
		utils.BadRequest(c, "Invalid scope", "Scope must be all, active, or expired")
		return
	}

	var deals []models.Deal
	if err := query.Find(&deals).Error; err != nil {
		utils.LogError("Failed to fetch deals: %v", err)
		utils.InternalServerError(c, "Failed to fetch deals", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d deals for Excel report", len(deals))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Deals Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("QISTKART - Deals Report")
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Generated: " + now.Format("2006-01-02 15:04"))
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Scope: " + scope)
	sheet.AddRow() // spacing

	headerRow := sheet.AddRow()
	for _, header := range []string{"Deal ID", "Name", "Product", "Start", "End", "Active", "Expired", "Terms", "Min Advance", "Max Total"} {
		cell := headerRow.AddCell()
		cell.SetString(header)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, deal := range deals {
		minAdvance, maxTotal := 0.0, 0.0
		for i, inst := range deal.Installments {
			if i == 0 || inst.AdvanceAmount < minAdvance {
				minAdvance = inst.AdvanceAmount
			}
			if inst.TotalPrice > maxTotal {
				maxTotal = inst.TotalPrice
			}
		}

		row := sheet.AddRow()
		row.AddCell().SetInt(int(deal.ID))
		row.AddCell().SetString(deal.Name)
		row.AddCell().SetString(deal.Product.Name)
		row.AddCell().SetString(deal.StartDate.Format("2006-01-02"))
		row.AddCell().SetString(deal.EndDate.Format("2006-01-02"))
		row.AddCell().SetBool(deal.Active)
		row.AddCell().SetBool(deal.EndDate.Before(now))
		row.AddCell().SetInt(len(deal.Installments))
		row.AddCell().SetFloat(minAdvance)
		row.AddCell().SetFloat(maxTotal)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=deals_report_%s.xlsx", scope))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated deals report, scope %s", scope)
}
