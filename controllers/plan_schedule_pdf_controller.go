package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/asadullah-yousuf/QistKart/config"
	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/asadullah-yousuf/QistKart/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadPlanSchedulePDF renders a product's active installment plans as
// a printable schedule.
func DownloadPlanSchedulePDF(c *gin.Context) {
	utils.LogInfo("DownloadPlanSchedulePDF called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product id", nil)
		return
	}

	var product models.Product
	err = config.DB.Preload("Category").
		Preload("Plans", "active = ?", true).
		First(&product, id).Error
	if err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "QistKart")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Installments made simple")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "INSTALLMENT SCHEDULE")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, "Product: "+product.Name)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Category: "+product.Category.Name)
	pdf.Ln(6)
	pdf.Cell(100, 8, fmt.Sprintf("Cash Price: %.0f", product.Price))
	if product.HasActiveDeal {
		pdf.Ln(6)
		pdf.Cell(100, 8, "Promotional pricing in effect")
	}
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(30, 8, "Months", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Advance", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Monthly", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	for _, plan := range product.Plans {
		pdf.CellFormat(30, 8, strconv.Itoa(plan.Months), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.0f", plan.AdvanceAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.0f", plan.MonthlyAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.0f", plan.TotalPrice), "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to render schedule PDF: %v", err)
		utils.InternalServerError(c, "Failed to render PDF", err.Error())
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=installment_schedule_%d.pdf", product.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
