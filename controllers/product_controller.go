package controllers

import (
	"strconv"

	"github.com/asadullah-yousuf/QistKart/config"
	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/asadullah-yousuf/QistKart/services"
	"github.com/asadullah-yousuf/QistKart/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	ImageURL    string  `json:"image_url"`
}

// CreateProduct creates a product and persists its standard installment
// plan set derived from price and category.
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	templates, err := services.GeneratePlans(category.Name, req.Price)
	if err != nil {
		handleDealError(c, err)
		return
	}

	var product models.Product
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		product = models.Product{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
			CategoryID:  category.ID,
			ImageURL:    req.ImageURL,
			IsActive:    true,
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		for _, tpl := range templates {
			plan := models.InstallmentPlan{
				ProductID:     product.ID,
				Months:        tpl.Months,
				AdvanceAmount: tpl.AdvanceAmount,
				MonthlyAmount: tpl.MonthlyAmount,
				TotalPrice:    tpl.TotalPrice,
				Active:        true,
			}
			if err := tx.Create(&plan).Error; err != nil {
				return err
			}
			product.Plans = append(product.Plans, plan)
		}
		return nil
	})
	if err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}

	utils.LogInfo("Created product %d with %d standard plans", product.ID, len(product.Plans))
	utils.Created(c, "Product created successfully", product)
}

// GetProducts lists active products with pagination
func GetProducts(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Product{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count products", err.Error())
		return
	}
	pagination.SetTotal(total)

	var products []models.Product
	err := query.Preload("Category").
		Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&products).Error
	if err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	utils.SendPaginatedResponse(c, products, pagination)
}

// GetProductDetails returns a product with its currently active
// installment plans.
func GetProductDetails(c *gin.Context) {
	var product models.Product
	err := config.DB.Preload("Category").
		Preload("Plans", "active = ?", true).
		First(&product, c.Param("id")).Error
	if err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	utils.Success(c, "Product details retrieved", product)
}

// GetProductPlans lists a product's installment plans. Only active plans
// are returned unless all=true.
func GetProductPlans(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product id", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	query := config.DB.Where("product_id = ?", id)
	if c.DefaultQuery("all", "false") != "true" {
		query = query.Where("active = ?", true)
	}

	var plans []models.InstallmentPlan
	if err := query.Order("months ASC").Find(&plans).Error; err != nil {
		utils.LogError("Failed to fetch plans for product %d: %v", id, err)
		utils.InternalServerError(c, "Failed to fetch plans", err.Error())
		return
	}

	utils.Success(c, "Plans retrieved", gin.H{
		"product_id":      product.ID,
		"has_active_deal": product.HasActiveDeal,
		"plans":           plans,
	})
}
