package controllers

import (
	"strconv"

	"github.com/asadullah-yousuf/QistKart/config"
	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/asadullah-yousuf/QistKart/utils"
	"github.com/gin-gonic/gin"
)

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory creates a new category
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", err.Error())
		return
	}

	utils.Created(c, "Category created successfully", category)
}

// GetCategories lists categories with pagination
func GetCategories(c *gin.Context) {
	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Category{}).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count categories", err.Error())
		return
	}
	pagination.SetTotal(total)

	var categories []models.Category
	if err := config.DB.Offset(pagination.Offset).Limit(pagination.Limit).Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}

	utils.SendPaginatedResponse(c, categories, pagination)
}

// UpdateCategory updates a category's name and description
func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")

	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Blocked     *bool  `json:"blocked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if req.Blocked != nil {
		category.Blocked = *req.Blocked
	}
	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to update category: %v", err)
		utils.InternalServerError(c, "Failed to update category", err.Error())
		return
	}

	utils.Success(c, "Category updated successfully", category)
}

// DeleteCategory deletes a category with no products
func DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category id", nil)
		return
	}

	var productCount int64
	if err := config.DB.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		utils.InternalServerError(c, "Failed to check category usage", err.Error())
		return
	}
	if productCount > 0 {
		utils.Conflict(c, "Category still has products", nil)
		return
	}

	result := config.DB.Delete(&models.Category{}, id)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete category", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Category not found")
		return
	}

	utils.Success(c, "Category deleted successfully", nil)
}

// CreateDefaultCategory creates a default category if none exists
func CreateDefaultCategory() error {
	var count int64
	if err := config.DB.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	category := models.Category{
		Name:        "Mobiles",
		Description: "Mobile phones available on installments",
	}
	if err := config.DB.Create(&category).Error; err != nil {
		return err
	}
	utils.LogInfo("Created default category: %s", category.Name)
	return nil
}
