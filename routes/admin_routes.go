package routes

import (
	"github.com/asadullah-yousuf/QistKart/controllers"
	"github.com/asadullah-yousuf/QistKart/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", controllers.AdminLogin)

		// Protected admin routes
		admin.Use(middleware.AdminAuthMiddleware())
		{
			// Category management
			admin.POST("/categories", controllers.CreateCategory)
			admin.GET("/categories", controllers.GetCategories)
			admin.PUT("/categories/:id", controllers.UpdateCategory)
			admin.DELETE("/categories/:id", controllers.DeleteCategory)

			// Product management
			admin.POST("/products", controllers.CreateProduct)
			admin.GET("/products", controllers.GetProducts)

			// Deal management
			admin.POST("/deals", controllers.CreateDeal)
			admin.GET("/deals", controllers.ListDeals)
			admin.GET("/deals/report", controllers.DownloadDealsReportExcel)
			admin.GET("/deals/:id", controllers.GetDeal)
			admin.PUT("/deals/:id", controllers.UpdateDeal)
			admin.PATCH("/deals/:id/toggle", controllers.ToggleDeal)
			admin.DELETE("/deals/:id", controllers.DeleteDeal)

			// Per-product deal bindings
			admin.POST("/deals/:id/products", controllers.CreateProductDeal)
			admin.PUT("/product-deals/:id", controllers.UpdateProductDeal)
			admin.DELETE("/product-deals/:id", controllers.DeleteProductDeal)
		}
	}
}
