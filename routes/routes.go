package routes

import (
	"github.com/asadullah-yousuf/QistKart/controllers"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1")
	{
		// Public catalog routes
		api.GET("/categories", controllers.GetCategories)
		api.GET("/products", controllers.GetProducts)
		api.GET("/products/:id", controllers.GetProductDetails)
		api.GET("/products/:id/plans", controllers.GetProductPlans)
		api.GET("/products/:id/plans/pdf", controllers.DownloadPlanSchedulePDF)

		initAdminRoutes(api)
	}

	return router
}
