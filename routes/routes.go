package routes

import (
	"commerce-backend/controllers"
	"commerce-backend/middleware"
	"commerce-backend/models"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth          *controllers.AuthController
	Orders        *controllers.OrderController
	Products      *controllers.ProductController
	Categories    *controllers.CategoryController
	Customers     *controllers.CustomerController
	Notifications *controllers.NotificationController
}

// Register mounts all route groups on the engine.
func Register(r *gin.Engine, c Controllers, jwtSecret []byte) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	authRoutes := r.Group("/auth")
	authRoutes.Use(middleware.RateLimitMiddleware())
	authRoutes.POST("/register", c.Auth.Register)
	authRoutes.POST("/login", c.Auth.Login)

	authed := middleware.AuthMiddleware(jwtSecret)

	// Catalog reads are public, writes are gated.
	productRoutes := r.Group("/products")
	productRoutes.GET("", c.Products.GetProducts)
	productRoutes.GET("/:id", c.Products.GetProductByID)

	productAdmin := r.Group("/products")
	productAdmin.Use(authed, middleware.RequireRole(models.RoleAdmin, models.RoleProductManager))
	productAdmin.POST("", c.Products.CreateProduct)
	productAdmin.PATCH("/:id", c.Products.UpdateProduct)
	productAdmin.DELETE("/:id", c.Products.DeleteProduct)

	categoryRoutes := r.Group("/categories")
	categoryRoutes.GET("", c.Categories.GetCategories)
	categoryRoutes.GET("/:id", c.Categories.GetCategoryByID)

	categoryAdmin := r.Group("/categories")
	categoryAdmin.Use(authed, middleware.RequireRole(models.RoleAdmin, models.RoleProductManager))
	categoryAdmin.POST("", c.Categories.CreateCategory)
	categoryAdmin.PATCH("/:id/parent", c.Categories.ReparentCategory)
	categoryAdmin.DELETE("/:id", c.Categories.DeleteCategory)

	orderRoutes := r.Group("/orders")
	orderRoutes.Use(authed)
	orderRoutes.POST("", c.Orders.CreateOrder)
	orderRoutes.GET("", c.Orders.GetOrders)
	orderRoutes.GET("/:id", c.Orders.GetOrderByID)
	orderRoutes.POST("/:id/items", c.Orders.AddItem)
	orderRoutes.DELETE("/:id/items/:itemId", c.Orders.RemoveItem)
	orderRoutes.POST("/:id/cancel", c.Orders.CancelOrder)

	customerRoutes := r.Group("/customers")
	customerRoutes.Use(authed)
	customerRoutes.GET("/me", c.Customers.GetProfile)

	adminRoutes := r.Group("/admin")
	adminRoutes.Use(authed)
	adminRoutes.GET("/orders",
		middleware.RequireRole(models.RoleAdmin, models.RoleOrderManager), c.Orders.GetAllOrders)
	adminRoutes.PATCH("/orders/:id/status",
		middleware.RequireRole(models.RoleAdmin, models.RoleOrderManager), c.Orders.UpdateStatus)
	adminRoutes.GET("/notifications",
		middleware.RequireRole(models.RoleAdmin), c.Notifications.GetLogs)
}
