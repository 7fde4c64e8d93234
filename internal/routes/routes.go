package routes

import (
	"github.com/gin-gonic/gin"

	"telshop/internal/authz"
	"telshop/internal/handlers"
	"telshop/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	creditHandler *handlers.CreditHandler,
	productHandler *handlers.ProductHandler,
	saleHandler *handlers.SaleHandler,
	phoneHandler *handlers.PhoneHandler,
	repairHandler *handlers.RepairHandler,
	supplierHandler *handlers.SupplierHandler,
	expenseHandler *handlers.ExpenseHandler,
	reportHandler *handlers.ReportHandler,
	jwtSecret []byte,
) *gin.Engine {

	// ---- public
	r.POST("/auth/token", authHandler.IssueToken)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))
	r.Use(middleware.DeleteGuard())

	// CREDITS
	credits := r.Group("/credits")
	{
		credits.GET("/summary", creditHandler.Summary)
		credits.POST("/clients", creditHandler.CreateClient)
		credits.GET("/clients", creditHandler.ListClients)
		credits.GET("/clients/:id", creditHandler.GetClient)
		credits.PUT("/clients/:id", creditHandler.UpdateClient)
		credits.DELETE("/clients/:id", creditHandler.DeleteClient)
		credits.POST("/clients/:id/payments", creditHandler.AddPayment)
		credits.GET("/clients/:id/payments", creditHandler.PaymentHistory)
		credits.GET("/clients/:id/statement", creditHandler.Statement)
	}

	// PRODUCTS
	products := r.Group("/products")
	{
		products.POST("/", productHandler.Create)
		products.GET("/", productHandler.List)
		products.GET("/lookup", productHandler.Lookup)
		products.GET("/low-stock", productHandler.ListLowStock)
		products.GET("/:id", productHandler.GetByID)
		products.PUT("/:id", productHandler.Update)
		products.DELETE("/:id", productHandler.Delete)
	}

	// SALES
	sales := r.Group("/sales")
	{
		sales.POST("/", saleHandler.Create)
		sales.GET("/", saleHandler.List)
		sales.GET("/:id", saleHandler.GetByID)
	}

	// PHONES
	phones := r.Group("/phones")
	{
		phones.POST("/", phoneHandler.Create)
		phones.GET("/", phoneHandler.List)
		phones.GET("/:id", phoneHandler.GetByID)
		phones.GET("/:id/warranty", phoneHandler.Warranty)
		phones.PUT("/:id", phoneHandler.Update)
		phones.DELETE("/:id", phoneHandler.Delete)
	}

	// REPAIRS
	repairs := r.Group("/repairs")
	{
		repairs.POST("/", repairHandler.Create)
		repairs.GET("/", repairHandler.List)
		repairs.GET("/:id", repairHandler.GetByID)
		repairs.PUT("/:id", repairHandler.Update)
		repairs.DELETE("/:id", repairHandler.Delete)
	}

	// SUPPLIERS (admin only: the payables book is not for cashiers)
	suppliers := r.Group("/suppliers", middleware.RequireRoles(authz.RoleAdmin))
	{
		suppliers.POST("/", supplierHandler.Create)
		suppliers.GET("/", supplierHandler.List)
		suppliers.GET("/:id", supplierHandler.GetByID)
		suppliers.PUT("/:id", supplierHandler.Update)
		suppliers.POST("/:id/pay", supplierHandler.MarkPaid)
		suppliers.DELETE("/:id", supplierHandler.Delete)
	}

	// EXPENSES (admin only)
	expenses := r.Group("/expenses", middleware.RequireRoles(authz.RoleAdmin))
	{
		expenses.POST("/", expenseHandler.Create)
		expenses.GET("/", expenseHandler.List)
		expenses.GET("/:id", expenseHandler.GetByID)
		expenses.PUT("/:id", expenseHandler.Update)
		expenses.DELETE("/:id", expenseHandler.Delete)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/summary", reportHandler.Summary)
	}

	return r
}
