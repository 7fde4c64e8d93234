package app

import (
	"database/sql"
	"fmt"
	"log"

	"telshop/internal/config"
	"telshop/internal/handlers"
	"telshop/internal/pdf"
	"telshop/internal/repositories"
	"telshop/internal/routes"
	"telshop/internal/scheduler"
	"telshop/internal/services"
	"telshop/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "telshop/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("DB close failed: %v", err)
		}
	}()

	// === Repos ===
	creditRepo := repositories.NewCreditRepository(db)
	productRepo := repositories.NewProductRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	phoneRepo := repositories.NewPhoneRepository(db)
	repairRepo := repositories.NewRepairRepository(db)
	supplierRepo := repositories.NewSupplierRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)

	// === Services ===
	creditService := services.NewCreditService(creditRepo)
	productService := services.NewProductService(productRepo)
	saleService := services.NewSaleService(saleRepo)
	phoneService := services.NewPhoneService(phoneRepo)
	repairService := services.NewRepairService(repairRepo)
	supplierService := services.NewSupplierService(supplierRepo)
	expenseService := services.NewExpenseService(expenseRepo)
	reportService := services.NewReportService(saleRepo, phoneRepo, expenseRepo, productRepo, creditRepo, supplierRepo)

	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	telegramService := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	smsClient := utils.NewSMSClient(cfg.SMS.APIKey, cfg.SMS.APIURL, cfg.SMS.SenderID, cfg.SMS.DryRun)

	reminderService := services.NewReminderService(
		creditService,
		emailService,
		telegramService,
		smsClient,
		cfg.Reminder.OwnerEmail,
		cfg.Reminder.SendSMS,
	)

	// PDF generator needs a TTF with full latin coverage, see config files.font_path
	pdfGen := pdf.NewDocumentGenerator(cfg.Files.RootDir, cfg.Files.FontPath)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(cfg.Auth)
	creditHandler := handlers.NewCreditHandler(creditService, pdfGen)
	productHandler := handlers.NewProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService)
	phoneHandler := handlers.NewPhoneHandler(phoneService, pdfGen)
	repairHandler := handlers.NewRepairHandler(repairService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Scheduler ===
	sched := scheduler.New(cfg.Reminder.Schedule, reminderService)
	if err := sched.Start(); err != nil {
		log.Fatal("Scheduler start failed: ", err)
	}
	defer sched.Stop()

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		creditHandler,
		productHandler,
		saleHandler,
		phoneHandler,
		repairHandler,
		supplierHandler,
		expenseHandler,
		reportHandler,
		[]byte(cfg.Auth.JWTSecret),
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
