package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/slowlifemotors/garage-pos/internal/application/service"
	"github.com/slowlifemotors/garage-pos/internal/config"
	"github.com/slowlifemotors/garage-pos/internal/domain/pricing"
	"github.com/slowlifemotors/garage-pos/internal/infrastructure/database"
	"github.com/slowlifemotors/garage-pos/internal/infrastructure/repository"
	"github.com/slowlifemotors/garage-pos/internal/presentation/http/handler"
	"github.com/slowlifemotors/garage-pos/internal/presentation/http/routes"
	"github.com/slowlifemotors/garage-pos/pkg/random"
	"github.com/slowlifemotors/garage-pos/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	lineRepo := repository.NewOrderLineRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	modRepo := repository.NewModificationRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	paymentRepo := repository.NewStaffPaymentRepository(db)
	raffleRepo := repository.NewRaffleLogRepository(db)

	// Pricing rules from shop configuration
	rules := pricing.Rules{
		RaffleLabel:          cfg.Shop.RaffleTicketLabel,
		StaffDiscountPercent: cfg.Shop.StaffDiscountPercent,
		MembershipPercent:    cfg.Shop.MembershipPercent,
		BlacklistMultiplier:  cfg.Shop.BlacklistMultiplier,
	}

	// Initialize services
	authService := service.NewAuthService(staffRepo, jwtManager)
	checkoutService := service.NewCheckoutService(
		orderRepo, lineRepo, vehicleRepo, modRepo,
		discountRepo, customerRepo, staffRepo, raffleRepo,
		rules,
	)
	orderService := service.NewOrderService(orderRepo, lineRepo, discountRepo)
	payrollService := service.NewPayrollService(
		orderRepo, staffRepo, paymentRepo,
		cfg.Shop.RaffleTicketLabel, cfg.Shop.RaffleCommissionPercent,
	)
	raffleService := service.NewRaffleService(raffleRepo, random.NewCryptoSource())

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Order:   handler.NewOrderHandler(checkoutService, orderService),
		Payroll: handler.NewPayrollHandler(payrollService),
		Raffle:  handler.NewRaffleHandler(raffleService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
