package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentflow-backend/internal/auth"
	"rentflow-backend/internal/cache"
	"rentflow-backend/internal/config"
	"rentflow-backend/internal/database"
	"rentflow-backend/internal/db"
	"rentflow-backend/internal/handlers"
	"rentflow-backend/internal/health"
	h "rentflow-backend/internal/http"
	"rentflow-backend/internal/middleware"
	"rentflow-backend/internal/monitoring"
	"rentflow-backend/internal/repositories"
	"rentflow-backend/internal/services"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional. Summaries and rent rolls fall back to the database
	// when it is down.
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("[Redis] Cache unavailable: %v", err)
	} else {
		log.Println("[Redis] Cache connected")
	}

	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool)
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrator.RunMigrations(migrateCtx); err != nil {
		cancelMigrate()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancelMigrate()

	healthChecker := health.NewHealthChecker(pool)

	if cfg.Monitoring.Enabled {
		go monitoring.NewServer(pool, cfg.Monitoring.Port).Start()
	}

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	leaseRepo := repositories.NewLeaseRepository(pool)
	scheduleRepo := repositories.NewPaymentScheduleRepository(pool)
	changeRequestRepo := repositories.NewScheduleChangeRequestRepository(pool)
	ruleRepo := repositories.NewLateFeeRuleRepository(pool)
	ledgerRepo := repositories.NewRentLedgerRepository(pool)
	prorationRepo := repositories.NewProrationRuleRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	maintenanceRepo := repositories.NewMaintenanceRequestRepository(pool)
	vendorRepo := repositories.NewVendorRepository(pool)
	settingRepo := repositories.NewSystemSettingRepository(pool)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	leaseService := services.NewLeaseService(leaseRepo)
	scheduleService := services.NewPaymentScheduleService(scheduleRepo, leaseRepo, changeRequestRepo)
	lateFeeRuleService := services.NewLateFeeRuleService(ruleRepo, leaseRepo)
	ledgerService := services.NewRentLedgerService(ledgerRepo, leaseRepo, ruleRepo)
	prorationService := services.NewProrationService(prorationRepo, leaseRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, leaseRepo)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, leaseRepo, vendorRepo)
	settingService := services.NewSystemSettingService(settingRepo)
	reportService := services.NewReportService(leaseRepo, ledgerRepo)
	billingCycleService := services.NewBillingCycleService(
		leaseRepo,
		scheduleRepo,
		ledgerRepo,
		ruleRepo,
		prorationRepo,
		settingService,
		cfg.Billing.CronSpec,
	)

	if err := billingCycleService.Start(); err != nil {
		log.Fatalf("Failed to start billing cycle: %v", err)
	}
	defer billingCycleService.Stop()

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	leaseHandler := handlers.NewLeaseHandler(leaseService)
	scheduleHandler := handlers.NewPaymentScheduleHandler(scheduleService)
	lateFeeRuleHandler := handlers.NewLateFeeRuleHandler(lateFeeRuleService, ledgerService)
	ledgerHandler := handlers.NewRentLedgerHandler(ledgerService)
	prorationHandler := handlers.NewProrationHandler(prorationService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)
	settingHandler := handlers.NewSystemSettingHandler(settingService)
	reportHandler := handlers.NewReportHandler(reportService)
	billingCycleHandler := handlers.NewBillingCycleHandler(billingCycleService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		userHandler,
		leaseHandler,
		scheduleHandler,
		lateFeeRuleHandler,
		ledgerHandler,
		prorationHandler,
		invoiceHandler,
		maintenanceHandler,
		settingHandler,
		reportHandler,
		billingCycleHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.RequestLogging(
			middleware.MetricsMiddleware(
				corsMiddleware(router),
			),
		),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
