package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rentflow-backend/internal/handlers"
	"rentflow-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	leaseHandler *handlers.LeaseHandler,
	scheduleHandler *handlers.PaymentScheduleHandler,
	lateFeeRuleHandler *handlers.LateFeeRuleHandler,
	ledgerHandler *handlers.RentLedgerHandler,
	prorationHandler *handlers.ProrationHandler,
	invoiceHandler *handlers.InvoiceHandler,
	maintenanceHandler *handlers.MaintenanceHandler,
	systemSettingHandler *handlers.SystemSettingHandler,
	reportHandler *handlers.ReportHandler,
	billingCycleHandler *handlers.BillingCycleHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.CreateUser)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.GetUser)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/{id}/role", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.UpdateRole)).ServeHTTP).Methods("PUT")
	usersAPI.HandleFunc("/{id}/active", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.SetActive)).ServeHTTP).Methods("PATCH")

	// Protected API routes - Leases (managers and admins create and update)
	leasesAPI := r.PathPrefix("/api/leases").Subrouter()
	leasesAPI.Use(authMiddleware.Authenticate)
	leasesAPI.HandleFunc("", authMiddleware.RequireRole("manager", "admin")(http.HandlerFunc(leaseHandler.CreateLease)).ServeHTTP).Methods("POST")
	leasesAPI.HandleFunc("", leaseHandler.ListLeases).Methods("GET")
	leasesAPI.HandleFunc("/{id}", leaseHandler.GetLease).Methods("GET")
	leasesAPI.HandleFunc("/{id}", authMiddleware.RequireRole("manager", "admin")(http.HandlerFunc(leaseHandler.UpdateLease)).ServeHTTP).Methods("PUT")

	// Protected API routes - Payment Schedules
	schedulesAPI := r.PathPrefix("/api/schedules").Subrouter()
	schedulesAPI.Use(authMiddleware.Authenticate)
	schedulesAPI.HandleFunc("", authMiddleware.RequireRole("manager", "admin")(http.HandlerFunc(scheduleHandler.CreateSchedule)).ServeHTTP).Methods("POST")
	schedulesAPI.HandleFunc("/weekly-plan", authMiddleware.RequireRole("manager", "admin")(http.HandlerFunc(scheduleHandler.CreateWeeklyPlan)).ServeHTTP).Methods("POST")
	schedulesAPI.HandleFunc("/change-requests", scheduleHandler.CreateChangeRequest).Methods("POST")
	schedulesAPI.HandleFunc("/change-requests", scheduleHandler.ListChangeRequests).Methods("GET")
	schedulesAPI.HandleFunc("/change-requests/{id}/review", authMiddleware.RequireRole("manager", "admin")(http.HandlerFunc(scheduleHandler.ReviewChangeRequest)).ServeHTTP).Methods("POST")
	schedulesAPI.HandleFunc("/lease/{leaseId}", scheduleHandler.ListByLease).Methods("GET")
	schedulesAPI.HandleFunc("/{id}", scheduleHandler.GetSchedule).Methods("GET")
	schedulesAPI.HandleFunc("/{id}", authMiddleware.RequireRole("manager", "admin")(http.HandlerFunc(scheduleHandler.DeactivateSchedule)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Late Fee Rules
	lateFeeRulesAPI := r.PathPrefix("/api/late-fee-rules").Subrouter()
	lateFeeRulesAPI.Use(authMiddleware.Authenticate)
	lateFeeRulesAPI.HandleFunc("", authMiddleware.RequireRole("manager", "admin")(http.HandlerFunc(lateFeeRuleHandler.CreateRule)).ServeHTTP).Methods("POST")
	lateFeeRulesAPI.HandleFunc("", lateFeeRuleHandler.ListRules).Methods("GET")
	lateFeeRulesAPI.HandleFunc("/lease/{leaseId}/resolve", lateFeeRuleHandler.ResolveForLease).Methods("GET")
	lateFeeRulesAPI.HandleFunc("/{id}", lateFeeRuleHandler.GetRule).Methods("GET")
	lateFeeRulesAPI.HandleFunc("/{id}", authMiddleware.RequireRole("manager", "admin")(http.HandlerFunc(lateFeeRuleHandler.UpdateRule)).ServeHTTP).Methods("PUT")

	// Protected API routes - Rent Ledger (accountants record payments)
	ledgerAPI := r.PathPrefix("/api/ledger").Subrouter()
	ledgerAPI.Use(authMiddleware.Authenticate)
	ledgerAPI.HandleFunc("", authMiddleware.RequireRole("accountant", "manager", "admin")(http.HandlerFunc(ledgerHandler.CreateEntry)).ServeHTTP).Methods("POST")
	ledgerAPI.HandleFunc("", ledgerHandler.ListEntries).Methods("GET")
	ledgerAPI.HandleFunc("/summary/lease/{leaseId}", ledgerHandler.Summary).Methods("GET")
	ledgerAPI.HandleFunc("/{id}", ledgerHandler.GetEntry).Methods("GET")
	ledgerAPI.HandleFunc("/{id}/payment", authMiddleware.RequireRole("accountant", "manager", "admin")(http.HandlerFunc(ledgerHandler.RecordPayment)).ServeHTTP).Methods("POST")
	ledgerAPI.HandleFunc("/{id}/late-fee", authMiddleware.RequireRole("accountant", "manager", "admin")(http.HandlerFunc(ledgerHandler.AssessLateFee)).ServeHTTP).Methods("POST")

	// Protected API routes - Proration
	prorationAPI := r.PathPrefix("/api/proration").Subrouter()
	prorationAPI.Use(authMiddleware.Authenticate)
	prorationAPI.HandleFunc("/preview", prorationHandler.Preview).Methods("POST")
	prorationAPI.HandleFunc("/rules", authMiddleware.RequireRole("manager", "admin")(http.HandlerFunc(prorationHandler.UpsertRule)).ServeHTTP).Methods("PUT")
	prorationAPI.HandleFunc("/rules/lease/{leaseId}", prorationHandler.GetRuleForLease).Methods("GET")

	// Protected API routes - Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", authMiddleware.RequireRole("accountant", "manager", "admin")(http.HandlerFunc(invoiceHandler.CreateInvoice)).ServeHTTP).Methods("POST")
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/status", authMiddleware.RequireRole("accountant", "manager", "admin")(http.HandlerFunc(invoiceHandler.TransitionStatus)).ServeHTTP).Methods("PUT")

	// Protected API routes - Maintenance
	maintenanceAPI := r.PathPrefix("/api/maintenance").Subrouter()
	maintenanceAPI.Use(authMiddleware.Authenticate)
	maintenanceAPI.HandleFunc("/requests", maintenanceHandler.CreateRequest).Methods("POST")
	maintenanceAPI.HandleFunc("/requests", maintenanceHandler.ListRequests).Methods("GET")
	maintenanceAPI.HandleFunc("/requests/{id}", maintenanceHandler.GetRequest).Methods("GET")
	maintenanceAPI.HandleFunc("/requests/{id}", authMiddleware.RequireRole("manager", "admin")(http.HandlerFunc(maintenanceHandler.UpdateRequest)).ServeHTTP).Methods("PUT")
	maintenanceAPI.HandleFunc("/vendors", authMiddleware.RequireRole("manager", "admin")(http.HandlerFunc(maintenanceHandler.CreateVendor)).ServeHTTP).Methods("POST")
	maintenanceAPI.HandleFunc("/vendors", maintenanceHandler.ListVendors).Methods("GET")
	maintenanceAPI.HandleFunc("/vendors/{id}/active", authMiddleware.RequireRole("manager", "admin")(http.HandlerFunc(maintenanceHandler.SetVendorActive)).ServeHTTP).Methods("PATCH")

	// Protected API routes - System Settings (admin only)
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("", systemSettingHandler.ListSettings).Methods("GET")
	settingsAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(systemSettingHandler.UpdateSetting)).ServeHTTP).Methods("PUT")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/rent-roll", reportHandler.RentRoll).Methods("GET")
	reportsAPI.HandleFunc("/rent-roll.pdf", reportHandler.RentRollPDF).Methods("GET")
	reportsAPI.HandleFunc("/lease/{leaseId}/statement.pdf", reportHandler.LeaseStatementPDF).Methods("GET")
	reportsAPI.HandleFunc("/lease/{leaseId}/ledger.csv", reportHandler.LedgerCSV).Methods("GET")

	// Protected API routes - Billing Cycle (admin only)
	billingAPI := r.PathPrefix("/api/billing").Subrouter()
	billingAPI.Use(authMiddleware.Authenticate)
	billingAPI.HandleFunc("/run", authMiddleware.RequireAdmin(http.HandlerFunc(billingCycleHandler.RunNow)).ServeHTTP).Methods("POST")

	// Health endpoints (no auth required - for orchestrator probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
