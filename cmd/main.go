package main

import (
	"context"
	"net/http"
	"os"

	"github.com/fueldesk/fuel-manager/internal/auth"
	"github.com/fueldesk/fuel-manager/internal/db"
	"github.com/fueldesk/fuel-manager/internal/handlers"
	"github.com/fueldesk/fuel-manager/internal/ledger"
	"github.com/fueldesk/fuel-manager/internal/middleware"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded configuration from .env")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Info("Connected to MongoDB successfully!")

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "fuelmanager"
	}
	store := db.NewStore(client, dbName)

	if err := db.EnsureDefaultTanks(context.Background(), store.Tanks); err != nil {
		log.Fatalf("Failed to seed fuel tanks: %v", err)
	}

	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}
	ledgerService := ledger.NewService(store.Tanks, store.Transactions)

	authMw := middleware.NewAuthMiddleware(authService)
	rateLimit := middleware.NewRateLimitMiddleware()

	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(store)
	driversHandler := handlers.NewDriversHandler(store.Drivers, store.Transactions)
	trucksHandler := handlers.NewTrucksHandler(store.Trucks, store.Transactions)
	tanksHandler := handlers.NewTanksHandler(store.Tanks, ledgerService)
	transactionsHandler := handlers.NewTransactionsHandler(store.Transactions, ledgerService)
	reportsHandler := handlers.NewReportsHandler(store.Transactions)
	backupHandler := handlers.NewBackupHandler(store)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/api/auth/login", rateLimit.RateLimit(10, 60)(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("/api/auth/logout", authHandler.Logout)
	mux.Handle("/api/dashboard", authMw.RequirePermission("view_dashboard")(dashboardHandler))
	mux.Handle("/api/tanks", authMw.RequirePermission("view_fuel")(tanksHandler))
	mux.Handle("/api/tanks/", authMw.RequirePermission("view_fuel")(tanksHandler))
	mux.Handle("/api/transactions", authMw.RequirePermission("view_fuel")(transactionsHandler))
	mux.Handle("/api/drivers", authMw.RequirePermission("view_fuel")(driversHandler))
	mux.Handle("/api/drivers/", authMw.RequirePermission("view_fuel")(driversHandler))
	mux.Handle("/api/trucks", authMw.RequirePermission("view_fuel")(trucksHandler))
	mux.Handle("/api/trucks/", authMw.RequirePermission("view_fuel")(trucksHandler))
	mux.Handle("/api/reports", authMw.RequirePermission("view_reports")(reportsHandler))
	mux.Handle("/api/backup/export", authMw.RequirePermission("manage_settings")(http.HandlerFunc(backupHandler.Export)))
	mux.Handle("/api/backup/import", authMw.RequirePermission("manage_settings")(http.HandlerFunc(backupHandler.Import)))

	handler := authMw.Authenticate(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Infof("HTTP server listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
