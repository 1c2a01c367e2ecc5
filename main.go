package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"frontdesk-backend/config"
	"frontdesk-backend/controllers"
	"frontdesk-backend/middleware"
	"frontdesk-backend/realtime"
	"frontdesk-backend/routes"
	"frontdesk-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel)

	db, err := config.ConnectDatabase(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("database connect failed")
	}
	logger.WithField("driver", cfg.DBDriver).Info("database connection established and migrations applied")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := config.SeedDatabase(ctx, db, cfg, logger); err != nil {
		logger.WithError(err).Fatal("seeding failed")
	}

	var locker services.Locker = services.NewLocalLocker()
	rdb, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("redis connect failed")
	}
	if rdb != nil {
		defer rdb.Close()
		locker = services.NewRedisLocker(rdb, 30*time.Second)
		logger.WithField("address", cfg.RedisAddress).Info("using redis locks")
	}

	// Initialize services
	inventoryService := services.NewInventoryService(db)
	priceService := services.NewPriceService(db)
	roomService := services.NewRoomService(db, inventoryService, locker)
	billingService := services.NewBillingService(db, priceService, inventoryService, locker)
	transactionService := services.NewTransactionService(db)
	reportService := services.NewReportService(db, cfg.Location)

	hub := realtime.NewHub(cfg.CorsOrigins, logger)
	snapshots := services.NewSnapshotService(roomService, inventoryService, hub, cfg.SnapshotInterval, logger)
	go snapshots.Run(ctx)

	// Initialize controllers
	pinger := middleware.DBPinger(db)
	handlers := routes.Handlers{
		Rooms:     controllers.NewRoomController(roomService, snapshots, logger),
		Billing:   controllers.NewBillingController(billingService, snapshots, logger),
		Inventory: controllers.NewInventoryController(inventoryService, snapshots, logger, cfg.UploadLimit),
		Prices:    controllers.NewPriceController(priceService, logger),
		Reports:   controllers.NewReportController(reportService, transactionService, logger),
		Health:    controllers.NewHealthController(pinger),
		Realtime:  hub,
	}

	router := routes.SetupRouter(handlers, routes.Options{
		CorsOrigins: cfg.CorsOrigins,
		PublicDir:   cfg.PublicDir,
		Storage:     pinger,
		Logger:      logger,
	})
	router.MaxMultipartMemory = cfg.UploadLimit

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.WithField("addr", addr).Info("🚀 server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("ListenAndServe()")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Warn("shutdown signal received, shutting down server...")

	stop()
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("✅ server stopped gracefully")
}
