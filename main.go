// File: tripnest/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripnest/config"
	"tripnest/cron"
	"tripnest/database"
	bookingRepoPkg "tripnest/database/repository/booking"
	catalogRepoPkg "tripnest/database/repository/catalog"
	paymentRepoPkg "tripnest/database/repository/payment"
	userRepoPkg "tripnest/database/repository/user"
	walletRepoPkg "tripnest/database/repository/wallet"
	"tripnest/handlers"
	"tripnest/middleware"
	"tripnest/routes"
	"tripnest/services/booking"
	"tripnest/services/checkout"
	"tripnest/services/notification"
	"tripnest/services/payment"
	"tripnest/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitCheckoutCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	db := database.DB()

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(db)
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo(db)
	walletRepo := walletRepoPkg.NewMongoWalletRepo(db)
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo(db)
	userRepo := userRepoPkg.NewMongoUserRepo(db)

	// async queue client shared by dispatch and scheduling.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	notifier := notification.NewAsynqDispatcher(queueClient, logger)

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:     bookingRepo,
		Catalog:  catalogRepo,
		Accounts: userRepo,
		Notifier: notifier,
		Logger:   logger,
	}

	paymentService := &payment.DefaultPaymentService{
		Bookings: bookingRepo,
		Ledger:   paymentRepo,
		Wallets:  walletRepo,
		Accounts: userRepo,
		Gateway:  payment.NewStripeGateway(config.AppConfig.StripeKey),
		Notifier: notifier,
		Queue:    queueClient,
		Logger:   logger,
	}

	checkoutService := &checkout.DefaultCheckoutService{
		Cache: utils.GetCheckoutCacheClient(),
	}

	// handlers and routes.
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	routes.RegisterRoutes(router, bookingHandler, paymentHandler, checkoutHandler)

	// background worker: notifications + reconciliation sweep.
	cron.InitWorker(paymentService, logger)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on :%s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("forced shutdown: %v", err)
	}
	logger.Info("server exited")
}
