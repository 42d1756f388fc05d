// File: barberbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barberbook/config"
	"barberbook/cron"
	"barberbook/database"
	appointmentRepo "barberbook/database/repository/appointment"
	catalogRepo "barberbook/database/repository/catalog"
	notificationRepo "barberbook/database/repository/notification"
	profileRepo "barberbook/database/repository/profile"
	"barberbook/handlers"
	"barberbook/middleware"
	"barberbook/realtime"
	"barberbook/routes"
	"barberbook/services/appointment"
	"barberbook/services/catalog"
	"barberbook/services/notification"
	"barberbook/services/session"
	"barberbook/services/tasks"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	notifRepo := notificationRepo.NewMongoNotificationRepo()
	profRepo := profileRepo.NewMongoProfileRepo()
	catRepo := catalogRepo.NewMongoCatalogRepo()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:      notifRepo,
		FeedLimit: config.AppConfig.NotificationFeedLimit,
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	appointmentService := &appointment.DefaultAppointmentService{
		Repo:                 apptRepo,
		Notifier:             notificationService,
		Reminders:            tasks.NewAsynqReminderScheduler(asynqClient),
		PreventDoubleBooking: config.AppConfig.PreventDoubleBooking,
	}

	sessionService := &session.DefaultSessionService{
		Identity:   session.NewFirebaseIdentityProvider(utils.GetAuthClient()),
		Profiles:   profRepo,
		AdminEmail: config.AppConfig.AdminEmail,
	}

	catalogService := &catalog.DefaultCatalogService{
		Repo:  catRepo,
		Cache: utils.GetCacheClient(),
	}

	// Background reminder delivery.
	cron.InitReminderWorker(notificationService)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Sessions:     sessionService,
		Auth:         handlers.NewAuthHandler(sessionService),
		Appointment:  handlers.NewAppointmentHandler(appointmentService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Catalog:      handlers.NewCatalogHandler(catalogService),
		Feed:         realtime.NewFeedHandler(sessionService, notificationService, appointmentService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
