package routes

import (
	"net/http"
	"time"

	"barberbook/handlers"
	"barberbook/middleware"
	"barberbook/realtime"
	"barberbook/services/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle wires every handler the router needs.
type HandlerBundle struct {
	Sessions     session.SessionService
	Auth         *handlers.AuthHandler
	Appointment  *handlers.AppointmentHandler
	Notification *handlers.NotificationHandler
	Catalog      *handlers.CatalogHandler
	Feed         *realtime.FeedHandler
}

// RegisterRoutes attaches every route group to the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authn := middleware.SessionAuthMiddleware(hb.Sessions)
	adminOnly := middleware.AdminOnlyMiddleware()

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", hb.Auth.SignUpHandler)

		protected := auth.Group("")
		protected.Use(authn)
		protected.GET("/me", hb.Auth.MeHandler)
		protected.PATCH("/me", hb.Auth.UpdateProfileHandler)
		protected.POST("/me/reload", hb.Auth.ReloadHandler)
	}

	appts := r.Group("/api/appointments")
	appts.Use(authn)
	{
		appts.POST("", hb.Appointment.CreateHandler)
		appts.GET("", hb.Appointment.ListHandler)
		// Status changes are the admin's call; the store-side ownership
		// rule for client self-cancellation lives in deployment config.
		appts.PATCH("/:id/status", adminOnly, hb.Appointment.TransitionHandler)
	}

	clients := r.Group("/api/clients")
	clients.Use(authn, adminOnly)
	{
		clients.GET("", hb.Auth.ListClientsHandler)
	}

	notifs := r.Group("/api/notifications")
	notifs.Use(authn)
	{
		notifs.GET("", hb.Notification.ListHandler)
		notifs.POST("/:id/read", hb.Notification.MarkReadHandler)
		notifs.POST("/read-all", hb.Notification.MarkAllReadHandler)
	}

	catalogGroup := r.Group("/api/catalog")
	{
		catalogGroup.GET("/services", hb.Catalog.ListServicesHandler)
		catalogGroup.GET("/barbers", hb.Catalog.ListBarbersHandler)

		adminCatalog := catalogGroup.Group("")
		adminCatalog.Use(authn, adminOnly)
		adminCatalog.PUT("/services", hb.Catalog.SaveServiceHandler)
		adminCatalog.DELETE("/services/:id", hb.Catalog.DeleteServiceHandler)
		adminCatalog.GET("/settings", hb.Catalog.GetShopSettingsHandler)
		adminCatalog.PUT("/settings", hb.Catalog.SaveShopSettingsHandler)
	}

	ws := r.Group("/ws")
	{
		ws.GET("/notifications", hb.Feed.NotificationFeedHandler)
		ws.GET("/appointments", hb.Feed.AppointmentFeedHandler)
	}
}
