package routes

import (
	"net/http"
	"time"

	"hoardify/handlers"
	"hoardify/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterHealthRoute registers a health-check endpoint backed by the health monitor.
func RegisterHealthRoute(r *gin.Engine, monitor *utils.HealthMonitor) {
	r.GET("/health", func(c *gin.Context) {
		if monitor == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		status := monitor.Status()
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterAdminRoutes sets up every admin screen endpoint behind auth.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	admin := r.Group("/api/admin")
	admin.Use(auth)

	bookings := admin.Group("/bookings")
	{
		bookings.GET("", hb.Bookings.ListBookingsHandler)
		bookings.GET("/stream", hb.Bookings.StreamBookingsHandler)
		bookings.GET("/calendar", hb.Bookings.CalendarHandler)
		bookings.GET("/:id", hb.Bookings.GetBookingHandler)
		bookings.PATCH("/:id/status", hb.Bookings.UpdateStatusHandler)
		bookings.PATCH("/:id/payment", hb.Bookings.UpdatePaymentStatusHandler)
	}

	customers := admin.Group("/customers")
	{
		customers.GET("", hb.Bookings.ListCustomersHandler)
		customers.GET("/:id", hb.Bookings.GetCustomerHandler)
	}

	users := admin.Group("/users")
	{
		users.GET("", hb.Users.ListUsersHandler)
		users.GET("/:id", hb.Users.GetUserByIDHandler)
		users.PATCH("/:id", hb.Users.UpdateUserHandler)
		users.PUT("/:id/disabled", hb.Users.SetDisabledHandler)
		users.DELETE("/:id", hb.Users.DeleteUserHandler)
	}

	workers := admin.Group("/workers")
	{
		workers.GET("", hb.Workers.ListWorkersHandler)
		workers.POST("", hb.Workers.CreateWorkerHandler)
		workers.GET("/:id", hb.Workers.GetWorkerHandler)
		workers.PUT("/:id", hb.Workers.UpdateWorkerHandler)
		workers.PUT("/:id/active", hb.Workers.SetActiveHandler)
		workers.DELETE("/:id", hb.Workers.DeleteWorkerHandler)
	}

	admin.GET("/hoardings", hb.Hoardings.ListHoardingsHandler)
	admin.GET("/hoardings/:id", hb.Hoardings.GetHoardingHandler)
	categories := admin.Group("/categories")
	{
		categories.GET("", hb.Hoardings.ListCategoriesHandler)
		categories.POST("", hb.Hoardings.CreateCategoryHandler)
		categories.DELETE("/:category", hb.Hoardings.DeleteCategoryHandler)
		categories.GET("/:category/hoardings", hb.Hoardings.ListHoardingsHandler)
		categories.POST("/:category/hoardings", hb.Hoardings.CreateHoardingHandler)
		categories.PUT("/:category/hoardings/:id", hb.Hoardings.UpdateHoardingHandler)
		categories.PUT("/:category/hoardings/:id/availability", hb.Hoardings.SetAvailabilityHandler)
		categories.DELETE("/:category/hoardings/:id", hb.Hoardings.DeleteHoardingHandler)
	}

	messages := admin.Group("/messages")
	{
		messages.GET("", hb.Messages.ListMessagesHandler)
		messages.GET("/stream", hb.Messages.StreamMessagesHandler)
		messages.GET("/unread", hb.Messages.UnreadCountHandler)
		messages.GET("/:id", hb.Messages.GetMessageHandler)
		messages.PUT("/:id/read", hb.Messages.MarkReadHandler)
		messages.DELETE("/:id", hb.Messages.DeleteMessageHandler)
	}

	hero := admin.Group("/hero")
	{
		hero.GET("", hb.Hero.ListSlidesHandler)
		hero.POST("", hb.Hero.CreateSlideHandler)
		hero.PUT("/order", hb.Hero.ReorderHandler)
		hero.PUT("/:id", hb.Hero.UpdateSlideHandler)
		hero.DELETE("/:id", hb.Hero.DeleteSlideHandler)
	}

	admin.POST("/uploads/:folder", hb.Uploads.UploadFileHandler)
	admin.DELETE("/uploads", hb.Uploads.DeleteFileHandler)

	settings := admin.Group("/settings")
	{
		settings.GET("/profile", hb.Settings.ProfileHandler)
		settings.PUT("/password", hb.Settings.ChangePasswordHandler)
	}

	reports := admin.Group("/reports")
	{
		reports.GET("/dashboard", hb.Reports.DashboardHandler)
		reports.GET("/revenue", hb.Reports.MonthlyRevenueHandler)
		reports.GET("/categories", hb.Reports.CategoryBreakdownHandler)
		reports.GET("/activity", hb.Reports.ActivityHandler)
		reports.GET("/activity/counts", hb.Reports.ActivityCountsHandler)
		reports.GET("/export/:dataset", hb.Reports.ExportHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and global middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string, auth gin.HandlerFunc, monitor *utils.HealthMonitor) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: !containsWildcard(allowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, monitor)
	RegisterMetricsRoute(r)
	RegisterAdminRoutes(r, hb, auth)
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
