package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smartattend/backend/internal/config"
	"github.com/smartattend/backend/internal/handler"
	"github.com/smartattend/backend/internal/middleware"
	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/response"
	"github.com/smartattend/backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Subject      *handler.SubjectHandler
	Slot         *handler.SlotHandler
	Attendance   *handler.AttendanceHandler
	Report       *handler.ReportHandler
	Notification *handler.NotificationHandler
	Dashboard    *handler.DashboardHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check and Prometheus metrics.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limiter for login (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)

		// Authenticated profile routes
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
	}

	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireAuth(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		api.GET("/dashboard", handlers.Dashboard.Get)

		api.GET("/users",
			middleware.RequireRole(model.RoleAdmin),
			handlers.User.List,
		)

		api.GET("/subjects", handlers.Subject.List)
		api.GET("/slots", handlers.Slot.List)

		// Taking attendance is a faculty (or admin) action.
		api.POST("/attendance",
			middleware.RequireRole(model.RoleFaculty, model.RoleAdmin),
			handlers.Attendance.Submit,
		)
		api.GET("/attendance/slots/:slot_id/students",
			middleware.RequireRole(model.RoleFaculty, model.RoleAdmin),
			handlers.Attendance.GetRoster,
		)

		api.GET("/reports/students/:student_id", handlers.Report.StudentReport)
		api.GET("/reports/faculty/:faculty_id/history",
			middleware.RequireRole(model.RoleFaculty, model.RoleAdmin),
			handlers.Report.FacultyHistory,
		)
		api.GET("/reports/overview",
			middleware.RequireRole(model.RoleAdmin),
			handlers.Report.Overview,
		)
		api.GET("/reports/risk-patterns",
			middleware.RequireRole(model.RoleAdmin, model.RoleFaculty),
			handlers.Report.Patterns,
		)

		api.GET("/notifications", handlers.Notification.List)
		api.GET("/notifications/unread-count", handlers.Notification.UnreadCount)
		api.PATCH("/notifications/:id/read", handlers.Notification.MarkRead)
		api.POST("/notifications/read-all", handlers.Notification.MarkAllRead)
	}

	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/notifications/stream", handlers.WS.NotificationStream)
	}

	return router
}
