package router

import (
	"github.com/gin-gonic/gin"

	"feedback-portal-backend/handler"
	"feedback-portal-backend/middleware"
)

// Handlers groups everything the route table wires up.
type Handlers struct {
	Feedback *handler.FeedbackHandler
	Admin    *handler.AdminHandler
	Auth     *handler.AuthHandler
	Health   *handler.HealthHandler
}

// SetupRoutes registers the API surface. Exact paths matter: the dashboard
// and the public form are built against them.
func SetupRoutes(r *gin.Engine, h Handlers, jwtSecret string) {
	api := r.Group("/api")

	api.GET("/health", h.Health.Check)

	// Public feedback routes
	api.POST("/feedback", h.Feedback.Create)
	api.GET("/feedback", h.Feedback.List)
	api.GET("/feedback/:id", h.Feedback.GetByID)

	// Auth
	api.POST("/auth/login", h.Auth.Login)

	// Admin routes, all behind the bearer-token gate
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(jwtSecret))
	{
		admin.GET("/analytics", h.Admin.Analytics)
		admin.GET("/feedback", h.Admin.List)
		admin.GET("/feedback/:id", h.Admin.GetByID)
		admin.PATCH("/feedback/:id", h.Admin.Update)
		admin.DELETE("/feedback/:id", h.Admin.Delete)
	}
}
