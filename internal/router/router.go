package router

import (
	"github.com/gin-gonic/gin"

	"leadgate/internal/handler"
	"leadgate/internal/middleware"
	"leadgate/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	formH *handler.FormHandler,
	subH *handler.SubmissionHandler,
	attH *handler.AttachmentHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Form catalog
	forms := protected.Group("/forms")
	forms.GET("", formH.List)
	forms.GET("/:key", formH.Get)

	// Submission lifecycle
	subs := protected.Group("/submissions")
	subs.POST("", subH.Create)
	subs.GET("", subH.List)
	subs.GET("/:id", subH.Get)
	subs.PUT("/:id/answers", subH.SetAnswers)
	subs.GET("/:id/requirements", subH.Requirements)
	subs.POST("/:id/submit", subH.Submit)

	// Document staging
	subs.POST("/:id/documents", attH.Attach)
	subs.DELETE("/:id/documents/:attachmentId", attH.Remove)

	// Reports
	reports := protected.Group("/reports")
	reports.GET("/submissions.csv", reportH.ExportCSV)
	reports.GET("/submissions.xlsx", reportH.ExportXLSX)

	return r
}
