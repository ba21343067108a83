package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"firmdesk/internal/domain"
	"firmdesk/internal/handler"
	"firmdesk/internal/middleware"
	"firmdesk/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	documentH *handler.DocumentHandler,
	pipelineH *handler.PipelineHandler,
	clientH *handler.ClientHandler,
	noticeH *handler.NoticeHandler,
	vendorH *handler.VendorHandler,
	transactionH *handler.TransactionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks and metrics
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Document routes
	documents := protected.Group("/documents")
	documents.POST("/upload", documentH.Upload)
	documents.POST("/upload-batch", documentH.UploadBatch)
	documents.GET("", documentH.List)
	documents.GET("/:id", documentH.Get)
	documents.GET("/:id/download", documentH.Download)
	documents.GET("/:id/preview", pipelineH.Preview)
	documents.GET("/:id/transactions", transactionH.ListByDocument)
	documents.POST("/:id/process", pipelineH.Process)
	documents.POST("/:id/approve", pipelineH.Approve)
	documents.POST("/:id/override", pipelineH.Override)
	documents.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), documentH.Delete)

	// Client routes
	clients := protected.Group("/clients")
	clients.POST("", clientH.Create)
	clients.GET("", clientH.List)
	clients.GET("/:id", clientH.Get)
	clients.PUT("/:id", clientH.Update)
	clients.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), clientH.Delete)
	clients.GET("/:id/vendors", vendorH.ListByClient)
	clients.GET("/:id/transactions", transactionH.ListByClient)
	clients.GET("/:id/transactions/export", transactionH.ExportByClient)

	// Notice routes
	notices := protected.Group("/notices")
	notices.GET("", noticeH.List)
	notices.GET("/:id", noticeH.Get)
	notices.PATCH("/:id", noticeH.Update)
	notices.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), noticeH.Delete)

	// Vendor routes
	vendors := protected.Group("/vendors")
	vendors.POST("", vendorH.Create)
	vendors.GET("/1099-due", vendorH.List1099Due)
	vendors.GET("/:id", vendorH.Get)
	vendors.PUT("/:id", vendorH.Update)
	vendors.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), vendorH.Delete)

	return r
}
