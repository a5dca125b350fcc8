package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/daycare-api/internal/handler"
	"github.com/noah-isme/daycare-api/internal/middleware"
	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/service"
	"github.com/noah-isme/daycare-api/pkg/config"
	"github.com/noah-isme/daycare-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/daycare-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/daycare-api/pkg/middleware/requestid"
	"github.com/noah-isme/daycare-api/pkg/storage"
)

const (
	scopeLogin   = "login"
	scopeContact = "contact"
)

// Dependencies carries everything the HTTP surface is built from.
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Auth        *service.AuthService
	Users       *service.UserService
	Children    *service.ChildService
	Enrollments *service.EnrollmentService
	Attendance  *service.AttendanceService
	Articles    *service.ContentService
	News        *service.ContentService
	Contacts    *service.ContactService
	Uploads     *service.UploadService
	Health      *service.HealthService
	Metrics     *service.MetricsService
	Limiter     *service.RateLimiter

	// Static is set when uploads live on local disk and are served by this process.
	Static *storage.LocalStorage
}

// New builds the gin engine with every route mounted.
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics, "/metrics"))
	if cfg.Uploads.MaxFileSizeBytes > 0 {
		r.MaxMultipartMemory = cfg.Uploads.MaxFileSizeBytes
	}

	metricsHandler := handler.NewMetricsHandler(deps.Metrics, nil)
	if deps.Health != nil {
		metricsHandler = handler.NewMetricsHandler(deps.Metrics, deps.Health)
	}
	r.GET("/health", metricsHandler.Health)
	r.GET("/health/detailed", metricsHandler.Detailed)
	r.GET("/metrics", metricsHandler.Prometheus)

	if !cfg.IsProduction() {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if deps.Static != nil {
		r.Static(deps.Static.Prefix(), deps.Static.Dir())
	}

	limiter := middleware.Limiter(nil)
	if deps.Limiter != nil {
		limiter = deps.Limiter
	}
	requireAuth := middleware.JWT(deps.Auth)
	optionalAuth := middleware.OptionalJWT(deps.Auth)
	staffOnly := middleware.StaffOnly()

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Audit(log))

	authHandler := handler.NewAuthHandler(deps.Auth)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", middleware.RateLimit(limiter, scopeLogin, cfg.RateLimit.Login), authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.Me)
		auth.PUT("/profile", requireAuth, authHandler.UpdateProfile)
		auth.PUT("/change-password", requireAuth, authHandler.ChangePassword)
	}

	userHandler := handler.NewUserHandler(deps.Users)
	users := api.Group("/users", requireAuth)
	{
		users.GET("", middleware.RequireRoles(models.RoleAdmin), userHandler.List)
		users.POST("", middleware.RequireRoles(models.RoleAdmin), userHandler.Create)
		users.GET("/:id", middleware.RBAC(string(models.RoleAdmin), string(models.RoleStaff), middleware.Self), userHandler.Get)
		users.PUT("/:id", middleware.RBAC(string(models.RoleAdmin), middleware.Self), userHandler.Update)
		users.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), userHandler.Delete)
	}

	childHandler := handler.NewChildHandler(deps.Children, deps.Attendance)
	children := api.Group("/children", requireAuth)
	{
		children.GET("", childHandler.List)
		children.POST("", staffOnly, childHandler.Create)
		children.GET("/:id", childHandler.Get)
		children.PUT("/:id", staffOnly, childHandler.Update)
		children.DELETE("/:id", staffOnly, childHandler.Delete)
		children.GET("/:id/attendance", childHandler.Attendance)
	}

	enrollmentHandler := handler.NewEnrollmentHandler(deps.Enrollments)
	enrollments := api.Group("/enrollments", requireAuth)
	{
		enrollments.GET("", enrollmentHandler.List)
		enrollments.POST("", enrollmentHandler.Create)
		enrollments.GET("/:id", enrollmentHandler.Get)
		enrollments.PUT("/:id", enrollmentHandler.Update)
		enrollments.DELETE("/:id", staffOnly, enrollmentHandler.Delete)
	}

	attendanceHandler := handler.NewAttendanceHandler(deps.Attendance)
	attendance := api.Group("/attendance", requireAuth)
	{
		attendance.POST("/checkin", staffOnly, attendanceHandler.CheckIn)
		attendance.POST("/checkout", staffOnly, attendanceHandler.CheckOut)
		attendance.GET("/today", staffOnly, attendanceHandler.Today)
		attendance.GET("/report", staffOnly, attendanceHandler.Report)
		attendance.GET("/child/:id", attendanceHandler.Child)
	}

	mountContent(api.Group("/articles"), handler.NewContentHandler(deps.Articles), requireAuth, optionalAuth, staffOnly)
	mountContent(api.Group("/news"), handler.NewContentHandler(deps.News), requireAuth, optionalAuth, staffOnly)

	contactHandler := handler.NewContactHandler(deps.Contacts)
	contacts := api.Group("/contacts")
	{
		contacts.POST("", middleware.RateLimit(limiter, scopeContact, cfg.RateLimit.Contact), contactHandler.Submit)
		contacts.GET("", requireAuth, staffOnly, contactHandler.List)
		contacts.GET("/:id", requireAuth, staffOnly, contactHandler.Get)
		contacts.PUT("/:id/status", requireAuth, staffOnly, contactHandler.UpdateStatus)
		contacts.DELETE("/:id", requireAuth, staffOnly, contactHandler.Delete)
	}

	uploadHandler := handler.NewUploadHandler(deps.Uploads, log)
	uploads := api.Group("/uploads", requireAuth)
	{
		uploads.POST("", uploadHandler.Upload)
		uploads.POST("/multiple", uploadHandler.UploadMany)
		uploads.GET("", uploadHandler.List)
		uploads.GET("/:id", uploadHandler.Get)
		uploads.GET("/:id/download", uploadHandler.Download)
		uploads.DELETE("/:id", uploadHandler.Delete)
	}

	return r
}

func mountContent(g *gin.RouterGroup, h *handler.ContentHandler, requireAuth, optionalAuth, staffOnly gin.HandlerFunc) {
	g.GET("", optionalAuth, h.List)
	g.GET("/:id", optionalAuth, h.Get)
	g.POST("", requireAuth, staffOnly, h.Create)
	g.PUT("/:id", requireAuth, staffOnly, h.Update)
	g.DELETE("/:id", requireAuth, staffOnly, h.Delete)
}
