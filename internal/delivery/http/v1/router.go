package v1

import (
	"net/http"

	"portfolio-backend/config"
	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	Events    *security.EventLogger
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	securityHeaders := middleware.SecurityHeadersMiddleware(deps.Config.IsProduction())

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, response.HealthBody{
			Status:          "ok",
			EmailConfigured: deps.ContactUC.EmailConfigured(),
		})
	})

	// Public contact endpoint
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigin = deps.Config.CORSAllowOrigin
	public := r.Group("")
	public.Use(middleware.CORSMiddleware(cors), securityHeaders)
	NewContactHandler(public, deps.ContactUC, deps.Events)

	// Swagger (its UI relies on inline scripts, so no CSP here)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Static portfolio pages
	if deps.Config.StaticDir != "" {
		r.NoRoute(securityHeaders, gin.WrapH(http.FileServer(http.Dir(deps.Config.StaticDir))))
	}

	return r
}
