package routes

import (
	"net/http"

	"artmarket/config"
	billingapi "artmarket/internal/api/billing"
	brandsapi "artmarket/internal/api/brands"
	notificationsapi "artmarket/internal/api/notifications"
	"artmarket/internal/api/pagination"
	profilesapi "artmarket/internal/api/profiles"
	"artmarket/internal/api/resource"
	"artmarket/internal/api/response"
	worksapi "artmarket/internal/api/works"
	"artmarket/internal/app/http/middleware"
	"artmarket/internal/platform/apierr"
	"artmarket/internal/platform/logger"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"
)

type Deps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Config *config.Config
}

// NewEngine builds the gin engine with the global middleware chain and every
// route registered.
func NewEngine(d Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	headers := response.Headers{App: d.Config.AppName}

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Log.With("component", "http")))
	r.Use(middleware.CORS(d.Config.CORSOrigins, headers.Alert(), headers.Error(), headers.Params()))
	if d.Config.Tracing.Enabled {
		r.Use(otelgin.Middleware(d.Config.AppName))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	if d.Config.JWTSecret != "" {
		api.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
	}
	api.Use(middleware.SanitizeAndCleanInputMiddleware(func(c *gin.Context, err error) {
		headers.RespondError(c, apierr.Malformed("", err))
	}))

	deps := resource.Deps{
		DB:      d.DB,
		Log:     d.Log,
		Headers: headers,
		Limits: pagination.Limits{
			DefaultSize: d.Config.DefaultPageSize,
			MaxSize:     d.Config.MaxPageSize,
		},
	}
	profilesapi.Register(api, deps)
	worksapi.Register(api, deps)
	brandsapi.Register(api, deps)
	billingapi.Register(api, deps)
	notificationsapi.Register(api, deps)
}
