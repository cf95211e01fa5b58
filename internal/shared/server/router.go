package server

import (
	"github.com/gin-gonic/gin"

	"docportal-backend/internal/documents"
	"docportal-backend/internal/monday"
	"docportal-backend/internal/requirements"
	"docportal-backend/internal/shared/config"
	"docportal-backend/internal/shared/server/middleware"
	"docportal-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers wired by bootstrap.
type RouterDeps struct {
	Config    config.Config
	Documents *documents.Handler
	Checklist *requirements.Handler
	Monday    *monday.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	deps.Documents.RegisterRoutes(api)
	deps.Checklist.RegisterRoutes(api)
	deps.Monday.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
