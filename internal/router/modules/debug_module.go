package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-article-cms/internal/container"
	handlers "github.com/oksasatya/go-article-cms/internal/interface/http"
	"github.com/oksasatya/go-article-cms/internal/interface/middleware"
)

// DebugModule serves operational endpoints at the root: /health, /metrics
// (Prometheus, when a gatherer is set) and /debug/vars (expvar).
type DebugModule struct {
	Metrics http.Handler
}

func NewDebugModule(metricsHandler http.Handler) *DebugModule {
	return &DebugModule{Metrics: metricsHandler}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", handlers.Health)

	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	if m.Metrics != nil {
		rg.GET("/metrics", rl, gin.WrapH(m.Metrics))
	}
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
