package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-article-cms/internal/container"
	handlers "github.com/oksasatya/go-article-cms/internal/interface/http"
	"github.com/oksasatya/go-article-cms/internal/interface/middleware"
)

type UploadModule struct {
	Handler  *handlers.UploadHandler
	Verifier middleware.TokenVerifier
}

func NewUploadModule(h *handlers.UploadHandler, v middleware.TokenVerifier) *UploadModule {
	return &UploadModule{Handler: h, Verifier: v}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	rg.POST("/upload",
		middleware.Auth(m.Verifier, container.GetMetrics()),
		middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByUserID(), nil),
		m.Handler.Image,
	)
}
