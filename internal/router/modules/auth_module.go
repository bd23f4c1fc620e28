package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-article-cms/internal/container"
	handlers "github.com/oksasatya/go-article-cms/internal/interface/http"
	"github.com/oksasatya/go-article-cms/internal/interface/middleware"
)

// AuthModule exposes registration and login. Both are public and limited per IP.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Allow   middleware.AllowFunc
}

func NewAuthModule(h *handlers.AuthHandler, allow middleware.AllowFunc) *AuthModule {
	return &AuthModule{Handler: h, Allow: allow}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), m.Allow)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), m.Allow)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
}
