package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-article-cms/internal/container"
	handlers "github.com/oksasatya/go-article-cms/internal/interface/http"
	"github.com/oksasatya/go-article-cms/internal/interface/middleware"
)

// ArticleModule wires the article routes.
// Public: GET /articles, GET /articles/:id, GET /search/articles
// Protected: POST /articles, PUT /articles/:id, DELETE /articles/:id
type ArticleModule struct {
	Handler  *handlers.ArticleHandler
	Verifier middleware.TokenVerifier
}

func NewArticleModule(h *handlers.ArticleHandler, v middleware.TokenVerifier) *ArticleModule {
	return &ArticleModule{Handler: h, Verifier: v}
}

func (m *ArticleModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/articles", readLimiter, m.Handler.List)
	rg.GET("/articles/:id", readLimiter, m.Handler.Get)
	rg.GET("/search/articles", readLimiter, m.Handler.Search)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier, container.GetMetrics()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/articles", m.Handler.Create)
		auth.PUT("/articles/:id", m.Handler.Update)
		auth.DELETE("/articles/:id", m.Handler.Delete)
	}
}
