package router

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-article-cms/internal/interface/http"
)

// Registry collects modules and mounts them: API modules under /api, root modules at /.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
	roots   []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// AddRoot registers a module outside the /api prefix (health, metrics).
func (r *Registry) AddRoot(mod Module) {
	r.roots = append(r.roots, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
	for _, m := range r.roots {
		m.Register(&r.Engine.RouterGroup)
	}
	r.Engine.NoRoute(handlers.NotFound)
}
