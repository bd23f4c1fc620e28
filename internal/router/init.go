package router

import (
	"net/http"

	"github.com/oksasatya/go-article-cms/internal/application"
	"github.com/oksasatya/go-article-cms/internal/container"
	repo "github.com/oksasatya/go-article-cms/internal/domain/repository"
	pginfra "github.com/oksasatya/go-article-cms/internal/infrastructure/postgres"
	"github.com/oksasatya/go-article-cms/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-article-cms/internal/interface/http"
	"github.com/oksasatya/go-article-cms/internal/interface/middleware"
	"github.com/oksasatya/go-article-cms/internal/metrics"
	"github.com/oksasatya/go-article-cms/internal/router/modules"
	"github.com/oksasatya/go-article-cms/pkg/helpers"
)

// Deps are the collaborators the modules are built from. Optional ones may be nil.
type Deps struct {
	Users     repo.UserRepository
	Articles  repo.ArticleRepository
	Index     repo.ArticleIndex
	Uploader  application.ObjectUploader
	Publisher application.JobPublisher
	JWT       *helpers.JWTManager
}

// depsFromContainer resolves Deps from the singletons set up in main. Optional
// integrations are left as nil interfaces, never typed nil pointers.
func depsFromContainer() Deps {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	d := Deps{
		Users:    pginfra.NewUserRepository(pool),
		Articles: pginfra.NewArticleRepository(pool),
		JWT:      container.GetJWT(),
	}
	if es := container.GetES(); es != nil {
		d.Index = search.NewArticleIndex(es, cfg.ESArticlesIndex)
	}
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		d.Uploader = helpers.NewGCSUploader(gcs, cfg.GCSBucket)
	}
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		d.Publisher = pub
	}
	return d
}

// InitModules wires every feature module from the container and adds it to the registry.
// Call it once during startup, before RegisterAll.
func InitModules(r *Registry) {
	Mount(r, depsFromContainer())
}

// Mount builds services and handlers from d and adds their modules to r.
func Mount(r *Registry, d Deps) {
	logger := container.GetLogger()
	m := container.GetMetrics()

	var maxUpload int64 = 5 << 20
	var allow middleware.AllowFunc
	if cfg := container.GetConfig(); cfg != nil {
		maxUpload = cfg.UploadMaxBytes
		if cfg.Env == "development" {
			allow = middleware.AllowPrivateIP()
		}
	}

	authSvc := application.NewAuthService(d.Users, d.JWT, logger, d.Publisher)
	articleSvc := application.NewArticleService(d.Articles, d.Index, logger)
	mediaSvc := application.NewMediaService(d.Uploader, maxUpload, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), allow))
	r.Add(modules.NewArticleModule(handlers.NewArticleHandler(articleSvc, m, logger), d.JWT))
	r.Add(modules.NewUploadModule(handlers.NewUploadHandler(mediaSvc, logger), d.JWT))

	var metricsHandler http.Handler
	if g := container.GetGatherer(); g != nil {
		metricsHandler = metrics.Handler(g)
	}
	r.AddRoot(modules.NewDebugModule(metricsHandler))
}
