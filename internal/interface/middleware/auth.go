package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-article-cms/internal/domain/apperror"
	"github.com/oksasatya/go-article-cms/internal/domain/entity"
	"github.com/oksasatya/go-article-cms/internal/metrics"
	"github.com/oksasatya/go-article-cms/pkg/response"
)

const (
	ctxIdentityKey = "identity"
	ctxUserIDKey   = "userID"
)

// TokenVerifier turns a raw bearer token into the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (entity.Identity, error)
}

// Auth requires `Authorization: Bearer <token>`. On success the identity is stored in
// the Gin context; read it back with CurrentIdentity.
func Auth(v TokenVerifier, m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject(c, m, apperror.MissingToken())
			return
		}
		id, err := v.Verify(raw)
		if err != nil {
			var e *apperror.Error
			if !errors.As(err, &e) {
				e = apperror.InvalidToken(err)
			}
			reject(c, m, e)
			return
		}

		c.Set(ctxIdentityKey, id)
		c.Set(ctxUserIDKey, id.ID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func reject(c *gin.Context, m *metrics.Collector, e *apperror.Error) {
	m.RecordAuthFailure(e.Kind.String())
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	response.Error(c, e.Kind.HTTPStatus(), e.Message, nil)
}

// CurrentIdentity returns the identity set by Auth.
func CurrentIdentity(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(ctxIdentityKey)
	if !ok {
		return entity.Identity{}, false
	}
	id, ok := v.(entity.Identity)
	return id, ok
}
