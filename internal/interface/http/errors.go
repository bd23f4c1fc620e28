package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-article-cms/internal/domain/apperror"
	"github.com/oksasatya/go-article-cms/internal/domain/entity"
	"github.com/oksasatya/go-article-cms/internal/interface/middleware"
	"github.com/oksasatya/go-article-cms/pkg/response"
	"github.com/oksasatya/go-article-cms/pkg/validation"
)

// fail writes the error envelope for err. Server-side failures are logged with the
// request id; the client only sees the generic message.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	var e *apperror.Error
	if !errors.As(err, &e) {
		e = &apperror.Error{Kind: apperror.KindInternal, Message: "internal server error", Err: err}
	}
	status := e.Kind.HTTPStatus()
	if status >= http.StatusInternalServerError && logger != nil {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"user_id":    c.GetString("userID"),
			"kind":       e.Kind.String(),
			"error":      e.Error(),
		}).Error("request failed")
	}

	var details interface{}
	if len(e.Fields) > 0 {
		details = e.Fields
	}
	response.Error(c, status, e.Message, details)
}

func badPayload(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// caller returns the authenticated identity or writes a 401.
func caller(c *gin.Context) (entity.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		e := apperror.MissingToken()
		response.Error(c, e.Kind.HTTPStatus(), e.Message, nil)
	}
	return id, ok
}
