package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-article-cms/internal/application"
	"github.com/oksasatya/go-article-cms/pkg/response"
)

type UploadHandler struct {
	Svc    *application.MediaService
	Logger *logrus.Logger
}

func NewUploadHandler(svc *application.MediaService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Svc: svc, Logger: logger}
}

// Image POST /api/upload (multipart field "image")
func (h *UploadHandler) Image(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "no file uploaded", map[string]string{"image": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	defer f.Close()

	res, err := h.Svc.UploadImage(c.Request.Context(), me.ID, f, fh.Size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "image uploaded successfully", nil)
}
