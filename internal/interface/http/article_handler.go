package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-article-cms/internal/application"
	"github.com/oksasatya/go-article-cms/internal/metrics"
	"github.com/oksasatya/go-article-cms/pkg/response"
)

type ArticleHandler struct {
	Svc     *application.ArticleService
	Metrics *metrics.Collector
	Logger  *logrus.Logger
}

func NewArticleHandler(svc *application.ArticleService, m *metrics.Collector, logger *logrus.Logger) *ArticleHandler {
	return &ArticleHandler{Svc: svc, Metrics: m, Logger: logger}
}

func articleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid article id", map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// List GET /api/articles
func (h *ArticleHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "articles retrieved successfully", gin.H{"count": len(items)})
}

// Get GET /api/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	a, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "article retrieved successfully", nil)
}

// Create POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	var req application.CreateArticleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), me, req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Metrics.RecordArticleWrite("create")
	response.Success(c, http.StatusCreated, a, "article created successfully", nil)
}

// Update PUT /api/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := articleID(c)
	if !ok {
		return
	}
	var patch application.ArticlePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badPayload(c, err)
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), me, id, patch)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Metrics.RecordArticleWrite("update")
	response.Success(c, http.StatusOK, a, "article updated successfully", nil)
}

// Delete DELETE /api/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := articleID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), me, id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Metrics.RecordArticleWrite("delete")
	response.Success[any](c, http.StatusOK, nil, "article deleted successfully", nil)
}

// Search GET /api/search/articles?q=...&size=...
func (h *ArticleHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	items, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "search results", gin.H{"count": len(items)})
}
