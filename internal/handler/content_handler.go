package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/service"
	"github.com/noah-isme/daycare-api/pkg/response"
)

type contentService interface {
	Kind() models.ContentKind
	List(ctx context.Context, actor access.Identity, filter models.ContentFilter) ([]models.Content, models.Pagination, error)
	Get(ctx context.Context, actor access.Identity, id string) (*models.Content, error)
	Create(ctx context.Context, actor access.Identity, req service.CreateContentRequest) (*models.Content, error)
	Update(ctx context.Context, actor access.Identity, id string, req service.UpdateContentRequest) (*models.Content, error)
	Delete(ctx context.Context, actor access.Identity, id string) error
}

// ContentHandler serves one bilingual content collection. Articles and news each get an instance.
type ContentHandler struct {
	service  contentService
	single   string
	plural   string
	singular string
}

// NewContentHandler constructs a handler keyed by the service's content kind.
func NewContentHandler(svc contentService) *ContentHandler {
	h := &ContentHandler{service: svc}
	switch svc.Kind() {
	case models.ContentNews:
		h.single, h.plural, h.singular = "news", "news", "News"
	default:
		h.single, h.plural, h.singular = "article", "articles", "Article"
	}
	return h
}

// List godoc
// @Summary List articles or news
// @Description Anonymous callers and parents only see published items
// @Tags Content
// @Produce json
// @Param status query string false "draft or published (staff only)"
// @Param category query string false "Category filter"
// @Param search query string false "Search in titles"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {array} models.Content
// @Router /articles [get]
// @Router /news [get]
func (h *ContentHandler) List(c *gin.Context) {
	page := pageParams(c)
	filter := models.ContentFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page.Number,
		Limit:    page.Limit,
	}
	if status := c.Query("status"); status != "" {
		s := models.ContentStatus(status)
		filter.Status = &s
	}
	items, pagination, err := h.service.List(c.Request.Context(), identity(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, h.singular+" retrieved successfully", h.plural, items, pagination)
}

// Get godoc
// @Summary Get an article or news item
// @Tags Content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} models.Content
// @Failure 404 {object} response.ErrorBody
// @Router /articles/{id} [get]
// @Router /news/{id} [get]
func (h *ContentHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.singular+" retrieved successfully", h.single, item)
}

// Create godoc
// @Summary Create an article or news item
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateContentRequest true "Content payload"
// @Success 201 {object} models.Content
// @Router /articles [post]
// @Router /news [post]
func (h *ContentHandler) Create(c *gin.Context) {
	var req service.CreateContentRequest
	if !bindJSON(c, &req, "invalid "+h.single+" payload") {
		return
	}
	item, err := h.service.Create(c.Request.Context(), identity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, h.singular+" created successfully", h.single, item)
}

// Update godoc
// @Summary Update an article or news item
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Content ID"
// @Param payload body service.UpdateContentRequest true "Content payload"
// @Success 200 {object} models.Content
// @Router /articles/{id} [put]
// @Router /news/{id} [put]
func (h *ContentHandler) Update(c *gin.Context) {
	var req service.UpdateContentRequest
	if !bindJSON(c, &req, "invalid "+h.single+" payload") {
		return
	}
	item, err := h.service.Update(c.Request.Context(), identity(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.singular+" updated successfully", h.single, item)
}

// Delete godoc
// @Summary Delete an article or news item
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Content ID"
// @Success 200 {object} map[string]string
// @Router /articles/{id} [delete]
// @Router /news/{id} [delete]
func (h *ContentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, h.singular+" deleted successfully")
}
