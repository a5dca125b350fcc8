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

type enrollmentService interface {
	List(ctx context.Context, actor access.Identity, filter models.EnrollmentFilter) ([]models.Enrollment, models.Pagination, error)
	Get(ctx context.Context, actor access.Identity, id string) (*models.Enrollment, error)
	Create(ctx context.Context, actor access.Identity, req service.CreateEnrollmentRequest) (*models.Enrollment, error)
	Update(ctx context.Context, actor access.Identity, id string, req service.UpdateEnrollmentRequest) (*models.Enrollment, error)
	Delete(ctx context.Context, actor access.Identity, id string) error
}

// EnrollmentHandler exposes parent/child enrollment endpoints.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler constructs handler.
func NewEnrollmentHandler(svc enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param child_id query string false "Child filter"
// @Param parent_id query string false "Parent filter (staff only)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {array} models.Enrollment
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	page := pageParams(c)
	filter := models.EnrollmentFilter{
		ChildID:  c.Query("child_id"),
		ParentID: c.Query("parent_id"),
		Page:     page.Number,
		Limit:    page.Limit,
	}
	if status := c.Query("status"); status != "" {
		s := models.EnrollmentStatus(status)
		filter.Status = &s
	}
	items, pagination, err := h.service.List(c.Request.Context(), identity(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "Enrollments retrieved successfully", "enrollments", items, pagination)
}

// Get godoc
// @Summary Get enrollment
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Success 200 {object} models.Enrollment
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Enrollment retrieved successfully", "enrollment", item)
}

// Create godoc
// @Summary Create enrollment
// @Description Parents enroll for themselves as pending; staff may name the parent and status
// @Tags Enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateEnrollmentRequest true "Enrollment payload"
// @Success 201 {object} models.Enrollment
// @Failure 409 {object} response.ErrorBody
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req service.CreateEnrollmentRequest
	if !bindJSON(c, &req, "invalid enrollment payload") {
		return
	}
	item, err := h.service.Create(c.Request.Context(), identity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Enrollment created successfully", "enrollment", item)
}

// Update godoc
// @Summary Update enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Param payload body service.UpdateEnrollmentRequest true "Enrollment payload"
// @Success 200 {object} models.Enrollment
// @Router /enrollments/{id} [put]
func (h *EnrollmentHandler) Update(c *gin.Context) {
	var req service.UpdateEnrollmentRequest
	if !bindJSON(c, &req, "invalid enrollment payload") {
		return
	}
	item, err := h.service.Update(c.Request.Context(), identity(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Enrollment updated successfully", "enrollment", item)
}

// Delete godoc
// @Summary Delete enrollment
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Success 200 {object} map[string]string
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Enrollment deleted successfully")
}
