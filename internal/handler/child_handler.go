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

type childService interface {
	List(ctx context.Context, actor access.Identity, filter models.ChildFilter) ([]models.Child, models.Pagination, error)
	Get(ctx context.Context, actor access.Identity, id string) (*models.Child, error)
	Create(ctx context.Context, actor access.Identity, req service.CreateChildRequest) (*models.Child, error)
	Update(ctx context.Context, actor access.Identity, id string, req service.UpdateChildRequest) (*models.Child, error)
	Delete(ctx context.Context, actor access.Identity, id string) error
}

type attendanceHistory interface {
	History(ctx context.Context, actor access.Identity, childID string, q service.AttendanceHistoryQuery) ([]models.Attendance, models.Pagination, error)
}

// ChildHandler exposes child records.
type ChildHandler struct {
	service    childService
	attendance attendanceHistory
}

// NewChildHandler constructs a child handler.
func NewChildHandler(svc childService, attendance attendanceHistory) *ChildHandler {
	return &ChildHandler{service: svc, attendance: attendance}
}

// List godoc
// @Summary List children
// @Description Staff see every active child; parents only children with an approved enrollment
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Name search"
// @Param gender query string false "Gender filter"
// @Success 200 {array} models.Child
// @Router /children [get]
func (h *ChildHandler) List(c *gin.Context) {
	page := pageParams(c)
	filter := models.ChildFilter{
		Search: c.Query("search"),
		Gender: c.Query("gender"),
		Page:   page.Number,
		Limit:  page.Limit,
	}
	children, pagination, err := h.service.List(c.Request.Context(), identity(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "Children retrieved successfully", "children", children, pagination)
}

// Get godoc
// @Summary Get child
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Param id path string true "Child ID"
// @Success 200 {object} models.Child
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /children/{id} [get]
func (h *ChildHandler) Get(c *gin.Context) {
	child, err := h.service.Get(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Child retrieved successfully", "child", child)
}

// Create godoc
// @Summary Register child
// @Tags Children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateChildRequest true "Child payload"
// @Success 201 {object} models.Child
// @Router /children [post]
func (h *ChildHandler) Create(c *gin.Context) {
	var req service.CreateChildRequest
	if !bindJSON(c, &req, "invalid child payload") {
		return
	}
	child, err := h.service.Create(c.Request.Context(), identity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Child created successfully", "child", child)
}

// Update godoc
// @Summary Update child
// @Tags Children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Child ID"
// @Param payload body service.UpdateChildRequest true "Child payload"
// @Success 200 {object} models.Child
// @Router /children/{id} [put]
func (h *ChildHandler) Update(c *gin.Context) {
	var req service.UpdateChildRequest
	if !bindJSON(c, &req, "invalid child payload") {
		return
	}
	child, err := h.service.Update(c.Request.Context(), identity(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Child updated successfully", "child", child)
}

// Delete godoc
// @Summary Deactivate child
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Param id path string true "Child ID"
// @Success 200 {object} map[string]string
// @Router /children/{id} [delete]
func (h *ChildHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Child deleted successfully")
}

// Attendance godoc
// @Summary Child attendance history
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Param id path string true "Child ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {array} models.Attendance
// @Router /children/{id}/attendance [get]
func (h *ChildHandler) Attendance(c *gin.Context) {
	respondHistory(c, h.attendance, c.Param("id"))
}

func respondHistory(c *gin.Context, svc attendanceHistory, childID string) {
	page := pageParams(c)
	q := service.AttendanceHistoryQuery{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Page:  page.Number,
		Limit: page.Limit,
	}
	rows, pagination, err := svc.History(c.Request.Context(), identity(c), childID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "Attendance history retrieved successfully", "attendance", rows, pagination)
}
