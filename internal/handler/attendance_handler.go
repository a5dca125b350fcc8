package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/service"
	"github.com/noah-isme/daycare-api/pkg/export"
	"github.com/noah-isme/daycare-api/pkg/response"
)

type attendanceService interface {
	attendanceHistory
	CheckIn(ctx context.Context, actor access.Identity, req service.AttendanceRequest) (*models.Attendance, error)
	CheckOut(ctx context.Context, actor access.Identity, req service.AttendanceRequest) (*models.Attendance, error)
	Today(ctx context.Context, actor access.Identity) (*models.AttendanceDay, error)
	Report(ctx context.Context, actor access.Identity, date, format string) (*export.File, error)
}

// AttendanceHandler exposes the daily check-in board.
type AttendanceHandler struct {
	service attendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(svc attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// CheckIn godoc
// @Summary Check a child in
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.AttendanceRequest true "Check-in payload"
// @Success 201 {object} models.Attendance
// @Failure 409 {object} response.ErrorBody
// @Router /attendance/checkin [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req service.AttendanceRequest
	if !bindJSON(c, &req, "invalid check-in payload") {
		return
	}
	row, err := h.service.CheckIn(c.Request.Context(), identity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Child checked in successfully", "attendance", row)
}

// CheckOut godoc
// @Summary Check a child out
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.AttendanceRequest true "Check-out payload"
// @Success 200 {object} models.Attendance
// @Failure 404 {object} response.ErrorBody
// @Router /attendance/checkout [post]
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req service.AttendanceRequest
	if !bindJSON(c, &req, "invalid check-out payload") {
		return
	}
	row, err := h.service.CheckOut(c.Request.Context(), identity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Child checked out successfully", "attendance", row)
}

// Today godoc
// @Summary Today's attendance board
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AttendanceDay
// @Router /attendance/today [get]
func (h *AttendanceHandler) Today(c *gin.Context) {
	board, err := h.service.Today(c.Request.Context(), identity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Today's attendance retrieved successfully", "attendance", board)
}

// Child godoc
// @Summary Attendance history of a child
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Child ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {array} models.Attendance
// @Router /attendance/child/{id} [get]
func (h *AttendanceHandler) Child(c *gin.Context) {
	respondHistory(c, h.service, c.Param("id"))
}

// Report godoc
// @Summary Download the daily attendance sheet
// @Tags Attendance
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Param format query string false "csv, pdf or xlsx"
// @Success 200 {file} file
// @Router /attendance/report [get]
func (h *AttendanceHandler) Report(c *gin.Context) {
	file, err := h.service.Report(c.Request.Context(), identity(c), c.Query("date"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+file.Name+"\"")
	c.Header("Content-Length", strconv.Itoa(len(file.Data)))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
