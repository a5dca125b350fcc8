package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/query"
	"github.com/noah-isme/daycare-api/internal/repository"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
	"github.com/noah-isme/daycare-api/pkg/export"
)

const timeLayout = "15:04"

type attendanceRepository interface {
	CheckIn(ctx context.Context, item *models.Attendance, dayStart, dayEnd time.Time) error
	CheckOut(ctx context.Context, childID string, at time.Time, notes *string, dayStart, dayEnd time.Time) (*models.Attendance, error)
	ListForDay(ctx context.Context, dayStart, dayEnd time.Time) ([]models.Attendance, error)
	ListAbsent(ctx context.Context, dayStart, dayEnd time.Time) ([]models.ChildSummary, error)
	ListByChild(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, int, error)
}

// AttendanceRequest is the payload of check-in and check-out.
type AttendanceRequest struct {
	ChildID string  `json:"child_id" validate:"required"`
	Notes   *string `json:"notes" validate:"omitempty,max=1000"`
}

// AttendanceHistoryQuery bounds a child's history. Dates are YYYY-MM-DD and inclusive.
type AttendanceHistoryQuery struct {
	From  string
	To    string
	Page  int
	Limit int
}

// AttendanceService runs the daily absent → present → departed cycle.
type AttendanceService struct {
	repo      attendanceRepository
	children  access.Policy
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	location  *time.Location
	now       func() time.Time
}

// NewAttendanceService constructs an AttendanceService. Day boundaries are computed in loc.
func NewAttendanceService(repo attendanceRepository, enrollments access.EnrollmentChecker, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, loc *time.Location) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{
		repo:      repo,
		children:  access.ChildAccess(enrollments),
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		location:  loc,
		now:       time.Now,
	}
}

// CheckIn opens today's attendance row for a child. Staff only.
func (s *AttendanceService) CheckIn(ctx context.Context, actor access.Identity, req AttendanceRequest) (*models.Attendance, error) {
	if err := s.authorizeStaff(ctx, actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid check-in payload")
	}

	now := s.now().UTC()
	start, end := dayBounds(now, s.location)
	item := &models.Attendance{
		ChildID:     req.ChildID,
		StaffID:     actor.UserID,
		CheckInTime: now,
		Notes:       trimPtr(req.Notes),
	}
	if err := s.repo.CheckIn(ctx, item, start, end); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "child not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, "child is already checked in")
		default:
			s.logger.Error("check-in failed", zap.String("child_id", req.ChildID), zap.Error(err))
			return nil, appErrors.Internal(err, "failed to check in child")
		}
	}

	s.metrics.RecordEvent(EventCheckIn)
	s.logger.Info("child checked in", zap.String("child_id", item.ChildID), zap.String("staff_id", item.StaffID))
	return item, nil
}

// CheckOut closes today's open row for a child. Staff only.
func (s *AttendanceService) CheckOut(ctx context.Context, actor access.Identity, req AttendanceRequest) (*models.Attendance, error) {
	if err := s.authorizeStaff(ctx, actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid check-out payload")
	}

	now := s.now().UTC()
	start, end := dayBounds(now, s.location)
	item, err := s.repo.CheckOut(ctx, req.ChildID, now, trimPtr(req.Notes), start, end)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "child is not checked in today")
		}
		s.logger.Error("check-out failed", zap.String("child_id", req.ChildID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to check out child")
	}

	s.metrics.RecordEvent(EventCheckOut)
	s.logger.Info("child checked out", zap.String("child_id", item.ChildID), zap.String("staff_id", actor.UserID))
	return item, nil
}

// Today returns the board of the current day. Staff only.
func (s *AttendanceService) Today(ctx context.Context, actor access.Identity) (*models.AttendanceDay, error) {
	if err := s.authorizeStaff(ctx, actor); err != nil {
		return nil, err
	}
	return s.day(ctx, s.now())
}

// day builds the board of the calendar day containing t.
func (s *AttendanceService) day(ctx context.Context, t time.Time) (*models.AttendanceDay, error) {
	start, end := dayBounds(t, s.location)
	rows, err := s.repo.ListForDay(ctx, start, end)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load attendance")
	}
	absent, err := s.repo.ListAbsent(ctx, start, end)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load absent children")
	}

	board := &models.AttendanceDay{
		Date:     t.In(s.location).Format(dateLayout),
		Present:  make([]models.Attendance, 0),
		Departed: make([]models.Attendance, 0),
		Absent:   absent,
	}

	// Rows arrive in check-in order; the open row wins, otherwise the last closed row.
	latest := make(map[string]int)
	order := make([]string, 0)
	for i, row := range rows {
		prev, seen := latest[row.ChildID]
		if !seen {
			order = append(order, row.ChildID)
			latest[row.ChildID] = i
			continue
		}
		if rows[prev].Open() && !row.Open() {
			continue
		}
		latest[row.ChildID] = i
	}
	for _, childID := range order {
		row := rows[latest[childID]]
		if row.Open() {
			board.Present = append(board.Present, row)
		} else {
			board.Departed = append(board.Departed, row)
		}
	}

	board.Summary = models.AttendanceSummary{
		Present:  len(board.Present),
		Departed: len(board.Departed),
		Absent:   len(board.Absent),
	}
	board.Summary.Total = board.Summary.Present + board.Summary.Departed + board.Summary.Absent
	return board, nil
}

// History returns a page of a child's attendance visible to the actor.
func (s *AttendanceService) History(ctx context.Context, actor access.Identity, childID string, q AttendanceHistoryQuery) ([]models.Attendance, models.Pagination, error) {
	if err := access.Authorize(ctx, s.children, actor, access.Resource{Kind: "child", ID: childID}); err != nil {
		return nil, models.Pagination{}, err
	}

	filter := models.AttendanceFilter{ChildID: childID}
	if q.From != "" {
		from, err := parseDate("from", q.From, s.location)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		fromUTC := from.UTC()
		filter.From = &fromUTC
	}
	if q.To != "" {
		to, err := parseDate("to", q.To, s.location)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		toUTC := to.AddDate(0, 0, 1).UTC()
		filter.To = &toUTC
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, models.Pagination{}, appErrors.Invalid("to", "must not be before from")
	}

	page := query.NewPage(q.Page, q.Limit)
	filter.Page, filter.Limit = page.Number, page.Limit
	items, total, err := s.repo.ListByChild(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Internal(err, "failed to load attendance history")
	}
	return items, page.Meta(total), nil
}

// Report renders the attendance sheet of a day. An empty date selects today.
func (s *AttendanceService) Report(ctx context.Context, actor access.Identity, date, format string) (*export.File, error) {
	if err := s.authorizeStaff(ctx, actor); err != nil {
		return nil, err
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Invalid("format", "must be one of: csv, pdf, xlsx")
	}

	day := s.now()
	if strings.TrimSpace(date) != "" {
		day, err = parseDate("date", date, s.location)
		if err != nil {
			return nil, err
		}
	}

	board, err := s.day(ctx, day)
	if err != nil {
		return nil, err
	}

	file, err := export.Render(f, s.dataset(board), "attendance-"+board.Date)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render attendance report")
	}
	s.metrics.RecordEvent(EventReportExported)
	return file, nil
}

func (s *AttendanceService) dataset(board *models.AttendanceDay) export.Dataset {
	data := export.Dataset{
		Title:   "Attendance " + board.Date,
		Headers: []string{"Child", "Status", "Check-in", "Check-out", "Notes"},
	}
	row := func(a models.Attendance, status string) []string {
		out := ""
		if a.CheckOutTime != nil {
			out = a.CheckOutTime.In(s.location).Format(timeLayout)
		}
		notes := ""
		if a.Notes != nil {
			notes = *a.Notes
		}
		return []string{
			strings.TrimSpace(a.ChildFirstName + " " + a.ChildLastName),
			status,
			a.CheckInTime.In(s.location).Format(timeLayout),
			out,
			notes,
		}
	}
	for _, a := range board.Present {
		data.Rows = append(data.Rows, row(a, "present"))
	}
	for _, a := range board.Departed {
		data.Rows = append(data.Rows, row(a, "departed"))
	}
	for _, c := range board.Absent {
		data.Rows = append(data.Rows, []string{strings.TrimSpace(c.FirstName + " " + c.LastName), "absent", "", "", ""})
	}
	return data
}

func (s *AttendanceService) authorizeStaff(ctx context.Context, actor access.Identity) error {
	return access.Authorize(ctx, access.RequireRoles(models.RoleAdmin, models.RoleStaff), actor, access.Resource{Kind: "attendance"})
}
