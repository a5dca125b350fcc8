package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/query"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
)

type enrollmentRepository interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, int, error)
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
	HasOpenEnrollment(ctx context.Context, parentID, childID, excludeID string) (bool, error)
	Create(ctx context.Context, item *models.Enrollment) error
	Update(ctx context.Context, item *models.Enrollment) error
	Delete(ctx context.Context, id string) error
}

type childReader interface {
	FindByID(ctx context.Context, id string) (*models.Child, error)
}

type userReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// CreateEnrollmentRequest links a parent to a child. ParentID and Status are honoured for staff only.
type CreateEnrollmentRequest struct {
	ChildID        string                   `json:"child_id" validate:"required"`
	ParentID       string                   `json:"parent_id"`
	Status         *models.EnrollmentStatus `json:"status" validate:"omitempty,oneof=pending approved rejected cancelled"`
	EnrollmentDate *string                  `json:"enrollment_date"`
	Notes          *string                  `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateEnrollmentRequest changes the status, date or notes of an enrollment.
type UpdateEnrollmentRequest struct {
	Status         *models.EnrollmentStatus `json:"status" validate:"omitempty,oneof=pending approved rejected cancelled"`
	EnrollmentDate *string                  `json:"enrollment_date"`
	Notes          *string                  `json:"notes" validate:"omitempty,max=2000"`
}

// EnrollmentService manages parent/child enrollments.
type EnrollmentService struct {
	repo      enrollmentRepository
	children  childReader
	users     userReader
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	location  *time.Location
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, children childReader, users userReader, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, loc *time.Location) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &EnrollmentService{repo: repo, children: children, users: users, validator: validate, logger: logger, metrics: metrics, location: loc}
}

// List returns enrollments. Parents only see their own.
func (s *EnrollmentService) List(ctx context.Context, actor access.Identity, filter models.EnrollmentFilter) ([]models.Enrollment, models.Pagination, error) {
	if !actor.Authenticated() {
		return nil, models.Pagination{}, appErrors.ErrUnauthenticated
	}
	if !access.IsStaff(actor) {
		filter.ParentID = actor.UserID
	}

	page := query.NewPage(filter.Page, filter.Limit)
	filter.Page, filter.Limit = page.Number, page.Limit
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Internal(err, "failed to list enrollments")
	}
	return items, page.Meta(total), nil
}

// Get returns an enrollment visible to its parent or staff.
func (s *EnrollmentService) Get(ctx context.Context, actor access.Identity, id string) (*models.Enrollment, error) {
	if !actor.Authenticated() {
		return nil, appErrors.ErrUnauthenticated
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "enrollment", "load")
	}
	if err := access.Authorize(ctx, access.OwnerOrStaff(), actor, enrollmentResource(item)); err != nil {
		return nil, err
	}
	return item, nil
}

// Create opens an enrollment. Parents always enroll for themselves with status pending.
func (s *EnrollmentService) Create(ctx context.Context, actor access.Identity, req CreateEnrollmentRequest) (*models.Enrollment, error) {
	if !actor.Authenticated() {
		return nil, appErrors.ErrUnauthenticated
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid enrollment payload")
	}

	item := &models.Enrollment{
		ChildID: req.ChildID,
		Status:  models.EnrollmentPending,
		Notes:   trimPtr(req.Notes),
	}
	if access.IsStaff(actor) {
		if req.ParentID == "" {
			return nil, appErrors.Invalid("parent_id", "is required")
		}
		item.ParentID = req.ParentID
		if req.Status != nil {
			item.Status = *req.Status
		}
	} else if access.HasRole(actor, models.RoleParent) {
		item.ParentID = actor.UserID
	} else {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "insufficient role")
	}

	if req.EnrollmentDate != nil {
		date, err := parseDate("enrollment_date", *req.EnrollmentDate, s.location)
		if err != nil {
			return nil, err
		}
		item.EnrollmentDate = date.UTC()
	}

	if err := s.ensureParent(ctx, item.ParentID); err != nil {
		return nil, err
	}
	child, err := s.children.FindByID(ctx, item.ChildID)
	if err != nil {
		return nil, repoError(err, "child", "load")
	}
	if isOpenEnrollment(item.Status) {
		if err := s.ensureNoOpenEnrollment(ctx, item.ParentID, item.ChildID, ""); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, repoError(err, "enrollment", "create")
	}
	item.ChildFirstName, item.ChildLastName = child.FirstName, child.LastName
	s.metrics.RecordEvent(EventEnrollmentCreate)
	s.logger.Info("enrollment created",
		zap.String("enrollment_id", item.ID),
		zap.String("parent_id", item.ParentID),
		zap.String("child_id", item.ChildID),
		zap.String("status", string(item.Status)),
	)
	return item, nil
}

// Update applies a staff decision, or a parent's cancellation or note edit on their pending enrollment.
func (s *EnrollmentService) Update(ctx context.Context, actor access.Identity, id string, req UpdateEnrollmentRequest) (*models.Enrollment, error) {
	if !actor.Authenticated() {
		return nil, appErrors.ErrUnauthenticated
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid enrollment payload")
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "enrollment", "load")
	}
	if err := access.Authorize(ctx, access.OwnerOrStaff(), actor, enrollmentResource(item)); err != nil {
		return nil, err
	}

	if !access.IsStaff(actor) {
		if item.Status != models.EnrollmentPending {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "only pending enrollments can be changed")
		}
		if req.EnrollmentDate != nil {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "only staff can change the enrollment date")
		}
		if req.Status != nil && *req.Status != models.EnrollmentCancelled && *req.Status != models.EnrollmentPending {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "parents can only cancel an enrollment")
		}
	}

	if req.Status != nil && *req.Status != item.Status {
		if isOpenEnrollment(*req.Status) && !isOpenEnrollment(item.Status) {
			if err := s.ensureNoOpenEnrollment(ctx, item.ParentID, item.ChildID, item.ID); err != nil {
				return nil, err
			}
		}
		item.Status = *req.Status
	}
	if req.EnrollmentDate != nil {
		date, err := parseDate("enrollment_date", *req.EnrollmentDate, s.location)
		if err != nil {
			return nil, err
		}
		item.EnrollmentDate = date.UTC()
	}
	if req.Notes != nil {
		item.Notes = trimPtr(req.Notes)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, repoError(err, "enrollment", "update")
	}
	s.logger.Info("enrollment updated",
		zap.String("enrollment_id", item.ID),
		zap.String("status", string(item.Status)),
		zap.String("actor", actor.UserID),
	)
	return item, nil
}

// Delete removes an enrollment. Staff only.
func (s *EnrollmentService) Delete(ctx context.Context, actor access.Identity, id string) error {
	if err := access.Authorize(ctx, access.RequireRoles(models.RoleAdmin, models.RoleStaff), actor, access.Resource{Kind: "enrollment", ID: id}); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err, "enrollment", "delete")
	}
	return nil
}

func (s *EnrollmentService) ensureParent(ctx context.Context, parentID string) error {
	user, err := s.users.FindByID(ctx, parentID)
	if err != nil {
		return repoError(err, "parent", "load")
	}
	if !user.IsActive {
		return appErrors.Clone(appErrors.ErrNotFound, "parent not found")
	}
	if user.Role != models.RoleParent {
		return appErrors.Invalid("parent_id", "must reference a parent account")
	}
	return nil
}

func (s *EnrollmentService) ensureNoOpenEnrollment(ctx context.Context, parentID, childID, excludeID string) error {
	exists, err := s.repo.HasOpenEnrollment(ctx, parentID, childID, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to check existing enrollments")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "an active enrollment already exists for this parent and child")
	}
	return nil
}

func enrollmentResource(item *models.Enrollment) access.Resource {
	return access.Resource{Kind: "enrollment", ID: item.ID, OwnerID: item.ParentID}
}

func isOpenEnrollment(status models.EnrollmentStatus) bool {
	return status == models.EnrollmentPending || status == models.EnrollmentApproved
}
