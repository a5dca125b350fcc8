package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/query"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
)

type childRepository interface {
	List(ctx context.Context, filter models.ChildFilter) ([]models.Child, int, error)
	FindByID(ctx context.Context, id string) (*models.Child, error)
	Create(ctx context.Context, child *models.Child) error
	Update(ctx context.Context, child *models.Child) error
	Deactivate(ctx context.Context, id string) error
}

// CreateChildRequest is the payload for registering a child.
type CreateChildRequest struct {
	FirstName             string  `json:"first_name" validate:"required,max=100"`
	LastName              string  `json:"last_name" validate:"required,max=100"`
	BirthDate             string  `json:"birth_date" validate:"required"`
	Gender                string  `json:"gender" validate:"required,oneof=male female other"`
	MedicalInfo           *string `json:"medical_info" validate:"omitempty,max=2000"`
	EmergencyContactName  *string `json:"emergency_contact_name" validate:"omitempty,max=200"`
	EmergencyContactPhone *string `json:"emergency_contact_phone" validate:"omitempty,max=30"`
	PhotoURL              *string `json:"photo_url" validate:"omitempty,max=500"`
}

// UpdateChildRequest edits a child. Absent fields are left unchanged.
type UpdateChildRequest struct {
	FirstName             *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName              *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	BirthDate             *string `json:"birth_date"`
	Gender                *string `json:"gender" validate:"omitempty,oneof=male female other"`
	MedicalInfo           *string `json:"medical_info" validate:"omitempty,max=2000"`
	EmergencyContactName  *string `json:"emergency_contact_name" validate:"omitempty,max=200"`
	EmergencyContactPhone *string `json:"emergency_contact_phone" validate:"omitempty,max=30"`
	PhotoURL              *string `json:"photo_url" validate:"omitempty,max=500"`
}

// ChildService manages child records and their visibility.
type ChildService struct {
	repo      childRepository
	access    access.Policy
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
}

// NewChildService constructs a ChildService.
func NewChildService(repo childRepository, enrollments access.EnrollmentChecker, validate *validator.Validate, logger *zap.Logger, loc *time.Location) *ChildService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ChildService{
		repo:      repo,
		access:    access.ChildAccess(enrollments),
		validator: validate,
		logger:    logger,
		location:  loc,
		now:       time.Now,
	}
}

// List returns active children. Parents only see children with an approved enrollment.
func (s *ChildService) List(ctx context.Context, actor access.Identity, filter models.ChildFilter) ([]models.Child, models.Pagination, error) {
	if !actor.Authenticated() {
		return nil, models.Pagination{}, appErrors.ErrUnauthenticated
	}
	if !access.IsStaff(actor) {
		filter.ParentID = actor.UserID
	}

	page := query.NewPage(filter.Page, filter.Limit)
	filter.Page, filter.Limit = page.Number, page.Limit
	children, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Internal(err, "failed to list children")
	}

	now := s.now().In(s.location)
	for i := range children {
		children[i].WithAge(now)
	}
	return children, page.Meta(total), nil
}

// Get returns a child the actor may see.
func (s *ChildService) Get(ctx context.Context, actor access.Identity, id string) (*models.Child, error) {
	if err := s.Authorize(ctx, actor, id); err != nil {
		return nil, err
	}
	child, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "child", "load")
	}
	return child.WithAge(s.now().In(s.location)), nil
}

// Authorize checks child access for the actor.
func (s *ChildService) Authorize(ctx context.Context, actor access.Identity, childID string) error {
	return access.Authorize(ctx, s.access, actor, access.Resource{Kind: "child", ID: childID})
}

// Create registers a child. Staff only.
func (s *ChildService) Create(ctx context.Context, actor access.Identity, req CreateChildRequest) (*models.Child, error) {
	if err := access.Authorize(ctx, access.RequireRoles(models.RoleAdmin, models.RoleStaff), actor, access.Resource{Kind: "child"}); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid child payload")
	}
	birth, err := s.parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	child := &models.Child{
		FirstName:             strings.TrimSpace(req.FirstName),
		LastName:              strings.TrimSpace(req.LastName),
		BirthDate:             birth,
		Gender:                req.Gender,
		MedicalInfo:           trimPtr(req.MedicalInfo),
		EmergencyContactName:  trimPtr(req.EmergencyContactName),
		EmergencyContactPhone: trimPtr(req.EmergencyContactPhone),
		PhotoURL:              trimPtr(req.PhotoURL),
	}
	if err := s.repo.Create(ctx, child); err != nil {
		return nil, repoError(err, "child", "create")
	}
	s.logger.Info("child created", zap.String("child_id", child.ID), zap.String("actor", actor.UserID))
	return child.WithAge(s.now().In(s.location)), nil
}

// Update edits an active child. Staff only.
func (s *ChildService) Update(ctx context.Context, actor access.Identity, id string, req UpdateChildRequest) (*models.Child, error) {
	if err := access.Authorize(ctx, access.RequireRoles(models.RoleAdmin, models.RoleStaff), actor, access.Resource{Kind: "child", ID: id}); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid child payload")
	}

	child, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "child", "load")
	}

	if req.FirstName != nil {
		child.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		child.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.BirthDate != nil {
		birth, err := s.parseBirthDate(*req.BirthDate)
		if err != nil {
			return nil, err
		}
		child.BirthDate = birth
	}
	if req.Gender != nil {
		child.Gender = *req.Gender
	}
	if req.MedicalInfo != nil {
		child.MedicalInfo = trimPtr(req.MedicalInfo)
	}
	if req.EmergencyContactName != nil {
		child.EmergencyContactName = trimPtr(req.EmergencyContactName)
	}
	if req.EmergencyContactPhone != nil {
		child.EmergencyContactPhone = trimPtr(req.EmergencyContactPhone)
	}
	if req.PhotoURL != nil {
		child.PhotoURL = trimPtr(req.PhotoURL)
	}

	if err := s.repo.Update(ctx, child); err != nil {
		return nil, repoError(err, "child", "update")
	}
	return child.WithAge(s.now().In(s.location)), nil
}

// Delete soft-deletes a child. Staff only.
func (s *ChildService) Delete(ctx context.Context, actor access.Identity, id string) error {
	if err := access.Authorize(ctx, access.RequireRoles(models.RoleAdmin, models.RoleStaff), actor, access.Resource{Kind: "child", ID: id}); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return repoError(err, "child", "delete")
	}
	s.logger.Info("child deactivated", zap.String("child_id", id), zap.String("actor", actor.UserID))
	return nil
}

func (s *ChildService) parseBirthDate(raw string) (time.Time, error) {
	birth, err := parseDate("birth_date", raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	if birth.Format(dateLayout) > s.now().In(s.location).Format(dateLayout) {
		return time.Time{}, appErrors.Invalid("birth_date", "must not be in the future")
	}
	return birth, nil
}
