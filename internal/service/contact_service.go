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

type contactRepository interface {
	List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, int, error)
	FindByID(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context, item *models.Contact) error
	MarkRead(ctx context.Context, id string) (bool, error)
	UpdateStatus(ctx context.Context, item *models.Contact) error
	Delete(ctx context.Context, id string) error
}

// SubmitContactRequest is the public contact form.
type SubmitContactRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Subject string  `json:"subject" validate:"required,max=255"`
	Message string  `json:"message" validate:"required,max=5000"`
}

// UpdateContactStatusRequest moves a contact forward.
type UpdateContactStatusRequest struct {
	Status models.ContactStatus `json:"status" validate:"required,oneof=read replied"`
}

// ContactService handles public messages and their staff follow-up.
type ContactService struct {
	repo      contactRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	now       func() time.Time
}

// NewContactService constructs a ContactService.
func NewContactService(repo contactRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &ContactService{repo: repo, validator: validate, logger: logger, metrics: metrics, now: time.Now}
}

// Submit stores a message from the public form with status new.
func (s *ContactService) Submit(ctx context.Context, req SubmitContactRequest) (*models.Contact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid contact payload")
	}
	item := &models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   normalizeEmail(req.Email),
		Phone:   trimPtr(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Status:  models.ContactNew,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, repoError(err, "contact", "create")
	}
	s.metrics.RecordEvent(EventContactSubmitted)
	s.logger.Info("contact submitted", zap.String("contact_id", item.ID))
	return item, nil
}

// List returns contacts. Staff only.
func (s *ContactService) List(ctx context.Context, actor access.Identity, filter models.ContactFilter) ([]models.Contact, models.Pagination, error) {
	if err := s.authorizeStaff(ctx, actor, ""); err != nil {
		return nil, models.Pagination{}, err
	}
	page := query.NewPage(filter.Page, filter.Limit)
	filter.Page, filter.Limit = page.Number, page.Limit
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Internal(err, "failed to list contacts")
	}
	return items, page.Meta(total), nil
}

// Get returns a contact and marks it read on first staff view.
func (s *ContactService) Get(ctx context.Context, actor access.Identity, id string) (*models.Contact, error) {
	if err := s.authorizeStaff(ctx, actor, id); err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "contact", "load")
	}
	if item.Status == models.ContactNew {
		changed, err := s.repo.MarkRead(ctx, id)
		if err != nil {
			s.logger.Warn("failed to mark contact read", zap.String("contact_id", id), zap.Error(err))
		} else if changed {
			item.Status = models.ContactRead
		}
	}
	return item, nil
}

// UpdateStatus sets read or replied. Replied is terminal and records the responder.
func (s *ContactService) UpdateStatus(ctx context.Context, actor access.Identity, id string, req UpdateContactStatusRequest) (*models.Contact, error) {
	if err := s.authorizeStaff(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid contact status")
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "contact", "load")
	}
	if item.Status == models.ContactReplied {
		if req.Status == models.ContactReplied {
			return item, nil
		}
		return nil, appErrors.Clone(appErrors.ErrConflict, "contact has already been replied to")
	}

	item.Status = req.Status
	if req.Status == models.ContactReplied {
		now := s.now().UTC()
		responder := actor.UserID
		item.RepliedBy = &responder
		item.RepliedAt = &now
	}
	if err := s.repo.UpdateStatus(ctx, item); err != nil {
		return nil, repoError(err, "contact", "update")
	}
	return item, nil
}

// Delete removes a contact. Staff only.
func (s *ContactService) Delete(ctx context.Context, actor access.Identity, id string) error {
	if err := s.authorizeStaff(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err, "contact", "delete")
	}
	return nil
}

func (s *ContactService) authorizeStaff(ctx context.Context, actor access.Identity, id string) error {
	return access.Authorize(ctx, access.RequireRoles(models.RoleAdmin, models.RoleStaff), actor, access.Resource{Kind: "contact", ID: id})
}
