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

type contentRepository interface {
	Kind() models.ContentKind
	List(ctx context.Context, filter models.ContentFilter) ([]models.Content, int, error)
	FindByID(ctx context.Context, id string) (*models.Content, error)
	Create(ctx context.Context, item *models.Content) error
	Update(ctx context.Context, item *models.Content) error
	Delete(ctx context.Context, id string) error
}

// CreateContentRequest is the payload for a new article or news item.
type CreateContentRequest struct {
	TitleFR   string                `json:"title_fr" validate:"required,max=255"`
	TitleEN   string                `json:"title_en" validate:"required,max=255"`
	ContentFR string                `json:"content_fr" validate:"required"`
	ContentEN string                `json:"content_en" validate:"required"`
	ExcerptFR *string               `json:"excerpt_fr" validate:"omitempty,max=500"`
	ExcerptEN *string               `json:"excerpt_en" validate:"omitempty,max=500"`
	Category  *string               `json:"category" validate:"omitempty,max=100"`
	ImageURL  *string               `json:"image_url" validate:"omitempty,max=500"`
	Status    *models.ContentStatus `json:"status" validate:"omitempty,oneof=draft published"`
}

// UpdateContentRequest edits content. Absent fields are left unchanged.
type UpdateContentRequest struct {
	TitleFR   *string               `json:"title_fr" validate:"omitempty,min=1,max=255"`
	TitleEN   *string               `json:"title_en" validate:"omitempty,min=1,max=255"`
	ContentFR *string               `json:"content_fr" validate:"omitempty,min=1"`
	ContentEN *string               `json:"content_en" validate:"omitempty,min=1"`
	ExcerptFR *string               `json:"excerpt_fr" validate:"omitempty,max=500"`
	ExcerptEN *string               `json:"excerpt_en" validate:"omitempty,max=500"`
	Category  *string               `json:"category" validate:"omitempty,max=100"`
	ImageURL  *string               `json:"image_url" validate:"omitempty,max=500"`
	Status    *models.ContentStatus `json:"status" validate:"omitempty,oneof=draft published"`
}

// ContentService manages one bilingual content table (articles or news).
type ContentService struct {
	repo      contentRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewContentService constructs a ContentService bound to the repository's kind.
func NewContentService(repo contentRepository, validate *validator.Validate, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &ContentService{repo: repo, validator: validate, logger: logger.With(zap.String("kind", string(repo.Kind()))), now: time.Now}
}

// Kind returns the content kind served.
func (s *ContentService) Kind() models.ContentKind {
	return s.repo.Kind()
}

// List returns content. Anonymous callers and parents only see published items.
func (s *ContentService) List(ctx context.Context, actor access.Identity, filter models.ContentFilter) ([]models.Content, models.Pagination, error) {
	if !access.IsStaff(actor) {
		published := models.ContentPublished
		filter.Status = &published
	}

	page := query.NewPage(filter.Page, filter.Limit)
	filter.Page, filter.Limit = page.Number, page.Limit
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Internal(err, "failed to list "+s.label())
	}
	return items, page.Meta(total), nil
}

// Get returns one item. Drafts are invisible outside staff.
func (s *ContentService) Get(ctx context.Context, actor access.Identity, id string) (*models.Content, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, s.label(), "load")
	}
	if item.Status != models.ContentPublished && !access.IsStaff(actor) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, s.label()+" not found")
	}
	return item, nil
}

// Create stores a new item authored by the actor. Staff only.
func (s *ContentService) Create(ctx context.Context, actor access.Identity, req CreateContentRequest) (*models.Content, error) {
	if err := s.authorizeStaff(ctx, actor, ""); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid "+s.label()+" payload")
	}

	item := &models.Content{
		TitleFR:   strings.TrimSpace(req.TitleFR),
		TitleEN:   strings.TrimSpace(req.TitleEN),
		ContentFR: req.ContentFR,
		ContentEN: req.ContentEN,
		ExcerptFR: trimPtr(req.ExcerptFR),
		ExcerptEN: trimPtr(req.ExcerptEN),
		Category:  trimPtr(req.Category),
		ImageURL:  trimPtr(req.ImageURL),
		AuthorID:  actor.UserID,
		Status:    models.ContentDraft,
	}
	if req.Status != nil {
		s.transition(item, *req.Status)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, repoError(err, s.label(), "create")
	}
	s.logger.Info("content created", zap.String("id", item.ID), zap.String("status", string(item.Status)))
	return item, nil
}

// Update edits an item and applies status transitions. Staff only.
func (s *ContentService) Update(ctx context.Context, actor access.Identity, id string, req UpdateContentRequest) (*models.Content, error) {
	if err := s.authorizeStaff(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid "+s.label()+" payload")
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, s.label(), "load")
	}

	if req.TitleFR != nil {
		item.TitleFR = strings.TrimSpace(*req.TitleFR)
	}
	if req.TitleEN != nil {
		item.TitleEN = strings.TrimSpace(*req.TitleEN)
	}
	if req.ContentFR != nil {
		item.ContentFR = *req.ContentFR
	}
	if req.ContentEN != nil {
		item.ContentEN = *req.ContentEN
	}
	if req.ExcerptFR != nil {
		item.ExcerptFR = trimPtr(req.ExcerptFR)
	}
	if req.ExcerptEN != nil {
		item.ExcerptEN = trimPtr(req.ExcerptEN)
	}
	if req.Category != nil {
		item.Category = trimPtr(req.Category)
	}
	if req.ImageURL != nil {
		item.ImageURL = trimPtr(req.ImageURL)
	}
	if req.Status != nil {
		s.transition(item, *req.Status)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, repoError(err, s.label(), "update")
	}
	return item, nil
}

// Delete removes an item. Staff only.
func (s *ContentService) Delete(ctx context.Context, actor access.Identity, id string) error {
	if err := s.authorizeStaff(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err, s.label(), "delete")
	}
	s.logger.Info("content deleted", zap.String("id", id), zap.String("actor", actor.UserID))
	return nil
}

// transition moves between draft and published. published_at is set on publish and cleared on draft.
func (s *ContentService) transition(item *models.Content, to models.ContentStatus) {
	if item.Status == to {
		return
	}
	item.Status = to
	switch to {
	case models.ContentPublished:
		now := s.now().UTC()
		item.PublishedAt = &now
	case models.ContentDraft:
		item.PublishedAt = nil
	}
}

func (s *ContentService) authorizeStaff(ctx context.Context, actor access.Identity, id string) error {
	return access.Authorize(ctx, access.RequireRoles(models.RoleAdmin, models.RoleStaff), actor, access.Resource{Kind: s.label(), ID: id})
}

func (s *ContentService) label() string {
	return string(s.repo.Kind())
}
