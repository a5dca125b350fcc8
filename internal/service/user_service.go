package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/query"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Deactivate(ctx context.Context, id string) error
}

// CreateUserRequest represents payload for creating users.
type CreateUserRequest struct {
	Email     string          `json:"email" validate:"required,email,max=255"`
	Password  string          `json:"password" validate:"required,min=6,max=72"`
	FirstName string          `json:"first_name" validate:"required,max=100"`
	LastName  string          `json:"last_name" validate:"required,max=100"`
	Phone     *string         `json:"phone" validate:"omitempty,max=30"`
	Role      models.UserRole `json:"role" validate:"required,oneof=admin staff parent"`
}

// UpdateUserRequest payload for updating users. Role, active flag and email are admin-only.
type UpdateUserRequest struct {
	Email     *string          `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string          `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string          `json:"last_name" validate:"omitempty,min=1,max=100"`
	Phone     *string          `json:"phone" validate:"omitempty,max=30"`
	Role      *models.UserRole `json:"role" validate:"omitempty,oneof=admin staff parent"`
	// IsActive false deactivates the account. Inactive users are not addressable, so true is a no-op.
	IsActive *bool `json:"is_active"`
}

// UserService handles user management workflows.
type UserService struct {
	repo       userRepository
	validator  *validator.Validate
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger, bcryptCost int) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, validator: validate, logger: logger, bcryptCost: bcryptCost}
}

// List returns active users. Admin only.
func (s *UserService) List(ctx context.Context, actor access.Identity, filter models.UserFilter) ([]models.User, models.Pagination, error) {
	if err := access.Authorize(ctx, access.RequireRoles(models.RoleAdmin), actor, access.Resource{Kind: "user"}); err != nil {
		return nil, models.Pagination{}, err
	}
	if filter.Role != nil && !filter.Role.Valid() {
		return nil, models.Pagination{}, appErrors.Invalid("role", "must be one of: admin, staff, parent")
	}

	page := query.NewPage(filter.Page, filter.Limit)
	filter.Page, filter.Limit = page.Number, page.Limit
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Internal(err, "failed to list users")
	}
	return users, page.Meta(total), nil
}

// Get returns an active user visible to the actor.
func (s *UserService) Get(ctx context.Context, actor access.Identity, id string) (*models.User, error) {
	if err := access.Authorize(ctx, access.OwnerOrStaff(), actor, access.Resource{Kind: "user", ID: id, OwnerID: id}); err != nil {
		return nil, err
	}
	return s.findActive(ctx, id)
}

// Create inserts a user with any role. Admin only.
func (s *UserService) Create(ctx context.Context, actor access.Identity, req CreateUserRequest) (*models.User, error) {
	if err := access.Authorize(ctx, access.RequireRoles(models.RoleAdmin), actor, access.Resource{Kind: "user"}); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid user payload")
	}

	email := normalizeEmail(req.Email)
	if err := s.ensureEmailAvailable(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        trimPtr(req.Phone),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, repoError(err, "user", "create")
	}

	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)), zap.String("actor", actor.UserID))
	return user, nil
}

// Update edits a user. Admins may edit anyone; other users only themselves and only profile fields.
func (s *UserService) Update(ctx context.Context, actor access.Identity, id string, req UpdateUserRequest) (*models.User, error) {
	policy := access.AnyOf(access.RequireRoles(models.RoleAdmin), access.Owner())
	if err := access.Authorize(ctx, policy, actor, access.Resource{Kind: "user", ID: id, OwnerID: id}); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid user payload")
	}

	isAdmin := access.HasRole(actor, models.RoleAdmin)
	if !isAdmin && (req.Role != nil || req.IsActive != nil || req.Email != nil) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admins can change email, role or status")
	}
	if req.IsActive != nil && !*req.IsActive && actor.UserID == id {
		return nil, appErrors.Invalid("is_active", "cannot deactivate your own account")
	}

	user, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			if err := s.ensureEmailAvailable(ctx, email, user.ID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		user.Phone = trimPtr(req.Phone)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, repoError(err, "user", "update")
	}
	return user, nil
}

// Delete deactivates a user. Admin only and never the caller.
func (s *UserService) Delete(ctx context.Context, actor access.Identity, id string) error {
	if err := access.Authorize(ctx, access.RequireRoles(models.RoleAdmin), actor, access.Resource{Kind: "user", ID: id}); err != nil {
		return err
	}
	if actor.UserID == id {
		return appErrors.Invalid("id", "cannot deactivate your own account")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return repoError(err, "user", "delete")
	}
	s.logger.Info("user deactivated", zap.String("user_id", id), zap.String("actor", actor.UserID))
	return nil
}

func (s *UserService) findActive(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "user", "load")
	}
	if !user.IsActive {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return user, nil
}

func (s *UserService) ensureEmailAvailable(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != selfID:
		return appErrors.Clone(appErrors.ErrConflict, "email already registered")
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return appErrors.Internal(err, "failed to check email uniqueness")
	}
	return nil
}
