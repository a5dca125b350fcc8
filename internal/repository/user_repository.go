package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/query"
)

const userColumns = "id, email, password_hash, first_name, last_name, phone, role, is_active, created_at, updated_at"

// UserRepository provides database access for user management.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address regardless of active state.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	q := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ? LIMIT 1`)
	var user models.User
	if err := r.db.GetContext(ctx, &user, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier regardless of active state.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	q := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ? LIMIT 1`)
	var user models.User
	if err := r.db.GetContext(ctx, &user, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// List returns active users matching the filter with the total count.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	page := query.NewPage(filter.Page, filter.Limit)
	b := query.New(userColumns, "users").
		Where("is_active = ?", true).
		WhereIf(filter.Role != nil, "role = ?", roleArg(filter.Role)).
		Search(filter.Search, "email", "first_name", "last_name").
		OrderBy("created_at DESC, id").
		Paginate(page)

	listQuery, args := b.Build()
	users := make([]models.User, 0)
	if err := r.db.SelectContext(ctx, &users, r.db.Rebind(listQuery), args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	countQuery, countArgs := b.BuildCount()
	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return users, total, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	const q = `INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role, is_active, created_at, updated_at) VALUES (:id, :email, :password_hash, :first_name, :last_name, :phone, :role, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, q, user); err != nil {
		return writeError("create user", err)
	}
	return nil
}

// Update writes the mutable profile and account fields of a user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	const q = `UPDATE users SET email = :email, first_name = :first_name, last_name = :last_name, phone = :phone, role = :role, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, q, user)
	if err != nil {
		return writeError("update user", err)
	}
	return affectedOrNotFound(res, "update user")
}

// UpdatePassword updates the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	q := r.db.Rebind(`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, q, passwordHash, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Deactivate performs a soft delete by marking the user inactive.
func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	q := r.db.Rebind(`UPDATE users SET is_active = ?, updated_at = ? WHERE id = ? AND is_active = ?`)
	res, err := r.db.ExecContext(ctx, q, false, time.Now().UTC(), id, true)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	return affectedOrNotFound(res, "deactivate user")
}

func roleArg(role *models.UserRole) interface{} {
	if role == nil {
		return nil
	}
	return string(*role)
}
