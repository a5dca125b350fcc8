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

const childColumns = "c.id, c.first_name, c.last_name, c.birth_date, c.gender, c.medical_info, c.emergency_contact_name, c.emergency_contact_phone, c.photo_url, c.is_active, c.created_at, c.updated_at"

// ChildRepository provides database access for child records.
type ChildRepository struct {
	db *sqlx.DB
}

// NewChildRepository creates a new instance of ChildRepository.
func NewChildRepository(db *sqlx.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// List returns active children. With ParentID set only children holding an approved
// enrollment for that parent are returned.
func (r *ChildRepository) List(ctx context.Context, filter models.ChildFilter) ([]models.Child, int, error) {
	page := query.NewPage(filter.Page, filter.Limit)

	var b *query.Builder
	if filter.ParentID != "" {
		b = query.New("DISTINCT "+childColumns, "children c JOIN enrollments e ON e.child_id = c.id").
			CountExpr("COUNT(DISTINCT c.id)").
			Where("e.parent_id = ?", filter.ParentID).
			Where("e.status = ?", string(models.EnrollmentApproved))
	} else {
		b = query.New(childColumns, "children c")
	}
	b.Where("c.is_active = ?", true).
		WhereIf(filter.Gender != "", "c.gender = ?", filter.Gender).
		Search(filter.Search, "c.first_name", "c.last_name").
		OrderBy("c.last_name ASC, c.first_name ASC, c.id").
		Paginate(page)

	listQuery, args := b.Build()
	children := make([]models.Child, 0)
	if err := r.db.SelectContext(ctx, &children, r.db.Rebind(listQuery), args...); err != nil {
		return nil, 0, fmt.Errorf("list children: %w", err)
	}

	countQuery, countArgs := b.BuildCount()
	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count children: %w", err)
	}
	return children, total, nil
}

// FindByID returns an active child.
func (r *ChildRepository) FindByID(ctx context.Context, id string) (*models.Child, error) {
	q := r.db.Rebind(`SELECT ` + childColumns + ` FROM children c WHERE c.id = ? AND c.is_active = ? LIMIT 1`)
	var child models.Child
	if err := r.db.GetContext(ctx, &child, q, id, true); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find child by id: %w", err)
	}
	return &child, nil
}

// Create inserts a new child.
func (r *ChildRepository) Create(ctx context.Context, child *models.Child) error {
	if child.ID == "" {
		child.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	child.CreatedAt = now
	child.UpdatedAt = now
	child.IsActive = true

	const q = `INSERT INTO children (id, first_name, last_name, birth_date, gender, medical_info, emergency_contact_name, emergency_contact_phone, photo_url, is_active, created_at, updated_at) VALUES (:id, :first_name, :last_name, :birth_date, :gender, :medical_info, :emergency_contact_name, :emergency_contact_phone, :photo_url, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, q, child); err != nil {
		return writeError("create child", err)
	}
	return nil
}

// Update writes the mutable fields of an active child.
func (r *ChildRepository) Update(ctx context.Context, child *models.Child) error {
	child.UpdatedAt = time.Now().UTC()
	const q = `UPDATE children SET first_name = :first_name, last_name = :last_name, birth_date = :birth_date, gender = :gender, medical_info = :medical_info, emergency_contact_name = :emergency_contact_name, emergency_contact_phone = :emergency_contact_phone, photo_url = :photo_url, updated_at = :updated_at WHERE id = :id AND is_active = TRUE`
	res, err := r.db.NamedExecContext(ctx, q, child)
	if err != nil {
		return writeError("update child", err)
	}
	return affectedOrNotFound(res, "update child")
}

// Deactivate performs a soft delete.
func (r *ChildRepository) Deactivate(ctx context.Context, id string) error {
	q := r.db.Rebind(`UPDATE children SET is_active = ?, updated_at = ? WHERE id = ? AND is_active = ?`)
	res, err := r.db.ExecContext(ctx, q, false, time.Now().UTC(), id, true)
	if err != nil {
		return fmt.Errorf("deactivate child: %w", err)
	}
	return affectedOrNotFound(res, "deactivate child")
}
