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

const enrollmentColumns = `e.id, e.parent_id, e.child_id, e.status, e.enrollment_date, e.notes, e.created_at, e.updated_at,
c.first_name AS child_first_name, c.last_name AS child_last_name,
u.first_name AS parent_first_name, u.last_name AS parent_last_name, u.email AS parent_email`

const enrollmentFrom = "enrollments e JOIN children c ON c.id = e.child_id JOIN users u ON u.id = e.parent_id"

// EnrollmentRepository provides database access for parent/child enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository creates a new instance of EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns enrollments matching the filter with the total count.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, int, error) {
	page := query.NewPage(filter.Page, filter.Limit)
	b := query.New(enrollmentColumns, enrollmentFrom).
		WhereIf(filter.ParentID != "", "e.parent_id = ?", filter.ParentID).
		WhereIf(filter.ChildID != "", "e.child_id = ?", filter.ChildID).
		WhereIf(filter.Status != nil, "e.status = ?", enrollmentStatusArg(filter.Status)).
		OrderBy("e.created_at DESC, e.id").
		Paginate(page)

	listQuery, args := b.Build()
	items := make([]models.Enrollment, 0)
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(listQuery), args...); err != nil {
		return nil, 0, fmt.Errorf("list enrollments: %w", err)
	}

	countQuery, countArgs := b.BuildCount()
	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}
	return items, total, nil
}

// FindByID returns an enrollment by identifier.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	q := r.db.Rebind(`SELECT ` + enrollmentColumns + ` FROM ` + enrollmentFrom + ` WHERE e.id = ? LIMIT 1`)
	var item models.Enrollment
	if err := r.db.GetContext(ctx, &item, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment by id: %w", err)
	}
	return &item, nil
}

// HasApprovedEnrollment reports whether the parent holds an approved enrollment for the child.
func (r *EnrollmentRepository) HasApprovedEnrollment(ctx context.Context, parentID, childID string) (bool, error) {
	q := r.db.Rebind(`SELECT COUNT(*) FROM enrollments WHERE parent_id = ? AND child_id = ? AND status = ?`)
	var count int
	if err := r.db.GetContext(ctx, &count, q, parentID, childID, string(models.EnrollmentApproved)); err != nil {
		return false, fmt.Errorf("check approved enrollment: %w", err)
	}
	return count > 0, nil
}

// HasOpenEnrollment reports whether a pending or approved enrollment links the pair,
// optionally ignoring one enrollment id.
func (r *EnrollmentRepository) HasOpenEnrollment(ctx context.Context, parentID, childID, excludeID string) (bool, error) {
	b := query.New("", "enrollments").
		Where("parent_id = ?", parentID).
		Where("child_id = ?", childID).
		Where("status IN (?, ?)", string(models.EnrollmentPending), string(models.EnrollmentApproved)).
		WhereIf(excludeID != "", "id <> ?", excludeID)
	q, args := b.BuildCount()
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(q), args...); err != nil {
		return false, fmt.Errorf("check open enrollment: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, item *models.Enrollment) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.EnrollmentDate.IsZero() {
		item.EnrollmentDate = now
	}
	const q = `INSERT INTO enrollments (id, parent_id, child_id, status, enrollment_date, notes, created_at, updated_at) VALUES (:id, :parent_id, :child_id, :status, :enrollment_date, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, q, item); err != nil {
		return writeError("create enrollment", err)
	}
	return nil
}

// Update writes status, date and notes.
func (r *EnrollmentRepository) Update(ctx context.Context, item *models.Enrollment) error {
	item.UpdatedAt = time.Now().UTC()
	const q = `UPDATE enrollments SET status = :status, enrollment_date = :enrollment_date, notes = :notes, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, q, item)
	if err != nil {
		return writeError("update enrollment", err)
	}
	return affectedOrNotFound(res, "update enrollment")
}

// Delete removes an enrollment row.
func (r *EnrollmentRepository) Delete(ctx context.Context, id string) error {
	q := r.db.Rebind(`DELETE FROM enrollments WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return affectedOrNotFound(res, "delete enrollment")
}

func enrollmentStatusArg(status *models.EnrollmentStatus) interface{} {
	if status == nil {
		return nil
	}
	return string(*status)
}
