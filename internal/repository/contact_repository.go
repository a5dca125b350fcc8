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

const contactColumns = "id, name, email, phone, subject, message, status, replied_by, replied_at, created_at, updated_at"

// ContactRepository stores messages from the public contact form.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository creates a new instance of ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// List returns contacts matching the filter with the total count.
func (r *ContactRepository) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, int, error) {
	page := query.NewPage(filter.Page, filter.Limit)
	b := query.New(contactColumns, "contacts").
		WhereIf(filter.Status != nil, "status = ?", contactStatusArg(filter.Status)).
		Search(filter.Search, "name", "email", "subject").
		OrderBy("created_at DESC, id").
		Paginate(page)

	listQuery, args := b.Build()
	items := make([]models.Contact, 0)
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(listQuery), args...); err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}

	countQuery, countArgs := b.BuildCount()
	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}
	return items, total, nil
}

// FindByID returns a contact by identifier.
func (r *ContactRepository) FindByID(ctx context.Context, id string) (*models.Contact, error) {
	q := r.db.Rebind(`SELECT ` + contactColumns + ` FROM contacts WHERE id = ? LIMIT 1`)
	var item models.Contact
	if err := r.db.GetContext(ctx, &item, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find contact by id: %w", err)
	}
	return &item, nil
}

// Create inserts a new contact.
func (r *ContactRepository) Create(ctx context.Context, item *models.Contact) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	const q = `INSERT INTO contacts (id, name, email, phone, subject, message, status, replied_by, replied_at, created_at, updated_at) VALUES (:id, :name, :email, :phone, :subject, :message, :status, :replied_by, :replied_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, q, item); err != nil {
		return writeError("create contact", err)
	}
	return nil
}

// MarkRead moves a contact from new to read. It reports whether a row changed.
func (r *ContactRepository) MarkRead(ctx context.Context, id string) (bool, error) {
	q := r.db.Rebind(`UPDATE contacts SET status = ?, updated_at = ? WHERE id = ? AND status = ?`)
	res, err := r.db.ExecContext(ctx, q, string(models.ContactRead), time.Now().UTC(), id, string(models.ContactNew))
	if err != nil {
		return false, fmt.Errorf("mark contact read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark contact read: %w", err)
	}
	return n > 0, nil
}

// UpdateStatus writes status and reply metadata.
func (r *ContactRepository) UpdateStatus(ctx context.Context, item *models.Contact) error {
	item.UpdatedAt = time.Now().UTC()
	const q = `UPDATE contacts SET status = :status, replied_by = :replied_by, replied_at = :replied_at, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, q, item)
	if err != nil {
		return fmt.Errorf("update contact status: %w", err)
	}
	return affectedOrNotFound(res, "update contact status")
}

// Delete removes a contact.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	q := r.db.Rebind(`DELETE FROM contacts WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return affectedOrNotFound(res, "delete contact")
}

func contactStatusArg(status *models.ContactStatus) interface{} {
	if status == nil {
		return nil
	}
	return string(*status)
}
