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

const uploadColumns = "id, original_name, filename, mimetype, size, path, url, thumbnail_path, thumbnail_url, uploaded_by, created_at"

// UploadRepository stores metadata for uploaded files.
type UploadRepository struct {
	db *sqlx.DB
}

// NewUploadRepository creates a new instance of UploadRepository.
func NewUploadRepository(db *sqlx.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// List returns uploads matching the filter with the total count.
func (r *UploadRepository) List(ctx context.Context, filter models.UploadFilter) ([]models.Upload, int, error) {
	page := query.NewPage(filter.Page, filter.Limit)
	b := query.New(uploadColumns, "uploads").
		WhereIf(filter.UploadedBy != "", "uploaded_by = ?", filter.UploadedBy).
		WhereIf(filter.MimePrefix != "", "mimetype LIKE ?", escapePrefix(filter.MimePrefix)).
		OrderBy("created_at DESC, id").
		Paginate(page)

	listQuery, args := b.Build()
	items := make([]models.Upload, 0)
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(listQuery), args...); err != nil {
		return nil, 0, fmt.Errorf("list uploads: %w", err)
	}

	countQuery, countArgs := b.BuildCount()
	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count uploads: %w", err)
	}
	return items, total, nil
}

// FindByID returns an upload by identifier.
func (r *UploadRepository) FindByID(ctx context.Context, id string) (*models.Upload, error) {
	q := r.db.Rebind(`SELECT ` + uploadColumns + ` FROM uploads WHERE id = ? LIMIT 1`)
	var item models.Upload
	if err := r.db.GetContext(ctx, &item, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find upload by id: %w", err)
	}
	return &item, nil
}

// Create inserts upload metadata.
func (r *UploadRepository) Create(ctx context.Context, item *models.Upload) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	const q = `INSERT INTO uploads (id, original_name, filename, mimetype, size, path, url, thumbnail_path, thumbnail_url, uploaded_by, created_at) VALUES (:id, :original_name, :filename, :mimetype, :size, :path, :url, :thumbnail_path, :thumbnail_url, :uploaded_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, q, item); err != nil {
		return writeError("create upload", err)
	}
	return nil
}

// Delete removes upload metadata.
func (r *UploadRepository) Delete(ctx context.Context, id string) error {
	q := r.db.Rebind(`DELETE FROM uploads WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete upload: %w", err)
	}
	return affectedOrNotFound(res, "delete upload")
}

func escapePrefix(prefix string) string {
	out := make([]rune, 0, len(prefix)+1)
	for _, r := range prefix {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out) + "%"
}
