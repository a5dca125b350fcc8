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

const contentColumns = "id, title_fr, title_en, content_fr, content_en, excerpt_fr, excerpt_en, category, image_url, author_id, status, published_at, created_at, updated_at"

// ContentRepository stores bilingual articles or news in their own table.
type ContentRepository struct {
	db    *sqlx.DB
	table string
	kind  models.ContentKind
}

// NewContentRepository creates a repository bound to the table of the given kind.
func NewContentRepository(db *sqlx.DB, kind models.ContentKind) *ContentRepository {
	table := "articles"
	if kind == models.ContentNews {
		table = "news"
	}
	return &ContentRepository{db: db, table: table, kind: kind}
}

// Kind returns the content kind served by this repository.
func (r *ContentRepository) Kind() models.ContentKind {
	return r.kind
}

// List returns content matching the filter with the total count.
func (r *ContentRepository) List(ctx context.Context, filter models.ContentFilter) ([]models.Content, int, error) {
	page := query.NewPage(filter.Page, filter.Limit)
	b := query.New(contentColumns, r.table).
		WhereIf(filter.Status != nil, "status = ?", contentStatusArg(filter.Status)).
		WhereIf(filter.Category != "", "category = ?", filter.Category).
		Search(filter.Search, "title_fr", "title_en", "content_fr", "content_en").
		OrderBy("COALESCE(published_at, created_at) DESC, id").
		Paginate(page)

	listQuery, args := b.Build()
	items := make([]models.Content, 0)
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(listQuery), args...); err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", r.table, err)
	}

	countQuery, countArgs := b.BuildCount()
	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.table, err)
	}
	return items, total, nil
}

// FindByID returns a content row by identifier.
func (r *ContentRepository) FindByID(ctx context.Context, id string) (*models.Content, error) {
	q := r.db.Rebind(`SELECT ` + contentColumns + ` FROM ` + r.table + ` WHERE id = ? LIMIT 1`)
	var item models.Content
	if err := r.db.GetContext(ctx, &item, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find %s by id: %w", r.table, err)
	}
	return &item, nil
}

// Create inserts a content row.
func (r *ContentRepository) Create(ctx context.Context, item *models.Content) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	q := `INSERT INTO ` + r.table + ` (` + contentColumns + `) VALUES (:id, :title_fr, :title_en, :content_fr, :content_en, :excerpt_fr, :excerpt_en, :category, :image_url, :author_id, :status, :published_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, q, item); err != nil {
		return writeError("create "+r.table, err)
	}
	return nil
}

// Update writes every mutable field including status and published_at.
func (r *ContentRepository) Update(ctx context.Context, item *models.Content) error {
	item.UpdatedAt = time.Now().UTC()
	q := `UPDATE ` + r.table + ` SET title_fr = :title_fr, title_en = :title_en, content_fr = :content_fr, content_en = :content_en, excerpt_fr = :excerpt_fr, excerpt_en = :excerpt_en, category = :category, image_url = :image_url, status = :status, published_at = :published_at, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, q, item)
	if err != nil {
		return writeError("update "+r.table, err)
	}
	return affectedOrNotFound(res, "update "+r.table)
}

// Delete removes a content row.
func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	q := r.db.Rebind(`DELETE FROM ` + r.table + ` WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}
	return affectedOrNotFound(res, "delete "+r.table)
}

func contentStatusArg(status *models.ContentStatus) interface{} {
	if status == nil {
		return nil
	}
	return string(*status)
}
