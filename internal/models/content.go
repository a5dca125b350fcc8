package models

import "time"

// ContentKind distinguishes the two bilingual content tables.
type ContentKind string

const (
	ContentArticle ContentKind = "article"
	ContentNews    ContentKind = "news"
)

// ContentStatus is either draft or published.
type ContentStatus string

const (
	ContentDraft     ContentStatus = "draft"
	ContentPublished ContentStatus = "published"
)

// Content is an article or news item in French and English.
type Content struct {
	ID          string        `db:"id" json:"id"`
	TitleFR     string        `db:"title_fr" json:"title_fr"`
	TitleEN     string        `db:"title_en" json:"title_en"`
	ContentFR   string        `db:"content_fr" json:"content_fr"`
	ContentEN   string        `db:"content_en" json:"content_en"`
	ExcerptFR   *string       `db:"excerpt_fr" json:"excerpt_fr,omitempty"`
	ExcerptEN   *string       `db:"excerpt_en" json:"excerpt_en,omitempty"`
	Category    *string       `db:"category" json:"category,omitempty"`
	ImageURL    *string       `db:"image_url" json:"image_url,omitempty"`
	AuthorID    string        `db:"author_id" json:"author_id"`
	Status      ContentStatus `db:"status" json:"status"`
	PublishedAt *time.Time    `db:"published_at" json:"published_at"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// ContentFilter captures filters for listing content.
type ContentFilter struct {
	Status   *ContentStatus
	Category string
	Search   string
	Page     int
	Limit    int
}
