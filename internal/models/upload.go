package models

import (
	"strings"
	"time"
)

// Upload is the metadata row of a stored file.
type Upload struct {
	ID            string    `db:"id" json:"id"`
	OriginalName  string    `db:"original_name" json:"original_name"`
	Filename      string    `db:"filename" json:"filename"`
	MimeType      string    `db:"mimetype" json:"mimetype"`
	Size          int64     `db:"size" json:"size"`
	Path          string    `db:"path" json:"-"`
	URL           string    `db:"url" json:"url"`
	ThumbnailPath *string   `db:"thumbnail_path" json:"-"`
	ThumbnailURL  *string   `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	UploadedBy    string    `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// IsImage reports whether the stored file is an image.
func (u *Upload) IsImage() bool {
	return strings.HasPrefix(u.MimeType, "image/")
}

// UploadFilter captures filters for listing uploads.
type UploadFilter struct {
	UploadedBy string
	MimePrefix string
	Page       int
	Limit      int
}
