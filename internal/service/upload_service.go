package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/query"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
	"github.com/noah-isme/daycare-api/pkg/jobs"
	"github.com/noah-isme/daycare-api/pkg/storage"
	"github.com/noah-isme/daycare-api/pkg/thumbnail"
)

const (
	thumbnailDir = "thumbs"

	// JobDeleteBlob retries a storage delete that failed after its row was removed.
	JobDeleteBlob = "upload.blob.delete"
)

type uploadRepository interface {
	List(ctx context.Context, filter models.UploadFilter) ([]models.Upload, int, error)
	FindByID(ctx context.Context, id string) (*models.Upload, error)
	Create(ctx context.Context, item *models.Upload) error
	Delete(ctx context.Context, id string) error
}

type jobQueue interface {
	Enqueue(job jobs.Job) error
}

// UploadConfig bounds accepted files.
type UploadConfig struct {
	MaxFileSize  int64
	MaxFiles     int
	AllowedMIMEs []string
}

// UploadInput is one file received from a multipart form.
type UploadInput struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// UploadService stores media blobs and their metadata.
type UploadService struct {
	repo       uploadRepository
	store      storage.Store
	thumbnails *thumbnail.Generator
	logger     *zap.Logger
	metrics    *MetricsService
	config     UploadConfig
	allowed    map[string]struct{}
	cleanup    jobQueue
}

// NewUploadService constructs an UploadService.
func NewUploadService(repo uploadRepository, store storage.Store, thumbnails *thumbnail.Generator, logger *zap.Logger, metrics *MetricsService, config UploadConfig) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = 5 << 20
	}
	if config.MaxFiles <= 0 {
		config.MaxFiles = 10
	}
	allowed := make(map[string]struct{}, len(config.AllowedMIMEs))
	for _, m := range config.AllowedMIMEs {
		allowed[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}
	return &UploadService{
		repo:       repo,
		store:      store,
		thumbnails: thumbnails,
		logger:     logger,
		metrics:    metrics,
		config:     config,
		allowed:    allowed,
	}
}

// UseCleanupQueue routes failed blob deletions to a retrying background queue.
func (s *UploadService) UseCleanupQueue(q jobQueue) {
	s.cleanup = q
}

// DeleteBlobJob is the cleanup queue handler.
func (s *UploadService) DeleteBlobJob(ctx context.Context, job jobs.Job) error {
	if job.Type != JobDeleteBlob {
		return nil
	}
	return s.store.Delete(ctx, job.Key)
}

// MaxFiles is the number of files accepted by UploadMany.
func (s *UploadService) MaxFiles() int {
	return s.config.MaxFiles
}

// Upload validates and stores one file owned by the actor.
func (s *UploadService) Upload(ctx context.Context, actor access.Identity, in UploadInput) (*models.Upload, error) {
	if !actor.Authenticated() {
		return nil, appErrors.ErrUnauthenticated
	}
	return s.storeOne(ctx, actor, in, "file")
}

// UploadMany stores every file or none of them.
func (s *UploadService) UploadMany(ctx context.Context, actor access.Identity, inputs []UploadInput) ([]models.Upload, error) {
	if !actor.Authenticated() {
		return nil, appErrors.ErrUnauthenticated
	}
	if len(inputs) == 0 {
		return nil, appErrors.Invalid("files", "at least one file is required")
	}
	if len(inputs) > s.config.MaxFiles {
		return nil, appErrors.Invalid("files", fmt.Sprintf("at most %d files are accepted", s.config.MaxFiles))
	}

	stored := make([]models.Upload, 0, len(inputs))
	for i, in := range inputs {
		item, err := s.storeOne(ctx, actor, in, fmt.Sprintf("files[%d]", i))
		if err != nil {
			for j := range stored {
				s.remove(ctx, &stored[j])
			}
			return nil, err
		}
		stored = append(stored, *item)
	}
	return stored, nil
}

// List returns the actor's uploads; staff see everyone's.
func (s *UploadService) List(ctx context.Context, actor access.Identity, filter models.UploadFilter) ([]models.Upload, models.Pagination, error) {
	if !actor.Authenticated() {
		return nil, models.Pagination{}, appErrors.ErrUnauthenticated
	}
	if !access.IsStaff(actor) {
		filter.UploadedBy = actor.UserID
	}
	page := query.NewPage(filter.Page, filter.Limit)
	filter.Page, filter.Limit = page.Number, page.Limit
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Internal(err, "failed to list uploads")
	}
	return items, page.Meta(total), nil
}

// Get returns upload metadata visible to the owner or staff.
func (s *UploadService) Get(ctx context.Context, actor access.Identity, id string) (*models.Upload, error) {
	if !actor.Authenticated() {
		return nil, appErrors.ErrUnauthenticated
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "upload", "load")
	}
	if err := access.Authorize(ctx, access.OwnerOrStaff(), actor, uploadResource(item)); err != nil {
		return nil, err
	}
	return item, nil
}

// Download opens the stored blob of an upload visible to the actor. The caller closes the reader.
func (s *UploadService) Download(ctx context.Context, actor access.Identity, id string) (*models.Upload, io.ReadCloser, error) {
	item, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, item.Path)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to open upload")
	}
	return item, rc, nil
}

// Delete removes the metadata row, then the blob and its thumbnail.
func (s *UploadService) Delete(ctx context.Context, actor access.Identity, id string) error {
	item, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err, "upload", "delete")
	}
	s.deleteBlobs(ctx, item)
	s.logger.Info("upload deleted", zap.String("upload_id", id), zap.String("actor", actor.UserID))
	return nil
}

func (s *UploadService) storeOne(ctx context.Context, actor access.Identity, in UploadInput, field string) (*models.Upload, error) {
	if in.Content == nil {
		return nil, appErrors.Invalid(field, "is required")
	}
	if in.Size > s.config.MaxFileSize {
		return nil, appErrors.Invalid(field, fmt.Sprintf("must not exceed %d bytes", s.config.MaxFileSize))
	}
	data, err := io.ReadAll(io.LimitReader(in.Content, s.config.MaxFileSize+1))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to read upload")
	}
	if int64(len(data)) > s.config.MaxFileSize {
		return nil, appErrors.Invalid(field, fmt.Sprintf("must not exceed %d bytes", s.config.MaxFileSize))
	}
	if len(data) == 0 {
		return nil, appErrors.Invalid(field, "must not be empty")
	}

	detected := mimetype.Detect(data)
	mime := strings.ToLower(strings.TrimSpace(strings.SplitN(detected.String(), ";", 2)[0]))
	if !s.accepts(mime) {
		return nil, appErrors.Invalid(field, "file type "+mime+" is not allowed")
	}

	id := uuid.NewString()
	item := &models.Upload{
		ID:           id,
		OriginalName: path.Base(strings.ReplaceAll(in.Filename, "\\", "/")),
		Filename:     id + detected.Extension(),
		MimeType:     mime,
		Size:         int64(len(data)),
		UploadedBy:   actor.UserID,
	}
	item.Path = item.Filename
	item.URL = s.store.URL(item.Path)

	if _, err := s.store.Save(ctx, item.Path, bytes.NewReader(data), mime); err != nil {
		s.logger.Error("failed to store upload", zap.String("filename", item.Filename), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to store upload")
	}
	s.attachThumbnail(ctx, item, data)

	if err := s.repo.Create(ctx, item); err != nil {
		s.deleteBlobs(ctx, item)
		return nil, repoError(err, "upload", "create")
	}

	s.metrics.RecordEvent(EventUploadStored)
	s.logger.Info("upload stored",
		zap.String("upload_id", item.ID),
		zap.String("mimetype", item.MimeType),
		zap.Int64("size", item.Size),
		zap.String("uploaded_by", item.UploadedBy),
	)
	return item, nil
}

// attachThumbnail stores a preview for decodable images. Failures leave the upload without one.
func (s *UploadService) attachThumbnail(ctx context.Context, item *models.Upload, data []byte) {
	if s.thumbnails == nil || !s.thumbnails.Supports(item.MimeType) {
		return
	}
	thumb, ext, err := s.thumbnails.Generate(bytes.NewReader(data), item.MimeType)
	if err != nil {
		s.logger.Warn("thumbnail generation failed", zap.String("upload_id", item.ID), zap.Error(err))
		return
	}
	name := path.Join(thumbnailDir, item.ID+"_thumb"+ext)
	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}
	if _, err := s.store.Save(ctx, name, bytes.NewReader(thumb), contentType); err != nil {
		s.logger.Warn("thumbnail store failed", zap.String("upload_id", item.ID), zap.Error(err))
		return
	}
	url := s.store.URL(name)
	item.ThumbnailPath = &name
	item.ThumbnailURL = &url
}

func (s *UploadService) remove(ctx context.Context, item *models.Upload) {
	if err := s.repo.Delete(ctx, item.ID); err != nil {
		s.logger.Warn("failed to roll back upload row", zap.String("upload_id", item.ID), zap.Error(err))
	}
	s.deleteBlobs(ctx, item)
}

func (s *UploadService) deleteBlobs(ctx context.Context, item *models.Upload) {
	s.deleteBlob(ctx, item.Path)
	if item.ThumbnailPath != nil {
		s.deleteBlob(ctx, *item.ThumbnailPath)
	}
}

func (s *UploadService) deleteBlob(ctx context.Context, name string) {
	err := s.store.Delete(ctx, name)
	if err == nil {
		return
	}
	if s.cleanup != nil {
		if qerr := s.cleanup.Enqueue(jobs.Job{Type: JobDeleteBlob, Key: name}); qerr == nil {
			s.logger.Warn("blob delete deferred to cleanup queue", zap.String("path", name), zap.Error(err))
			return
		}
	}
	s.logger.Warn("failed to delete upload blob", zap.String("path", name), zap.Error(err))
}

func (s *UploadService) accepts(mime string) bool {
	if len(s.allowed) == 0 {
		return true
	}
	_, ok := s.allowed[mime]
	return ok
}

func uploadResource(item *models.Upload) access.Resource {
	return access.Resource{Kind: "upload", ID: item.ID, OwnerID: item.UploadedBy}
}
