package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/daycare-api/internal/models"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
	"github.com/noah-isme/daycare-api/pkg/jobs"
	"github.com/noah-isme/daycare-api/pkg/storage"
	"github.com/noah-isme/daycare-api/pkg/thumbnail"
)

type fakeUploadRepo struct {
	items     map[string]*models.Upload
	createErr error
}

func (f *fakeUploadRepo) List(_ context.Context, filter models.UploadFilter) ([]models.Upload, int, error) {
	out := make([]models.Upload, 0)
	for _, item := range f.items {
		if filter.UploadedBy != "" && item.UploadedBy != filter.UploadedBy {
			continue
		}
		out = append(out, *item)
	}
	return out, len(out), nil
}

func (f *fakeUploadRepo) FindByID(_ context.Context, id string) (*models.Upload, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *item
	return &copy, nil
}

func (f *fakeUploadRepo) Create(_ context.Context, item *models.Upload) error {
	if f.createErr != nil {
		return f.createErr
	}
	copy := *item
	f.items[item.ID] = &copy
	return nil
}

func (f *fakeUploadRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func newUploadFixture(t *testing.T) (*UploadService, *fakeUploadRepo, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	repo := &fakeUploadRepo{items: make(map[string]*models.Upload)}
	svc := NewUploadService(repo, store, thumbnail.New(16), nil, nil, UploadConfig{
		MaxFileSize:  1 << 20,
		MaxFiles:     2,
		AllowedMIMEs: []string{"image/png", "application/pdf"},
	})
	return svc, repo, dir
}

func TestUploadServiceStoresImageWithThumbnail(t *testing.T) {
	svc, repo, dir := newUploadFixture(t)
	data := pngBytes(t, 64, 32)

	item, err := svc.Upload(context.Background(), parentID, UploadInput{Filename: `C:\photos\nap.png`, Size: int64(len(data)), Content: bytes.NewReader(data)})
	require.NoError(t, err)
	assert.Equal(t, "nap.png", item.OriginalName)
	assert.Equal(t, "image/png", item.MimeType)
	assert.Equal(t, item.ID+".png", item.Filename)
	assert.Equal(t, "/uploads/"+item.Filename, item.URL)
	assert.Equal(t, "parent", item.UploadedBy)
	require.NotNil(t, item.ThumbnailPath)
	require.NotNil(t, item.ThumbnailURL)
	assert.True(t, strings.HasPrefix(*item.ThumbnailURL, "/uploads/thumbs/"))
	assert.Contains(t, repo.items, item.ID)

	thumb, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(*item.ThumbnailPath)))
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 8, cfg.Height)
}

func TestUploadServiceRejects(t *testing.T) {
	svc, repo, _ := newUploadFixture(t)
	ctx := context.Background()

	text := []byte("just some plain text")
	_, err := svc.Upload(ctx, parentID, UploadInput{Filename: "a.txt", Size: int64(len(text)), Content: bytes.NewReader(text)})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Upload(ctx, parentID, UploadInput{Filename: "big.png", Size: 2 << 20, Content: bytes.NewReader(text)})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Upload(ctx, parentID, UploadInput{Filename: "empty.png", Content: bytes.NewReader(nil)})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	data := pngBytes(t, 4, 4)
	inputs := []UploadInput{
		{Filename: "1.png", Content: bytes.NewReader(data)},
		{Filename: "2.png", Content: bytes.NewReader(data)},
		{Filename: "3.png", Content: bytes.NewReader(data)},
	}
	_, err = svc.UploadMany(ctx, parentID, inputs)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Empty(t, repo.items)
}

func TestUploadServiceRollsBackBlobOnInsertFailure(t *testing.T) {
	svc, repo, dir := newUploadFixture(t)
	repo.createErr = errors.New("db down")
	data := pngBytes(t, 4, 4)

	_, err := svc.Upload(context.Background(), parentID, UploadInput{Filename: "x.png", Content: bytes.NewReader(data)})
	assert.ErrorIs(t, err, appErrors.ErrInternal)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.True(t, e.IsDir(), "unexpected leftover file %s", e.Name())
	}
}

func TestUploadServiceManyIsAllOrNothing(t *testing.T) {
	svc, repo, _ := newUploadFixture(t)
	ctx := context.Background()
	data := pngBytes(t, 4, 4)

	_, err := svc.UploadMany(ctx, parentID, []UploadInput{
		{Filename: "ok.png", Content: bytes.NewReader(data)},
		{Filename: "bad.txt", Content: strings.NewReader("plain text")},
	})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Empty(t, repo.items)

	items, err := svc.UploadMany(ctx, parentID, []UploadInput{
		{Filename: "a.png", Content: bytes.NewReader(data)},
		{Filename: "b.png", Content: bytes.NewReader(data)},
	})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Len(t, repo.items, 2)
}

func TestUploadServiceOwnership(t *testing.T) {
	svc, repo, dir := newUploadFixture(t)
	ctx := context.Background()
	data := pngBytes(t, 4, 4)

	item, err := svc.Upload(ctx, parentID, UploadInput{Filename: "mine.png", Content: bytes.NewReader(data)})
	require.NoError(t, err)
	other := staffID
	other.UserID, other.Role = "other", models.RoleParent

	_, err = svc.Get(ctx, other, item.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, other, item.ID), appErrors.ErrForbidden)

	items, _, err := svc.List(ctx, other, models.UploadFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, _, err = svc.List(ctx, staffID, models.UploadFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, rc, err := svc.Download(ctx, parentID, item.ID)
	require.NoError(t, err)
	stored, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	require.NoError(t, svc.Delete(ctx, staffID, item.ID))
	assert.Empty(t, repo.items)
	_, err = os.Stat(filepath.Join(dir, item.Path))
	assert.True(t, os.IsNotExist(err))
}

type flakyStore struct {
	storage.Store
	deleteErr error
}

func (s *flakyStore) Delete(ctx context.Context, name string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.Store.Delete(ctx, name)
}

type recordingQueue struct{ jobs []jobs.Job }

func (q *recordingQueue) Enqueue(job jobs.Job) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func TestUploadServiceDefersFailedBlobDeletes(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	store := &flakyStore{Store: local}
	repo := &fakeUploadRepo{items: make(map[string]*models.Upload)}
	svc := NewUploadService(repo, store, nil, nil, nil, UploadConfig{AllowedMIMEs: []string{"image/png"}})
	queue := &recordingQueue{}
	svc.UseCleanupQueue(queue)
	ctx := context.Background()

	data := pngBytes(t, 4, 4)
	item, err := svc.Upload(ctx, parentID, UploadInput{Filename: "a.png", Content: bytes.NewReader(data)})
	require.NoError(t, err)

	store.deleteErr = errors.New("bucket unavailable")
	require.NoError(t, svc.Delete(ctx, parentID, item.ID))
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, JobDeleteBlob, queue.jobs[0].Type)
	assert.Equal(t, item.Path, queue.jobs[0].Key)

	store.deleteErr = nil
	require.NoError(t, svc.DeleteBlobJob(ctx, queue.jobs[0]))
	_, err = local.Open(ctx, item.Path)
	assert.Error(t, err)
}
