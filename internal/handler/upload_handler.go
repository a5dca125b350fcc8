package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/service"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
	"github.com/noah-isme/daycare-api/pkg/response"
)

type uploadService interface {
	MaxFiles() int
	Upload(ctx context.Context, actor access.Identity, in service.UploadInput) (*models.Upload, error)
	UploadMany(ctx context.Context, actor access.Identity, inputs []service.UploadInput) ([]models.Upload, error)
	List(ctx context.Context, actor access.Identity, filter models.UploadFilter) ([]models.Upload, models.Pagination, error)
	Get(ctx context.Context, actor access.Identity, id string) (*models.Upload, error)
	Download(ctx context.Context, actor access.Identity, id string) (*models.Upload, io.ReadCloser, error)
	Delete(ctx context.Context, actor access.Identity, id string) error
}

// UploadHandler accepts multipart media uploads.
type UploadHandler struct {
	service uploadService
	logger  *zap.Logger
}

// NewUploadHandler constructs handler.
func NewUploadHandler(svc uploadService, logger *zap.Logger) *UploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandler{service: svc, logger: logger}
}

// Upload godoc
// @Summary Upload a file
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File"
// @Success 201 {object} models.Upload
// @Failure 400 {object} response.ErrorBody
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Invalid("file", "is required"))
		return
	}
	inputs, closeAll, err := openParts([]*multipart.FileHeader{header})
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeAll()

	item, err := h.service.Upload(c.Request.Context(), identity(c), inputs[0])
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "File uploaded successfully", "upload", item)
}

// UploadMany godoc
// @Summary Upload several files
// @Description Either every file is stored or none is
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param files formData file true "Files"
// @Success 201 {array} models.Upload
// @Failure 400 {object} response.ErrorBody
// @Router /uploads/multiple [post]
func (h *UploadHandler) UploadMany(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, appErrors.Invalid("files", "a multipart form is required"))
		return
	}
	headers := form.File["files"]
	if len(headers) > h.service.MaxFiles() {
		response.Error(c, appErrors.Invalid("files", "at most "+strconv.Itoa(h.service.MaxFiles())+" files are accepted"))
		return
	}
	inputs, closeAll, err := openParts(headers)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeAll()

	items, err := h.service.UploadMany(c.Request.Context(), identity(c), inputs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Files uploaded successfully", "uploads", items)
}

// List godoc
// @Summary List uploads
// @Tags Uploads
// @Produce json
// @Security BearerAuth
// @Param mimetype query string false "MIME prefix, e.g. image/"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {array} models.Upload
// @Router /uploads [get]
func (h *UploadHandler) List(c *gin.Context) {
	page := pageParams(c)
	filter := models.UploadFilter{MimePrefix: c.Query("mimetype"), Page: page.Number, Limit: page.Limit}
	items, pagination, err := h.service.List(c.Request.Context(), identity(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "Uploads retrieved successfully", "uploads", items, pagination)
}

// Get godoc
// @Summary Get upload metadata
// @Tags Uploads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Upload ID"
// @Success 200 {object} models.Upload
// @Router /uploads/{id} [get]
func (h *UploadHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Upload retrieved successfully", "upload", item)
}

// Download godoc
// @Summary Download an uploaded file
// @Tags Uploads
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Upload ID"
// @Success 200 {file} file
// @Router /uploads/{id}/download [get]
func (h *UploadHandler) Download(c *gin.Context) {
	item, rc, err := h.service.Download(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer func() {
		if err := rc.Close(); err != nil {
			h.logger.Warn("close upload stream", zap.String("upload_id", item.ID), zap.Error(err))
		}
	}()

	c.Header("Content-Disposition", "attachment; filename=\""+item.OriginalName+"\"")
	c.DataFromReader(http.StatusOK, item.Size, item.MimeType, rc, nil)
}

// Delete godoc
// @Summary Delete upload
// @Tags Uploads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Upload ID"
// @Success 200 {object} map[string]string
// @Router /uploads/{id} [delete]
func (h *UploadHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Upload deleted successfully")
}

func openParts(headers []*multipart.FileHeader) ([]service.UploadInput, func(), error) {
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	inputs := make([]service.UploadInput, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, nil, appErrors.Internal(err, "failed to read uploaded file")
		}
		files = append(files, f)
		inputs = append(inputs, service.UploadInput{Filename: header.Filename, Size: header.Size, Content: f})
	}
	return inputs, closeAll, nil
}
