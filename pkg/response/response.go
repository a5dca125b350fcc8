package response

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/daycare-api/internal/models"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
)

var exposeInternal atomic.Bool

// ErrorBody is the failure contract.
type ErrorBody struct {
	Error   string                 `json:"error"`
	Details []appErrors.FieldError `json:"details,omitempty"`
}

// SetExposeInternal controls whether 500 responses carry the underlying error message.
// Production deployments keep it disabled.
func SetExposeInternal(enabled bool) {
	exposeInternal.Store(enabled)
}

// JSON sends a success response: {message, <key>: data, pagination?}.
func JSON(c *gin.Context, status int, message, key string, data interface{}, pagination *models.Pagination) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	body := gin.H{"message": message}
	if key != "" {
		body[key] = data
	}
	if pagination != nil {
		body["pagination"] = pagination
	}
	c.JSON(status, body)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, message, key string, data interface{}) {
	JSON(c, http.StatusOK, message, key, data, nil)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, message, key string, data interface{}) {
	JSON(c, http.StatusCreated, message, key, data, nil)
}

// List responds with a page of items and its pagination block.
func List(c *gin.Context, message, key string, items interface{}, pagination models.Pagination) {
	JSON(c, http.StatusOK, message, key, items, &pagination)
}

// Fields responds with the message plus several top-level resource keys.
func Fields(c *gin.Context, status int, message string, fields gin.H) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	body := gin.H{"message": message}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// Message responds with only a message.
func Message(c *gin.Context, status int, message string) {
	JSON(c, status, message, "", nil, nil)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	message := appErr.Message
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
		if exposeInternal.Load() && appErr.Err != nil {
			message = appErr.Error()
		}
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorBody{Error: message, Details: appErr.Details})
}

// Abort writes the error and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
