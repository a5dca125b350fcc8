package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/middleware"
	"github.com/noah-isme/daycare-api/internal/query"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
	"github.com/noah-isme/daycare-api/pkg/response"
)

func identity(c *gin.Context) access.Identity {
	return middleware.Identity(c)
}

// bindJSON decodes the body into dst and writes a 400 when it is malformed.
func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Validation(err, message))
		return false
	}
	return true
}

func pageParams(c *gin.Context) query.Page {
	return query.Parse(c.Query("page"), c.Query("limit"))
}
