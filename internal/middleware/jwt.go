package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
	"github.com/noah-isme/daycare-api/pkg/response"
)

const (
	// ContextUserKey is the gin context key storing the resolved *models.User.
	ContextUserKey = "currentUser"
	// ContextIdentityKey is the gin context key storing the access.Identity.
	ContextIdentityKey = "identity"
)

// Authenticator resolves a bearer token to the live user row.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// JWT protects routes by requiring a valid access token for an active account.
func JWT(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			if c.GetHeader("Authorization") == "" {
				response.Abort(c, appErrors.ErrUnauthenticated)
			} else {
				response.Abort(c, appErrors.Clone(appErrors.ErrInvalidToken, "invalid authorization header"))
			}
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, err)
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalJWT attaches the user when a valid token is present and otherwise continues anonymously.
func OptionalJWT(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextIdentityKey, access.Anonymous())
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// Identity returns the caller identity stored by JWT or OptionalJWT; anonymous when absent.
func Identity(c *gin.Context) access.Identity {
	if v, ok := c.Get(ContextIdentityKey); ok {
		if id, ok := v.(access.Identity); ok {
			return id
		}
	}
	return access.Anonymous()
}

// CurrentUser returns the resolved user, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(ContextUserKey, user)
	c.Set(ContextIdentityKey, access.Identity{UserID: user.ID, Role: user.Role})
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
