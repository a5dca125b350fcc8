package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/pkg/response"
)

// Self allows a caller whose id matches the :id route parameter.
const Self = "SELF"

// RBAC enforces role-based access control for routes. Self admits the owner of :id.
func RBAC(allowed ...string) gin.HandlerFunc {
	roles := make([]models.UserRole, 0, len(allowed))
	allowSelf := false
	for _, a := range allowed {
		if a == Self {
			allowSelf = true
			continue
		}
		roles = append(roles, models.UserRole(a))
	}

	policies := []access.Policy{access.RequireRoles(roles...)}
	if allowSelf {
		policies = append(policies, access.Owner())
	}
	policy := access.AnyOf(policies...)

	return func(c *gin.Context) {
		id := Identity(c)
		res := access.Resource{Kind: "resource", ID: c.Param("id"), OwnerID: c.Param("id")}
		if err := access.Authorize(c.Request.Context(), policy, id, res); err != nil {
			response.Abort(c, err)
			return
		}
		c.Next()
	}
}

// RequireRoles is a helper that accepts a list of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}
	return RBAC(allowed...)
}

// StaffOnly admits admins and staff.
func StaffOnly() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin, models.RoleStaff)
}
