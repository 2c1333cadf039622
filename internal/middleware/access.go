package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/college-api/internal/access"
	"github.com/campushub/college-api/internal/models"
	appErrors "github.com/campushub/college-api/pkg/errors"
	"github.com/campushub/college-api/pkg/response"
)

// Access gates every request through the route policy table. It expects
// OptionalJWT to run first so claims are available when a token was sent.
//
// Decisions mirror the legacy web flow: missing session on a protected
// route answers 401 with a login redirect, a role mismatch answers 403
// with the caller's dashboard as redirect, and an authenticated caller on
// the login route is bounced straight to their dashboard.
func Access(policy *access.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		routePath := c.FullPath()
		bucket := policy.Classify(c.Request.Method, routePath)

		claims := claimsFromContext(c)

		if bucket == access.BucketPublic {
			if claims != nil && policy.IsLoginRoute(routePath) {
				response.JSON(c, http.StatusOK, nil, nil, map[string]interface{}{
					"redirect": access.HomePath(claims.Role),
				})
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if claims == nil {
			response.ErrorWithRedirect(c, appErrors.Clone(appErrors.ErrUnauthorized, "please login to access this resource"), access.LoginPath)
			c.Abort()
			return
		}

		if !policy.Allows(bucket, claims.Role) {
			response.ErrorWithRedirect(c, appErrors.Clone(appErrors.ErrForbidden, "you don't have permission to access this resource"), access.HomePath(claims.Role))
			c.Abort()
			return
		}

		c.Next()
	}
}

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
