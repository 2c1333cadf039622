package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushub/college-api/internal/models"
	"github.com/campushub/college-api/internal/repository"
)

// Activity records an activity-log entry after successful requests.
// Failures are swallowed: the log is best effort.
func Activity(repo *repository.UserRepository, action, description string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		var userID *string
		if claims, ok := c.Get(ContextUserKey); ok {
			user := claims.(*models.JWTClaims)
			userID = &user.UserID
		}

		_ = repo.CreateActivityLog(c.Request.Context(), &models.ActivityLog{
			UserID:      userID,
			Action:      action,
			Description: fmt.Sprintf("%s (%s %s, %d, %dms)", description, c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start).Milliseconds()),
			IPAddress:   c.ClientIP(),
			UserAgent:   c.GetHeader("User-Agent"),
		})
	}
}
