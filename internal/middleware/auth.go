// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store"
	"github.com/keyward/keyward-backend/internal/utils"
)

// AuthRequired validates the bearer token and re-fetches the user record on
// every request. Deleting a user therefore invalidates any outstanding token
// immediately, not just at the next login.
func AuthRequired(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			// Expired and malformed tokens are logged apart but answered alike.
			logrus.WithError(err).WithField("path", c.Request.URL.Path).Debug("Token rejected")
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		user, err := users.FindByID(userID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				logrus.WithError(err).Error("Failed to resolve token subject")
			}
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		// Set caller identity in context
		c.Set("user_id", user.ID.String())
		c.Set("role", string(user.Role))
		c.Set("current_user", user)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != string(models.UserRoleAdmin) {
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the caller resolved by AuthRequired.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("current_user")
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
