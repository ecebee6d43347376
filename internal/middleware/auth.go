// Package middleware holds the request gates. Both gates authenticate
// the bearer token; the admin gate additionally re-resolves the account
// and requires the admin flag. Failures always abort the chain before
// any handler runs.
package middleware

import (
	"net/http"
	"strings"

	"alumnihub/internal/auth"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"
	"alumnihub/pkg/util"

	"github.com/gin-gonic/gin"
)

// Context keys set by the gates
const (
	ContextUserID  = "userID"
	ContextIsAdmin = "isAdmin"
)

// Generic failure messages. Deliberately indistinct so callers cannot
// probe which check failed.
const (
	msgAuthRequired  = "Authentication required"
	msgAdminRequired = "Admin access required"
)

// UserID returns the authenticated user ID set by a gate.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	token := header
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		token = after
	}
	if token == "" {
		return "", false
	}
	return token, true
}

func unauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse(msgAuthRequired, ""))
}

// RequireUser authenticates the bearer token and attaches the decoded
// identity to the request context. Missing header, bad signature, and
// expired tokens are all rejected the same way.
func RequireUser(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			unauthenticated(c)
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			unauthenticated(c)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin authenticates like RequireUser, then re-resolves the
// account against the credential store and requires the admin flag.
// "User not found" and "not admin" fail identically.
func RequireAdmin(tokens *auth.TokenService, users repository.IUserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			unauthenticated(c)
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			unauthenticated(c)
			return
		}

		id, err := util.ParseObjectID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, model.NewErrorResponse(msgAdminRequired, ""))
			return
		}

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil || user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, model.NewErrorResponse(msgAdminRequired, ""))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextIsAdmin, true)
		c.Next()
	}
}
