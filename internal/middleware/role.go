package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/response"
)

// RequireRole checks that the authenticated user holds one of the given
// roles.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, response.ErrRoleRestricted)
	}
}
