package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/victor-POL/mi-uni-api/internal/middleware"
	"github.com/victor-POL/mi-uni-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func currentUserID(c *gin.Context) (int64, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		return 0, false
	}
	return claims.UserID, true
}
