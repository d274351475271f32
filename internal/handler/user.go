package handler

import (
	"github.com/gin-gonic/gin"

	"customer-ledger/internal/util"
)

// GetMe returns the signed-in user's profile.
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"role":         user.Role,
			"created_at":   user.CreatedAt,
		},
	})
}
