package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetStaffID extracts the authenticated staff ID from the gin context
func GetStaffID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("staff_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
