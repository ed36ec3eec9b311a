package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// employeeIDKey is the key used to store the acting employee's ID.
const employeeIDKey = contextKey("employeeID")

// EmployeeIdentity reads the X-Employee-ID header set by the upstream auth
// gateway and stores it in the context. Authentication itself happens outside
// this service; mutating routes still require the identity for audit fields.
func EmployeeIdentity(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetHeader("X-Employee-ID")
		if employeeID == "" && required {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-Employee-ID header"})
			return
		}
		if employeeID != "" {
			c.Set(string(employeeIDKey), employeeID)
		}
		c.Next()
	}
}

// GetEmployeeIDFromContext retrieves the acting employee ID from the Gin
// context. It returns the ID and a boolean indicating if it was found.
func GetEmployeeIDFromContext(c *gin.Context) (string, bool) {
	idVal, exists := c.Get(string(employeeIDKey))
	if !exists {
		return "", false
	}
	employeeID, ok := idVal.(string)
	if !ok || employeeID == "" {
		return "", false
	}
	return employeeID, true
}
