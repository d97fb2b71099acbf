// Package handlers maps HTTP requests onto module services.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quickbite/internal/http/middleware"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

const (
	RolePartner = "partner"
	RoleAdmin   = "admin"
)

// requireSelf allows the admin role, or a caller acting on their own id. A
// non-empty wantRole additionally pins the caller's role claim. It writes the
// 403 itself and reports whether the request may proceed.
func requireSelf(c *gin.Context, wantRole, id string) bool {
	role := middleware.CallerRole(c)
	if role == RoleAdmin {
		return true
	}
	if wantRole != "" && role != wantRole {
		writeError(c, http.StatusForbidden, "forbidden: "+wantRole+" role required")
		return false
	}
	if middleware.CallerUID(c) != id {
		writeError(c, http.StatusForbidden, "forbidden: id does not match authenticated user")
		return false
	}
	return true
}

// requireAdmin allows only the admin role.
func requireAdmin(c *gin.Context) bool {
	if middleware.CallerRole(c) != RoleAdmin {
		writeError(c, http.StatusForbidden, "forbidden: admin role required")
		return false
	}
	return true
}
