package handlers

import (
	"net/http"

	"github.com/fueldesk/fuel-manager/internal/middleware"
)

// requirePermission enforces a role capability inside a handler, for
// routes where only some methods are restricted. Writes the error
// response and returns false when the caller may not proceed.
func requirePermission(w http.ResponseWriter, r *http.Request, action string) bool {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return false
	}
	if !claims.Role.HasPermission(action) {
		http.Error(w, "Insufficient permissions", http.StatusForbidden)
		return false
	}
	return true
}
