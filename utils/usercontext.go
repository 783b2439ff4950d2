package utils

import (
	"net/http"

	"zwmart/globals"
)

// GetUserIDFromRequest returns the authenticated user's ID, or "" when the
// request carries no valid identity.
func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}
