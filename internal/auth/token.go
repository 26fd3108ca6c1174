package auth

import (
	"net/http"
	"strings"
)

const AccessTokenCookie = "access_token"

const bearerScheme = "bearer "

// ExtractAccessToken reads the token from the cookie first, then the
// Authorization header. The bearer scheme is matched case-insensitively.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) <= len(bearerScheme) || !strings.EqualFold(header[:len(bearerScheme)], bearerScheme) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerScheme):])
}
