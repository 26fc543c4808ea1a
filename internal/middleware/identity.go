package middleware

// identity.go holds the helper shared by the cache and rate-limit
// middlewares to attribute a request to a user.  Unauthenticated
// requests (health checks, login) are grouped under "anon".

import "github.com/labstack/echo/v4"

// currentUserID returns the authenticated user's ID from the context,
// or "anon" when the request carries no identity.
func currentUserID(c echo.Context) string {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s
	}
	return "anon"
}
