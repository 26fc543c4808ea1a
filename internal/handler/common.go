package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sporttrack/sporttrack/internal/model"
	"github.com/sporttrack/sporttrack/internal/utils"
)

// callerIdentity reassembles the token claims the JWT middleware parked
// on the context.  Handlers behind the middleware can rely on every
// field being present.
func callerIdentity(c echo.Context) utils.Identity {
	id := utils.Identity{}
	if v, ok := c.Get("user_id").(string); ok {
		id.UserID = v
	}
	if v, ok := c.Get("role").(string); ok {
		id.Role = v
	}
	if v, ok := c.Get("club_id").(string); ok {
		id.ClubID = v
	}
	if v, ok := c.Get("user_name").(string); ok {
		id.Name = v
	}
	return id
}

// isAdmin reports whether the caller manages the club they act for.
func isAdmin(id utils.Identity) bool { return id.Role == model.RoleAdmin }
