package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/sporttrack/sporttrack/internal/handler"
	"github.com/sporttrack/sporttrack/internal/middleware"
	"github.com/sporttrack/sporttrack/internal/model"
)

// RegisterClub registers the endpoints shared by admins and coaches:
// browsing the catalog, the whole booking flow and the dashboard.
// The cache middleware runs after JWT auth so cache keys carry the
// caller's identity and club data never leaks across tenants.
func RegisterClub(
	e *echo.Echo,
	items *handler.ItemHandler,
	reservations *handler.ReservationHandler,
	dash *handler.DashboardHandler,
	jwtSecret string,
	cache echo.MiddlewareFunc,
) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleCoach),
		cache,
	)

	// ---- Catalog ----
	g.GET("/items", items.List)

	// ---- Reservations ----
	g.GET("/reservations", reservations.List)
	g.POST("/reservations", reservations.Create)
	g.GET("/reservations/:id", reservations.Get)
	g.PUT("/reservations/:id", reservations.Update)
	g.POST("/reservations/:id/return", reservations.Return)
	g.POST("/reservations/:id/cancel", reservations.Cancel)

	// ---- Dashboard ----
	g.GET("/dashboard", dash.Get)
}
