package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/sporttrack/sporttrack/internal/handler"
	"github.com/sporttrack/sporttrack/internal/middleware"
	"github.com/sporttrack/sporttrack/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1: catalog
// management, the coach roster, damage resolution, the subscription and
// club deletion.
func RegisterAdmin(
	e *echo.Echo,
	items *handler.ItemHandler,
	reservations *handler.ReservationHandler,
	team *handler.TeamHandler,
	subs *handler.SubscriptionHandler,
	auth *handler.AuthHandler,
	jwtSecret string,
) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Catalog ----
	g.POST("/items", items.Create)
	g.PUT("/items/:id", items.Update)
	g.DELETE("/items/:id", items.Delete)

	// ---- Team roster ----
	g.GET("/team", team.List)
	g.POST("/team", team.Create)
	g.DELETE("/team/:id", team.Delete)

	// ---- Damage resolution ----
	g.POST("/reservations/:id/damage/:itemID/resolve", reservations.ResolveDamage)

	// ---- Subscription ----
	g.GET("/subscription", subs.Get)
	g.POST("/subscription/upgrade", subs.Upgrade)

	// ---- Account ----
	g.DELETE("/account", auth.DeleteAccount)
}

// RegisterSuperAdmin registers the platform overview endpoint.
func RegisterSuperAdmin(e *echo.Echo, ov *handler.OverviewHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleSuperAdmin),
	)
	g.GET("/overview", ov.Get)
}
