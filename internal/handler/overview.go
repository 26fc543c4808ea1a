package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sporttrack/sporttrack/internal/model"
	"github.com/sporttrack/sporttrack/internal/repository"
)

// OverviewHandler serves the super-admin's cross-club view.
type OverviewHandler struct {
	Users *repository.UserRepo
}

func NewOverviewHandler(users *repository.UserRepo) *OverviewHandler {
	return &OverviewHandler{Users: users}
}

// Get lists every club admin and coach on the platform with a total
// account count.
func (h *OverviewHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	total, err := h.Users.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count users failed"})
	}
	admins, err := h.Users.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list admins failed"})
	}
	coaches, err := h.Users.ListByRole(ctx, model.RoleCoach)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list coaches failed"})
	}

	adminsOut := make([]userPart, 0, len(admins))
	for _, u := range admins {
		adminsOut = append(adminsOut, toUserPart(u))
	}
	coachesOut := make([]userPart, 0, len(coaches))
	for _, u := range coaches {
		coachesOut = append(coachesOut, toUserPart(u))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_users": total,
		"admins":      adminsOut,
		"coaches":     coachesOut,
	})
}
