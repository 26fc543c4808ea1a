package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sporttrack/sporttrack/internal/config"
	"github.com/sporttrack/sporttrack/internal/repository"
)

// TeamHandler manages a club's coach roster (admin only).
type TeamHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewTeamHandler(cfg config.Config, users *repository.UserRepo) *TeamHandler {
	return &TeamHandler{Cfg: cfg, Users: users}
}

type createCoachReq struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	TempPassword string `json:"temp_password"`
}

// List returns the club's coaches, oldest first.
func (h *TeamHandler) List(c echo.Context) error {
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	coaches, err := h.Users.ListCoaches(ctx, id.ClubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list coaches failed"})
	}
	out := make([]userPart, 0, len(coaches))
	for _, u := range coaches {
		out = append(out, toUserPart(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"coaches": out})
}

// Create adds a coach to the roster with a temporary password the
// coach must change on first login.  The password is generated when the
// admin does not supply one and is returned exactly once.
func (h *TeamHandler) Create(c echo.Context) error {
	var req createCoachReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email required"})
	}
	temp := strings.TrimSpace(req.TempPassword)
	if temp == "" {
		var err error
		if temp, err = tempPassword(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create coach failed"})
		}
	}
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Users.GetByID(ctx, id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load admin failed"})
	}

	u, err := h.Users.CreateCoach(ctx, id.ClubID, admin.ClubName, req.Name, req.Email, temp, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create coach failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"coach":         toUserPart(u),
		"temp_password": temp,
	})
}

// Delete removes a coach from the roster.  Their past reservations stay
// in the ledger with the name snapshot intact.
func (h *TeamHandler) Delete(c echo.Context) error {
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.DeleteCoach(ctx, id.ClubID, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coach not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete coach failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func tempPassword() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
