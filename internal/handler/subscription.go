package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sporttrack/sporttrack/internal/model"
	"github.com/sporttrack/sporttrack/internal/payment"
	"github.com/sporttrack/sporttrack/internal/repository"
)

// SubscriptionHandler serves the admin's plan status and the simulated
// card payment that extends it.
type SubscriptionHandler struct {
	Subs *repository.SubscriptionRepo
}

func NewSubscriptionHandler(s *repository.SubscriptionRepo) *SubscriptionHandler {
	return &SubscriptionHandler{Subs: s}
}

type subscriptionResp struct {
	ID       string    `json:"id"`
	Status   string    `json:"status"`
	EndDate  time.Time `json:"end_date"`
	DaysLeft int       `json:"days_left"`
}

func toSubscriptionResp(s model.Subscription, now time.Time) subscriptionResp {
	return subscriptionResp{
		ID:       s.ID,
		Status:   s.EffectiveStatus(now),
		EndDate:  s.EndDate,
		DaysLeft: s.DaysLeft(now),
	}
}

// Get returns the club's current plan.  Expiry is derived on read; the
// stored row is never flipped to expired.
func (h *SubscriptionHandler) Get(c echo.Context) error {
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Subs.GetByUser(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load subscription failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"subscription": toSubscriptionResp(s, time.Now().UTC())})
}

// Upgrade runs the simulated card payment and extends the plan by 30
// days.  Remaining paid time carries over: the extension is applied to
// whichever is later, now or the current end date.
func (h *SubscriptionHandler) Upgrade(c echo.Context) error {
	var card payment.Card
	if err := c.Bind(&card); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	s, err := h.Subs.GetByUser(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load subscription failed"})
	}

	if err := payment.Process(ctx, card); err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "payment timed out"})
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}

	now := time.Now().UTC()
	base := now
	if s.EndDate.After(base) {
		base = s.EndDate
	}
	endDate := base.AddDate(0, 0, 30)

	if err := h.Subs.Activate(ctx, id.UserID, endDate); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "activate subscription failed"})
	}

	s, err = h.Subs.GetByUser(ctx, id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load subscription failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"subscription": toSubscriptionResp(s, now)})
}
