package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sporttrack/sporttrack/internal/booking"
	"github.com/sporttrack/sporttrack/internal/model"
	"github.com/sporttrack/sporttrack/internal/queue"
	"github.com/sporttrack/sporttrack/internal/repository"
	qp "github.com/sporttrack/sporttrack/internal/service"
)

// ReservationHandler serves the booking flow: list, confirm, edit,
// return, cancel and damage resolution.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Items        *repository.ItemRepo
}

func NewReservationHandler(r *repository.ReservationRepo, i *repository.ItemRepo) *ReservationHandler {
	return &ReservationHandler{Reservations: r, Items: i}
}

// ----- DTOs -----

type lineReq struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}
type reservationReq struct {
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Items     []lineReq `json:"items"`
}
type damageEntryReq struct {
	ItemID          string `json:"item_id"`
	QuantityDamaged int    `json:"quantity_damaged"`
	Description     string `json:"description"`
}
type returnReq struct {
	HasDamage bool             `json:"has_damage"`
	Damages   []damageEntryReq `json:"damages"`
}

// linesFrom snapshots item names from the catalog and rebuilds the
// submitted cart, which owns duplicate-line merging.  Lines for unknown
// items are kept so validation can name them in its failure message.
func linesFrom(reqLines []lineReq, catalog []model.Item) []model.ReservationLine {
	raw := make([]model.ReservationLine, 0, len(reqLines))
	for _, l := range reqLines {
		name := strings.TrimSpace(l.ItemName)
		for _, it := range catalog {
			if it.ID == l.ItemID {
				name = it.Name
				break
			}
		}
		if name == "" {
			name = l.ItemID
		}
		raw = append(raw, model.ReservationLine{ItemID: l.ItemID, ItemName: name, Quantity: l.Quantity})
	}
	return booking.CartFromLines(raw).Lines()
}

// visible reports whether the caller may act on the reservation: admins
// see the whole club, coaches only their own bookings.
func visible(res model.Reservation, callerID, role string) bool {
	return role == model.RoleAdmin || res.CoachID == callerID
}

// List returns the club ledger for admins and the coach's own bookings
// otherwise, newest first.
func (h *ReservationHandler) List(c echo.Context) error {
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		out []model.Reservation
		err error
	)
	if isAdmin(id) {
		out, err = h.Reservations.ListByClub(ctx, id.ClubID)
	} else {
		out, err = h.Reservations.ListByCoach(ctx, id.UserID)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

// Get returns one reservation with its lines and damage reports.
func (h *ReservationHandler) Get(c echo.Context) error {
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id.ClubID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if !visible(res, id.UserID, id.Role) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// Create validates the cart against current stock and confirms the
// reservation.  Stock is checked at confirmation time only; two coaches
// confirming back to back can both succeed.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	catalog, err := h.Items.ListByClub(ctx, id.ClubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load catalog failed"})
	}
	ledger, err := h.Reservations.ListByClub(ctx, id.ClubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}

	res := model.Reservation{
		ClubID:    id.ClubID,
		CoachID:   id.UserID,
		CoachName: id.Name,
		Date:      strings.TrimSpace(req.Date),
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
		Items:     linesFrom(req.Items, catalog),
	}

	vr := booking.Validate(res, catalog, ledger, "")
	if !vr.OK {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": vr.Message})
	}
	if err := h.Reservations.Create(ctx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	full, err := h.Reservations.GetByID(ctx, id.ClubID, res.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"reservation": full, "message": vr.Message})
}

// Update replaces the schedule and cart of an active reservation after
// re-validation.  The edit excludes the reservation's own lines from
// stock accounting.
func (h *ReservationHandler) Update(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Reservations.GetByID(ctx, id.ClubID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if !visible(existing, id.UserID, id.Role) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	if existing.Status != model.StatusActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not active"})
	}

	catalog, err := h.Items.ListByClub(ctx, id.ClubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load catalog failed"})
	}
	ledger, err := h.Reservations.ListByClub(ctx, id.ClubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}

	cand := existing
	cand.Date = strings.TrimSpace(req.Date)
	cand.StartTime = strings.TrimSpace(req.StartTime)
	cand.EndTime = strings.TrimSpace(req.EndTime)
	cand.Items = linesFrom(req.Items, catalog)

	vr := booking.Validate(cand, catalog, ledger, existing.ID)
	if !vr.OK {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": vr.Message})
	}
	if err := h.Reservations.Update(ctx, id.ClubID, &cand); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update reservation failed"})
	}

	full, err := h.Reservations.GetByID(ctx, id.ClubID, cand.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": full, "message": vr.Message})
}

// Return marks a reservation completed, recording damage reports when
// the caller flags any, and publishes a returned event for downstream
// consumers.
func (h *ReservationHandler) Return(c echo.Context) error {
	var req returnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id.ClubID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if !visible(res, id.UserID, id.Role) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}

	entries := make([]booking.DamageEntry, 0, len(req.Damages))
	for _, d := range req.Damages {
		entries = append(entries, booking.DamageEntry{
			ItemID:          d.ItemID,
			QuantityDamaged: d.QuantityDamaged,
			Description:     d.Description,
		})
	}

	before := len(res.DamageReports)
	if err := booking.Return(&res, req.HasDamage, entries, id.Name, time.Now().UTC()); err != nil {
		if errors.Is(err, booking.ErrNotActive) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not active"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	newReports := res.DamageReports[before:]

	if err := h.Reservations.Complete(ctx, &res, newReports); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not active"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "complete reservation failed"})
	}

	// Best effort: the return already took; a broker outage only costs
	// the log line.
	event := returnedEvent(res)
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = qp.PublishReservationReturned(pubCtx, event)
	}()

	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// Cancel voids an active reservation without a return flow; its stock
// simply stops counting against validations.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id.ClubID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if !visible(res, id.UserID, id.Role) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	if err := booking.Cancel(&res); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not active"})
	}
	if err := h.Reservations.Cancel(ctx, id.ClubID, res.ID); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not active"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel reservation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// ResolveDamage marks the oldest unresolved report for an item on a
// reservation as handled (admin only).  Resolving an already-clean pair
// is a no-op.
func (h *ReservationHandler) ResolveDamage(c echo.Context) error {
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id.ClubID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}

	booking.ResolveDamage(&res, c.Param("itemID"))
	if err := h.Reservations.ResolveDamage(ctx, res.ID, c.Param("itemID")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve damage failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

func returnedEvent(res model.Reservation) queue.ReservationReturnedEvent {
	items := make([]queue.ReturnedItem, 0, len(res.Items))
	for _, l := range res.Items {
		items = append(items, queue.ReturnedItem{ItemID: l.ItemID, ItemName: l.ItemName, Quantity: l.Quantity})
	}
	unresolved := 0
	for _, d := range res.DamageReports {
		if !d.IsResolved {
			unresolved++
		}
	}
	return queue.ReservationReturnedEvent{
		ReservationID: res.ID,
		ClubID:        res.ClubID,
		CoachID:       res.CoachID,
		CoachName:     res.CoachName,
		Date:          res.Date,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		Items:         items,
		DamageCount:   unresolved,
		ReturnedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}
