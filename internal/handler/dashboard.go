package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sporttrack/sporttrack/internal/model"
	"github.com/sporttrack/sporttrack/internal/repository"
)

// DashboardHandler aggregates the club's state for the landing view.
type DashboardHandler struct {
	Items        *repository.ItemRepo
	Reservations *repository.ReservationRepo
	Users        *repository.UserRepo
}

func NewDashboardHandler(i *repository.ItemRepo, r *repository.ReservationRepo, u *repository.UserRepo) *DashboardHandler {
	return &DashboardHandler{Items: i, Reservations: r, Users: u}
}

// dayCount is one bar of the weekly bookings chart.
type dayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// damageView is a damage report flattened with its reservation context.
type damageView struct {
	ReservationID string    `json:"reservation_id"`
	CoachName     string    `json:"coach_name"`
	ItemID        string    `json:"item_id"`
	ItemName      string    `json:"item_name"`
	Quantity      int       `json:"quantity_damaged"`
	Description   string    `json:"description"`
	ReportedBy    string    `json:"reported_by"`
	Date          time.Time `json:"date"`
	IsResolved    bool      `json:"is_resolved"`
}

type dashboard struct {
	TotalStock           int          `json:"total_stock"`
	ItemCount            int          `json:"item_count"`
	ActiveReservations   int          `json:"active_reservations"`
	MyActiveReservations int          `json:"my_active_reservations"`
	CoachCount           int          `json:"coach_count"`
	BookingsLast7Days    []dayCount   `json:"bookings_last_7_days"`
	UnresolvedDamages    []damageView `json:"unresolved_damages"`
	DamageHistory        []damageView `json:"damage_history"`
}

// buildDashboard computes every stat from in-memory snapshots.  The
// weekly chart buckets reservations by their scheduled date, today
// included, oldest day first.  Unresolved damages are capped at five
// for the widget; the full history is newest first.
func buildDashboard(items []model.Item, ledger []model.Reservation, coachCount int, callerID string, now time.Time) dashboard {
	d := dashboard{
		ItemCount:         len(items),
		CoachCount:        coachCount,
		BookingsLast7Days: make([]dayCount, 0, 7),
		UnresolvedDamages: make([]damageView, 0),
		DamageHistory:     make([]damageView, 0),
	}
	for _, it := range items {
		d.TotalStock += it.Quantity
	}

	days := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		days[day] = 0
		d.BookingsLast7Days = append(d.BookingsLast7Days, dayCount{Date: day})
	}

	for _, res := range ledger {
		if res.Status == model.StatusActive {
			d.ActiveReservations++
			if res.CoachID == callerID {
				d.MyActiveReservations++
			}
		}
		// Every booking counts toward the chart, cancelled included.
		if _, ok := days[res.Date]; ok {
			days[res.Date]++
		}
		for _, dr := range res.DamageReports {
			v := damageView{
				ReservationID: res.ID,
				CoachName:     res.CoachName,
				ItemID:        dr.ItemID,
				ItemName:      dr.ItemName,
				Quantity:      dr.QuantityDamaged,
				Description:   dr.Description,
				ReportedBy:    dr.ReportedBy,
				Date:          dr.Date,
				IsResolved:    dr.IsResolved,
			}
			d.DamageHistory = append(d.DamageHistory, v)
			if !dr.IsResolved {
				d.UnresolvedDamages = append(d.UnresolvedDamages, v)
			}
		}
	}
	for i := range d.BookingsLast7Days {
		d.BookingsLast7Days[i].Count = days[d.BookingsLast7Days[i].Date]
	}

	sort.SliceStable(d.DamageHistory, func(i, j int) bool {
		return d.DamageHistory[i].Date.After(d.DamageHistory[j].Date)
	})
	sort.SliceStable(d.UnresolvedDamages, func(i, j int) bool {
		return d.UnresolvedDamages[i].Date.After(d.UnresolvedDamages[j].Date)
	})
	if len(d.UnresolvedDamages) > 5 {
		d.UnresolvedDamages = d.UnresolvedDamages[:5]
	}
	return d
}

// Get serves the dashboard for the caller's club.
func (h *DashboardHandler) Get(c echo.Context) error {
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Items.ListByClub(ctx, id.ClubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load catalog failed"})
	}
	ledger, err := h.Reservations.ListByClub(ctx, id.ClubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}
	coaches, err := h.Users.ListCoaches(ctx, id.ClubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load coaches failed"})
	}

	return c.JSON(http.StatusOK, buildDashboard(items, ledger, len(coaches), id.UserID, time.Now().UTC()))
}
