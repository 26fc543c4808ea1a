package handler

import (
	"testing"
	"time"

	"github.com/sporttrack/sporttrack/internal/model"
)

func dashFixture(now time.Time) ([]model.Item, []model.Reservation) {
	items := []model.Item{
		{ID: "i1", Name: "Football", Quantity: 10},
		{ID: "i2", Name: "Cone", Quantity: 40},
	}
	day := func(offset int) string { return now.AddDate(0, 0, offset).Format("2006-01-02") }
	ledger := []model.Reservation{
		{ID: "r1", CoachID: "c1", CoachName: "Ana", Date: day(0), Status: model.StatusActive},
		{ID: "r2", CoachID: "c2", CoachName: "Bo", Date: day(0), Status: model.StatusActive},
		{ID: "r3", CoachID: "c1", CoachName: "Ana", Date: day(-2), Status: model.StatusCompleted,
			DamageReports: []model.DamageReport{
				{ItemID: "i1", ItemName: "Football", QuantityDamaged: 1, Date: now.Add(-48 * time.Hour)},
				{ItemID: "i2", ItemName: "Cone", QuantityDamaged: 3, Date: now.Add(-24 * time.Hour), IsResolved: true},
			}},
		{ID: "r4", CoachID: "c2", CoachName: "Bo", Date: day(-2), Status: model.StatusCancelled},
		{ID: "r5", CoachID: "c1", CoachName: "Ana", Date: day(-10), Status: model.StatusCompleted},
	}
	return items, ledger
}

func TestBuildDashboardCounts(t *testing.T) {
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	items, ledger := dashFixture(now)

	d := buildDashboard(items, ledger, 3, "c1", now)

	if d.TotalStock != 50 {
		t.Fatalf("TotalStock = %d, want 50", d.TotalStock)
	}
	if d.ItemCount != 2 {
		t.Fatalf("ItemCount = %d, want 2", d.ItemCount)
	}
	if d.ActiveReservations != 2 {
		t.Fatalf("ActiveReservations = %d, want 2", d.ActiveReservations)
	}
	if d.MyActiveReservations != 1 {
		t.Fatalf("MyActiveReservations = %d, want 1", d.MyActiveReservations)
	}
	if d.CoachCount != 3 {
		t.Fatalf("CoachCount = %d, want 3", d.CoachCount)
	}
}

func TestBuildDashboardWeeklyChart(t *testing.T) {
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	items, ledger := dashFixture(now)

	d := buildDashboard(items, ledger, 0, "c1", now)

	if len(d.BookingsLast7Days) != 7 {
		t.Fatalf("chart has %d days, want 7", len(d.BookingsLast7Days))
	}
	if first := d.BookingsLast7Days[0].Date; first != "2024-05-14" {
		t.Fatalf("first day = %s, want 2024-05-14", first)
	}
	if last := d.BookingsLast7Days[6]; last.Date != "2024-05-20" || last.Count != 2 {
		t.Fatalf("today = %+v, want 2 bookings on 2024-05-20", last)
	}
	// Cancelled bookings still count: r3 and r4 both fall on day -2.
	if c := d.BookingsLast7Days[4]; c.Date != "2024-05-18" || c.Count != 2 {
		t.Fatalf("day -2 = %+v, want count 2", c)
	}
	// r5 is outside the window.
	total := 0
	for _, dc := range d.BookingsLast7Days {
		total += dc.Count
	}
	if total != 4 {
		t.Fatalf("window total = %d, want 4", total)
	}
}

func TestBuildDashboardDamages(t *testing.T) {
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	items, ledger := dashFixture(now)

	d := buildDashboard(items, ledger, 0, "c1", now)

	if len(d.DamageHistory) != 2 {
		t.Fatalf("history has %d entries, want 2", len(d.DamageHistory))
	}
	// Newest first.
	if d.DamageHistory[0].ItemID != "i2" {
		t.Fatalf("newest damage = %s, want i2", d.DamageHistory[0].ItemID)
	}
	if len(d.UnresolvedDamages) != 1 || d.UnresolvedDamages[0].ItemID != "i1" {
		t.Fatalf("unresolved = %+v, want one entry for i1", d.UnresolvedDamages)
	}
	if d.UnresolvedDamages[0].ReservationID != "r3" || d.UnresolvedDamages[0].CoachName != "Ana" {
		t.Fatalf("damage view lost reservation context: %+v", d.UnresolvedDamages[0])
	}
}

func TestBuildDashboardUnresolvedCap(t *testing.T) {
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	reports := make([]model.DamageReport, 8)
	for i := range reports {
		reports[i] = model.DamageReport{ItemID: "i1", ItemName: "Football", QuantityDamaged: 1,
			Date: now.Add(-time.Duration(i) * time.Hour)}
	}
	ledger := []model.Reservation{{ID: "r1", Date: now.Format("2006-01-02"),
		Status: model.StatusCompleted, DamageReports: reports}}

	d := buildDashboard(nil, ledger, 0, "c1", now)

	if len(d.UnresolvedDamages) != 5 {
		t.Fatalf("widget shows %d damages, want 5", len(d.UnresolvedDamages))
	}
	if len(d.DamageHistory) != 8 {
		t.Fatalf("history has %d entries, want all 8", len(d.DamageHistory))
	}
}
