package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/sporttrack/sporttrack/internal/model"
)

func activeReservation() model.Reservation {
	return model.Reservation{
		ID:        "res-1",
		CoachID:   "coach-1",
		CoachName: "Carlos Silva",
		Date:      "2026-09-01",
		StartTime: "10:00",
		EndTime:   "12:00",
		Status:    model.StatusActive,
		Items: []model.ReservationLine{
			{ItemID: "item-ball", ItemName: "Football", Quantity: 3},
			{ItemID: "item-cone", ItemName: "Training Cone", Quantity: 10},
		},
	}
}

func TestReturnWithoutDamage(t *testing.T) {
	res := activeReservation()
	now := time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC)

	if err := Return(&res, false, nil, "Carlos Silva", now); err != nil {
		t.Fatalf("Return: %v", err)
	}
	if res.Status != model.StatusCompleted {
		t.Errorf("expected completed, got %q", res.Status)
	}
	if len(res.DamageReports) != 0 {
		t.Errorf("expected no damage reports, got %d", len(res.DamageReports))
	}
}

func TestReturnWithDamage(t *testing.T) {
	res := activeReservation()
	now := time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC)

	entries := []DamageEntry{{ItemID: "item-ball", QuantityDamaged: 2, Description: "punctured"}}
	if err := Return(&res, true, entries, "Carlos Silva", now); err != nil {
		t.Fatalf("Return: %v", err)
	}
	if res.Status != model.StatusCompleted {
		t.Errorf("expected completed, got %q", res.Status)
	}
	if len(res.DamageReports) != 1 {
		t.Fatalf("expected exactly one damage report, got %d", len(res.DamageReports))
	}
	r := res.DamageReports[0]
	if r.QuantityDamaged != 2 || r.ItemName != "Football" || r.IsResolved {
		t.Errorf("unexpected report %+v", r)
	}
	if r.ReportedBy != "Carlos Silva" || !r.Date.Equal(now) {
		t.Errorf("report should be stamped with reporter and time, got %+v", r)
	}
}

func TestReturnDamageDescriptionDefault(t *testing.T) {
	res := activeReservation()
	entries := []DamageEntry{{ItemID: "item-cone", QuantityDamaged: 1}}
	if err := Return(&res, true, entries, "Carlos Silva", time.Now()); err != nil {
		t.Fatalf("Return: %v", err)
	}
	if got := res.DamageReports[0].Description; got != "damaged" {
		t.Errorf("expected default description, got %q", got)
	}
}

func TestReturnSkipsUnknownItems(t *testing.T) {
	res := activeReservation()
	entries := []DamageEntry{
		{ItemID: "item-missing", QuantityDamaged: 1, Description: "?"},
		{ItemID: "item-ball", QuantityDamaged: 1, Description: "torn"},
	}
	if err := Return(&res, true, entries, "Carlos Silva", time.Now()); err != nil {
		t.Fatalf("Return: %v", err)
	}
	if len(res.DamageReports) != 1 || res.DamageReports[0].ItemID != "item-ball" {
		t.Fatalf("entries for items not on the reservation must be skipped, got %+v", res.DamageReports)
	}
}

func TestReturnDamageQuantityBounds(t *testing.T) {
	for _, qty := range []int{0, -1, 4} { // reserved quantity for the ball is 3
		res := activeReservation()
		entries := []DamageEntry{{ItemID: "item-ball", QuantityDamaged: qty}}
		if err := Return(&res, true, entries, "Carlos Silva", time.Now()); err == nil {
			t.Errorf("expected error for damaged quantity %d", qty)
		}
	}
}

func TestReturnRejectedEntryLeavesReservationUntouched(t *testing.T) {
	res := activeReservation()
	entries := []DamageEntry{
		{ItemID: "item-ball", QuantityDamaged: 1, Description: "torn"},
		{ItemID: "item-cone", QuantityDamaged: 99, Description: "crushed"},
	}
	if err := Return(&res, true, entries, "Carlos Silva", time.Now()); err == nil {
		t.Fatal("expected error for out-of-bounds damaged quantity")
	}
	if len(res.DamageReports) != 0 {
		t.Fatalf("rejected return must not attach reports for earlier entries, got %d", len(res.DamageReports))
	}
	if res.Status != model.StatusActive {
		t.Fatalf("rejected return must leave the reservation active, got %q", res.Status)
	}
}

func TestReturnIsTerminal(t *testing.T) {
	res := activeReservation()
	if err := Return(&res, false, nil, "Carlos Silva", time.Now()); err != nil {
		t.Fatalf("first return: %v", err)
	}
	if err := Return(&res, false, nil, "Carlos Silva", time.Now()); !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive on second return, got %v", err)
	}
}

func TestResolveDamage(t *testing.T) {
	res := activeReservation()
	entries := []DamageEntry{
		{ItemID: "item-ball", QuantityDamaged: 1, Description: "torn"},
		{ItemID: "item-cone", QuantityDamaged: 2, Description: "cracked"},
	}
	if err := Return(&res, true, entries, "Carlos Silva", time.Now()); err != nil {
		t.Fatalf("Return: %v", err)
	}

	if !ResolveDamage(&res, "item-ball") {
		t.Fatal("expected resolve to report a change")
	}
	if !res.DamageReports[0].IsResolved {
		t.Error("ball report should be resolved")
	}
	if res.DamageReports[1].IsResolved {
		t.Error("cone report must be untouched")
	}
	if res.Status != model.StatusCompleted {
		t.Errorf("resolving damage must not alter status, got %q", res.Status)
	}

	// Already resolved: nothing left to flip for that item.
	if ResolveDamage(&res, "item-ball") {
		t.Error("expected no-op when the only matching report is resolved")
	}
	if ResolveDamage(&res, "item-unknown") {
		t.Error("expected no-op for an unknown item")
	}
}

func TestResolveDamageFlipsFirstUnresolvedOnly(t *testing.T) {
	res := activeReservation()
	entries := []DamageEntry{
		{ItemID: "item-ball", QuantityDamaged: 1, Description: "torn"},
		{ItemID: "item-ball", QuantityDamaged: 2, Description: "flat"},
	}
	if err := Return(&res, true, entries, "Carlos Silva", time.Now()); err != nil {
		t.Fatalf("Return: %v", err)
	}
	ResolveDamage(&res, "item-ball")
	if !res.DamageReports[0].IsResolved || res.DamageReports[1].IsResolved {
		t.Errorf("only the first unresolved report should flip, got %+v", res.DamageReports)
	}
}

func TestCancel(t *testing.T) {
	res := activeReservation()
	if err := Cancel(&res); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if res.Status != model.StatusCancelled {
		t.Errorf("expected cancelled, got %q", res.Status)
	}
	if len(res.DamageReports) != 0 {
		t.Errorf("cancel must not attach damage reports")
	}

	if err := Cancel(&res); !errors.Is(err, ErrNotActive) {
		t.Errorf("expected ErrNotActive when cancelling a cancelled reservation, got %v", err)
	}

	completed := activeReservation()
	completed.Status = model.StatusCompleted
	if err := Cancel(&completed); !errors.Is(err, ErrNotActive) {
		t.Errorf("expected ErrNotActive when cancelling a completed reservation, got %v", err)
	}
}
