package booking

import (
	"strings"
	"testing"

	"github.com/sporttrack/sporttrack/internal/model"
)

func testCatalog() []model.Item {
	return []model.Item{
		{ID: "item-ball", Name: "Football", Quantity: 5},
		{ID: "item-cone", Name: "Training Cone", Quantity: 20},
	}
}

func candidate(lines ...model.ReservationLine) model.Reservation {
	return model.Reservation{
		Date:      "2026-09-01",
		StartTime: "10:00",
		EndTime:   "12:00",
		Items:     lines,
		Status:    model.StatusActive,
	}
}

func TestValidateEmptyCart(t *testing.T) {
	res := Validate(candidate(), testCatalog(), nil, "")
	if res.OK {
		t.Fatal("expected rejection for empty cart")
	}
	if !strings.Contains(res.Message, "at least one item") {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestValidateMissingDateOrTime(t *testing.T) {
	line := model.ReservationLine{ItemID: "item-ball", ItemName: "Football", Quantity: 1}
	cases := []struct {
		name string
		mut  func(*model.Reservation)
	}{
		{"no date", func(r *model.Reservation) { r.Date = "" }},
		{"no start", func(r *model.Reservation) { r.StartTime = "" }},
		{"no end", func(r *model.Reservation) { r.EndTime = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cand := candidate(line)
			tc.mut(&cand)
			res := Validate(cand, testCatalog(), nil, "")
			if res.OK {
				t.Fatal("expected rejection")
			}
			if !strings.Contains(res.Message, "date and time") {
				t.Errorf("unexpected message %q", res.Message)
			}
		})
	}
}

func TestValidateTimeOrdering(t *testing.T) {
	line := model.ReservationLine{ItemID: "item-ball", ItemName: "Football", Quantity: 1}
	cases := []struct {
		name       string
		start, end string
		wantOK     bool
	}{
		{"start before end", "09:00", "10:30", true},
		{"equal times", "10:00", "10:00", false},
		{"start after end", "18:00", "09:00", false},
		{"zero padded compare", "09:05", "09:50", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cand := candidate(line)
			cand.StartTime, cand.EndTime = tc.start, tc.end
			res := Validate(cand, testCatalog(), nil, "")
			if res.OK != tc.wantOK {
				t.Fatalf("got OK=%v message=%q, want OK=%v", res.OK, res.Message, tc.wantOK)
			}
			if !tc.wantOK && !strings.Contains(res.Message, "after start time") {
				t.Errorf("unexpected message %q", res.Message)
			}
		})
	}
}

func TestValidateTimeCheckedBeforeStock(t *testing.T) {
	// An impossible time window must be reported regardless of cart
	// contents, even when the cart would also fail the stock check.
	cand := candidate(model.ReservationLine{ItemID: "item-ball", ItemName: "Football", Quantity: 99})
	cand.StartTime, cand.EndTime = "12:00", "10:00"
	res := Validate(cand, testCatalog(), nil, "")
	if res.OK || !strings.Contains(res.Message, "after start time") {
		t.Fatalf("got OK=%v message=%q", res.OK, res.Message)
	}
}

func TestValidateLineExceedsStock(t *testing.T) {
	cand := candidate(model.ReservationLine{ItemID: "item-ball", ItemName: "Football", Quantity: 6})
	res := Validate(cand, testCatalog(), nil, "")
	if res.OK {
		t.Fatal("expected rejection: 6 > stock of 5")
	}
	if !strings.Contains(res.Message, "total stock (5)") {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestValidateCumulativeExceedsStock(t *testing.T) {
	// Two lines for the same item: 2 then 4.  Each alone fits within the
	// stock of 5, but the running total of 6 must be rejected with the
	// combined-check message.
	cand := candidate(
		model.ReservationLine{ItemID: "item-ball", ItemName: "Football", Quantity: 2},
		model.ReservationLine{ItemID: "item-ball", ItemName: "Football", Quantity: 4},
	)
	res := Validate(cand, testCatalog(), nil, "")
	if res.OK {
		t.Fatal("expected rejection: cumulative 6 > stock of 5")
	}
	if !strings.Contains(res.Message, "cart total") {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestValidateUnknownItem(t *testing.T) {
	cand := candidate(model.ReservationLine{ItemID: "item-gone", ItemName: "Old Net", Quantity: 1})
	res := Validate(cand, testCatalog(), nil, "")
	if res.OK {
		t.Fatal("expected rejection for deleted item")
	}
	if !strings.Contains(res.Message, "Old Net") {
		t.Errorf("message should name the snapshot item name, got %q", res.Message)
	}
}

func TestValidateNonPositiveQuantity(t *testing.T) {
	cand := candidate(model.ReservationLine{ItemID: "item-ball", ItemName: "Football", Quantity: 0})
	if res := Validate(cand, testCatalog(), nil, ""); res.OK {
		t.Fatal("expected rejection for zero quantity")
	}
}

func TestValidateAdmissible(t *testing.T) {
	cand := candidate(
		model.ReservationLine{ItemID: "item-ball", ItemName: "Football", Quantity: 5},
		model.ReservationLine{ItemID: "item-cone", ItemName: "Training Cone", Quantity: 10},
	)
	res := Validate(cand, testCatalog(), nil, "")
	if !res.OK {
		t.Fatalf("expected success, got %q", res.Message)
	}
}

func TestValidateIgnoresOtherActiveReservations(t *testing.T) {
	// Stock sufficiency is static: another active reservation holding all
	// five footballs in the same window does not block a new one.  The
	// shared-equipment policy checks total stock only.
	ledger := []model.Reservation{{
		ID:        "res-other",
		Date:      "2026-09-01",
		StartTime: "10:00",
		EndTime:   "12:00",
		Status:    model.StatusActive,
		Items:     []model.ReservationLine{{ItemID: "item-ball", ItemName: "Football", Quantity: 5}},
	}}
	cand := candidate(model.ReservationLine{ItemID: "item-ball", ItemName: "Football", Quantity: 5})
	if res := Validate(cand, testCatalog(), ledger, ""); !res.OK {
		t.Fatalf("expected success despite overlapping reservation, got %q", res.Message)
	}
}
