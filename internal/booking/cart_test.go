package booking

import (
	"strings"
	"testing"

	"github.com/sporttrack/sporttrack/internal/model"
)

func TestCartAddMergesDuplicateLines(t *testing.T) {
	ball := model.Item{ID: "item-ball", Name: "Football", Quantity: 5}
	c := NewCart()

	if res := c.Add(ball, 2); !res.OK {
		t.Fatalf("first add failed: %q", res.Message)
	}
	if res := c.Add(ball, 2); !res.OK {
		t.Fatalf("second add failed: %q", res.Message)
	}
	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 4 {
		t.Errorf("expected merged quantity 4, got %d", lines[0].Quantity)
	}
	if lines[0].ItemName != "Football" {
		t.Errorf("line should snapshot the item name, got %q", lines[0].ItemName)
	}
}

func TestCartFromLinesMergesDuplicates(t *testing.T) {
	c := CartFromLines([]model.ReservationLine{
		{ItemID: "item-ball", ItemName: "Football", Quantity: 2},
		{ItemID: "item-cone", ItemName: "Training Cone", Quantity: 5},
		{ItemID: "item-ball", ItemName: "Football", Quantity: 3},
	})

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected two merged lines, got %d", len(lines))
	}
	if lines[0].ItemID != "item-ball" || lines[0].Quantity != 5 {
		t.Errorf("expected merged ball line with quantity 5, got %+v", lines[0])
	}
	if lines[1].ItemID != "item-cone" || lines[1].Quantity != 5 {
		t.Errorf("cone line should be untouched, got %+v", lines[1])
	}
}

func TestCartFromLinesKeepsFirstName(t *testing.T) {
	c := CartFromLines([]model.ReservationLine{
		{ItemID: "item-ball", ItemName: "Football", Quantity: 1},
		{ItemID: "item-ball", ItemName: "Soccer Ball", Quantity: 1},
	})
	if lines := c.Lines(); lines[0].ItemName != "Football" {
		t.Errorf("merged line should keep the first snapshot name, got %q", lines[0].ItemName)
	}
}

func TestCartAddRejectsOverStock(t *testing.T) {
	ball := model.Item{ID: "item-ball", Name: "Football", Quantity: 5}
	c := NewCart()

	if res := c.Add(ball, 6); res.OK {
		t.Fatal("expected rejection: 6 > stock of 5")
	}

	// 2 fits; a further 6 would pass the single-line check against a
	// larger stock but must fail the combined check here.
	if res := c.Add(ball, 2); !res.OK {
		t.Fatalf("add 2 failed: %q", res.Message)
	}
	res := c.Add(ball, 3)
	if !res.OK {
		t.Fatalf("add 3 (total 5) failed: %q", res.Message)
	}
	res = c.Add(ball, 1)
	if res.OK {
		t.Fatal("expected rejection: cart total 6 > stock of 5")
	}
	if !strings.Contains(res.Message, "cart total") {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestCartAddNonPositive(t *testing.T) {
	ball := model.Item{ID: "item-ball", Name: "Football", Quantity: 5}
	c := NewCart()
	for _, qty := range []int{0, -3} {
		if res := c.Add(ball, qty); res.OK {
			t.Errorf("expected rejection for quantity %d", qty)
		}
	}
	if c.Len() != 0 {
		t.Errorf("cart should stay empty, holds %d lines", c.Len())
	}
}

func TestCartRemove(t *testing.T) {
	ball := model.Item{ID: "item-ball", Name: "Football", Quantity: 5}
	cone := model.Item{ID: "item-cone", Name: "Training Cone", Quantity: 20}
	c := NewCart()
	c.Add(ball, 1)
	c.Add(cone, 4)

	c.Remove("item-ball")
	lines := c.Lines()
	if len(lines) != 1 || lines[0].ItemID != "item-cone" {
		t.Fatalf("expected only the cone line to remain, got %+v", lines)
	}

	c.Remove("item-unknown") // no-op
	if c.Len() != 1 {
		t.Errorf("removing an unknown item must not change the cart")
	}
}

func TestEditCartIsStructurallyIndependent(t *testing.T) {
	committed := model.Reservation{
		ID:     "res-1",
		Status: model.StatusActive,
		Items: []model.ReservationLine{
			{ItemID: "item-ball", ItemName: "Football", Quantity: 2},
		},
	}

	c := EditCart(committed)
	c.Add(model.Item{ID: "item-ball", Name: "Football", Quantity: 5}, 3)
	c.Remove("item-ball")
	c.Add(model.Item{ID: "item-cone", Name: "Training Cone", Quantity: 20}, 7)

	// The committed reservation must be untouched until submit persists
	// a new line list.
	if len(committed.Items) != 1 {
		t.Fatalf("committed lines changed: %+v", committed.Items)
	}
	if committed.Items[0].Quantity != 2 || committed.Items[0].ItemID != "item-ball" {
		t.Errorf("committed line mutated: %+v", committed.Items[0])
	}
}

func TestCartLinesReturnsCopy(t *testing.T) {
	c := NewCart()
	c.Add(model.Item{ID: "item-ball", Name: "Football", Quantity: 5}, 2)
	lines := c.Lines()
	lines[0].Quantity = 99
	if c.Lines()[0].Quantity != 2 {
		t.Error("mutating the returned slice must not affect the cart")
	}
}
