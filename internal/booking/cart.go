package booking

import (
	"fmt"

	"github.com/sporttrack/sporttrack/internal/model"
)

// Cart is the in-progress, not-yet-submitted list of reservation lines
// being assembled by the booking form.  Adding an item already present
// merges into the existing line instead of duplicating it; removal drops
// the line entirely.
type Cart struct {
	lines []model.ReservationLine
}

// NewCart returns an empty cart for a new reservation.
func NewCart() *Cart { return &Cart{} }

// EditCart seeds a cart from a committed reservation.  The lines are
// deep-copied so in-progress edits cannot mutate the ledger entry until
// the caller submits and persists the result.
func EditCart(res model.Reservation) *Cart {
	lines := make([]model.ReservationLine, len(res.Items))
	copy(lines, res.Items)
	return &Cart{lines: lines}
}

// CartFromLines rebuilds a cart from submitted reservation lines,
// merging duplicate items the same way interactive Add does.  Stock is
// not checked here; a submitted cart is validated as a whole by
// Validate.
func CartFromLines(lines []model.ReservationLine) *Cart {
	c := &Cart{}
	for _, l := range lines {
		c.merge(l)
	}
	return c
}

// Add puts qty units of item into the cart, merging with an existing
// line for the same item.  The combined quantity is re-validated against
// the item's total stock before the merge is applied.
func (c *Cart) Add(item model.Item, qty int) Result {
	if qty <= 0 {
		return fail("quantity must be greater than zero")
	}
	if qty > item.Quantity {
		return fail(fmt.Sprintf("quantity exceeds total stock (%d)", item.Quantity))
	}
	for _, line := range c.lines {
		if line.ItemID == item.ID && line.Quantity+qty > item.Quantity {
			return fail("cart total exceeds available stock")
		}
	}
	if c.merge(model.ReservationLine{
		ItemID:   item.ID,
		ItemName: item.Name, // snapshot, survives later renames
		Quantity: qty,
	}) {
		return ok("quantity updated")
	}
	return ok("item added")
}

// merge folds a line into the cart, reporting whether it landed on an
// existing line.  All duplicate handling funnels through here.
func (c *Cart) merge(l model.ReservationLine) bool {
	for i, line := range c.lines {
		if line.ItemID == l.ItemID {
			c.lines[i].Quantity += l.Quantity
			return true
		}
	}
	c.lines = append(c.lines, l)
	return false
}

// Remove deletes the line for itemID.  Unknown IDs are ignored.
func (c *Cart) Remove(itemID string) {
	for i, line := range c.lines {
		if line.ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the cart contents, safe for the caller to
// embed in a candidate reservation.
func (c *Cart) Lines() []model.ReservationLine {
	out := make([]model.ReservationLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len reports the number of distinct lines in the cart.
func (c *Cart) Len() int { return len(c.lines) }
