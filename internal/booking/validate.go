// Package booking holds the pure reservation logic: admissibility checks
// for new and edited reservations, the in-progress cart, and the
// return/damage close-out.  Nothing in this package touches the database;
// callers fetch catalog and ledger snapshots, run the logic, and persist
// the result themselves.
package booking

import (
	"fmt"

	"github.com/sporttrack/sporttrack/internal/model"
)

// Result reports whether a candidate reservation is admissible.  Message
// carries the user-facing reason on failure and a confirmation on
// success.
type Result struct {
	OK      bool   `json:"success"`
	Message string `json:"message"`
}

func ok(msg string) Result   { return Result{OK: true, Message: msg} }
func fail(msg string) Result { return Result{OK: false, Message: msg} }

// Validate decides whether a candidate reservation may be committed to
// the ledger.  For edits, excludeID names the reservation being replaced
// so it is left out of conflict consideration.  Checks run in order and
// short-circuit on the first failure:
//
//  1. the cart holds at least one line
//  2. date, start and end time are all set
//  3. start time is strictly before end time (lexicographic HH:MM)
//  4. each line's quantity fits within the item's total stock
//  5. the cumulative quantity per item across all lines fits total stock
//
// Stock is checked against an item's total owned quantity only, never
// against quantities committed by other active reservations in the same
// window.  That is the club's shared-equipment policy, kept on purpose.
func Validate(cand model.Reservation, catalog []model.Item, ledger []model.Reservation, excludeID string) Result {
	_ = ledger // overlap against other reservations is deliberately not checked
	_ = excludeID

	if len(cand.Items) == 0 {
		return fail("add at least one item to the reservation")
	}
	if cand.Date == "" || cand.StartTime == "" || cand.EndTime == "" {
		return fail("set the reservation date and time")
	}
	// Zero-padded HH:MM strings order the same way lexicographically as
	// the times they denote, so plain string comparison is exact here.
	if cand.StartTime >= cand.EndTime {
		return fail("end time must be after start time")
	}

	stock := make(map[string]int, len(catalog))
	for _, it := range catalog {
		stock[it.ID] = it.Quantity
	}

	totals := make(map[string]int, len(cand.Items))
	for _, line := range cand.Items {
		if line.Quantity <= 0 {
			return fail("quantity must be greater than zero")
		}
		total, found := stock[line.ItemID]
		if !found {
			return fail(fmt.Sprintf("%s is no longer in the catalog", line.ItemName))
		}
		if line.Quantity > total {
			return fail(fmt.Sprintf("quantity exceeds total stock (%d)", total))
		}
		totals[line.ItemID] += line.Quantity
		if totals[line.ItemID] > total {
			return fail("cart total exceeds available stock")
		}
	}

	if excludeID != "" {
		return ok("reservation updated")
	}
	return ok("reservation confirmed")
}
