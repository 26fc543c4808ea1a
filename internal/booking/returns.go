package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/sporttrack/sporttrack/internal/model"
)

// ErrNotActive is returned when a terminal reservation is returned or
// cancelled a second time.  Completed and cancelled are one-way states.
var ErrNotActive = errors.New("reservation is not active")

// DamageEntry is the caller's description of one damaged item on a
// reservation being returned.
type DamageEntry struct {
	ItemID          string `json:"item_id"`
	QuantityDamaged int    `json:"quantity_damaged"`
	Description     string `json:"description"`
}

// Return closes out an active reservation.  When hasDamage is set, the
// entries are turned into damage reports stamped with the reporter's
// name and now; entries referencing items not on the reservation are
// silently skipped.  The reservation always ends up completed, with an
// empty report list when nothing was damaged.  The transition is
// terminal: returning a completed or cancelled reservation fails with
// ErrNotActive.
func Return(res *model.Reservation, hasDamage bool, entries []DamageEntry, reportedBy string, now time.Time) error {
	if res.Status != model.StatusActive {
		return ErrNotActive
	}
	// Reports are staged locally so a rejected entry leaves the
	// reservation exactly as it was.
	var reports []model.DamageReport
	if hasDamage {
		for _, e := range entries {
			line, found := lineFor(res, e.ItemID)
			if !found {
				continue
			}
			if e.QuantityDamaged < 1 || e.QuantityDamaged > line.Quantity {
				return fmt.Errorf("damaged quantity for %s must be between 1 and %d", line.ItemName, line.Quantity)
			}
			desc := e.Description
			if desc == "" {
				desc = "damaged"
			}
			reports = append(reports, model.DamageReport{
				ItemID:          line.ItemID,
				ItemName:        line.ItemName,
				QuantityDamaged: e.QuantityDamaged,
				Description:     desc,
				ReportedBy:      reportedBy,
				Date:            now,
				IsResolved:      false,
			})
		}
	}
	res.DamageReports = append(res.DamageReports, reports...)
	res.Status = model.StatusCompleted
	return nil
}

// ResolveDamage marks the first unresolved report for itemID as
// resolved and reports whether anything changed.  It never touches the
// reservation status or other reports, and never restores stock;
// restocking is a separate admin edit of the item itself.
func ResolveDamage(res *model.Reservation, itemID string) bool {
	for i := range res.DamageReports {
		r := &res.DamageReports[i]
		if r.ItemID == itemID && !r.IsResolved {
			r.IsResolved = true
			return true
		}
	}
	return false
}

// Cancel transitions an active reservation to cancelled without any
// return or damage flow.  Cancelling a non-active reservation fails with
// ErrNotActive.
func Cancel(res *model.Reservation) error {
	if res.Status != model.StatusActive {
		return ErrNotActive
	}
	res.Status = model.StatusCancelled
	return nil
}

func lineFor(res *model.Reservation, itemID string) (model.ReservationLine, bool) {
	for _, l := range res.Items {
		if l.ItemID == itemID {
			return l, true
		}
	}
	return model.ReservationLine{}, false
}
