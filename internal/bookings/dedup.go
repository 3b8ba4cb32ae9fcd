package bookings

import (
	"slices"
	"time"

	"github.com/julianstephens/otfkit/internal/logger"
	"github.com/julianstephens/otfkit/internal/models"
	"github.com/julianstephens/otfkit/internal/utils"
)

// Deduplicate keeps at most one booking per class identity and returns the
// survivors sorted ascending by class start time, missing start times last.
//
// Bookings without a class identity cannot collide and are kept untouched.
// Within a group the booking with the smallest SortKey wins; on a full tie
// the earliest booking in input order is kept.
func Deduplicate(in []models.Booking) []models.Booking {
	keep := make([]models.Booking, 0, len(in))
	groups := make(map[string][]models.Booking)
	var order []string

	for _, b := range in {
		classID := b.ClassID()
		if classID == "" {
			keep = append(keep, b)
			continue
		}
		if _, seen := groups[classID]; !seen {
			order = append(order, classID)
		}
		groups[classID] = append(groups[classID], b)
	}

	for _, classID := range order {
		keep = append(keep, best(groups[classID]))
	}

	if removed := len(in) - len(keep); removed > 0 {
		logger.Debug("Removed duplicate bookings", "removed", removed, "kept", len(keep))
	}

	slices.SortStableFunc(keep, CompareStartsAt)
	return keep
}

func best(group []models.Booking) models.Booking {
	winner := group[0]
	winnerKey := SortKey(winner)
	for _, b := range group[1:] {
		if k := SortKey(b); k.Less(winnerKey) {
			winner, winnerKey = b, k
		}
	}
	return winner
}

// CompareStartsAt orders bookings by class start time; a booking without a
// parsable start time sorts after every booking that has one.
func CompareStartsAt(a, b models.Booking) int {
	ta, okA := utils.ParseTimestamp(a.StartsAt())
	tb, okB := utils.ParseTimestamp(b.StartsAt())
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

// FilterPast keeps bookings whose class has started by now. Bookings without a
// start time are kept.
func FilterPast(in []models.Booking, now time.Time) []models.Booking {
	out := make([]models.Booking, 0, len(in))
	for _, b := range in {
		if t, ok := utils.ParseTimestamp(b.StartsAt()); ok && t.After(now) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// ExcludeCancelled drops bookings in a cancelled state.
func ExcludeCancelled(in []models.Booking) []models.Booking {
	out := make([]models.Booking, 0, len(in))
	for _, b := range in {
		if b.Status.IsCancelled() {
			continue
		}
		out = append(out, b)
	}
	return out
}
