package bookings

import (
	"cmp"
	"math"

	"github.com/julianstephens/otfkit/internal/models"
	"github.com/julianstephens/otfkit/internal/utils"
)

// UnknownStatusPriority ranks statuses missing from StatusPriority.
const UnknownStatusPriority = 999

// StatusPriority ranks booking statuses; lower is more authoritative.
var StatusPriority = map[models.BookingStatus]int{
	models.StatusBooked:                 0,
	models.StatusConfirmed:              1,
	models.StatusWaitlisted:             2,
	models.StatusPending:                3,
	models.StatusRequested:              4,
	models.StatusCheckedIn:              5,
	models.StatusCheckinPending:         6,
	models.StatusCheckinRequested:       7,
	models.StatusCheckinCancelled:       8,
	models.StatusLateCancelled:          9,
	models.StatusCancelled:              10,
	models.StatusCancelCheckinPending:   11,
	models.StatusCancelCheckinRequested: 12,
}

// Key orders bookings that share a class. The smallest key is the booking to keep.
type Key struct {
	StartsAt       float64
	NegUpdatedAt   float64
	NegCreatedAt   float64
	StatusPriority int
}

// Compare compares keys lexicographically, left to right.
func (k Key) Compare(other Key) int {
	if c := cmp.Compare(k.StartsAt, other.StartsAt); c != 0 {
		return c
	}
	if c := cmp.Compare(k.NegUpdatedAt, other.NegUpdatedAt); c != 0 {
		return c
	}
	if c := cmp.Compare(k.NegCreatedAt, other.NegCreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(k.StatusPriority, other.StatusPriority)
}

// Less reports whether k ranks strictly better than other.
func (k Key) Less(other Key) bool {
	return k.Compare(other) < 0
}

// SortKey computes the ordering key for one booking.
//
// A booking without a class start time gets StartsAt 0, so it sorts as if the
// class began at the epoch and is favoured over any dated duplicate.
// Unparsable or epoch-zero updated/created timestamps score +Inf so bad data
// never wins on recency.
func SortKey(b models.Booking) Key {
	var startsAt float64
	if t, ok := utils.ParseTimestamp(b.StartsAt()); ok {
		startsAt = utils.EpochSeconds(t)
	}

	priority, ok := StatusPriority[b.Status]
	if !ok {
		priority = UnknownStatusPriority
	}

	return Key{
		StartsAt:       startsAt,
		NegUpdatedAt:   negatedRecency(b.UpdatedAt),
		NegCreatedAt:   negatedRecency(b.CreatedAt),
		StatusPriority: priority,
	}
}

func negatedRecency(value string) float64 {
	t, ok := utils.ParseTimestamp(value)
	if !ok || t.IsZero() || t.Unix() == 0 {
		return math.Inf(1)
	}
	return -utils.EpochSeconds(t)
}
