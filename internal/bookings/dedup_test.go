package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/otfkit/internal/models"
)

func booking(id, classID, startsAt string, status models.BookingStatus, updated, created string) models.Booking {
	b := models.Booking{
		BookingID: id,
		Status:    status,
		UpdatedAt: updated,
		CreatedAt: created,
	}
	if classID != "" || startsAt != "" {
		b.Class = &models.BookingClass{ClassID: classID, StartsAt: startsAt}
	}
	return b
}

func ids(in []models.Booking) []string {
	out := make([]string, 0, len(in))
	for _, b := range in {
		out = append(out, b.BookingID)
	}
	return out
}

func TestDeduplicateClassCollision(t *testing.T) {
	const t0 = "2024-01-10T08:00:00Z"
	const t1 = "2024-01-10T09:00:00Z"

	in := []models.Booking{
		booking("b1", "c1", "2024-01-15T10:00:00", models.StatusWaitlisted, t0, t0),
		booking("b2", "c1", "2024-01-15T10:00:00", models.StatusBooked, t1, t1),
		booking("b3", "c2", "2024-01-12T06:00:00", models.StatusConfirmed, t0, t0),
	}

	got := Deduplicate(in)
	require.Equal(t, []string{"b3", "b2"}, ids(got))
	require.Equal(t, models.StatusBooked, got[1].Status)
}

func TestDeduplicateBookedBeatsWaitlisted(t *testing.T) {
	const ts = "2024-01-10T08:00:00Z"
	for _, order := range [][]models.BookingStatus{
		{models.StatusWaitlisted, models.StatusBooked},
		{models.StatusBooked, models.StatusWaitlisted},
	} {
		in := []models.Booking{
			booking("a", "c1", "2024-01-15T10:00:00", order[0], ts, ts),
			booking("b", "c1", "2024-01-15T10:00:00", order[1], ts, ts),
		}
		got := Deduplicate(in)
		require.Len(t, got, 1)
		require.Equal(t, models.StatusBooked, got[0].Status)
	}
}

func TestDeduplicateRecencyTieBreak(t *testing.T) {
	in := []models.Booking{
		booking("old", "c1", "2024-01-15T10:00:00", models.StatusBooked, "2024-01-10T08:00:00Z", "2024-01-09T08:00:00Z"),
		booking("new", "c1", "2024-01-15T10:00:00", models.StatusBooked, "2024-01-11T08:00:00Z", "2024-01-01T08:00:00Z"),
	}

	got := Deduplicate(in)
	require.Equal(t, []string{"new"}, ids(got))
}

func TestDeduplicateUnparsableUpdatedNeverWins(t *testing.T) {
	in := []models.Booking{
		booking("bad", "c1", "2024-01-15T10:00:00", models.StatusBooked, "not a time", "2024-01-12T08:00:00Z"),
		booking("good", "c1", "2024-01-15T10:00:00", models.StatusBooked, "2020-01-01T00:00:00Z", "2020-01-01T00:00:00Z"),
	}

	got := Deduplicate(in)
	require.Equal(t, []string{"good"}, ids(got))
}

func TestDeduplicateKeepsBookingsWithoutClass(t *testing.T) {
	in := []models.Booking{
		{BookingID: "orphan-1", Status: models.StatusBooked},
		booking("b1", "c1", "2024-01-15T10:00:00", models.StatusBooked, "", ""),
		{BookingID: "orphan-2", Status: models.StatusBooked},
	}

	got := Deduplicate(in)
	require.Equal(t, []string{"b1", "orphan-1", "orphan-2"}, ids(got))
}

func TestDeduplicateMissingStartSortsLast(t *testing.T) {
	in := []models.Booking{
		booking("nostart", "c3", "", models.StatusBooked, "", ""),
		booking("late", "c2", "2024-01-20T10:00:00", models.StatusBooked, "", ""),
		booking("early", "c1", "2024-01-05T10:00:00", models.StatusBooked, "", ""),
	}

	got := Deduplicate(in)
	require.Equal(t, []string{"early", "late", "nostart"}, ids(got))
}

func TestDeduplicateIdempotent(t *testing.T) {
	in := []models.Booking{
		booking("a", "c1", "2024-01-15T10:00:00", models.StatusWaitlisted, "2024-01-10T08:00:00Z", ""),
		booking("b", "c1", "2024-01-15T10:00:00", models.StatusBooked, "2024-01-10T08:00:00Z", ""),
		booking("c", "c2", "2024-01-14T10:00:00", models.StatusBooked, "", ""),
		booking("d", "c2", "2024-01-14T10:00:00", models.StatusCheckedIn, "garbage", ""),
		{BookingID: "e", Status: models.StatusPending},
	}

	once := Deduplicate(in)
	twice := Deduplicate(once)
	require.Equal(t, once, twice)
	require.Equal(t, []string{"c", "b", "e"}, ids(once))
}

func TestDeduplicateEmpty(t *testing.T) {
	require.Empty(t, Deduplicate(nil))
}

func TestFilterPast(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	in := []models.Booking{
		booking("past", "c1", "2024-01-15T11:00:00Z", models.StatusBooked, "", ""),
		booking("now", "c2", "2024-01-15T12:00:00Z", models.StatusBooked, "", ""),
		booking("future", "c3", "2024-01-16T11:00:00Z", models.StatusBooked, "", ""),
		{BookingID: "nostart"},
	}

	require.Equal(t, []string{"past", "now", "nostart"}, ids(FilterPast(in, now)))
}

func TestExcludeCancelled(t *testing.T) {
	in := []models.Booking{
		{BookingID: "a", Status: models.StatusBooked},
		{BookingID: "b", Status: models.StatusCancelled},
		{BookingID: "c", Status: models.StatusLateCancelled},
		{BookingID: "d", Status: models.StatusCheckedIn},
	}

	require.Equal(t, []string{"a", "d"}, ids(ExcludeCancelled(in)))
}
