package models

// BookingStatus is the lifecycle state reported by the vendor for a booking.
type BookingStatus string

const (
	StatusBooked                 BookingStatus = "Booked"
	StatusConfirmed              BookingStatus = "Confirmed"
	StatusWaitlisted             BookingStatus = "Waitlisted"
	StatusPending                BookingStatus = "Pending"
	StatusRequested              BookingStatus = "Requested"
	StatusCheckedIn              BookingStatus = "Checked In"
	StatusCheckinPending         BookingStatus = "Checkin Pending"
	StatusCheckinRequested       BookingStatus = "Checkin Requested"
	StatusCheckinCancelled       BookingStatus = "Checkin Cancelled"
	StatusLateCancelled          BookingStatus = "Late Cancelled"
	StatusCancelled              BookingStatus = "Cancelled"
	StatusCancelCheckinPending   BookingStatus = "Cancel Checkin Pending"
	StatusCancelCheckinRequested BookingStatus = "Cancel Checkin Requested"
)

// IsCancelled reports whether the status represents a cancelled reservation.
func (s BookingStatus) IsCancelled() bool {
	return s == StatusCancelled || s == StatusLateCancelled
}
