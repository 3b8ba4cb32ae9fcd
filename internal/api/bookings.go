package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/julianstephens/otfkit/internal/bookings"
	"github.com/julianstephens/otfkit/internal/logger"
	"github.com/julianstephens/otfkit/internal/models"
	"github.com/julianstephens/otfkit/internal/observability"
)

type bookingListResponse struct {
	Data []models.Booking `json:"data"`
}

type bookingResponse struct {
	Data models.Booking `json:"data"`
}

// FetchBookingsInRange lists the member's bookings for classes starting in
// [start, end]. With removeDuplicates the list is collapsed to one booking
// per class.
func (c *Client) FetchBookingsInRange(ctx context.Context, start, end time.Time, excludeCancelled, removeDuplicates bool) ([]models.Booking, error) {
	query := url.Values{}
	query.Set("starts_after", start.UTC().Format(time.RFC3339))
	query.Set("ends_before", end.UTC().Format(time.RFC3339))
	query.Set("include_canceled", strconv.FormatBool(!excludeCancelled))
	query.Set("expand", "false")

	var resp bookingListResponse
	err := c.getJSON(ctx, c.ioBaseURL, "/v1/bookings/me", query, &resp)
	observability.RecordFetch(observability.SourceBookings, err)
	if err != nil {
		return nil, err
	}

	result := resp.Data
	if excludeCancelled {
		result = bookings.ExcludeCancelled(result)
	}
	if removeDuplicates {
		result = bookings.Deduplicate(result)
	}
	logger.Debug("Fetched bookings", "count", len(resp.Data), "returned", len(result))
	return result, nil
}

// FetchBookingByID looks up a single booking.
func (c *Client) FetchBookingByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("booking id is required")
	}

	var resp bookingResponse
	if err := c.getJSON(ctx, c.ioBaseURL, "/v1/bookings/me/"+url.PathEscape(bookingID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
