package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/julianstephens/otfkit/internal/constants"
	"github.com/julianstephens/otfkit/internal/models"
)

type summaryListResponse struct {
	Items []models.PerformanceSummary `json:"items"`
}

// FetchPerformanceSummary returns the metrics of one workout. Summaries never
// change once recorded, so they are cached.
func (c *Client) FetchPerformanceSummary(ctx context.Context, id string) (*models.PerformanceSummary, error) {
	var summary models.PerformanceSummary
	key := constants.CacheKeySummaryPrefix + id
	path := "/v1/performance-summaries/" + url.PathEscape(id)
	if err := c.cachedJSON(ctx, key, c.ttls.Summary, c.baseURL, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// FetchTelemetry returns the heart-rate series of one workout, downsampled to
// at most maxDataPoints samples.
func (c *Client) FetchTelemetry(ctx context.Context, id string, maxDataPoints int) (*models.Telemetry, error) {
	if maxDataPoints <= 0 {
		maxDataPoints = constants.DefaultMaxDataPoints
	}
	query := url.Values{}
	query.Set("classHistoryUuid", id)
	query.Set("maxDataPoints", strconv.Itoa(maxDataPoints))

	var telemetry models.Telemetry
	key := fmt.Sprintf("%s%s:%d", constants.CacheKeyTelemetry, id, maxDataPoints)
	if err := c.cachedJSON(ctx, key, c.ttls.Telemetry, c.telemetryBaseURL, "/v1/performance/summary", query, &telemetry); err != nil {
		return nil, err
	}
	return &telemetry, nil
}

// FetchClassUUIDMapping maps every performance-summary id to the rateable
// class uuid it belongs to. Summaries without a class map to nil.
func (c *Client) FetchClassUUIDMapping(ctx context.Context) (map[string]*string, error) {
	var resp summaryListResponse
	if err := c.getJSON(ctx, c.baseURL, "/v1/performance-summaries", nil, &resp); err != nil {
		return nil, err
	}

	mapping := make(map[string]*string, len(resp.Items))
	for _, s := range resp.Items {
		if s.ID == "" {
			continue
		}
		var classUUID *string
		if s.Class != nil {
			classUUID = s.Class.ClassUUID
		}
		mapping[s.ID] = classUUID
	}
	return mapping, nil
}
