package collector

import (
	"context"
	"time"

	"NiftyPulse/internal/model"
)

// Fetcher defines the interface for fetching market data. An empty series is
// treated by callers exactly like a failed fetch.
type Fetcher interface {
	FetchSeries(ctx context.Context, symbol string, tf model.Timeframe, start, end time.Time) (model.PriceSeries, error)
	Name() string
}
