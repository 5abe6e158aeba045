package model

import (
	"math"
	"time"
)

// Timeframe is the bar aggregation granularity of a price series.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// Interval returns the data-provider interval string for the timeframe.
func (t Timeframe) Interval() string {
	switch t {
	case TimeframeWeekly:
		return "1wk"
	case TimeframeMonthly:
		return "1mo"
	default:
		return "1d"
	}
}

// Bar represents a single OHLC candlestick. Close is NaN when the provider
// reported no close for that bar; the fill policy resolves it before RSI math.
type Bar struct {
	Time  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// HasClose reports whether the bar carries a usable close price.
func (b Bar) HasClose() bool {
	return !math.IsNaN(b.Close)
}

// PriceSeries holds the fetched bars for one timeframe, oldest first.
type PriceSeries struct {
	Symbol    string
	Timeframe Timeframe
	Bars      []Bar
	FetchedAt time.Time
}

// Empty reports whether the series is unusable (treated like a fetch failure).
func (s PriceSeries) Empty() bool {
	return len(s.Bars) == 0
}

// Closes extracts the close column, preserving NaN gaps.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}
