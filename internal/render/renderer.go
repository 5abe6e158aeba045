// Package render produces the chart artifacts shown on the dashboard. The
// refresh flow treats rendering as best-effort: a failure here is logged and
// never aborts an update.
package render

import "NiftyPulse/internal/model"

// Input carries everything a renderer may draw: the three price series and
// their derived RSI series, aligned index-for-index.
type Input struct {
	Daily      model.PriceSeries
	Weekly     model.PriceSeries
	Monthly    model.PriceSeries
	DailyRSI   []float64
	WeeklyRSI  []float64
	MonthlyRSI []float64
}

// Renderer materializes presentation artifacts from a refresh result.
type Renderer interface {
	Render(in Input) error
}

// NoopRenderer is used when no static directory is configured.
type NoopRenderer struct{}

func NewNoopRenderer() *NoopRenderer { return &NoopRenderer{} }

func (n *NoopRenderer) Render(_ Input) error { return nil }
