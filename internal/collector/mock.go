package collector

import (
	"context"
	"time"

	"NiftyPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Series map[model.Timeframe][]model.Bar
	Err    error
	ErrOn  map[model.Timeframe]error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, symbol string, tf model.Timeframe, start, end time.Time) (model.PriceSeries, error) {
	m.Calls++
	series := model.PriceSeries{Symbol: symbol, Timeframe: tf, FetchedAt: time.Now()}
	if m.Err != nil {
		return series, m.Err
	}
	if err, ok := m.ErrOn[tf]; ok && err != nil {
		return series, err
	}
	if bars, ok := m.Series[tf]; ok {
		series.Bars = bars
		return series, nil
	}
	series.Bars = GenerateMockBars(m.Price, 60)
	return series, nil
}

// GenerateMockBars builds a gently drifting series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:  time.Now().AddDate(0, 0, -(count - i)),
			Open:  p * 0.999,
			High:  p * 1.005,
			Low:   p * 0.995,
			Close: p,
		}
	}
	return bars
}
