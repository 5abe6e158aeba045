package render

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"NiftyPulse/internal/calculator"
	"NiftyPulse/internal/model"
)

// FinancialPoint is one candlestick on the price chart.
type FinancialPoint struct {
	XAxis int64   `json:"x"`
	Open  float64 `json:"o"`
	High  float64 `json:"h"`
	Low   float64 `json:"l"`
	Close float64 `json:"c"`
}

// ChartPoint is one sample on an RSI line.
type ChartPoint struct {
	XAxis int64   `json:"x"`
	YAxis float64 `json:"y"`
}

// RSIChart is the RSI overlay payload for all three timeframes, plus the
// overbought/oversold guide levels.
type RSIChart struct {
	Daily      []ChartPoint `json:"daily"`
	Weekly     []ChartPoint `json:"weekly"`
	Monthly    []ChartPoint `json:"monthly"`
	Overbought float64      `json:"overbought"`
	Oversold   float64      `json:"oversold"`
}

// FileRenderer writes the price and RSI chart series as JSON files under the
// static directory, where the dashboard page picks them up.
type FileRenderer struct {
	Dir string
}

func NewFileRenderer(dir string) *FileRenderer {
	return &FileRenderer{Dir: dir}
}

func (r *FileRenderer) Render(in Input) error {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("create static dir: %w", err)
	}
	if err := r.writePriceChart(in.Daily); err != nil {
		return err
	}
	return r.writeRSIChart(in)
}

// writePriceChart materializes the last 90 daily candles with gaps resolved.
func (r *FileRenderer) writePriceChart(daily model.PriceSeries) error {
	bars := daily.Bars
	if len(bars) > 90 {
		bars = bars[len(bars)-90:]
	}
	filled := calculator.ForwardFill(closesOf(bars))
	points := make([]FinancialPoint, 0, len(bars))
	for i, b := range bars {
		c := filled[i]
		if math.IsNaN(c) {
			continue
		}
		points = append(points, FinancialPoint{
			XAxis: b.Time.Unix(),
			Open:  orValue(b.Open, c),
			High:  orValue(b.High, c),
			Low:   orValue(b.Low, c),
			Close: c,
		})
	}
	return r.writeJSON("price_chart.json", points)
}

func (r *FileRenderer) writeRSIChart(in Input) error {
	chart := RSIChart{
		Daily:      tailPoints(in.Daily.Bars, in.DailyRSI, 30),
		Weekly:     tailPoints(in.Weekly.Bars, in.WeeklyRSI, 10),
		Monthly:    tailPoints(in.Monthly.Bars, in.MonthlyRSI, 5),
		Overbought: 70,
		Oversold:   30,
	}
	return r.writeJSON("rsi_chart.json", chart)
}

func (r *FileRenderer) writeJSON(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	path := filepath.Join(r.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// tailPoints pairs the last count bars with their RSI values, skipping
// positions where the two series are not aligned.
func tailPoints(bars []model.Bar, rsi []float64, count int) []ChartPoint {
	n := len(bars)
	if len(rsi) < n {
		n = len(rsi)
	}
	start := n - count
	if start < 0 {
		start = 0
	}
	points := make([]ChartPoint, 0, n-start)
	for i := start; i < n; i++ {
		if math.IsNaN(rsi[i]) {
			continue
		}
		points = append(points, ChartPoint{XAxis: bars[i].Time.Unix(), YAxis: rsi[i]})
	}
	return points
}

func closesOf(bars []model.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func orValue(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return v
}
