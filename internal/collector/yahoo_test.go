package collector

import (
	"encoding/json"
	"math"
	"testing"
)

func decodeChart(t *testing.T, payload string) yahooChart {
	t.Helper()
	var chart yahooChart
	if err := json.Unmarshal([]byte(payload), &chart); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return chart
}

func TestBuildBars_RaggedQuoteArrays(t *testing.T) {
	// Three timestamps, but the open/high/low columns stop after the first
	// bar and close stops after the second. Seen in practice on partial bars.
	chart := decodeChart(t, `{
		"chart": {
			"result": [{
				"timestamp": [1704067200, 1704153600, 1704240000],
				"indicators": {
					"quote": [{
						"open":  [100.0],
						"high":  [105.0],
						"low":   [95.0],
						"close": [101.0, 102.5]
					}]
				}
			}]
		}
	}`)

	bars := buildBars(chart.Chart.Result[0])

	// The third row is null across every column and is dropped.
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Open != 100 || bars[0].Close != 101 {
		t.Errorf("unexpected first bar: %+v", bars[0])
	}
	if !math.IsNaN(bars[1].Open) || !math.IsNaN(bars[1].High) || !math.IsNaN(bars[1].Low) {
		t.Errorf("short columns must read as NaN, got %+v", bars[1])
	}
	if bars[1].Close != 102.5 {
		t.Errorf("expected close 102.5, got %f", bars[1].Close)
	}
}

func TestBuildBars_NullCloseSurvivesAsNaN(t *testing.T) {
	chart := decodeChart(t, `{
		"chart": {
			"result": [{
				"timestamp": [1704067200, 1704153600],
				"indicators": {
					"quote": [{
						"open":  [100.0, 101.0],
						"high":  [105.0, 106.0],
						"low":   [95.0, 96.0],
						"close": [101.0, null]
					}]
				}
			}]
		}
	}`)

	bars := buildBars(chart.Chart.Result[0])
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if !math.IsNaN(bars[1].Close) {
		t.Errorf("null close must stay NaN for the fill policy, got %f", bars[1].Close)
	}
}

func TestBuildBars_SortsChronologically(t *testing.T) {
	chart := decodeChart(t, `{
		"chart": {
			"result": [{
				"timestamp": [1704153600, 1704067200],
				"indicators": {
					"quote": [{
						"open":  [101.0, 100.0],
						"high":  [106.0, 105.0],
						"low":   [96.0, 95.0],
						"close": [102.0, 101.0]
					}]
				}
			}]
		}
	}`)

	bars := buildBars(chart.Chart.Result[0])
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if !bars[0].Time.Before(bars[1].Time) {
		t.Error("expected bars sorted oldest first")
	}
}
