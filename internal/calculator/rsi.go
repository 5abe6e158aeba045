package calculator

import (
	"errors"
	"math"
)

// DefaultRSIPeriod is the standard 14-sample RSI window.
const DefaultRSIPeriod = 14

// ForwardFill resolves NaN closes by carrying the last known value forward.
// A leading run of NaN values with no prior close stays NaN.
func ForwardFill(closes []float64) []float64 {
	filled := make([]float64, len(closes))
	last := math.NaN()
	for i, c := range closes {
		if !math.IsNaN(c) {
			last = c
		}
		filled[i] = last
	}
	return filled
}

// ComputeRSI computes the RSI series for the given closes over the period.
// The output has the same length and alignment as the input.
//
// Gaps are forward-filled first. The gain/loss averages use a trailing window
// that grows from 1 up to period, so a value is produced before a full window
// of history exists. Positions with no prior delta at all are reported as the
// neutral midpoint 50; a window whose average loss is exactly zero is reported
// as 100 (the all-gains convention, which also applies to a flat series).
func ComputeRSI(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}

	n := len(closes)
	rsi := make([]float64, n)
	if n == 0 {
		return rsi, nil
	}

	filled := ForwardFill(closes)

	// Successive differences split into gains and losses. Index 0 has no
	// delta; deltas touching an unresolved close count as no movement.
	gains := make([]float64, n)
	losses := make([]float64, n)
	firstDelta := -1
	for i := 1; i < n; i++ {
		if math.IsNaN(filled[i]) || math.IsNaN(filled[i-1]) {
			continue
		}
		if firstDelta == -1 {
			firstDelta = i
		}
		d := filled[i] - filled[i-1]
		if d > 0 {
			gains[i] = d
		} else {
			losses[i] = -d
		}
	}

	for i := 0; i < n; i++ {
		if firstDelta == -1 || i < firstDelta {
			rsi[i] = 50 // insufficient history, neutral midpoint
			continue
		}
		lo := i - period + 1
		if lo < 0 {
			lo = 0
		}
		var sumGain, sumLoss float64
		for j := lo; j <= i; j++ {
			sumGain += gains[j]
			sumLoss += losses[j]
		}
		count := float64(i - lo + 1)
		avgGain := sumGain / count
		avgLoss := sumLoss / count

		if avgLoss == 0 {
			rsi[i] = 100
			continue
		}
		rs := avgGain / avgLoss
		rsi[i] = 100 - 100/(1+rs)
	}

	return rsi, nil
}

// LatestRSI returns the most recent value of an RSI series, or neutral 50
// when the series is empty.
func LatestRSI(rsi []float64) float64 {
	if len(rsi) == 0 {
		return 50
	}
	v := rsi[len(rsi)-1]
	if math.IsNaN(v) {
		return 50
	}
	return v
}

// PriceChangePct returns the percent change between the last two resolved
// closes. Yields 0 when there is not enough history or the previous close
// is zero.
func PriceChangePct(closes []float64) float64 {
	filled := ForwardFill(closes)
	if len(filled) < 2 {
		return 0
	}
	latest := filled[len(filled)-1]
	prev := filled[len(filled)-2]
	if math.IsNaN(latest) || math.IsNaN(prev) || prev == 0 {
		return 0
	}
	return (latest - prev) / prev * 100
}

// LatestClose returns the most recent resolved close, or 0 when none exists.
func LatestClose(closes []float64) float64 {
	filled := ForwardFill(closes)
	for i := len(filled) - 1; i >= 0; i-- {
		if !math.IsNaN(filled[i]) {
			return filled[i]
		}
	}
	return 0
}
