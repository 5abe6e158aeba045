package strategy

import (
	"math"

	"NiftyPulse/internal/model"
)

// RSI thresholds for oversold (buy-leaning) and overbought (sell-leaning).
const (
	OversoldThreshold   = 30.0
	OverboughtThreshold = 70.0
)

// Classify maps a single RSI value to a trading signal. The thresholds are
// strict, so 30 and 70 themselves classify as Neutral, and a NaN reading is
// Neutral as well.
func Classify(rsi float64) model.Signal {
	if math.IsNaN(rsi) {
		return model.SignalNeutral
	}
	if rsi < OversoldThreshold {
		return model.SignalBuy
	}
	if rsi > OverboughtThreshold {
		return model.SignalSell
	}
	return model.SignalNeutral
}

// Reading bundles an RSI value with its classification for one timeframe.
func Reading(tf model.Timeframe, rsi float64) model.SignalReading {
	if math.IsNaN(rsi) {
		rsi = 50
	}
	return model.SignalReading{Timeframe: tf, RSI: rsi, Signal: Classify(rsi)}
}
