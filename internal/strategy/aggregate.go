package strategy

import (
	"math"
	"strings"

	"NiftyPulse/internal/model"
)

// Timeframe weights: daily moves the verdict most, monthly least.
const (
	dailyWeight   = 0.5
	weeklyWeight  = 0.3
	monthlyWeight = 0.2
)

// score maps an RSI value to {-1, 0, +1}: overbought leans sell, oversold
// leans buy.
func score(rsi float64) int {
	if rsi > OverboughtThreshold {
		return -1
	}
	if rsi < OversoldThreshold {
		return 1
	}
	return 0
}

func scoreClause(tf model.Timeframe, s int) string {
	var name string
	switch tf {
	case model.TimeframeDaily:
		name = "Daily"
	case model.TimeframeWeekly:
		name = "Weekly"
	case model.TimeframeMonthly:
		name = "Monthly"
	}
	if s > 0 {
		return name + " RSI indicates oversold conditions"
	}
	return name + " RSI indicates overbought conditions"
}

// Aggregate combines the latest daily, weekly, and monthly RSI values into
// one weighted recommendation with a human-readable rationale. It is a pure
// function: identical inputs always yield the identical label, score, and
// rationale text. NaN inputs are treated as neutral 50.
func Aggregate(dailyRSI, weeklyRSI, monthlyRSI float64) model.Recommendation {
	if math.IsNaN(dailyRSI) {
		dailyRSI = 50
	}
	if math.IsNaN(weeklyRSI) {
		weeklyRSI = 50
	}
	if math.IsNaN(monthlyRSI) {
		monthlyRSI = 50
	}

	ds := score(dailyRSI)
	ws := score(weeklyRSI)
	ms := score(monthlyRSI)
	total := float64(ds)*dailyWeight + float64(ws)*weeklyWeight + float64(ms)*monthlyWeight

	var advice model.Advice
	var reason string
	switch {
	case total > 0.3:
		advice = model.AdviceStrongBuy
		reason = "Most timeframes show oversold conditions."
	case total > 0:
		advice = model.AdviceBuy
		reason = "RSI suggests bullish momentum building."
	case total < -0.3:
		advice = model.AdviceStrongSell
		reason = "Most timeframes show overbought conditions."
	case total < 0:
		advice = model.AdviceSell
		reason = "RSI suggests bearish momentum building."
	default:
		advice = model.AdviceNeutral
		reason = "Conflicting signals across timeframes. Consider waiting."
	}

	// One clause per contributing timeframe, fixed daily/weekly/monthly order.
	var details []string
	if ds != 0 {
		details = append(details, scoreClause(model.TimeframeDaily, ds))
	}
	if ws != 0 {
		details = append(details, scoreClause(model.TimeframeWeekly, ws))
	}
	if ms != 0 {
		details = append(details, scoreClause(model.TimeframeMonthly, ms))
	}
	if len(details) > 0 {
		reason += " " + strings.Join(details, ", ") + "."
	}

	return model.Recommendation{Advice: advice, Score: total, Rationale: reason}
}
