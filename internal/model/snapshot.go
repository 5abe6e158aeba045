package model

import "time"

// Snapshot is the single current analysis result exposed to readers.
// It is replaced wholesale on every successful refresh, never mutated in place.
type Snapshot struct {
	LastUpdated    time.Time      `json:"last_updated"`
	CurrentPrice   float64        `json:"current_price"`
	PriceChangePct float64        `json:"price_change_pct"`
	Daily          SignalReading  `json:"daily"`
	Weekly         SignalReading  `json:"weekly"`
	Monthly        SignalReading  `json:"monthly"`
	Overall        Recommendation `json:"overall"`
}

// Initialized reports whether at least one refresh has produced this snapshot.
func (s Snapshot) Initialized() bool {
	return !s.LastUpdated.IsZero()
}

// SentinelSnapshot is the value served before the first successful refresh.
func SentinelSnapshot() Snapshot {
	neutral := func(tf Timeframe) SignalReading {
		return SignalReading{Timeframe: tf, RSI: 0, Signal: SignalNeutral}
	}
	return Snapshot{
		Daily:   neutral(TimeframeDaily),
		Weekly:  neutral(TimeframeWeekly),
		Monthly: neutral(TimeframeMonthly),
		Overall: Recommendation{
			Advice:    AdviceNeutral,
			Rationale: "Waiting for first analysis",
		},
	}
}
