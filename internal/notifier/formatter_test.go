package notifier

import (
	"strings"
	"testing"
	"time"

	"NiftyPulse/internal/model"
)

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		LastUpdated:    time.Date(2024, 1, 8, 11, 0, 0, 0, time.UTC),
		CurrentPrice:   21725.7,
		PriceChangePct: 0.42,
		Daily:          model.SignalReading{Timeframe: model.TimeframeDaily, RSI: 28.5, Signal: model.SignalBuy},
		Weekly:         model.SignalReading{Timeframe: model.TimeframeWeekly, RSI: 55.1, Signal: model.SignalNeutral},
		Monthly:        model.SignalReading{Timeframe: model.TimeframeMonthly, RSI: 61.0, Signal: model.SignalNeutral},
		Overall: model.Recommendation{
			Advice:    model.AdviceBuy,
			Score:     0.5,
			Rationale: "RSI suggests bullish momentum building. Daily RSI indicates oversold conditions.",
		},
	}
}

func TestFormatLiveUpdate(t *testing.T) {
	msg := FormatLiveUpdate(sampleSnapshot())

	for _, want := range []string{
		"*Nifty50 Update: 2024-01-08 11:00:00*",
		"*Current Price:* 21725.70 (0.42%)",
		"• Daily: 28.50 - Buy",
		"• Weekly: 55.10 - Neutral",
		"• Monthly: 61.00 - Neutral",
		"*Recommendation: Buy*",
		"oversold conditions",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("live update missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatDailySummary(t *testing.T) {
	msg := FormatDailySummary(sampleSnapshot())

	for _, want := range []string{
		"*Nifty50 Daily Summary: 08 Jan 2024*",
		"*Closing Price:* 21725.70 (0.42%)",
		"• Daily RSI: 28.50 - Buy",
		"*Overall Recommendation: Buy*",
		"Next update will be available after market open tomorrow.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("daily summary missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatStatus_Sentinel(t *testing.T) {
	msg := FormatStatus(model.SentinelSnapshot())
	if !strings.Contains(msg, "No analysis available yet") {
		t.Errorf("expected not-yet-available reply, got %q", msg)
	}
}
