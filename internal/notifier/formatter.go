package notifier

import (
	"fmt"
	"strings"

	"NiftyPulse/internal/model"
)

// FormatLiveUpdate formats the intraday refresh message sent while the
// market is open.
func FormatLiveUpdate(snap model.Snapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("*Nifty50 Update: %s*\n\n", snap.LastUpdated.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("*Current Price:* %.2f (%.2f%%)\n\n", snap.CurrentPrice, snap.PriceChangePct))
	b.WriteString("*RSI Analysis:*\n")
	b.WriteString(fmt.Sprintf("• Daily: %.2f - %s\n", snap.Daily.RSI, snap.Daily.Signal))
	b.WriteString(fmt.Sprintf("• Weekly: %.2f - %s\n", snap.Weekly.RSI, snap.Weekly.Signal))
	b.WriteString(fmt.Sprintf("• Monthly: %.2f - %s\n\n", snap.Monthly.RSI, snap.Monthly.Signal))
	b.WriteString(fmt.Sprintf("*Recommendation: %s*\n", snap.Overall.Advice))
	b.WriteString(snap.Overall.Rationale)

	return b.String()
}

// FormatDailySummary formats the end-of-day report sent once per trading day
// shortly after close.
func FormatDailySummary(snap model.Snapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("*Nifty50 Daily Summary: %s*\n\n", snap.LastUpdated.Format("02 Jan 2006")))
	b.WriteString(fmt.Sprintf("*Closing Price:* %.2f (%.2f%%)\n\n", snap.CurrentPrice, snap.PriceChangePct))
	b.WriteString("*RSI Analysis:*\n")
	b.WriteString(fmt.Sprintf("• Daily RSI: %.2f - %s\n", snap.Daily.RSI, snap.Daily.Signal))
	b.WriteString(fmt.Sprintf("• Weekly RSI: %.2f - %s\n", snap.Weekly.RSI, snap.Weekly.Signal))
	b.WriteString(fmt.Sprintf("• Monthly RSI: %.2f - %s\n\n", snap.Monthly.RSI, snap.Monthly.Signal))
	b.WriteString(fmt.Sprintf("*Overall Recommendation: %s*\n", snap.Overall.Advice))
	b.WriteString(snap.Overall.Rationale)
	b.WriteString("\n\nNext update will be available after market open tomorrow.")

	return b.String()
}

// FormatStatus formats the /status reply for the command handler.
func FormatStatus(snap model.Snapshot) string {
	if !snap.Initialized() {
		return "No analysis available yet. Use /refresh to trigger one."
	}
	return FormatLiveUpdate(snap)
}
