package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"NiftyPulse/internal/model"
	"NiftyPulse/internal/refresh"
)

// handleSnapshot returns the current snapshot. Before the first refresh the
// sentinel is served, with initialized=false so clients can show "not yet
// available".
func (s *Server) handleSnapshot(c *gin.Context) {
	snap := s.store.Read()
	c.JSON(http.StatusOK, gin.H{
		"initialized":  snap.Initialized(),
		"last_updated": lastUpdatedText(snap),
		"snapshot":     snap,
	})
}

// handleRefresh triggers one orchestrator invocation and reports its status.
// The refresh runs on a detached context: once triggered it runs to
// completion even if the requesting client disconnects mid-cycle.
func (s *Server) handleRefresh(c *gin.Context) {
	status, err := s.orch.Refresh(context.Background())
	if status == refresh.StatusColdStartFailure {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": string(status),
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(status)})
}

func (s *Server) handleIndex(c *gin.Context) {
	snap := s.store.Read()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"LastUpdated":        lastUpdatedText(snap),
		"CurrentPrice":       fmt.Sprintf("%.2f", snap.CurrentPrice),
		"PriceChange":        fmt.Sprintf("%.2f", snap.PriceChangePct),
		"DailyRSI":           fmt.Sprintf("%.2f", snap.Daily.RSI),
		"WeeklyRSI":          fmt.Sprintf("%.2f", snap.Weekly.RSI),
		"MonthlyRSI":         fmt.Sprintf("%.2f", snap.Monthly.RSI),
		"DailySignal":        snap.Daily.Signal,
		"WeeklySignal":       snap.Weekly.Signal,
		"MonthlySignal":      snap.Monthly.Signal,
		"DailySignalClass":   signalClass(string(snap.Daily.Signal)),
		"WeeklySignalClass":  signalClass(string(snap.Weekly.Signal)),
		"MonthlySignalClass": signalClass(string(snap.Monthly.Signal)),
		"OverallSignal":      snap.Overall.Advice,
		"OverallSignalClass": signalClass(string(snap.Overall.Advice)),
		"Rationale":          snap.Overall.Rationale,
	})
}

func lastUpdatedText(snap model.Snapshot) string {
	if !snap.Initialized() {
		return "Not updated yet"
	}
	return snap.LastUpdated.Format("2006-01-02 15:04:05")
}

// signalClass maps a label to its CSS class ("Strong Buy" -> "buy").
func signalClass(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "buy"):
		return "buy"
	case strings.Contains(l, "sell"):
		return "sell"
	default:
		return "neutral"
	}
}
