// Package refresh implements the fetch-compute-replace cycle and its
// freshness/fallback policy. Each invocation runs to completion and returns
// an explicit status instead of signalling through errors alone.
package refresh

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"NiftyPulse/internal/calculator"
	"NiftyPulse/internal/collector"
	"NiftyPulse/internal/market"
	"NiftyPulse/internal/model"
	"NiftyPulse/internal/notifier"
	"NiftyPulse/internal/recorder"
	"NiftyPulse/internal/render"
	"NiftyPulse/internal/snapshot"
	"NiftyPulse/internal/strategy"
)

// Status is the outcome of one refresh invocation.
type Status string

const (
	// StatusUpdated means fresh data was fetched and the snapshot replaced.
	StatusUpdated Status = "updated"
	// StatusFellBackToCache means new data was unusable but a previous
	// snapshot is still being served. This is a soft success.
	StatusFellBackToCache Status = "fell_back_to_cache"
	// StatusColdStartFailure means data was unusable and no snapshot has
	// ever been produced.
	StatusColdStartFailure Status = "cold_start_failure"
)

// Notifier is the outbound message channel. Failures are non-fatal.
type Notifier interface {
	Send(text string) error
}

// Orchestrator drives the refresh state machine. It is the sole writer of
// the snapshot store; invocations are serialized on an internal mutex, so a
// concurrent trigger waits for the in-flight refresh to finish.
type Orchestrator struct {
	fetcher  collector.Fetcher
	store    *snapshot.Store
	notifier Notifier
	renderer render.Renderer
	recorder recorder.Recorder
	calendar *market.Calendar
	symbol   string
	period   int
	now      func() time.Time

	mu         sync.Mutex
	retained   *render.Input // last good series, for re-rendering on fallback
	summaryDay string        // trading day of the last daily summary sent
}

// NewOrchestrator wires the orchestrator. notifier may be nil to disable
// outbound messages.
func NewOrchestrator(fetcher collector.Fetcher, store *snapshot.Store, n Notifier, r render.Renderer, rec recorder.Recorder, cal *market.Calendar, symbol string) *Orchestrator {
	return &Orchestrator{
		fetcher:  fetcher,
		store:    store,
		notifier: n,
		renderer: r,
		recorder: rec,
		calendar: cal,
		symbol:   symbol,
		period:   calculator.DefaultRSIPeriod,
		now:      time.Now,
	}
}

// Refresh runs one full fetch-compute-replace cycle and returns its status.
// err is non-nil only for StatusColdStartFailure; the fallback path is a
// soft success because readers still have a usable snapshot.
func (o *Orchestrator) Refresh(ctx context.Context) (status Status, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] refresh %s: panic recovered: %v", id, r)
			status, err = o.fallback(id, fmt.Errorf("panic during refresh: %v", r))
		}
	}()

	log.Printf("[INFO] refresh %s: fetching %s series", id, o.symbol)

	end := o.now()
	daily, err := o.fetchUsable(ctx, model.TimeframeDaily, end.AddDate(-1, 0, 0), end)
	if err != nil {
		return o.fallback(id, err)
	}
	weekly, err := o.fetchUsable(ctx, model.TimeframeWeekly, end.AddDate(-1, 0, 0), end)
	if err != nil {
		return o.fallback(id, err)
	}
	monthly, err := o.fetchUsable(ctx, model.TimeframeMonthly, end.AddDate(-2, 0, 0), end)
	if err != nil {
		return o.fallback(id, err)
	}

	dailyRSI, err := calculator.ComputeRSI(daily.Closes(), o.period)
	if err != nil {
		return o.fallback(id, fmt.Errorf("daily rsi: %w", err))
	}
	weeklyRSI, err := calculator.ComputeRSI(weekly.Closes(), o.period)
	if err != nil {
		return o.fallback(id, fmt.Errorf("weekly rsi: %w", err))
	}
	monthlyRSI, err := calculator.ComputeRSI(monthly.Closes(), o.period)
	if err != nil {
		return o.fallback(id, fmt.Errorf("monthly rsi: %w", err))
	}

	dailyValue := calculator.LatestRSI(dailyRSI)
	weeklyValue := calculator.LatestRSI(weeklyRSI)
	monthlyValue := calculator.LatestRSI(monthlyRSI)

	closes := daily.Closes()
	snap := model.Snapshot{
		LastUpdated:    o.now(),
		CurrentPrice:   calculator.LatestClose(closes),
		PriceChangePct: calculator.PriceChangePct(closes),
		Daily:          strategy.Reading(model.TimeframeDaily, dailyValue),
		Weekly:         strategy.Reading(model.TimeframeWeekly, weeklyValue),
		Monthly:        strategy.Reading(model.TimeframeMonthly, monthlyValue),
		Overall:        strategy.Aggregate(dailyValue, weeklyValue, monthlyValue),
	}

	o.store.Replace(snap)
	o.retained = &render.Input{
		Daily:      daily,
		Weekly:     weekly,
		Monthly:    monthly,
		DailyRSI:   dailyRSI,
		WeeklyRSI:  weeklyRSI,
		MonthlyRSI: monthlyRSI,
	}

	if renderErr := o.renderer.Render(*o.retained); renderErr != nil {
		log.Printf("[WARN] refresh %s: chart render failed: %v", id, renderErr)
	}

	o.recordRefresh(&recorder.RefreshEvent{
		RefreshID:  id,
		Status:     string(StatusUpdated),
		Price:      snap.CurrentPrice,
		DailyRSI:   dailyValue,
		WeeklyRSI:  weeklyValue,
		MonthlyRSI: monthlyValue,
		Advice:     string(snap.Overall.Advice),
	})

	o.notify(id, snap)

	log.Printf("[INFO] refresh %s: snapshot updated, price=%.2f advice=%s", id, snap.CurrentPrice, snap.Overall.Advice)
	return StatusUpdated, nil
}

// fetchUsable fetches one series and treats an empty result as a failure.
func (o *Orchestrator) fetchUsable(ctx context.Context, tf model.Timeframe, start, end time.Time) (model.PriceSeries, error) {
	series, err := o.fetcher.FetchSeries(ctx, o.symbol, tf, start, end)
	if err != nil {
		return series, fmt.Errorf("fetch %s series: %w", tf, err)
	}
	if series.Empty() {
		return series, fmt.Errorf("fetch %s series: empty result", tf)
	}
	return series, nil
}

// fallback resolves a failed refresh: a hard failure on cold start, a soft
// success (existing snapshot kept) once initialized.
func (o *Orchestrator) fallback(id string, cause error) (Status, error) {
	if !o.store.Read().Initialized() {
		log.Printf("[ERROR] refresh %s: no cached snapshot to fall back to: %v", id, cause)
		o.recordRefresh(&recorder.RefreshEvent{
			RefreshID: id,
			Status:    string(StatusColdStartFailure),
			Note:      cause.Error(),
		})
		return StatusColdStartFailure, cause
	}

	log.Printf("[WARN] refresh %s: keeping cached snapshot: %v", id, cause)
	if o.retained != nil {
		if renderErr := o.renderer.Render(*o.retained); renderErr != nil {
			log.Printf("[WARN] refresh %s: re-render from retained series failed: %v", id, renderErr)
		}
	}
	o.recordRefresh(&recorder.RefreshEvent{
		RefreshID: id,
		Status:    string(StatusFellBackToCache),
		Note:      cause.Error(),
	})
	return StatusFellBackToCache, nil
}

// notify emits at most one message per invocation: a live update during
// market hours, or the end-of-day summary once per trading day inside the
// post-close window. Send failures are logged, never retried.
func (o *Orchestrator) notify(id string, snap model.Snapshot) {
	if o.notifier == nil {
		return
	}
	now := o.now()

	switch {
	case o.calendar.IsOpen(now):
		err := o.notifier.Send(notifier.FormatLiveUpdate(snap))
		if err != nil {
			log.Printf("[ERROR] refresh %s: send live update: %v", id, err)
		}
		o.recordNotification(id, "live_update", err)

	case o.calendar.InSummaryWindow(now):
		day := o.calendar.TradingDay(now)
		if o.summaryDay == day {
			return // already sent for this trading day
		}
		o.summaryDay = day
		err := o.notifier.Send(notifier.FormatDailySummary(snap))
		if err != nil {
			log.Printf("[ERROR] refresh %s: send daily summary: %v", id, err)
		}
		o.recordNotification(id, "daily_summary", err)
	}
}

func (o *Orchestrator) recordRefresh(evt *recorder.RefreshEvent) {
	if err := o.recorder.RecordRefresh(evt); err != nil {
		log.Printf("[ERROR] record refresh event: %v", err)
	}
}

func (o *Orchestrator) recordNotification(id, kind string, sendErr error) {
	evt := &recorder.NotificationEvent{RefreshID: id, Kind: kind, Delivered: sendErr == nil}
	if sendErr != nil {
		evt.Note = sendErr.Error()
	}
	if err := o.recorder.RecordNotification(evt); err != nil {
		log.Printf("[ERROR] record notification event: %v", err)
	}
}
