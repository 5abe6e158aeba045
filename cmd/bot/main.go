package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"NiftyPulse/internal/collector"
	"NiftyPulse/internal/config"
	"NiftyPulse/internal/market"
	"NiftyPulse/internal/notifier"
	"NiftyPulse/internal/recorder"
	"NiftyPulse/internal/refresh"
	"NiftyPulse/internal/render"
	"NiftyPulse/internal/scheduler"
	"NiftyPulse/internal/snapshot"
	"NiftyPulse/internal/web"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] NiftyPulse starting...")

	// Load .env if present, then config
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s, symbol: %s", fetcher.Name(), cfg.DataSource.Symbol)

	// Init Telegram notifier (optional)
	var tn *notifier.TelegramNotifier
	var n refresh.Notifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	} else {
		log.Println("[WARN] telegram not configured, notifications disabled")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init renderer
	var rend render.Renderer
	if cfg.StaticDir != "" {
		rend = render.NewFileRenderer(cfg.StaticDir)
	} else {
		rend = render.NewNoopRenderer()
	}

	// Core: snapshot store + refresh orchestrator
	store := snapshot.NewStore()
	cal := market.NewNSECalendar()
	orch := refresh.NewOrchestrator(fetcher, store, n, rend, rec, cal, cfg.DataSource.Symbol)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, orch, store, cal.Location)
	if err := sched.RegisterAll(cfg.Schedule.MarketCron, cfg.Schedule.SummaryCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Start web server
	srv := web.NewServer(store, orch, cfg.StaticDir)
	go func() {
		if err := srv.Start(cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] web server: %v", err)
		}
	}()

	// Initial refresh shortly after start
	go func() {
		time.Sleep(10 * time.Second)
		log.Println("[INFO] running initial refresh")
		sched.RunNow()
	}()

	log.Println("[INFO] NiftyPulse is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] web server shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] NiftyPulse stopped")
}
