package recorder

// RefreshEvent is the audit record of one refresh invocation. Only the
// outcome is logged; the snapshot itself lives in memory only.
type RefreshEvent struct {
	RefreshID  string
	Status     string // "updated", "fell_back_to_cache", "cold_start_failure"
	Price      float64
	DailyRSI   float64
	WeeklyRSI  float64
	MonthlyRSI float64
	Advice     string
	Note       string
}

// NotificationEvent records an attempted Telegram send.
type NotificationEvent struct {
	RefreshID string
	Kind      string // "live_update" or "daily_summary"
	Delivered bool
	Note      string
}

// Recorder persists operational events for later inspection.
type Recorder interface {
	RecordRefresh(evt *RefreshEvent) error
	RecordNotification(evt *NotificationEvent) error
	Close() error
}
