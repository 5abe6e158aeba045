// Package market implements the NSE trading-calendar rule used to gate
// notifications. Data refreshes themselves may run at any time.
package market

import "time"

// Calendar describes one exchange's regular session in its local timezone.
type Calendar struct {
	Location   *time.Location
	OpenHour   int
	OpenMin    int
	CloseHour  int
	CloseMin   int
	SummaryMin int // minutes after close during which the daily summary fires
}

// NewNSECalendar returns the NSE regular session: Mon-Fri 09:15-15:30 IST,
// with a 15-minute post-close summary window.
func NewNSECalendar() *Calendar {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// IST has no DST, a fixed zone is equivalent.
		loc = time.FixedZone("IST", 5*3600+30*60)
	}
	return &Calendar{
		Location:   loc,
		OpenHour:   9,
		OpenMin:    15,
		CloseHour:  15,
		CloseMin:   30,
		SummaryMin: 15,
	}
}

// IsOpen reports whether the market is in its regular session at t.
// Both the open and close minutes are inclusive.
func (c *Calendar) IsOpen(t time.Time) bool {
	local := t.In(c.Location)
	wd := local.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	minutes := local.Hour()*60 + local.Minute()
	open := c.OpenHour*60 + c.OpenMin
	close := c.CloseHour*60 + c.CloseMin
	return minutes >= open && minutes <= close
}

// InSummaryWindow reports whether t falls in the short post-close range in
// which the end-of-day summary may be sent.
func (c *Calendar) InSummaryWindow(t time.Time) bool {
	local := t.In(c.Location)
	wd := local.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	minutes := local.Hour()*60 + local.Minute()
	close := c.CloseHour*60 + c.CloseMin
	return minutes >= close && minutes < close+c.SummaryMin
}

// TradingDay returns the local calendar date of t, used to deduplicate the
// once-per-day summary.
func (c *Calendar) TradingDay(t time.Time) string {
	return t.In(c.Location).Format("2006-01-02")
}
