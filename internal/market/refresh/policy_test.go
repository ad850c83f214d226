package refresh_test

import (
	"testing"
	"time"

	"github.com/bafang/portfolio-tracker/internal/market/calendar"
	"github.com/bafang/portfolio-tracker/internal/market/refresh"
)

// weekendPolicy builds a policy on the pure weekday calendar so tests need
// no remote source.
func weekendPolicy() *refresh.Policy {
	return refresh.New(calendar.NewFallback(nil))
}

func monday(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.Local)
}

func saturday(hour, minute int) time.Time {
	return time.Date(2025, 6, 7, hour, minute, 0, 0, time.Local)
}

func TestDecide_ColdStartNeverUsesCache(t *testing.T) {
	p := weekendPolicy()

	// Every market phase on trading and non-trading days. Whatever the
	// branch, a cold cache must produce a fetch action.
	instants := []time.Time{
		monday(8, 0),   // pre-market
		monday(10, 0),  // morning session
		monday(12, 0),  // midday break
		monday(14, 0),  // afternoon session
		monday(16, 0),  // settlement window
		monday(21, 0),  // after settlement
		saturday(10, 0),
		saturday(22, 0),
	}

	for _, now := range instants {
		action := p.Decide(now, time.Time{}, false)
		if !action.Fetch() {
			t.Errorf("Decide(%s, cold cache) = %s, want a fetch action",
				now.Format("Mon 15:04"), action)
		}
	}
}

func TestDecide_LiveSession(t *testing.T) {
	p := weekendPolicy()
	now := monday(10, 0)

	tests := []struct {
		name        string
		lastFetched time.Time
		want        refresh.Action
	}{
		{"fresh cache within window", monday(9, 57), refresh.UseCache},
		{"stale cache beyond window", monday(9, 0), refresh.FetchRealtime},
		{"exactly at window boundary", monday(9, 55), refresh.FetchRealtime},
		{"yesterday's cache", monday(10, 0).AddDate(0, 0, -1), refresh.FetchRealtime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Decide(now, tt.lastFetched, true); got != tt.want {
				t.Errorf("Decide(10:00 Mon, fetched %s) = %s, want %s",
					tt.lastFetched.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestDecide_AfternoonSession(t *testing.T) {
	p := weekendPolicy()
	now := monday(14, 30)

	if got := p.Decide(now, monday(14, 27), true); got != refresh.UseCache {
		t.Errorf("fresh afternoon cache: got %s, want use-cache", got)
	}
	if got := p.Decide(now, monday(13, 0), true); got != refresh.FetchRealtime {
		t.Errorf("stale afternoon cache: got %s, want fetch-realtime", got)
	}
}

func TestDecide_SettlementWindow(t *testing.T) {
	p := weekendPolicy()
	now := monday(16, 0)

	tests := []struct {
		name        string
		lastFetched time.Time
		want        refresh.Action
	}{
		{"fetched twenty minutes ago", monday(15, 40), refresh.UseCache},
		{"fetched during afternoon session", monday(14, 50), refresh.FetchSettlement},
		{"exactly at settlement boundary", monday(15, 30), refresh.FetchSettlement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Decide(now, tt.lastFetched, true); got != tt.want {
				t.Errorf("Decide(16:00 Mon, fetched %s) = %s, want %s",
					tt.lastFetched.Format("15:04"), got, tt.want)
			}
		})
	}

	// 19:59 is still inside the settlement window, 20:00 is not.
	if got := p.Decide(monday(19, 59), monday(19, 0), true); got != refresh.FetchSettlement {
		t.Errorf("19:59 stale cache: got %s, want fetch-settlement", got)
	}
	if got := p.Decide(monday(20, 0), monday(19, 0), true); got != refresh.UseCache {
		t.Errorf("20:00 cache: got %s, want use-cache", got)
	}
}

func TestDecide_OutsideMarketHours(t *testing.T) {
	p := weekendPolicy()

	// Before open, midday break and after settlement all serve the cache
	// regardless of age.
	old := monday(8, 0).AddDate(0, 0, -3)
	for _, now := range []time.Time{monday(8, 0), monday(12, 0), monday(21, 0)} {
		if got := p.Decide(now, old, true); got != refresh.UseCache {
			t.Errorf("Decide(%s, old cache) = %s, want use-cache", now.Format("15:04"), got)
		}
	}
}

func TestDecide_NonTradingDay(t *testing.T) {
	p := weekendPolicy()
	now := saturday(10, 0)

	t.Run("same-day entry is served", func(t *testing.T) {
		if got := p.Decide(now, saturday(8, 0), true); got != refresh.UseCache {
			t.Errorf("got %s, want use-cache", got)
		}
	})

	t.Run("entry from Friday forces one fetch", func(t *testing.T) {
		friday := saturday(10, 0).AddDate(0, 0, -1)
		if got := p.Decide(now, friday, true); got != refresh.FetchOnce {
			t.Errorf("got %s, want fetch-once", got)
		}
	})

	t.Run("cold cache forces one fetch", func(t *testing.T) {
		if got := p.Decide(now, time.Time{}, false); got != refresh.FetchOnce {
			t.Errorf("got %s, want fetch-once", got)
		}
	})
}

// TestDecide_HolidayCalendarOverride checks that an authoritative calendar
// declaring a weekday as a holiday routes the decision through the
// non-trading-day branch.
func TestDecide_HolidayCalendarOverride(t *testing.T) {
	p := refresh.New(holidayCalendar{})
	now := monday(10, 0) // weekday, but the calendar calls it a holiday

	if got := p.Decide(now, monday(8, 0), true); got != refresh.UseCache {
		t.Errorf("holiday with same-day entry: got %s, want use-cache", got)
	}
	yesterday := monday(10, 0).AddDate(0, 0, -1)
	if got := p.Decide(now, yesterday, true); got != refresh.FetchOnce {
		t.Errorf("holiday with stale entry: got %s, want fetch-once", got)
	}
}

type holidayCalendar struct{}

func (holidayCalendar) IsTradingDay(time.Time) bool { return false }
