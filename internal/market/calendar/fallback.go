package calendar

import (
	"log"
	"time"
)

// Fallback composes an authoritative Source with the Weekend heuristic.
// Source errors are logged and absorbed; the answer then comes from the
// weekday rule. Selection between remote and fallback happens here, by
// injection, so tests can exercise the fallback path without any network.
type Fallback struct {
	source  Source
	weekend Weekend
}

// NewFallback wraps source. A nil source yields a calendar that always
// uses the weekday rule.
func NewFallback(source Source) *Fallback {
	return &Fallback{source: source}
}

// IsTradingDay consults the source first and degrades to the weekday rule
// when the source is absent or failing. It never returns an error.
func (f *Fallback) IsTradingDay(date time.Time) bool {
	if f.source != nil {
		trading, err := f.source.TradingDay(date)
		if err == nil {
			return trading
		}
		log.Printf("trading-calendar source failed for %s, falling back to weekday rule: %v",
			date.Format("2006-01-02"), err)
	}
	return f.weekend.IsTradingDay(date)
}
