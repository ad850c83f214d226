package calendar

import "time"

// Weekend is the pure fallback calendar: every weekday is a trading day.
// It misses exchange holidays but needs no network access, which makes it
// the floor every other calendar degrades to.
type Weekend struct{}

// IsTradingDay reports true for Monday through Friday.
func (Weekend) IsTradingDay(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
