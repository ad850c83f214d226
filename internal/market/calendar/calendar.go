// Package calendar answers the two market-session questions the refresh
// policy depends on: is a given date a trading day, and which session a
// given instant falls in. Trading-day answers may come from a remote
// authoritative source; session boundaries are fixed local wall-clock
// times and never require network access.
package calendar

import "time"

// Session is the market phase an instant falls in.
type Session int

const (
	SessionClosed Session = iota
	SessionPreMarket
	SessionMorning
	SessionMiddayBreak
	SessionAfternoon
	SessionPostClose
)

// String returns the session name for logging.
func (s Session) String() string {
	switch s {
	case SessionPreMarket:
		return "pre-market"
	case SessionMorning:
		return "morning"
	case SessionMiddayBreak:
		return "midday-break"
	case SessionAfternoon:
		return "afternoon"
	case SessionPostClose:
		return "post-close"
	default:
		return "closed"
	}
}

// Live reports whether quotes are expected to change during this session.
func (s Session) Live() bool {
	return s == SessionMorning || s == SessionAfternoon
}

// Session boundaries in minutes since midnight, local wall clock.
// Mainland sessions: 09:30-11:30 and 13:00-15:00. Fund NAVs settle in the
// post-close window, which runs until 20:00.
const (
	marketOpen     = 9*60 + 30
	morningClose   = 11*60 + 30
	afternoonOpen  = 13 * 60
	marketClose    = 15 * 60
	settlementEnd  = 20 * 60
	middayBreakLen = afternoonOpen - morningClose
)

// SessionAt classifies an instant by wall-clock time alone. Whether the
// date is a trading day is a separate question answered by a Calendar.
func SessionAt(t time.Time) Session {
	m := t.Hour()*60 + t.Minute()

	switch {
	case m < marketOpen:
		return SessionPreMarket
	case m < morningClose:
		return SessionMorning
	case m < afternoonOpen:
		return SessionMiddayBreak
	case m < marketClose:
		return SessionAfternoon
	case m < settlementEnd:
		return SessionPostClose
	default:
		return SessionClosed
	}
}

// Calendar decides whether a date is a market trading day. Implementations
// must never fail: an authoritative source that cannot answer degrades to
// a heuristic instead of surfacing an error.
type Calendar interface {
	IsTradingDay(date time.Time) bool
}

// Source is an authoritative trading-day lookup that may fail, typically
// remote-backed. Fallback wraps a Source into an infallible Calendar.
type Source interface {
	TradingDay(date time.Time) (bool, error)
}
