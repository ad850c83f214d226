// Package refresh decides, per call, whether a cached quote is still
// usable or the provider must be hit again. The decision is a pure
// function of the clock, the trading calendar and cache freshness; it
// performs no I/O, which keeps every branch unit-testable.
package refresh

import (
	"time"

	"github.com/bafang/portfolio-tracker/internal/market/calendar"
)

// Action is the refresh decision for one cache lookup.
type Action int

const (
	// UseCache serves the cached quote without contacting the provider.
	UseCache Action = iota
	// FetchOnce fetches a single snapshot outside live refresh cadence,
	// typically to populate a cold cache on a non-trading day.
	FetchOnce
	// FetchRealtime fetches a live in-session quote.
	FetchRealtime
	// FetchSettlement fetches post-close settlement data such as fund NAVs.
	FetchSettlement
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case FetchOnce:
		return "fetch-once"
	case FetchRealtime:
		return "fetch-realtime"
	case FetchSettlement:
		return "fetch-settlement"
	default:
		return "use-cache"
	}
}

// Fetch reports whether the action requires a provider call.
func (a Action) Fetch() bool {
	return a != UseCache
}

// Freshness windows. In-session quotes go stale quickly; settlement data
// (fund NAVs) is published once and tolerates a longer window.
const (
	RealtimeWindow   = 5 * time.Minute
	SettlementWindow = 30 * time.Minute
)

// Policy decides refresh actions against an injected trading calendar.
type Policy struct {
	calendar calendar.Calendar
}

// New creates a Policy using cal for trading-day decisions.
func New(cal calendar.Calendar) *Policy {
	return &Policy{calendar: cal}
}

// Decide returns the action for a lookup at instant now, given the last
// fetch time for the key. hasEntry is false on a cold cache, in which case
// lastFetched is ignored and no branch may answer UseCache: there is
// nothing to use.
//
// Precedence, evaluated top to bottom:
//  1. Non-trading day: use a same-day cache entry, otherwise fetch once.
//  2. Live session: use cache younger than RealtimeWindow, otherwise
//     fetch realtime.
//  3. Settlement window (close through 20:00): use cache younger than
//     SettlementWindow, otherwise fetch settlement.
//  4. Anything else (pre-market, midday break, after 20:00): use cache.
func (p *Policy) Decide(now, lastFetched time.Time, hasEntry bool) Action {
	if !p.calendar.IsTradingDay(now) {
		if hasEntry && sameDay(now, lastFetched) {
			return UseCache
		}
		return FetchOnce
	}

	switch session := calendar.SessionAt(now); {
	case session.Live():
		if hasEntry && now.Sub(lastFetched) < RealtimeWindow {
			return UseCache
		}
		return FetchRealtime

	case session == calendar.SessionPostClose:
		if hasEntry && now.Sub(lastFetched) < SettlementWindow {
			return UseCache
		}
		return FetchSettlement

	default:
		if hasEntry {
			return UseCache
		}
		return FetchOnce
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
