// Package advisor tracks the lifecycle of the in-memory insight.
package advisor

import (
	"github.com/theirongolddev/zenfin/internal/advice"
	"github.com/theirongolddev/zenfin/internal/model"
)

// DefaultMinTransactions is the count at which the first insight is fetched
// automatically.
const DefaultMinTransactions = 3

// State is the insight lifecycle stage.
type State int

const (
	NoInsight State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "no insight"
	}
}

// Advisor holds the current insight and whether a request is in flight.
// It is owned by a single event loop and is not safe for concurrent use.
type Advisor struct {
	minTx    int
	state    State
	insight  *model.Insight
	fallback bool
	lastErr  error
}

// New returns an advisor that auto-fetches once minTx transactions exist.
// A non-positive minTx uses DefaultMinTransactions.
func New(minTx int) *Advisor {
	if minTx <= 0 {
		minTx = DefaultMinTransactions
	}
	return &Advisor{minTx: minTx}
}

// MinTransactions returns the auto-fetch threshold.
func (a *Advisor) MinTransactions() int { return a.minTx }

// State returns the current lifecycle stage.
func (a *Advisor) State() State { return a.state }

// InFlight reports whether a request has begun and not completed.
func (a *Advisor) InFlight() bool { return a.state == Loading }

// Insight returns the latest insight, or nil before the first completes.
func (a *Advisor) Insight() *model.Insight { return a.insight }

// UsedFallback reports whether the latest insight is the fallback.
func (a *Advisor) UsedFallback() bool { return a.fallback }

// Err returns the cause of the latest fallback, if any.
func (a *Advisor) Err() error { return a.lastErr }

// ShouldAutoFetch reports whether a first insight should be requested for a
// list of count transactions. It never fires once an insight exists.
func (a *Advisor) ShouldAutoFetch(count int) bool {
	return a.state == NoInsight && a.insight == nil && count >= a.minTx
}

// Begin marks a request as started. It returns false when one is already
// in flight or there is nothing to analyze.
func (a *Advisor) Begin(count int) bool {
	if a.state == Loading || count == 0 {
		return false
	}
	a.state = Loading
	return true
}

// Complete replaces the insight with the result of a finished request.
func (a *Advisor) Complete(r advice.Result) {
	insight := r.Insight
	a.insight = &insight
	a.fallback = r.Fallback()
	a.lastErr = r.Err
	a.state = Ready
}
