package orderbookv1

import "fmt"

// MarketStatus represents the trading session state of the instrument.
type MarketStatus string

const (
	// MarketStatusPreOpen accepts orders without matching them.
	MarketStatusPreOpen MarketStatus = "pre_open"
	// MarketStatusOpen matches continuously.
	MarketStatusOpen MarketStatus = "open"
	// MarketStatusClosed rejects every book command.
	MarketStatusClosed MarketStatus = "closed"
)

var transitions = map[MarketStatus]MarketStatus{
	MarketStatusClosed:  MarketStatusPreOpen,
	MarketStatusPreOpen: MarketStatusOpen,
	MarketStatusOpen:    MarketStatusClosed,
}

// CanTransitionTo reports whether next directly follows s in the session cycle.
func (s MarketStatus) CanTransitionTo(next MarketStatus) bool {
	want, ok := transitions[s]
	return ok && want == next
}

// TransitionError is raised (as a panic value) when a caller requests a status
// change the session cycle does not allow. It is a defect in the caller, not a
// business rejection.
type TransitionError struct {
	From MarketStatus
	To   MarketStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid market status transition from %q to %q", e.From, e.To)
}
