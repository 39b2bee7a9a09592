package orderbook

import (
	"sort"

	"github.com/shopspring/decimal"
)

// handle is the stable arena key of an order. Book structures never hold
// order pointers.
type handle uint64

// entry is a handle positioned by arrival sequence inside a limit.
type entry struct {
	sequence int64
	handle   handle
}

// limit is a price level: orders at one price in arrival-sequence order.
type limit struct {
	price   decimal.Decimal
	entries []entry
}

func newLimit(price decimal.Decimal) *limit {
	return &limit{price: price}
}

func (l *limit) add(e entry) {
	i := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].sequence > e.sequence
	})
	l.entries = append(l.entries, entry{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = e
}

func (l *limit) remove(e entry) bool {
	i := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].sequence >= e.sequence
	})
	if i == len(l.entries) || l.entries[i].handle != e.handle {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return true
}

func (l *limit) isEmpty() bool {
	return len(l.entries) == 0
}

// limits is one side of the book, best price first.
type limits struct {
	levels []*limit
	// better reports whether a is a better price than b for this side.
	better func(a, b decimal.Decimal) bool
}

func newBidLimits() *limits {
	return &limits{better: func(a, b decimal.Decimal) bool { return a.GreaterThan(b) }}
}

func newAskLimits() *limits {
	return &limits{better: func(a, b decimal.Decimal) bool { return a.LessThan(b) }}
}

// search returns the index of price, or where it would be inserted.
func (ls *limits) search(price decimal.Decimal) (int, bool) {
	i := sort.Search(len(ls.levels), func(i int) bool {
		return !ls.better(ls.levels[i].price, price)
	})
	return i, i < len(ls.levels) && ls.levels[i].price.Equal(price)
}

func (ls *limits) add(price decimal.Decimal, e entry) {
	i, found := ls.search(price)
	if !found {
		ls.levels = append(ls.levels, nil)
		copy(ls.levels[i+1:], ls.levels[i:])
		ls.levels[i] = newLimit(price)
	}
	ls.levels[i].add(e)
}

func (ls *limits) remove(price decimal.Decimal, e entry) bool {
	i, found := ls.search(price)
	if !found {
		return false
	}
	level := ls.levels[i]
	if !level.remove(e) {
		return false
	}
	if level.isEmpty() {
		ls.levels = append(ls.levels[:i], ls.levels[i+1:]...)
	}
	return true
}

// best returns the first order of the best level.
func (ls *limits) best() (handle, bool) {
	if len(ls.levels) == 0 {
		return 0, false
	}
	return ls.levels[0].entries[0].handle, true
}

// bestPrice returns the best price of the side.
func (ls *limits) bestPrice() (decimal.Decimal, bool) {
	if len(ls.levels) == 0 {
		return decimal.Decimal{}, false
	}
	return ls.levels[0].price, true
}

// worstPrice returns the last price of the side.
func (ls *limits) worstPrice() (decimal.Decimal, bool) {
	if len(ls.levels) == 0 {
		return decimal.Decimal{}, false
	}
	return ls.levels[len(ls.levels)-1].price, true
}

func (ls *limits) isEmpty() bool {
	return len(ls.levels) == 0
}

// handles returns every order of the side in priority order.
func (ls *limits) handles() []handle {
	var out []handle
	for _, level := range ls.levels {
		for _, e := range level.entries {
			out = append(out, e.handle)
		}
	}
	return out
}
