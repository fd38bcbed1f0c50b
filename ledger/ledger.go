package ledger

import (
	"github.com/rustyeddy/tradedesk/market"
)

// DefaultCapacity bounds the recent-activity view when no capacity is
// configured.
const DefaultCapacity = 10

// Observer is notified after a trade has been accepted into the ledger.
// Observers run synchronously on the caller's goroutine; an observer that
// fails (e.g. a journal write) must handle that itself, the ledger never
// sees or cares about observer outcomes.
type Observer func(market.Trade)

// Ledger stores the session's trade history in two views:
//
//   - a capacity-bounded global sequence of the most recent trades across
//     all companies, oldest evicted first, and
//   - an unbounded per-company index holding every trade for that company
//     since the session started.
//
// Eviction prunes the global sequence only. The per-company index can
// therefore hold trades that have already aged out of the bounded view;
// that asymmetry is intentional: the bounded view answers "what happened
// recently", the index answers "what happened to this company".
type Ledger struct {
	capacity  int
	all       []market.Trade
	byCompany map[string][]market.Trade
	observers []Observer
}

// New creates an empty ledger. A capacity of zero or less falls back to
// DefaultCapacity.
func New(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ledger{
		capacity:  capacity,
		all:       make([]market.Trade, 0, capacity),
		byCompany: make(map[string][]market.Trade),
	}
}

// Observe registers fn to be called after every accepted trade.
func (l *Ledger) Observe(fn Observer) {
	l.observers = append(l.observers, fn)
}

// Add appends t to both views, evicting the oldest global entry first if
// the bounded view is at capacity. Add always succeeds.
func (l *Ledger) Add(t market.Trade) {
	if len(l.all) >= l.capacity {
		n := copy(l.all, l.all[1:])
		l.all = l.all[:n]
	}
	l.all = append(l.all, t)
	l.byCompany[t.Company] = append(l.byCompany[t.Company], t)

	for _, fn := range l.observers {
		fn(t)
	}
}

// UndoLast removes the most recently added trade from the global sequence
// and from the tail of that trade's company index. "Most recent" is global
// recency: the trade removed may belong to a different company than the
// one currently on screen. On an empty ledger UndoLast is a no-op and
// reports false.
//
// Undo reverses appends only. A trade already evicted from the bounded
// view by capacity pressure cannot be brought back.
func (l *Ledger) UndoLast() (market.Trade, bool) {
	if len(l.all) == 0 {
		return market.Trade{}, false
	}

	t := l.all[len(l.all)-1]
	l.all = l.all[:len(l.all)-1]

	if idx := l.byCompany[t.Company]; len(idx) > 0 {
		l.byCompany[t.Company] = idx[:len(idx)-1]
	}
	return t, true
}

// Trades returns every trade recorded for company this session, in append
// order. Unknown companies yield an empty slice, never an error. The
// returned slice is a copy.
func (l *Ledger) Trades(company string) []market.Trade {
	idx := l.byCompany[company]
	out := make([]market.Trade, len(idx))
	copy(out, idx)
	return out
}

// Recent returns the bounded global view in append order, oldest first.
// The returned slice is a copy.
func (l *Ledger) Recent() []market.Trade {
	out := make([]market.Trade, len(l.all))
	copy(out, l.all)
	return out
}

// Len reports the number of trades in the bounded global view.
func (l *Ledger) Len() int {
	return len(l.all)
}
