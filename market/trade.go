package market

import "fmt"

// Common action labels reported by the strategy engine. The label set is
// open: the engine may introduce new labels and they are stored verbatim,
// so these constants exist only for callers that want to compare.
const (
	Buy  = "BUY"
	Sell = "SELL"
)

// Trade is a single execution reported by the strategy engine. A Trade is
// a value and is never mutated after construction.
//
// Amount is normally positive; zero or negative amounts appear only when
// the engine reports a correction. Timestamp is engine-supplied and opaque
// to this process, it is stored and displayed but never parsed.
type Trade struct {
	ID        string
	Company   string
	Action    string
	Price     float64
	Amount    int
	Timestamp string
}

// String renders the trade in the log-line format used by the trade log.
func (t Trade) String() string {
	return fmt.Sprintf("[Trade] %s | %s | $%g | %d units | %s",
		t.Company, t.Action, t.Price, t.Amount, t.Timestamp)
}
