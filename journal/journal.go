package journal

import (
	"errors"
	"time"

	"github.com/rustyeddy/tradedesk/market"
)

// Record is one journaled trade. Timestamp is the engine-supplied string
// carried on the trade, stored verbatim; LoggedAt is when this process
// accepted the trade.
type Record struct {
	TradeID   string
	Company   string
	Action    string
	Price     float64
	Amount    int
	Timestamp string
	LoggedAt  time.Time
}

// FromTrade builds a record for t, stamped now.
func FromTrade(t market.Trade, now time.Time) Record {
	return Record{
		TradeID:   t.ID,
		Company:   t.Company,
		Action:    t.Action,
		Price:     t.Price,
		Amount:    t.Amount,
		Timestamp: t.Timestamp,
		LoggedAt:  now,
	}
}

// Trade reconstructs the trade value a record was made from.
func (r Record) Trade() market.Trade {
	return market.Trade{
		ID:        r.TradeID,
		Company:   r.Company,
		Action:    r.Action,
		Price:     r.Price,
		Amount:    r.Amount,
		Timestamp: r.Timestamp,
	}
}

// Journal persists trade records. Journaling is best-effort from the
// session's point of view: callers log and swallow errors, a failed write
// never affects ledger state.
type Journal interface {
	RecordTrade(Record) error
	Close() error
}

// Multi fans a record out to several journals, e.g. the text log plus a
// queryable SQLite backend.
type Multi []Journal

func (m Multi) RecordTrade(r Record) error {
	var errs []error
	for _, j := range m {
		if err := j.RecordTrade(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, j := range m {
		if err := j.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
