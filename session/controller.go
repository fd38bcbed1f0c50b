// Package session owns the live trading-session state: the operator's
// current selection, the wallet, and the trade ledger. Every mutation —
// whether it started as an operator event or as an inbound execution from
// the strategy engine — is applied on a single dispatch goroutine, so the
// wallet and ledger never see concurrent writes and each event is applied
// in full before the next one is looked at.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradedesk/engine"
	"github.com/rustyeddy/tradedesk/journal"
	"github.com/rustyeddy/tradedesk/ledger"
	"github.com/rustyeddy/tradedesk/market"
	"github.com/rustyeddy/tradedesk/pkg/id"
	"github.com/rustyeddy/tradedesk/wallet"
)

// NoCompany is the selection sentinel before the operator picks a company.
const NoCompany = "none"

// Selection is the operator's current company and display currency.
type Selection struct {
	Company  string
	Currency string
}

// Refresh tells the presentation layer which views went stale.
type Refresh struct {
	Wallet bool
	Trades bool
}

// Sender is the outbound half of the engine connection. Sends are
// fire-and-forget; *engine.Client satisfies this.
type Sender interface {
	SendSelection(kind, value string)
}

type event struct {
	kind  eventKind
	value string
	exec  engine.Execution
}

type eventKind int

const (
	evCompany eventKind = iota
	evStrategy
	evCurrency
	evUndo
	evExecution
)

// Options wires a controller together. Wallet and Ledger are required;
// Sender and Journal may be nil (no engine attached yet, no journaling).
type Options struct {
	Wallet  *wallet.Wallet
	Ledger  *ledger.Ledger
	Sender  Sender
	Journal journal.Journal
	Log     *logrus.Logger
}

// Controller mediates between operator events, the strategy engine, and
// the session state. Event entry points enqueue onto the dispatcher; the
// accessors are safe from any goroutine.
type Controller struct {
	log    *logrus.Logger
	wallet *wallet.Wallet
	ledger *ledger.Ledger

	inbox   chan event
	refresh chan Refresh

	// mu makes session state readable from other goroutines (accessors,
	// AttachSender). All mutation happens on the dispatch goroutine.
	mu     sync.RWMutex
	sel    Selection
	sender Sender
}

// New builds a controller. If a journal is given it is attached as a
// ledger observer: journaling is best-effort and a failed write never
// affects the ledger.
func New(opts Options) *Controller {
	log := opts.Log
	if log == nil {
		log = logrus.New()
	}

	c := &Controller{
		log:     log,
		wallet:  opts.Wallet,
		ledger:  opts.Ledger,
		inbox:   make(chan event, 64),
		refresh: make(chan Refresh, 16),
		sel: Selection{
			Company:  NoCompany,
			Currency: opts.Wallet.Base(),
		},
		sender: opts.Sender,
	}

	if opts.Journal != nil {
		jr := opts.Journal
		c.ledger.Observe(func(t market.Trade) {
			if err := jr.RecordTrade(journal.FromTrade(t, time.Now().UTC())); err != nil {
				log.WithError(err).WithField("trade", t.ID).Warn("journal write failed")
			}
		})
	}

	return c
}

// Run is the dispatch loop. It must be the only goroutine that mutates
// session state; start it once and stop it by cancelling ctx.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.inbox:
			c.apply(ev)
		}
	}
}

func (c *Controller) apply(ev event) {
	switch ev.kind {
	case evCompany:
		c.applyCompany(ev.value)
	case evStrategy:
		c.applyStrategy(ev.value)
	case evCurrency:
		c.applyCurrency(ev.value)
	case evUndo:
		c.applyUndo()
	case evExecution:
		c.applyExecution(ev.exec)
	}
}

// SelectCompany records the operator's company choice, tells the engine,
// and refreshes the trade view.
func (c *Controller) SelectCompany(name string) { c.post(event{kind: evCompany, value: name}) }

// SelectStrategy forwards the operator's strategy choice to the engine.
// No local state changes.
func (c *Controller) SelectStrategy(name string) { c.post(event{kind: evStrategy, value: name}) }

// SelectCurrency switches the wallet display currency and refreshes the
// wallet view.
func (c *Controller) SelectCurrency(code string) { c.post(event{kind: evCurrency, value: code}) }

// Undo removes the most recently added trade (global recency) and
// refreshes the trade view.
func (c *Controller) Undo() { c.post(event{kind: evUndo}) }

// Deliver hands an inbound execution to the dispatcher. Wired as the
// engine client's Listen callback.
func (c *Controller) Deliver(ex engine.Execution) { c.post(event{kind: evExecution, exec: ex}) }

func (c *Controller) post(ev event) {
	c.inbox <- ev
}

func (c *Controller) applyCompany(name string) {
	c.mu.Lock()
	c.sel.Company = name
	c.mu.Unlock()

	c.send(engine.SelectCompany, name)
	c.notify(Refresh{Trades: true})
}

func (c *Controller) applyStrategy(name string) {
	c.send(engine.SelectStrategy, name)
}

func (c *Controller) applyCurrency(code string) {
	c.mu.Lock()
	c.sel.Currency = code
	c.mu.Unlock()

	c.notify(Refresh{Wallet: true})
}

func (c *Controller) applyUndo() {
	c.mu.Lock()
	t, ok := c.ledger.UndoLast()
	c.mu.Unlock()

	if ok {
		c.log.WithField("trade", t.String()).Info("trade undone")
	}
	c.notify(Refresh{Trades: true})
}

// applyExecution is atomic with respect to other events: balance, ledger,
// and journal observer all land before the dispatcher picks up the next
// event. The trade is attributed to the company selected right now; the
// engine does not echo one back.
func (c *Controller) applyExecution(ex engine.Execution) {
	c.mu.Lock()
	trade := market.Trade{
		ID:        id.New(),
		Company:   c.sel.Company,
		Action:    ex.Action,
		Price:     ex.Price,
		Amount:    ex.Amount,
		Timestamp: ex.Timestamp,
	}

	c.wallet.UpdateBalance(ex.Balance)
	c.ledger.Add(trade)
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{
		"company": trade.Company,
		"action":  trade.Action,
		"price":   trade.Price,
		"amount":  trade.Amount,
	}).Info("execution applied")

	c.notify(Refresh{Wallet: true, Trades: true})
}

func (c *Controller) send(kind, value string) {
	c.mu.RLock()
	s := c.sender
	c.mu.RUnlock()

	if s == nil {
		c.log.WithFields(logrus.Fields{"type": kind, "value": value}).
			Debug("no engine attached, selection dropped")
		return
	}
	s.SendSelection(kind, value)
}

// notify never blocks: a slow or absent presentation layer cannot stall
// the dispatcher. Refreshes are idempotent so dropping one under
// backpressure only delays a repaint until the next signal.
func (c *Controller) notify(r Refresh) {
	select {
	case c.refresh <- r:
	default:
	}
}

// AttachSender swaps the outbound engine connection. Pass nil when the
// connection drops; sends become no-ops until a new one is attached.
func (c *Controller) AttachSender(s Sender) {
	c.mu.Lock()
	c.sender = s
	c.mu.Unlock()
}

// RefreshSignals is the stream of staleness signals for the presentation
// layer.
func (c *Controller) RefreshSignals() <-chan Refresh {
	return c.refresh
}

// Current returns the operator's selection.
func (c *Controller) Current() Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sel
}

// Balance returns the wallet balance in the currently selected currency.
func (c *Controller) Balance() (float64, string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, err := c.wallet.Balance(c.sel.Currency)
	return value, c.sel.Currency, err
}

// Trades returns the full trade history for the currently selected
// company.
func (c *Controller) Trades() []market.Trade {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.ledger.Trades(c.sel.Company)
}

// Recent returns the bounded recent-activity view across all companies.
func (c *Controller) Recent() []market.Trade {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.ledger.Recent()
}
