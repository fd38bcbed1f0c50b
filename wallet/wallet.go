package wallet

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCurrency is returned when a balance is requested in a currency
// outside the set the wallet was constructed with.
var ErrUnknownCurrency = errors.New("unknown currency")

// Option configures one supported currency: its initial balance and its
// fixed exchange rate relative to the base currency.
type Option struct {
	Balance float64 `json:"balance" yaml:"balance"`
	Rate    float64 `json:"rate" yaml:"rate"`
}

// Wallet tracks a single authoritative balance in the base currency and
// displays it in any supported currency using fixed rates.
//
// This is deliberately not a multi-asset ledger. The strategy engine only
// ever reports the base balance; other currencies exist as display units,
// their values derived from the base balance and never stored.
type Wallet struct {
	base     string
	balances map[string]float64
	rates    map[string]float64
}

// New builds a wallet from the currency option table. The supported set is
// fixed here and never grows at runtime. The base currency must be present
// in the table and carry rate 1.0.
func New(base string, options map[string]Option) (*Wallet, error) {
	opt, ok := options[base]
	if !ok {
		return nil, fmt.Errorf("base currency %q not in currency table", base)
	}
	if opt.Rate != 1.0 {
		return nil, fmt.Errorf("base currency %q must have rate 1.0, got %g", base, opt.Rate)
	}

	w := &Wallet{
		base:     base,
		balances: make(map[string]float64, len(options)),
		rates:    make(map[string]float64, len(options)),
	}
	for code, o := range options {
		if o.Rate <= 0 {
			return nil, fmt.Errorf("currency %q: rate must be positive, got %g", code, o.Rate)
		}
		w.balances[code] = o.Balance
		w.rates[code] = o.Rate
	}
	return w, nil
}

// UpdateBalance replaces the base-currency balance with the raw value the
// engine reported. The engine is trusted: no sign or magnitude checks.
func (w *Wallet) UpdateBalance(raw float64) {
	w.balances[w.base] = raw
}

// Balance returns the tracked base balance converted into currency.
func (w *Wallet) Balance(currency string) (float64, error) {
	rate, ok := w.rates[currency]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}
	return w.balances[w.base] * rate, nil
}

// Base returns the base currency code.
func (w *Wallet) Base() string {
	return w.base
}

// Currencies returns the supported currency codes in sorted order.
func (w *Wallet) Currencies() []string {
	codes := make([]string, 0, len(w.rates))
	for code := range w.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
