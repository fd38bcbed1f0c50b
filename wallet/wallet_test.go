package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testOptions() map[string]Option {
	return map[string]Option{
		"USD": {Balance: 10000.15, Rate: 1.0},
		"EUR": {Balance: 8000.00, Rate: 1.1},
		"BTC": {Balance: 0.5, Rate: 45000.0},
	}
}

func TestNewRejectsMissingBase(t *testing.T) {
	t.Parallel()

	_, err := New("GBP", testOptions())
	assert.Error(t, err)
}

func TestNewRejectsBaseRateNotOne(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts["USD"] = Option{Balance: 100, Rate: 2.0}
	_, err := New("USD", opts)
	assert.Error(t, err)
}

func TestNewRejectsNonPositiveRate(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts["EUR"] = Option{Balance: 100, Rate: 0}
	_, err := New("USD", opts)
	assert.Error(t, err)
}

func TestBalanceUnknownCurrency(t *testing.T) {
	t.Parallel()

	w, err := New("USD", testOptions())
	assert.NoError(t, err)

	_, err = w.Balance("GBP")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestUpdateBalanceRoundTrip(t *testing.T) {
	t.Parallel()

	w, err := New("USD", testOptions())
	assert.NoError(t, err)

	w.UpdateBalance(9500.0)

	got, err := w.Balance("USD")
	assert.NoError(t, err)
	assert.Equal(t, 9500.0, got)
}

func TestBalanceDerivedFromBase(t *testing.T) {
	t.Parallel()

	w, err := New("USD", testOptions())
	assert.NoError(t, err)

	w.UpdateBalance(1000.0)

	eur, err := w.Balance("EUR")
	assert.NoError(t, err)
	assert.InDelta(t, 1100.0, eur, 1e-9)

	btc, err := w.Balance("BTC")
	assert.NoError(t, err)
	assert.InDelta(t, 45_000_000.0, btc, 1e-6)
}

// The engine is trusted: a negative reported balance is stored as-is.
func TestUpdateBalanceAcceptsNegative(t *testing.T) {
	t.Parallel()

	w, err := New("USD", testOptions())
	assert.NoError(t, err)

	w.UpdateBalance(-250.5)

	got, err := w.Balance("USD")
	assert.NoError(t, err)
	assert.Equal(t, -250.5, got)
}

func TestCurrenciesSorted(t *testing.T) {
	t.Parallel()

	w, err := New("USD", testOptions())
	assert.NoError(t, err)

	assert.Equal(t, []string{"BTC", "EUR", "USD"}, w.Currencies())
	assert.Equal(t, "USD", w.Base())
}
