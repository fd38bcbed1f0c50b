package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	assert.NoError(t, err)

	return j, path
}

func testRecord(id, company string) Record {
	return Record{
		TradeID:   id,
		Company:   company,
		Action:    "SELL",
		Price:     150.25,
		Amount:    10,
		Timestamp: "2024-01-02 03:04:05",
		LoggedAt:  time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC),
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='trades'`).Scan(&name)
	assert.NoError(t, err)
	assert.Equal(t, "trades", name)
}

func TestSQLiteRecordAndGetTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	rec := testRecord("01ARZ3NDEKTSV4RRFFQ69G5FAV", "AAPL")
	assert.NoError(t, j.RecordTrade(rec))

	got, err := j.GetTrade(rec.TradeID)
	assert.NoError(t, err)

	assert.Equal(t, rec.TradeID, got.TradeID)
	assert.Equal(t, rec.Company, got.Company)
	assert.Equal(t, rec.Action, got.Action)
	assert.InDelta(t, rec.Price, got.Price, 1e-9)
	assert.Equal(t, rec.Amount, got.Amount)
	assert.Equal(t, rec.Timestamp, got.Timestamp)
	assert.True(t, got.LoggedAt.Equal(rec.LoggedAt))
}

func TestSQLiteGetTradeMissing(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetTrade("nope")
	assert.Error(t, err)
}

func TestSQLiteListTradesByCompany(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	assert.NoError(t, j.RecordTrade(testRecord("01A", "AAPL")))
	assert.NoError(t, j.RecordTrade(testRecord("01B", "MSFT")))
	assert.NoError(t, j.RecordTrade(testRecord("01C", "AAPL")))

	aapl, err := j.ListTradesByCompany("AAPL")
	assert.NoError(t, err)
	assert.Len(t, aapl, 2)
	assert.Equal(t, "01A", aapl[0].TradeID)
	assert.Equal(t, "01C", aapl[1].TradeID)

	all, err := j.ListTrades()
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := j.ListTradesByCompany("TSLA")
	assert.NoError(t, err)
	assert.Empty(t, none)
}
