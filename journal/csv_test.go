package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSVJournalWritesRows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.csv")
	j, err := NewCSV(path)
	assert.NoError(t, err)

	assert.NoError(t, j.RecordTrade(testRecord("01A", "AAPL")))
	assert.NoError(t, j.Close())

	f, err := os.Open(path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	assert.Equal(t, []string{"trade_id", "company", "action", "price", "amount", "timestamp", "logged_at"}, rows[0])
	assert.Equal(t, "01A", rows[1][0])
	assert.Equal(t, "AAPL", rows[1][1])
	assert.Equal(t, "SELL", rows[1][2])
	assert.Equal(t, "150.25", rows[1][3])
	assert.Equal(t, "10", rows[1][4])
}

func TestTextLogAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.log")

	j, err := NewText(path)
	assert.NoError(t, err)
	assert.NoError(t, j.RecordTrade(testRecord("01A", "AAPL")))
	assert.NoError(t, j.Close())

	// reopening appends rather than truncating
	j, err = NewText(path)
	assert.NoError(t, err)
	assert.NoError(t, j.RecordTrade(testRecord("01B", "MSFT")))
	assert.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "[Trade] AAPL | SELL | $150.25 | 10 units | 2024-01-02 03:04:05", lines[0])
	assert.Contains(t, lines[1], "MSFT")
}

type failingJournal struct{}

func (failingJournal) RecordTrade(Record) error { return os.ErrClosed }
func (failingJournal) Close() error             { return nil }

func TestMultiRecordsAllAndJoinsErrors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.log")
	text, err := NewText(path)
	assert.NoError(t, err)

	m := Multi{failingJournal{}, text}

	// the failing backend does not stop the text log from recording
	err = m.RecordTrade(testRecord("01A", "AAPL"))
	assert.Error(t, err)

	assert.NoError(t, text.Close())
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "AAPL")
}
