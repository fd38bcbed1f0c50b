package journal

import (
	"database/sql"
	"fmt"
)

const selectCols = `trade_id, company, action, price, amount, timestamp, logged_at`

// GetTrade returns a single journaled trade by ID.
func (j *SQLite) GetTrade(tradeID string) (Record, error) {
	row := j.db.QueryRow(`
		SELECT `+selectCols+`
		FROM trades
		WHERE trade_id = ?`, tradeID)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return Record{}, fmt.Errorf("trade %q not found", tradeID)
	}
	return rec, err
}

// ListTrades returns every journaled trade in insertion order. ULID trade
// IDs sort by creation time, so ordering by primary key is chronological.
func (j *SQLite) ListTrades() ([]Record, error) {
	return j.list(`
		SELECT ` + selectCols + `
		FROM trades
		ORDER BY trade_id ASC`)
}

// ListTradesByCompany returns the journaled trades for one company in
// insertion order.
func (j *SQLite) ListTradesByCompany(company string) ([]Record, error) {
	return j.list(`
		SELECT `+selectCols+`
		FROM trades
		WHERE company = ?
		ORDER BY trade_id ASC`, company)
}

func (j *SQLite) list(query string, args ...any) ([]Record, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var rec Record
	err := s.Scan(
		&rec.TradeID,
		&rec.Company,
		&rec.Action,
		&rec.Price,
		&rec.Amount,
		&rec.Timestamp,
		&rec.LoggedAt,
	)
	return rec, err
}
