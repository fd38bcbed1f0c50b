package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(r Record) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, company, action, price, amount, timestamp, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.TradeID, r.Company, r.Action, r.Price, r.Amount, r.Timestamp, r.LoggedAt,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
