package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	company TEXT NOT NULL,
	action TEXT NOT NULL,
	price REAL NOT NULL,
	amount INTEGER NOT NULL,
	timestamp TEXT NOT NULL,
	logged_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_company ON trades(company);
`
