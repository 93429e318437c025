package store

const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	name TEXT PRIMARY KEY,
	account TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	datetime DATETIME NOT NULL,
	category TEXT NOT NULL,
	message TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_logs_name ON logs(name, id);

CREATE TABLE IF NOT EXISTS market (
	date TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
`
