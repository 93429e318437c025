package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

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

func (s *SQLite) WriteAccount(name string, doc []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO accounts (name, account)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET account=excluded.account`,
		strings.ToLower(name), string(doc),
	)
	return err
}

func (s *SQLite) ReadAccount(name string) ([]byte, error) {
	var doc string
	err := s.db.QueryRow(
		`SELECT account FROM accounts WHERE name = ?`,
		strings.ToLower(name),
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

func (s *SQLite) WriteLog(name, category, message string) error {
	_, err := s.db.Exec(`
		INSERT INTO logs (name, datetime, category, message)
		VALUES (?, ?, ?, ?)`,
		strings.ToLower(name), time.Now().UTC(), category, message,
	)
	return err
}

// ReadLog returns the lastN most recent rows for name. Rows come back oldest
// first so callers can print them in chronological order.
func (s *SQLite) ReadLog(name string, lastN int) ([]LogEntry, error) {
	rows, err := s.db.Query(`
		SELECT name, datetime, category, message FROM logs
		WHERE name = ?
		ORDER BY id DESC
		LIMIT ?`,
		strings.ToLower(name), lastN,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LogEntry
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(&e.Name, &e.Time, &e.Category, &e.Message); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *SQLite) WriteMarket(date string, prices map[string]float64) error {
	data, err := json.Marshal(prices)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", date, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO market (date, data)
		VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET data=excluded.data`,
		date, string(data),
	)
	return err
}

func (s *SQLite) ReadMarket(date string) (map[string]float64, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM market WHERE date = ?`, date).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var prices map[string]float64
	if err := json.Unmarshal([]byte(data), &prices); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", date, err)
	}
	return prices, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
