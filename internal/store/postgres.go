package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
)

type postgresBackend struct {
	db *sql.DB
}

func openPostgres(url string) (*postgresBackend, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &postgresBackend{db: db}, nil
}

func (b *postgresBackend) Load(slot string) (json.RawMessage, error) {
	var value []byte
	err := b.db.QueryRow("SELECT value FROM slots WHERE key=$1", slot).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(value), nil
}

func (b *postgresBackend) Save(slot string, value json.RawMessage) error {
	_, err := b.db.Exec(`
		INSERT INTO slots (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value=$2, updated_at=NOW()`,
		slot, []byte(value))
	return err
}

func (b *postgresBackend) Name() string { return "postgres" }

func (b *postgresBackend) Close() error { return b.db.Close() }
