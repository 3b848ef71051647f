package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
)

// Postgres stores values as jsonb rows in a single kv_store table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates the backing table if needed and returns the store.
func NewPostgres(db *sql.DB) (*Postgres, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("error creating kv_store table: %v", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Get(key string, v any) (bool, error) {
	var raw []byte
	err := p.db.QueryRow(`SELECT value FROM kv_store WHERE key = $1`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error reading key %s: %v", key, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		// Corrupt rows read as absent so callers fall back to defaults.
		log.Printf("Discarding malformed value for key %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (p *Postgres) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding value for key %s: %v", key, err)
	}

	_, err = p.db.Exec(`
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP
	`, key, raw)
	if err != nil {
		return fmt.Errorf("error writing key %s: %v", key, err)
	}
	return nil
}

func (p *Postgres) Delete(key string) error {
	if _, err := p.db.Exec(`DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("error deleting key %s: %v", key, err)
	}
	return nil
}
