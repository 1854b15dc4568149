package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// SQLiteBackend stores each namespace as one row in the collections table.
type SQLiteBackend struct {
	db *sql.DB
}

func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

func (b *SQLiteBackend) Load(namespace string) ([]byte, bool, error) {
	var payload string
	err := b.db.QueryRow(
		`SELECT payload FROM collections WHERE namespace = ?`, namespace,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", namespace, err)
	}
	return []byte(payload), true, nil
}

func (b *SQLiteBackend) Save(namespace string, payload []byte) error {
	_, err := b.db.Exec(
		`INSERT INTO collections (namespace, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(namespace) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		namespace, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", namespace, err)
	}
	return nil
}

func (b *SQLiteBackend) Namespaces() ([]string, error) {
	rows, err := b.db.Query(`SELECT namespace FROM collections ORDER BY namespace ASC`)
	if err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("scan namespace: %w", err)
		}
		names = append(names, ns)
	}
	return names, rows.Err()
}
