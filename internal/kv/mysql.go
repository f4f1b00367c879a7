package kv

import (
	"context"
	"database/sql"
	"errors"
)

// MySQL keeps values in the kv_store table:
//
//	CREATE TABLE kv_store (
//	    k          VARCHAR(191) NOT NULL PRIMARY KEY,
//	    v          MEDIUMBLOB   NOT NULL,
//	    updated_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
//	)
type MySQL struct {
	db *sql.DB
}

// NewMySQL returns a store bound to db.
func NewMySQL(db *sql.DB) *MySQL { return &MySQL{db: db} }

// EnsureSchema creates the kv_store table when it does not exist.
func (m *MySQL) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS kv_store (
	           k VARCHAR(191) NOT NULL PRIMARY KEY,
	           v MEDIUMBLOB NOT NULL,
	           updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP)`
	_, err := m.db.ExecContext(ctx, q)
	return err
}

func (m *MySQL) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT v FROM kv_store WHERE k = ? LIMIT 1`
	var v []byte
	if err := m.db.QueryRowContext(ctx, q, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (m *MySQL) Set(ctx context.Context, key string, value []byte) error {
	const q = `INSERT INTO kv_store (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`
	_, err := m.db.ExecContext(ctx, q, key, value)
	return err
}

func (m *MySQL) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_store WHERE k = ?`
	_, err := m.db.ExecContext(ctx, q, key)
	return err
}
