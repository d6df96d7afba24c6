// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package nvs

import (
	"database/sql"
	"errors"
	"fmt"
)

// SQLPartition implements a partition on a SQL database.
// It assumes a table `nvs_entries` exists (or creates it).
type SQLPartition struct {
	driver string
	dsn    string
	db     *sql.DB
}

// OpenSQLPartition connects to the database and prepares the schema.
// Note: The driver (e.g. "sqlite" from modernc.org/sqlite) must be imported by the caller.
func OpenSQLPartition(driver, dsn string) (*SQLPartition, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	// One connection, so ":memory:" DSNs see a single database.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	p := &SQLPartition{driver: driver, dsn: dsn, db: db}
	if err := p.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return p, nil
}

func (p *SQLPartition) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS nvs_entries (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (namespace, key)
	);
	`
	_, err := p.db.Exec(query)
	return err
}

func (p *SQLPartition) Get(namespace, key string) (string, error) {
	if p.db == nil {
		return "", ErrClosed
	}
	var value string
	err := p.db.QueryRow("SELECT value FROM nvs_entries WHERE namespace = ? AND key = ?", namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s/%s: %w", namespace, key, err)
	}
	return value, nil
}

// Put upserts the entry (SQLite compatible).
func (p *SQLPartition) Put(namespace, key, value string) error {
	if p.db == nil {
		return ErrClosed
	}
	query := "INSERT INTO nvs_entries (namespace, key, value) VALUES (?, ?, ?) ON CONFLICT(namespace, key) DO UPDATE SET value=excluded.value"
	if _, err := p.db.Exec(query, namespace, key, value); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (p *SQLPartition) Delete(namespace, key string) error {
	if p.db == nil {
		return ErrClosed
	}
	res, err := p.db.Exec("DELETE FROM nvs_entries WHERE namespace = ? AND key = ?", namespace, key)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", namespace, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *SQLPartition) Clear(namespace string) error {
	if p.db == nil {
		return ErrClosed
	}
	if _, err := p.db.Exec("DELETE FROM nvs_entries WHERE namespace = ?", namespace); err != nil {
		return fmt.Errorf("failed to clear %s: %w", namespace, err)
	}
	return nil
}

func (p *SQLPartition) Exists(namespace string) (bool, error) {
	if p.db == nil {
		return false, ErrClosed
	}
	var one int
	err := p.db.QueryRow("SELECT 1 FROM nvs_entries WHERE namespace = ? LIMIT 1", namespace).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query %s: %w", namespace, err)
	}
	return true, nil
}

func (p *SQLPartition) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
