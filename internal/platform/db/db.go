// Package db opens the postgres connection used to persist capacity
// history observations and planning run results. Callers must blank-import
// github.com/jackc/pgx/v5/stdlib to register the "pgx" driver name.
package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open opens and verifies a postgres connection pool at databaseURL.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}
