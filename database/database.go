package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the SQLite database at path and migrates it to the latest
// schema version.
func Open(path string) (db *sql.DB, err error) {
	db, err = sql.Open("sqlite3", dsn(path))
	if err != nil {
		return
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	err = migrateDB(db)
	if err != nil {
		db.Close()
		return
	}

	return
}

// Foreign keys are a per-connection setting in SQLite, so they go in the DSN.
// Immediate transactions take the write lock up front: a submission reads
// its questions and writes its answers under the same lock.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + "_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
}
