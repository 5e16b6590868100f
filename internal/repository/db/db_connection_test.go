package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	db, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'control_events'`).Scan(&name)
	if err != nil {
		t.Fatalf("control_events missing: %v", err)
	}

	// reopening applies the schema idempotently
	db2, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB again: %v", err)
	}
	_ = db2.Close()
}
