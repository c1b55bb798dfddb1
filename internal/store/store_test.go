package store

import (
	"os"
	"path/filepath"
	"testing"
)

// setupTestXDG sets XDG env vars to a temp directory for isolated testing.
func setupTestXDG(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))
	return tmpDir
}

func TestOpenCreatesDatabaseFile(t *testing.T) {
	tmpDir := setupTestXDG(t)

	db, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if db.Conn() == nil {
		t.Fatal("Conn() returned nil")
	}

	dbPath := filepath.Join(tmpDir, "siptrackr", "siptrackr.db")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database file not created at %s: %v", dbPath, err)
	}
}

func TestMigrationsCreateTables(t *testing.T) {
	db, err := OpenPath(filepath.Join(t.TempDir(), "t.db"))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"migrations", "sips", "journal_entries", "kv"} {
		var name string
		err := db.Conn().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.db")

	db1, err := OpenPath(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := db1.Conn().Exec(
		`INSERT INTO sips (id, date, timestamp, intention, type) VALUES ('sip-1', '2024-01-01', '2024-01-01T08:00:00Z', 'calm', 'tea')`,
	); err != nil {
		t.Fatal(err)
	}
	db1.Close()

	db2, err := OpenPath(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db2.Close()

	var n int
	if err := db2.Conn().QueryRow(`SELECT COUNT(*) FROM sips`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected data to survive reopen, got %d rows", n)
	}

	var applied int
	if err := db2.Conn().QueryRow(`SELECT COUNT(*) FROM migrations`).Scan(&applied); err != nil {
		t.Fatal(err)
	}
	if applied != len(migrations) {
		t.Fatalf("migrations recorded = %d, want %d", applied, len(migrations))
	}
}

func TestKV(t *testing.T) {
	db, err := OpenPath(filepath.Join(t.TempDir(), "t.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	v, err := db.GetKV("missing")
	if err != nil || v != "" {
		t.Fatalf("GetKV(missing) = %q, %v", v, err)
	}

	if err := db.SetKV("last_remind", "2024-03-01"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetKV("last_remind", "2024-03-02"); err != nil {
		t.Fatal(err)
	}
	v, err = db.GetKV("last_remind")
	if err != nil {
		t.Fatal(err)
	}
	if v != "2024-03-02" {
		t.Fatalf("GetKV = %q, want 2024-03-02", v)
	}

	if err := db.SetKV("  ", "x"); err == nil {
		t.Fatal("expected error for blank key")
	}
}
