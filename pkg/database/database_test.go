package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
)

func init() {
	logger.Init(logger.ERROR, false, nil)
}

func TestInitDatabase_SQLiteCreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "movies.db")
	if err := InitDatabase(DriverSQLite, dbPath); err != nil {
		t.Fatalf("init db: %v", err)
	}
	defer Close()

	if Driver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %s", Driver)
	}

	for _, column := range []string{"rating", "year", "country", "duration", "summary"} {
		found, err := hasSQLiteColumn("douban_movies", column)
		if err != nil {
			t.Fatalf("table_info: %v", err)
		}
		if !found {
			t.Fatalf("expected column %s", column)
		}
	}

	if err := Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestInitDatabase_IsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "movies.db")
	if err := InitDatabase(DriverSQLite, dbPath); err != nil {
		t.Fatalf("first init: %v", err)
	}
	Close()
	if err := InitDatabase(DriverSQLite, dbPath); err != nil {
		t.Fatalf("second init: %v", err)
	}
	defer Close()
}

func TestInitDatabase_UnknownDriver(t *testing.T) {
	if err := InitDatabase("mysql", "root@/movies"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestBuilder_PlaceholderFormat(t *testing.T) {
	prev := Driver
	defer func() { Driver = prev }()

	Driver = DriverPostgres
	sql, _, err := Builder().Select("id").From("douban_movies").Where("douban_id = ?", "1").ToSql()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "SELECT id FROM douban_movies WHERE douban_id = $1" {
		t.Fatalf("unexpected postgres sql: %s", sql)
	}

	Driver = DriverSQLite
	sql, _, _ = Builder().Select("id").From("douban_movies").Where("douban_id = ?", "1").ToSql()
	if sql != "SELECT id FROM douban_movies WHERE douban_id = ?" {
		t.Fatalf("unexpected sqlite sql: %s", sql)
	}
}

func TestPing_NotInitialized(t *testing.T) {
	prev := DB
	DB = nil
	defer func() { DB = prev }()

	if err := Ping(context.Background()); err == nil {
		t.Fatalf("expected error when DB is nil")
	}
}
