package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	DB     *sql.DB
	Driver string
)

// InitDatabase opens the movie store and creates its schema. For sqlite the
// dsn is a file path (or ":memory:"); for postgres it is a lib/pq DSN.
func InitDatabase(driver, dsn string) error {
	log := logger.GetLogger().WithContext("component", "database")

	var err error
	switch driver {
	case DriverSQLite, "":
		driver = DriverSQLite
		if dsn != ":memory:" {
			dir := filepath.Dir(dsn)
			if dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create database directory %s: %w", dir, err)
				}
			}
		}
		DB, err = sql.Open("sqlite", dsn+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
		if err == nil && dsn == ":memory:" {
			// every pooled connection would otherwise get its own empty database
			DB.SetMaxOpenConns(1)
		}
	case DriverPostgres:
		DB, err = sql.Open("postgres", dsn)
		if err == nil {
			DB.SetMaxOpenConns(25)
			DB.SetMaxIdleConns(5)
			DB.SetConnMaxLifetime(5 * time.Minute)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	Driver = driver

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("database_connected", "driver", driver)

	if err = createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	log.Debug("database_schema_ready")
	return nil
}

// Builder returns a squirrel statement builder using the placeholder format
// of the active driver.
func Builder() sq.StatementBuilderType {
	if Driver == DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

const sqliteSchema = `
    CREATE TABLE IF NOT EXISTS douban_movies (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        rank_num INTEGER DEFAULT 0,
        title TEXT NOT NULL,
        title_en TEXT DEFAULT '',
        director TEXT DEFAULT '',
        actors TEXT DEFAULT '',
        year TEXT DEFAULT '',
        country TEXT DEFAULT '',
        genre TEXT DEFAULT '',
        rating REAL,
        rating_count INTEGER DEFAULT 0,
        duration TEXT DEFAULT '',
        poster_url TEXT DEFAULT '',
        summary TEXT DEFAULT '',
        douban_id TEXT UNIQUE NOT NULL,
        douban_url TEXT DEFAULT '',
        crawl_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        created_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        updated_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );

    CREATE INDEX IF NOT EXISTS idx_douban_movies_rating ON douban_movies(rating);
    CREATE INDEX IF NOT EXISTS idx_douban_movies_year ON douban_movies(year);
    `

const postgresSchema = `
    CREATE TABLE IF NOT EXISTS douban_movies (
        id BIGSERIAL PRIMARY KEY,
        rank_num INTEGER DEFAULT 0,
        title TEXT NOT NULL,
        title_en TEXT DEFAULT '',
        director TEXT DEFAULT '',
        actors TEXT DEFAULT '',
        year TEXT DEFAULT '',
        country TEXT DEFAULT '',
        genre TEXT DEFAULT '',
        rating DOUBLE PRECISION,
        rating_count INTEGER DEFAULT 0,
        duration TEXT DEFAULT '',
        poster_url TEXT DEFAULT '',
        summary TEXT DEFAULT '',
        douban_id TEXT UNIQUE NOT NULL,
        douban_url TEXT DEFAULT '',
        crawl_time TIMESTAMPTZ DEFAULT NOW(),
        created_time TIMESTAMPTZ DEFAULT NOW(),
        updated_time TIMESTAMPTZ DEFAULT NOW()
    );

    CREATE INDEX IF NOT EXISTS idx_douban_movies_rating ON douban_movies(rating);
    CREATE INDEX IF NOT EXISTS idx_douban_movies_year ON douban_movies(year);
    `

func createTables() error {
	if Driver == DriverPostgres {
		_, err := DB.Exec(postgresSchema)
		return err
	}

	if _, err := DB.Exec(sqliteSchema); err != nil {
		return err
	}
	// Databases created before duration/summary were collected lack the columns.
	for _, column := range []string{"duration", "summary"} {
		if err := ensureSQLiteColumn("douban_movies", column, "TEXT DEFAULT ''"); err != nil {
			return err
		}
	}
	return nil
}

func ensureSQLiteColumn(table, column, definition string) error {
	found, err := hasSQLiteColumn(table, column)
	if err != nil || found {
		return err
	}

	if _, err := DB.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s;`, table, column, definition)); err != nil {
		logger.Warn("add_column_failed", "table", table, "column", column, "error", err.Error())
	} else {
		logger.Info("column_added", "table", table, "column", column)
	}
	return nil
}

func hasSQLiteColumn(table, column string) (bool, error) {
	rows, err := DB.Query(fmt.Sprintf(`PRAGMA table_info(%s);`, table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false, err
		}
		if strings.EqualFold(name, column) {
			return true, nil
		}
	}
	return false, rows.Err()
}

// Ping reports whether the store is reachable.
func Ping(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	return DB.PingContext(ctx)
}

func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
