// Package sqlite stores session tokens in a local SQLite database.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/rounds/internal/log"
	"github.com/zjrosen/rounds/internal/session"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB owns the SQLite connection and hands out repositories backed by it.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens (creating if needed) the database at path and applies pending
// migrations. The parent directory is created with 0700 permissions.
// An existing file is copied to path+".bak" before any migration touches it;
// opening an up-to-date database leaves the backup alone.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	_, statErr := os.Stat(path)
	existed := statErr == nil

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)&_pragma=foreign_keys(1)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	applied, err := migrate(conn, func() error {
		if !existed {
			return nil
		}
		// Fold the WAL into the main file so the copy is complete.
		if _, err := conn.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
			return fmt.Errorf("checkpoint database: %w", err)
		}
		if err := backup(path, path+".bak"); err != nil {
			return fmt.Errorf("backup database: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Debug(log.CatDB, "database ready", "path", path, "migrationsApplied", applied)

	return &DB{conn: conn, path: path}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// TokenRepository returns a session.Repository backed by this database.
func (db *DB) TokenRepository() session.Repository {
	return newTokenRepository(db.conn)
}

// migrate applies every embedded up migration not yet recorded in
// schema_migrations, in version order. beforeApply runs once, only when at
// least one migration is pending. Returns the number applied.
func migrate(conn *sql.DB, beforeApply func() error) (int, error) {
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("load migrations: %w", err)
	}
	defer func() { _ = src.Close() }()

	pending, err := pendingVersions(conn, src)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}
	if err := beforeApply(); err != nil {
		return 0, err
	}

	for i, version := range pending {
		if err := applyMigration(conn, src, version); err != nil {
			return i, err
		}
	}
	return len(pending), nil
}

func pendingVersions(conn *sql.DB, src source.Driver) ([]uint, error) {
	done := map[uint]bool{}
	rows, err := conn.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	for rows.Next() {
		var v uint
		if err := rows.Scan(&v); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		done[v] = true
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	var pending []uint
	version, err := src.First()
	for err == nil {
		if !done[version] {
			pending = append(pending, version)
		}
		version, err = src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("walk migrations: %w", err)
	}
	return pending, nil
}

func applyMigration(conn *sql.DB, src source.Driver, version uint) error {
	r, ident, err := src.ReadUp(version)
	if err != nil {
		return fmt.Errorf("read migration %d: %w", version, err)
	}
	body, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		return fmt.Errorf("read migration %d: %w", version, err)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", version, err)
	}
	if _, err := tx.Exec(string(body)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration %d (%s): %w", version, ident, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
		version, time.Now().Unix()); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %d: %w", version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", version, err)
	}
	log.Info(log.CatDB, "applied migration", "version", version, "name", ident)
	return nil
}

func backup(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
