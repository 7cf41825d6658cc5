package portfolio

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Options controls Core initialization.
type Options struct {
	DBPath       string
	AuditLogPath string
	Logger       *slog.Logger
}

// Core provides access to portfolio business logic and storage.
type Core struct {
	db     *sql.DB
	logger *slog.Logger
	audit  *auditLog
	dbPath string
}

// Open initializes a Core using the provided database path. The audit log
// is placed next to the database file.
func Open(dbPath string) (*Core, error) {
	return OpenWithOptions(Options{DBPath: dbPath})
}

// OpenWithOptions initializes a Core using the provided options.
func OpenWithOptions(opts Options) (*Core, error) {
	if opts.DBPath == "" {
		return nil, errors.New("db path is required")
	}
	cleanPath := filepath.Clean(opts.DBPath)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite performs best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Warn("pragma busy_timeout failed", "err", err)
	}

	if err := initDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}

	auditPath := opts.AuditLogPath
	if auditPath == "" {
		auditPath = filepath.Join(filepath.Dir(cleanPath), "portfolio_audit.log")
	}

	return &Core{
		db:     db,
		logger: logger,
		audit:  newAuditLog(auditPath),
		dbPath: cleanPath,
	}, nil
}

// Close releases database and audit log resources.
func (c *Core) Close() error {
	if c == nil {
		return nil
	}
	if c.audit != nil {
		_ = c.audit.Close()
	}
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DBPath returns the underlying database path.
func (c *Core) DBPath() string {
	return c.dbPath
}

// AuditLogPath returns the path of the audit log file.
func (c *Core) AuditLogPath() string {
	return c.audit.path
}

// Logger returns the logger attached to the Core.
func (c *Core) Logger() *slog.Logger {
	return c.logger
}
