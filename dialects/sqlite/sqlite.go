package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	activerecord "github.com/jay-hwang/active-record"
	"github.com/jay-hwang/active-record/utils"
	// import sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// DriverName database/sql driver name
const DriverName = "sqlite3"

// MemoryDSN an in-memory database, recreated from the schema on every reset
const MemoryDSN = ":memory:"

// Config sqlite config
type Config struct {
	// DSN database file path, or MemoryDSN
	DSN string
	// Schema script executed after the database is dropped
	Schema string
	// SchemaFile read into Schema when Schema is empty
	SchemaFile string
	// ResetOnOpen drop and recreate an existing database file on open
	ResetOnOpen bool
}

// Option configures the dialector
type Option func(*Config)

// WithSchema schema script run on reset
func WithSchema(script string) Option {
	return func(c *Config) {
		c.Schema = script
	}
}

// WithSchemaFile schema file run on reset
func WithSchemaFile(path string) Option {
	return func(c *Config) {
		c.SchemaFile = path
	}
}

// WithResetOnOpen recreate the database from the schema when the gateway is first opened
func WithResetOnOpen() Option {
	return func(c *Config) {
		c.ResetOnOpen = true
	}
}

// Dialector sqlite dialector
type Dialector struct {
	Config
}

// Open sqlite dialector for dsn
func Open(dsn string, opts ...Option) *Dialector {
	dialector := &Dialector{Config: Config{DSN: dsn}}
	for _, opt := range opts {
		opt(&dialector.Config)
	}
	return dialector
}

func (dialector *Dialector) Name() string {
	return "sqlite"
}

// Open opens the gateway; an in-memory, missing or ResetOnOpen database is built from the schema
func (dialector *Dialector) Open(ctx context.Context) (activerecord.Gateway, error) {
	gateway := &Gateway{config: dialector.Config}

	if gateway.inMemory() || dialector.ResetOnOpen || !fileExists(gateway.path()) {
		if err := gateway.Reset(ctx); err != nil {
			return nil, err
		}
		return gateway, nil
	}

	if err := gateway.connect(ctx, dialector.DSN); err != nil {
		return nil, err
	}
	return gateway, nil
}

// Gateway one shared sqlite connection
type Gateway struct {
	config Config

	mu  sync.Mutex
	db  *sql.DB
	dsn string
}

// DSN data source currently open, a uuid named shared memory database for MemoryDSN
func (gateway *Gateway) DSN() string {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	return gateway.dsn
}

func (gateway *Gateway) inMemory() bool {
	return gateway.config.DSN == "" || gateway.config.DSN == MemoryDSN
}

func (gateway *Gateway) path() string {
	path := strings.TrimPrefix(gateway.config.DSN, "file:")
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}
	return path
}

func (gateway *Gateway) connect(ctx context.Context, dsn string) error {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return err
	}

	// every statement and last_insert_rowid() must see the same connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return err
	}

	gateway.mu.Lock()
	gateway.db, gateway.dsn = db, dsn
	gateway.mu.Unlock()
	return nil
}

func (gateway *Gateway) conn() (*sql.DB, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()

	if gateway.db == nil {
		return nil, ErrClosed
	}
	return gateway.db, nil
}

// Execute runs a statement, SELECT-like statements return their rows
func (gateway *Gateway) Execute(ctx context.Context, query string, vars ...interface{}) (*activerecord.Rows, error) {
	db, err := gateway.conn()
	if err != nil {
		return nil, err
	}

	if !returnsRows(query) {
		if _, err := db.ExecContext(ctx, query, vars...); err != nil {
			return nil, err
		}
		return &activerecord.Rows{}, nil
	}

	rows, err := db.QueryContext(ctx, query, vars...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scan(rows)
}

func scan(rows *sql.Rows) (*activerecord.Rows, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &activerecord.Rows{Columns: columns, Values: [][]interface{}{}}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for idx := range values {
			pointers[idx] = &values[idx]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		for idx, value := range values {
			values[idx] = utils.NormalizeValue(value)
		}
		result.Values = append(result.Values, values)
	}
	return result, rows.Err()
}

func returnsRows(query string) bool {
	keyword := strings.ToUpper(strings.TrimLeft(query, " \t\r\n("))
	for _, prefix := range []string{"SELECT", "WITH", "PRAGMA", "VALUES", "EXPLAIN"} {
		if strings.HasPrefix(keyword, prefix) {
			return true
		}
	}
	return false
}

// LastInsertID id generated by the most recent INSERT on the connection
func (gateway *Gateway) LastInsertID(ctx context.Context) (int64, error) {
	db, err := gateway.conn()
	if err != nil {
		return 0, err
	}

	var id int64
	err = db.QueryRowContext(ctx, "SELECT last_insert_rowid()").Scan(&id)
	return id, err
}

// Reset drops the database, recreates it from the schema and reopens the connection
func (gateway *Gateway) Reset(ctx context.Context) error {
	if err := gateway.Close(); err != nil {
		return err
	}

	schema, err := gateway.schema()
	if err != nil {
		return err
	}

	dsn := gateway.config.DSN
	if gateway.inMemory() {
		dsn = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	} else if err := os.Remove(gateway.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := gateway.connect(ctx, dsn); err != nil {
		return err
	}

	if strings.TrimSpace(schema) == "" {
		return nil
	}

	db, err := gateway.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, schema)
	return err
}

func (gateway *Gateway) schema() (string, error) {
	if gateway.config.Schema != "" || gateway.config.SchemaFile == "" {
		return gateway.config.Schema, nil
	}

	script, err := os.ReadFile(gateway.config.SchemaFile)
	if err != nil {
		return "", err
	}
	return string(script), nil
}

// Close closes the connection
func (gateway *Gateway) Close() error {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()

	if gateway.db == nil {
		return nil
	}

	err := gateway.db.Close()
	gateway.db = nil
	return err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
