package activerecord

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jay-hwang/active-record/logger"
)

// DB owns the process-wide gateway and the registry of models
type DB struct {
	*Config

	dialector Dialector

	mu      sync.Mutex
	gateway Gateway

	// generation is bumped by Reset, schema caches older than it are stale
	generation uint64

	modelsMu sync.RWMutex
	models   map[string]*Model
}

// Open initialize db handle, the gateway itself is opened lazily on first use
func Open(dialector Dialector, config *Config) (*DB, error) {
	if dialector == nil {
		return nil, ErrInvalidDialector
	}

	if config == nil {
		config = &Config{}
	}
	config.apply()

	return &DB{
		Config:    config,
		dialector: dialector,
		models:    map[string]*Model{},
	}, nil
}

// Gateway returns the shared gateway, opening it on first use
func (db *DB) Gateway(ctx context.Context) (Gateway, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.gateway == nil {
		gateway, err := db.dialector.Open(ctx)
		if err != nil {
			db.Logger.Error(ctx, "failed to open gateway", "dialector", db.dialector.Name(), "error", err)
			return nil, err
		}
		db.gateway = gateway
	}
	return db.gateway, nil
}

// Reset recreates the store from its schema; every model's schema cache goes stale
// and is reloaded on its next access
func (db *DB) Reset(ctx context.Context) error {
	gateway, err := db.Gateway(ctx)
	if err != nil {
		return err
	}

	if err := gateway.Reset(ctx); err != nil {
		return err
	}

	atomic.AddUint64(&db.generation, 1)
	db.Logger.Info(ctx, "store reset", "dialector", db.dialector.Name())
	return nil
}

// Close closes the gateway, a later call reopens it
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.gateway == nil {
		return nil
	}

	err := db.gateway.Close()
	db.gateway = nil
	return err
}

// Execute runs a statement through the gateway, store errors are returned as is
func (db *DB) Execute(ctx context.Context, sql string, vars ...interface{}) (*Rows, error) {
	gateway, err := db.Gateway(ctx)
	if err != nil {
		return nil, err
	}

	begin := time.Now()
	rows, err := gateway.Execute(ctx, sql, vars...)
	db.Logger.Trace(ctx, begin, func() (string, int64) {
		var affected int64 = -1
		if err == nil {
			affected = int64(rows.Len())
		}
		return db.explain(ctx, sql, vars...), affected
	}, err)

	return rows, err
}

// LastInsertID id generated by the most recent INSERT
func (db *DB) LastInsertID(ctx context.Context) (int64, error) {
	gateway, err := db.Gateway(ctx)
	if err != nil {
		return 0, err
	}
	return gateway.LastInsertID(ctx)
}

func (db *DB) exec(ctx context.Context, stmt *Statement) (*Rows, error) {
	return db.Execute(ctx, stmt.SQL.String(), stmt.Vars...)
}

func (db *DB) explain(ctx context.Context, sql string, vars ...interface{}) string {
	if filter, ok := db.Logger.(logger.ParamsFilter); ok {
		sql, vars = filter.ParamsFilter(ctx, sql, vars...)
	}
	if len(vars) == 0 {
		return sql
	}
	return logger.ExplainSQL(sql, `"`, vars...)
}

func (db *DB) currentGeneration() uint64 {
	return atomic.LoadUint64(&db.generation)
}

// Model returns the model registered as name, registering it on first call
func (db *DB) Model(name string, opts ...ModelOption) *Model {
	db.modelsMu.Lock()
	defer db.modelsMu.Unlock()

	model, ok := db.models[name]
	if !ok {
		model = &Model{
			db:     db,
			name:   name,
			assocs: map[string]Association{},
		}
		db.models[name] = model
	}

	for _, opt := range opts {
		opt(model)
	}
	return model
}

// LookupModel returns the model registered as name
func (db *DB) LookupModel(name string) (*Model, error) {
	db.modelsMu.RLock()
	defer db.modelsMu.RUnlock()

	if model, ok := db.models[name]; ok {
		return model, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
}
