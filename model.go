package activerecord

import (
	"context"
	"fmt"
	"sync"

	"github.com/jay-hwang/active-record/clause"
	"github.com/jay-hwang/active-record/utils"
)

// ModelOption configures a model when it is registered
type ModelOption func(*Model)

// WithTable overrides the default table name
func WithTable(table string) ModelOption {
	return func(m *Model) {
		m.SetTableName(table)
	}
}

// Model a record type bound to one table
type Model struct {
	db   *DB
	name string

	mu    sync.RWMutex
	table string

	columns           []string
	columnsGeneration uint64
	columnsLoaded     bool

	// declared associations, written by declarations only
	assocs map[string]Association

	// accessor tables generated by Finalize
	finalized bool
	fields    []string
	accessors map[string]accessor
	getters   map[string]Association
}

// accessor getter and setter bound to one column of the attribute mapping
type accessor struct {
	get func(*Record) interface{}
	set func(*Record, interface{})
}

func newAccessor(column string) accessor {
	return accessor{
		get: func(r *Record) interface{} {
			value, _ := r.Attributes().Get(column)
			return value
		},
		set: func(r *Record, value interface{}) {
			r.Attributes().Set(column, value)
		},
	}
}

// Name model name, e.g. Motorcycle
func (m *Model) Name() string {
	return m.name
}

// DB db handle the model is registered on
func (m *Model) DB() *DB {
	return m.db
}

// TableName table name, defaults to the tableized model name
func (m *Model) TableName() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.table == "" {
		m.table = m.db.NamingStrategy.TableName(m.name)
	}
	return m.table
}

// SetTableName overrides the table name
func (m *Model) SetTableName(table string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.table != table {
		m.table = table
		m.columnsLoaded = false
	}
}

// Columns column names of the table, queried once and memoized until the store is reset
func (m *Model) Columns(ctx context.Context) ([]string, error) {
	table := m.TableName()
	generation := m.db.currentGeneration()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.columnsLoaded && m.columnsGeneration == generation {
		return append([]string(nil), m.columns...), nil
	}

	stmt := &Statement{Table: table}
	stmt.Build(clause.Select{}, clause.From{Tables: []clause.Table{{Name: table}}}, clause.Limit{Limit: 0})

	rows, err := m.db.exec(ctx, stmt)
	if err != nil {
		return nil, err
	}

	m.columns = append([]string(nil), rows.Columns...)
	m.columnsGeneration = generation
	m.columnsLoaded = true
	return append([]string(nil), m.columns...), nil
}

// Finalize generates a getter and setter for every column and a getter for every
// declared association. Declarations made after Finalize need another Finalize.
func (m *Model) Finalize(ctx context.Context) error {
	columns, err := m.Columns(ctx)
	if err != nil {
		return err
	}

	accessors := make(map[string]accessor, len(columns))
	for _, column := range columns {
		accessors[column] = newAccessor(column)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	getters := make(map[string]Association, len(m.assocs))
	for name, assoc := range m.assocs {
		getters[name] = assoc
	}

	m.fields = columns
	m.accessors = accessors
	m.getters = getters
	m.finalized = true
	return nil
}

// Responds reports whether Finalize generated a column accessor or association getter named name
func (m *Model) Responds(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.accessors[name]; ok {
		return true
	}
	_, ok := m.getters[name]
	return ok
}

// finalizedColumns columns accessors were generated for, in table order
func (m *Model) finalizedColumns() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fields
}

func (m *Model) accessor(column string) (accessor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acc, ok := m.accessors[column]
	return acc, ok
}

func (m *Model) getter(name string) (Association, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if assoc, ok := m.getters[name]; ok {
		return assoc, nil
	}
	return nil, fmt.Errorf("%w: %s#%s", ErrUnknownAssociation, m.name, name)
}

// New builds a record, calling the generated setter for each field
func (m *Model) New(ctx context.Context, fields ...Field) (*Record, error) {
	record := &Record{model: m}
	if len(fields) == 0 {
		return record, nil
	}

	columns, err := m.Columns(ctx)
	if err != nil {
		return nil, err
	}

	for _, field := range fields {
		if !utils.Contains(columns, field.Column) {
			return nil, &UnknownAttributeError{Model: m.name, Column: field.Column}
		}

		acc, ok := m.accessor(field.Column)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFinalized, m.name)
		}
		acc.set(record, field.Value)
	}
	return record, nil
}

// ParseAll builds one record per row
func (m *Model) ParseAll(ctx context.Context, rows []Fields) ([]*Record, error) {
	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		record, err := m.New(ctx, row...)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// All every row of the table, in store order
func (m *Model) All(ctx context.Context) ([]*Record, error) {
	table := m.TableName()
	stmt := &Statement{Table: table}
	stmt.Build(
		clause.Select{Columns: []clause.Column{clause.Star(table)}},
		clause.From{Tables: []clause.Table{{Name: table}}},
	)
	return m.query(ctx, stmt)
}

// Find record with id, nil when no row matches
func (m *Model) Find(ctx context.Context, id interface{}) (*Record, error) {
	return m.findBy(ctx, "id", id)
}

func (m *Model) findBy(ctx context.Context, column string, value interface{}) (*Record, error) {
	table := m.TableName()
	stmt := &Statement{Table: table}
	stmt.Build(
		clause.Select{Columns: []clause.Column{clause.Star(table)}},
		clause.From{Tables: []clause.Table{{Name: table}}},
		clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: table, Name: column}, Value: value},
		}},
	)
	return m.first(ctx, stmt)
}

func (m *Model) query(ctx context.Context, stmt *Statement) ([]*Record, error) {
	rows, err := m.db.exec(ctx, stmt)
	if err != nil {
		return nil, err
	}
	return m.ParseAll(ctx, rows.All())
}

func (m *Model) first(ctx context.Context, stmt *Statement) (*Record, error) {
	rows, err := m.db.exec(ctx, stmt)
	if err != nil {
		return nil, err
	}

	if rows.Len() == 0 {
		return nil, nil
	}
	return m.New(ctx, rows.Fields(0)...)
}

// AssocOptions declared associations by name
func (m *Model) AssocOptions() map[string]Association {
	m.mu.RLock()
	defer m.mu.RUnlock()

	options := make(map[string]Association, len(m.assocs))
	for name, assoc := range m.assocs {
		options[name] = assoc
	}
	return options
}

func (m *Model) assoc(name string) (Association, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	assoc, ok := m.assocs[name]
	return assoc, ok
}

func (m *Model) declare(name string, assoc Association) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.assocs[name] = assoc
}
