package activerecord

import "context"

// Gateway the relational store: one shared connection executing parameterized statements
type Gateway interface {
	// Execute runs sql with vars bound to ? placeholders in order, zero rows is not an error
	Execute(ctx context.Context, sql string, vars ...interface{}) (*Rows, error)
	// LastInsertID id generated by the most recent INSERT on the connection
	LastInsertID(ctx context.Context) (int64, error)
	// Reset drops and recreates the store from its schema, then reopens the connection
	Reset(ctx context.Context) error
	Close() error
}

// Dialector opens the gateway for a store
type Dialector interface {
	Name() string
	Open(ctx context.Context) (Gateway, error)
}

// Rows statement result, Columns is set for SELECT even when no row matched
type Rows struct {
	Columns []string
	Values  [][]interface{}
}

// Len number of rows
func (rows *Rows) Len() int {
	if rows == nil {
		return 0
	}
	return len(rows.Values)
}

// Fields row i as an ordered column => value mapping
func (rows *Rows) Fields(i int) Fields {
	values := rows.Values[i]
	fields := make(Fields, 0, len(rows.Columns))
	for idx, column := range rows.Columns {
		var value interface{}
		if idx < len(values) {
			value = values[idx]
		}
		fields = append(fields, Field{Column: column, Value: value})
	}
	return fields
}

// All every row as ordered mappings
func (rows *Rows) All() []Fields {
	results := make([]Fields, 0, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		results = append(results, rows.Fields(i))
	}
	return results
}
