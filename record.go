package activerecord

import (
	"context"
	"fmt"
	"time"

	"github.com/jay-hwang/active-record/clause"
	"github.com/jay-hwang/active-record/utils"
	"github.com/jinzhu/now"
)

// Record one row's in-memory projection
type Record struct {
	model      *Model
	attributes *Attributes
}

// Model record type
func (r *Record) Model() *Model {
	return r.model
}

// Attributes attribute mapping, created empty on first access
func (r *Record) Attributes() *Attributes {
	if r.attributes == nil {
		r.attributes = NewAttributes()
	}
	return r.attributes
}

// AttributeValues one value per column in table order, read through the generated
// getters; nil for columns never set
func (r *Record) AttributeValues() []interface{} {
	if r.model == nil {
		return r.Attributes().Values()
	}

	columns := r.model.finalizedColumns()
	values := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		acc, _ := r.model.accessor(column)
		values = append(values, acc.get(r))
	}
	return values
}

// Responds reports whether the record's model generated an accessor or getter named name
func (r *Record) Responds(name string) bool {
	return r.model.Responds(name)
}

// Get reads column through its generated getter
func (r *Record) Get(column string) (interface{}, error) {
	acc, ok := r.model.accessor(column)
	if !ok {
		return nil, &UnknownAttributeError{Model: r.model.name, Column: column}
	}
	return acc.get(r), nil
}

// Set writes column through its generated setter
func (r *Record) Set(column string, value interface{}) error {
	acc, ok := r.model.accessor(column)
	if !ok {
		return &UnknownAttributeError{Model: r.model.name, Column: column}
	}
	acc.set(r, value)
	return nil
}

// value raw attribute, nil when unset
func (r *Record) value(column string) interface{} {
	value, _ := r.Attributes().Get(column)
	return value
}

// String column as string, empty when unset or nil
func (r *Record) String(column string) string {
	value := r.value(column)
	if utils.IsNil(value) {
		return ""
	}
	return utils.ToStringKey(value)
}

// Int64 column as int64
func (r *Record) Int64(column string) (int64, bool) {
	return utils.ToInt64(r.value(column))
}

// Time column as time, string values are parsed in the local timezone
func (r *Record) Time(column string) (time.Time, error) {
	switch v := r.value(column).(type) {
	case time.Time:
		return v, nil
	case string:
		return now.Parse(v)
	case nil:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s is %T", ErrInvalidValue, column, v)
	}
}

// ID primary key, false when unset or nil
func (r *Record) ID() (int64, bool) {
	return r.Int64("id")
}

func (r *Record) persisted() bool {
	return !utils.IsNil(r.value("id"))
}

// Insert inserts the set attributes, in assignment order, then stores the generated id
func (r *Record) Insert(ctx context.Context) error {
	table := r.model.TableName()
	attrs := r.Attributes()

	values := clause.Values{Values: [][]interface{}{attrs.Values()}}
	for _, column := range attrs.Keys() {
		values.Columns = append(values.Columns, clause.Column{Name: column})
	}

	stmt := &Statement{Table: table}
	stmt.Build(clause.Insert{Table: clause.Table{Name: table}}, values)

	if _, err := r.model.db.exec(ctx, stmt); err != nil {
		return err
	}

	id, err := r.model.db.LastInsertID(ctx)
	if err != nil {
		return err
	}
	attrs.Set("id", id)
	return nil
}

// Update writes every set attribute to the row with the record's id
func (r *Record) Update(ctx context.Context) error {
	if !r.persisted() {
		return fmt.Errorf("%w: %s", ErrMissingPrimaryKey, r.model.name)
	}

	table := r.model.TableName()
	attrs := r.Attributes()

	set := make(clause.Set, 0, attrs.Len())
	for _, field := range attrs.Fields() {
		set = append(set, clause.Assignment{Column: clause.Column{Name: field.Column}, Value: field.Value})
	}

	stmt := &Statement{Table: table}
	stmt.Build(
		clause.Update{Table: clause.Table{Name: table}},
		set,
		clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: table, Name: "id"}, Value: r.value("id")},
		}},
	)

	_, err := r.model.db.exec(ctx, stmt)
	return err
}

// Save inserts a record without id, updates one with id
func (r *Record) Save(ctx context.Context) error {
	if r.persisted() {
		return r.Update(ctx)
	}
	return r.Insert(ctx)
}

// One resolves a belongs_to or has_one_through association, nil when nothing matches
func (r *Record) One(ctx context.Context, name string) (*Record, error) {
	assoc, err := r.model.getter(name)
	if err != nil {
		return nil, err
	}

	switch assoc := assoc.(type) {
	case *BelongsToOptions:
		return assoc.resolve(ctx, r)
	case *HasOneThroughOptions:
		return assoc.resolve(ctx, r)
	default:
		return nil, fmt.Errorf("%w: %s#%s is %s, use Many", ErrUnsupportedRelation, r.model.name, name, assoc.Kind())
	}
}

// Many resolves a has_many association, empty when nothing matches
func (r *Record) Many(ctx context.Context, name string) ([]*Record, error) {
	assoc, err := r.model.getter(name)
	if err != nil {
		return nil, err
	}

	hasMany, ok := assoc.(*HasManyOptions)
	if !ok {
		return nil, fmt.Errorf("%w: %s#%s is %s, use One", ErrUnsupportedRelation, r.model.name, name, assoc.Kind())
	}
	return hasMany.resolve(ctx, r)
}
