package activerecord

import (
	"context"
	"fmt"

	"github.com/jay-hwang/active-record/clause"
	"github.com/jay-hwang/active-record/schema"
	"github.com/jay-hwang/active-record/utils"
)

// AssociationKind association kind
type AssociationKind string

const (
	BelongsTo     AssociationKind = "belongs_to"
	HasMany       AssociationKind = "has_many"
	HasOneThrough AssociationKind = "has_one_through"
)

// Association a declared relationship, one of *BelongsToOptions, *HasManyOptions
// or *HasOneThroughOptions
type Association interface {
	Kind() AssociationKind
	AssociationName() string
}

// AssocOptions keys and target shared by belongs_to and has_many
type AssocOptions struct {
	Name       string
	PrimaryKey string
	ForeignKey string
	ClassName  string
}

// AssociationName association name
func (opts AssocOptions) AssociationName() string {
	return opts.Name
}

// ModelClass target model
func (opts AssocOptions) ModelClass(db *DB) (*Model, error) {
	return db.LookupModel(opts.ClassName)
}

// TableName table of the target model
func (opts AssocOptions) TableName(db *DB) (string, error) {
	model, err := opts.ModelClass(db)
	if err != nil {
		return "", err
	}
	return model.TableName(), nil
}

// Option overrides an association default
type Option func(*AssocOptions)

// PrimaryKey key column on the "one" side
func PrimaryKey(column string) Option {
	return func(opts *AssocOptions) {
		opts.PrimaryKey = column
	}
}

// ForeignKey key column on the owning side
func ForeignKey(column string) Option {
	return func(opts *AssocOptions) {
		opts.ForeignKey = column
	}
}

// ClassName target model name
func ClassName(name string) Option {
	return func(opts *AssocOptions) {
		opts.ClassName = name
	}
}

// BelongsToOptions the owner holds the foreign key
type BelongsToOptions struct {
	AssocOptions
}

// NewBelongsToOptions defaults: primary key id, foreign key <name>_id, class Camelize(name)
func NewBelongsToOptions(name string, opts ...Option) *BelongsToOptions {
	return newBelongsToOptions(schema.NamingStrategy{}, name, opts...)
}

func newBelongsToOptions(namer schema.Namer, name string, opts ...Option) *BelongsToOptions {
	options := &BelongsToOptions{AssocOptions{
		Name:       name,
		PrimaryKey: "id",
		ForeignKey: namer.ForeignKeyName(name),
		ClassName:  namer.ClassName(name),
	}}
	for _, opt := range opts {
		opt(&options.AssocOptions)
	}
	return options
}

func (*BelongsToOptions) Kind() AssociationKind {
	return BelongsTo
}

func (opts *BelongsToOptions) resolve(ctx context.Context, owner *Record) (*Record, error) {
	key := owner.value(opts.ForeignKey)
	if utils.IsNil(key) {
		return nil, nil
	}

	target, err := opts.ModelClass(owner.model.db)
	if err != nil {
		return nil, err
	}
	return target.findBy(ctx, opts.PrimaryKey, key)
}

// HasManyOptions the targets hold the foreign key
type HasManyOptions struct {
	AssocOptions
}

// NewHasManyOptions defaults: primary key id, foreign key <owner>_id, class Camelize(Singularize(name))
func NewHasManyOptions(name, ownerClass string, opts ...Option) *HasManyOptions {
	return newHasManyOptions(schema.NamingStrategy{}, name, ownerClass, opts...)
}

func newHasManyOptions(namer schema.Namer, name, ownerClass string, opts ...Option) *HasManyOptions {
	options := &HasManyOptions{AssocOptions{
		Name:       name,
		PrimaryKey: "id",
		ForeignKey: namer.ForeignKeyName(ownerClass),
		ClassName:  namer.CollectionClassName(name),
	}}
	for _, opt := range opts {
		opt(&options.AssocOptions)
	}
	return options
}

func (*HasManyOptions) Kind() AssociationKind {
	return HasMany
}

func (opts *HasManyOptions) resolve(ctx context.Context, owner *Record) ([]*Record, error) {
	key := owner.value(opts.PrimaryKey)
	if utils.IsNil(key) {
		return []*Record{}, nil
	}

	target, err := opts.ModelClass(owner.model.db)
	if err != nil {
		return nil, err
	}
	return target.Where(ctx, Field{Column: opts.ForeignKey, Value: key})
}

// HasOneThroughOptions composes a belongs_to on the owner (Through) with a belongs_to
// declared on the intermediate model (Source)
type HasOneThroughOptions struct {
	Name    string
	Through string
	Source  string
}

func (*HasOneThroughOptions) Kind() AssociationKind {
	return HasOneThrough
}

// AssociationName association name
func (opts *HasOneThroughOptions) AssociationName() string {
	return opts.Name
}

// hops resolves both belongs_to declarations from the getters generated by Finalize,
// the source is looked up at access time so it may be declared after the through association
func (opts *HasOneThroughOptions) hops(owner *Model) (through, source *BelongsToOptions, err error) {
	assoc, err := owner.getter(opts.Through)
	if err != nil {
		return nil, nil, err
	}

	var ok bool
	if through, ok = assoc.(*BelongsToOptions); !ok {
		return nil, nil, fmt.Errorf("%w: through %s#%s must be belongs_to", ErrUnsupportedRelation, owner.name, opts.Through)
	}

	intermediate, err := through.ModelClass(owner.db)
	if err != nil {
		return nil, nil, err
	}

	if assoc, err = intermediate.getter(opts.Source); err != nil {
		return nil, nil, err
	}
	if source, ok = assoc.(*BelongsToOptions); !ok {
		return nil, nil, fmt.Errorf("%w: source %s#%s must be belongs_to", ErrUnsupportedRelation, intermediate.name, opts.Source)
	}
	return through, source, nil
}

// resolve fetches the target in one statement joining the intermediate table:
//
//	SELECT target.* FROM target INNER JOIN through ON target.source_pk = through.source_fk
//	WHERE through.through_pk = ?
func (opts *HasOneThroughOptions) resolve(ctx context.Context, owner *Record) (*Record, error) {
	through, source, err := opts.hops(owner.model)
	if err != nil {
		return nil, err
	}

	key := owner.value(through.ForeignKey)
	if utils.IsNil(key) {
		return nil, nil
	}

	db := owner.model.db
	throughTable, err := through.TableName(db)
	if err != nil {
		return nil, err
	}

	target, err := source.ModelClass(db)
	if err != nil {
		return nil, err
	}
	targetTable := target.TableName()

	stmt := &Statement{Table: targetTable}
	stmt.Build(
		clause.Select{Columns: []clause.Column{clause.Star(targetTable)}},
		clause.From{
			Tables: []clause.Table{{Name: targetTable}},
			Joins: []clause.Join{{
				Type:  clause.InnerJoin,
				Table: clause.Table{Name: throughTable},
				ON: clause.Where{Exprs: []clause.Expression{clause.EqColumn{
					Column: clause.Column{Table: targetTable, Name: source.PrimaryKey},
					Ref:    clause.Column{Table: throughTable, Name: source.ForeignKey},
				}}},
			}},
		},
		clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: throughTable, Name: through.PrimaryKey}, Value: key},
		}},
	)
	return target.first(ctx, stmt)
}

// BelongsTo declares a belongs_to association, redeclaring a name replaces it
func (m *Model) BelongsTo(name string, opts ...Option) *BelongsToOptions {
	options := newBelongsToOptions(m.db.NamingStrategy, name, opts...)
	m.declare(name, options)
	return options
}

// HasMany declares a has_many association, redeclaring a name replaces it
func (m *Model) HasMany(name string, opts ...Option) *HasManyOptions {
	options := newHasManyOptions(m.db.NamingStrategy, name, m.name, opts...)
	m.declare(name, options)
	return options
}

// HasOneThrough declares name as the source association of the model reached by the
// through association, which must already be declared as belongs_to
func (m *Model) HasOneThrough(name, through, source string) (*HasOneThroughOptions, error) {
	assoc, ok := m.assoc(through)
	if !ok {
		return nil, fmt.Errorf("%w: %s#%s", ErrUnknownAssociation, m.name, through)
	}
	if assoc.Kind() != BelongsTo {
		return nil, fmt.Errorf("%w: through %s#%s must be belongs_to", ErrUnsupportedRelation, m.name, through)
	}

	options := &HasOneThroughOptions{Name: name, Through: through, Source: source}
	m.declare(name, options)
	return options, nil
}
