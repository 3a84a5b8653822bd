package clause

import "strconv"

// Select select clause, SELECT * when no columns given
type Select struct {
	Columns []Column
}

func (s Select) Name() string {
	return "SELECT"
}

func (s Select) Build(builder Builder) {
	if len(s.Columns) == 0 {
		builder.WriteByte('*')
		return
	}

	for idx, column := range s.Columns {
		if idx > 0 {
			builder.WriteByte(',')
		}
		builder.WriteQuoted(column)
	}
}

// JoinType join type
type JoinType string

const (
	InnerJoin JoinType = "INNER"
	LeftJoin  JoinType = "LEFT"
)

// Join join clause for from
type Join struct {
	Type  JoinType
	Table Table
	ON    Where
}

func (join Join) Build(builder Builder) {
	if join.Type != "" {
		builder.WriteString(string(join.Type))
		builder.WriteByte(' ')
	}

	builder.WriteString("JOIN ")
	builder.WriteQuoted(join.Table)

	if len(join.ON.Exprs) > 0 {
		builder.WriteString(" ON ")
		join.ON.Build(builder)
	}
}

// From from clause
type From struct {
	Tables []Table
	Joins  []Join
}

func (from From) Name() string {
	return "FROM"
}

func (from From) Build(builder Builder) {
	for idx, table := range from.Tables {
		if idx > 0 {
			builder.WriteByte(',')
		}
		builder.WriteQuoted(table)
	}

	for _, join := range from.Joins {
		builder.WriteByte(' ')
		join.Build(builder)
	}
}

// Where where clause, expressions joined with AND
type Where struct {
	Exprs []Expression
}

func (where Where) Name() string {
	return "WHERE"
}

func (where Where) Build(builder Builder) {
	for idx, expr := range where.Exprs {
		if idx > 0 {
			builder.WriteString(" AND ")
		}
		expr.Build(builder)
	}
}

// Eq equal to for where, always binds Value as exactly one var
type Eq struct {
	Column interface{}
	Value  interface{}
}

func (eq Eq) Build(builder Builder) {
	builder.WriteQuoted(eq.Column)
	builder.WriteString(" = ")
	builder.AddVar(builder, Var{Value: eq.Value})
}

// EqColumn compares two columns, for join conditions
type EqColumn struct {
	Column Column
	Ref    Column
}

func (eq EqColumn) Build(builder Builder) {
	builder.WriteQuoted(eq.Column)
	builder.WriteString(" = ")
	builder.WriteQuoted(eq.Ref)
}

// Limit limit clause
type Limit struct {
	Limit int
}

func (limit Limit) Name() string {
	return "LIMIT"
}

func (limit Limit) Build(builder Builder) {
	builder.WriteString(strconv.Itoa(limit.Limit))
}
