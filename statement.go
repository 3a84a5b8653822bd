package activerecord

import (
	"strings"

	"github.com/jay-hwang/active-record/clause"
)

// Statement statement, SQL and Vars are only ever appended together through AddVar
type Statement struct {
	Table string
	SQL   strings.Builder
	Vars  []interface{}
}

// WriteString write string
func (stmt *Statement) WriteString(str string) (int, error) {
	return stmt.SQL.WriteString(str)
}

// WriteByte write byte
func (stmt *Statement) WriteByte(c byte) error {
	return stmt.SQL.WriteByte(c)
}

// WriteQuoted write quoted value
func (stmt *Statement) WriteQuoted(value interface{}) {
	stmt.QuoteTo(&stmt.SQL, value)
}

// QuoteTo write quoted value to writer
func (stmt *Statement) QuoteTo(writer clause.Writer, field interface{}) {
	switch v := field.(type) {
	case clause.Table:
		if v.Raw {
			writer.WriteString(v.Name)
		} else {
			quoteIdentifier(writer, v.Name)
		}
	case clause.Column:
		if v.Table != "" {
			quoteIdentifier(writer, v.Table)
			writer.WriteByte('.')
		}

		switch {
		case v.Raw, v.Name == "*":
			writer.WriteString(v.Name)
		default:
			quoteIdentifier(writer, v.Name)
		}
	case string:
		quoteIdentifier(writer, v)
	default:
		quoteIdentifier(writer, "")
	}
}

func quoteIdentifier(writer clause.Writer, str string) {
	writer.WriteByte('`')
	writer.WriteString(strings.ReplaceAll(str, "`", "``"))
	writer.WriteByte('`')
}

// Quote returns quoted value
func (stmt *Statement) Quote(field interface{}) string {
	var builder strings.Builder
	stmt.QuoteTo(&builder, field)
	return builder.String()
}

// AddVar writes a ? placeholder for each var and appends the var in the same step,
// Column and Table vars are written quoted and Expr vars are built in place
func (stmt *Statement) AddVar(writer clause.Writer, vars ...interface{}) {
	for idx, v := range vars {
		if idx > 0 {
			writer.WriteByte(',')
		}

		switch v := v.(type) {
		case clause.Var:
			stmt.Vars = append(stmt.Vars, v.Value)
			writer.WriteByte('?')
		case clause.Column, clause.Table:
			stmt.QuoteTo(writer, v)
		case clause.Expr:
			v.Build(stmt)
		default:
			stmt.Vars = append(stmt.Vars, v)
			writer.WriteByte('?')
		}
	}
}

// Build write clauses in order, each prefixed by its name
func (stmt *Statement) Build(clauses ...clause.Interface) *Statement {
	for idx, c := range clauses {
		if idx > 0 {
			stmt.WriteByte(' ')
		}

		if name := c.Name(); name != "" {
			stmt.WriteString(name)
			stmt.WriteByte(' ')
		}
		c.Build(stmt)
	}
	return stmt
}

// String built SQL
func (stmt *Statement) String() string {
	return stmt.SQL.String()
}
