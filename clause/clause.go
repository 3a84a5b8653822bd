package clause

// Interface clause interface
type Interface interface {
	Name() string
	Build(Builder)
}

// Writer writer interface
type Writer interface {
	WriteByte(byte) error
	WriteString(string) (int, error)
}

// Builder builder interface
type Builder interface {
	Writer
	WriteQuoted(field interface{})
	// AddVar writes placeholders for vars and records them, in the same call, as bound vars
	AddVar(Writer, ...interface{})
}

// Expression expression interface
type Expression interface {
	Build(builder Builder)
}

// Column quote with name
type Column struct {
	Table string
	Name  string
	Raw   bool
}

// Table quote with name
type Table struct {
	Name string
	Raw  bool
}

// Star all columns of a table, `motorcycles`.*
func Star(table string) Column {
	return Column{Table: table, Name: "*"}
}

// Var a value always bound as one ? placeholder, never quoted or built
type Var struct {
	Value interface{}
}

// Expr raw expression
type Expr struct {
	SQL  string
	Vars []interface{}
}

// Build build raw expression, vars replace ? in order
func (expr Expr) Build(builder Builder) {
	var idx int
	for _, v := range []byte(expr.SQL) {
		if v == '?' && idx < len(expr.Vars) {
			builder.AddVar(builder, expr.Vars[idx])
			idx++
		} else {
			builder.WriteByte(v)
		}
	}
}
