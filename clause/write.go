package clause

// Insert insert clause
type Insert struct {
	Table Table
}

func (insert Insert) Name() string {
	return "INSERT"
}

func (insert Insert) Build(builder Builder) {
	builder.WriteString("INTO ")
	builder.WriteQuoted(insert.Table)
}

// Values values clause, one row of vars per column list
type Values struct {
	Columns []Column
	Values  [][]interface{}
}

// Name is empty, the VALUES keyword is written by Build after the column list
func (values Values) Name() string {
	return ""
}

func (values Values) Build(builder Builder) {
	if len(values.Columns) == 0 {
		builder.WriteString("DEFAULT VALUES")
		return
	}

	builder.WriteByte('(')
	for idx, column := range values.Columns {
		if idx > 0 {
			builder.WriteByte(',')
		}
		builder.WriteQuoted(column)
	}
	builder.WriteByte(')')

	builder.WriteString(" VALUES ")

	for idx, value := range values.Values {
		if idx > 0 {
			builder.WriteByte(',')
		}

		vars := make([]interface{}, 0, len(value))
		for _, v := range value {
			vars = append(vars, Var{Value: v})
		}

		builder.WriteByte('(')
		builder.AddVar(builder, vars...)
		builder.WriteByte(')')
	}
}

// Update update clause
type Update struct {
	Table Table
}

func (update Update) Name() string {
	return "UPDATE"
}

func (update Update) Build(builder Builder) {
	builder.WriteQuoted(update.Table)
}

// Set set clause
type Set []Assignment

// Assignment column = value
type Assignment struct {
	Column Column
	Value  interface{}
}

func (set Set) Name() string {
	return "SET"
}

func (set Set) Build(builder Builder) {
	for idx, assignment := range set {
		if idx > 0 {
			builder.WriteByte(',')
		}
		builder.WriteQuoted(assignment.Column)
		builder.WriteByte('=')
		builder.AddVar(builder, Var{Value: assignment.Value})
	}
}
